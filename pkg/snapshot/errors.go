package snapshot

import "fmt"

// FormatError reports malformed or inconsistent bytes: bad magic, a
// truncated record, a non-canonical or over-range length field, an
// unresolvable script tag, a UTXO count that doesn't match the header, or
// a secp256k1 point that isn't on the curve.
type FormatError struct {
	Msg    string
	Offset int64 // -1 when the offset isn't known
	Err    error
}

func (e *FormatError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("utxosnap: format error at offset %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("utxosnap: format error: %s", e.Msg)
}

func (e *FormatError) Unwrap() error { return e.Err }

// VersionError reports a header version outside the accepted set.
type VersionError struct {
	Found    uint16
	Accepted []uint16
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("utxosnap: unsupported version %d (accepted: %v)", e.Found, e.Accepted)
}

// ValidationReason tags the specific semantic check a ValidationError
// failed. Only ReasonUnknownNetwork is ever produced by this package's
// Reader today: a count mismatch or an invalid txid/script/amount is
// indistinguishable from a structural parse failure, since every record
// field is either fixed-length or self-describing, so those are reported
// as FormatError instead. The remaining reasons are kept as public
// constants for API completeness and for callers layering their own
// semantic checks on top of a structurally valid parse.
type ValidationReason string

const (
	ReasonCountMismatch  ValidationReason = "count_mismatch"
	ReasonInvalidTxid    ValidationReason = "invalid_txid"
	ReasonInvalidScript  ValidationReason = "invalid_script"
	ReasonInvalidAmount  ValidationReason = "invalid_amount"
	ReasonTruncated      ValidationReason = "truncated"
	ReasonUnknownNetwork ValidationReason = "unknown_network"
)

// ValidationError reports a file that parsed cleanly but failed a
// semantic check layered on top of the parse.
type ValidationError struct {
	Reason ValidationReason
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("utxosnap: validation failed (%s): %s", e.Reason, e.Detail)
}

// IoError passes an underlying stream failure through unchanged, tagged
// so callers can discriminate it from the codec's own error types.
type IoError struct {
	Err error
}

func (e *IoError) Error() string { return fmt.Sprintf("utxosnap: i/o error: %v", e.Err) }
func (e *IoError) Unwrap() error { return e.Err }

func wrapIoErr(err error) error {
	if err == nil {
		return nil
	}
	return &IoError{Err: err}
}
