// Package script implements the compressed scriptPubKey codec: a VarInt
// tag identifying one of a handful of common locking-script shapes (or a
// length-tagged raw fallback), plus the fixed-size payload each shape
// implies.
package script

import (
	"errors"
	"fmt"
	"io"

	"utxosnap/pkg/pubkey"
	"utxosnap/pkg/varint"
)

const (
	TagP2PKH          = 0x00
	TagP2SH           = 0x01
	TagP2PKCompEven   = 0x02
	TagP2PKCompOdd    = 0x03
	TagP2PKUncompEven = 0x04
	TagP2PKUncompOdd  = 0x05
	TagRawBase        = 0x06
)

var (
	// ErrRawTooLarge is returned when a raw script's encoded tag (len+6)
	// would fall outside the shared 32-MiB VarInt range.
	ErrRawTooLarge = errors.New("script: raw script length exceeds the VarInt range limit")
)

// MaxRawScriptLen bounds the payload length a raw fallback script may
// declare, so that its encoded tag never exceeds the format's 32-MiB
// length-field ceiling.
const MaxRawScriptLen = varint.MaxCompactSize - TagRawBase

// WriteCompressed writes scriptPubKey's compressed form: a VarInt tag
// followed by whatever payload that tag implies. Exact structural matches
// against the four recognized shapes win; anything else is emitted raw.
func WriteCompressed(w io.Writer, scriptPubKey []byte) error {
	if tag, payload, ok := recognize(scriptPubKey); ok {
		if err := varint.WriteVarInt(w, tag); err != nil {
			return err
		}
		_, err := w.Write(payload)
		return err
	}

	length := uint64(len(scriptPubKey))
	if length > MaxRawScriptLen {
		return fmt.Errorf("%w: %d bytes", ErrRawTooLarge, length)
	}
	if err := varint.WriteVarInt(w, length+TagRawBase); err != nil {
		return err
	}
	_, err := w.Write(scriptPubKey)
	return err
}

// ReadCompressed reads a compressed scriptPubKey and reconstructs the
// full locking script the ledger would see.
func ReadCompressed(r io.Reader) ([]byte, error) {
	tag, err := varint.ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	switch tag {
	case TagP2PKH:
		hash := make([]byte, 20)
		if _, err := io.ReadFull(r, hash); err != nil {
			return nil, err
		}
		return buildP2PKH(hash), nil

	case TagP2SH:
		hash := make([]byte, 20)
		if _, err := io.ReadFull(r, hash); err != nil {
			return nil, err
		}
		return buildP2SH(hash), nil

	case TagP2PKCompEven, TagP2PKCompOdd:
		x := make([]byte, 32)
		if _, err := io.ReadFull(r, x); err != nil {
			return nil, err
		}
		prefix := byte(0x02)
		if tag == TagP2PKCompOdd {
			prefix = 0x03
		}
		return buildP2PKCompressed(prefix, x), nil

	case TagP2PKUncompEven, TagP2PKUncompOdd:
		var x [32]byte
		if _, err := io.ReadFull(r, x[:]); err != nil {
			return nil, err
		}
		uncompressed, err := pubkey.Decompress(x, tag == TagP2PKUncompOdd)
		if err != nil {
			return nil, err
		}
		return buildP2PKUncompressed(uncompressed[:]), nil

	default:
		length := tag - TagRawBase
		if length > MaxRawScriptLen {
			return nil, fmt.Errorf("%w: %d bytes", ErrRawTooLarge, length)
		}
		raw := make([]byte, length)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
}
