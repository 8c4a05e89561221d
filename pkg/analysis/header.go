// Package analysis implements the fixed 9-byte header shared by
// per-script-type analysis dumps (P2PK, P2PKH, P2MS, P2SH, and the
// segwit/taproot variants). Only the header codec lives here — deciding
// which outputs belong in which file is a caller's job, not this
// package's.
package analysis

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Magic identifies one of the fixed script-type dump files.
type Magic [4]byte

var (
	MagicP2PK  = Magic{'P', '2', 'P', 'K'}
	MagicP2PKH = Magic{'P', '2', 'K', 'H'}
	MagicP2MS  = Magic{'P', '2', 'M', 'S'}
	MagicP2SH  = Magic{'P', '2', 'S', 'H'}
	MagicSHWP  = Magic{'S', 'H', 'W', 'P'}
	MagicSHWS  = Magic{'S', 'H', 'W', 'S'}
	MagicWPKH  = Magic{'W', 'P', 'K', 'H'}
	MagicPWSH  = Magic{'P', 'W', 'S', 'H'}
	MagicP2TR  = Magic{'P', '2', 'T', 'R'}
)

var knownMagics = map[Magic]bool{
	MagicP2PK: true, MagicP2PKH: true, MagicP2MS: true, MagicP2SH: true,
	MagicSHWP: true, MagicSHWS: true, MagicWPKH: true, MagicPWSH: true,
	MagicP2TR: true,
}

// flagAmountPrefix is bit 0 of the header's flags byte: when set, every
// record in the file is prefixed with an 8-byte little-endian amount.
const flagAmountPrefix = 1 << 0

// Header is the 9-byte prologue of an analysis-only dump file.
type Header struct {
	Magic           Magic
	EntryCount      uint32
	HasAmountPrefix bool
}

// WriteHeader writes h's 9-byte on-disk form.
func WriteHeader(w io.Writer, h Header) error {
	if !knownMagics[h.Magic] {
		return fmt.Errorf("analysis: unrecognized magic %q", h.Magic[:])
	}
	var buf [9]byte
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.EntryCount)
	if h.HasAmountPrefix {
		buf[8] = flagAmountPrefix
	}
	_, err := w.Write(buf[:])
	return err
}

// ReadHeader reads and validates a 9-byte analysis header.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [9]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, err
	}
	var h Header
	copy(h.Magic[:], buf[0:4])
	if !knownMagics[h.Magic] {
		return Header{}, fmt.Errorf("analysis: unrecognized magic %q", h.Magic[:])
	}
	h.EntryCount = binary.LittleEndian.Uint32(buf[4:8])
	h.HasAmountPrefix = buf[8]&flagAmountPrefix != 0
	return h, nil
}
