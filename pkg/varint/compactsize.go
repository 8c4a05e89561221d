// Package varint implements the two independent variable-length integer
// encodings used by the snapshot format: CompactSize (length-tag framing)
// and the MSB-first biased VarInt used by Bitcoin Core's serialize.h.
package varint

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxCompactSize is the range limit (32 MiB) applied to every length-like
// CompactSize value read from a snapshot.
const MaxCompactSize = 0x02000000

var (
	// ErrNonCanonical is returned when a CompactSize tag byte encodes a
	// value that fits in a shorter form than the one actually used.
	ErrNonCanonical = errors.New("varint: non-canonical CompactSize encoding")
	// ErrCompactSizeRange is returned when a decoded CompactSize exceeds
	// the caller-requested maximum.
	ErrCompactSizeRange = errors.New("varint: CompactSize exceeds range limit")
	// ErrVarIntOverflow is returned when a VarInt's accumulator would
	// overflow a uint64 before the terminating byte is read.
	ErrVarIntOverflow = errors.New("varint: VarInt overflow")
)

// ReadCompactSize reads a CompactSize integer with no range check beyond
// the canonical-encoding rule. Most callers should use
// ReadCompactSizeChecked instead.
func ReadCompactSize(r io.Reader) (uint64, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return 0, err
	}
	switch tag[0] {
	case 0xfd:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		v := uint64(binary.LittleEndian.Uint16(buf[:]))
		if v < 0xfd {
			return 0, ErrNonCanonical
		}
		return v, nil
	case 0xfe:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		v := uint64(binary.LittleEndian.Uint32(buf[:]))
		if v < 0x10000 {
			return 0, ErrNonCanonical
		}
		return v, nil
	case 0xff:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		v := binary.LittleEndian.Uint64(buf[:])
		if v < 0x100000000 {
			return 0, ErrNonCanonical
		}
		return v, nil
	default:
		return uint64(tag[0]), nil
	}
}

// ReadCompactSizeChecked reads a CompactSize and rejects any decoded value
// greater than max. Every length-like use in this module passes
// MaxCompactSize.
func ReadCompactSizeChecked(r io.Reader, max uint64) (uint64, error) {
	v, err := ReadCompactSize(r)
	if err != nil {
		return 0, err
	}
	if v > max {
		return 0, fmt.Errorf("%w: %d > %d", ErrCompactSizeRange, v, max)
	}
	return v, nil
}

// WriteCompactSize writes val using the smallest canonical CompactSize
// encoding.
func WriteCompactSize(w io.Writer, val uint64) error {
	switch {
	case val < 0xfd:
		_, err := w.Write([]byte{byte(val)})
		return err
	case val <= 0xffff:
		var buf [3]byte
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(val))
		_, err := w.Write(buf[:])
		return err
	case val <= 0xffffffff:
		var buf [5]byte
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(val))
		_, err := w.Write(buf[:])
		return err
	default:
		var buf [9]byte
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], val)
		_, err := w.Write(buf[:])
		return err
	}
}
