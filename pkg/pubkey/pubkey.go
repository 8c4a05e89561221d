// Package pubkey recovers full secp256k1 public keys from a compressed
// x-coordinate plus parity bit, and the reverse. The curve arithmetic
// (modular square root, on-curve validation) is delegated to btcec/v2.
package pubkey

import (
	"fmt"

	btcec "github.com/btcsuite/btcd/btcec/v2"
)

// Decompress recovers the 65-byte uncompressed key (0x04 || x || y) for
// the given x-coordinate and y parity. It fails if x does not correspond
// to a point on the curve.
func Decompress(x [32]byte, oddY bool) ([65]byte, error) {
	prefix := byte(0x02)
	if oddY {
		prefix = 0x03
	}
	compressed := make([]byte, 33)
	compressed[0] = prefix
	copy(compressed[1:], x[:])

	pub, err := btcec.ParsePubKey(compressed)
	if err != nil {
		return [65]byte{}, fmt.Errorf("pubkey: x-coordinate is not on the secp256k1 curve: %w", err)
	}

	var out [65]byte
	copy(out[:], pub.SerializeUncompressed())
	return out, nil
}

// Compress reduces a 65-byte uncompressed key to its 33-byte compressed
// form, validating that the point lies on the curve.
func Compress(uncompressed [65]byte) ([33]byte, error) {
	pub, err := btcec.ParsePubKey(uncompressed[:])
	if err != nil {
		return [33]byte{}, fmt.Errorf("pubkey: uncompressed point is invalid: %w", err)
	}
	var out [33]byte
	copy(out[:], pub.SerializeCompressed())
	return out, nil
}
