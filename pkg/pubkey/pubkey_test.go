package pubkey_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"utxosnap/pkg/pubkey"
)

const (
	generatorX = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	generatorY = "483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
)

func mustHex32(t *testing.T, s string) [32]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 32)
	var out [32]byte
	copy(out[:], b)
	return out
}

func TestDecompressGeneratorPoint(t *testing.T) {
	// The secp256k1 generator's x-coordinate with even parity must
	// recover the well-known generator y.
	x := mustHex32(t, generatorX)

	got, err := pubkey.Decompress(x, false)
	require.NoError(t, err)

	require.Equal(t, byte(0x04), got[0])
	require.Equal(t, generatorX, hex.EncodeToString(got[1:33]))
	require.Equal(t, generatorY, hex.EncodeToString(got[33:65]))
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	x := mustHex32(t, generatorX)
	for _, odd := range []bool{false, true} {
		uncompressed, err := pubkey.Decompress(x, odd)
		require.NoError(t, err)

		compressed, err := pubkey.Compress(uncompressed)
		require.NoError(t, err)

		wantPrefix := byte(0x02)
		if odd {
			wantPrefix = 0x03
		}
		require.Equal(t, wantPrefix, compressed[0])
		require.Equal(t, x[:], compressed[1:])
	}
}

func TestDecompressRejectsFieldOverflow(t *testing.T) {
	var x [32]byte
	for i := range x {
		x[i] = 0xff // 2^256-1 exceeds the field prime p, never a valid x
	}
	_, err := pubkey.Decompress(x, false)
	require.Error(t, err)
}
