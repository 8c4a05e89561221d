package script_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"utxosnap/pkg/script"
)

func hash20(t *testing.T, fill byte) []byte {
	t.Helper()
	h := make([]byte, 20)
	for i := range h {
		h[i] = fill
	}
	return h
}

func TestP2PKHRoundTrip(t *testing.T) {
	// A 25-byte P2PKH script compresses to a 21-byte tag-plus-hash form
	// and reconstructs exactly.
	hash := hash20(t, 0xAB)
	original := append([]byte{0x76, 0xa9, 0x14}, append(append([]byte{}, hash...), 0x88, 0xac)...)
	require.Len(t, original, 25)

	var buf bytes.Buffer
	require.NoError(t, script.WriteCompressed(&buf, original))
	require.Equal(t, 21, buf.Len())
	require.Equal(t, byte(script.TagP2PKH), buf.Bytes()[0])

	got, err := script.ReadCompressed(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, original, got)
}

func TestP2SHRoundTrip(t *testing.T) {
	hash := hash20(t, 0xCD)
	original := append(append([]byte{0xa9, 0x14}, hash...), 0x87)
	require.Len(t, original, 23)

	var buf bytes.Buffer
	require.NoError(t, script.WriteCompressed(&buf, original))
	require.Equal(t, byte(script.TagP2SH), buf.Bytes()[0])

	got, err := script.ReadCompressed(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, original, got)
}

func TestP2PKCompressedRoundTrip(t *testing.T) {
	x, err := hex.DecodeString("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	require.NoError(t, err)

	for _, prefix := range []byte{0x02, 0x03} {
		original := append(append([]byte{0x21, prefix}, x...), 0xac)
		require.Len(t, original, 35)

		var buf bytes.Buffer
		require.NoError(t, script.WriteCompressed(&buf, original))

		got, err := script.ReadCompressed(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, original, got)
	}
}

func TestP2PKUncompressedRoundTrip(t *testing.T) {
	// The generator point's uncompressed P2PK script.
	x, _ := hex.DecodeString("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	y, _ := hex.DecodeString("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")
	uncompressed := append(append([]byte{0x04}, x...), y...)
	original := append(append([]byte{0x41}, uncompressed...), 0xac)
	require.Len(t, original, 67)

	var buf bytes.Buffer
	require.NoError(t, script.WriteCompressed(&buf, original))
	require.Equal(t, byte(script.TagP2PKUncompEven), buf.Bytes()[0])

	got, err := script.ReadCompressed(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, original, got)
	require.True(t, bytes.HasPrefix(got, []byte{0x41, 0x04}))
	require.True(t, bytes.HasSuffix(got, []byte{0xac}))
}

func TestRawFallbackRoundTrip(t *testing.T) {
	// An OP_RETURN script matches none of the recognized shapes.
	original := []byte{0x6a, 0x04, 'd', 'e', 'a', 'd'}

	var buf bytes.Buffer
	require.NoError(t, script.WriteCompressed(&buf, original))

	tag, err := readTag(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint64(len(original))+script.TagRawBase, tag)

	got, err := script.ReadCompressed(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, original, got)
}

func TestRawFallbackEmptyScript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, script.WriteCompressed(&buf, nil))
	require.Equal(t, []byte{script.TagRawBase}, buf.Bytes())

	got, err := script.ReadCompressed(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestReadCompressedTruncatedPayload(t *testing.T) {
	// Tag says P2PKH (20-byte payload) but only 5 bytes follow.
	buf := append([]byte{script.TagP2PKH}, make([]byte, 5)...)
	_, err := script.ReadCompressed(bytes.NewReader(buf))
	require.Error(t, err)
}

func readTag(buf []byte) (uint64, error) {
	// Single-byte VarInt tags (all the cases exercised in these tests
	// stay below 0x80) are just the first byte.
	return uint64(buf[0]), nil
}
