package script

// recognize matches a full scriptPubKey against the four compressible
// shapes by exact byte pattern: length, then the fixed prefix/suffix
// bytes each shape requires.
func recognize(s []byte) (tag uint64, payload []byte, ok bool) {
	switch {
	case len(s) == 25 && s[0] == 0x76 && s[1] == 0xa9 && s[2] == 0x14 && s[23] == 0x88 && s[24] == 0xac:
		return TagP2PKH, s[3:23], true

	case len(s) == 23 && s[0] == 0xa9 && s[1] == 0x14 && s[22] == 0x87:
		return TagP2SH, s[2:22], true

	case len(s) == 35 && s[0] == 0x21 && (s[1] == 0x02 || s[1] == 0x03) && s[34] == 0xac:
		t := uint64(TagP2PKCompEven)
		if s[1] == 0x03 {
			t = TagP2PKCompOdd
		}
		return t, s[2:34], true

	case len(s) == 67 && s[0] == 0x41 && s[1] == 0x04 && s[66] == 0xac:
		y := s[34:66]
		t := uint64(TagP2PKUncompEven)
		if y[31]&1 == 1 {
			t = TagP2PKUncompOdd
		}
		return t, s[2:34], true
	}
	return 0, nil, false
}

func buildP2PKH(hash []byte) []byte {
	out := make([]byte, 0, 25)
	out = append(out, 0x76, 0xa9, 0x14)
	out = append(out, hash...)
	return append(out, 0x88, 0xac)
}

func buildP2SH(hash []byte) []byte {
	out := make([]byte, 0, 23)
	out = append(out, 0xa9, 0x14)
	out = append(out, hash...)
	return append(out, 0x87)
}

func buildP2PKCompressed(prefix byte, x []byte) []byte {
	out := make([]byte, 0, 35)
	out = append(out, 0x21, prefix)
	out = append(out, x...)
	return append(out, 0xac)
}

// buildP2PKUncompressed wraps a 65-byte uncompressed key (0x04||x||y,
// already produced by pubkey.Decompress) in its push opcode and OP_CHECKSIG.
func buildP2PKUncompressed(uncompressed []byte) []byte {
	out := make([]byte, 0, 67)
	out = append(out, 0x41)
	out = append(out, uncompressed...)
	return append(out, 0xac)
}
