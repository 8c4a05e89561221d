// Package snapshot implements the streaming reader and writer for
// dumptxoutset-format UTXO snapshot files: a 51-byte header followed by
// per-transaction records built from the varint, amount, and script
// codecs in the sibling packages.
package snapshot

// FileMagic is the fixed 5-byte signature at offset 0 of every snapshot.
var FileMagic = [5]byte{0x75, 0x74, 0x78, 0x6f, 0xff}

// SupportedVersion is the only version this package accepts.
const SupportedVersion uint16 = 2

// HeaderSize is the fixed byte length of the header block.
const HeaderSize = 51

// Network tags the four-byte network magic to a known Bitcoin network, or
// NetworkUnknown when the magic isn't one this package recognizes.
type Network uint8

const (
	NetworkUnknown Network = iota
	NetworkMainnet
	NetworkTestnet3
	NetworkTestnet4
	NetworkSignet
	NetworkRegtest
)

func (n Network) String() string {
	switch n {
	case NetworkMainnet:
		return "mainnet"
	case NetworkTestnet3:
		return "testnet3"
	case NetworkTestnet4:
		return "testnet4"
	case NetworkSignet:
		return "signet"
	case NetworkRegtest:
		return "regtest"
	default:
		return "unknown"
	}
}

// Well-known network magics, exactly as they appear on disk at offset 7.
var (
	MainnetMagic  = [4]byte{0xF9, 0xBE, 0xB4, 0xD9}
	SignetMagic   = [4]byte{0x0A, 0x03, 0xCF, 0x40}
	Testnet3Magic = [4]byte{0x0B, 0x11, 0x09, 0x07}
	Testnet4Magic = [4]byte{0x1C, 0x16, 0x3F, 0x28}
	RegtestMagic  = [4]byte{0xFA, 0xBF, 0xB5, 0xDA}
)

var networksByMagic = map[[4]byte]Network{
	MainnetMagic:  NetworkMainnet,
	SignetMagic:   NetworkSignet,
	Testnet3Magic: NetworkTestnet3,
	Testnet4Magic: NetworkTestnet4,
	RegtestMagic:  NetworkRegtest,
}

var magicsByNetwork = map[Network][4]byte{
	NetworkMainnet:  MainnetMagic,
	NetworkSignet:   SignetMagic,
	NetworkTestnet3: Testnet3Magic,
	NetworkTestnet4: Testnet4Magic,
	NetworkRegtest:  RegtestMagic,
}

func networkFromMagic(magic [4]byte) Network {
	if n, ok := networksByMagic[magic]; ok {
		return n
	}
	return NetworkUnknown
}

// MagicForNetwork returns the canonical 4-byte magic for a known network.
// It returns false for NetworkUnknown, since an unknown network has no
// canonical magic of its own — callers writing an unrecognized network
// must set Header.NetworkMagic directly.
func MagicForNetwork(n Network) ([4]byte, bool) {
	m, ok := magicsByNetwork[n]
	return m, ok
}
