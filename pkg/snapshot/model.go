package snapshot

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Header carries the fixed fields parsed from, or written to, the first
// 51 bytes of a snapshot.
type Header struct {
	Version      uint16
	Network      Network
	NetworkMagic [4]byte
	BlockHash    chainhash.Hash
	UTXOCount    uint64
}

// Output is a single unspent output belonging to some transaction.
type Output struct {
	Vout         uint64
	Height       uint32
	IsCoinbase   bool
	Amount       uint64
	ScriptPubKey []byte
}

// Transaction groups the outputs on disk that share a txid.
type Transaction struct {
	Txid    chainhash.Hash
	Outputs []Output
}

// Entry pairs a single output with the txid of the transaction that
// produced it — the flattened shape Reader.Entries iterates over.
type Entry struct {
	Txid chainhash.Hash
	Output
}
