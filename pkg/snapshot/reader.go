package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"iter"
	"os"

	"utxosnap/pkg/amount"
	"utxosnap/pkg/script"
	"utxosnap/pkg/varint"
)

// Reader is a streaming, single-threaded state machine over an input
// byte stream: read_header, then iterate transactions/entries until the
// running output count reaches the header's declared total.
type Reader struct {
	r         io.Reader
	seeker    io.Seeker
	closer    io.Closer
	leaveOpen bool

	header *Header
	offset int64

	emitted     uint64
	partitioned bool
	target      uint64
}

// ReaderOption configures a Reader at construction time.
type ReaderOption func(*Reader)

// WithLeaveOpen prevents Close from closing the underlying stream, for
// callers that manage the stream's lifetime themselves.
func WithLeaveOpen() ReaderOption {
	return func(rd *Reader) { rd.leaveOpen = true }
}

// WithPartition seeds a reader that starts at a transaction boundary
// produced by Partition, skipping header parsing and comparing the
// running output count against count instead of a header's utxo_count.
func WithPartition(h Header, offsetIntoFile int64, count uint64) ReaderOption {
	return func(rd *Reader) {
		hCopy := h
		rd.header = &hCopy
		rd.offset = offsetIntoFile
		rd.partitioned = true
		rd.target = count
	}
}

// NewReader wraps r. If r also implements io.Seeker and/or io.Closer,
// Reset and Close use them automatically.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	rd := &Reader{r: r, offset: -1}
	if s, ok := r.(io.Seeker); ok {
		rd.seeker = s
	}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}
	for _, opt := range opts {
		opt(rd)
	}
	if rd.offset < 0 {
		rd.offset = 0
	}
	return rd
}

// Open opens path and wraps it in a Reader that owns the resulting file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapIoErr(err)
	}
	return NewReader(f), nil
}

func (rd *Reader) read(buf []byte) error {
	if _, err := io.ReadFull(rd.r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &FormatError{Msg: "truncated record", Offset: rd.offset, Err: err}
		}
		return wrapIoErr(err)
	}
	rd.offset += int64(len(buf))
	return nil
}

// readTxid reads the fixed-size txid that starts a transaction record. A
// clean io.EOF (no bytes read at all) means the stream ended exactly on
// a transaction boundary, which the caller must tell apart from a
// mid-record cut: it's returned unwrapped so Transactions can detect it,
// rather than being folded into a truncated-record FormatError.
func (rd *Reader) readTxid(buf []byte) error {
	n, err := io.ReadFull(rd.r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return &FormatError{Msg: "truncated record", Offset: rd.offset, Err: err}
		}
		return wrapIoErr(err)
	}
	rd.offset += int64(n)
	return nil
}

// ReadHeader consumes and validates the 51-byte header. It is idempotent:
// a second call returns the cached header without touching the stream.
func (rd *Reader) ReadHeader() (Header, error) {
	if rd.header != nil {
		return *rd.header, nil
	}

	var buf [HeaderSize]byte
	if err := rd.read(buf[:]); err != nil {
		return Header{}, err
	}

	if !bytes.Equal(buf[0:5], FileMagic[:]) {
		return Header{}, &FormatError{Msg: "bad file magic", Offset: 0}
	}

	version := binary.LittleEndian.Uint16(buf[5:7])
	if version != SupportedVersion {
		return Header{}, &VersionError{Found: version, Accepted: []uint16{SupportedVersion}}
	}

	var h Header
	h.Version = version
	copy(h.NetworkMagic[:], buf[7:11])
	h.Network = networkFromMagic(h.NetworkMagic)
	copy(h.BlockHash[:], buf[11:43])
	h.UTXOCount = binary.LittleEndian.Uint64(buf[43:51])

	rd.header = &h
	return h, nil
}

func (rd *Reader) targetCount() uint64 {
	if rd.partitioned {
		return rd.target
	}
	return rd.header.UTXOCount
}

// Transactions returns a lazy sequence of transaction records, stopping
// once the running output count reaches the target total. A short read
// or a final count that doesn't match the target surfaces as the second
// (error) value; consumers should stop iterating once they see one.
func (rd *Reader) Transactions() iter.Seq2[Transaction, error] {
	return func(yield func(Transaction, error) bool) {
		if rd.header == nil {
			if _, err := rd.ReadHeader(); err != nil {
				yield(Transaction{}, err)
				return
			}
		}
		target := rd.targetCount()
		for rd.emitted < target {
			tx, err := rd.readTransaction()
			if err != nil {
				if err == io.EOF {
					break
				}
				yield(Transaction{}, err)
				return
			}
			if !yield(tx, nil) {
				return
			}
		}
		if rd.emitted != target {
			yield(Transaction{}, &FormatError{
				Msg:    "UTXO count mismatch",
				Offset: rd.offset,
			})
		}
	}
}

// Entries flattens Transactions into individual outputs, each carrying
// its transaction's txid.
func (rd *Reader) Entries() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for tx, err := range rd.Transactions() {
			if err != nil {
				yield(Entry{}, err)
				return
			}
			for _, out := range tx.Outputs {
				if !yield(Entry{Txid: tx.Txid, Output: out}, nil) {
					return
				}
			}
		}
	}
}

// Validate drives a full read to completion, returning the first error
// encountered (if any) and, once the file structurally parses, an
// unknown-network ValidationError if the header's magic wasn't
// recognized.
func (rd *Reader) Validate() error {
	h, err := rd.ReadHeader()
	if err != nil {
		return err
	}
	for _, err := range rd.Transactions() {
		if err != nil {
			return err
		}
	}
	if h.Network == NetworkUnknown {
		return &ValidationError{
			Reason: ReasonUnknownNetwork,
			Detail: "network magic not in the recognized set",
		}
	}
	return nil
}

// Reset seeks the underlying stream back to the start and clears the
// cached header and running count, so ReadHeader/Transactions can run
// again. It requires a seekable stream.
func (rd *Reader) Reset() error {
	if rd.seeker == nil {
		return errors.New("utxosnap: reset requires a seekable stream")
	}
	if _, err := rd.seeker.Seek(0, io.SeekStart); err != nil {
		return wrapIoErr(err)
	}
	rd.header = nil
	rd.emitted = 0
	rd.offset = 0
	rd.partitioned = false
	return nil
}

// Close releases the underlying stream, unless WithLeaveOpen was set.
func (rd *Reader) Close() error {
	if rd.closer == nil || rd.leaveOpen {
		return nil
	}
	return rd.closer.Close()
}

func (rd *Reader) readTransaction() (Transaction, error) {
	var tx Transaction
	if err := rd.readTxid(tx.Txid[:]); err != nil {
		return Transaction{}, err
	}

	outCount, err := rd.readCompactSize()
	if err != nil {
		return Transaction{}, err
	}

	tx.Outputs = make([]Output, 0, outCount)
	for i := uint64(0); i < outCount; i++ {
		out, err := rd.readOutput()
		if err != nil {
			return Transaction{}, err
		}
		tx.Outputs = append(tx.Outputs, out)
		rd.emitted++
	}
	return tx, nil
}

func (rd *Reader) readOutput() (Output, error) {
	vout, err := rd.readCompactSize()
	if err != nil {
		return Output{}, err
	}

	heightFlag, err := rd.readVarInt()
	if err != nil {
		return Output{}, err
	}
	height := heightFlag >> 1
	if height >= 1<<31 {
		return Output{}, &FormatError{Msg: "output height exceeds 31 bits", Offset: rd.offset}
	}
	isCoinbase := heightFlag&1 == 1

	compressedAmount, err := rd.readVarInt()
	if err != nil {
		return Output{}, err
	}

	spk, err := script.ReadCompressed(rd)
	if err != nil {
		return Output{}, classifyCodecErr(err, rd.offset)
	}

	return Output{
		Vout:         vout,
		Height:       uint32(height),
		IsCoinbase:   isCoinbase,
		Amount:       amount.Decompress(compressedAmount),
		ScriptPubKey: spk,
	}, nil
}

func (rd *Reader) readCompactSize() (uint64, error) {
	v, err := varint.ReadCompactSizeChecked(rd, varint.MaxCompactSize)
	if err != nil {
		return 0, classifyCodecErr(err, rd.offset)
	}
	return v, nil
}

func (rd *Reader) readVarInt() (uint64, error) {
	v, err := varint.ReadVarInt(rd)
	if err != nil {
		return 0, classifyCodecErr(err, rd.offset)
	}
	return v, nil
}

// Read implements io.Reader over the underlying stream, keeping the
// running byte offset current so codec-layer failures (which know
// nothing about file position) can still be reported with one.
func (rd *Reader) Read(p []byte) (int, error) {
	n, err := rd.r.Read(p)
	rd.offset += int64(n)
	return n, err
}

// classifyCodecErr promotes a plain sentinel error from varint/script/
// pubkey into the taxonomy's FormatError, attaching the offset the
// reader had reached when the failure surfaced.
func classifyCodecErr(err error, offset int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &FormatError{Msg: "truncated record", Offset: offset, Err: err}
	}
	var verr *VersionError
	if errors.As(err, &verr) {
		return err
	}
	var ferr *FormatError
	if errors.As(err, &ferr) {
		return err
	}
	return &FormatError{Msg: err.Error(), Offset: offset, Err: err}
}
