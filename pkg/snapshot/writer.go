package snapshot

import (
	"encoding/binary"
	"errors"
	"io"
	"os"

	"utxosnap/pkg/amount"
	"utxosnap/pkg/script"
	"utxosnap/pkg/varint"
)

// Writer mirrors Reader: it owns an output stream and commits a single
// in-place patch of the utxo_count field at Finalize/Close time.
type Writer struct {
	w         io.Writer
	seeker    io.Seeker
	closer    io.Closer
	leaveOpen bool

	headerWritten bool
	countOffset   int64
	emitted       uint64
	finalCount    *uint64
}

// WriterOption configures a Writer at construction time.
type WriterOption func(*Writer)

// WithWriterLeaveOpen prevents Close from closing the underlying stream.
func WithWriterLeaveOpen() WriterOption {
	return func(wr *Writer) { wr.leaveOpen = true }
}

// WithFinalCount is required for a non-seekable sink: since such a writer
// can never patch the header after the fact, the caller must supply the
// true utxo_count before WriteHeader runs.
func WithFinalCount(n uint64) WriterOption {
	return func(wr *Writer) { wr.finalCount = &n }
}

// NewWriter wraps w. If w also implements io.Seeker and/or io.Closer,
// UpdateUTXOCount/Finalize and Close use them automatically.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	wr := &Writer{w: w}
	if s, ok := w.(io.Seeker); ok {
		wr.seeker = s
	}
	if c, ok := w.(io.Closer); ok {
		wr.closer = c
	}
	for _, opt := range opts {
		opt(wr)
	}
	return wr
}

// Create opens path for writing and wraps it in a Writer that owns the
// resulting file. It refuses to overwrite an existing file unless
// overwrite is true.
func Create(path string, overwrite bool) (*Writer, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, wrapIoErr(err)
	}
	return NewWriter(f), nil
}

// WriteHeader writes the 51-byte header exactly once. For a non-seekable
// sink, WithFinalCount must already have been supplied; the header's
// UTXOCount field is then overridden with that value.
func (wr *Writer) WriteHeader(h Header) error {
	if wr.headerWritten {
		return errors.New("utxosnap: header already written")
	}
	if wr.seeker == nil && wr.finalCount == nil {
		return errors.New("utxosnap: non-seekable writer requires WithFinalCount before WriteHeader")
	}

	var buf [HeaderSize]byte
	copy(buf[0:5], FileMagic[:])
	binary.LittleEndian.PutUint16(buf[5:7], h.Version)
	copy(buf[7:11], h.NetworkMagic[:])
	copy(buf[11:43], h.BlockHash[:])

	count := h.UTXOCount
	if wr.finalCount != nil {
		count = *wr.finalCount
	}
	binary.LittleEndian.PutUint64(buf[43:51], count)

	if _, err := wr.w.Write(buf[:]); err != nil {
		return wrapIoErr(err)
	}
	wr.countOffset = 43
	wr.headerWritten = true
	return nil
}

// WriteTransaction emits a transaction record. A transaction with no
// outputs is silently dropped.
func (wr *Writer) WriteTransaction(tx Transaction) error {
	if len(tx.Outputs) == 0 {
		return nil
	}
	if _, err := wr.w.Write(tx.Txid[:]); err != nil {
		return wrapIoErr(err)
	}
	if err := varint.WriteCompactSize(wr.w, uint64(len(tx.Outputs))); err != nil {
		return wrapIoErr(err)
	}
	for _, out := range tx.Outputs {
		if err := wr.writeOutput(out); err != nil {
			return err
		}
	}
	wr.emitted += uint64(len(tx.Outputs))
	return nil
}

// WriteEntry is a convenience wrapper emitting a singleton transaction.
func (wr *Writer) WriteEntry(e Entry) error {
	return wr.WriteTransaction(Transaction{Txid: e.Txid, Outputs: []Output{e.Output}})
}

func (wr *Writer) writeOutput(out Output) error {
	if out.Height >= 1<<31 {
		return &FormatError{Msg: "output height exceeds 31 bits"}
	}
	if err := varint.WriteCompactSize(wr.w, out.Vout); err != nil {
		return wrapIoErr(err)
	}
	heightFlag := uint64(out.Height) << 1
	if out.IsCoinbase {
		heightFlag |= 1
	}
	if err := varint.WriteVarInt(wr.w, heightFlag); err != nil {
		return wrapIoErr(err)
	}
	if err := varint.WriteVarInt(wr.w, amount.Compress(out.Amount)); err != nil {
		return wrapIoErr(err)
	}
	if err := script.WriteCompressed(wr.w, out.ScriptPubKey); err != nil {
		return err
	}
	return nil
}

// UpdateUTXOCount seeks to the recorded header offset and rewrites the
// 8-byte utxo_count field, then returns to the prior write position. It
// requires a seekable stream.
func (wr *Writer) UpdateUTXOCount(n uint64) error {
	if wr.seeker == nil {
		return errors.New("utxosnap: update requires a seekable stream")
	}
	if !wr.headerWritten {
		return errors.New("utxosnap: header not written yet")
	}
	cur, err := wr.seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return wrapIoErr(err)
	}
	if _, err := wr.seeker.Seek(wr.countOffset, io.SeekStart); err != nil {
		return wrapIoErr(err)
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	if _, err := wr.w.Write(buf[:]); err != nil {
		return wrapIoErr(err)
	}
	if _, err := wr.seeker.Seek(cur, io.SeekStart); err != nil {
		return wrapIoErr(err)
	}
	return nil
}

// flusher is satisfied by *bufio.Writer and similar buffered sinks.
type flusher interface {
	Flush() error
}

// Finalize patches the header's utxo_count with the running total (when
// seekable) and flushes the underlying stream if it's buffered.
func (wr *Writer) Finalize() error {
	if wr.seeker != nil && wr.headerWritten {
		if err := wr.UpdateUTXOCount(wr.emitted); err != nil {
			return err
		}
	}
	if f, ok := wr.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return wrapIoErr(err)
		}
	}
	return nil
}

// Close finalizes and releases the underlying stream, unless
// WithWriterLeaveOpen was set.
func (wr *Writer) Close() error {
	ferr := wr.Finalize()
	if wr.closer != nil && !wr.leaveOpen {
		if cerr := wr.closer.Close(); cerr != nil && ferr == nil {
			return wrapIoErr(cerr)
		}
	}
	return ferr
}
