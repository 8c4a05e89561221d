package utxoexport

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"

	"utxosnap/pkg/snapshot"
)

// TSVSink writes one tab-separated line per entry: txid, vout, height,
// coinbase flag, amount, and the hex-encoded scriptPubKey. It is a single
// worked export format, not a general-purpose one.
type TSVSink struct {
	w *bufio.Writer
}

// NewTSVSink wraps w in a buffered TSVSink.
func NewTSVSink(w io.Writer) *TSVSink {
	return &TSVSink{w: bufio.NewWriter(w)}
}

func (s *TSVSink) WriteEntry(e snapshot.Entry) error {
	coinbase := 0
	if e.IsCoinbase {
		coinbase = 1
	}
	_, err := fmt.Fprintf(s.w, "%s\t%d\t%d\t%d\t%d\t%s\n",
		e.Txid.String(), e.Vout, e.Height, coinbase, e.Amount,
		hex.EncodeToString(e.ScriptPubKey))
	return err
}

func (s *TSVSink) Close() error {
	return s.w.Flush()
}
