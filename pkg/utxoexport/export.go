// Package utxoexport defines narrow interfaces for consuming a parsed
// snapshot — progress reporting and record output — so pkg/snapshot's
// core stays usable without reaching into CLI or export-format concerns
// itself.
package utxoexport

import "utxosnap/pkg/snapshot"

// ProgressReporter receives periodic progress updates while a snapshot is
// walked. Implementations decide how (or whether) to render them; the
// core never calls this itself, callers do as they iterate.
type ProgressReporter interface {
	Report(emitted, total uint64)
}

// RecordSink consumes entries as a caller drives a Reader, decoupling the
// walk from whatever output format the caller wants (text, JSON, CSV,
// or an in-memory aggregate).
type RecordSink interface {
	WriteEntry(snapshot.Entry) error
	Close() error
}

// NoopProgress discards every update; the zero value is ready to use.
type NoopProgress struct{}

func (NoopProgress) Report(uint64, uint64) {}

// Walk drives rd to completion, feeding every entry to sink and calling
// progress after each one. It stops and returns the first error from
// either the reader or the sink.
func Walk(rd *snapshot.Reader, sink RecordSink, progress ProgressReporter) error {
	if progress == nil {
		progress = NoopProgress{}
	}
	header, err := rd.ReadHeader()
	if err != nil {
		return err
	}
	var emitted uint64
	for e, err := range rd.Entries() {
		if err != nil {
			return err
		}
		if err := sink.WriteEntry(e); err != nil {
			return err
		}
		emitted++
		progress.Report(emitted, header.UTXOCount)
	}
	return nil
}
