// Command utxosnapdump is a worked example of pkg/utxoexport: it walks a
// snapshot file and writes one tab-separated line per output. It is thin
// glue only — bare os.Args dispatch, a small JSON error envelope on
// failure, no CLI framework.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"utxosnap/pkg/snapshot"
	"utxosnap/pkg/utxoexport"
)

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func main() {
	if len(os.Args) < 2 {
		printError("INVALID_ARGS", "Usage: utxosnapdump <snapshot.dat>")
		os.Exit(1)
	}

	rd, err := snapshot.Open(os.Args[1])
	if err != nil {
		printError("FILE_NOT_FOUND", err.Error())
		os.Exit(1)
	}
	defer rd.Close()

	sink := utxoexport.NewTSVSink(os.Stdout)
	if err := utxoexport.Walk(rd, sink, progressToStderr{}); err != nil {
		printError("INVALID_SNAPSHOT", err.Error())
		os.Exit(1)
	}
	if err := sink.Close(); err != nil {
		printError("IO_ERROR", err.Error())
		os.Exit(1)
	}
}

// progressToStderr prints one line every 1,000,000 outputs, keeping
// stdout free for the TSV records.
type progressToStderr struct{}

func (progressToStderr) Report(emitted, total uint64) {
	if emitted%1_000_000 == 0 {
		fmt.Fprintf(os.Stderr, "utxosnapdump: %d/%d outputs\n", emitted, total)
	}
}

func printError(code, message string) {
	type errorOutput struct {
		OK    bool       `json:"ok"`
		Error *errorInfo `json:"error"`
	}
	errJSON, _ := json.Marshal(errorOutput{OK: false, Error: &errorInfo{Code: code, Message: message}})
	fmt.Println(string(errJSON))
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}
