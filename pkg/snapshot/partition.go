package snapshot

import "io"

// PartitionRange describes one caller-driven share of a snapshot file: a
// byte offset that begins a transaction record, and the number of
// outputs a reader started there (via WithPartition) should expect to
// emit before stopping.
type PartitionRange struct {
	Offset      int64
	OutputCount uint64
}

// Partition scans a seekable snapshot once, front to back, and returns
// the header plus a set of transaction-boundary-safe split points that
// divide the file's outputs into contiguous shares. Fanning the
// resulting ranges out across goroutines is the caller's job; this
// helper only computes where it's safe to cut — it starts no threads and
// opens no additional readers itself.
func Partition(rs io.ReadSeeker, shares int) (Header, []PartitionRange, error) {
	if shares < 1 {
		shares = 1
	}

	rd := NewReader(rs, WithLeaveOpen())
	header, err := rd.ReadHeader()
	if err != nil {
		return Header{}, nil, err
	}

	type boundary struct {
		offset     int64
		cumulative uint64
	}
	bounds := []boundary{{offset: HeaderSize, cumulative: 0}}

	for _, err := range rd.Transactions() {
		if err != nil {
			return Header{}, nil, err
		}
		bounds = append(bounds, boundary{offset: rd.offset, cumulative: rd.emitted})
	}

	if header.UTXOCount == 0 || len(bounds) < 2 {
		return header, []PartitionRange{{Offset: HeaderSize, OutputCount: header.UTXOCount}}, nil
	}

	target := header.UTXOCount / uint64(shares)
	if target == 0 {
		target = header.UTXOCount
	}

	var ranges []PartitionRange
	lastOffset := bounds[0].offset
	lastCumulative := uint64(0)
	next := target

	for i := 1; i < len(bounds); i++ {
		last := i == len(bounds)-1
		if bounds[i].cumulative >= next || last {
			ranges = append(ranges, PartitionRange{
				Offset:      lastOffset,
				OutputCount: bounds[i].cumulative - lastCumulative,
			})
			lastOffset = bounds[i].offset
			lastCumulative = bounds[i].cumulative
			next = lastCumulative + target
			if len(ranges) == shares-1 {
				next = header.UTXOCount
			}
		}
	}
	return header, ranges, nil
}
