/*
	This file implements a monitor of bucket traffic so a run can report how many
	bytes it moved.
*/

package storage

import (
	"fmt"
	"sync/atomic"

	humanize "github.com/dustin/go-humanize"
)

var (
	storeBytesRead    atomic.Int64
	storeBytesWritten atomic.Int64
	gets              atomic.Int64
	puts              atomic.Int64
)

// StoreBytesRead notes a GET of n bytes from a bucket.
func StoreBytesRead(n int) {
	storeBytesRead.Add(int64(n))
	gets.Add(1)
}

// StoreBytesWritten notes a PUT of n bytes to a bucket.
func StoreBytesWritten(n int) {
	storeBytesWritten.Add(int64(n))
	puts.Add(1)
}

// IOStats are running totals of bucket traffic.
type IOStats struct {
	BytesRead    int64
	BytesWritten int64
	Gets         int64
	Puts         int64
}

// CurrentIOStats returns the totals since the process started.
func CurrentIOStats() IOStats {
	return IOStats{
		BytesRead:    storeBytesRead.Load(),
		BytesWritten: storeBytesWritten.Load(),
		Gets:         gets.Load(),
		Puts:         puts.Load(),
	}
}

// Since returns the traffic between an earlier snapshot and s.
func (s IOStats) Since(prev IOStats) IOStats {
	return IOStats{
		BytesRead:    s.BytesRead - prev.BytesRead,
		BytesWritten: s.BytesWritten - prev.BytesWritten,
		Gets:         s.Gets - prev.Gets,
		Puts:         s.Puts - prev.Puts,
	}
}

func (s IOStats) String() string {
	return fmt.Sprintf("read %s in %d gets, wrote %s in %d puts", humanize.Bytes(uint64(s.BytesRead)), s.Gets,
		humanize.Bytes(uint64(s.BytesWritten)), s.Puts)
}
