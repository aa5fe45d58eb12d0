// Package progress reports incremental progress of long-running computations
// such as distance-matrix construction and resampling loops.
package progress

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

// Reporter receives progress updates.  Implementations must be safe for
// concurrent use, since matrix construction steps from multiple goroutines.
type Reporter interface {
	// Step records n completed units of work.
	Step(n int)
	// Done marks the tracked computation as finished.
	Done()
}

// Factory creates a Reporter for one computation of a known total size.
type Factory func(total int64, message string) Reporter

// Discard returns a reporter that ignores all updates.
func Discard(int64, string) Reporter { return nopReporter{} }

type nopReporter struct{}

func (nopReporter) Step(int) {}
func (nopReporter) Done()    {}

// NewWriter returns a factory producing reporters that print progress lines
// to w, at most once per second.
func NewWriter(w io.Writer) Factory {
	return func(total int64, message string) Reporter {
		return &writerReporter{
			w:       w,
			total:   total,
			message: message,
			started: time.Now(),
		}
	}
}

type writerReporter struct {
	w       io.Writer
	total   int64
	message string
	started time.Time

	count     atomic.Int64
	lastPrint atomic.Int64 // unix nanos of the last printed line
}

func (r *writerReporter) Step(n int) {
	count := r.count.Add(int64(n))
	now := time.Now().UnixNano()
	last := r.lastPrint.Load()
	if now-last < int64(time.Second) {
		return
	}
	if !r.lastPrint.CompareAndSwap(last, now) {
		return
	}
	r.print(count, false)
}

func (r *writerReporter) Done() {
	r.print(r.count.Load(), true)
}

func (r *writerReporter) print(count int64, done bool) {
	elapsed := time.Since(r.started).Seconds()
	rate := float64(count)
	if elapsed > 0 {
		rate = float64(count) / elapsed
	}
	pct := 100.0
	if r.total > 0 {
		pct = 100 * float64(count) / float64(r.total)
	}
	state := "\n"
	if !done {
		state = "\r"
	}
	fmt.Fprintf(r.w, "%s: %s/%s (%.1f%%, %s it/s)%s",
		r.message,
		humanize.Comma(count), humanize.Comma(r.total),
		pct, humanize.CommafWithDigits(rate, 1), state)
}
