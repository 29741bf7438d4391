// Package progress implements the line protocol between a transfer process
// and whatever drives it: "PROGRESS:<percent>" and "ERROR:<message>" lines
// on stdout. Any other line is informational.
package progress

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

const (
	progressPrefix = "PROGRESS:"
	errorPrefix    = "ERROR:"
)

// Reporter writes protocol lines. Reported progress never decreases and is
// clamped to [0, 100].
type Reporter struct {
	mu   sync.Mutex
	w    io.Writer
	last float64
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Progress emits a PROGRESS line. Values below the last reported one are
// dropped.
func (r *Reporter) Progress(pct float64) {
	pct = min(max(pct, 0), 100)
	r.mu.Lock()
	defer r.mu.Unlock()
	if pct < r.last {
		return
	}
	r.last = pct
	fmt.Fprintf(r.w, "%s%.2f\n", progressPrefix, pct)
}

// Error emits an ERROR line. The message is folded onto one line.
func (r *Reporter) Error(msg string) {
	msg = strings.Join(strings.Fields(msg), " ")
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "%s%s\n", errorPrefix, msg)
}

// Last returns the highest progress reported so far.
func (r *Reporter) Last() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// EventKind tells protocol lines apart.
type EventKind int

const (
	EventProgress EventKind = iota
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one parsed protocol line.
type Event struct {
	Kind    EventKind
	Percent float64
	Message string
}

// Parse decodes a protocol line. It returns false for informational lines
// and for PROGRESS lines whose value is not a number.
func Parse(line string) (Event, bool) {
	line = strings.TrimRight(line, "\r\n")
	switch {
	case strings.HasPrefix(line, progressPrefix):
		pct, err := strconv.ParseFloat(strings.TrimSpace(line[len(progressPrefix):]), 64)
		if err != nil {
			return Event{}, false
		}
		return Event{Kind: EventProgress, Percent: pct}, true
	case strings.HasPrefix(line, errorPrefix):
		return Event{Kind: EventError, Message: strings.TrimSpace(line[len(errorPrefix):])}, true
	}
	return Event{}, false
}
