// Package testutil holds fakes shared by the engine tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/Gaurav-Gosain/vdipaste/internal/xdotool"
)

// Call records a single automation utility invocation.
type Call struct {
	Name string
	Args []string
}

// Sub returns the xdotool subcommand of the call.
func (c Call) Sub() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Last returns the final argument of the call.
func (c Call) Last() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[len(c.Args)-1]
}

// FakeRunner implements xdotool.Runner and records calls for tests.
// Unscripted calls succeed with empty output.
type FakeRunner struct {
	mu        sync.Mutex
	Calls     []Call
	responses map[string][]xdotool.Result

	// Handler, when set, overrides scripted responses. Returning
	// handled=false falls through to the scripted queue.
	Handler func(args []string) (res xdotool.Result, handled bool, err error)
}

// Ensure FakeRunner implements the interface.
var _ xdotool.Runner = (*FakeRunner)(nil)

// Respond queues results for a subcommand. The last queued result is
// repeated once the queue drains.
func (f *FakeRunner) Respond(sub string, results ...xdotool.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.responses == nil {
		f.responses = make(map[string][]xdotool.Result)
	}
	f.responses[sub] = append(f.responses[sub], results...)
}

// Run records the call and returns the scripted result.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (xdotool.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Name: name, Args: append([]string(nil), args...)})
	if err := ctx.Err(); err != nil {
		return xdotool.Result{}, err
	}
	if f.Handler != nil {
		if res, handled, err := f.Handler(args); handled {
			return res, err
		}
	}
	if len(args) == 0 {
		return xdotool.Result{}, nil
	}
	queue := f.responses[args[0]]
	switch len(queue) {
	case 0:
		return xdotool.Result{}, nil
	case 1:
		return queue[0], nil
	default:
		f.responses[args[0]] = queue[1:]
		return queue[0], nil
	}
}

// Filter returns the recorded calls for one subcommand.
func (f *FakeRunner) Filter(sub string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.Calls {
		if c.Sub() == sub {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of recorded calls for one subcommand.
func (f *FakeRunner) Count(sub string) int {
	return len(f.Filter(sub))
}

// Input returns the key and type calls in order, formatted as "key:<keysym>"
// and "type:<text>".
func (f *FakeRunner) Input() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.Calls {
		switch c.Sub() {
		case "key", "type":
			out = append(out, c.Sub()+":"+c.Last())
		}
	}
	return out
}

// Sleeper records requested delays without blocking.
type Sleeper struct {
	mu     sync.Mutex
	Delays []time.Duration
}

// Sleep records d and returns the context error, if any.
func (s *Sleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.Delays = append(s.Delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

// Total returns the sum of recorded delays.
func (s *Sleeper) Total() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total time.Duration
	for _, d := range s.Delays {
		total += d
	}
	return total
}

// Count returns how many times d was requested.
func (s *Sleeper) Count(d time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, got := range s.Delays {
		if got == d {
			n++
		}
	}
	return n
}
