// Package dispatch issues single automation commands against a target
// window, activating it first and pacing commands with the configured
// delays.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/Gaurav-Gosain/vdipaste/internal/clock"
	"github.com/Gaurav-Gosain/vdipaste/internal/window"
	"github.com/Gaurav-Gosain/vdipaste/internal/xdotool"
	"github.com/charmbracelet/log"
)

// ErrActivationFailed is returned when the target window could not be
// activated before a key or type command. The command is not sent.
var ErrActivationFailed = errors.New("window activation failed")

// Activator brings the target window to the foreground.
type Activator interface {
	Activate(ctx context.Context, h window.Handle) (window.Activation, error)
}

// Timing holds the pacing parameters of a dispatcher.
type Timing struct {
	// ChunkSize is the number of characters per type command. Zero sends
	// the whole value at once.
	ChunkSize       int
	BetweenChunks   time.Duration
	BetweenCommands time.Duration
}

// Dispatcher sends key, type and raise commands.
type Dispatcher struct {
	xdo    *xdotool.Client
	act    Activator
	timing Timing
	sleep  clock.Sleeper
	logger *log.Logger

	// OnActivation, when set, receives every activation result so callers
	// can surface soft failures.
	OnActivation func(window.Activation)
}

// New returns a Dispatcher. A nil sleeper uses the wall clock.
func New(xdo *xdotool.Client, act Activator, timing Timing, sleep clock.Sleeper, logger *log.Logger) *Dispatcher {
	if sleep == nil {
		sleep = clock.Real{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{xdo: xdo, act: act, timing: timing, sleep: sleep, logger: logger}
}

// Key activates h and presses key, which may be a chord such as "ctrl+c".
func (d *Dispatcher) Key(ctx context.Context, h window.Handle, key string) error {
	if err := d.activate(ctx, h); err != nil {
		return err
	}
	if err := d.xdo.Key(ctx, string(h), key); err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	return d.settle(ctx)
}

// Type types text into h in chunks of Timing.ChunkSize characters. The
// window is activated before every chunk.
func (d *Dispatcher) Type(ctx context.Context, h window.Handle, text string) error {
	if text == "" {
		return nil
	}
	for _, chunk := range Chunks(text, d.timing.ChunkSize) {
		if err := d.activate(ctx, h); err != nil {
			return err
		}
		if err := d.xdo.Type(ctx, string(h), chunk); err != nil {
			return fmt.Errorf("type %q: %w", chunk, err)
		}
		if err := d.sleep.Sleep(ctx, d.timing.BetweenChunks); err != nil {
			return err
		}
	}
	return d.settle(ctx)
}

// Raise raises h. It does not activate the window.
func (d *Dispatcher) Raise(ctx context.Context, h window.Handle) error {
	if err := d.xdo.WindowRaise(ctx, string(h)); err != nil {
		return fmt.Errorf("raise window: %w", err)
	}
	return d.settle(ctx)
}

func (d *Dispatcher) activate(ctx context.Context, h window.Handle) error {
	res, err := d.act.Activate(ctx, h)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", ErrActivationFailed, err)
	}
	if d.OnActivation != nil {
		d.OnActivation(res)
	}
	return nil
}

func (d *Dispatcher) settle(ctx context.Context) error {
	return d.sleep.Sleep(ctx, d.timing.BetweenCommands)
}

// Chunks splits s into pieces of at most size runes. A non-positive size
// returns s whole.
func Chunks(s string, size int) []string {
	if s == "" {
		return nil
	}
	if size <= 0 || utf8.RuneCountInString(s) <= size {
		return []string{s}
	}
	var out []string
	start, n := 0, 0
	for i := range s {
		if n == size {
			out = append(out, s[start:i])
			start, n = i, 0
		}
		n++
	}
	return append(out, s[start:])
}
