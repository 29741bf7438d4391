// Package window finds and activates target windows on the host desktop.
package window

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/vdipaste/internal/clock"
	"github.com/Gaurav-Gosain/vdipaste/internal/xdotool"
	"github.com/charmbracelet/log"
)

// Handle is an opaque window identifier as printed by xdotool.
type Handle string

// ErrNotFound is returned when no visible window title matches a pattern.
var ErrNotFound = errors.New("window not found")

// Info describes one visible window.
type Info struct {
	Handle Handle
	Title  string
}

// Locator searches visible windows by title.
type Locator struct {
	xdo    *xdotool.Client
	sleep  clock.Sleeper
	logger *log.Logger
}

// NewLocator returns a Locator. A nil sleeper uses the wall clock.
func NewLocator(xdo *xdotool.Client, sleep clock.Sleeper, logger *log.Logger) *Locator {
	if sleep == nil {
		sleep = clock.Real{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Locator{xdo: xdo, sleep: sleep, logger: logger}
}

// Find returns the last listed visible window whose title contains pattern.
// It searches up to maxAttempts times, waiting retryDelay between attempts,
// and returns ErrNotFound when every attempt comes back empty.
func (l *Locator) Find(ctx context.Context, pattern string, maxAttempts int, retryDelay time.Duration) (Handle, error) {
	if pattern == "" {
		return "", fmt.Errorf("%w: empty title pattern", ErrNotFound)
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := l.sleep.Sleep(ctx, retryDelay); err != nil {
				return "", err
			}
		}

		l.logger.Debug("searching windows", "pattern", pattern, "attempt", attempt, "of", maxAttempts)
		h, err := l.match(ctx, pattern)
		if err != nil {
			return "", err
		}
		if h != "" {
			l.logger.Info("found window", "window", h, "pattern", pattern)
			return h, nil
		}
	}

	return "", fmt.Errorf("%w: no visible window title contains %q after %d attempts", ErrNotFound, pattern, maxAttempts)
}

// match runs one search pass. xdotool matches --name as a regular
// expression, so each candidate's title is confirmed as a plain substring.
func (l *Locator) match(ctx context.Context, pattern string) (Handle, error) {
	ids, err := l.xdo.Search(ctx, pattern)
	if err != nil {
		return "", err
	}
	l.logger.Debug("visible candidates", "count", len(ids))

	var found Handle
	for _, id := range ids {
		title, err := l.xdo.WindowName(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			l.logger.Debug("skipping window", "window", id, "err", err)
			continue
		}
		if strings.Contains(title, pattern) {
			found = Handle(id)
		}
	}
	return found, nil
}

// Visible lists every visible window that has a title.
func (l *Locator) Visible(ctx context.Context) ([]Info, error) {
	ids, err := l.xdo.Search(ctx, ".")
	if err != nil {
		return nil, err
	}
	windows := make([]Info, 0, len(ids))
	for _, id := range ids {
		title, err := l.xdo.WindowName(ctx, id)
		if err != nil || title == "" {
			continue
		}
		windows = append(windows, Info{Handle: Handle(id), Title: title})
	}
	return windows, nil
}
