// Package sender streams a payload into a target window, either one key
// command per character or as typed segments, and reports percent progress.
package sender

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/vdipaste/internal/clock"
	"github.com/Gaurav-Gosain/vdipaste/internal/config"
	"github.com/Gaurav-Gosain/vdipaste/internal/dispatch"
	"github.com/Gaurav-Gosain/vdipaste/internal/keymap"
	"github.com/Gaurav-Gosain/vdipaste/internal/window"
	"github.com/charmbracelet/log"
)

// ErrEmptyPayload is returned before any dispatch when there is nothing to send.
var ErrEmptyPayload = errors.New("payload is empty")

const (
	// ProgressEvery is the number of characters between progress reports.
	ProgressEvery = 100
	// SegmentSize is the number of characters per type command with the
	// chunks strategy. The dispatcher splits each segment further by
	// CHUNK_SIZE.
	SegmentSize = 100
)

// Dispatcher sends single commands to a window.
type Dispatcher interface {
	Key(ctx context.Context, h window.Handle, key string) error
	Type(ctx context.Context, h window.Handle, text string) error
}

// Focuser makes sure the target window holds focus before sending starts.
type Focuser interface {
	EnsureActive(ctx context.Context, h window.Handle) error
}

// Progress receives percent-complete values in [0, 100].
type Progress interface {
	Progress(pct float64)
}

// Options configure a Sender.
type Options struct {
	Strategy config.Strategy
	KeyDelay time.Duration
}

// Sender delivers payloads to one window.
type Sender struct {
	dispatch Dispatcher
	focus    Focuser
	progress Progress
	sleep    clock.Sleeper
	logger   *log.Logger
	opts     Options
}

// New returns a Sender. focus and progress may be nil.
func New(d Dispatcher, focus Focuser, progress Progress, sleep clock.Sleeper, logger *log.Logger, opts Options) *Sender {
	if sleep == nil {
		sleep = clock.Real{}
	}
	if logger == nil {
		logger = log.Default()
	}
	if opts.Strategy == "" {
		opts.Strategy = config.StrategyKeys
	}
	return &Sender{dispatch: d, focus: focus, progress: progress, sleep: sleep, logger: logger, opts: opts}
}

// Text sends text to h and stops at the first failed dispatch. The failed
// character is not retried.
func (s *Sender) Text(ctx context.Context, h window.Handle, text string) error {
	if text == "" {
		return ErrEmptyPayload
	}
	if err := s.ensureActive(ctx, h); err != nil {
		return err
	}

	switch s.opts.Strategy {
	case config.StrategyChunks:
		return s.segments(ctx, h, text)
	default:
		return s.keys(ctx, h, text)
	}
}

func (s *Sender) keys(ctx context.Context, h window.Handle, text string) error {
	runes := []rune(text)
	total := len(runes)
	s.logger.Info("sending text", "window", h, "chars", total, "strategy", config.StrategyKeys)

	for i, r := range runes {
		if err := s.dispatch.Key(ctx, h, keymap.Key(r)); err != nil {
			return fmt.Errorf("send character %d of %d: %w", i+1, total, err)
		}
		if err := s.sleep.Sleep(ctx, s.opts.KeyDelay); err != nil {
			return err
		}
		if sent := i + 1; sent%ProgressEvery == 0 || sent == total {
			s.report(Percent(sent, total))
		}
	}
	return nil
}

func (s *Sender) segments(ctx context.Context, h window.Handle, text string) error {
	segments := dispatch.Chunks(text, SegmentSize)
	total := len([]rune(text))
	s.logger.Info("sending text", "window", h, "chars", total, "segments", len(segments), "strategy", config.StrategyChunks)

	sent := 0
	for i, seg := range segments {
		if err := s.dispatch.Type(ctx, h, seg); err != nil {
			return fmt.Errorf("send segment %d of %d: %w", i+1, len(segments), err)
		}
		sent += len([]rune(seg))
		s.report(Percent(sent, total))
	}
	return nil
}

// Sheet sends tab separated rows: each field is typed, fields are separated
// by Tab and every row ends with Return. Blank rows and rows starting with
// "#" are skipped.
func (s *Sender) Sheet(ctx context.Context, h window.Handle, text string) error {
	if text == "" {
		return ErrEmptyPayload
	}
	rows := Rows(text)
	s.logger.Info("sending spreadsheet", "window", h, "rows", len(rows))
	if len(rows) == 0 {
		s.report(100)
		return nil
	}
	if err := s.ensureActive(ctx, h); err != nil {
		return err
	}

	for i, fields := range rows {
		for j, field := range fields {
			if j > 0 {
				if err := s.dispatch.Key(ctx, h, "Tab"); err != nil {
					return fmt.Errorf("row %d: %w", i+1, err)
				}
			}
			if field == "" {
				continue
			}
			if err := s.dispatch.Type(ctx, h, field); err != nil {
				return fmt.Errorf("row %d field %d: %w", i+1, j+1, err)
			}
		}
		if err := s.dispatch.Key(ctx, h, "Return"); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		s.report(Percent(i+1, len(rows)))
	}
	return nil
}

// Rows splits text into rows of tab separated fields, dropping blank lines
// and comment lines.
func Rows(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows
}

// Percent returns sent/total as a percentage rounded to two decimals.
func Percent(sent, total int) float64 {
	if total <= 0 {
		return 100
	}
	return math.Round(float64(sent)/float64(total)*10000) / 100
}

func (s *Sender) ensureActive(ctx context.Context, h window.Handle) error {
	if s.focus == nil {
		return nil
	}
	if err := s.focus.EnsureActive(ctx, h); err != nil {
		return fmt.Errorf("%w: %w", dispatch.ErrActivationFailed, err)
	}
	return nil
}

func (s *Sender) report(pct float64) {
	if s.progress != nil {
		s.progress.Progress(pct)
	}
}
