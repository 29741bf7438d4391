// Package steps runs the configured open steps against a target window
// before the payload is sent.
package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/vdipaste/internal/clock"
	"github.com/Gaurav-Gosain/vdipaste/internal/config"
	"github.com/Gaurav-Gosain/vdipaste/internal/window"
	"github.com/charmbracelet/log"
)

// Dispatcher is the subset of the command dispatcher used by steps.
type Dispatcher interface {
	Key(ctx context.Context, h window.Handle, key string) error
	Type(ctx context.Context, h window.Handle, text string) error
	Raise(ctx context.Context, h window.Handle) error
}

// StepError reports the first open step that failed. Steps before it have
// already been applied to the window.
type StepError struct {
	Index int
	Step  config.OpenStep
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("open step %d (%s): %v", e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Sequencer executes open steps in order.
type Sequencer struct {
	dispatch Dispatcher
	sleep    clock.Sleeper
	logger   *log.Logger

	// Pause is waited after every executed step so the remote desktop can
	// open menus and applications (DELAY_BETWEEN_APPLICATIONS). Zero
	// runs the steps back to back.
	Pause time.Duration
}

// New returns a Sequencer that sends commands through d. A nil sleeper
// uses the wall clock.
func New(d Dispatcher, sleep clock.Sleeper, logger *log.Logger) *Sequencer {
	if sleep == nil {
		sleep = clock.Real{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Sequencer{dispatch: d, sleep: sleep, logger: logger}
}

// Run executes steps against h and stops at the first failure.
// launch_window steps are skipped; the launch happens before sequencing.
func (s *Sequencer) Run(ctx context.Context, h window.Handle, steps []config.OpenStep) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.logger.Debug("open step", "index", i+1, "of", len(steps), "step", step.String(), "window", h)

		if step.Action == config.ActionLaunchWindow {
			continue
		}
		if err := s.exec(ctx, h, step); err != nil {
			return &StepError{Index: i, Step: step, Err: err}
		}
		if s.Pause <= 0 {
			continue
		}
		if err := s.sleep.Sleep(ctx, s.Pause); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sequencer) exec(ctx context.Context, h window.Handle, step config.OpenStep) error {
	switch step.Action {
	case config.ActionLaunchWindow:
		return nil
	case config.ActionKey:
		return s.dispatch.Key(ctx, h, step.Value)
	case config.ActionType:
		return s.dispatch.Type(ctx, h, step.Value)
	case config.ActionRaiseWindow:
		return s.dispatch.Raise(ctx, h)
	default:
		return fmt.Errorf("unsupported action %q", step.Action)
	}
}
