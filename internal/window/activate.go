package window

import (
	"context"
	"errors"
	"time"

	"github.com/Gaurav-Gosain/vdipaste/internal/clock"
	"github.com/Gaurav-Gosain/vdipaste/internal/xdotool"
	"github.com/charmbracelet/log"
)

// MapSettleDelay is how long a freshly mapped window gets before activation
// is retried.
const MapSettleDelay = 500 * time.Millisecond

// Activation is the outcome of one activation attempt. Only the fact that
// activation was attempted is guaranteed; the window may still be unfocused.
type Activation struct {
	Handle Handle
	// Activated is false when both the primary and the retried
	// windowactivate call exited non-zero.
	Activated bool
	// Mapped is true when the map-then-retry fallback ran.
	Mapped bool
	// ActivateErr, FocusErr and RaiseErr hold the best-effort failures.
	ActivateErr error
	FocusErr    error
	RaiseErr    error
}

// Activator brings windows to the foreground.
type Activator struct {
	xdo    *xdotool.Client
	sleep  clock.Sleeper
	logger *log.Logger
}

// NewActivator returns an Activator. A nil sleeper uses the wall clock.
func NewActivator(xdo *xdotool.Client, sleep clock.Sleeper, logger *log.Logger) *Activator {
	if sleep == nil {
		sleep = clock.Real{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Activator{xdo: xdo, sleep: sleep, logger: logger}
}

// Activate activates h, mapping it and retrying once if the first
// activation is refused, then issues best-effort focus and raise calls.
//
// Utility failures are recorded in the returned Activation. The error is
// reserved for the utility not running at all or the context ending.
func (a *Activator) Activate(ctx context.Context, h Handle) (Activation, error) {
	res := Activation{Handle: h, Activated: true}
	id := string(h)

	err := a.xdo.WindowActivate(ctx, id)
	if hard(err) {
		return res, err
	}
	if err != nil {
		a.logger.Warn("window activation refused, mapping and retrying", "window", h, "err", err)
		res.Mapped = true
		if mapErr := a.xdo.WindowMap(ctx, id); hard(mapErr) {
			return res, mapErr
		} else if mapErr != nil {
			a.logger.Debug("windowmap failed", "window", h, "err", mapErr)
		}
		if err := a.sleep.Sleep(ctx, MapSettleDelay); err != nil {
			return res, err
		}
		err = a.xdo.WindowActivate(ctx, id)
		if hard(err) {
			return res, err
		}
		if err != nil {
			res.Activated = false
			res.ActivateErr = err
			a.logger.Warn("window activation failed after map", "window", h, "err", err)
		}
	}

	res.FocusErr = a.xdo.WindowFocus(ctx, id)
	if hard(res.FocusErr) {
		return res, res.FocusErr
	}
	if res.FocusErr != nil {
		a.logger.Debug("windowfocus failed", "window", h, "err", res.FocusErr)
	}
	res.RaiseErr = a.xdo.WindowRaise(ctx, id)
	if hard(res.RaiseErr) {
		return res, res.RaiseErr
	}
	if res.RaiseErr != nil {
		a.logger.Debug("windowraise failed", "window", h, "err", res.RaiseErr)
	}

	a.logger.Debug("attempted to activate, focus and raise window", "window", h)
	return res, nil
}

// EnsureActive activates h and, if another window still holds focus,
// activates it once more.
func (a *Activator) EnsureActive(ctx context.Context, h Handle) error {
	if _, err := a.Activate(ctx, h); err != nil {
		return err
	}
	active, err := a.xdo.ActiveWindow(ctx)
	if hard(err) {
		return err
	}
	if err == nil && active == string(h) {
		return nil
	}
	a.logger.Warn("target is not the active window, reactivating", "window", h, "active", active)
	_, err = a.Activate(ctx, h)
	return err
}

// hard reports whether err is something other than a non-zero exit.
func hard(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr *xdotool.CommandError
	return !errors.As(err, &cmdErr)
}
