package transfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Gaurav-Gosain/vdipaste/internal/clock"
	"github.com/Gaurav-Gosain/vdipaste/internal/config"
	"github.com/Gaurav-Gosain/vdipaste/internal/dispatch"
	"github.com/Gaurav-Gosain/vdipaste/internal/launch"
	"github.com/Gaurav-Gosain/vdipaste/internal/payload"
	"github.com/Gaurav-Gosain/vdipaste/internal/progress"
	"github.com/Gaurav-Gosain/vdipaste/internal/sender"
	"github.com/Gaurav-Gosain/vdipaste/internal/steps"
	"github.com/Gaurav-Gosain/vdipaste/internal/window"
	"github.com/Gaurav-Gosain/vdipaste/internal/xdotool"
	"github.com/charmbracelet/log"
)

const (
	// DefaultLocateAttempts is how often a launched or titled window is
	// searched for.
	DefaultLocateAttempts = 10
	// DefaultLocateDelay separates window searches.
	DefaultLocateDelay = time.Second
)

// Launcher starts a local application.
type Launcher func(ctx context.Context, command string, logger *log.Logger) (*launch.Process, error)

// Options select what one Run transfers and where.
type Options struct {
	ConfigPath string
	ConfigName string
	// Mode overrides the configured mode when set.
	Mode config.Mode
	// Window is the externally supplied target, used unless the
	// configuration launches its own application.
	Window window.Handle
	Source payload.Source
	// Strategy overrides the configured send strategy when set.
	Strategy config.Strategy
}

// Engine holds the collaborators shared by transfers. The zero value runs
// the real xdotool binary, reads the system clipboard and writes the
// progress protocol to os.Stdout.
type Engine struct {
	Runner    xdotool.Runner
	Binary    string
	Clipboard payload.Clipboard
	Sleeper   clock.Sleeper
	Stdout    io.Writer
	Logger    *log.Logger
	Launch    Launcher

	LocateAttempts int
	LocateDelay    time.Duration
}

// Run executes one transfer job. The returned error is always a *Error.
func (e *Engine) Run(ctx context.Context, opts Options) (job *Job, err error) {
	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}
	job = newJob(logger)
	job.Source = opts.Source
	out := e.Stdout
	if out == nil {
		out = os.Stdout
	}
	rep := progress.NewReporter(out)

	defer func() {
		if r := recover(); r != nil {
			err = Recovered(r)
		}
		if err != nil {
			job.abort(err)
			job.logger.Error("transfer aborted", "kind", KindOf(err), "err", err)
		}
	}()

	r := &run{Engine: e, ctx: ctx, opts: opts, job: job, rep: rep, log: job.logger}
	if err := r.execute(); err != nil {
		return job, err
	}
	return job, nil
}

// run carries the per-job state through the lifecycle.
type run struct {
	*Engine
	ctx  context.Context
	opts Options
	job  *Job
	rep  *progress.Reporter
	log  *log.Logger

	xdo     *xdotool.Client
	sleep   clock.Sleeper
	locator *window.Locator
	act     *window.Activator

	softOnce sync.Once
}

func (r *run) execute() error {
	if err := r.loadConfig(); err != nil {
		return err
	}
	if err := r.readPayload(); err != nil {
		return err
	}

	r.setup()
	h, err := r.resolveWindow()
	if err != nil {
		return err
	}
	r.job.Window = h
	if err := r.advance(StateWindowResolved); err != nil {
		return err
	}
	r.log.Info("target window resolved", "window", h)

	app := r.job.App
	d := dispatch.New(r.xdo, r.act, dispatch.Timing{
		ChunkSize:       app.ChunkSize,
		BetweenChunks:   app.DelayBetweenChunks,
		BetweenCommands: app.DelayBetweenCommands,
	}, r.sleep, r.log)
	d.OnActivation = r.reportActivation

	seq := steps.New(d, r.sleep, r.log)
	seq.Pause = app.DelayBetweenApplications
	if len(app.OpenSteps) > 0 {
		r.log.Info("running open steps", "count", len(app.OpenSteps))
	}
	if err := seq.Run(r.ctx, h, app.OpenSteps); err != nil {
		return wrap(KindStepExecution, err)
	}
	if err := r.advance(StateStepsExecuted); err != nil {
		return err
	}
	if err := r.advance(StatePayloadDecision); err != nil {
		return err
	}

	return r.transfer(d)
}

func (r *run) loadConfig() error {
	app, err := config.Load(r.opts.ConfigPath, r.opts.ConfigName)
	if err != nil {
		return wrap(KindConfig, err)
	}
	if s := r.opts.Strategy; s != "" {
		if !s.Valid() {
			return errorf(KindConfig, "unknown send strategy %q", s)
		}
		app.Strategy = s
	}
	r.job.App = app

	// A no_payload config may leave the mode unset; it only matters once
	// content is transferred.
	mode := r.opts.Mode
	if mode == "" {
		mode = app.Mode
	}
	if mode != "" || !app.NoPayload {
		if mode, err = resolveMode(r.opts.Mode, app.Mode); err != nil {
			return err
		}
	}
	r.job.Mode = mode
	r.log.Info("configuration loaded", "name", app.Name, "type", app.Kind, "mode", mode, "strategy", app.Strategy)
	return r.advance(StateConfigLoaded)
}

func (r *run) readPayload() error {
	if !r.job.sendsPayload() {
		r.log.Debug("payload not needed", "no_payload", r.job.App.NoPayload, "mode", r.job.Mode)
		return nil
	}
	text, err := payload.Read(r.opts.Source, r.Clipboard)
	if err != nil {
		return wrap(KindPayload, err)
	}
	if text == "" {
		return wrap(KindPayload, fmt.Errorf("%s: %w", r.opts.Source, sender.ErrEmptyPayload))
	}
	r.job.Payload = text
	r.log.Debug("payload read", "source", r.opts.Source, "chars", len([]rune(text)))
	return nil
}

func (r *run) setup() {
	r.sleep = r.Sleeper
	if r.sleep == nil {
		r.sleep = clock.Real{}
	}
	r.xdo = xdotool.New(r.Runner, r.log).WithBinary(r.Binary)
	r.locator = window.NewLocator(r.xdo, r.sleep, r.log)
	r.act = window.NewActivator(r.xdo, r.sleep, r.log)
}

func (r *run) resolveWindow() (window.Handle, error) {
	app := r.job.App
	switch {
	case app.LaunchesLocally():
		return r.launchAndLocate()
	case r.opts.Window != "":
		return r.opts.Window, nil
	case app.WindowTitle != "":
		h, err := r.locator.Find(r.ctx, app.WindowTitle, r.attempts(), r.delay())
		if err != nil {
			return "", wrap(KindWindowResolution, err)
		}
		return h, nil
	default:
		return "", errorf(KindWindowResolution, "no target window: pass --window or configure %s", config.EnvWindowTitle)
	}
}

func (r *run) launchAndLocate() (window.Handle, error) {
	app := r.job.App
	start := r.Launch
	if start == nil {
		start = launch.Start
	}
	proc, err := start(r.ctx, app.LaunchCommand, r.log)
	if err != nil {
		return "", wrap(KindWindowResolution, err)
	}
	r.job.Process = proc

	r.log.Info("waiting for application to load", "delay", app.AppLoadTime)
	if err := r.sleep.Sleep(r.ctx, app.AppLoadTime); err != nil {
		return "", wrap(KindWindowResolution, err)
	}

	h, err := r.locator.Find(r.ctx, app.WindowMatch, r.attempts(), r.delay())
	if err != nil {
		if proc.Exited() {
			err = fmt.Errorf("%w (launched process has already exited)", err)
		}
		r.rep.Error(fmt.Sprintf("failed to find window matching %q for %s", app.WindowMatch, app.Name))
		return "", wrap(KindWindowResolution, err)
	}
	return h, nil
}

func (r *run) transfer(d *dispatch.Dispatcher) error {
	job := r.job
	if job.App.NoPayload {
		r.log.Info("no_payload set, skipping content transfer")
		return r.skip()
	}

	snd := sender.New(d, r.act, r.rep, r.sleep, r.log, sender.Options{
		Strategy: job.App.Strategy,
		KeyDelay: job.App.DelayBetweenKeys,
	})

	var send func(context.Context, window.Handle, string) error
	switch job.Mode {
	case config.ModeText, config.ModeCode:
		send = snd.Text
	case config.ModeSpreadsheet:
		send = snd.Sheet
	case config.ModeImage:
		r.log.Warn("image transfer is not implemented")
		r.rep.Error("image mode is not implemented")
		return r.skip()
	default:
		return errorf(KindInvalidMode, "unknown transfer mode %q", job.Mode)
	}

	if err := r.advance(StateTransferring); err != nil {
		return err
	}
	if err := send(r.ctx, job.Window, job.Payload); err != nil {
		return wrap(KindDispatch, err)
	}
	if r.rep.Last() < 100 {
		r.rep.Progress(100)
	}
	r.log.Info("transfer completed", "mode", job.Mode, "window", job.Window)
	return r.advance(StateCompleted)
}

func (r *run) skip() error {
	if err := r.advance(StateSkippedPayload); err != nil {
		return err
	}
	r.rep.Progress(100)
	return r.advance(StateCompleted)
}

func (r *run) advance(to State) error {
	if err := r.job.transition(to); err != nil {
		return wrap(KindUncaught, err)
	}
	return nil
}

// reportActivation surfaces the first soft activation failure of a job.
func (r *run) reportActivation(a window.Activation) {
	if a.Activated {
		return
	}
	r.softOnce.Do(func() {
		r.rep.Error(fmt.Sprintf("could not activate window %s: %v", a.Handle, a.ActivateErr))
	})
}

func (r *run) attempts() int {
	if r.LocateAttempts > 0 {
		return r.LocateAttempts
	}
	return DefaultLocateAttempts
}

func (r *run) delay() time.Duration {
	if r.LocateDelay > 0 {
		return r.LocateDelay
	}
	return DefaultLocateDelay
}

// resolveMode prefers the command-line mode over the configured one.
func resolveMode(flag, configured config.Mode) (config.Mode, error) {
	mode := flag
	if mode == "" {
		mode = configured
	}
	if mode == "" {
		return "", errorf(KindInvalidMode, "no transfer mode: pass one of --text, --spreadsheet, --image, --code or set mode in the configuration")
	}
	if !mode.Valid() {
		return "", errorf(KindInvalidMode, "unknown transfer mode %q", mode)
	}
	return mode, nil
}

// FlagMode returns the single mode selected on the command line, "" when
// none was. Selecting more than one is an invalid mode.
func FlagMode(selected ...config.Mode) (config.Mode, error) {
	var mode config.Mode
	for _, m := range selected {
		if m == "" {
			continue
		}
		if mode != "" && m != mode {
			return "", errorf(KindInvalidMode, "conflicting transfer modes %q and %q", mode, m)
		}
		mode = m
	}
	return mode, nil
}
