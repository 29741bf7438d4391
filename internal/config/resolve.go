package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/vdipaste/internal/clock"
)

// resolve applies config value -> environment -> default to every field in
// one pass and reports all problems together.
func resolve(name string, raw rawApplication, lookup func(string) (string, bool)) (Application, error) {
	r := resolver{lookup: lookup}
	app := Application{
		Name:          name,
		Kind:          Kind(strings.ToLower(deref(raw.Type, string(KindRemote)))),
		Mode:          Mode(strings.ToLower(strings.TrimSpace(deref(raw.Mode, "")))),
		LaunchCommand: strings.TrimSpace(deref(raw.LaunchCommand, "")),
		WindowMatch:   deref(raw.WindowMatch, ""),
		OpenSteps:     append([]OpenStep(nil), raw.OpenSteps...),
		Strategy:      Strategy(strings.ToLower(deref(raw.SendStrategy, string(StrategyKeys)))),
	}
	if raw.NoPayload != nil {
		app.NoPayload = *raw.NoPayload
	}
	if app.Kind == "" {
		app.Kind = KindRemote
	}
	if app.Strategy == "" {
		app.Strategy = StrategyKeys
	}

	app.WindowTitle = r.str(raw.WindowTitle, EnvWindowTitle, "")
	app.DelayBetweenKeys = r.seconds(raw.DelayBetweenKeys, EnvDelayBetweenKeys, DefaultDelayBetweenKeys)
	app.DelayBetweenCommands = r.seconds(raw.DelayBetweenCommands, EnvDelayBetweenCommands, DefaultDelayBetweenCommands)
	app.DelayBetweenApplications = r.seconds(raw.DelayBetweenApplications, EnvDelayBetweenApplications, DefaultDelayBetweenApplications)
	app.AppLoadTime = r.seconds(raw.AppLoadTime, EnvAppLoadTime, DefaultAppLoadTime)
	app.DelayBetweenChunks = r.seconds(raw.DelayBetweenChunks, EnvDelayBetweenChunks, DefaultDelayBetweenChunks)
	app.ChunkSize = r.chunkSize(raw.ChunkSize)

	errs := r.errs
	switch app.Kind {
	case KindLocal, KindRemote:
	default:
		errs = append(errs, fmt.Errorf("type must be %q or %q, got %q", KindLocal, KindRemote, app.Kind))
	}
	if !app.Strategy.Valid() {
		errs = append(errs, fmt.Errorf("send_strategy must be %q or %q, got %q", StrategyKeys, StrategyChunks, app.Strategy))
	}
	if app.LaunchesLocally() && app.WindowMatch == "" {
		errs = append(errs, errors.New("window_match is required with launch_command"))
	}
	for i, step := range app.OpenSteps {
		switch {
		case !step.Action.Valid():
			errs = append(errs, fmt.Errorf("open_steps[%d]: unsupported action %q", i, step.Action))
		case step.Action == ActionKey && strings.TrimSpace(step.Value) == "":
			errs = append(errs, fmt.Errorf("open_steps[%d]: key step needs a value", i))
		}
	}

	if len(errs) > 0 {
		return Application{}, &ValidationError{Application: name, Err: errors.Join(errs...)}
	}
	return app, nil
}

type resolver struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *resolver) env(key string) (string, bool) {
	v, ok := r.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *resolver) str(v *string, key, def string) string {
	if v != nil {
		return *v
	}
	if env, ok := r.env(key); ok {
		return env
	}
	return def
}

func (r *resolver) float(v *float64, key string) (float64, bool) {
	if v != nil {
		return *v, true
	}
	env, ok := r.env(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(env, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be a number: %w", key, err))
		return 0, false
	}
	return f, true
}

func (r *resolver) seconds(v *float64, key string, def time.Duration) time.Duration {
	f, ok := r.float(v, key)
	if !ok {
		return def
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		r.errs = append(r.errs, fmt.Errorf("%s must be >= 0, got %v", key, f))
		return def
	}
	return clock.Seconds(f)
}

func (r *resolver) chunkSize(v *float64) int {
	f, ok := r.float(v, EnvChunkSize)
	if !ok {
		return DefaultChunkSize
	}
	if f < 1 || f != math.Trunc(f) {
		r.errs = append(r.errs, fmt.Errorf("%s must be a positive integer, got %v", EnvChunkSize, f))
		return DefaultChunkSize
	}
	return int(f)
}

func deref(v *string, def string) string {
	if v == nil {
		return def
	}
	return strings.TrimSpace(*v)
}
