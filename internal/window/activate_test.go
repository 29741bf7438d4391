package window_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Gaurav-Gosain/vdipaste/internal/testutil"
	"github.com/Gaurav-Gosain/vdipaste/internal/window"
	"github.com/Gaurav-Gosain/vdipaste/internal/xdotool"
)

func subcommands(calls []testutil.Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Sub()
	}
	return out
}

func TestActivateSuccess(t *testing.T) {
	runner := &testutil.FakeRunner{}
	sleeper := &testutil.Sleeper{}
	a := window.NewActivator(xdotool.New(runner, nil), sleeper, nil)

	res, err := a.Activate(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Activated || res.Mapped {
		t.Errorf("unexpected result %+v", res)
	}
	want := []string{"windowactivate", "windowfocus", "windowraise"}
	if got := subcommands(runner.Calls); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if len(sleeper.Delays) != 0 {
		t.Errorf("unexpected delays %v", sleeper.Delays)
	}
}

func TestActivateMapsAndRetries(t *testing.T) {
	runner := &testutil.FakeRunner{}
	runner.Respond("windowactivate",
		xdotool.Result{ExitCode: 1, Stderr: "window not viewable"},
		xdotool.Result{},
	)
	sleeper := &testutil.Sleeper{}
	a := window.NewActivator(xdotool.New(runner, nil), sleeper, nil)

	res, err := a.Activate(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Activated || !res.Mapped {
		t.Errorf("unexpected result %+v", res)
	}
	want := []string{"windowactivate", "windowmap", "windowactivate", "windowfocus", "windowraise"}
	if got := subcommands(runner.Calls); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if got := sleeper.Count(window.MapSettleDelay); got != 1 {
		t.Errorf("map settle delays = %d, want 1", got)
	}
}

func TestActivateSoftFailure(t *testing.T) {
	runner := &testutil.FakeRunner{}
	runner.Respond("windowactivate", xdotool.Result{ExitCode: 1})
	runner.Respond("windowfocus", xdotool.Result{ExitCode: 1})
	runner.Respond("windowraise", xdotool.Result{ExitCode: 1})
	a := window.NewActivator(xdotool.New(runner, nil), &testutil.Sleeper{}, nil)

	res, err := a.Activate(context.Background(), "42")
	if err != nil {
		t.Fatalf("soft failures must not surface as errors: %v", err)
	}
	if res.Activated {
		t.Error("expected Activated=false after failed retry")
	}
	if res.ActivateErr == nil || res.FocusErr == nil || res.RaiseErr == nil {
		t.Errorf("expected best-effort errors recorded, got %+v", res)
	}
	if got := runner.Count("windowactivate"); got != 2 {
		t.Errorf("windowactivate calls = %d, want 2", got)
	}
}

func TestActivateUtilityMissing(t *testing.T) {
	runner := &testutil.FakeRunner{}
	missing := errors.New("executable file not found in $PATH")
	runner.Handler = func(args []string) (xdotool.Result, bool, error) {
		return xdotool.Result{}, true, missing
	}
	a := window.NewActivator(xdotool.New(runner, nil), &testutil.Sleeper{}, nil)

	if _, err := a.Activate(context.Background(), "42"); !errors.Is(err, missing) {
		t.Fatalf("expected hard error, got %v", err)
	}
}

func TestActivateIdempotent(t *testing.T) {
	runner := &testutil.FakeRunner{}
	a := window.NewActivator(xdotool.New(runner, nil), &testutil.Sleeper{}, nil)
	ctx := context.Background()

	first, err := a.Activate(ctx, "42")
	if err != nil {
		t.Fatalf("first activation: %v", err)
	}
	second, err := a.Activate(ctx, "42")
	if err != nil {
		t.Fatalf("second activation: %v", err)
	}
	if first != second {
		t.Errorf("activation not idempotent: %+v vs %+v", first, second)
	}
}

func TestEnsureActiveReactivates(t *testing.T) {
	runner := &testutil.FakeRunner{}
	runner.Respond("getactivewindow", xdotool.Result{Stdout: "99\n"})
	a := window.NewActivator(xdotool.New(runner, nil), &testutil.Sleeper{}, nil)

	if err := a.EnsureActive(context.Background(), "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := runner.Count("windowactivate"); got != 2 {
		t.Errorf("windowactivate calls = %d, want 2", got)
	}
}

func TestEnsureActiveAlreadyActive(t *testing.T) {
	runner := &testutil.FakeRunner{}
	runner.Respond("getactivewindow", xdotool.Result{Stdout: "42\n"})
	a := window.NewActivator(xdotool.New(runner, nil), &testutil.Sleeper{}, nil)

	if err := a.EnsureActive(context.Background(), "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := runner.Count("windowactivate"); got != 1 {
		t.Errorf("windowactivate calls = %d, want 1", got)
	}
}
