package window_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/vdipaste/internal/testutil"
	"github.com/Gaurav-Gosain/vdipaste/internal/window"
	"github.com/Gaurav-Gosain/vdipaste/internal/xdotool"
)

// titles scripts getwindowname by window id.
func titles(runner *testutil.FakeRunner, byID map[string]string) {
	runner.Handler = func(args []string) (xdotool.Result, bool, error) {
		if args[0] != "getwindowname" {
			return xdotool.Result{}, false, nil
		}
		title, ok := byID[args[1]]
		if !ok {
			return xdotool.Result{ExitCode: 1, Stderr: "BadWindow"}, true, nil
		}
		return xdotool.Result{Stdout: title + "\n"}, true, nil
	}
}

func TestFindLastMatchWins(t *testing.T) {
	runner := &testutil.FakeRunner{}
	runner.Respond("search", xdotool.Result{Stdout: "11\n22\n33\n"})
	titles(runner, map[string]string{
		"11": "Untitled - Notepad",
		"22": "Inbox - Mail",
		"33": "notes.txt - Notepad",
	})
	sleeper := &testutil.Sleeper{}
	l := window.NewLocator(xdotool.New(runner, nil), sleeper, nil)

	h, err := l.Find(context.Background(), "Notepad", 3, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h != "33" {
		t.Errorf("handle = %q, want %q", h, "33")
	}
	if len(sleeper.Delays) != 0 {
		t.Errorf("expected no retry delay, got %v", sleeper.Delays)
	}
}

func TestFindSubstringFiltersRegexMatches(t *testing.T) {
	runner := &testutil.FakeRunner{}
	runner.Respond("search", xdotool.Result{Stdout: "11\n"})
	titles(runner, map[string]string{"11": "Notepad++"})
	l := window.NewLocator(xdotool.New(runner, nil), &testutil.Sleeper{}, nil)

	if _, err := l.Find(context.Background(), "Note.pad", 1, 0); !errors.Is(err, window.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindExhaustsAttempts(t *testing.T) {
	runner := &testutil.FakeRunner{}
	runner.Respond("search", xdotool.Result{ExitCode: 1})
	sleeper := &testutil.Sleeper{}
	l := window.NewLocator(xdotool.New(runner, nil), sleeper, nil)

	_, err := l.Find(context.Background(), "Excel", 4, 250*time.Millisecond)
	if !errors.Is(err, window.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := runner.Count("search"); got != 4 {
		t.Errorf("search calls = %d, want 4", got)
	}
	if got := sleeper.Count(250 * time.Millisecond); got != 3 {
		t.Errorf("retry delays = %d, want 3", got)
	}
}

func TestFindRetriesUntilWindowAppears(t *testing.T) {
	runner := &testutil.FakeRunner{}
	runner.Respond("search",
		xdotool.Result{ExitCode: 1},
		xdotool.Result{ExitCode: 1},
		xdotool.Result{Stdout: "77\n"},
	)
	titles(runner, map[string]string{"77": "Book1 - Excel"})
	l := window.NewLocator(xdotool.New(runner, nil), &testutil.Sleeper{}, nil)

	h, err := l.Find(context.Background(), "Excel", 10, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h != "77" {
		t.Errorf("handle = %q, want 77", h)
	}
	if got := runner.Count("search"); got != 3 {
		t.Errorf("search calls = %d, want 3", got)
	}
}

func TestVisible(t *testing.T) {
	runner := &testutil.FakeRunner{}
	runner.Respond("search", xdotool.Result{Stdout: "1\n2\n3\n"})
	titles(runner, map[string]string{"1": "Terminal", "3": "VDI - Brave"})
	l := window.NewLocator(xdotool.New(runner, nil), &testutil.Sleeper{}, nil)

	got, err := l.Visible(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []window.Info{{Handle: "1", Title: "Terminal"}, {Handle: "3", Title: "VDI - Brave"}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("window %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
