package xdotool_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Gaurav-Gosain/vdipaste/internal/testutil"
	"github.com/Gaurav-Gosain/vdipaste/internal/xdotool"
)

func TestClientArguments(t *testing.T) {
	ctx := context.Background()
	runner := &testutil.FakeRunner{}
	c := xdotool.New(runner, nil)

	steps := []struct {
		name string
		call func() error
		want []string
	}{
		{"activate", func() error { return c.WindowActivate(ctx, "42") }, []string{"windowactivate", "--sync", "42"}},
		{"map", func() error { return c.WindowMap(ctx, "42") }, []string{"windowmap", "42"}},
		{"focus", func() error { return c.WindowFocus(ctx, "42") }, []string{"windowfocus", "42"}},
		{"raise", func() error { return c.WindowRaise(ctx, "42") }, []string{"windowraise", "42"}},
		{"key", func() error { return c.Key(ctx, "42", "ctrl+Escape") }, []string{"key", "--window", "42", "ctrl+Escape"}},
		{"type", func() error { return c.Type(ctx, "42", "-note") }, []string{"type", "--window", "42", "--", "-note"}},
	}

	for i, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := runner.Calls[i]
			if got.Name != xdotool.DefaultBinary {
				t.Errorf("binary = %q, want %q", got.Name, xdotool.DefaultBinary)
			}
			if !reflect.DeepEqual(got.Args, tt.want) {
				t.Errorf("args = %v, want %v", got.Args, tt.want)
			}
		})
	}
}

func TestClientCommandError(t *testing.T) {
	runner := &testutil.FakeRunner{}
	runner.Respond("key", xdotool.Result{ExitCode: 1, Stderr: "XGetWindowProperty failed\n"})
	c := xdotool.New(runner, nil)

	err := c.Key(context.Background(), "42", "a")
	var cmdErr *xdotool.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %v", err)
	}
	if cmdErr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", cmdErr.ExitCode)
	}
	if cmdErr.Stderr != "XGetWindowProperty failed\n" {
		t.Errorf("Stderr = %q", cmdErr.Stderr)
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name    string
		result  xdotool.Result
		want    []string
		wantErr bool
	}{
		{"matches", xdotool.Result{Stdout: "101\n202\n"}, []string{"101", "202"}, false},
		{"no match", xdotool.Result{ExitCode: 1}, nil, false},
		{"failure", xdotool.Result{ExitCode: 1, Stderr: "Can't open display"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &testutil.FakeRunner{}
			runner.Respond("search", tt.result)
			c := xdotool.New(runner, nil)

			got, err := c.Search(context.Background(), "Notepad")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
			want := []string{"search", "--onlyvisible", "--name", "Notepad"}
			if !reflect.DeepEqual(runner.Calls[0].Args, want) {
				t.Errorf("args = %v, want %v", runner.Calls[0].Args, want)
			}
		})
	}
}

func TestWithBinary(t *testing.T) {
	runner := &testutil.FakeRunner{}
	c := xdotool.New(runner, nil).WithBinary("/opt/bin/xdotool")
	if _, err := c.ActiveWindow(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.Calls[0].Name != "/opt/bin/xdotool" {
		t.Errorf("binary = %q", runner.Calls[0].Name)
	}
}
