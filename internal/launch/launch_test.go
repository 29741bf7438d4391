//go:build unix

package launch

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStartAndExit(t *testing.T) {
	p, err := Start(context.Background(), `sh -c "exit 3"`, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if p.Pid <= 0 {
		t.Errorf("Pid = %d", p.Pid)
	}

	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit")
	}
	if !p.Exited() {
		t.Error("Exited = false after Done")
	}
	if p.Err() == nil {
		t.Error("expected the non-zero exit to be recorded")
	}
}

func TestStartErrors(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		command string
		wantErr error
	}{
		{name: "blank", ctx: context.Background(), command: "   ", wantErr: ErrEmptyCommand},
		{name: "unterminated quote", ctx: context.Background(), command: `app "oops`},
		{name: "missing binary", ctx: context.Background(), command: "vdipaste-definitely-not-installed --flag"},
		{name: "cancelled", ctx: cancelled, command: "true", wantErr: context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Start(tt.ctx, tt.command, nil)
			if err == nil {
				t.Fatalf("expected an error, started pid %d", p.Pid)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v is not %v", err, tt.wantErr)
			}
		})
	}
}
