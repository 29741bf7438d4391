// Package launch starts local applications detached from the transfer
// process.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"

	"github.com/anmitsu/go-shlex"
	"github.com/charmbracelet/log"
)

// ErrEmptyCommand is returned for a blank launch command.
var ErrEmptyCommand = errors.New("empty launch command")

// Process is a launched application. The transfer never waits on it; it
// only records whether it has already exited.
type Process struct {
	Command string
	Pid     int

	mu     sync.Mutex
	exited bool
	err    error
	done   chan struct{}
}

// Start splits command with shell quoting rules and starts it in its own
// session, with stdio detached.
func Start(ctx context.Context, command string, logger *log.Logger) (*Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	args, err := shlex.Split(command, true)
	if err != nil {
		return nil, fmt.Errorf("parse launch command %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := exec.Command(args[0], args[1:]...)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launch %q: %w", command, err)
	}

	p := &Process{Command: command, Pid: cmd.Process.Pid, done: make(chan struct{})}
	logger.Info("launched application", "cmd", command, "pid", p.Pid)

	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		p.exited, p.err = true, err
		p.mu.Unlock()
		close(p.done)
		logger.Debug("launched application exited", "pid", p.Pid, "err", err)
	}()
	return p, nil
}

// Exited reports whether the process has terminated.
func (p *Process) Exited() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exited
}

// Err returns the wait error once the process has exited.
func (p *Process) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Done is closed when the process exits.
func (p *Process) Done() <-chan struct{} {
	return p.done
}
