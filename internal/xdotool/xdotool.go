package xdotool

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultBinary is looked up on PATH.
const DefaultBinary = "xdotool"

// CommandError reports an invocation that exited non-zero.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("xdotool %s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Client issues xdotool subcommands against window identifiers.
type Client struct {
	runner Runner
	binary string
	logger *log.Logger
}

// New returns a Client using runner. A nil logger falls back to the default logger.
func New(runner Runner, logger *log.Logger) *Client {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{runner: runner, binary: DefaultBinary, logger: logger}
}

// WithBinary returns a copy of c that invokes path instead of xdotool.
func (c *Client) WithBinary(path string) *Client {
	cp := *c
	if path != "" {
		cp.binary = path
	}
	return &cp
}

// raw runs a subcommand and returns its result regardless of exit status.
func (c *Client) raw(ctx context.Context, args ...string) (Result, error) {
	c.logger.Debug("exec", "cmd", c.binary+" "+strings.Join(args, " "))
	res, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return res, fmt.Errorf("run %s: %w", c.binary, err)
	}
	if out := strings.TrimSpace(res.Stdout); out != "" {
		c.logger.Debug("exec output", "stdout", out)
	}
	return res, nil
}

// run is raw but converts a non-zero exit into a *CommandError.
func (c *Client) run(ctx context.Context, args ...string) (Result, error) {
	res, err := c.raw(ctx, args...)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		return res, &CommandError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res, nil
}

// Search lists visible windows whose name matches pattern. xdotool exits 1
// when nothing matches; that is reported as an empty list.
func (c *Client) Search(ctx context.Context, pattern string) ([]string, error) {
	args := []string{"search", "--onlyvisible", "--name", pattern}
	res, err := c.raw(ctx, args...)
	if err != nil {
		return nil, err
	}
	ids := strings.Fields(res.Stdout)
	if res.ExitCode != 0 && len(ids) == 0 {
		if strings.TrimSpace(res.Stderr) == "" {
			return nil, nil
		}
		return nil, &CommandError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return ids, nil
}

// WindowName returns the title of window id.
func (c *Client) WindowName(ctx context.Context, id string) (string, error) {
	res, err := c.run(ctx, "getwindowname", id)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// ActiveWindow returns the identifier of the currently active window.
func (c *Client) ActiveWindow(ctx context.Context) (string, error) {
	res, err := c.run(ctx, "getactivewindow")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// WindowActivate activates id and waits for the window manager to confirm.
func (c *Client) WindowActivate(ctx context.Context, id string) error {
	_, err := c.run(ctx, "windowactivate", "--sync", id)
	return err
}

// WindowMap forces id to be mapped (visible).
func (c *Client) WindowMap(ctx context.Context, id string) error {
	_, err := c.run(ctx, "windowmap", id)
	return err
}

// WindowFocus gives id input focus.
func (c *Client) WindowFocus(ctx context.Context, id string) error {
	_, err := c.run(ctx, "windowfocus", id)
	return err
}

// WindowRaise raises id to the top of the stacking order.
func (c *Client) WindowRaise(ctx context.Context, id string) error {
	_, err := c.run(ctx, "windowraise", id)
	return err
}

// Key sends one key or chord (e.g. "ctrl+Escape") to id.
func (c *Client) Key(ctx context.Context, id, key string) error {
	_, err := c.run(ctx, "key", "--window", id, key)
	return err
}

// Type types text literally into id.
func (c *Client) Type(ctx context.Context, id, text string) error {
	_, err := c.run(ctx, "type", "--window", id, "--", text)
	return err
}
