package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/vdipaste/internal/progress"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// watchDebounce coalesces the burst of events editors produce on save.
const watchDebounce = 300 * time.Millisecond

var (
	barFull  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	barEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func newWatchCmd(flags *transferFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Transfer a file every time it changes",
		Long: `Watch a payload file and run a transfer, as a separate process, each time
the file is written. Progress is read from the transfer's stdout. Ctrl+C stops
the running transfer and the watch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := flags.mode(); err != nil {
				return err
			}
			return watchFile(cmd.Context(), cmd.OutOrStdout(), flags, args[0])
		},
	}
	flags.bind(cmd.Flags())
	return cmd
}

func watchFile(ctx context.Context, out io.Writer, flags *transferFlags, file string) error {
	path, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate vdipaste binary: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file on save, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	logger.Info("watching for changes", "file", path)

	args := append(flags.childArgs(), path)
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Debug("file changed", "op", ev.Op.String())
			debounce.Reset(watchDebounce)
		case <-debounce.C:
			code, err := spawnTransfer(ctx, out, exe, args)
			switch {
			case err != nil && ctx.Err() != nil:
				return nil
			case err != nil:
				logger.Error("transfer failed", "exit", code, "err", err)
			default:
				logger.Info("transfer finished", "file", filepath.Base(path))
			}
		}
	}
}

// spawnTransfer runs one transfer process and renders its progress until
// it exits. Cancelling ctx kills the process.
func spawnTransfer(ctx context.Context, out io.Writer, exe string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stderr = os.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, err
	}
	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("start transfer: %w", err)
	}

	view := newProgressView(out, isTerminal(out))
	mon := progress.NewMonitor(stdout, 16)
	for ev := range mon.Events() {
		view.Handle(ev)
	}

	err = cmd.Wait()
	view.Finish(err)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), err
	}
	if err != nil {
		return -1, err
	}
	return 0, mon.Err()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// progressView renders transfer progress, redrawing one line on a terminal
// and printing one line per event otherwise.
type progressView struct {
	out    io.Writer
	inline bool
	width  int
	drawn  bool
}

func newProgressView(out io.Writer, inline bool) *progressView {
	return &progressView{out: out, inline: inline, width: 30}
}

func (v *progressView) Handle(ev progress.Event) {
	switch ev.Kind {
	case progress.EventProgress:
		if v.inline {
			fmt.Fprintf(v.out, "\r%s", v.bar(ev.Percent))
			v.drawn = true
			return
		}
		fmt.Fprintln(v.out, v.bar(ev.Percent))
	case progress.EventError:
		v.breakLine()
		fmt.Fprintln(v.out, errStyle.Render("error: ")+ev.Message)
	}
}

func (v *progressView) Finish(err error) {
	v.breakLine()
	if err != nil {
		fmt.Fprintln(v.out, errStyle.Render("✗ transfer failed: ")+err.Error())
		return
	}
	fmt.Fprintln(v.out, okStyle.Render("✓ transfer complete"))
}

func (v *progressView) breakLine() {
	if v.drawn {
		fmt.Fprintln(v.out)
		v.drawn = false
	}
}

func (v *progressView) bar(pct float64) string {
	filled := int(pct / 100 * float64(v.width))
	filled = min(max(filled, 0), v.width)
	return barFull.Render(strings.Repeat("█", filled)) +
		barEmpty.Render(strings.Repeat("░", v.width-filled)) +
		fmt.Sprintf(" %6.2f%%", pct)
}
