package main

import (
	"context"

	"github.com/Gaurav-Gosain/vdipaste/internal/config"
	"github.com/Gaurav-Gosain/vdipaste/internal/payload"
	"github.com/Gaurav-Gosain/vdipaste/internal/transfer"
	"github.com/Gaurav-Gosain/vdipaste/internal/window"
	"github.com/spf13/pflag"
)

// transferFlags are the command-line options of a transfer.
type transferFlags struct {
	text, spreadsheet, image, code bool

	window     string
	clipboard  bool
	debug      bool
	configPath string
	configName string
	strategy   string
	xdotool    string
}

func (f *transferFlags) bind(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.text, "text", "t", false, "Send the payload as text")
	fs.BoolVarP(&f.spreadsheet, "spreadsheet", "s", false, "Send tab separated rows (Tab between fields, Return per row)")
	fs.BoolVarP(&f.image, "image", "i", false, "Image mode (not implemented)")
	fs.BoolVarP(&f.code, "code", "e", false, "Send the payload as source code")
	fs.StringVarP(&f.window, "window", "w", "", "Target window id (required unless the configuration launches its application)")
	fs.BoolVarP(&f.clipboard, "clipboard", "c", false, "Read the payload from the clipboard instead of a file")
	fs.StringVar(&f.configName, "config_name", "", "Name of the application configuration to use")
	fs.StringVar(&f.strategy, "strategy", "", "Override the send strategy: keys or chunks")
	fs.StringVar(&f.xdotool, "xdotool", "", "Path to the xdotool binary")
}

func (f *transferFlags) mode() (config.Mode, error) {
	pick := func(set bool, m config.Mode) config.Mode {
		if set {
			return m
		}
		return ""
	}
	return transfer.FlagMode(
		pick(f.text, config.ModeText),
		pick(f.spreadsheet, config.ModeSpreadsheet),
		pick(f.image, config.ModeImage),
		pick(f.code, config.ModeCode),
	)
}

// childArgs rebuilds the transfer flags for a child process.
func (f *transferFlags) childArgs() []string {
	var args []string
	for _, m := range []struct {
		set  bool
		flag string
	}{
		{f.text, "--text"},
		{f.spreadsheet, "--spreadsheet"},
		{f.image, "--image"},
		{f.code, "--code"},
		{f.debug, "--debug"},
	} {
		if m.set {
			args = append(args, m.flag)
		}
	}
	for _, kv := range [][2]string{
		{"--window", f.window},
		{"--config", f.configPath},
		{"--config_name", f.configName},
		{"--strategy", f.strategy},
		{"--xdotool", f.xdotool},
	} {
		if kv[1] != "" {
			args = append(args, kv[0], kv[1])
		}
	}
	return args
}

func runTransfer(ctx context.Context, f *transferFlags, file string) error {
	mode, err := f.mode()
	if err != nil {
		return err
	}

	engine := &transfer.Engine{
		Binary: f.xdotool,
		Logger: logger,
	}
	job, err := engine.Run(ctx, transfer.Options{
		ConfigPath: config.ResolvePath(f.configPath),
		ConfigName: f.configName,
		Mode:       mode,
		Window:     window.Handle(f.window),
		Source:     payload.Source{Clipboard: f.clipboard, Path: file},
		Strategy:   config.Strategy(f.strategy),
	})
	if err != nil {
		return err
	}
	logger.Debug("job finished", "job", job.ID, "state", job.State)
	return nil
}
