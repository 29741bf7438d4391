// Package config loads named application configurations for transfers.
//
// A configuration file holds an "applications" table mapping a name to the
// settings for one target application: how to reach its window, which open
// steps to run first and how fast to type.
package config

import (
	"fmt"
	"time"
)

// Kind says where the target application runs.
type Kind string

const (
	// KindRemote targets a window supplied by the caller (a VDI client window).
	KindRemote Kind = "remote"
	// KindLocal may launch the application and discover its window.
	KindLocal Kind = "local"
)

// Mode selects how the payload is delivered.
type Mode string

const (
	ModeText        Mode = "text"
	ModeSpreadsheet Mode = "spreadsheet"
	ModeImage       Mode = "image"
	ModeCode        Mode = "code"
)

// Valid reports whether m is a known transfer mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeText, ModeSpreadsheet, ModeImage, ModeCode:
		return true
	}
	return false
}

// Action is the kind of an open step.
type Action string

const (
	// ActionKey presses a key or chord, e.g. "ctrl+Escape".
	ActionKey Action = "key"
	// ActionType types literal text.
	ActionType Action = "type"
	// ActionLaunchWindow marks the application launch, which happens before
	// steps run.
	ActionLaunchWindow Action = "launch_window"
	// ActionRaiseWindow raises the target window.
	ActionRaiseWindow Action = "raise_window"
)

// Valid reports whether a is a known step action.
func (a Action) Valid() bool {
	switch a {
	case ActionKey, ActionType, ActionLaunchWindow, ActionRaiseWindow:
		return true
	}
	return false
}

// Strategy selects how text payloads are turned into automation commands.
type Strategy string

const (
	// StrategyKeys sends one key command per character.
	StrategyKeys Strategy = "keys"
	// StrategyChunks types CHUNK_SIZE characters per command.
	StrategyChunks Strategy = "chunks"
)

// Valid reports whether s is a known send strategy.
func (s Strategy) Valid() bool {
	return s == StrategyKeys || s == StrategyChunks
}

// OpenStep is one action run against the target window before the payload.
type OpenStep struct {
	Action Action `json:"action" toml:"action" yaml:"action"`
	Value  string `json:"value,omitempty" toml:"value,omitempty" yaml:"value,omitempty"`
}

func (s OpenStep) String() string {
	if s.Value == "" {
		return string(s.Action)
	}
	return fmt.Sprintf("%s %q", s.Action, s.Value)
}

// Application is a resolved, validated configuration. It is read-only once
// loaded.
type Application struct {
	Name          string
	Kind          Kind
	Mode          Mode
	LaunchCommand string
	WindowMatch   string
	WindowTitle   string
	OpenSteps     []OpenStep
	NoPayload     bool
	Strategy      Strategy

	DelayBetweenKeys         time.Duration
	DelayBetweenCommands     time.Duration
	DelayBetweenApplications time.Duration
	DelayBetweenChunks       time.Duration
	AppLoadTime              time.Duration
	ChunkSize                int
}

// LaunchesLocally reports whether the window is discovered by launching the
// application instead of being supplied by the caller.
func (a Application) LaunchesLocally() bool {
	return a.Kind == KindLocal && a.LaunchCommand != ""
}
