package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownApplication is returned when the requested name is not in
	// the applications table.
	ErrUnknownApplication = errors.New("unknown application configuration")
	// ErrNoName is returned when no configuration name was given.
	ErrNoName = errors.New("no configuration name specified")
)

// ValidationError collects every problem found in one application entry.
type ValidationError struct {
	Application string
	Err         error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %v", e.Application, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// rawFile mirrors the on-disk layout. Pointer fields distinguish an absent
// key from a zero value so environment fallbacks apply only to absent keys.
type rawFile struct {
	Applications map[string]rawApplication `json:"applications" toml:"applications" yaml:"applications"`
}

type rawApplication struct {
	Type          *string    `json:"type" toml:"type" yaml:"type"`
	Mode          *string    `json:"mode" toml:"mode" yaml:"mode"`
	LaunchCommand *string    `json:"launch_command" toml:"launch_command" yaml:"launch_command"`
	WindowMatch   *string    `json:"window_match" toml:"window_match" yaml:"window_match"`
	OpenSteps     []OpenStep `json:"open_steps" toml:"open_steps" yaml:"open_steps"`
	NoPayload     *bool      `json:"no_payload" toml:"no_payload" yaml:"no_payload"`
	SendStrategy  *string    `json:"send_strategy" toml:"send_strategy" yaml:"send_strategy"`

	WindowTitle              *string  `json:"WINDOW_TITLE" toml:"WINDOW_TITLE" yaml:"WINDOW_TITLE"`
	DelayBetweenKeys         *float64 `json:"DELAY_BETWEEN_KEYS" toml:"DELAY_BETWEEN_KEYS" yaml:"DELAY_BETWEEN_KEYS"`
	DelayBetweenCommands     *float64 `json:"DELAY_BETWEEN_COMMANDS" toml:"DELAY_BETWEEN_COMMANDS" yaml:"DELAY_BETWEEN_COMMANDS"`
	DelayBetweenApplications *float64 `json:"DELAY_BETWEEN_APPLICATIONS" toml:"DELAY_BETWEEN_APPLICATIONS" yaml:"DELAY_BETWEEN_APPLICATIONS"`
	AppLoadTime              *float64 `json:"APP_LOAD_TIME" toml:"APP_LOAD_TIME" yaml:"APP_LOAD_TIME"`
	ChunkSize                *float64 `json:"CHUNK_SIZE" toml:"CHUNK_SIZE" yaml:"CHUNK_SIZE"`
	DelayBetweenChunks       *float64 `json:"DELAY_BETWEEN_CHUNKS" toml:"DELAY_BETWEEN_CHUNKS" yaml:"DELAY_BETWEEN_CHUNKS"`
}

// File is a parsed configuration file.
type File struct {
	Path string
	apps map[string]rawApplication
	env  func(string) (string, bool)
}

// Load reads path and returns the resolved application called name.
func Load(path, name string) (Application, error) {
	if strings.TrimSpace(name) == "" {
		return Application{}, ErrNoName
	}
	f, err := LoadFile(path)
	if err != nil {
		return Application{}, err
	}
	return f.Application(name)
}

// LoadFile reads and decodes a configuration file. The format is chosen by
// extension: .toml, .yaml/.yml, anything else is JSON.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	raw, err := decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("parse configuration %s: %w", path, err)
	}
	if raw.Applications == nil {
		return nil, fmt.Errorf("parse configuration %s: missing %q table", path, "applications")
	}
	return &File{Path: path, apps: raw.Applications, env: os.LookupEnv}, nil
}

func decode(path string, data []byte) (rawFile, error) {
	var raw rawFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return raw, errors.New(strict.String())
			}
			return raw, err
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil {
			return raw, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return raw, err
		}
	}
	return raw, nil
}

// Names returns the configured application names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.apps))
	for name := range f.apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Application resolves and validates the named entry.
func (f *File) Application(name string) (Application, error) {
	if strings.TrimSpace(name) == "" {
		return Application{}, ErrNoName
	}
	raw, ok := f.apps[name]
	if !ok {
		return Application{}, fmt.Errorf("%w: %q", ErrUnknownApplication, name)
	}
	lookup := f.env
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return resolve(name, raw, lookup)
}
