package config

// View is the flattened, resolved form of an Application used when printing
// a configuration. Delays are in seconds, as in the file.
type View struct {
	Name          string     `toml:"name"`
	Type          Kind       `toml:"type"`
	Mode          Mode       `toml:"mode,omitempty"`
	LaunchCommand string     `toml:"launch_command,omitempty"`
	WindowMatch   string     `toml:"window_match,omitempty"`
	WindowTitle   string     `toml:"WINDOW_TITLE,omitempty"`
	NoPayload     bool       `toml:"no_payload"`
	SendStrategy  Strategy   `toml:"send_strategy"`
	OpenSteps     []OpenStep `toml:"open_steps,omitempty"`

	DelayBetweenKeys         float64 `toml:"DELAY_BETWEEN_KEYS"`
	DelayBetweenCommands     float64 `toml:"DELAY_BETWEEN_COMMANDS"`
	DelayBetweenApplications float64 `toml:"DELAY_BETWEEN_APPLICATIONS"`
	DelayBetweenChunks       float64 `toml:"DELAY_BETWEEN_CHUNKS"`
	AppLoadTime              float64 `toml:"APP_LOAD_TIME"`
	ChunkSize                int     `toml:"CHUNK_SIZE"`
}

// View returns the printable form of a.
func (a Application) View() View {
	return View{
		Name:                     a.Name,
		Type:                     a.Kind,
		Mode:                     a.Mode,
		LaunchCommand:            a.LaunchCommand,
		WindowMatch:              a.WindowMatch,
		WindowTitle:              a.WindowTitle,
		NoPayload:                a.NoPayload,
		SendStrategy:             a.Strategy,
		OpenSteps:                a.OpenSteps,
		DelayBetweenKeys:         a.DelayBetweenKeys.Seconds(),
		DelayBetweenCommands:     a.DelayBetweenCommands.Seconds(),
		DelayBetweenApplications: a.DelayBetweenApplications.Seconds(),
		DelayBetweenChunks:       a.DelayBetweenChunks.Seconds(),
		AppLoadTime:              a.AppLoadTime.Seconds(),
		ChunkSize:                a.ChunkSize,
	}
}
