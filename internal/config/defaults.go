package config

import "time"

// Environment variable names. The same names are used as keys in the
// configuration file.
const (
	EnvWindowTitle              = "WINDOW_TITLE"
	EnvDelayBetweenKeys         = "DELAY_BETWEEN_KEYS"
	EnvDelayBetweenCommands     = "DELAY_BETWEEN_COMMANDS"
	EnvDelayBetweenApplications = "DELAY_BETWEEN_APPLICATIONS"
	EnvAppLoadTime              = "APP_LOAD_TIME"
	EnvChunkSize                = "CHUNK_SIZE"
	EnvDelayBetweenChunks       = "DELAY_BETWEEN_CHUNKS"
)

const (
	DefaultDelayBetweenKeys         = 50 * time.Millisecond
	DefaultDelayBetweenCommands     = 200 * time.Millisecond
	DefaultDelayBetweenApplications = 0
	DefaultAppLoadTime              = 5 * time.Second
	DefaultDelayBetweenChunks       = 500 * time.Millisecond
	DefaultChunkSize                = 5
)
