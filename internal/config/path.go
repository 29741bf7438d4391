package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppName names the per-user configuration directory.
	AppName = "vdipaste"
	// DefaultFile is the configuration file looked up when --config is not given.
	DefaultFile = "config.json"
)

// ResolvePath returns the configuration file to read. An existing path is
// used as given. When the default file is missing from the working
// directory, $XDG_CONFIG_HOME/vdipaste/config.json is tried.
func ResolvePath(path string) string {
	if path == "" {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err == nil || !errors.Is(err, os.ErrNotExist) {
		return path
	}
	if path != DefaultFile {
		return path
	}
	if found, err := xdg.SearchConfigFile(filepath.Join(AppName, DefaultFile)); err == nil {
		return found
	}
	return path
}

// UserPath returns the per-user configuration path, whether or not it exists.
func UserPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, DefaultFile)
}
