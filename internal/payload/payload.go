// Package payload reads the content to transfer, once, at job start.
package payload

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrNoSource is returned when neither the clipboard nor a file was selected.
var ErrNoSource = errors.New("no payload source: pass a file or use the clipboard")

// Clipboard reads the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
}

// SystemClipboard reads the host clipboard through xclip, xsel or
// wl-paste on Linux and the native APIs elsewhere.
type SystemClipboard struct{}

// ReadAll returns the clipboard text.
func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("no clipboard utility available (install xclip, xsel or wl-clipboard)")
	}
	return clipboard.ReadAll()
}

// Source selects where the payload comes from.
type Source struct {
	Clipboard bool
	Path      string
}

func (s Source) String() string {
	if s.Clipboard {
		return "clipboard"
	}
	return s.Path
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Read returns the payload with Windows and classic Mac line endings
// normalised to "\n".
// A nil clip uses the system clipboard.
func Read(src Source, clip Clipboard) (string, error) {
	var text string
	switch {
	case src.Clipboard:
		if clip == nil {
			clip = SystemClipboard{}
		}
		s, err := clip.ReadAll()
		if err != nil {
			return "", fmt.Errorf("read clipboard: %w", err)
		}
		text = s
	case src.Path != "":
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return "", fmt.Errorf("read payload: %w", err)
		}
		text = string(data)
	default:
		return "", ErrNoSource
	}
	return lineEndings.Replace(text), nil
}
