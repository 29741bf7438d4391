package payload_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Gaurav-Gosain/vdipaste/internal/payload"
)

type staticClipboard struct {
	text string
	err  error
}

func (c staticClipboard) ReadAll() (string, error) { return c.text, c.err }

func TestRead(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "payload.txt")
	if err := os.WriteFile(file, []byte("a\tb\r\nc\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		src     payload.Source
		clip    payload.Clipboard
		want    string
		wantErr bool
	}{
		{name: "clipboard", src: payload.Source{Clipboard: true}, clip: staticClipboard{text: "hi\n"}, want: "hi\n"},
		{name: "clipboard wins over path", src: payload.Source{Clipboard: true, Path: file}, clip: staticClipboard{text: "clip"}, want: "clip"},
		{name: "file normalises line endings", src: payload.Source{Path: file}, want: "a\tb\nc\n"},
		{name: "lone carriage returns", src: payload.Source{Clipboard: true}, clip: staticClipboard{text: "a\rb\r\nc\r"}, want: "a\nb\nc\n"},
		{name: "clipboard error", src: payload.Source{Clipboard: true}, clip: staticClipboard{err: errors.New("no display")}, wantErr: true},
		{name: "missing file", src: payload.Source{Path: filepath.Join(dir, "missing")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := payload.Read(tt.src, tt.clip)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if got != tt.want {
				t.Errorf("Read = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadNoSource(t *testing.T) {
	if _, err := payload.Read(payload.Source{}, nil); !errors.Is(err, payload.ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}
}

func TestSourceString(t *testing.T) {
	if got := (payload.Source{Clipboard: true, Path: "x"}).String(); got != "clipboard" {
		t.Errorf("String = %q", got)
	}
	if got := (payload.Source{Path: "data.tsv"}).String(); got != "data.tsv" {
		t.Errorf("String = %q", got)
	}
}
