package progress_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/vdipaste/internal/progress"
)

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewReporter(&buf)

	r.Progress(12.5)
	r.Progress(5) // lower values are dropped
	r.Error("window\nnot   focused")
	r.Progress(250)
	r.Progress(100)

	want := "PROGRESS:12.50\nERROR:window not focused\nPROGRESS:100.00\nPROGRESS:100.00\n"
	if got := buf.String(); got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
	if r.Last() != 100 {
		t.Errorf("Last = %v", r.Last())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want progress.Event
		ok   bool
	}{
		{"PROGRESS:100.00", progress.Event{Kind: progress.EventProgress, Percent: 100}, true},
		{"PROGRESS:33.33\r\n", progress.Event{Kind: progress.EventProgress, Percent: 33.33}, true},
		{"ERROR:could not focus window", progress.Event{Kind: progress.EventError, Message: "could not focus window"}, true},
		{"PROGRESS:abc", progress.Event{}, false},
		{"Transfer completed", progress.Event{}, false},
		{"", progress.Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := progress.Parse(tt.line)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Parse(%q) = %+v, %v; want %+v, %v", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMonitor(t *testing.T) {
	input := strings.Join([]string{
		"starting",
		"PROGRESS:10.00",
		"ERROR:image mode is not implemented",
		"debug noise",
		"PROGRESS:100.00",
	}, "\n")

	m := progress.NewMonitor(strings.NewReader(input), 1)
	var got []progress.Event
	for ev := range m.Events() {
		got = append(got, ev)
	}
	if err := m.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("events = %+v, want 3", got)
	}
	if got[0].Percent != 10 || got[1].Kind != progress.EventError || got[2].Percent != 100 {
		t.Errorf("unexpected events %+v", got)
	}
}

func TestMonitorWithPipe(t *testing.T) {
	pr, pw := io.Pipe()
	m := progress.NewMonitor(pr, 0)
	rep := progress.NewReporter(pw)

	go func() {
		for _, pct := range []float64{25, 50, 75, 100} {
			rep.Progress(pct)
		}
		pw.Close()
	}()

	var last float64
	n := 0
	for ev := range m.Events() {
		if ev.Percent < last {
			t.Errorf("progress went backwards: %v after %v", ev.Percent, last)
		}
		last = ev.Percent
		n++
	}
	if n != 4 || last != 100 {
		t.Errorf("received %d events ending at %v", n, last)
	}
}
