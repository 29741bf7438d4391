package progress

import (
	"bufio"
	"io"
	"sync"
)

// DefaultCapacity is the event buffer used when NewMonitor gets a
// non-positive capacity.
const DefaultCapacity = 64

// Monitor reads a transfer's output and delivers protocol events on a
// bounded channel. When the buffer is full the reader blocks, which in turn
// blocks the writing process.
type Monitor struct {
	events chan Event
	mu     sync.Mutex
	err    error
}

// NewMonitor starts reading r. The Events channel is closed when r hits
// EOF or fails.
func NewMonitor(r io.Reader, capacity int) *Monitor {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	m := &Monitor{events: make(chan Event, capacity)}
	go m.read(r)
	return m
}

func (m *Monitor) read(r io.Reader) {
	defer close(m.events)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if ev, ok := Parse(scanner.Text()); ok {
			m.events <- ev
		}
	}
	if err := scanner.Err(); err != nil {
		m.mu.Lock()
		m.err = err
		m.mu.Unlock()
	}
}

// Events returns the event channel.
func (m *Monitor) Events() <-chan Event {
	return m.events
}

// Err returns the read error, if any, once Events is closed.
func (m *Monitor) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
