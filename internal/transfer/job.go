// Package transfer runs one transfer job: it loads the named application
// configuration, resolves the target window, runs the open steps and sends
// the payload, reporting progress on stdout.
package transfer

import (
	"github.com/Gaurav-Gosain/vdipaste/internal/config"
	"github.com/Gaurav-Gosain/vdipaste/internal/launch"
	"github.com/Gaurav-Gosain/vdipaste/internal/payload"
	"github.com/Gaurav-Gosain/vdipaste/internal/window"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Job is one running transfer. The window handle belongs to the job alone.
type Job struct {
	ID      string
	App     config.Application
	Mode    config.Mode
	Source  payload.Source
	Payload string
	Window  window.Handle
	State   State
	// Reason is set when the job was aborted.
	Reason error
	// Process is the application started for local launch configs.
	Process *launch.Process

	history []State
	logger  *log.Logger
}

func newJob(logger *log.Logger) *Job {
	id := uuid.NewString()
	return &Job{
		ID:      id,
		State:   StateInit,
		history: []State{StateInit},
		logger:  logger.With("job", id[:8]),
	}
}

// History returns every state the job has been in, in order.
func (j *Job) History() []State {
	return append([]State(nil), j.history...)
}

// sendsPayload reports whether the job reads and transfers content.
func (j *Job) sendsPayload() bool {
	return !j.App.NoPayload && j.Mode != config.ModeImage
}

func (j *Job) abort(err error) {
	if j.State.Terminal() {
		return
	}
	j.Reason = err
	_ = j.transition(StateAborted)
}
