package transfer

import (
	"errors"
	"fmt"
)

// Kind classifies why a transfer was aborted.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindPayload
	KindWindowResolution
	KindStepExecution
	KindDispatch
	KindInvalidMode
	KindUncaught
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindPayload:
		return "payload"
	case KindWindowResolution:
		return "window resolution"
	case KindStepExecution:
		return "step execution"
	case KindDispatch:
		return "dispatch"
	case KindInvalidMode:
		return "invalid mode"
	case KindUncaught:
		return "internal"
	default:
		return "unknown"
	}
}

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInvalidMode = 6
	ExitUncaught    = 7
)

// Error is a classified transfer failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the classification of err, KindUnknown when err is not a
// transfer error.
func KindOf(err error) Kind {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Kind
	}
	return KindUnknown
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case KindInvalidMode:
		return ExitInvalidMode
	case KindUncaught:
		return ExitUncaught
	default:
		return ExitFailure
	}
}

// Recovered converts a recovered panic value into an uncaught error.
func Recovered(v any) error {
	if err, ok := v.(error); ok {
		return wrap(KindUncaught, fmt.Errorf("panic: %w", err))
	}
	return errorf(KindUncaught, "panic: %v", v)
}
