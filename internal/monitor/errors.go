package monitor

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetSource marks a scan that could not read its target list
	ErrTargetSource = errors.New("target source unavailable")
	// ErrAlertSink marks a scan cut short because an alert could not be delivered
	ErrAlertSink = errors.New("alert sink failed")
)

// SourceError is returned when the target list cannot be read. It stops the scheduler.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%v: %v", ErrTargetSource, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrTargetSource, e.Err}
}

// AlertError is returned when the sink rejects an alert. Only the current scan is abandoned.
type AlertError struct {
	URL     string
	Skipped int // targets left unprobed in this scan
	Err     error
}

func (e *AlertError) Error() string {
	return fmt.Sprintf("%v for %s (%d targets skipped): %v", ErrAlertSink, e.URL, e.Skipped, e.Err)
}

func (e *AlertError) Unwrap() []error {
	return []error{ErrAlertSink, e.Err}
}
