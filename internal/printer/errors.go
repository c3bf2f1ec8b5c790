package printer

import (
	"errors"
	"fmt"
)

// ErrDeviceNotFound means no enumerated device matched the configured
// identifiers. Fatal: no job can run without a device.
var ErrDeviceNotFound = errors.New("no matching printer device found")

// ErrTransportIO marks a failed write or configure call. The device
// may be desynchronized afterwards; the caller decides on reconnect.
var ErrTransportIO = errors.New("transport write failed")

// Stage names the pipeline step a job was in when it failed.
type Stage int

const (
	StageRendering Stage = iota + 1
	StageFraming
	StageTransmitting
)

func (s Stage) String() string {
	switch s {
	case StageRendering:
		return "rendering"
	case StageFraming:
		return "framing"
	case StageTransmitting:
		return "transmitting"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// JobError reports which stage aborted the job. The wrapped error
// carries the specific kind.
type JobError struct {
	Stage Stage
	Err   error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("print job failed while %s: %v", e.Stage, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}
