package printer

import (
	"log/slog"

	"tickertape/internal/bitmap"
	"tickertape/internal/render"
)

// State of the job pipeline. Transitions are strictly forward within a
// job; a failure at any stage aborts the whole job and the next
// attempt starts over from rendering.
type State int

const (
	StateIdle State = iota
	StateRendering
	StateFraming
	StateTransmitting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	case StateFraming:
		return "framing"
	case StateTransmitting:
		return "transmitting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Orchestrator sequences rendering, framing and transmission for one
// job at a time. It exclusively owns the connection for the duration
// of each job. There is no retry within a job; the caller owns retry
// policy.
type Orchestrator struct {
	conn     Connection
	profile  Profile
	renderer *render.Renderer
	feed     int
	state    State
}

func NewOrchestrator(conn Connection, profile Profile, renderer *render.Renderer, feedLines int) *Orchestrator {
	return &Orchestrator{
		conn:     conn,
		profile:  profile,
		renderer: renderer,
		feed:     feedLines,
	}
}

func (o *Orchestrator) State() State {
	return o.state
}

// PrintSections runs one full job for a composed document.
func (o *Orchestrator) PrintSections(sections []render.Section) error {
	o.state = StateRendering
	img, err := o.renderer.Render(sections)
	if err != nil {
		return o.fail(StageRendering, err)
	}

	return o.printBitmap(img)
}

// PrintBitmap runs a job for an already prepared 1-bit image, e.g. the
// dithered image path. Rendering is a no-op for these jobs.
func (o *Orchestrator) PrintBitmap(b bitmap.Bitmap) error {
	o.state = StateRendering
	return o.printBitmap(b)
}

func (o *Orchestrator) printBitmap(b bitmap.Bitmap) error {
	o.state = StateFraming
	frames, err := BuildFrames(b, o.profile)
	if err != nil {
		return o.fail(StageFraming, err)
	}

	// Once transmission starts the job can't be cancelled safely:
	// stopping mid-frame leaves the device expecting raster payload.
	o.state = StateTransmitting
	slog.Debug("Transmitting print job",
		"frames", len(frames),
		"rows", b.Height(),
	)
	for _, frame := range frames {
		if err := o.conn.Write(frame.Encode()); err != nil {
			return o.fail(StageTransmitting, err)
		}
	}
	if err := o.conn.Write(feedLines(o.feed)); err != nil {
		return o.fail(StageTransmitting, err)
	}

	o.state = StateDone
	return nil
}

func (o *Orchestrator) fail(stage Stage, err error) error {
	o.state = StateFailed
	return &JobError{Stage: stage, Err: err}
}
