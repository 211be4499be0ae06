package progress

// Phase labels for published events.
const (
	// PhaseDownload marks byte-counted archive download events.
	PhaseDownload = "downloading"
	// PhaseExtract marks status-text extraction events.
	PhaseExtract = "extracting"
)

// Event is a transient progress notification. Events are consumed
// immediately by the sink and never stored.
type Event struct {
	// Phase identifies the pipeline step producing the event.
	Phase string
	// Message is optional status text shown instead of byte counts.
	Message string
	// BytesDone is the number of bytes processed so far.
	BytesDone int64
	// BytesTotal is the expected total, or 0 when indeterminate.
	BytesTotal int64
}

// Sink consumes progress events. Rendering is purely cosmetic: sinks have
// no effect on pipeline correctness and may drop events entirely.
type Sink interface {
	// Publish records the most recent event.
	Publish(e Event)
	// Finish clears any rendered output. Safe to call more than once.
	Finish()
}

// Discard is a Sink dropping everything, for headless runs and tests.
//
//nolint:gochecknoglobals // Stateless sink shared by all callers.
var Discard Sink = discard{}

type discard struct{}

func (discard) Publish(Event) {}

func (discard) Finish() {}
