package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	// tickInterval is how often the spinner redraws between events.
	tickInterval = 100 * time.Millisecond

	// spinnerFrames are the characters cycled by the background tick.
	spinnerFrames = `|/-\`

	// lineWidth is how many columns the clearing write blanks out.
	lineWidth = 80
)

// ConsoleSink renders progress as a single rewritten terminal line with a
// spinner redrawn on a background tick. The tick starts with the first
// Publish and stops on Finish, which clears the line; the sink accepts
// further events afterwards, so one sink serves every phase of a run.
type ConsoleSink struct {
	// w receives the rendered line.
	w io.Writer

	// mu guards last, frame, done and writes to w.
	mu    sync.Mutex
	last  Event
	frame int

	// done is non-nil while the spinner goroutine runs.
	done chan struct{}
}

// NewConsole creates a sink writing to w.
func NewConsole(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Publish stores the event, redraws the line and starts the spinner tick
// if it is not already running.
func (s *ConsoleSink) Publish(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = e

	if s.done == nil {
		s.done = make(chan struct{})

		go s.tick(s.done)
	}

	s.render()
}

// Finish stops the spinner and clears the rendered line. Safe to call
// repeatedly; the next Publish starts a new line.
func (s *ConsoleSink) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil {
		close(s.done)
		s.done = nil
	}

	if s.last.Phase == "" {
		return
	}

	s.last = Event{}
	_, _ = fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", lineWidth))
}

// tick advances the spinner until done is closed.
func (s *ConsoleSink) tick(done chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()

			if s.last.Phase != "" {
				s.frame++
				s.render()
			}

			s.mu.Unlock()
		}
	}
}

// render draws the current line. Callers must hold mu.
func (s *ConsoleSink) render() {
	frame := spinnerFrames[s.frame%len(spinnerFrames)]

	var status string

	switch {
	case s.last.Message != "":
		status = s.last.Message
	case s.last.BytesTotal > 0:
		status = fmt.Sprintf("%s / %s", formatBytes(s.last.BytesDone), formatBytes(s.last.BytesTotal))
	default:
		status = formatBytes(s.last.BytesDone)
	}

	_, _ = fmt.Fprintf(s.w, "\r%c %s %s", frame, s.last.Phase, status)
}

// formatBytes renders a byte count in a short human-readable unit.
func formatBytes(n int64) string {
	const unit = 1024

	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
