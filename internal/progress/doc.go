// Package progress defines the byte-count/status notifications emitted
// during download and extraction and the sinks that render them.
//
// Sinks are user-facing only: dropping every event (see Discard) never
// affects the update pipeline.
package progress
