// Package bbxerr implements the configuration/build-time error taxonomy of
// spec.md §7. Block Process methods return nothing, and graph's
// ProcessBuffers returns only graph.ErrNotPrepared, for a graph that has not
// been successfully prepared.
package bbxerr

import "fmt"

// ConfigurationError is raised at construction/build time: negative/zero
// buffer size, zero channels, unknown JSON block type, channel count out
// of range.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return "bbx: configuration error: " + e.Reason }

func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// BindingError reports that a parameter name was not recognised by a block.
// graph.Modulate, graph.BindParameter and graph.SetConstant return it and
// leave the graph unchanged and usable. config.Load does not ignore it: a
// modulation or parameter binding that fails this way stops the load and
// the error is returned to the caller.
type BindingError struct {
	Block     string
	Parameter string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("bbx: unknown parameter %q on block %q", e.Parameter, e.Block)
}

func NewBindingError(block, parameter string) *BindingError {
	return &BindingError{Block: block, Parameter: parameter}
}

// CycleDetectedError is returned by prepare_for_playback when Kahn's
// algorithm could not drain every block. The graph is left unprepared and
// refuses to process until rebuilt.
type CycleDetectedError struct {
	Remaining int
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("bbx: cycle detected: %d block(s) could not be scheduled", e.Remaining)
}

// NetworkError is raised inside producer threads (socket failure, parse
// failure). It never reaches the audio thread — it is reported on the
// producer's own channel/goroutine.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("bbx: network error during %s: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// BufferOverflow is returned when a producer's SPSC ring is full. It is
// informational, not fatal: the policy is to drop the event.
type BufferOverflow struct {
	RingName string
}

func (e *BufferOverflow) Error() string {
	return fmt.Sprintf("bbx: %s ring is full, event dropped", e.RingName)
}
