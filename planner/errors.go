package planner

import "fmt"

// TransportError covers the failures that trigger the single-shot fallback:
// connection refused, timeout, or a non-success HTTP status. Op records
// which leg failed ("stream" or "complete").
type TransportError struct {
	Op     string
	Status int // HTTP status if one was received, 0 otherwise
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("planner %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("planner %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FrameDecodeError reports a single malformed stream frame. The offending
// frame is skipped and processing continues; this error is only surfaced
// through the debug log.
type FrameDecodeError struct {
	Line string
	Err  error
}

func (e *FrameDecodeError) Error() string {
	return fmt.Sprintf("malformed stream frame: %v", e.Err)
}

func (e *FrameDecodeError) Unwrap() error { return e.Err }
