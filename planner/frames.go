package planner

import (
	"encoding/json"
	"strings"
)

// Frame statuses as sent by the backend. "success" is an alias some
// endpoint versions use for "complete".
const (
	StatusPartial  = "partial"
	StatusComplete = "complete"
	StatusSuccess  = "success"
)

// endMarker terminates a clean stream. A connection that closes without it
// is treated as an implicit terminal signal, never as an error.
const endMarker = "[DONE]"

// StreamFrame is one decoded unit of the inbound event stream: a partial
// or complete turn fragment, an optional UI payload, and an optional
// context delta. A frame is consumed exactly once and not retained.
type StreamFrame struct {
	Status       string          `json:"status"`
	Reply        string          `json:"reply"`
	UIType       string          `json:"ui_type,omitempty"`
	UIData       json.RawMessage `json:"ui_data,omitempty"`
	ContextDelta map[string]any  `json:"context,omitempty"`
}

// Complete reports whether the frame ends the assistant turn. An omitted
// status (the fallback single-shot response) is implied complete.
func (f StreamFrame) Complete() bool {
	switch f.Status {
	case StatusComplete, StatusSuccess, "":
		return true
	}
	return false
}

// Empty reports whether the frame carries neither reply text nor a UI
// payload. An empty complete frame is a pure end-of-turn signal.
func (f StreamFrame) Empty() bool {
	return strings.TrimSpace(f.Reply) == "" && len(f.UIData) == 0
}

// decodeFrame parses one stream line. Lines may arrive with an SSE-style
// "data:" prefix depending on the proxy in front of the backend; both bare
// and prefixed forms are accepted.
func decodeFrame(line string) (StreamFrame, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "data:")
	line = strings.TrimSpace(line)

	var frame StreamFrame
	if err := json.Unmarshal([]byte(line), &frame); err != nil {
		return StreamFrame{}, &FrameDecodeError{Line: line, Err: err}
	}
	return frame, nil
}

// isEndMarker reports whether a stream line is the explicit terminator.
func isEndMarker(line string) bool {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "data:")
	return strings.TrimSpace(line) == endMarker
}
