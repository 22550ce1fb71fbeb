package planner

import "testing"

func TestFrameComplete(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusPartial, false},
		{StatusComplete, true},
		{StatusSuccess, true},
		{"", true},
		{"weird", false},
	}

	for _, tt := range tests {
		frame := StreamFrame{Status: tt.status}
		if got := frame.Complete(); got != tt.want {
			t.Errorf("Complete() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestFrameEmpty(t *testing.T) {
	if !(StreamFrame{Reply: "  \n"}).Empty() {
		t.Error("whitespace-only reply should count as empty")
	}
	if (StreamFrame{Reply: "hi"}).Empty() {
		t.Error("reply text is not empty")
	}
	if (StreamFrame{UIData: []byte(`[]`)}).Empty() {
		t.Error("a payload makes the frame non-empty")
	}
}

func TestDecodeFrameAcceptsDataPrefix(t *testing.T) {
	frame, err := decodeFrame(`data: {"status":"partial","reply":"xin chào"}`)
	if err != nil {
		t.Fatalf("decodeFrame failed: %v", err)
	}
	if frame.Reply != "xin chào" {
		t.Errorf("reply = %q", frame.Reply)
	}
}

func TestIsEndMarker(t *testing.T) {
	for _, line := range []string{"[DONE]", "  [DONE]  ", "data: [DONE]"} {
		if !isEndMarker(line) {
			t.Errorf("%q should be the end marker", line)
		}
	}
	if isEndMarker(`{"status":"complete"}`) {
		t.Error("a frame is not the end marker")
	}
}
