package model

import "testing"

func TestMergeLastWriteWins(t *testing.T) {
	ctx := NewTripContext()
	ctx.Merge(map[string]any{"a": float64(1)})
	ctx.Merge(map[string]any{"a": float64(2), "b": float64(3)})

	snap := ctx.Snapshot()
	if snap["a"] != float64(2) {
		t.Errorf("a = %v, want 2", snap["a"])
	}
	if snap["b"] != float64(3) {
		t.Errorf("b = %v, want 3", snap["b"])
	}
}

func TestMergeShallowReplacesNested(t *testing.T) {
	ctx := NewTripContext()
	ctx.Merge(map[string]any{"prefs": map[string]any{"budget": "thấp", "food": "chay"}})
	ctx.Merge(map[string]any{"prefs": map[string]any{"budget": "cao"}})

	prefs := ctx.Snapshot()["prefs"].(map[string]any)
	if _, ok := prefs["food"]; ok {
		t.Error("shallow merge must replace nested values, not deep-merge them")
	}
	if prefs["budget"] != "cao" {
		t.Errorf("budget = %v", prefs["budget"])
	}
}

func TestUnknownKeysRoundTrip(t *testing.T) {
	ctx := NewTripContext()
	ctx.Merge(map[string]any{"some_future_key": "opaque"})

	if ctx.Snapshot()["some_future_key"] != "opaque" {
		t.Error("unrecognized keys must pass through untouched")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := NewTripContext()
	ctx.Merge(map[string]any{"destination": "Huế"})

	snap := ctx.Snapshot()
	snap["destination"] = "đã sửa"

	if ctx.Destination() != "Huế" {
		t.Error("mutating a snapshot leaked into the context")
	}
}

func TestDefaultWorkflowState(t *testing.T) {
	ctx := NewTripContext()
	if ctx.WorkflowState() != WorkflowGatheringInfo {
		t.Errorf("fresh context workflowState = %q", ctx.WorkflowState())
	}
	if ctx.Destination() != "" {
		t.Errorf("fresh context destination = %q", ctx.Destination())
	}
}
