package model

import "encoding/json"

// Context keys the client reads for local decisions. Everything else in
// the trip context is backend-defined and passes through untouched.
const (
	ctxKeyDestination   = "destination"
	ctxKeyWorkflowState = "workflowState"
)

// Workflow stages the backend is known to emit. Only the default matters
// to the client; the rest are pass-through values.
const WorkflowGatheringInfo = "gathering_info"

// TripContext is the evolving trip-planning state carried across every
// turn: an open key/value record whose keys are owned by the backend
// (destination, days, budget, companions, workflowState, ...). The client
// round-trips keys it does not recognize.
//
// The context has a single owner (the conversation model) and is mutated
// only through Merge; Snapshot returns a copy safe to hand to the
// transport layer.
type TripContext struct {
	values map[string]any
}

// NewTripContext returns the default context shape for a fresh
// conversation.
func NewTripContext() TripContext {
	return TripContext{values: map[string]any{
		ctxKeyWorkflowState: WorkflowGatheringInfo,
	}}
}

// Merge shallow-merges delta into the context, last write wins per key.
// There is no deep merge and no array concatenation; a delta value
// replaces whatever was there. Merging an empty delta is a no-op.
func (c *TripContext) Merge(delta map[string]any) {
	if len(delta) == 0 {
		return
	}
	if c.values == nil {
		c.values = make(map[string]any, len(delta))
	}
	for k, v := range delta {
		c.values[k] = v
	}
}

// Snapshot returns a copy of the full context for an outbound request.
// Outbound always carries the whole context; only inbound travels as
// deltas.
func (c TripContext) Snapshot() map[string]any {
	snap := make(map[string]any, len(c.values))
	for k, v := range c.values {
		snap[k] = v
	}
	return snap
}

// GetString returns the value for key if it is a string, else "".
func (c TripContext) GetString(key string) string {
	if s, ok := c.values[key].(string); ok {
		return s
	}
	return ""
}

// Destination returns the trip destination if the backend has set one.
func (c TripContext) Destination() string {
	return c.GetString(ctxKeyDestination)
}

// WorkflowState returns the current trip-planning stage.
func (c TripContext) WorkflowState() string {
	return c.GetString(ctxKeyWorkflowState)
}

// Len returns the number of context keys.
func (c TripContext) Len() int {
	return len(c.values)
}

// MarshalJSON serializes the context as its underlying record.
func (c TripContext) MarshalJSON() ([]byte, error) {
	if c.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.values)
}

// UnmarshalJSON restores the context from a persisted record.
func (c *TripContext) UnmarshalJSON(data []byte) error {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	c.values = values
	return nil
}

// RestoredContext rebuilds a context from a persisted session record.
func RestoredContext(values map[string]any) TripContext {
	ctx := NewTripContext()
	ctx.Merge(values)
	return ctx
}
