package model

import (
	"strings"
	"time"

	"wandertui/payload"
	"wandertui/planner"
)

// ApplyFrame consumes one stream frame against the message history and
// trip context. Frames are processed in strict arrival order; each frame
// is consumed exactly once and not retained.
//
// Decision order:
//  1. Any context delta merges first, so a trailing empty "complete"
//     frame can still deliver a final context update.
//  2. A complete frame with no reply text and no payload is a pure
//     end-of-turn signal: discarded without touching the history.
//  3. A partial frame always appends a new message. Successive generative
//     sections (hotels, then spots, then food) stay visible as separate
//     blocks instead of clobbering one another.
//  4. A complete frame appends only when it actually carries content or a
//     payload; the common trailing completion ping is dropped.
//
// Returns true when a message was appended.
func (m *Model) ApplyFrame(frame planner.StreamFrame) bool {
	if len(frame.ContextDelta) > 0 {
		m.Context.Merge(frame.ContextDelta)
	}

	if frame.Complete() && frame.Empty() {
		return false
	}

	msg := Message{
		Role:        RoleAssistant,
		Content:     frame.Reply,
		Rendered:    frame.Reply,
		PayloadKind: payload.KindNone,
		Timestamp:   time.Now(),
	}

	kind := payload.Kind(frame.UIType)
	if kind != "" && kind != payload.KindNone && len(frame.UIData) > 0 {
		msg.PayloadKind = kind
		decoded, err := payload.Decode(kind, frame.UIData)
		if err != nil {
			// Caught at the message boundary; rendered as an inline
			// notice without affecting any other message.
			msg.PayloadErr = err.Error()
		} else {
			msg.Payload = decoded
		}
	}

	m.Messages = append(m.Messages, msg)
	m.SessionDirty = true
	m.bindPickers(msg)
	return true
}

// bindPickers points the interactive selection state at the newest
// selectable payload. Each payload instance gets its own scope: a new
// options list drops any unconfirmed ordinals from the previous one, a
// fresh table rendering resets the table picker to its default
// preselection, and the builder's per-day sets survive day changes
// untouched.
func (m *Model) bindPickers(msg Message) {
	switch p := msg.Payload.(type) {
	case *payload.ItemList:
		m.MultiPicker.Clear()
	case *payload.SpotTable:
		m.TablePicker = NewTablePicker(p)
	case *payload.ItineraryBuilder:
		m.DayPicker.SetCurrentDay(p.CurrentDay)
	}
}

// RecentHistory returns the last limit user/assistant turns as outbound
// wire messages (role and content only). The truncation bounds request
// size; the full context travels alongside and carries everything else.
func RecentHistory(messages []Message, limit int) []planner.TurnMessage {
	var turns []planner.TurnMessage
	for _, msg := range messages {
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			continue
		}
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		turns = append(turns, planner.TurnMessage{Role: msg.Role, Content: msg.Content})
	}
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns
}
