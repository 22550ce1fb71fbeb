package model

import (
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"

	"wandertui/config"
	"wandertui/payload"
	"wandertui/planner"
	"wandertui/storage"
)

// HistoryWindow is how many recent user/assistant turns travel with each
// request. Older turns fall off; the trip context carries the durable
// state instead.
const HistoryWindow = 8

// Model is the conversation state behind the UI: message history, trip
// context, selection machines, and the in-flight turn.
type Model struct {
	Messages []Message
	Context  TripContext

	// Selection state. MultiPicker and DayPicker persist across frames;
	// TablePicker is rebound to the latest table block.
	MultiPicker MultiPicker
	DayPicker   DayPicker
	TablePicker *TablePicker

	// Streaming is true while an assistant turn is in flight. Input is
	// locked out until the turn drains.
	Streaming bool

	// SessionDirty marks unsaved conversation changes.
	SessionDirty bool

	client   *planner.Client
	sessions *storage.SessionStore
	archive  *storage.Archive

	// turnCh carries frames from the transport goroutine into the update
	// loop, one NextTurnEvent read per frame.
	turnCh chan tea.Msg
}

// NewModel builds the conversation model, restoring the persisted session
// when one is fresh. A missing, stale or corrupt session starts a new
// conversation with the default greeting; corruption is logged and
// otherwise treated as absence.
func NewModel(client *planner.Client, sessions *storage.SessionStore, archive *storage.Archive) *Model {
	m := &Model{
		client:   client,
		sessions: sessions,
		archive:  archive,
		Context:  NewTripContext(),
	}

	if sessions != nil {
		restored, err := sessions.Restore()
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("session restore failed: %v", err)
		}
		if restored != nil {
			m.adoptSession(restored)
			return m
		}
	}

	m.Messages = []Message{NewGreeting()}
	return m
}

// adoptSession replaces the live conversation with a persisted record.
func (m *Model) adoptSession(session *storage.Session) {
	m.Messages = m.Messages[:0]
	for _, stored := range session.Messages {
		m.Messages = append(m.Messages, restoreMessage(stored))
	}
	if len(m.Messages) == 0 {
		m.Messages = []Message{NewGreeting()}
	}
	m.Context = RestoredContext(session.Context)
	m.MultiPicker.Clear()
	m.DayPicker.Reset()
	m.TablePicker = nil
	m.SessionDirty = false

	// Rebind pickers to the newest selectable block, same as live frames.
	for _, msg := range m.Messages {
		m.bindPickers(msg)
	}
}

// restoreMessage rebuilds a live message from its persisted form,
// re-decoding the payload through the same dispatch used for stream
// frames. A payload that no longer decodes restores as a plain message.
func restoreMessage(stored storage.Message) Message {
	msg := Message{
		Role:        stored.Role,
		Content:     stored.Content,
		Rendered:    stored.Content,
		PayloadKind: payload.KindNone,
		Timestamp:   stored.Timestamp,
	}
	if stored.PayloadKind != "" && stored.PayloadKind != string(payload.KindNone) {
		kind := payload.Kind(stored.PayloadKind)
		decoded, err := payload.Decode(kind, stored.PayloadData)
		if err == nil && decoded != nil {
			msg.PayloadKind = kind
			msg.Payload = decoded
		}
	}
	return msg
}

// persistedSession converts the live conversation to its storage form.
// Payloads are stored as their original wire shape.
func (m *Model) persistedSession() *storage.Session {
	session := &storage.Session{
		Messages: make([]storage.Message, 0, len(m.Messages)),
		Context:  m.Context.Snapshot(),
	}
	for _, msg := range m.Messages {
		if msg.Role == RoleSystem {
			continue
		}
		stored := storage.Message{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		}
		if msg.Payload != nil {
			if data, err := json.Marshal(msg.Payload); err == nil {
				stored.PayloadKind = string(msg.PayloadKind)
				stored.PayloadData = data
			}
		}
		session.Messages = append(session.Messages, stored)
	}
	return session
}

// Substantive reports whether the conversation is worth persisting: the
// user has said at least one thing. A greeting-only conversation never
// overwrites the saved session.
func (m *Model) Substantive() bool {
	for _, msg := range m.Messages {
		if msg.Role == RoleUser {
			return true
		}
	}
	return false
}

// Reset starts a fresh conversation: greeting only, default context,
// all selection state dropped, persisted session removed.
func (m *Model) Reset() tea.Cmd {
	m.Messages = []Message{NewGreeting()}
	m.Context = NewTripContext()
	m.MultiPicker.Clear()
	m.DayPicker.Reset()
	m.TablePicker = nil
	m.SessionDirty = false
	m.Streaming = false
	m.turnCh = nil

	sessions := m.sessions
	return func() tea.Msg {
		if sessions == nil {
			return SessionClearedMsg{}
		}
		return SessionClearedMsg{Err: sessions.Clear()}
	}
}

// AppendSystemNotice adds a local-only status line to the history.
func (m *Model) AppendSystemNotice(text string) {
	m.Messages = append(m.Messages, Message{
		Role:     RoleSystem,
		Content:  text,
		Rendered: text,
	})
}

// PlannerURL returns the backend this model talks to, for the title bar.
func (m *Model) PlannerURL() string {
	if m.client == nil {
		return ""
	}
	return m.client.BaseURL()
}
