package model

import (
	"time"

	"wandertui/payload"
)

// Message roles. The backend only ever sees user and assistant; system is
// local-only (status and error notices).
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// DefaultGreeting opens every fresh conversation. It is never persisted on
// its own: a session becomes substantive only once the user has spoken.
const DefaultGreeting = "Xin chào! Mình là trợ lý lập kế hoạch du lịch của bạn. Bạn muốn đi đâu?"

// Message is one turn in the conversation.
//
// Invariant: PayloadKind none means Payload is nil and PayloadErr is
// empty. A message only ever carries payload data under a real kind.
type Message struct {
	Role        string
	Content     string
	Rendered    string // cached terminal rendering of Content
	PayloadKind payload.Kind
	Payload     payload.Payload
	PayloadErr  string // inline notice when ui_data failed its contract
	Timestamp   time.Time
}

// NewUserMessage builds a plain user turn.
func NewUserMessage(content string) Message {
	return Message{
		Role:        RoleUser,
		Content:     content,
		Rendered:    content,
		PayloadKind: payload.KindNone,
		Timestamp:   time.Now(),
	}
}

// NewGreeting builds the default assistant greeting.
func NewGreeting() Message {
	return Message{
		Role:        RoleAssistant,
		Content:     DefaultGreeting,
		Rendered:    DefaultGreeting,
		PayloadKind: payload.KindNone,
		Timestamp:   time.Now(),
	}
}
