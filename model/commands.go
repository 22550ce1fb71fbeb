package model

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wandertui/config"
	"wandertui/planner"
)

// SendTurn appends the user's turn and starts the assistant turn. The
// returned command pair runs the transport in the background and pumps
// its frames into the update loop one event at a time. Returns nil when
// the input is blank or a turn is already in flight.
func (m *Model) SendTurn(content string) tea.Cmd {
	content = strings.TrimSpace(content)
	if content == "" || m.Streaming {
		return nil
	}

	m.Messages = append(m.Messages, NewUserMessage(content))
	m.SessionDirty = true
	m.Streaming = true

	req := planner.ChatRequest{
		Messages: RecentHistory(m.Messages, HistoryWindow),
		Context:  m.Context.Snapshot(),
	}

	ch := make(chan tea.Msg, 32)
	m.turnCh = ch
	client := m.client

	runner := func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("turn start: %d history turns, %d context keys",
				len(req.Messages), len(req.Context))
		}

		err := client.Converse(context.Background(), req, func(frame planner.StreamFrame) error {
			ch <- TurnFrameMsg{Frame: frame}
			return nil
		})
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("turn failed: %v", err)
			}
			ch <- TurnFailedMsg{Err: err}
		}
		close(ch)
		return nil
	}

	return tea.Batch(runner, m.NextTurnEvent())
}

// NextTurnEvent reads one event from the in-flight turn. The update loop
// re-issues it after handling each frame, so rendering interleaves with
// the stream instead of blocking on it. A closed channel ends the turn.
func (m *Model) NextTurnEvent() tea.Cmd {
	ch := m.turnCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return TurnDoneMsg{}
		}
		return msg
	}
}

// FinishTurn closes out the in-flight turn state and, when the
// conversation is substantive, autosaves it.
func (m *Model) FinishTurn() tea.Cmd {
	m.Streaming = false
	m.turnCh = nil
	return m.SaveSession()
}

// FailTurn records a failed turn as a local notice. The user's message
// stays in the history so they can retry or rephrase.
func (m *Model) FailTurn(err error) tea.Cmd {
	m.Streaming = false
	m.turnCh = nil
	m.AppendSystemNotice("Không thể kết nối trợ lý: " + err.Error())
	return nil
}

// Ping checks backend reachability off the update loop.
func (m *Model) Ping() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			return TurnFailedMsg{Err: err}
		}
		return nil
	}
}
