package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"wandertui/config"
	appmodel "wandertui/model"
)

// handleModelMessage handles everything the model's background commands
// deliver: stream frames, turn completion, persistence and archive
// results.
func (a AppView) handleModelMessage(msg tea.Msg) (AppView, tea.Cmd) {
	switch msg := msg.(type) {
	case appmodel.TurnFrameMsg:
		appended := a.dataModel.ApplyFrame(msg.Frame)

		var cmds []tea.Cmd
		if appended {
			idx := len(a.dataModel.Messages) - 1
			a.updateViewportContent(true)
			if a.dataModel.Messages[idx].Content != "" {
				cmds = append(cmds, a.renderMarkdownAsync(idx, a.dataModel.Messages[idx].Content))
			}
		}
		// Keep pumping: one event per update keeps rendering interleaved
		// with the stream.
		cmds = append(cmds, a.dataModel.NextTurnEvent())
		return a, tea.Batch(cmds...)

	case appmodel.TurnDoneMsg:
		if config.DebugLog != nil {
			config.DebugLog.Printf("turn done: %d messages, %d context keys",
				len(a.dataModel.Messages), a.dataModel.Context.Len())
		}
		cmd := a.dataModel.FinishTurn()
		a.updateViewportContent(true)
		return a, cmd

	case appmodel.TurnFailedMsg:
		cmd := a.dataModel.FailTurn(msg.Err)
		a.updateViewportContent(true)
		return a, cmd

	case appmodel.MarkdownRenderedMsg:
		if msg.Index >= 0 && msg.Index < len(a.dataModel.Messages) {
			a.dataModel.Messages[msg.Index].Rendered = msg.Rendered
			a.updateViewportContent(true)
		}
		return a, nil

	case appmodel.SessionSavedMsg:
		if msg.Err != nil {
			a.statusNotice = "Không lưu được phiên: " + msg.Err.Error()
		}
		return a, nil

	case appmodel.SessionClearedMsg:
		if msg.Err != nil {
			a.statusNotice = "Không xóa được phiên cũ: " + msg.Err.Error()
		}
		return a, nil

	case appmodel.ArchiveSavedMsg:
		if msg.Err != nil {
			a.statusNotice = "Không lưu được chuyến đi: " + msg.Err.Error()
		} else {
			a.statusNotice = "Đã lưu chuyến đi."
		}
		return a, nil

	case appmodel.ArchiveListMsg:
		if msg.Err != nil {
			a.statusNotice = "Không đọc được kho lưu trữ: " + msg.Err.Error()
			a.showArchiveBrowser = false
			return a, nil
		}
		a.archiveEntries = msg.Entries
		if a.selectedArchiveIdx >= len(msg.Entries) {
			a.selectedArchiveIdx = 0
		}
		return a, nil

	case appmodel.ArchiveLoadedMsg:
		if msg.Err != nil {
			a.statusNotice = "Không mở được chuyến đi: " + msg.Err.Error()
			return a, nil
		}
		a.dataModel.RestoreArchived(msg.Session)
		a.updateViewportContent(true)

		// Restored assistant turns render as plain text until markdown
		// catches up.
		var cmds []tea.Cmd
		for i := range a.dataModel.Messages {
			m := a.dataModel.Messages[i]
			if m.Role == appmodel.RoleAssistant && m.Content != "" {
				cmds = append(cmds, a.renderMarkdownAsync(i, m.Content))
			}
		}
		cmds = append(cmds, a.dataModel.SaveSession())
		return a, tea.Batch(cmds...)

	case appmodel.ArchiveDeletedMsg:
		if msg.Err != nil {
			a.statusNotice = "Không xóa được chuyến đi: " + msg.Err.Error()
			return a, nil
		}
		a.statusNotice = fmt.Sprintf("Đã xóa chuyến đi %s.", msg.ID[:8])
		a.confirmDeleteArchive = nil
		return a, a.dataModel.ListArchive(a.archiveFilterInput.Value())
	}

	return a, nil
}
