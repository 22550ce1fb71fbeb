package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"wandertui/config"
	appmodel "wandertui/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Spinner ticks first so the in-flight indicator keeps animating.
	if a.dataModel.Streaming {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
		a.updateViewportContent(true)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Title (1), separator (1), textarea (3), status bar (1).
		viewportHeight := a.height - 6
		a.viewport.Width = a.width
		a.viewport.Height = viewportHeight
		a.textarea.SetWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)

		// Re-render restored markdown now that the width is known.
		var renderCmds []tea.Cmd
		for i := range a.dataModel.Messages {
			m := a.dataModel.Messages[i]
			if m.Role == appmodel.RoleAssistant && m.Rendered == m.Content && m.Content != "" {
				renderCmds = append(renderCmds, a.renderMarkdownAsync(i, m.Content))
			}
		}
		if len(renderCmds) > 0 {
			return a, tea.Batch(renderCmds...)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case appmodel.TurnFrameMsg, appmodel.TurnDoneMsg, appmodel.TurnFailedMsg,
		appmodel.MarkdownRenderedMsg, appmodel.SessionSavedMsg, appmodel.SessionClearedMsg,
		appmodel.ArchiveSavedMsg, appmodel.ArchiveListMsg, appmodel.ArchiveLoadedMsg,
		appmodel.ArchiveDeletedMsg:
		view, cmd := a.handleModelMessage(msg)
		return view, cmd
	}

	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	keyStr := msg.String()

	// Global shortcuts work in every mode.
	switch keyStr {
	case "alt+q":
		if config.DebugLog != nil {
			config.DebugLog.Printf("quit requested")
		}
		return a, tea.Sequence(a.dataModel.SaveSession(), tea.Quit)
	case "alt+h":
		a.showHelp = !a.showHelp
		return a, nil
	}

	if a.showHelp {
		if keyStr == "esc" {
			a.showHelp = false
		}
		return a, nil
	}

	if a.showArchiveBrowser {
		return a.handleArchiveBrowserKey(msg)
	}

	if a.showArchiveSaveModal {
		return a.handleArchiveSaveKey(msg)
	}

	if a.confirmReset {
		switch keyStr {
		case "enter", "y":
			a.confirmReset = false
			cmd = a.dataModel.Reset()
			a.textarea.Reset()
			a.updateViewportContent(true)
			return a, cmd
		case "esc", "n":
			a.confirmReset = false
		}
		return a, nil
	}

	// Main chat mode.
	switch keyStr {
	case "enter":
		if a.dataModel.Streaming {
			// Input is locked while a turn is in flight.
			return a, nil
		}
		content := a.textarea.Value()
		if strings.TrimSpace(content) == "" {
			return a, nil
		}
		a.textarea.Reset()
		return a.sendTurn(content)

	case "alt+n":
		a.confirmReset = true
		return a, nil

	case "alt+s":
		a.showArchiveBrowser = true
		a.selectedArchiveIdx = 0
		return a, a.dataModel.ListArchive("")

	case "alt+w":
		if !a.dataModel.Substantive() {
			a.statusNotice = "Chưa có gì để lưu."
			return a, nil
		}
		a.showArchiveSaveModal = true
		a.archiveNameInput.SetValue("")
		a.archiveNameInput.Focus()
		return a, nil

	case "alt+y":
		for i := len(a.dataModel.Messages) - 1; i >= 0; i-- {
			if a.dataModel.Messages[i].Role == appmodel.RoleAssistant {
				if err := clipboard.WriteAll(a.dataModel.Messages[i].Content); err == nil {
					a.statusNotice = "Đã sao chép câu trả lời."
				}
				break
			}
		}
		return a, nil

	case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9":
		ordinal := int(keyStr[len(keyStr)-1] - '0')
		return a.handleSelectionDigit(ordinal)

	case "alt+c":
		return a.handleSelectionConfirm()

	case "alt+a", "alt+x", "alt+k", "alt+u":
		return a.handleTableAction(keyStr)
	}

	a.statusNotice = ""
	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// sendTurn submits a user turn and starts pumping the response stream.
func (a AppView) sendTurn(content string) (tea.Model, tea.Cmd) {
	cmd := a.dataModel.SendTurn(content)
	if cmd == nil {
		return a, nil
	}
	a.statusNotice = ""
	a.updateViewportContent(true)
	return a, tea.Batch(cmd, a.loadingSpinner.Tick)
}
