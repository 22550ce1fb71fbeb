package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	appmodel "wandertui/model"
	"wandertui/payload"
	"wandertui/storage"
)

// handleSelectionDigit routes Alt+digit to whichever selectable block is
// live. Hotels submit immediately; everything else toggles a pending
// selection that a later confirm sends.
func (a AppView) handleSelectionDigit(ordinal int) (tea.Model, tea.Cmd) {
	latest := a.latestSelectable()
	if latest == nil || a.dataModel.Streaming {
		return a, nil
	}

	switch p := latest.Payload.(type) {
	case *payload.HotelCards:
		if ordinal > len(p.Hotels) {
			return a, nil
		}
		return a.sendTurn(appmodel.HotelBookingMessage(p.Hotels[ordinal-1]))

	case *payload.ItemList:
		if ordinal > len(p.Items) {
			return a, nil
		}
		a.dataModel.MultiPicker.Toggle(ordinal)
		a.updateViewportContent(false)
		return a, nil

	case *payload.ItineraryBuilder:
		if ordinal > len(p.Spots) {
			return a, nil
		}
		a.dataModel.DayPicker.ToggleForDay(p.CurrentDay, spotKey(p.Spots[ordinal-1]))
		a.updateViewportContent(false)
		return a, nil

	case *payload.SpotTable:
		if a.dataModel.TablePicker == nil || ordinal > len(p.Rows) {
			return a, nil
		}
		a.dataModel.TablePicker.Toggle(p.Rows[ordinal-1].ID)
		a.updateViewportContent(false)
		return a, nil
	}

	return a, nil
}

// handleSelectionConfirm submits the pending selection of the live block.
func (a AppView) handleSelectionConfirm() (tea.Model, tea.Cmd) {
	latest := a.latestSelectable()
	if latest == nil || a.dataModel.Streaming {
		return a, nil
	}

	switch latest.Payload.(type) {
	case *payload.ItemList:
		turn := a.dataModel.MultiPicker.Submit()
		if turn == "" {
			a.statusNotice = "Chưa chọn mục nào."
			return a, nil
		}
		return a.sendTurn(turn)

	case *payload.ItineraryBuilder:
		turn := a.dataModel.DayPicker.Submit()
		if turn == "" {
			a.statusNotice = "Chưa chọn điểm nào cho ngày này."
			return a, nil
		}
		return a.sendTurn(turn)

	case *payload.SpotTable:
		if a.dataModel.TablePicker == nil {
			return a, nil
		}
		turn, err := a.dataModel.TablePicker.Submit()
		if err != nil {
			a.statusNotice = err.Error()
			return a, nil
		}
		return a.sendTurn(turn)
	}

	return a, nil
}

// handleTableAction covers the table-wide operations: select all, clear
// all, skip, cancel.
func (a AppView) handleTableAction(keyStr string) (tea.Model, tea.Cmd) {
	latest := a.latestSelectable()
	if latest == nil || a.dataModel.Streaming {
		return a, nil
	}
	if _, ok := latest.Payload.(*payload.SpotTable); !ok {
		return a, nil
	}
	picker := a.dataModel.TablePicker
	if picker == nil {
		return a, nil
	}

	switch keyStr {
	case "alt+a":
		picker.SelectAll()
	case "alt+x":
		picker.ClearAll()
	case "alt+k":
		return a.sendTurn(appmodel.SkipMessage)
	case "alt+u":
		picker.Cancel()
		a.statusNotice = "Đã khôi phục lựa chọn mặc định."
	}
	a.updateViewportContent(false)
	return a, nil
}

func (a AppView) handleArchiveBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if a.confirmDeleteArchive != nil {
		switch keyStr {
		case "enter", "y":
			id := a.confirmDeleteArchive.ID
			a.confirmDeleteArchive = nil
			return a, a.dataModel.DeleteArchived(id)
		case "esc", "n":
			a.confirmDeleteArchive = nil
		}
		return a, nil
	}

	if a.archiveFilterMode {
		switch keyStr {
		case "esc":
			a.archiveFilterMode = false
			a.archiveFilterInput.Blur()
			a.archiveFilterInput.SetValue("")
			a.filteredArchive = nil
			return a, nil
		case "enter":
			a.archiveFilterMode = false
			a.archiveFilterInput.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		a.archiveFilterInput, cmd = a.archiveFilterInput.Update(msg)
		a.filteredArchive = filterArchive(a.archiveEntries, a.archiveFilterInput.Value())
		a.selectedArchiveIdx = 0
		return a, cmd
	}

	entries := a.getArchiveList()

	switch keyStr {
	case "esc":
		a.closeAllModals()
		return a, nil
	case "j", "down":
		if a.selectedArchiveIdx < len(entries)-1 {
			a.selectedArchiveIdx++
		}
	case "k", "up":
		if a.selectedArchiveIdx > 0 {
			a.selectedArchiveIdx--
		}
	case "/":
		a.archiveFilterMode = true
		a.archiveFilterInput.Focus()
		return a, nil
	case "d":
		if len(entries) > 0 {
			entry := entries[a.selectedArchiveIdx]
			a.confirmDeleteArchive = &entry
		}
		return a, nil
	case "enter":
		if len(entries) > 0 {
			a.closeAllModals()
			return a, a.dataModel.LoadArchived(entries[a.selectedArchiveIdx].ID)
		}
	}
	return a, nil
}

func (a AppView) handleArchiveSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.closeAllModals()
		return a, nil
	case "enter":
		name := a.archiveNameInput.Value()
		a.closeAllModals()
		return a, a.dataModel.ArchiveConversation(name)
	}
	var cmd tea.Cmd
	a.archiveNameInput, cmd = a.archiveNameInput.Update(msg)
	return a, cmd
}

// filterArchive fuzzy-matches entries on name and destination.
func filterArchive(entries []storage.ArchiveEntry, query string) []storage.ArchiveEntry {
	if query == "" {
		return nil
	}

	haystack := make([]string, len(entries))
	for i, entry := range entries {
		haystack[i] = entry.Name + " " + entry.Destination
	}

	matches := fuzzy.Find(query, haystack)
	filtered := make([]storage.ArchiveEntry, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, entries[match.Index])
	}
	return filtered
}
