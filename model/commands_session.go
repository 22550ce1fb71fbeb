package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"wandertui/config"
	"wandertui/storage"
)

// SaveSession persists the conversation when it is substantive and has
// unsaved changes. Greeting-only conversations are never written, so a
// fresh launch cannot clobber yesterday's saved trip.
func (m *Model) SaveSession() tea.Cmd {
	if m.sessions == nil || !m.SessionDirty || !m.Substantive() {
		return nil
	}

	session := m.persistedSession()
	m.SessionDirty = false
	sessions := m.sessions

	return func() tea.Msg {
		err := sessions.Save(session)
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("session save failed: %v", err)
		}
		return SessionSavedMsg{Err: err}
	}
}

// ArchiveConversation copies the current conversation into the long-term
// trip archive under the given name.
func (m *Model) ArchiveConversation(name string) tea.Cmd {
	if m.archive == nil || !m.Substantive() {
		return nil
	}

	session := m.persistedSession()
	destination := m.Context.Destination()
	archive := m.archive

	return func() tea.Msg {
		id, err := archive.Save(name, destination, session)
		return ArchiveSavedMsg{ID: id, Err: err}
	}
}

// ListArchive loads the archive browser entries, filtered by query when
// one is given.
func (m *Model) ListArchive(query string) tea.Cmd {
	if m.archive == nil {
		return nil
	}
	archive := m.archive

	return func() tea.Msg {
		entries, err := archive.Search(query)
		return ArchiveListMsg{Entries: entries, Err: err}
	}
}

// LoadArchived fetches one archived trip for restoring.
func (m *Model) LoadArchived(id string) tea.Cmd {
	if m.archive == nil {
		return nil
	}
	archive := m.archive

	return func() tea.Msg {
		session, err := archive.Load(id)
		return ArchiveLoadedMsg{Session: session, Err: err}
	}
}

// DeleteArchived removes one archived trip.
func (m *Model) DeleteArchived(id string) tea.Cmd {
	if m.archive == nil {
		return nil
	}
	archive := m.archive

	return func() tea.Msg {
		return ArchiveDeletedMsg{ID: id, Err: archive.Delete(id)}
	}
}

// RestoreArchived replaces the live conversation with an archived trip
// and marks it dirty so the next autosave persists it as the active
// session.
func (m *Model) RestoreArchived(session *storage.Session) {
	m.adoptSession(session)
	m.SessionDirty = true
}
