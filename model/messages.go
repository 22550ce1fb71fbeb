package model

import (
	"wandertui/planner"
	"wandertui/storage"
)

// TurnFrameMsg delivers one decoded stream frame to the update loop.
type TurnFrameMsg struct {
	Frame planner.StreamFrame
}

// TurnDoneMsg signals that the current assistant turn has fully drained.
type TurnDoneMsg struct{}

// TurnFailedMsg signals that both transport legs failed for the turn.
type TurnFailedMsg struct {
	Err error
}

// MarkdownRenderedMsg carries the finished terminal rendering for one
// message, produced off the update loop.
type MarkdownRenderedMsg struct {
	Index    int
	Rendered string
}

// SessionSavedMsg reports the outcome of an autosave.
type SessionSavedMsg struct {
	Err error
}

// SessionClearedMsg reports that the persisted session was removed.
type SessionClearedMsg struct {
	Err error
}

// ArchiveSavedMsg reports the outcome of archiving the conversation.
type ArchiveSavedMsg struct {
	ID  string
	Err error
}

// ArchiveListMsg delivers the archive browser's entries.
type ArchiveListMsg struct {
	Entries []storage.ArchiveEntry
	Err     error
}

// ArchiveLoadedMsg delivers an archived conversation chosen for restore.
type ArchiveLoadedMsg struct {
	Session *storage.Session
	Err     error
}

// ArchiveDeletedMsg reports that an archived conversation was removed.
type ArchiveDeletedMsg struct {
	ID  string
	Err error
}
