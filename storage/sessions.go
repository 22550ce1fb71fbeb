package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FreshnessThreshold is how old a persisted session may be and still be
// restored on launch. Anything older is treated as absent; the stale file
// stays on disk until the next save overwrites it.
const FreshnessThreshold = 24 * time.Hour

const sessionFilename = "session.json"

// Message is one persisted conversation turn. Payloads are stored as the
// raw wire data plus their kind so restore can re-decode them with the
// same dispatch used for live frames.
type Message struct {
	Role        string          `json:"role"`
	Content     string          `json:"content"`
	PayloadKind string          `json:"payload_kind,omitempty"`
	PayloadData json.RawMessage `json:"payload_data,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Session is the single persisted conversation record: the full message
// history, the trip context, and the save instant used for the freshness
// check.
type Session struct {
	Messages []Message      `json:"messages"`
	Context  map[string]any `json:"context"`
	SavedAt  time.Time      `json:"saved_at"`
}

// SessionStore persists the one active conversation under a fixed path.
// There is no session ID and no listing; every save overwrites the
// previous record.
type SessionStore struct {
	path string
	now  func() time.Time
}

// NewSessionStore creates the store under dataDir (0700, user-only).
func NewSessionStore(dataDir string) (*SessionStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &SessionStore{
		path: filepath.Join(dataDir, sessionFilename),
		now:  time.Now,
	}, nil
}

// Save overwrites the persisted record. Deciding whether the conversation
// is worth persisting (the user has actually spoken) is the caller's job.
func (s *SessionStore) Save(session *Session) error {
	session.SavedAt = s.now()

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// 0600: conversation history is user-private.
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Restore loads the persisted record if one exists and is fresh.
//
// Returns (nil, nil) when no record exists or the record is older than
// FreshnessThreshold. A record that exists but cannot be decoded returns
// an error so the caller can tell corruption apart from absence.
func (s *SessionStore) Restore() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if s.now().Sub(session.SavedAt) > FreshnessThreshold {
		return nil, nil
	}
	return &session, nil
}

// Clear removes the persisted record. Absence is not an error.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Path returns where the record lives, for diagnostics.
func (s *SessionStore) Path() string {
	return s.path
}

// LockInstance writes a PID lock so two instances do not fight over the
// single session record.
func (s *SessionStore) LockInstance() error {
	lockPath := filepath.Join(filepath.Dir(s.path), "wandertui.lock")
	return os.WriteFile(lockPath, []byte(fmt.Sprintf("%d", os.Getpid())), 0600)
}

// UnlockInstance removes the PID lock. Absence is not an error.
func (s *SessionStore) UnlockInstance() error {
	lockPath := filepath.Join(filepath.Dir(s.path), "wandertui.lock")
	err := os.Remove(lockPath)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// CheckInstanceLock reports whether another instance appears to be
// running, and its PID. A lock naming a dead process is cleaned up.
func (s *SessionStore) CheckInstanceLock() (bool, int, error) {
	lockPath := filepath.Join(filepath.Dir(s.path), "wandertui.lock")

	data, err := os.ReadFile(lockPath)
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to read lock file: %w", err)
	}

	var pid int
	if _, err := fmt.Sscanf(string(data), "%d", &pid); err != nil {
		_ = os.Remove(lockPath)
		return false, 0, nil
	}

	if _, err := os.FindProcess(pid); err != nil {
		_ = os.Remove(lockPath)
		return false, 0, nil
	}
	return true, pid, nil
}
