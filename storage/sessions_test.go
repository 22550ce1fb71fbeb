package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := NewSessionStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStore failed: %v", err)
	}
	return store
}

func TestSaveAndRestoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	session := &Session{
		Messages: []Message{
			{Role: "user", Content: "3 ngày ở Huế", Timestamp: time.Now()},
			{Role: "assistant", Content: "Tuyệt vời!", Timestamp: time.Now()},
		},
		Context: map[string]any{"destination": "Huế", "workflowState": "planning"},
	}

	if err := store.Save(session); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	restored, err := store.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored == nil {
		t.Fatal("expected a restored session")
	}
	if len(restored.Messages) != 2 {
		t.Errorf("restored %d messages, want 2", len(restored.Messages))
	}
	if restored.Context["destination"] != "Huế" {
		t.Errorf("context lost: %v", restored.Context)
	}
}

func TestRestoreAbsentIsNotAnError(t *testing.T) {
	store := newTestStore(t)

	restored, err := store.Restore()
	if err != nil {
		t.Fatalf("absent session must not error: %v", err)
	}
	if restored != nil {
		t.Fatal("expected nil session when nothing is saved")
	}
}

func TestRestoreSkipsStaleSession(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(&Session{Context: map[string]any{}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Move the clock past the freshness window.
	store.now = func() time.Time { return time.Now().Add(FreshnessThreshold + time.Minute) }

	restored, err := store.Restore()
	if err != nil {
		t.Fatalf("stale session must not error: %v", err)
	}
	if restored != nil {
		t.Fatal("stale session must be treated as absent")
	}

	// The stale file is not deleted on read; only the next save touches it.
	if _, statErr := os.Stat(store.Path()); statErr != nil {
		t.Error("stale file should remain on disk")
	}
}

func TestRestoreJustUnderThreshold(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(&Session{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	store.now = func() time.Time { return time.Now().Add(FreshnessThreshold - time.Minute) }

	restored, err := store.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored == nil {
		t.Fatal("a session inside the freshness window must restore")
	}
}

func TestRestoreCorruptFileErrors(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := store.Restore()
	if err == nil {
		t.Fatal("corruption should surface as an error, not as absence")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(&Session{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear must be a no-op: %v", err)
	}

	restored, err := store.Restore()
	if err != nil || restored != nil {
		t.Errorf("after Clear: (%v, %v)", restored, err)
	}
}

func TestSaveOverwritesPrevious(t *testing.T) {
	store := newTestStore(t)

	_ = store.Save(&Session{Messages: []Message{{Role: "user", Content: "first"}}})
	_ = store.Save(&Session{Messages: []Message{{Role: "user", Content: "second"}}})

	restored, err := store.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if len(restored.Messages) != 1 || restored.Messages[0].Content != "second" {
		t.Errorf("save should overwrite, got %+v", restored.Messages)
	}

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	if err != nil {
		t.Fatal(err)
	}
	jsonFiles := 0
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".json" {
			jsonFiles++
		}
	}
	if jsonFiles != 1 {
		t.Errorf("exactly one session record expected, found %d", jsonFiles)
	}
}
