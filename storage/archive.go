package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ArchiveEntry is one archived trip conversation as shown in the browser.
type ArchiveEntry struct {
	ID           string
	Name         string
	Destination  string
	MessageCount int
	CreatedAt    time.Time
}

// Archive is the long-term store for finished trip conversations. Unlike
// the single active session record, archived trips survive the freshness
// window and are kept until deleted.
type Archive struct {
	db *sql.DB
}

// NewArchive opens (or creates) the archive database under dataDir.
func NewArchive(dataDir string) (*Archive, error) {
	dbPath := filepath.Join(dataDir, "trips.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	a := &Archive{db: db}
	if err := a.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return a, nil
}

func (a *Archive) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		destination TEXT NOT NULL,
		message_count INTEGER NOT NULL,
		session TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trips_destination ON trips(destination);

	CREATE TABLE IF NOT EXISTS trip_messages (
		trip_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		PRIMARY KEY (trip_id, idx)
	);
	`

	_, err := a.db.Exec(schema)
	return err
}

// Save archives the session under a generated ID and returns it. The full
// record goes in as JSON; message text is mirrored into trip_messages for
// search.
func (a *Archive) Save(name string, destination string, session *Session) (string, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	id := uuid.New().String()
	if strings.TrimSpace(name) == "" {
		name = defaultArchiveName(destination)
	}

	tx, err := a.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO trips (id, name, destination, message_count, session, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, destination, len(session.Messages), string(data), time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to insert trip: %w", err)
	}

	for i, msg := range session.Messages {
		_, err = tx.Exec(`
			INSERT INTO trip_messages (trip_id, idx, role, content)
			VALUES (?, ?, ?, ?)`,
			id, i, msg.Role, msg.Content)
		if err != nil {
			return "", fmt.Errorf("failed to index trip message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit trip: %w", err)
	}
	return id, nil
}

// List returns every archived trip, newest first.
func (a *Archive) List() ([]ArchiveEntry, error) {
	rows, err := a.db.Query(`
		SELECT id, name, destination, message_count, created_at
		FROM trips ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Load returns the full session record for one archived trip.
func (a *Archive) Load(id string) (*Session, error) {
	var data string
	err := a.db.QueryRow(`SELECT session FROM trips WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trip not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query trip: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trip: %w", err)
	}
	return &session, nil
}

// Delete removes an archived trip and its message index.
func (a *Archive) Delete(id string) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trip_messages WHERE trip_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete trip messages: %w", err)
	}
	result, err := tx.Exec(`DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("trip not found: %s", id)
	}

	return tx.Commit()
}

// Search returns trips whose name, destination or any message contains
// the query (case-insensitive), newest first.
func (a *Archive) Search(query string) ([]ArchiveEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return a.List()
	}
	like := "%" + strings.ToLower(query) + "%"

	rows, err := a.db.Query(`
		SELECT DISTINCT t.id, t.name, t.destination, t.message_count, t.created_at
		FROM trips t
		LEFT JOIN trip_messages m ON m.trip_id = t.id
		WHERE lower(t.name) LIKE ? OR lower(t.destination) LIKE ? OR lower(m.content) LIKE ?
		ORDER BY t.created_at DESC`,
		like, like, like)
	if err != nil {
		return nil, fmt.Errorf("failed to search trips: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Close releases the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

func scanEntries(rows *sql.Rows) ([]ArchiveEntry, error) {
	var entries []ArchiveEntry
	for rows.Next() {
		var e ArchiveEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Destination, &e.MessageCount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func defaultArchiveName(destination string) string {
	if destination != "" {
		return fmt.Sprintf("Chuyến đi %s", destination)
	}
	return fmt.Sprintf("Chuyến đi %s", time.Now().Format("Jan 2, 3:04 PM"))
}
