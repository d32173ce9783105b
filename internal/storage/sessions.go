package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session sources.
const (
	SourcePlay    = "play"
	SourceMirror  = "mirror"
	SourceApply   = "apply"
	SourceShuffle = "shuffle"
)

// Session represents one simulator run in the database.
type Session struct {
	SessionID   string
	StartedAt   time.Time
	EndedAt     *time.Time
	DurationMs  *int64
	Source      string
	Seed        uint64
	ShuffleText *string
	MoveCount   int
	Solved      bool
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session and returns its ID.
func (r *SessionRepository) Create(source string, seed uint64) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at, source, seed)
		VALUES (?, ?, ?, ?)
	`, id, startedAt.Format(time.RFC3339Nano), source, int64(seed))

	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// SetShuffle stores the notation of the latest shuffle.
func (r *SessionRepository) SetShuffle(sessionID, shuffle string) error {
	_, err := r.db.Exec(`
		UPDATE sessions SET shuffle_text = ? WHERE session_id = ?
	`, shuffle, sessionID)
	if err != nil {
		return fmt.Errorf("failed to set shuffle: %w", err)
	}
	return nil
}

// End marks a session as complete.
func (r *SessionRepository) End(sessionID string, moveCount int, solved bool) error {
	endedAt := time.Now().UTC()

	var startedAtStr string
	err := r.db.QueryRow("SELECT started_at FROM sessions WHERE session_id = ?", sessionID).Scan(&startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to get session start time: %w", err)
	}

	startedAt, err := time.Parse(time.RFC3339Nano, startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time: %w", err)
	}

	durationMs := endedAt.Sub(startedAt).Milliseconds()

	_, err = r.db.Exec(`
		UPDATE sessions
		SET ended_at = ?, duration_ms = ?, move_count = ?, solved = ?
		WHERE session_id = ?
	`, endedAt.Format(time.RFC3339Nano), durationMs, moveCount, solved, sessionID)

	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID. It returns nil if none exists.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	row := r.db.QueryRow(`
		SELECT session_id, started_at, ended_at, duration_ms, source, seed, shuffle_text, move_count, solved
		FROM sessions
		WHERE session_id = ?
	`, sessionID)

	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// List returns the most recent sessions, newest first. A non-positive
// limit returns all of them.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(`
		SELECT session_id, started_at, ended_at, duration_ms, source, seed, shuffle_text, move_count, solved
		FROM sessions
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}

	return sessions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var s Session
	var startedAtStr string
	var endedAtStr sql.NullString
	var seed int64

	err := row.Scan(
		&s.SessionID, &startedAtStr, &endedAtStr, &s.DurationMs,
		&s.Source, &seed, &s.ShuffleText, &s.MoveCount, &s.Solved,
	)
	if err != nil {
		return nil, err
	}

	s.Seed = uint64(seed)
	s.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(time.RFC3339Nano, endedAtStr.String)
		s.EndedAt = &t
	}

	return &s, nil
}
