package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubesim"
)

// Move kinds.
const (
	KindMove    = "move"
	KindShuffle = "shuffle"
)

// MoveRecord represents a logged quarter turn.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	Seq       int
	TsMs      int64
	Notation  string
	Axis      int
	Layer     int
	Sign      int
	Kind      string
}

// Move returns the quarter turn the record describes.
func (r MoveRecord) Move() cubesim.Move {
	return cubesim.Move{
		Axis:  cubesim.Axis(r.Axis),
		Layer: r.Layer,
		Sign:  cubesim.Sign(r.Sign),
	}
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

const insertMove = `
	INSERT INTO moves (session_id, seq, ts_ms, notation, axis, layer, sign, kind)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// Create creates a new move and returns its ID.
func (r *MoveRepository) Create(sessionID string, seq int, tsMs int64, move cubesim.Move, kind string) (int64, error) {
	result, err := r.db.Exec(insertMove,
		sessionID, seq, tsMs, move.Notation(), int(move.Axis), move.Layer, int(move.Sign), kind)

	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// CreateBatch creates multiple moves in a single transaction.
func (r *MoveRepository) CreateBatch(sessionID string, moves []cubesim.Move, startSeq int, tsMs int64, kind string) error {
	return r.db.InTx(func(tx *sql.Tx) error {
		for i, move := range moves {
			_, err := tx.Exec(insertMove,
				sessionID, startSeq+i, tsMs, move.Notation(), int(move.Axis), move.Layer, int(move.Sign), kind)
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startSeq+i, err)
			}
		}
		return nil
	})
}

// ListBySession retrieves all moves for a session in order.
func (r *MoveRepository) ListBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, seq, ts_ms, notation, axis, layer, sign, kind
		FROM moves
		WHERE session_id = ?
		ORDER BY seq
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.Seq, &m.TsMs, &m.Notation, &m.Axis, &m.Layer, &m.Sign, &m.Kind)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// NextSeq returns the next sequence number for a session.
func (r *MoveRepository) NextSeq(sessionID string) (int, error) {
	var maxSeq int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(seq), -1) FROM moves WHERE session_id = ?
	`, sessionID).Scan(&maxSeq)
	if err != nil {
		return 0, fmt.Errorf("failed to get max move seq: %w", err)
	}
	return maxSeq + 1, nil
}

// Count returns the number of moves of the given kind for a session.
// An empty kind counts every move.
func (r *MoveRepository) Count(sessionID, kind string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM moves
		WHERE session_id = ? AND (? = '' OR kind = ?)
	`, sessionID, kind, kind).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// ToMoves converts MoveRecords to quarter turns.
func ToMoves(records []MoveRecord) []cubesim.Move {
	moves := make([]cubesim.Move, len(records))
	for i, r := range records {
		moves[i] = r.Move()
	}
	return moves
}
