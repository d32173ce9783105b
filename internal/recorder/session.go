package recorder

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

var (
	ErrAlreadyRecording = errors.New("recorder: session already in progress")
	ErrNotRecording     = errors.New("recorder: no session in progress")
)

// Session logs the moves and shuffles of one simulator run.
type Session struct {
	stateFile *StateFile
	log       zerolog.Logger

	mu        sync.Mutex
	state     SessionState
	sessionID string
	startTime time.Time
	seq       int
	moveCount int

	sessionRepo *storage.SessionRepository
	moveRepo    *storage.MoveRepository
	eventRepo   *storage.EventRepository
}

// NewSession creates a new session manager. stateFile may be nil.
func NewSession(db *storage.DB, stateFile *StateFile, log zerolog.Logger) *Session {
	return &Session{
		stateFile:   stateFile,
		log:         log.With().Str("component", "recorder").Logger(),
		state:       StateIdle,
		sessionRepo: storage.NewSessionRepository(db),
		moveRepo:    storage.NewMoveRepository(db),
		eventRepo:   storage.NewEventRepository(db),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// StateFile returns the state file the session updates, or nil.
func (s *Session) StateFile() *StateFile {
	return s.stateFile
}

// MoveCount returns the number of user moves recorded so far.
func (s *Session) MoveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveCount
}

// ElapsedMs returns the elapsed time since session start in milliseconds.
func (s *Session) ElapsedMs() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return 0
	}
	return time.Since(s.startTime).Milliseconds()
}

// Start starts a new recording session.
func (s *Session) Start(source string, seed uint64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", ErrAlreadyRecording
	}

	sessionID, err := s.sessionRepo.Create(source, seed)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionID = sessionID
	s.startTime = time.Now()
	s.seq = 0
	s.moveCount = 0
	s.state = StateRecording

	if s.stateFile != nil {
		if err := s.stateFile.SetActiveSession(sessionID); err != nil {
			s.log.Warn().Err(err).Msg("failed to update state file")
		}
	}

	s.log.Info().Str("session", sessionID).Str("source", source).Uint64("seed", seed).Msg("session started")
	return sessionID, nil
}

// End ends the current session.
func (s *Session) End(solved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	if err := s.sessionRepo.End(s.sessionID, s.moveCount, solved); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	s.state = StateEnded

	if s.stateFile != nil {
		if err := s.stateFile.ClearActiveSession(); err != nil {
			s.log.Warn().Err(err).Msg("failed to update state file")
		}
	}

	s.log.Info().Str("session", s.sessionID).Int("moves", s.moveCount).Bool("solved", solved).Msg("session ended")
	return nil
}

// RecordMove logs one committed user move.
func (s *Session) RecordMove(m cubesim.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return nil
	}

	tsMs := time.Since(s.startTime).Milliseconds()
	if _, err := s.moveRepo.Create(s.sessionID, s.seq, tsMs, m, storage.KindMove); err != nil {
		return fmt.Errorf("failed to store move: %w", err)
	}
	s.seq++
	s.moveCount++
	return nil
}

// RecordShuffle logs the turns of a shuffle and stores its notation on
// the session.
func (s *Session) RecordShuffle(moves []cubesim.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return nil
	}

	tsMs := time.Since(s.startTime).Milliseconds()
	if err := s.moveRepo.CreateBatch(s.sessionID, moves, s.seq, tsMs, storage.KindShuffle); err != nil {
		return fmt.Errorf("failed to store shuffle: %w", err)
	}
	s.seq += len(moves)

	if err := s.sessionRepo.SetShuffle(s.sessionID, cubesim.FormatMoves(moves)); err != nil {
		return err
	}
	return nil
}

// RecordEvent logs a raw device frame.
func (s *Session) RecordEvent(eventType, payloadJSON string, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return nil
	}

	var rawBase64 *string
	if raw != nil {
		enc := base64.StdEncoding.EncodeToString(raw)
		rawBase64 = &enc
	}

	tsMs := time.Since(s.startTime).Milliseconds()
	if _, err := s.eventRepo.Create(s.sessionID, tsMs, eventType, payloadJSON, rawBase64); err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}
	return nil
}

// Attach subscribes the session to sim. Storage failures are logged and
// never interrupt the simulator.
func (s *Session) Attach(sim *cubesim.Simulator) {
	sim.OnMove(func(m cubesim.Move) {
		if err := s.RecordMove(m); err != nil {
			s.log.Error().Err(err).Str("move", m.Notation()).Msg("failed to record move")
		}
	})
	sim.OnShuffle(func(moves []cubesim.Move) {
		if err := s.RecordShuffle(moves); err != nil {
			s.log.Error().Err(err).Msg("failed to record shuffle")
		}
	})
	sim.OnReset(func() {
		s.log.Debug().Str("session", s.SessionID()).Msg("cube reset")
	})
}

// Recover ends a session left open by a previous process that exited
// without calling End. It returns the recovered session ID, or "" if
// there was nothing to recover.
func (s *Session) Recover() (string, error) {
	if s.stateFile == nil {
		return "", nil
	}
	sessionID := s.stateFile.ActiveSessionID()
	if sessionID == "" {
		return "", nil
	}

	sess, err := s.sessionRepo.Get(sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	if sess != nil && sess.EndedAt == nil {
		count, err := s.moveRepo.Count(sessionID, storage.KindMove)
		if err != nil {
			return "", err
		}
		if err := s.sessionRepo.End(sessionID, count, false); err != nil {
			return "", fmt.Errorf("failed to end session: %w", err)
		}
		s.log.Info().Str("session", sessionID).Int("moves", count).Msg("recovered interrupted session")
	}

	if err := s.stateFile.ClearActiveSession(); err != nil {
		return "", err
	}
	return sessionID, nil
}
