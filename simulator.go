package cubesim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

// Simulator owns one cube: its lattice, the engine that turns it, the
// animation controller and the shuffler. It is not safe for concurrent use;
// drive it from a single goroutine, typically the render loop.
type Simulator struct {
	lattice    *Lattice
	engine     *Engine
	controller *Controller
	shuffler   *Shuffler

	log           zerolog.Logger
	seed          uint64
	shuffleLength int
	moveHistory   bool
	history       []Move

	onMove    func(Move)
	onShuffle func([]Move)
	onReset   func()
}

// New creates a simulator holding a solved cube.
func New(opts ...Option) *Simulator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(cfg.seed, cfg.seed>>1|1))
	}

	lattice := NewLattice()
	engine := NewEngine(lattice)
	s := &Simulator{
		lattice:       lattice,
		engine:        engine,
		controller:    NewController(engine, cfg.rate),
		shuffler:      NewShuffler(engine, rng),
		log:           cfg.logger.With().Str("component", "cubesim").Logger(),
		seed:          cfg.seed,
		shuffleLength: cfg.shuffleLength,
		moveHistory:   cfg.moveHistory,
		onMove:        cfg.commitHandler,
	}
	s.controller.SetCommitCallback(s.committed)
	return s
}

// OnMove sets a callback that fires after each animated move commits.
func (s *Simulator) OnMove(cb func(Move)) {
	s.onMove = cb
}

// OnShuffle sets a callback that fires after a shuffle with the moves it
// applied.
func (s *Simulator) OnShuffle(cb func([]Move)) {
	s.onShuffle = cb
}

// OnReset sets a callback that fires after the cube is reset.
func (s *Simulator) OnReset(cb func()) {
	s.onReset = cb
}

// StartMove begins animating m. It returns false if a move is already in
// flight; the request is dropped.
func (s *Simulator) StartMove(m Move) bool {
	if !s.controller.StartMove(m) {
		s.log.Debug().Str("move", m.Notation()).Msg("move rejected")
		return false
	}
	s.log.Debug().Str("move", m.Notation()).Msg("move started")
	return true
}

// Tick advances the animation by dt. It is meant to be called once per
// rendered frame. A returned error wraps ErrInvariantViolation and is fatal.
func (s *Simulator) Tick(dt time.Duration) error {
	if err := s.controller.Tick(dt); err != nil {
		s.log.Error().Err(err).Msg("commit failed")
		return err
	}
	return nil
}

func (s *Simulator) committed(m Move) {
	if s.moveHistory {
		s.history = append(s.history, m)
	}
	s.log.Debug().Str("move", m.Notation()).Bool("solved", s.IsSolved()).Msg("move committed")
	if s.onMove != nil {
		s.onMove(m)
	}
}

// Shuffle applies exactly n random turns instantly; a non-positive n is a
// no-op. It fails with ErrRejectedMove while a move is in flight. Turns are
// added to the history only when the whole shuffle succeeds.
func (s *Simulator) Shuffle(n int) ([]Move, error) {
	if !s.controller.Idle() {
		return nil, ErrRejectedMove
	}

	moves, err := s.shuffler.Shuffle(max(n, 0))
	if err != nil {
		s.log.Error().Err(err).Int("applied", len(moves)).Msg("shuffle failed")
		return moves, fmt.Errorf("shuffle: %w", err)
	}
	if s.moveHistory {
		s.history = append(s.history, moves...)
	}

	s.log.Info().Int("count", len(moves)).Str("moves", FormatMoves(moves)).Msg("cube shuffled")
	if s.onShuffle != nil {
		s.onShuffle(moves)
	}
	return moves, nil
}

// ShuffleDefault shuffles with the configured shuffle length.
func (s *Simulator) ShuffleDefault() ([]Move, error) {
	return s.Shuffle(s.shuffleLength)
}

// Apply turns m instantly, bypassing the animation. It fails with
// ErrRejectedMove while a move is in flight.
func (s *Simulator) Apply(moves ...Move) error {
	if !s.controller.Idle() {
		return ErrRejectedMove
	}
	for _, m := range moves {
		if err := s.engine.Apply(m); err != nil {
			return err
		}
		s.committed(m)
	}
	return nil
}

// Reset restores the solved cube and clears the history. It fails with
// ErrRejectedMove while a move is in flight.
func (s *Simulator) Reset() error {
	if !s.controller.Idle() {
		return ErrRejectedMove
	}
	s.lattice.Reset()
	s.history = nil
	s.log.Info().Msg("cube reset")
	if s.onReset != nil {
		s.onReset()
	}
	return nil
}

// Snapshot returns a copy of every cubie ordered by ID.
func (s *Simulator) Snapshot() []Cubie {
	return s.lattice.Cubies()
}

// Lattice returns a copy of the current lattice.
func (s *Simulator) Lattice() *Lattice {
	return s.lattice.Clone()
}

// Idle reports whether no move is in flight.
func (s *Simulator) Idle() bool {
	return s.controller.Idle()
}

// Active returns the in-flight move and its progress in radians.
func (s *Simulator) Active() (Move, float64, bool) {
	return s.controller.Active()
}

// Angle returns the signed rotation of the active layer in radians.
func (s *Simulator) Angle() float64 {
	return s.controller.Angle()
}

// Fraction returns the progress of the active move in [0, 1].
func (s *Simulator) Fraction() float64 {
	return s.controller.Fraction()
}

// History returns every move applied since the last reset.
func (s *Simulator) History() []Move {
	out := make([]Move, len(s.history))
	copy(out, s.history)
	return out
}

// Seed returns the seed of the shuffle random source.
func (s *Simulator) Seed() uint64 {
	return s.seed
}

// Facelets returns the current sticker colors.
func (s *Simulator) Facelets() Facelets {
	return ProjectFacelets(s.lattice.Cubies())
}

// IsSolved returns true if every face shows a single color.
func (s *Simulator) IsSolved() bool {
	return s.Facelets().IsSolved()
}
