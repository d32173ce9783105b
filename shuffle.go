package cubesim

import "math/rand/v2"

// DefaultShuffleLength is the number of random turns in a shuffle.
const DefaultShuffleLength = 20

// Shuffler scrambles a lattice with random quarter turns.
type Shuffler struct {
	engine *Engine
	rng    *rand.Rand
}

// NewShuffler creates a shuffler drawing from rng. Pass a seeded source to
// make shuffles reproducible.
func NewShuffler(engine *Engine, rng *rand.Rand) *Shuffler {
	return &Shuffler{engine: engine, rng: rng}
}

// Next draws one uniformly random quarter turn.
func (s *Shuffler) Next() Move {
	axis := Axis(s.rng.IntN(3))
	layer := s.rng.IntN(3) - 1
	sign := Positive
	if s.rng.IntN(2) == 0 {
		sign = Negative
	}
	return Move{Axis: axis, Layer: layer, Sign: sign}
}

// Shuffle applies n random quarter turns synchronously, without animation,
// and returns them in order. The caller must make sure no animated move is
// in flight.
func (s *Shuffler) Shuffle(n int) ([]Move, error) {
	moves := make([]Move, 0, max(n, 0))
	for i := 0; i < n; i++ {
		m := s.Next()
		if err := s.engine.Apply(m); err != nil {
			return moves, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
