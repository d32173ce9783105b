package cubesim

// Engine applies quarter turns to a lattice.
type Engine struct {
	lattice *Lattice
}

// NewEngine creates an engine that mutates lattice.
func NewEngine(lattice *Lattice) *Engine {
	return &Engine{lattice: lattice}
}

// Lattice returns the lattice the engine mutates.
func (e *Engine) Lattice() *Lattice {
	return e.lattice
}

// Apply turns the layer named by m. The layer is rotated as one batch: if
// the result would break an invariant nothing is written and an error
// wrapping ErrInvariantViolation is returned. A malformed move selects no
// cubies and is a no-op.
func (e *Engine) Apply(m Move) error {
	if !m.Sign.Valid() {
		return nil
	}
	layer := SelectLayer(e.lattice.Cubies(), m.Axis, m.Layer)
	if len(layer) == 0 {
		return nil
	}

	updates := make([]Update, len(layer))
	for i, c := range layer {
		pos, o := Rotate(m.Axis, m.Sign, c.Position, c.Orientation)
		updates[i] = Update{ID: c.ID, Position: pos, Orientation: o}
	}
	return e.lattice.Apply(updates...)
}

// ApplyAll applies moves in order, stopping at the first error.
func (e *Engine) ApplyAll(moves []Move) error {
	for _, m := range moves {
		if err := e.Apply(m); err != nil {
			return err
		}
	}
	return nil
}
