package cubesim

import "fmt"

// CubieCount is the number of cubies in a 3x3x3 lattice.
const CubieCount = 27

// Cubie is one unit cube of the puzzle.
type Cubie struct {
	// ID is assigned at Reset and never reused.
	ID int
	// Position is the current lattice coordinate.
	Position Vec3
	// Orientation is the cumulative rotation applied since solved.
	Orientation Orientation
	// Home is the solved position; it decides which faces carry color.
	Home Vec3
}

// Colored reports whether the face of the cubie pointing along axis in
// direction sign (in the cubie's home frame) carries a sticker.
func (c Cubie) Colored(axis Axis, sign int) bool {
	return axis.Valid() && c.Home[axis] == sign && sign != 0
}

// Update is a new position and orientation for one cubie.
type Update struct {
	ID          int
	Position    Vec3
	Orientation Orientation
}

// Lattice holds the 27 cubies of one cube, indexed by ID.
// The zero value is not usable; create one with NewLattice.
type Lattice struct {
	cubies [CubieCount]Cubie
}

// NewLattice creates a lattice in the solved state.
func NewLattice() *Lattice {
	l := &Lattice{}
	l.Reset()
	return l
}

// Reset discards every cubie and recreates the solved set. IDs are assigned
// iterating x, then y, then z from -1 to 1.
func (l *Lattice) Reset() {
	id := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				pos := Vec3{x, y, z}
				l.cubies[id] = Cubie{
					ID:          id,
					Position:    pos,
					Orientation: Identity(),
					Home:        pos,
				}
				id++
			}
		}
	}
}

// Cubies returns a snapshot of every cubie ordered by ID.
func (l *Lattice) Cubies() []Cubie {
	out := make([]Cubie, CubieCount)
	copy(out, l.cubies[:])
	return out
}

// Cubie returns the cubie with the given ID.
func (l *Lattice) Cubie(id int) (Cubie, bool) {
	if id < 0 || id >= CubieCount {
		return Cubie{}, false
	}
	return l.cubies[id], true
}

// At returns the cubie currently occupying pos.
func (l *Lattice) At(pos Vec3) (Cubie, bool) {
	for _, c := range l.cubies {
		if c.Position == pos {
			return c, true
		}
	}
	return Cubie{}, false
}

// Apply writes a batch of updates. The resulting state is validated as a
// whole before anything is committed, so a failing batch leaves the lattice
// untouched. Errors wrap ErrInvariantViolation.
func (l *Lattice) Apply(updates ...Update) error {
	next := l.cubies
	for _, u := range updates {
		if u.ID < 0 || u.ID >= CubieCount {
			return fmt.Errorf("%w: unknown cubie id %d", ErrInvariantViolation, u.ID)
		}
		next[u.ID].Position = u.Position
		next[u.ID].Orientation = u.Orientation
	}
	if err := validate(&next); err != nil {
		return err
	}
	l.cubies = next
	return nil
}

// Validate checks the lattice invariants.
func (l *Lattice) Validate() error {
	return validate(&l.cubies)
}

func validate(cubies *[CubieCount]Cubie) error {
	var seen [3][3][3]bool
	for _, c := range cubies {
		if !c.Position.InLattice() {
			return fmt.Errorf("%w: cubie %d at %v is outside the lattice", ErrInvariantViolation, c.ID, c.Position)
		}
		x, y, z := c.Position[0]+1, c.Position[1]+1, c.Position[2]+1
		if seen[x][y][z] {
			return fmt.Errorf("%w: position %v is occupied twice", ErrInvariantViolation, c.Position)
		}
		seen[x][y][z] = true
		if !c.Orientation.IsCubeSymmetry() {
			return fmt.Errorf("%w: cubie %d has orientation %v outside the cube group", ErrInvariantViolation, c.ID, c.Orientation)
		}
	}
	return nil
}

// Clone creates a deep copy of the lattice.
func (l *Lattice) Clone() *Lattice {
	clone := *l
	return &clone
}

// Equal reports whether both lattices map every ID to the same position
// and orientation.
func (l *Lattice) Equal(other *Lattice) bool {
	return l.cubies == other.cubies
}
