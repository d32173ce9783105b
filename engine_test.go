package cubesim

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func applyAll(t *testing.T, l *Lattice, moves ...Move) {
	t.Helper()
	if err := NewEngine(l).ApplyAll(moves); err != nil {
		t.Fatalf("ApplyAll(%s): %v", FormatMoves(moves), err)
	}
}

func TestEveryMoveHasOrderFour(t *testing.T) {
	for _, m := range AllMoves {
		l := NewLattice()
		applyAll(t, l, m, m, m, m)
		if !l.Equal(NewLattice()) {
			t.Errorf("%v x 4 should return to solved", m)
		}
	}
}

func TestOrderFourFromScrambledState(t *testing.T) {
	l := NewLattice()
	s := NewShuffler(NewEngine(l), rand.New(rand.NewPCG(3, 5)))
	if _, err := s.Shuffle(30); err != nil {
		t.Fatal(err)
	}
	start := l.Clone()

	for _, m := range AllMoves {
		applyAll(t, l, m, m, m, m)
		if !l.Equal(start) {
			t.Errorf("%#v x 4 changed a scrambled lattice", m)
		}
	}
}

func TestRightLayerFourTimesRestoresHome(t *testing.T) {
	l := NewLattice()
	m := Move{Axis: AxisX, Layer: 1, Sign: Positive}
	applyAll(t, l, m, m, m, m)

	for _, c := range l.Cubies() {
		if c.Position != c.Home {
			t.Errorf("cubie %d at %v, want %v", c.ID, c.Position, c.Home)
		}
		if !c.Orientation.IsIdentity() {
			t.Errorf("cubie %d orientation %v, want identity", c.ID, c.Orientation)
		}
	}
}

func TestMovesDoNotCommute(t *testing.T) {
	a := Move{Axis: AxisX, Layer: 1, Sign: Positive}
	b := Move{Axis: AxisY, Layer: 1, Sign: Positive}

	ab := NewLattice()
	applyAll(t, ab, a, b)
	ba := NewLattice()
	applyAll(t, ba, b, a)

	if ab.Equal(ba) {
		t.Error("x-then-y and y-then-x should produce different lattices")
	}
}

func TestMoveTouchesExactlyOneLayer(t *testing.T) {
	for _, m := range AllMoves {
		l := NewLattice()
		applyAll(t, l, m)

		changed := 0
		for _, c := range l.Cubies() {
			moved := c.Position != c.Home || !c.Orientation.IsIdentity()
			if moved {
				changed++
				if c.Home[m.Axis] != m.Layer {
					t.Errorf("%v moved cubie %d outside its layer", m, c.ID)
				}
			}
		}
		if changed != 9 {
			t.Errorf("%v changed %d cubies, want 9", m, changed)
		}
	}
}

func TestInverseUndoesMove(t *testing.T) {
	for _, m := range AllMoves {
		l := NewLattice()
		applyAll(t, l, m, m.Inverse())
		if !l.Equal(NewLattice()) {
			t.Errorf("%v %v should return to solved", m, m.Inverse())
		}
	}
}

func TestRandomSequenceKeepsInvariants(t *testing.T) {
	l := NewLattice()
	e := NewEngine(l)
	rng := rand.New(rand.NewPCG(11, 13))
	s := NewShuffler(e, rng)

	for i := 0; i < 500; i++ {
		if err := e.Apply(s.Next()); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		if err := l.Validate(); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
	}
}

func TestMalformedMoveIsNoop(t *testing.T) {
	tests := []Move{
		{Axis: AxisX, Layer: 2, Sign: Positive},
		{Axis: AxisY, Layer: -2, Sign: Negative},
		{Axis: Axis(4), Layer: 0, Sign: Positive},
		{Axis: AxisZ, Layer: 1, Sign: 0},
		{},
	}
	for _, m := range tests {
		l := NewLattice()
		if err := NewEngine(l).Apply(m); err != nil {
			t.Errorf("Apply(%#v) error = %v, want nil", m, err)
		}
		if !l.Equal(NewLattice()) {
			t.Errorf("Apply(%#v) changed the lattice", m)
		}
	}
}

func TestSexyMoveSixTimesReturnsToSolved(t *testing.T) {
	l := NewLattice()
	for i := 0; i < 6; i++ {
		applyAll(t, l, SexyMove...)
	}
	if !l.Equal(NewLattice()) {
		t.Error("(R U R' U') x 6 should return to solved")
	}
}

func TestTPermTwiceReturnsToSolved(t *testing.T) {
	l := NewLattice()
	applyAll(t, l, TPerm...)
	if l.Equal(NewLattice()) {
		t.Fatal("T-perm should change the lattice")
	}
	applyAll(t, l, TPerm...)
	if !l.Equal(NewLattice()) {
		t.Error("T-perm x 2 should return to solved")
	}
}

func TestApplyAllStopsAtError(t *testing.T) {
	l := NewLattice()
	// Break the lattice behind the engine's back so the next turn fails
	// validation.
	l.cubies[0].Orientation = Orientation{}

	err := NewEngine(l).ApplyAll([]Move{R, U})
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("ApplyAll() error = %v, want ErrInvariantViolation", err)
	}
	c, _ := l.Cubie(26)
	if c.Position != c.Home {
		t.Error("failed turn should not be committed")
	}
}
