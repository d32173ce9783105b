package cubesim

import (
	"errors"
	"testing"
)

func TestResetIsCanonical(t *testing.T) {
	l := NewLattice()
	cubies := l.Cubies()
	if len(cubies) != CubieCount {
		t.Fatalf("got %d cubies, want %d", len(cubies), CubieCount)
	}
	for i, c := range cubies {
		if c.ID != i {
			t.Errorf("cubie %d has ID %d", i, c.ID)
		}
		want := 9*(c.Home[0]+1) + 3*(c.Home[1]+1) + (c.Home[2] + 1)
		if c.ID != want {
			t.Errorf("cubie at home %v has ID %d, want %d", c.Home, c.ID, want)
		}
		if c.Position != c.Home {
			t.Errorf("cubie %d position %v != home %v", c.ID, c.Position, c.Home)
		}
		if !c.Orientation.IsIdentity() {
			t.Errorf("cubie %d orientation is not identity", c.ID)
		}
	}
	if err := l.Validate(); err != nil {
		t.Errorf("solved lattice invalid: %v", err)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	l := NewLattice()
	e := NewEngine(l)
	if err := e.ApplyAll(TPerm); err != nil {
		t.Fatal(err)
	}
	l.Reset()
	first := l.Cubies()
	l.Reset()
	if !l.Equal(NewLattice()) {
		t.Error("Reset does not yield the canonical lattice")
	}
	for i, c := range l.Cubies() {
		if c != first[i] {
			t.Errorf("cubie %d differs between resets", i)
		}
	}
}

func TestApplyRejectsCollision(t *testing.T) {
	l := NewLattice()
	before := l.Clone()
	other, _ := l.Cubie(1)

	err := l.Apply(Update{ID: 0, Position: other.Position, Orientation: Identity()})
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("Apply() error = %v, want ErrInvariantViolation", err)
	}
	if !l.Equal(before) {
		t.Error("failed Apply must not commit anything")
	}
}

func TestApplyRejectsBadInput(t *testing.T) {
	l := NewLattice()
	c, _ := l.Cubie(5)

	tests := []struct {
		name string
		u    Update
	}{
		{"unknown id", Update{ID: 27, Position: c.Position, Orientation: Identity()}},
		{"negative id", Update{ID: -1, Position: c.Position, Orientation: Identity()}},
		{"outside lattice", Update{ID: 5, Position: Vec3{2, 0, 0}, Orientation: Identity()}},
		{"reflection", Update{ID: 5, Position: c.Position, Orientation: Orientation{{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}},
	}
	for _, tc := range tests {
		if err := l.Apply(tc.u); !errors.Is(err, ErrInvariantViolation) {
			t.Errorf("%s: Apply() error = %v, want ErrInvariantViolation", tc.name, err)
		}
	}
	if !l.Equal(NewLattice()) {
		t.Error("rejected updates changed the lattice")
	}
}

func TestApplySwapsAsBatch(t *testing.T) {
	l := NewLattice()
	a, _ := l.Cubie(0)
	b, _ := l.Cubie(26)

	err := l.Apply(
		Update{ID: a.ID, Position: b.Position, Orientation: Identity()},
		Update{ID: b.ID, Position: a.Position, Orientation: Identity()},
	)
	if err != nil {
		t.Fatalf("swap rejected: %v", err)
	}
	got, ok := l.At(a.Position)
	if !ok || got.ID != b.ID {
		t.Errorf("At(%v) = %d, want %d", a.Position, got.ID, b.ID)
	}
}

func TestCubiesIsSnapshot(t *testing.T) {
	l := NewLattice()
	cubies := l.Cubies()
	cubies[0].Position = Vec3{1, 1, 1}
	cubies[0].Home = Vec3{1, 1, 1}

	c, _ := l.Cubie(0)
	if c.Position != (Vec3{-1, -1, -1}) || c.Home != (Vec3{-1, -1, -1}) {
		t.Error("mutating a snapshot changed the lattice")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l := NewLattice()
	clone := l.Clone()
	if err := NewEngine(clone).Apply(R); err != nil {
		t.Fatal(err)
	}
	if l.Equal(clone) {
		t.Error("turning a clone changed the original")
	}
}

func TestSelectLayerYZero(t *testing.T) {
	l := NewLattice()
	layer := SelectLayer(l.Cubies(), AxisY, 0)
	if len(layer) != 9 {
		t.Fatalf("got %d cubies, want 9", len(layer))
	}
	for _, c := range layer {
		if c.Home.Y() != 0 {
			t.Errorf("cubie %d with home %v selected", c.ID, c.Home)
		}
	}
}

func TestSelectLayerEveryLayerHasNine(t *testing.T) {
	cubies := NewLattice().Cubies()
	for axis := AxisX; axis <= AxisZ; axis++ {
		for layer := -1; layer <= 1; layer++ {
			if n := len(SelectLayer(cubies, axis, layer)); n != 9 {
				t.Errorf("layer %v=%d has %d cubies", axis, layer, n)
			}
		}
	}
}

func TestSelectLayerInvalidIsEmpty(t *testing.T) {
	cubies := NewLattice().Cubies()
	if got := SelectLayer(cubies, AxisX, 2); len(got) != 0 {
		t.Errorf("layer 2 selected %d cubies", len(got))
	}
	if got := SelectLayer(cubies, Axis(3), 0); len(got) != 0 {
		t.Errorf("axis 3 selected %d cubies", len(got))
	}
}

func TestInLayerRounds(t *testing.T) {
	if !InLayer(0.98, -0.02, 0.4, AxisX, 1) {
		t.Error("x=0.98 should round into layer 1")
	}
	if !InLayer(0.98, -0.02, 0.4, AxisY, 0) {
		t.Error("y=-0.02 should round into layer 0")
	}
	if !InLayer(0.98, -0.02, 0.4, AxisZ, 0) {
		t.Error("z=0.4 should round into layer 0")
	}
	if InLayer(0.98, -0.02, 0.4, AxisX, 0) {
		t.Error("x=0.98 is not in layer 0")
	}
	if InLayer(0, 0, 0, Axis(-1), 0) {
		t.Error("invalid axis matches nothing")
	}
}
