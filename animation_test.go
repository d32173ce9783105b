package cubesim

import (
	"math"
	"testing"
	"time"
)

const frame = 100 * time.Millisecond

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestController() (*Controller, *Lattice) {
	l := NewLattice()
	return NewController(NewEngine(l), DefaultRate), l
}

func TestStartMoveEngages(t *testing.T) {
	c, _ := newTestController()
	if c.State() != StateIdle {
		t.Fatalf("new controller state = %v, want idle", c.State())
	}
	if !c.StartMove(R) {
		t.Fatal("StartMove on idle controller should succeed")
	}
	m, progress, ok := c.Active()
	if !ok || m != R || progress != 0 {
		t.Errorf("Active() = %v, %v, %v, want R, 0, true", m, progress, ok)
	}
	if c.State() != StateEngaged {
		t.Errorf("state = %v, want engaged", c.State())
	}
}

func TestSingleFlight(t *testing.T) {
	c, _ := newTestController()
	c.StartMove(R)
	if err := c.Tick(frame); err != nil {
		t.Fatal(err)
	}
	if c.StartMove(U) {
		t.Error("StartMove while engaged should be rejected")
	}
	m, progress, _ := c.Active()
	if m != R || !near(progress, 0.5) {
		t.Errorf("rejected request changed the active move: %v at %v", m, progress)
	}
}

func TestTickAdvancesAtRate(t *testing.T) {
	c, l := newTestController()
	c.StartMove(R)

	for i, want := range []float64{0.5, 1.0, 1.5, QuarterAngle} {
		if err := c.Tick(frame); err != nil {
			t.Fatal(err)
		}
		_, progress, ok := c.Active()
		if !ok {
			t.Fatalf("tick %d: controller went idle early", i+1)
		}
		if !near(progress, want) {
			t.Errorf("tick %d: progress = %v, want %v", i+1, progress, want)
		}
		if !l.Equal(NewLattice()) {
			t.Fatalf("tick %d: lattice changed before commit", i+1)
		}
	}
	if !near(c.Fraction(), 1) {
		t.Errorf("Fraction() = %v, want 1", c.Fraction())
	}
}

func TestCommitExactlyOnce(t *testing.T) {
	c, l := newTestController()
	commits := 0
	c.SetCommitCallback(func(m Move) {
		commits++
		if m != R {
			t.Errorf("committed %v, want R", m)
		}
	})

	c.StartMove(R)
	for i := 0; i < 20; i++ {
		if err := c.Tick(frame); err != nil {
			t.Fatal(err)
		}
	}

	if commits != 1 {
		t.Fatalf("commits = %d, want 1", commits)
	}
	if !c.Idle() {
		t.Error("controller should be idle after commit")
	}
	want := NewLattice()
	applyAll(t, want, R)
	if !l.Equal(want) {
		t.Error("lattice should hold exactly one R")
	}
}

func TestCommitOnTickAfterClamp(t *testing.T) {
	c, l := newTestController()
	c.StartMove(U)

	// One long frame reaches the end of the sweep.
	if err := c.Tick(time.Second); err != nil {
		t.Fatal(err)
	}
	if c.Idle() || !near(c.Fraction(), 1) {
		t.Fatal("long frame should clamp progress without committing")
	}
	if !l.Equal(NewLattice()) {
		t.Fatal("clamped move committed early")
	}

	if err := c.Tick(0); err != nil {
		t.Fatal(err)
	}
	if !c.Idle() {
		t.Error("tick after clamp should commit")
	}
	if l.Equal(NewLattice()) {
		t.Error("commit did not change the lattice")
	}
}

func TestIdleTickIsNoop(t *testing.T) {
	c, l := newTestController()
	for i := 0; i < 3; i++ {
		if err := c.Tick(frame); err != nil {
			t.Fatal(err)
		}
	}
	if !c.Idle() || !l.Equal(NewLattice()) {
		t.Error("ticks while idle should do nothing")
	}
	if c.Angle() != 0 || c.Fraction() != 0 {
		t.Error("idle controller should report no rotation")
	}
}

func TestNegativeTickDoesNotRewind(t *testing.T) {
	c, _ := newTestController()
	c.StartMove(R)
	c.Tick(frame)
	c.Tick(-time.Second)
	if _, progress, _ := c.Active(); !near(progress, 0.5) {
		t.Errorf("progress = %v after negative dt, want 0.5", progress)
	}
}

func TestAngleFollowsSign(t *testing.T) {
	c, _ := newTestController()
	c.StartMove(R)
	c.Tick(frame)
	if !near(c.Angle(), -0.5) {
		t.Errorf("R angle = %v, want -0.5", c.Angle())
	}

	c2, _ := newTestController()
	c2.StartMove(RPrime)
	c2.Tick(frame)
	if !near(c2.Angle(), 0.5) {
		t.Errorf("R' angle = %v, want 0.5", c2.Angle())
	}
}

func TestNonPositiveRateUsesDefault(t *testing.T) {
	c := NewController(NewEngine(NewLattice()), 0)
	if c.Rate() != DefaultRate {
		t.Errorf("Rate() = %v, want %v", c.Rate(), DefaultRate)
	}
}
