package cubesim

import (
	"slices"
	"testing"
)

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	a := NewShuffler(NewEngine(NewLattice()), newTestRand(42))
	b := NewShuffler(NewEngine(NewLattice()), newTestRand(42))

	ma, err := a.Shuffle(DefaultShuffleLength)
	if err != nil {
		t.Fatal(err)
	}
	mb, err := b.Shuffle(DefaultShuffleLength)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(ma, mb) {
		t.Errorf("same seed produced %s and %s", FormatMoves(ma), FormatMoves(mb))
	}
}

func TestShuffleKeepsInvariantsAndIsReversible(t *testing.T) {
	l := NewLattice()
	s := NewShuffler(NewEngine(l), newTestRand(7))

	moves, err := s.Shuffle(DefaultShuffleLength)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != DefaultShuffleLength {
		t.Fatalf("got %d moves, want %d", len(moves), DefaultShuffleLength)
	}
	for _, m := range moves {
		if !m.Valid() {
			t.Errorf("shuffle drew invalid move %#v", m)
		}
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("shuffled lattice invalid: %v", err)
	}

	applyAll(t, l, InvertMoves(moves)...)
	if !l.Equal(NewLattice()) {
		t.Error("inverse sequence should restore the solved lattice")
	}
}

func TestShuffleCoversEveryMove(t *testing.T) {
	s := NewShuffler(NewEngine(NewLattice()), newTestRand(99))
	counts := map[Move]int{}
	for i := 0; i < 1000; i++ {
		counts[s.Next()]++
	}
	if len(counts) != 18 {
		t.Errorf("drew %d distinct moves, want 18", len(counts))
	}
	for _, m := range AllMoves {
		if counts[m] == 0 {
			t.Errorf("%v never drawn", m)
		}
	}
}

func TestShuffleZeroIsNoop(t *testing.T) {
	l := NewLattice()
	s := NewShuffler(NewEngine(l), newTestRand(1))
	for _, n := range []int{0, -3} {
		moves, err := s.Shuffle(n)
		if err != nil || len(moves) != 0 {
			t.Errorf("Shuffle(%d) = %v, %v, want no moves", n, moves, err)
		}
	}
	if !l.Equal(NewLattice()) {
		t.Error("empty shuffle changed the lattice")
	}
}
