package cubesim

import (
	"strings"
	"testing"
)

func facelets(t *testing.T, moves ...Move) Facelets {
	t.Helper()
	l := NewLattice()
	applyAll(t, l, moves...)
	return ProjectFacelets(l.Cubies())
}

func TestNewCubeIsSolved(t *testing.T) {
	f := facelets(t)
	if !f.IsSolved() {
		t.Error("New cube should be solved")
		t.Log(f.String())
	}
	for face := FaceU; face <= FaceL; face++ {
		if f[face][4] != faceToSolvedColor(face) {
			t.Errorf("%v center is %v, want %v", face, f[face][4], faceToSolvedColor(face))
		}
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	for _, m := range AllMoves {
		f := facelets(t, m)
		if f.IsSolved() {
			t.Errorf("Cube should not be solved after %v", m)
		}
	}
}

func TestRMovesFrontToUp(t *testing.T) {
	f := facelets(t, R)
	for _, i := range []int{2, 5, 8} {
		if f[FaceU][i] != Green {
			t.Errorf("after R, U[%d] = %v, want G", i, f[FaceU][i])
		}
		if f[FaceF][i] != Yellow {
			t.Errorf("after R, F[%d] = %v, want Y", i, f[FaceF][i])
		}
	}
	if t.Failed() {
		t.Log(f.String())
	}
}

func TestUMovesFrontToLeft(t *testing.T) {
	f := facelets(t, U)
	for _, i := range []int{0, 1, 2} {
		if f[FaceL][i] != Green {
			t.Errorf("after U, L[%d] = %v, want G", i, f[FaceL][i])
		}
	}
}

func TestLMovesUpToFront(t *testing.T) {
	f := facelets(t, L)
	for _, i := range []int{0, 3, 6} {
		if f[FaceF][i] != White {
			t.Errorf("after L, F[%d] = %v, want W", i, f[FaceF][i])
		}
	}
}

func TestSliceFourTimesReturnsToSolved(t *testing.T) {
	for _, m := range []Move{M, E, S} {
		f := facelets(t, m, m, m, m)
		if !f.IsSolved() {
			t.Errorf("%v x 4 should return to solved", m)
			t.Log(f.String())
		}
	}
}

func TestWholeCubeRotationStaysSolved(t *testing.T) {
	// R M' L' turns all three x layers together.
	f := facelets(t, R, MPrime, LPrime)
	if !f.IsSolved() {
		t.Error("a whole-cube rotation should keep every face uniform")
		t.Log(f.String())
	}
	if f[FaceF][4] == Green {
		t.Error("the front center should have moved")
	}
}

func TestEveryFaceletProjected(t *testing.T) {
	l := NewLattice()
	s := NewShuffler(NewEngine(l), newTestRand(21))
	if _, err := s.Shuffle(40); err != nil {
		t.Fatal(err)
	}

	f := ProjectFacelets(l.Cubies())
	counts := map[Color]int{}
	for face := range f {
		for _, c := range f[face] {
			counts[c]++
		}
	}
	if counts[NoColor] != 0 {
		t.Errorf("%d facelets left without a sticker", counts[NoColor])
	}
	for _, c := range []Color{White, Yellow, Green, Blue, Red, Orange} {
		if counts[c] != 9 {
			t.Errorf("color %v appears %d times, want 9", c, counts[c])
		}
	}
}

func TestFaceletsString(t *testing.T) {
	s := facelets(t).String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("net has %d lines, want 9", len(lines))
	}
	if got := strings.TrimSpace(lines[0]); got != "W W W" {
		t.Errorf("first line = %q, want %q", got, "W W W")
	}
	if got := strings.TrimSpace(lines[3]); got != "O O O G G G R R R B B B" {
		t.Errorf("middle line = %q", got)
	}
}
