package cubesim

import (
	"math"
	"testing"
)

func TestQuarterTurnHasOrderFour(t *testing.T) {
	for axis := AxisX; axis <= AxisZ; axis++ {
		for _, sign := range []Sign{Positive, Negative} {
			q := QuarterTurn(axis, sign)
			if q.IsIdentity() {
				t.Fatalf("QuarterTurn(%v, %v) is the identity", axis, sign)
			}
			r := q.Mul(q).Mul(q).Mul(q)
			if !r.IsIdentity() {
				t.Errorf("QuarterTurn(%v, %v)^4 = %v, want identity", axis, sign, r)
			}
			if !q.Mul(QuarterTurn(axis, -sign)).IsIdentity() {
				t.Errorf("QuarterTurn(%v, %v) is not undone by the opposite sign", axis, sign)
			}
			if q.Inverse() != QuarterTurn(axis, -sign) {
				t.Errorf("Inverse of QuarterTurn(%v, %v) mismatch", axis, sign)
			}
		}
	}
}

func TestRotateRightHandRule(t *testing.T) {
	tests := []struct {
		axis Axis
		sign Sign
		in   Vec3
		want Vec3
	}{
		{AxisX, Positive, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{AxisX, Negative, Vec3{0, 0, 1}, Vec3{0, 1, 0}},
		{AxisY, Positive, Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{AxisY, Negative, Vec3{0, 1, 1}, Vec3{-1, 1, 0}},
		{AxisZ, Positive, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{AxisZ, Negative, Vec3{1, 1, 1}, Vec3{1, -1, 1}},
		{AxisX, Positive, Vec3{1, 0, 0}, Vec3{1, 0, 0}},
	}
	for _, tc := range tests {
		got, _ := Rotate(tc.axis, tc.sign, tc.in, Identity())
		if got != tc.want {
			t.Errorf("Rotate(%v, %v, %v) = %v, want %v", tc.axis, tc.sign, tc.in, got, tc.want)
		}
	}
}

func TestRotateComposesInWorldFrame(t *testing.T) {
	_, o := Rotate(AxisX, Positive, Vec3{1, 1, 1}, Identity())
	_, o = Rotate(AxisY, Positive, Vec3{1, 1, 1}, o)

	world := QuarterTurn(AxisY, Positive).Mul(QuarterTurn(AxisX, Positive))
	local := QuarterTurn(AxisX, Positive).Mul(QuarterTurn(AxisY, Positive))
	if o != world {
		t.Errorf("orientation = %v, want Qy·Qx = %v", o, world)
	}
	if o == local {
		t.Error("orientation matches Qx·Qy; composition order is wrong")
	}
}

func TestRotateInvalidIsNoop(t *testing.T) {
	pos := Vec3{1, 0, -1}
	o := QuarterTurn(AxisZ, Positive)
	gotPos, gotO := Rotate(Axis(5), Positive, pos, o)
	if gotPos != pos || gotO != o {
		t.Error("invalid axis should leave the cubie untouched")
	}
	gotPos, gotO = Rotate(AxisX, Sign(0), pos, o)
	if gotPos != pos || gotO != o {
		t.Error("invalid sign should leave the cubie untouched")
	}
}

func TestQuarterTurnsGenerateCubeGroup(t *testing.T) {
	seen := map[Orientation]bool{Identity(): true}
	frontier := []Orientation{Identity()}
	for len(frontier) > 0 {
		o := frontier[0]
		frontier = frontier[1:]
		for axis := AxisX; axis <= AxisZ; axis++ {
			_, next := Rotate(axis, Positive, Vec3{}, o)
			if !seen[next] {
				seen[next] = true
				frontier = append(frontier, next)
			}
		}
	}

	if len(seen) != 24 {
		t.Fatalf("quarter turns generate %d orientations, want 24", len(seen))
	}
	for o := range seen {
		if !o.IsCubeSymmetry() {
			t.Errorf("%v is not a cube symmetry", o)
		}
	}
}

func TestIsCubeSymmetryRejectsNonRotations(t *testing.T) {
	mirror := Orientation{{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if mirror.IsCubeSymmetry() {
		t.Error("a reflection is not a rotation")
	}
	scaled := Orientation{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if scaled.IsCubeSymmetry() {
		t.Error("a scaled matrix is not a rotation")
	}
	var zero Orientation
	if zero.IsCubeSymmetry() {
		t.Error("the zero matrix is not a rotation")
	}
}

func TestQuaternion(t *testing.T) {
	const eps = 1e-9
	near := func(a, b float64) bool { return math.Abs(a-b) < eps }
	h := math.Sqrt(0.5)

	tests := []struct {
		name       string
		o          Orientation
		w, x, y, z float64
	}{
		{"identity", Identity(), 1, 0, 0, 0},
		{"x+", QuarterTurn(AxisX, Positive), h, h, 0, 0},
		{"y-", QuarterTurn(AxisY, Negative), h, 0, -h, 0},
		{"z+", QuarterTurn(AxisZ, Positive), h, 0, 0, h},
		{"x half", QuarterTurn(AxisX, Positive).Mul(QuarterTurn(AxisX, Positive)), 0, 1, 0, 0},
		{"y half", QuarterTurn(AxisY, Positive).Mul(QuarterTurn(AxisY, Positive)), 0, 0, 1, 0},
		{"corner", QuarterTurn(AxisY, Positive).Mul(QuarterTurn(AxisX, Positive)), 0.5, 0.5, 0.5, -0.5},
	}
	for _, tc := range tests {
		w, x, y, z := tc.o.Quaternion()
		if !near(w, tc.w) || !near(x, tc.x) || !near(y, tc.y) || !near(z, tc.z) {
			t.Errorf("%s: Quaternion() = (%.3f, %.3f, %.3f, %.3f), want (%.3f, %.3f, %.3f, %.3f)",
				tc.name, w, x, y, z, tc.w, tc.x, tc.y, tc.z)
		}
	}
}
