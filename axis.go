package cubesim

import "fmt"

// Axis identifies one of the three lattice axes.
type Axis int

const (
	AxisX Axis = 0 // Left (-1) to Right (+1)
	AxisY Axis = 1 // Down (-1) to Up (+1)
	AxisZ Axis = 2 // Back (-1) to Front (+1)
)

// Valid reports whether a is one of AxisX, AxisY, AxisZ.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Sign is the direction of a quarter turn by the right-hand rule:
// Positive turns counter-clockwise when looking down the axis from its
// positive end.
type Sign int

const (
	Negative Sign = -1
	Positive Sign = 1
)

// Valid reports whether s is Positive or Negative.
func (s Sign) Valid() bool {
	return s == Positive || s == Negative
}

func (s Sign) String() string {
	switch s {
	case Positive:
		return "+"
	case Negative:
		return "-"
	default:
		return "0"
	}
}

// Vec3 is an integer lattice coordinate (x, y, z).
type Vec3 [3]int

// X returns the x coordinate.
func (v Vec3) X() int { return v[0] }

// Y returns the y coordinate.
func (v Vec3) Y() int { return v[1] }

// Z returns the z coordinate.
func (v Vec3) Z() int { return v[2] }

// InLattice reports whether every coordinate is in {-1, 0, 1}.
func (v Vec3) InLattice() bool {
	for _, c := range v {
		if c < -1 || c > 1 {
			return false
		}
	}
	return true
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%+d,%+d,%+d)", v[0], v[1], v[2])
}

// unit returns the unit vector along axis a scaled by s.
func unit(a Axis, s int) Vec3 {
	var v Vec3
	v[a] = s
	return v
}
