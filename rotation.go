package cubesim

import "math"

// Orientation is a rotation of the cube symmetry group stored as an exact
// 3x3 integer matrix. Column j is the image of basis vector j.
type Orientation [3][3]int

// Identity returns the solved-state orientation.
func Identity() Orientation {
	return Orientation{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// QuarterTurn returns the rotation of sign·90° about axis.
// Invalid arguments yield the identity.
func QuarterTurn(axis Axis, sign Sign) Orientation {
	if !axis.Valid() || !sign.Valid() {
		return Identity()
	}
	q := quarterTurnMatrix(axis, sign)
	var o Orientation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o[i][j] = snap(q[i][j])
		}
	}
	return o
}

// Rotate applies the quarter turn (axis, sign) to a cubie's position and
// orientation. The rotated position is snapped to the integer lattice and
// the orientation is composed in the world frame as Q·o.
func Rotate(axis Axis, sign Sign, pos Vec3, o Orientation) (Vec3, Orientation) {
	if !axis.Valid() || !sign.Valid() {
		return pos, o
	}
	q := quarterTurnMatrix(axis, sign)

	var newPos Vec3
	for i := 0; i < 3; i++ {
		var sum float64
		for j := 0; j < 3; j++ {
			sum += q[i][j] * float64(pos[j])
		}
		newPos[i] = snap(sum)
	}

	var newO Orientation
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			var sum float64
			for j := 0; j < 3; j++ {
				sum += q[i][j] * float64(o[j][k])
			}
			newO[i][k] = snap(sum)
		}
	}
	return newPos, newO
}

// quarterTurnMatrix builds the right-hand rotation matrix for sign·π/2
// about axis. Entries carry the usual floating point residue of cos(π/2).
func quarterTurnMatrix(axis Axis, sign Sign) [3][3]float64 {
	theta := float64(sign) * math.Pi / 2
	c, s := math.Cos(theta), math.Sin(theta)
	switch axis {
	case AxisX:
		return [3][3]float64{
			{1, 0, 0},
			{0, c, -s},
			{0, s, c},
		}
	case AxisY:
		return [3][3]float64{
			{c, 0, s},
			{0, 1, 0},
			{-s, 0, c},
		}
	default:
		return [3][3]float64{
			{c, -s, 0},
			{s, c, 0},
			{0, 0, 1},
		}
	}
}

// snap rounds to the nearest integer, cancelling trig drift.
func snap(f float64) int {
	return int(math.Round(f))
}

// Mul returns the composition o·b (b applied first).
func (o Orientation) Mul(b Orientation) Orientation {
	var r Orientation
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			for j := 0; j < 3; j++ {
				r[i][k] += o[i][j] * b[j][k]
			}
		}
	}
	return r
}

// Inverse returns the inverse rotation (the transpose).
func (o Orientation) Inverse() Orientation {
	var r Orientation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = o[j][i]
		}
	}
	return r
}

// Apply rotates v by o.
func (o Orientation) Apply(v Vec3) Vec3 {
	var r Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i] += o[i][j] * v[j]
		}
	}
	return r
}

// IsIdentity reports whether o is the identity rotation.
func (o Orientation) IsIdentity() bool {
	return o == Identity()
}

// IsCubeSymmetry reports whether o is one of the 24 rotations of the cube:
// every column is an axis-aligned unit vector and det(o) = +1.
func (o Orientation) IsCubeSymmetry() bool {
	for j := 0; j < 3; j++ {
		nonZero := 0
		for i := 0; i < 3; i++ {
			switch o[i][j] {
			case 0:
			case 1, -1:
				nonZero++
			default:
				return false
			}
		}
		if nonZero != 1 {
			return false
		}
	}
	return o.det() == 1
}

func (o Orientation) det() int {
	return o[0][0]*(o[1][1]*o[2][2]-o[1][2]*o[2][1]) -
		o[0][1]*(o[1][0]*o[2][2]-o[1][2]*o[2][0]) +
		o[0][2]*(o[1][0]*o[2][1]-o[1][1]*o[2][0])
}

// Quaternion converts o to a unit quaternion (w, x, y, z) with w >= 0,
// for renderers that compose rotations as quaternions.
func (o Orientation) Quaternion() (w, x, y, z float64) {
	m := [3][3]float64{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = float64(o[i][j])
		}
	}

	tr := m[0][0] + m[1][1] + m[2][2]
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		w = s / 4
		x = (m[2][1] - m[1][2]) / s
		y = (m[0][2] - m[2][0]) / s
		z = (m[1][0] - m[0][1]) / s
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		w = (m[2][1] - m[1][2]) / s
		x = s / 4
		y = (m[0][1] + m[1][0]) / s
		z = (m[0][2] + m[2][0]) / s
	case m[1][1] > m[2][2]:
		s := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		w = (m[0][2] - m[2][0]) / s
		x = (m[0][1] + m[1][0]) / s
		y = s / 4
		z = (m[1][2] + m[2][1]) / s
	default:
		s := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
		w = (m[1][0] - m[0][1]) / s
		x = (m[0][2] + m[2][0]) / s
		y = (m[1][2] + m[2][1]) / s
		z = s / 4
	}

	// q and -q are the same rotation
	if w < 0 {
		w, x, y, z = -w, -x, -y, -z
	}
	return w, x, y, z
}
