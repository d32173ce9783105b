package cubesim

import "strings"

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved

	// NoColor marks a facelet no sticker projected onto.
	NoColor Color = 0xFF
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Face represents one of the six outer faces of the lattice.
type Face int

const (
	FaceU Face = 0 // Up (+y)
	FaceD Face = 1 // Down (-y)
	FaceF Face = 2 // Front (+z)
	FaceB Face = 3 // Back (-z)
	FaceR Face = 4 // Right (+x)
	FaceL Face = 5 // Left (-x)
)

func (f Face) String() string {
	switch f {
	case FaceU:
		return "U"
	case FaceD:
		return "D"
	case FaceF:
		return "F"
	case FaceB:
		return "B"
	case FaceR:
		return "R"
	case FaceL:
		return "L"
	default:
		return "?"
	}
}

// Facelets holds the 54 visible stickers. Each face has 9 facelets indexed
// as seen from outside the cube:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// U is seen with F at the bottom, D with F at the top and the side faces
// upright.
type Facelets [6][9]Color

// ProjectFacelets derives the sticker colors from cubie state. A cubie
// carries a sticker for every home coordinate that is ±1; the sticker's
// current normal is that home direction rotated by the cubie orientation.
func ProjectFacelets(cubies []Cubie) Facelets {
	var f Facelets
	for face := range f {
		for i := range f[face] {
			f[face][i] = NoColor
		}
	}

	for _, c := range cubies {
		for axis := AxisX; axis <= AxisZ; axis++ {
			s := c.Home[axis]
			if s == 0 {
				continue
			}
			home := unit(axis, s)
			normal := c.Orientation.Apply(home)
			face, ok := faceOf(normal)
			if !ok {
				continue
			}
			f[face][faceletIndex(face, c.Position)] = homeColor(home)
		}
	}
	return f
}

// faceOf maps an outward unit normal to its face.
func faceOf(n Vec3) (Face, bool) {
	switch n {
	case Vec3{0, 1, 0}:
		return FaceU, true
	case Vec3{0, -1, 0}:
		return FaceD, true
	case Vec3{0, 0, 1}:
		return FaceF, true
	case Vec3{0, 0, -1}:
		return FaceB, true
	case Vec3{1, 0, 0}:
		return FaceR, true
	case Vec3{-1, 0, 0}:
		return FaceL, true
	default:
		return 0, false
	}
}

// homeColor returns the solved color of a home direction.
func homeColor(d Vec3) Color {
	face, _ := faceOf(d)
	return faceToSolvedColor(face)
}

// faceToSolvedColor returns the color of a face when solved.
func faceToSolvedColor(f Face) Color {
	switch f {
	case FaceU:
		return White
	case FaceD:
		return Yellow
	case FaceF:
		return Green
	case FaceB:
		return Blue
	case FaceR:
		return Red
	case FaceL:
		return Orange
	default:
		return NoColor
	}
}

// faceletIndex returns the row-major index of position p on face.
func faceletIndex(face Face, p Vec3) int {
	x, y, z := p[0], p[1], p[2]
	switch face {
	case FaceU:
		return (z+1)*3 + (x + 1)
	case FaceD:
		return (1-z)*3 + (x + 1)
	case FaceF:
		return (1-y)*3 + (x + 1)
	case FaceB:
		return (1-y)*3 + (1 - x)
	case FaceR:
		return (1-y)*3 + (1 - z)
	default: // FaceL
		return (1-y)*3 + (z + 1)
	}
}

// IsSolved returns true if every face shows a single color.
func (f Facelets) IsSolved() bool {
	for face := range f {
		want := f[face][4]
		if want == NoColor {
			return false
		}
		for _, c := range f[face] {
			if c != want {
				return false
			}
		}
	}
	return true
}

// String returns the unfolded net:
//
//	      U
//	L F R B
//	      D
func (f Facelets) String() string {
	var b strings.Builder

	// U face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(f[FaceU][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []Face{FaceL, FaceF, FaceR, FaceB} {
			for col := 0; col < 3; col++ {
				b.WriteString(f[face][row*3+col].String() + " ")
			}
		}
		b.WriteString("\n")
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(f[FaceD][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	return b.String()
}
