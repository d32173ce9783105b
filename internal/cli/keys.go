package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/SeamusWaldron/cubesim"
)

// viewSide is the vertical face the player is looking at.
type viewSide int

const (
	sideFront viewSide = iota
	sideRight
	sideBack
	sideLeft
)

func (s viewSide) String() string {
	switch s {
	case sideFront:
		return "Front"
	case sideRight:
		return "Right"
	case sideBack:
		return "Back"
	case sideLeft:
		return "Left"
	default:
		return "?"
	}
}

// next returns the side reached by walking around the cube; dir is +1 to
// the right and -1 to the left.
func (s viewSide) next(dir int) viewSide {
	return viewSide(((int(s)+dir)%4 + 4) % 4)
}

// sideForFace maps a face letter reported by the cube's orientation sensor.
func sideForFace(face string) (viewSide, bool) {
	switch face {
	case "F":
		return sideFront, true
	case "R":
		return sideRight, true
	case "B":
		return sideBack, true
	case "L":
		return sideLeft, true
	default:
		return 0, false
	}
}

// columnTurns lists, per side, the left, middle and right column as seen
// by the player together with the sign that lifts the facing stickers.
var columnTurns = [4]struct {
	axis   cubesim.Axis
	layers [3]int
	sign   cubesim.Sign
}{
	sideFront: {cubesim.AxisX, [3]int{-1, 0, 1}, cubesim.Negative},
	sideRight: {cubesim.AxisZ, [3]int{1, 0, -1}, cubesim.Positive},
	sideBack:  {cubesim.AxisX, [3]int{1, 0, -1}, cubesim.Positive},
	sideLeft:  {cubesim.AxisZ, [3]int{-1, 0, 1}, cubesim.Negative},
}

// keyMove translates a turn key into a move for the given side.
// q, w and e lift the left, middle and right column; a, s and d push the
// top, middle and bottom row to the right. Upper case turns the other way.
func keyMove(side viewSide, k string) (cubesim.Move, bool) {
	if len(k) != 1 || side < sideFront || side > sideLeft {
		return cubesim.Move{}, false
	}
	lower := strings.ToLower(k)
	inverse := lower != k

	var m cubesim.Move
	switch lower {
	case "q", "w", "e":
		col := columnTurns[side]
		m = cubesim.Move{Axis: col.axis, Layer: col.layers[strings.Index("qwe", lower)], Sign: col.sign}
	case "a", "s", "d":
		m = cubesim.Move{Axis: cubesim.AxisY, Layer: 1 - strings.Index("asd", lower), Sign: cubesim.Positive}
	default:
		return cubesim.Move{}, false
	}

	if inverse {
		m = m.Inverse()
	}
	return m, true
}

type keyMap struct {
	Column    key.Binding
	Row       key.Binding
	ViewLeft  key.Binding
	ViewRight key.Binding
	Notation  key.Binding
	Shuffle   key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Column:    key.NewBinding(key.WithKeys("q", "w", "e", "Q", "W", "E"), key.WithHelp("q/w/e", "column up (shift: down)")),
		Row:       key.NewBinding(key.WithKeys("a", "s", "d", "A", "S", "D"), key.WithHelp("a/s/d", "row right (shift: left)")),
		ViewLeft:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "walk left")),
		ViewRight: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "walk right")),
		Notation:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "type a move")),
		Shuffle:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "shuffle")),
		Reset:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// mirrorKeyMap disables everything that would turn the simulator away
// from the physical cube.
func mirrorKeyMap() keyMap {
	k := newKeyMap()
	k.Column.SetEnabled(false)
	k.Row.SetEnabled(false)
	k.Notation.SetEnabled(false)
	k.Shuffle.SetEnabled(false)
	k.Reset.SetEnabled(false)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Column, k.Row, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Column, k.Row},
		{k.ViewLeft, k.ViewRight, k.Notation},
		{k.Shuffle, k.Reset},
		{k.Help, k.Quit},
	}
}
