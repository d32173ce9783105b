package cubesim

import (
	"fmt"
	"strings"
)

// Move is a quarter turn of one layer.
type Move struct {
	Axis  Axis // Rotation axis
	Layer int  // Layer index on Axis: -1, 0 or 1
	Sign  Sign // Turn direction by the right-hand rule
}

// Valid reports whether the move names a real layer and direction.
func (m Move) Valid() bool {
	return m.Axis.Valid() && m.Layer >= -1 && m.Layer <= 1 && m.Sign.Valid()
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	inv := m
	inv.Sign = -m.Sign
	return inv
}

// layerName is the notation letter of one layer together with the sign of
// its clockwise turn.
type layerName struct {
	letter    byte
	clockwise Sign
}

// layerNames is indexed by [axis][layer+1].
var layerNames = [3][3]layerName{
	AxisX: {{'L', Positive}, {'M', Positive}, {'R', Negative}},
	AxisY: {{'D', Positive}, {'E', Positive}, {'U', Negative}},
	AxisZ: {{'B', Positive}, {'S', Negative}, {'F', Negative}},
}

// Notation returns the standard notation for the move.
// Examples: R, R', M, E', S
func (m Move) Notation() string {
	if !m.Valid() {
		return "?"
	}
	name := layerNames[m.Axis][m.Layer+1]
	if m.Sign == name.clockwise {
		return string(name.letter)
	}
	return string(name.letter) + "'"
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// GoString shows the raw triple, useful in test failures.
func (m Move) GoString() string {
	return fmt.Sprintf("Move{%v, %d, %v}", m.Axis, m.Layer, m.Sign)
}

// letterMove returns the clockwise move for a notation letter. Lower case
// letters name wide turns, which a single layer cannot express, so they are
// not accepted.
func letterMove(c byte) (Move, bool) {
	for axis, names := range layerNames {
		for i, name := range names {
			if name.letter == c {
				return Move{Axis: Axis(axis), Layer: i - 1, Sign: name.clockwise}, true
			}
		}
	}
	return Move{}, false
}

// ParseMove parses a single quarter turn such as R, R' or M.
// Half turns are rejected here; ParseMoves expands them.
func ParseMove(s string) (Move, error) {
	moves, err := parseToken(s)
	if err != nil {
		return Move{}, err
	}
	if len(moves) != 1 {
		return Move{}, fmt.Errorf("%w: %q is not a quarter turn", ErrInvalidNotation, s)
	}
	return moves[0], nil
}

// parseToken parses one notation token into its quarter turns.
func parseToken(s string) ([]Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return nil, ErrInvalidNotation
	}

	m, ok := letterMove(s[0])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	switch s[1:] {
	case "":
		return []Move{m}, nil
	case "'", "`":
		return []Move{m.Inverse()}, nil
	case "2", "2'", "2`":
		return []Move{m, m}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
}

// ParseMoves parses a space-separated sequence such as "R U R' U2".
// Half turns expand to two quarter turns. Invalid tokens are skipped;
// ErrInvalidNotation is returned only when a non-empty input yields no move.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		ms, err := parseToken(part)
		if err != nil {
			continue
		}
		moves = append(moves, ms...)
	}

	if len(parts) > 0 && len(moves) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	return moves, nil
}

// FormatMoves formats moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InvertMoves returns the sequence that undoes moves.
func InvertMoves(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}
