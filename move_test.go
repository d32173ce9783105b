package cubesim

import (
	"errors"
	"slices"
	"testing"
)

func TestNotationRoundTrip(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range AllMoves {
		n := m.Notation()
		if seen[n] {
			t.Errorf("notation %q used twice", n)
		}
		seen[n] = true

		got, err := ParseMove(n)
		if err != nil {
			t.Errorf("ParseMove(%q) error: %v", n, err)
			continue
		}
		if got != m {
			t.Errorf("ParseMove(%q) = %#v, want %#v", n, got, m)
		}
	}
}

func TestNotationLetters(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{Move{AxisX, 1, Negative}, "R"},
		{Move{AxisX, 1, Positive}, "R'"},
		{Move{AxisX, -1, Positive}, "L"},
		{Move{AxisX, 0, Positive}, "M"},
		{Move{AxisY, 1, Negative}, "U"},
		{Move{AxisY, 0, Negative}, "E'"},
		{Move{AxisZ, 1, Negative}, "F"},
		{Move{AxisZ, -1, Negative}, "B'"},
		{Move{AxisZ, 0, Negative}, "S"},
		{Move{AxisX, 3, Negative}, "?"},
	}
	for _, tc := range tests {
		if got := tc.m.Notation(); got != tc.want {
			t.Errorf("%#v.Notation() = %q, want %q", tc.m, got, tc.want)
		}
	}
}

func TestParseMoves(t *testing.T) {
	tests := []struct {
		input string
		want  []Move
	}{
		{"R U R' U'", []Move{R, U, RPrime, UPrime}},
		{"R U2 R'", []Move{R, U, U, RPrime}},
		{"R r u' M", []Move{R, M}},
		{"  F   B`  ", []Move{F, BPrime}},
		{"R Q U", []Move{R, U}},
		{"", []Move{}},
	}
	for _, tc := range tests {
		got, err := ParseMoves(tc.input)
		if err != nil {
			t.Errorf("ParseMoves(%q) error: %v", tc.input, err)
			continue
		}
		if !slices.Equal(got, tc.want) {
			t.Errorf("ParseMoves(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseMovesAllInvalid(t *testing.T) {
	_, err := ParseMoves("X Y Z3")
	if !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("ParseMoves error = %v, want ErrInvalidNotation", err)
	}
}

func TestParseMoveRejects(t *testing.T) {
	for _, s := range []string{"", "R2", "Q", "R3", "RR", "x", "r", "u'", "m2"} {
		if _, err := ParseMove(s); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidNotation", s, err)
		}
	}
}

func TestFormatMoves(t *testing.T) {
	if got := FormatMoves(TPerm); got != "R U R' U' R' F R R U' R' U' R U R' F'" {
		t.Errorf("FormatMoves(TPerm) = %q", got)
	}
	if got := FormatMoves(nil); got != "" {
		t.Errorf("FormatMoves(nil) = %q, want empty", got)
	}
}

func TestInvertMoves(t *testing.T) {
	got := InvertMoves(SexyMove)
	want := []Move{U, R, UPrime, RPrime}
	if !slices.Equal(got, want) {
		t.Errorf("InvertMoves(SexyMove) = %v, want %v", got, want)
	}

	l := NewLattice()
	applyAll(t, l, TPerm...)
	applyAll(t, l, InvertMoves(TPerm)...)
	if !l.Equal(NewLattice()) {
		t.Error("a sequence followed by its inverse should return to solved")
	}
}
