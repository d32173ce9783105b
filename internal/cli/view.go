package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubesim"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("82")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

var stickerColors = map[cubesim.Color]lipgloss.Color{
	cubesim.White:  lipgloss.Color("255"),
	cubesim.Yellow: lipgloss.Color("226"),
	cubesim.Green:  lipgloss.Color("34"),
	cubesim.Blue:   lipgloss.Color("27"),
	cubesim.Red:    lipgloss.Color("160"),
	cubesim.Orange: lipgloss.Color("208"),
}

func sticker(c cubesim.Color) string {
	bg, ok := stickerColors[c]
	if !ok {
		return "??"
	}
	return lipgloss.NewStyle().Background(bg).Render("  ")
}

// faceRow renders one row of stickers with a one-cell gap.
func faceRow(f cubesim.Facelets, face cubesim.Face, row int) string {
	cells := make([]string, 3)
	for col := 0; col < 3; col++ {
		cells[col] = sticker(f[face][row*3+col])
	}
	return strings.Join(cells, " ")
}

// sideFace is the face the player looks at from each side.
var sideFace = [4]cubesim.Face{
	sideFront: cubesim.FaceF,
	sideRight: cubesim.FaceR,
	sideBack:  cubesim.FaceB,
	sideLeft:  cubesim.FaceL,
}

// renderNet draws the unfolded cube in the same layout as
// Facelets.String, labelling the face under view.
func renderNet(f cubesim.Facelets, side viewSide) string {
	order := []cubesim.Face{cubesim.FaceL, cubesim.FaceF, cubesim.FaceR, cubesim.FaceB}
	const faceWidth = 8 // three stickers, two gaps
	pad := strings.Repeat(" ", faceWidth+2)

	var b strings.Builder
	for row := 0; row < 3; row++ {
		b.WriteString(pad + faceRow(f, cubesim.FaceU, row) + "\n")
	}
	for row := 0; row < 3; row++ {
		parts := make([]string, len(order))
		for i, face := range order {
			parts[i] = faceRow(f, face, row)
		}
		b.WriteString(strings.Join(parts, "  ") + "\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString(pad + faceRow(f, cubesim.FaceD, row) + "\n")
	}

	labels := make([]string, len(order))
	for i, face := range order {
		label := fmt.Sprintf("%-*s", faceWidth, face.String())
		if face == sideFace[side] {
			labels[i] = activeStyle.Render(label)
		} else {
			labels[i] = statusStyle.Render(label)
		}
	}
	b.WriteString(strings.Join(labels, "  "))
	b.WriteString("\n")
	return b.String()
}

// progressBar renders fraction in [0, 1] as a bar of the given width.
func progressBar(fraction float64, width int) string {
	filled := int(math.Round(fraction * float64(width)))
	filled = max(0, min(width, filled))
	return barStyle.Render(strings.Repeat("█", filled)) + statusStyle.Render(strings.Repeat("░", width-filled))
}

// recentMoves formats the tail of history like the recorder did.
func recentMoves(history []cubesim.Move, limit int) string {
	if len(history) == 0 {
		return ""
	}
	prefix := ""
	if len(history) > limit {
		history = history[len(history)-limit:]
		prefix = "... "
	}
	return prefix + moveStyle.Render(cubesim.FormatMoves(history))
}
