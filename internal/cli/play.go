package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/bridge"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var playSeed uint64

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Turn an animated cube from the keyboard",
	Long: `Start an interactive TUI showing the cube as an unfolded net.

Keyboard shortcuts:
  q/w/e   - Turn the left, middle or right column up
  a/s/d   - Turn the top, middle or bottom row to the right
  Q/W/E/A/S/D - Same turns in the other direction
  ←/→     - Walk around the cube to another side
  :       - Type a move in notation (R, U', M ...), Enter to turn
  r       - Shuffle
  x       - Reset to solved
  Esc     - Quit

Only one turn animates at a time; keys pressed while a layer is turning
are ignored.`,
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runPlay,
}

func init() {
	playCmd.Flags().Uint64Var(&playSeed, "seed", 0, "Shuffle seed (default: from config or random)")
	rootCmd.AddCommand(playCmd)
}

// Messages
type frameMsg time.Time

// frame schedules the next animation tick.
func frame(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Model
type playModel struct {
	sim      *cubesim.Simulator
	interval time.Duration
	last     time.Time

	keys keyMap
	help help.Model
	side viewSide

	// Notation prompt
	input     textinput.Model
	prompting bool

	// Mirror mode
	device     *bridge.Bridge
	deviceName string

	title    string
	status   string
	err      error
	quitting bool
}

func newPlayModel(sim *cubesim.Simulator, interval time.Duration) *playModel {
	input := textinput.New()
	input.Prompt = ": "
	input.Placeholder = "R, U', M ..."
	input.CharLimit = 8

	return &playModel{
		sim:      sim,
		interval: interval,
		keys:     newKeyMap(),
		help:     help.New(),
		input:    input,
		title:    "cubesim",
	}
}

// newMirrorModel builds a model whose moves come from a physical cube.
func newMirrorModel(sim *cubesim.Simulator, interval time.Duration, device *bridge.Bridge, deviceName string) *playModel {
	m := newPlayModel(sim, interval)
	m.keys = mirrorKeyMap()
	m.device = device
	m.deviceName = deviceName
	m.title = "cubesim mirror"
	return m
}

func (m *playModel) Init() tea.Cmd {
	m.last = time.Now()
	return frame(m.interval)
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		dt := now.Sub(m.last)
		m.last = now

		m.followFace()
		if err := m.sim.Tick(dt); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.startDeviceMove()
		return m, frame(m.interval)
	}

	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m.handlePrompt(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Column), key.Matches(msg, m.keys.Row):
		if mv, ok := keyMove(m.side, msg.String()); ok {
			// Dropped while a layer is turning.
			m.sim.StartMove(mv)
		}

	case key.Matches(msg, m.keys.ViewLeft):
		m.side = m.side.next(-1)

	case key.Matches(msg, m.keys.ViewRight):
		m.side = m.side.next(1)

	case key.Matches(msg, m.keys.Notation):
		m.prompting = true
		m.status = ""
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Shuffle):
		moves, err := m.sim.ShuffleDefault()
		m.report(err)
		if err == nil {
			m.status = fmt.Sprintf("Shuffled: %s", cubesim.FormatMoves(moves))
		}

	case key.Matches(msg, m.keys.Reset):
		err := m.sim.Reset()
		m.report(err)
		if err == nil {
			m.status = "Reset"
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handlePrompt edits the notation prompt. Enter starts the typed move,
// which is dropped like any other key while a layer is turning.
func (m *playModel) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		m.closePrompt()
		return m, nil

	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		m.closePrompt()
		if text == "" {
			return m, nil
		}
		mv, err := cubesim.ParseMove(text)
		if err != nil {
			m.status = fmt.Sprintf("Not a quarter turn: %s", text)
			return m, nil
		}
		if !m.sim.StartMove(mv) {
			m.status = "Wait for the turn to finish"
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *playModel) closePrompt() {
	m.prompting = false
	m.input.Blur()
	m.input.Reset()
}

// report shows err unless it is a rejection, which only means a turn is
// still animating.
func (m *playModel) report(err error) {
	switch {
	case err == nil:
		m.err = nil
	case errors.Is(err, cubesim.ErrRejectedMove):
		m.status = "Wait for the turn to finish"
	default:
		m.err = err
	}
}

// followFace turns the view to the cube's reported front face.
func (m *playModel) followFace() {
	if m.device == nil {
		return
	}
	select {
	case face := <-m.device.FrontFaces():
		if side, ok := sideForFace(face); ok {
			m.side = side
		}
	default:
	}
}

// startDeviceMove takes the oldest device move off the bridge once the
// controller is idle. Moves wait in the bridge's bounded buffer, so a burst
// longer than the buffer is dropped there and counted.
func (m *playModel) startDeviceMove() {
	if m.device == nil || !m.sim.Idle() {
		return
	}
	select {
	case mv := <-m.device.Moves():
		m.sim.StartMove(mv)
	default:
	}
}

func (m *playModel) View() string {
	if m.quitting {
		if m.err != nil {
			return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
		}
		return "Goodbye!\n"
	}

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	// Connection status
	if m.device != nil {
		status := fmt.Sprintf("Connected: %s", m.deviceName)
		if battery := m.device.Battery(); battery >= 0 {
			status += fmt.Sprintf(" (Battery: %d%%)", battery)
		}
		if dropped := m.device.Dropped(); dropped > 0 {
			status += fmt.Sprintf(" | dropped %d", dropped)
		}
		b.WriteString(statusStyle.Render(status))
		b.WriteString("\n\n")
	}

	b.WriteString(renderNet(m.sim.Facelets(), m.side))
	b.WriteString("\n")

	// Active turn
	if mv, _, ok := m.sim.Active(); ok {
		b.WriteString(fmt.Sprintf("Turning %s ", activeStyle.Render(fmt.Sprintf("%-3s", mv.Notation()))))
		b.WriteString(progressBar(m.sim.Fraction(), 20))
	} else {
		b.WriteString(fmt.Sprintf("Viewing %s", activeStyle.Render(m.side.String())))
	}
	b.WriteString("\n")

	history := m.sim.History()
	b.WriteString(fmt.Sprintf("Moves: %d", len(history)))
	if m.device != nil {
		if queued := len(m.device.Moves()); queued > 0 {
			b.WriteString(fmt.Sprintf(" (+%d queued)", queued))
		}
	}
	b.WriteString("\n")
	if recent := recentMoves(history, 20); recent != "" {
		b.WriteString(recent)
		b.WriteString("\n")
	}

	if m.sim.Idle() && m.sim.IsSolved() && len(history) > 0 {
		b.WriteString("\n")
		b.WriteString(solvedStyle.Render("SOLVED"))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	// Error
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	if m.prompting {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// runModel runs the TUI and returns the fatal error it stopped on, if any.
func runModel(m *playModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return m.err
}

// endSession closes session with the final cube state.
func endSession(session *recorder.Session, sim *cubesim.Simulator) {
	if session == nil {
		return
	}
	if err := session.End(sim.IsSolved()); err != nil {
		log.Warn().Err(err).Msg("failed to end session")
		return
	}
	fmt.Printf("Session %s: %d moves\n", session.SessionID(), session.MoveCount())
}

func runPlay(cmd *cobra.Command, args []string) error {
	db, session, err := openSession()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	sim := newSimulator(playSeed)
	if session != nil {
		if _, err := session.Start(storage.SourcePlay, sim.Seed()); err != nil {
			return err
		}
		session.Attach(sim)
		defer endSession(session, sim)
	}

	return runModel(newPlayModel(sim, cfg.FrameInterval()))
}
