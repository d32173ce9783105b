package cubesim

import (
	"math"
	"time"
)

// QuarterAngle is the sweep of one quarter turn in radians.
const QuarterAngle = math.Pi / 2

// DefaultRate is the default angular speed of an animated turn in rad/s.
const DefaultRate = 5.0

// State is the animation controller state.
type State int

const (
	StateIdle State = iota
	StateEngaged
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEngaged:
		return "engaged"
	default:
		return "unknown"
	}
}

// Controller sequences animated turns so that at most one is in flight.
// It is driven by Tick, called once per rendered frame, and commits the
// logical move to the engine when the sweep completes.
type Controller struct {
	engine *Engine
	rate   float64

	state    State
	move     Move
	progress float64

	onCommit func(Move)
}

// NewController creates an idle controller. A non-positive rate selects
// DefaultRate.
func NewController(engine *Engine, rate float64) *Controller {
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Controller{engine: engine, rate: rate}
}

// SetCommitCallback sets a callback that fires after each committed move.
func (c *Controller) SetCommitCallback(cb func(Move)) {
	c.onCommit = cb
}

// Rate returns the angular speed in rad/s.
func (c *Controller) Rate() float64 {
	return c.rate
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Idle reports whether no move is in flight.
func (c *Controller) Idle() bool {
	return c.state == StateIdle
}

// StartMove engages m with zero progress. It returns false and changes
// nothing if another move is in flight; the request is not queued.
func (c *Controller) StartMove(m Move) bool {
	if c.state != StateIdle {
		return false
	}
	c.state = StateEngaged
	c.move = m
	c.progress = 0
	return true
}

// Tick advances the in-flight move by dt. Once progress has reached
// QuarterAngle, the next tick commits the move to the engine exactly once
// and returns the controller to idle. Ticks while idle do nothing.
func (c *Controller) Tick(dt time.Duration) error {
	if c.state != StateEngaged {
		return nil
	}

	if c.progress >= QuarterAngle {
		m := c.move
		c.state = StateIdle
		c.move = Move{}
		c.progress = 0
		if err := c.engine.Apply(m); err != nil {
			return err
		}
		if c.onCommit != nil {
			c.onCommit(m)
		}
		return nil
	}

	if dt < 0 {
		dt = 0
	}
	c.progress = math.Min(c.progress+c.rate*dt.Seconds(), QuarterAngle)
	return nil
}

// Active returns the in-flight move and its progress in radians.
// ok is false when idle.
func (c *Controller) Active() (m Move, progress float64, ok bool) {
	if c.state != StateEngaged {
		return Move{}, 0, false
	}
	return c.move, c.progress, true
}

// Angle returns the signed rotation a renderer should apply to the active
// layer, in radians about the move axis.
func (c *Controller) Angle() float64 {
	if c.state != StateEngaged {
		return 0
	}
	return float64(c.move.Sign) * c.progress
}

// Fraction returns progress as a fraction of a quarter turn.
func (c *Controller) Fraction() float64 {
	if c.state != StateEngaged {
		return 0
	}
	return c.progress / QuarterAngle
}
