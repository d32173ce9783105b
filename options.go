package cubesim

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

// Option configures Simulator behavior.
type Option func(*config)

type config struct {
	rate          float64
	seed          uint64
	rng           *rand.Rand
	shuffleLength int
	moveHistory   bool
	logger        zerolog.Logger
	commitHandler func(Move)
}

func defaultConfig() *config {
	return &config{
		rate:          DefaultRate,
		seed:          uint64(time.Now().UnixNano()),
		shuffleLength: DefaultShuffleLength,
		moveHistory:   true,
		logger:        zerolog.Nop(),
	}
}

// WithRate sets the angular speed of animated turns in rad/s.
// Non-positive values keep DefaultRate.
func WithRate(radPerSec float64) Option {
	return func(c *config) {
		if radPerSec > 0 {
			c.rate = radPerSec
		}
	}
}

// WithSeed seeds the shuffle random source so scrambles are reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.rng = nil
	}
}

// WithRand injects the shuffle random source directly.
// It takes precedence over WithSeed.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithShuffleLength sets the number of turns used by ShuffleDefault.
func WithShuffleLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.shuffleLength = n
		}
	}
}

// WithMoveHistory enables or disables move history tracking.
// When enabled (default), every applied move is kept and accessible via
// History(). Disable this for long sessions to reduce memory usage.
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}

// WithLogger sets the logger used for engine events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCommitHandler registers fn to run after each move commits, the same
// as calling OnMove once the simulator is built.
func WithCommitHandler(fn func(Move)) Option {
	return func(c *config) {
		c.commitHandler = fn
	}
}
