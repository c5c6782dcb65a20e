package console

import (
	"time"

	"codeberg.org/mutker/ipmictl/internal/journal"
	"codeberg.org/mutker/ipmictl/internal/logger"
)

const (
	DefaultRefresh = time.Second
	ruleWidth      = 60
	clearScreen    = "\033[H\033[2J"
)

type Option func(*Console)

// WithRefresh sets the pause after a control command before the dashboard
// is redrawn. Zero disables the pause.
func WithRefresh(d time.Duration) Option {
	return func(c *Console) {
		if d >= 0 {
			c.refresh = d
		}
	}
}

// WithClear makes the console clear the terminal before each redraw.
func WithClear(enabled bool) Option {
	return func(c *Console) {
		c.clear = enabled
	}
}

func WithJournal(rec journal.Recorder) Option {
	return func(c *Console) {
		if rec != nil {
			c.journal = rec
		}
	}
}

func WithLogger(log logger.Logger) Option {
	return func(c *Console) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithClock replaces the clock used for the "last update" line.
func WithClock(now func() time.Time) Option {
	return func(c *Console) {
		if now != nil {
			c.now = now
		}
	}
}
