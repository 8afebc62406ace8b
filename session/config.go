package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/brensch/gridsnake/rules"
)

// DefaultTickInterval matches the classic game's pace.
const DefaultTickInterval = 140 * time.Millisecond

var ErrInvalidConfig = errors.New("invalid session config")

type Config struct {
	Rows         int32
	Cols         int32
	TickInterval time.Duration
	// Seed fixes the food sequence of the first game; later games use
	// Seed+1, Seed+2, ... Zero picks a random seed per game.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		Rows:         rules.DefaultRows,
		Cols:         rules.DefaultCols,
		TickInterval: DefaultTickInterval,
	}
}

// Validate rejects boards that cannot hold the starting snake and
// non-positive tick intervals.
func (c Config) Validate() error {
	if c.Rows < 1 {
		return fmt.Errorf("%w: rows=%d must be positive", ErrInvalidConfig, c.Rows)
	}
	// The starting snake spans cols/2-1 .. cols/2+1.
	if c.Cols < rules.InitialLength {
		return fmt.Errorf("%w: cols=%d must be at least %d", ErrInvalidConfig, c.Cols, rules.InitialLength)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval %s must be positive", ErrInvalidConfig, c.TickInterval)
	}
	return nil
}
