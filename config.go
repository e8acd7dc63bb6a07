package mandel

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes one frame.
type Config struct {
	Width   int
	Height  int
	MaxIter int
	Region  Region

	// Workers > 1 splits the grid into bands of TileRows rows computed in parallel.
	Workers  int
	TileRows int

	// Logf receives scheduler progress. Nil keeps it quiet.
	Logf func(format string, args ...any)
}

// DefaultConfig returns the 80x40, 256 iteration frame over DefaultRegion.
func DefaultConfig() Config {
	return Config{
		Width:    80,
		Height:   40,
		MaxIter:  256,
		Region:   DefaultRegion,
		Workers:  1,
		TileRows: 8,
	}
}

func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	}
	if c.MaxIter < 0 {
		return fmt.Errorf("%w: max iterations must not be negative, got %d", ErrInvalidConfig, c.MaxIter)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.TileRows < 1 {
		return fmt.Errorf("%w: tile rows must be at least 1, got %d", ErrInvalidConfig, c.TileRows)
	}
	return c.Region.Validate()
}
