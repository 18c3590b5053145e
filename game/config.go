package game

import "github.com/pthm-cable/antfarm/telemetry"

// Options holds configuration for game initialization that is not part of
// the simulation config file.
type Options struct {
	Seed          int64  // RNG seed; 0 picks one from the clock
	OutputDir     string // CSV output directory; empty disables output
	LogStats      bool   // log each telemetry window via slog
	StatsCallback func(telemetry.WindowStats)
}

// DefaultOptions returns the default game options.
func DefaultOptions() Options {
	return Options{}
}
