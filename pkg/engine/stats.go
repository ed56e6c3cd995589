package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// Stats accumulates per-phase wall-clock time across a run: kernel compute,
// host-unit transfers, host-side aggregation, initial memory population and
// the final level fetch. Reported once at the end of a run when timing is
// enabled.
type Stats struct {
	Rounds int

	Compute   time.Duration
	Comm      time.Duration
	Aggregate time.Duration
	Populate  time.Duration
	Fetch     time.Duration

	enabled bool
}

// phase starts timing one phase and returns the stop function. Each stop
// adds the elapsed time to the given counter, so interleaved phases of the
// same kind accumulate.
func (s *Stats) phase(d *time.Duration) func() {
	start := time.Now()
	return func() {
		*d += time.Since(start)
	}
}

func (s *Stats) report(log zerolog.Logger) {
	if !s.enabled {
		return
	}
	log.Info().
		Int("rounds", s.Rounds).
		Dur("compute", s.Compute).
		Dur("comm", s.Comm).
		Dur("aggregate", s.Aggregate).
		Dur("populate", s.Populate).
		Dur("fetch", s.Fetch).
		Msg("phase timing")
}
