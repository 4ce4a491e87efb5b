package temporal

import (
	"time"

	"github.com/farcloser/mimesis/internal/rand"
	"github.com/farcloser/mimesis/internal/signal/shared"
	"github.com/farcloser/mimesis/internal/types"
)

// Creation-context heuristics. Late-night and weekend timestamps lean
// toward hobbyist generation sessions; business hours lean toward
// professional capture workflows. One gated draw stands in for batch
// creation detection.

const (
	baseScore      = 20.0
	batchThreshold = 0.30
)

// Score rates the creation context of the descriptor, consuming exactly
// one draw from src.
func Score(desc types.FileDescriptor, now time.Time, src rand.Source) float64 {
	score := baseScore

	ts := desc.LastModified
	if ts.IsZero() {
		ts = now
	}

	hour := ts.Hour()

	switch {
	case hour < 6:
		score += 15
	case hour >= 9 && hour < 18:
		score -= 8
	}

	switch ts.Weekday() {
	case time.Saturday, time.Sunday:
		score += 10
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday:
	}

	if src.Float64() < batchThreshold {
		score += 12 // part of a batch creation burst
	}

	return shared.Clamp(score)
}
