package content

import (
	"github.com/farcloser/mimesis/internal/rand"
	"github.com/farcloser/mimesis/internal/signal/shared"
	"github.com/farcloser/mimesis/internal/types"
)

/*
Content Signal Interpretation

Simulated content analysis. No pixels or frames are decoded: the
media-kind branch combines size buckets with gated draws from the
injected random source, each draw standing in for one forensic check.

| Kind  | Draw | Threshold | Bonus | Stands in for          |
|-------|------|-----------|-------|------------------------|
| image | 1    | 0.40      | +12   | aspect-ratio analysis  |
| image | 2    | 0.35      | +10   | color-palette analysis |
| image | 3    | 0.30      | +14   | texture smoothness     |
| video | 1    | 0.40      | +10   | frame-rate cadence     |
| video | 2    | 0.35      | +12   | motion complexity      |
| video | 3    | 0.25      | +8    | audio-track presence   |

Draws happen in table order and always consume exactly three values, so
a deterministic source reproduces the same score.

This signal is the only one dominated by randomness in production. The
scorer's contract is a rule-based simulation, not media forensics.
*/

const baseScore = 28.0

// Score rates the simulated content sub-analysis for the descriptor's
// media kind, consuming exactly three draws from src.
func Score(desc types.FileDescriptor, src rand.Source) float64 {
	score := baseScore

	switch types.KindOf(desc.MIMEType) {
	case types.KindImage:
		score += imageAnalysis(desc.SizeBytes, src)
	case types.KindVideo:
		score += videoAnalysis(desc.SizeBytes, src)
	case types.KindUnknown:
	}

	return shared.Clamp(score)
}

func imageAnalysis(size int64, src rand.Source) float64 {
	var bonus float64

	switch {
	case size >= 200*shared.KB && size <= 2560*shared.KB:
		bonus += 10 // generator output band
	case size > 8*shared.MB:
		bonus -= 12
	}

	if src.Float64() < 0.40 {
		bonus += 12 // square-ish aspect ratio, typical generator default
	}

	if src.Float64() < 0.35 {
		bonus += 10 // constrained color palette
	}

	if src.Float64() < 0.30 {
		bonus += 14 // over-smooth texture
	}

	return bonus
}

func videoAnalysis(size int64, src rand.Source) float64 {
	var bonus float64

	switch {
	case size > 0 && size <= 50*shared.MB:
		bonus += 10 // short clip, typical generation length
	case size > 500*shared.MB:
		bonus -= 20
	}

	if src.Float64() < 0.40 {
		bonus += 10 // rigid frame pacing
	}

	if src.Float64() < 0.35 {
		bonus += 12 // low motion complexity
	}

	if src.Float64() < 0.25 {
		bonus += 8 // missing audio track
	}

	return bonus
}
