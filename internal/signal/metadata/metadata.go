package metadata

import (
	"time"

	"github.com/farcloser/mimesis/internal/signal/shared"
	"github.com/farcloser/mimesis/internal/types"
)

/*
Metadata Signal Interpretation

The signal rates how strongly file metadata resembles freshly generated
output. It is a recency-and-plausibility policy, not forensics: newly
written files in generator-favored formats and size bands score higher.

## Age buckets (recency bias, non-increasing in age)

| Age        | Bonus |
|------------|-------|
| < 1 hour   | +25   |
| < 24 hours | +18   |
| < 1 week   | +10   |
| < 1 month  | +4    |
| older      | -8    |

## Size bands

| Kind  | Band           | Bonus | Notes                          |
|-------|----------------|-------|--------------------------------|
| image | <= 500 KB      | +15   | small-file bonus               |
| image | 500 KB - 2 MB  | +20   | generator sweet spot           |
| image | 2 - 5 MB       | +8    |                                |
| image | > 8 MB         | -10   | camera-grade sizes             |
| video | <= 10 MB       | +12   | short clip, typical gen length |
| video | 10 - 100 MB    | +5    |                                |
| video | > 500 MB       | -15   | feature-length, human-favored  |

A missing timestamp is treated as "now" (safe fallback, never an error).
*/

const baseScore = 12.0

// Score rates the descriptor's metadata. The clock is injected so age
// buckets are testable.
func Score(desc types.FileDescriptor, now time.Time) float64 {
	score := baseScore

	score += recencyBonus(desc.LastModified, now)
	score += sizeBonus(types.KindOf(desc.MIMEType), desc.SizeBytes)
	score += mimeBonus(desc.MIMEType)

	return shared.Clamp(score)
}

func recencyBonus(modified, now time.Time) float64 {
	if modified.IsZero() {
		modified = now
	}

	age := now.Sub(modified)

	switch {
	case age < time.Hour:
		return 25
	case age < 24*time.Hour:
		return 18
	case age < 7*24*time.Hour:
		return 10
	case age < 30*24*time.Hour:
		return 4
	}

	return -8
}

func sizeBonus(kind types.MediaKind, size int64) float64 {
	switch kind {
	case types.KindImage:
		switch {
		case size <= 500*shared.KB:
			return 15
		case size <= 2*shared.MB:
			return 20
		case size <= 5*shared.MB:
			return 8
		case size <= 8*shared.MB:
			return 0
		}

		return -10
	case types.KindVideo:
		switch {
		case size <= 10*shared.MB:
			return 12
		case size <= 100*shared.MB:
			return 5
		case size <= 500*shared.MB:
			return 0
		}

		return -15
	case types.KindUnknown:
	}

	return 0
}

// mimeBonus favors the container formats generators emit by default.
func mimeBonus(mimeType string) float64 {
	switch mimeType {
	case "image/png":
		return 8
	case "image/webp":
		return 10
	case "image/jpeg":
		return -4
	case "video/mp4":
		return 6
	case "video/quicktime":
		return -6
	}

	return 0
}
