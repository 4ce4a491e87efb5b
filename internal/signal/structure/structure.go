package structure

import (
	"path/filepath"
	"strings"

	"github.com/farcloser/mimesis/internal/signal/shared"
	"github.com/farcloser/mimesis/internal/types"
)

/*
Structure Signal Interpretation

Rates how the declared container format and the size-to-format ratio
align with generator defaults.

## Format defaults

| Format | Adjustment | Rationale                                 |
|--------|------------|-------------------------------------------|
| png    | +12        | default export of most image generators   |
| webp   | +18        | near-exclusive to web/AI pipelines        |
| jpeg   | -5         | camera default; +10 extra when unusually  |
|        |            | small for a JPEG (< 150 KB)               |
| mp4    | +10        | default export of video generators        |
| webm   | +12        |                                           |
| mov    | -8         | camera/phone capture container            |
| avi    | -10        | legacy capture container                  |

PNG bonuses are further modulated by size: generators rarely emit PNGs
above a few megabytes, cameras never emit small ones.
*/

const baseScore = 22.0

// Score rates the declared container structure of the descriptor.
func Score(desc types.FileDescriptor) float64 {
	score := baseScore

	kind := types.KindOf(desc.MIMEType)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(desc.Name), "."))

	switch kind {
	case types.KindImage:
		score += imageFormatBonus(desc, ext)
	case types.KindVideo:
		score += videoFormatBonus(ext)
	case types.KindUnknown:
	}

	score += efficiencyAdjustment(kind, desc.SizeBytes)

	return shared.Clamp(score)
}

func imageFormatBonus(desc types.FileDescriptor, ext string) float64 {
	switch {
	case ext == "png" || desc.MIMEType == "image/png":
		bonus := 12.0

		switch {
		case desc.SizeBytes < shared.MB:
			bonus += 8
		case desc.SizeBytes < 3*shared.MB:
			bonus += 4
		}

		return bonus
	case ext == "webp" || desc.MIMEType == "image/webp":
		return 18
	case ext == "jpg" || ext == "jpeg" || desc.MIMEType == "image/jpeg":
		bonus := -5.0
		if desc.SizeBytes > 0 && desc.SizeBytes < 150*shared.KB {
			bonus += 10
		}

		return bonus
	}

	return 0
}

func videoFormatBonus(ext string) float64 {
	switch ext {
	case "mp4":
		return 10
	case "webm":
		return 12
	case "mov":
		return -8
	case "avi":
		return -10
	}

	return 0
}

// efficiencyAdjustment is a coarse size-to-type compression plausibility
// check, applied on top of the format branch.
func efficiencyAdjustment(kind types.MediaKind, size int64) float64 {
	switch kind {
	case types.KindImage:
		switch {
		case size > 0 && size < 50*shared.KB:
			return 6
		case size > 10*shared.MB:
			return -6
		}
	case types.KindVideo:
		switch {
		case size > 0 && size < 5*shared.MB:
			return 8
		case size > 1024*shared.MB:
			return -8
		}
	case types.KindUnknown:
	}

	return 0
}
