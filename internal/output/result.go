// Package output provides shared result serialization for mimesis JSON
// and debug output.
package output

import (
	"github.com/farcloser/mimesis"
)

// ResultToMap converts an analysis result into the canonical map
// structure used for JSON serialization.
func ResultToMap(result *mimesis.Result) map[string]any {
	meta := map[string]any{
		"summary": map[string]any{
			"ai_probability":     result.Probability,
			"confidence":         result.Confidence,
			"media_kind":         result.MediaKind,
			"model_version":      result.ModelVersion,
			"processing_time_ms": result.ProcessingTimeMs,
		},
	}

	indicators := make([]any, 0, len(result.Indicators))
	for _, ind := range result.Indicators {
		indicators = append(indicators, map[string]any{
			"name":        ind.Name,
			"score":       ind.Score,
			"description": ind.Description,
		})
	}

	meta["indicators"] = indicators

	if result.Explanation != "" {
		meta["explanation"] = result.Explanation
	}

	meta["signals"] = map[string]any{
		"metadata":  result.Signals.Metadata,
		"filename":  result.Signals.Filename,
		"structure": result.Signals.Structure,
		"content":   result.Signals.Content,
		"temporal":  result.Signals.Temporal,
	}

	meta["aggregate"] = map[string]any{
		"raw_score":   result.RawScore,
		"consistency": result.Consistency,
	}

	return meta
}
