//nolint:wrapcheck
package main

import (
	"fmt"
	"os"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/mimesis"
	"github.com/farcloser/mimesis/internal/output"
)

// indicatorCategories groups indicators for friendly display (numbered
// for sorting).
//
//nolint:gochecknoglobals // configuration data, effectively const
var indicatorCategories = map[string]string{
	"Metadata Signature":    "1. Provenance",
	"Filename Pattern":      "1. Provenance",
	"Creation Context":      "1. Provenance",
	"Compression Artifacts": "2. Structure",
	"Container Structure":   "2. Structure",
	"Pixel Statistics":      "3. Content simulation",
	"Noise Distribution":    "3. Content simulation",
	"Color Coherence":       "3. Content simulation",
	"Frame Consistency":     "3. Content simulation",
	"Motion Coherence":      "3. Content simulation",
	"Audio Track":           "3. Content simulation",
}

type analyzed struct {
	path   string
	result *mimesis.Result
}

func outputResults(entries []analyzed, formatName string, debug bool) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	data := make([]*format.Data, 0, len(entries))

	for _, entry := range entries {
		var meta map[string]any
		if debug {
			meta = output.ResultToMap(entry.result)
		} else {
			meta = buildFriendlyOutput(entry.result)
		}

		data = append(data, &format.Data{
			Object: entry.path,
			Meta:   meta,
		})
	}

	if len(entries) > 1 {
		data = append(data, &format.Data{
			Object: "summary",
			Meta:   buildSummary(entries),
		})
	}

	return formatter.PrintAll(data, os.Stdout)
}

// buildSummary condenses a batch run into one trailing entry.
func buildSummary(entries []analyzed) map[string]any {
	var (
		total   int
		flagged int
		highest *analyzed
	)

	for i := range entries {
		entry := &entries[i]
		total += entry.result.Probability

		if entry.result.Probability >= 65 {
			flagged++
		}

		if highest == nil || entry.result.Probability > highest.result.Probability {
			highest = entry
		}
	}

	meta := map[string]any{
		"files":               len(entries),
		"flagged":             flagged,
		"average_probability": fmt.Sprintf("%d%%", total/len(entries)),
	}

	if highest != nil {
		meta["most_suspicious"] = fmt.Sprintf("%s (%d%%)", highest.path, highest.result.Probability)
	}

	return meta
}

func buildFriendlyOutput(result *mimesis.Result) map[string]any {
	meta := map[string]any{
		"verdict":    fmt.Sprintf("%d%% likely AI generated (%s confidence)", result.Probability, verdictWord(result.Confidence)),
		"media_kind": result.MediaKind,
		"model":      result.ModelVersion,
	}

	grouped := map[string]any{}

	for _, ind := range result.Indicators {
		category := indicatorCategories[ind.Name]
		if category == "" {
			category = "4. Other"
		}

		section, _ := grouped[category].(map[string]any)
		if section == nil {
			section = map[string]any{}
			grouped[category] = section
		}

		section[ind.Name] = fmt.Sprintf("%d/100", ind.Score)
	}

	meta["indicators"] = grouped

	if result.Explanation != "" {
		meta["explanation"] = result.Explanation
	}

	return meta
}

func verdictWord(confidence int) string {
	switch {
	case confidence > 85:
		return "very high"
	case confidence > 75:
		return "high"
	case confidence > 65:
		return "moderate"
	}

	return "low"
}
