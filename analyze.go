package mimesis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/farcloser/mimesis/internal/aggregate"
	"github.com/farcloser/mimesis/internal/rand"
	"github.com/farcloser/mimesis/internal/signal/content"
	"github.com/farcloser/mimesis/internal/signal/filename"
	"github.com/farcloser/mimesis/internal/signal/metadata"
	"github.com/farcloser/mimesis/internal/signal/structure"
	"github.com/farcloser/mimesis/internal/signal/temporal"
	"github.com/farcloser/mimesis/internal/types"
	"github.com/farcloser/mimesis/version"
)

// ErrInvalidDescriptor reports a descriptor that should have been
// rejected by the caller before reaching the engine.
var ErrInvalidDescriptor = errors.New("invalid file descriptor")

// Analyze scores one descriptor. Every call is independent: no caching,
// no state shared between concurrent analyses. The five signals run
// concurrently; their random draws are taken up front in a fixed order
// so a deterministic source reproduces the same result regardless of
// scheduling.
func Analyze(ctx context.Context, desc types.FileDescriptor, opts Options) (*Result, error) {
	if desc.SizeBytes < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrInvalidDescriptor, desc.SizeBytes)
	}

	kind := types.KindOf(desc.MIMEType)
	if kind == types.KindUnknown {
		return nil, fmt.Errorf("%w: MIME type %q is not image/* or video/*", ErrInvalidDescriptor, desc.MIMEType)
	}

	applyDefaults(&opts)

	now := opts.Clock()
	start := time.Now()

	// Content consumes three draws, temporal one. Freezing them here
	// keeps signal evaluation order-independent.
	contentSrc := rand.Fixed(opts.Rand.Float64(), opts.Rand.Float64(), opts.Rand.Float64())
	temporalSrc := rand.Fixed(opts.Rand.Float64())

	var sig types.Signals

	group, _ := errgroup.WithContext(ctx)

	group.Go(func() error {
		sig.Metadata = metadata.Score(desc, now)

		return nil
	})
	group.Go(func() error {
		sig.Filename = filename.Score(desc, opts.ExtraSignatures)

		return nil
	})
	group.Go(func() error {
		sig.Structure = structure.Score(desc)

		return nil
	})
	group.Go(func() error {
		sig.Content = content.Score(desc, contentSrc)

		return nil
	})
	group.Go(func() error {
		sig.Temporal = temporal.Score(desc, now, temporalSrc)

		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	outcome := aggregate.Combine(sig, opts.Weights, opts.Bounds)

	result := &Result{
		Probability:  outcome.Probability,
		Confidence:   outcome.Confidence,
		ModelVersion: version.Model(),
		MediaKind:    kind.String(),
		Indicators:   buildIndicators(kind, sig),
		Signals:      sig,
		RawScore:     outcome.Raw,
		Consistency:  outcome.Consistency,
	}

	result.Explanation = explain(result, opts)
	result.ProcessingTimeMs = time.Since(start).Milliseconds()

	return result, nil
}

// buildIndicators maps signal sub-scores to the user-facing indicator
// set for the media kind. Derived entries reuse signal scores; this is
// a presentation layer, not additional analysis.
func buildIndicators(kind types.MediaKind, sig types.Signals) []Indicator {
	if kind == types.KindVideo {
		return []Indicator{
			{Name: "Metadata Signature", Score: indicatorScore(sig.Metadata), Description: "Container metadata and creation-time characteristics"},
			{Name: "Filename Pattern", Score: indicatorScore(sig.Filename), Description: "Tool signatures and naming conventions in the filename"},
			{Name: "Container Structure", Score: indicatorScore(sig.Structure), Description: "Format choice and size-to-format plausibility"},
			{Name: "Frame Consistency", Score: indicatorScore(sig.Content), Description: "Simulated frame pacing and cadence analysis"},
			{Name: "Motion Coherence", Score: indicatorScore((sig.Content + sig.Structure) / 2), Description: "Simulated motion complexity relative to the container"},
			{Name: "Audio Track", Score: indicatorScore((sig.Content + sig.Metadata) / 2), Description: "Audio presence plausibility for the declared format"},
			{Name: "Creation Context", Score: indicatorScore(sig.Temporal), Description: "Time-of-day, weekday and batch-creation cues"},
		}
	}

	return []Indicator{
		{Name: "Metadata Signature", Score: indicatorScore(sig.Metadata), Description: "File metadata and creation-time characteristics"},
		{Name: "Filename Pattern", Score: indicatorScore(sig.Filename), Description: "Tool signatures and naming conventions in the filename"},
		{Name: "Compression Artifacts", Score: indicatorScore(sig.Structure), Description: "Format choice and size-to-format plausibility"},
		{Name: "Pixel Statistics", Score: indicatorScore(sig.Content), Description: "Simulated aspect-ratio and palette analysis"},
		{Name: "Noise Distribution", Score: indicatorScore((sig.Content + sig.Structure) / 2), Description: "Simulated sensor-noise plausibility"},
		{Name: "Color Coherence", Score: indicatorScore((sig.Content + sig.Metadata) / 2), Description: "Simulated palette coherence against metadata"},
		{Name: "Creation Context", Score: indicatorScore(sig.Temporal), Description: "Time-of-day, weekday and batch-creation cues"},
	}
}

func indicatorScore(v float64) int {
	score := int(math.Round(v))
	if score < 0 {
		return 0
	}

	if score > 100 {
		return 100
	}

	return score
}

func confidenceWord(confidence int) string {
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

// explain renders the verdict paragraph for a probability band,
// interpolating the names of high and low indicators.
func explain(result *Result, opts Options) string {
	var high, low []string

	for _, ind := range result.Indicators {
		switch {
		case float64(ind.Score) > opts.HighIndicatorThreshold:
			high = append(high, ind.Name)
		case float64(ind.Score) < opts.LowIndicatorThreshold:
			low = append(low, ind.Name)
		}
	}

	word := confidenceWord(result.Confidence)

	switch {
	case result.Probability >= 80:
		return fmt.Sprintf(
			"Strong signs of AI generation. %s all point toward synthetic origin. Confidence in this verdict is %s.",
			joinOr(high, "Multiple indicators"), word,
		)
	case result.Probability >= 65:
		return fmt.Sprintf(
			"Likely AI generated. %s lean toward synthetic origin, though some signals remain ambiguous. Confidence is %s.",
			joinOr(high, "Several indicators"), word,
		)
	case result.Probability >= 35:
		return fmt.Sprintf(
			"Inconclusive. The signals disagree or sit near the middle of their ranges. Confidence is %s; treat this verdict with caution.",
			word,
		)
	case result.Probability >= 20:
		return fmt.Sprintf(
			"Probably human created. %s are consistent with conventional capture or editing workflows. Confidence is %s.",
			joinOr(low, "Most indicators"), word,
		)
	}

	return fmt.Sprintf(
		"Strong signs of human origin. %s match conventional capture workflows. Confidence in this verdict is %s.",
		joinOr(low, "The indicators"), word,
	)
}

func joinOr(names []string, fallback string) string {
	if len(names) == 0 {
		return fallback
	}

	return strings.Join(names, ", ")
}
