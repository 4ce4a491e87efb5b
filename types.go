package mimesis

import (
	"fmt"
	"time"

	"github.com/farcloser/mimesis/internal/aggregate"
	"github.com/farcloser/mimesis/internal/rand"
	"github.com/farcloser/mimesis/internal/types"
)

/*
Usage:

	desc, err := source.FromPath("render.png")
	result, err := mimesis.Analyze(ctx, desc, mimesis.DefaultOptions())
	fmt.Printf("%d%% likely generated (%d%% confidence)\n", result.Probability, result.Confidence)

	// Deterministic scoring for regression tests
	opts := mimesis.DefaultOptions()
	opts.Rand = rand.Fixed(0.5)
	opts.Clock = func() time.Time { return fixedNow }

	// Profile presets
	opts := mimesis.OptionsForProfile(mimesis.ProfileStrict)

	// Iterate indicators
	for _, ind := range result.Indicators {
		fmt.Printf("%-22s %3d  %s\n", ind.Name, ind.Score, ind.Description)
	}
*/

// Indicator is a named, user-facing score derived from one or more
// signal sub-scores. More indicators than signals exist on purpose: the
// indicator set is a presentation layer, not a deeper analysis.
type Indicator struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Description string `json:"description,omitempty"`
}

// Result is the immutable outcome of one analysis.
type Result struct {
	Probability      int         `json:"ai_probability"`
	Confidence       int         `json:"confidence"`
	ProcessingTimeMs int64       `json:"processing_time_ms"`
	ModelVersion     string      `json:"model_version"`
	MediaKind        string      `json:"media_kind"`
	Indicators       []Indicator `json:"indicators"`
	Explanation      string      `json:"explanation,omitempty"`

	// Raw aggregation data, for inspection.
	Signals     types.Signals `json:"signals"`
	RawScore    float64       `json:"raw_score"`
	Consistency float64       `json:"consistency"`
}

// Profile adjusts policy bounds and thresholds for different audiences.
type Profile int

const (
	ProfileDefault Profile = iota // balanced policy (default)
	ProfileStrict                 // conservative verdicts, narrower ceilings
	ProfileLenient                // flags earlier, lower "high" threshold
)

func (p Profile) String() string {
	switch p {
	case ProfileDefault:
		return "default"
	case ProfileStrict:
		return "strict"
	case ProfileLenient:
		return "lenient"
	}

	return "unknown"
}

// ParseProfile converts a string to a Profile value.
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "default", "balanced", "":
		return ProfileDefault, nil
	case "strict":
		return ProfileStrict, nil
	case "lenient":
		return ProfileLenient, nil
	default:
		return 0, fmt.Errorf("unknown profile %q (valid: default, strict, lenient)", s)
	}
}

// Options configures one analysis. The zero value is not usable; start
// from DefaultOptions or OptionsForProfile.
type Options struct {
	Weights aggregate.Weights
	Bounds  aggregate.Bounds

	// Indicator thresholds used by the explanation generator.
	HighIndicatorThreshold float64 // indicators above read as "high"
	LowIndicatorThreshold  float64 // indicators below read as "low"

	// ExtraSignatures extends the filename signature dictionary.
	ExtraSignatures []string

	// Rand is the randomness source consumed by the content and
	// temporal signals. Nil selects the production source.
	Rand rand.Source

	// Clock supplies "now" for age and recency buckets. Nil selects
	// time.Now.
	Clock func() time.Time
}

// DefaultOptions returns the balanced policy.
func DefaultOptions() Options {
	return Options{
		Weights:                aggregate.DefaultWeights(),
		Bounds:                 aggregate.DefaultBounds(),
		HighIndicatorThreshold: 65,
		LowIndicatorThreshold:  35,
	}
}

// OptionsForProfile returns the default Options for the given profile.
func OptionsForProfile(profile Profile) Options {
	opts := DefaultOptions()

	switch profile {
	case ProfileStrict:
		opts.Bounds.ProbabilityCeil = 90
		opts.Bounds.ConfidenceCeil = 95
		opts.HighIndicatorThreshold = 70
	case ProfileLenient:
		opts.HighIndicatorThreshold = 60
		opts.LowIndicatorThreshold = 30
	case ProfileDefault:
	}

	return opts
}

func applyDefaults(opts *Options) {
	if opts.Weights == (aggregate.Weights{}) {
		opts.Weights = aggregate.DefaultWeights()
	}

	if opts.Bounds == (aggregate.Bounds{}) {
		opts.Bounds = aggregate.DefaultBounds()
	}

	if opts.HighIndicatorThreshold == 0 {
		opts.HighIndicatorThreshold = 65
	}

	if opts.LowIndicatorThreshold == 0 {
		opts.LowIndicatorThreshold = 35
	}

	if opts.Rand == nil {
		opts.Rand = rand.Default()
	}

	if opts.Clock == nil {
		opts.Clock = time.Now
	}
}
