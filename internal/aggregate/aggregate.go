// Package aggregate combines signal sub-scores into a final probability
// and confidence.
package aggregate

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/mimesis/internal/types"
)

/*
Aggregation Policy

Raw score is the weighted sum of the five signal outputs. Consistency is
the inverse of their dispersion:

	consistency = max(0, 1 - popStdDev/50)

The raw score then goes through a logistic transform centered at 50:

	scaled = 100 / (1 + exp(-0.1 * (raw - 50)))

and gains consistency*10 before clamping to the probability bounds.
The transform pulls extreme raw scores toward the middle unless the
signals agree: an extreme verdict requires consensus, not one loud
signal.

| raw | scaled | with consistency=1 |
|-----|--------|--------------------|
| 20  | 4.7    | 14.7               |
| 35  | 18.2   | 28.2               |
| 50  | 50.0   | 60.0               |
| 65  | 81.8   | 91.8 (clamped 95)  |
| 80  | 95.3   | 95 (clamped)       |

## Confidence

	base = 60 + consistency*30

| Signal range (max-min) | Adjustment |
|------------------------|------------|
| < 20                   | +15        |
| < 40                   | +10        |
| > 60                   | -10        |

Plus +5 when the mean signal is extreme (> 80 or < 20): a strong
unanimous verdict earns higher confidence. Clamped to the confidence
bounds.
*/

// Weights assigns the relative contribution of each signal. The five
// values must sum to 1.
type Weights struct {
	Metadata  float64 `json:"metadata" yaml:"metadata"`
	Filename  float64 `json:"filename" yaml:"filename"`
	Structure float64 `json:"structure" yaml:"structure"`
	Content   float64 `json:"content" yaml:"content"`
	Temporal  float64 `json:"temporal" yaml:"temporal"`
}

// DefaultWeights returns the five-signal policy in force.
func DefaultWeights() Weights {
	return Weights{
		Metadata:  0.25,
		Filename:  0.20,
		Structure: 0.20,
		Content:   0.25,
		Temporal:  0.10,
	}
}

// Sum returns the total weight. Valid weight tables sum to 1.
func (w Weights) Sum() float64 {
	return w.Metadata + w.Filename + w.Structure + w.Content + w.Temporal
}

// Bounds holds the policy floors and ceilings for the final values.
type Bounds struct {
	ProbabilityFloor int
	ProbabilityCeil  int
	ConfidenceFloor  int
	ConfidenceCeil   int
}

// DefaultBounds returns the published policy bounds.
func DefaultBounds() Bounds {
	return Bounds{
		ProbabilityFloor: 5,
		ProbabilityCeil:  95,
		ConfidenceFloor:  65,
		ConfidenceCeil:   98,
	}
}

// Outcome is the aggregated verdict over one signal set.
type Outcome struct {
	Raw         float64 // weighted sum before scaling
	StdDev      float64 // population standard deviation of the signals
	Consistency float64 // 0..1, 1 = signals fully agree
	Probability int     // final AI-generation probability
	Confidence  int     // final confidence percentage
}

// Combine aggregates the signal sub-scores under the given policy.
func Combine(sig types.Signals, weights Weights, bounds Bounds) Outcome {
	scores := sig.Slice()

	raw := weights.Metadata*sig.Metadata +
		weights.Filename*sig.Filename +
		weights.Structure*sig.Structure +
		weights.Content*sig.Content +
		weights.Temporal*sig.Temporal

	stdDev := stat.PopStdDev(scores, nil)
	consistency := math.Max(0, 1-stdDev/50)

	scaled := 100/(1+math.Exp(-0.1*(raw-50))) + consistency*10

	return Outcome{
		Raw:         raw,
		StdDev:      stdDev,
		Consistency: consistency,
		Probability: clampInt(int(math.Round(scaled)), bounds.ProbabilityFloor, bounds.ProbabilityCeil),
		Confidence:  confidence(scores, consistency, bounds),
	}
}

func confidence(scores []float64, consistency float64, bounds Bounds) int {
	value := 60 + consistency*30

	spread := floats.Max(scores) - floats.Min(scores)

	switch {
	case spread < 20:
		value += 15
	case spread < 40:
		value += 10
	case spread > 60:
		value -= 10
	}

	if mean := stat.Mean(scores, nil); mean > 80 || mean < 20 {
		value += 5
	}

	return clampInt(int(math.Round(value)), bounds.ConfidenceFloor, bounds.ConfidenceCeil)
}

func clampInt(v, floor, ceil int) int {
	if v < floor {
		return floor
	}

	if v > ceil {
		return ceil
	}

	return v
}
