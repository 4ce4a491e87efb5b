// Package config loads an optional YAML policy file overriding the
// built-in scoring constants.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/farcloser/mimesis"
	"github.com/farcloser/mimesis/internal/aggregate"
)

var (
	errWeightSum = errors.New("weights must sum to 1.0")
	errBounds    = errors.New("bounds must satisfy 0 <= floor <= ceil <= 100")
)

// Band overrides one floor/ceiling pair. Zero fields leave the preset
// value untouched; each field applies independently.
type Band struct {
	Floor int `yaml:"floor"`
	Ceil  int `yaml:"ceil"`
}

func (b Band) apply(name string, floor, ceil *int) error {
	if b.Floor < 0 || b.Floor > 100 || b.Ceil < 0 || b.Ceil > 100 {
		return fmt.Errorf("%w: %s %d..%d", errBounds, name, b.Floor, b.Ceil)
	}

	if b.Floor > 0 {
		*floor = b.Floor
	}

	if b.Ceil > 0 {
		*ceil = b.Ceil
	}

	if *floor > *ceil {
		return fmt.Errorf("%w: %s %d..%d", errBounds, name, *floor, *ceil)
	}

	return nil
}

// Policy mirrors the tunable scoring policy. Zero-valued sections leave
// the built-in defaults untouched.
type Policy struct {
	Profile string `yaml:"profile"`

	Weights *aggregate.Weights `yaml:"weights"`

	Probability Band `yaml:"probability"`
	Confidence  Band `yaml:"confidence"`

	Thresholds struct {
		High float64 `yaml:"high"`
		Low  float64 `yaml:"low"`
	} `yaml:"thresholds"`

	ExtraSignatures []string `yaml:"extra_signatures"`
}

// Load reads a policy file.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy: %w", err)
	}

	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("parsing policy: %w", err)
	}

	return &policy, nil
}

// Options resolves the policy into engine options, starting from the
// profile preset.
func (p *Policy) Options() (mimesis.Options, error) {
	profile, err := mimesis.ParseProfile(p.Profile)
	if err != nil {
		return mimesis.Options{}, err
	}

	opts := mimesis.OptionsForProfile(profile)

	if p.Weights != nil {
		if math.Abs(p.Weights.Sum()-1.0) > 1e-6 {
			return mimesis.Options{}, fmt.Errorf("%w: got %v", errWeightSum, p.Weights.Sum())
		}

		opts.Weights = *p.Weights
	}

	if err := p.Probability.apply("probability", &opts.Bounds.ProbabilityFloor, &opts.Bounds.ProbabilityCeil); err != nil {
		return mimesis.Options{}, err
	}

	if err := p.Confidence.apply("confidence", &opts.Bounds.ConfidenceFloor, &opts.Bounds.ConfidenceCeil); err != nil {
		return mimesis.Options{}, err
	}

	if p.Thresholds.High > 0 {
		opts.HighIndicatorThreshold = p.Thresholds.High
	}

	if p.Thresholds.Low > 0 {
		opts.LowIndicatorThreshold = p.Thresholds.Low
	}

	opts.ExtraSignatures = append(opts.ExtraSignatures, p.ExtraSignatures...)

	return opts, nil
}
