package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/mimesis/internal/aggregate"
)

func writePolicy(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAndResolve(t *testing.T) {
	path := writePolicy(t, `
profile: strict
weights:
  metadata: 0.3
  filename: 0.2
  structure: 0.2
  content: 0.2
  temporal: 0.1
probability:
  floor: 10
  ceil: 85
thresholds:
  high: 72
extra_signatures:
  - housebrand
`)

	policy, err := Load(path)
	require.NoError(t, err)

	opts, err := policy.Options()
	require.NoError(t, err)

	assert.InDelta(t, 0.3, opts.Weights.Metadata, 1e-9)
	assert.Equal(t, 10, opts.Bounds.ProbabilityFloor)
	assert.Equal(t, 85, opts.Bounds.ProbabilityCeil)
	// Confidence section absent, strict preset ceiling stays.
	assert.Equal(t, 95, opts.Bounds.ConfidenceCeil)
	assert.InDelta(t, 72, opts.HighIndicatorThreshold, 1e-9)
	assert.Equal(t, []string{"housebrand"}, opts.ExtraSignatures)
}

func TestEmptyPolicyKeepsDefaults(t *testing.T) {
	policy, err := Load(writePolicy(t, "{}"))
	require.NoError(t, err)

	opts, err := policy.Options()
	require.NoError(t, err)

	assert.Equal(t, aggregate.DefaultWeights(), opts.Weights)
	assert.Equal(t, aggregate.DefaultBounds(), opts.Bounds)
}

func TestBadWeightSumRejected(t *testing.T) {
	policy, err := Load(writePolicy(t, `
weights:
  metadata: 0.5
  filename: 0.5
  structure: 0.5
  content: 0.5
  temporal: 0.5
`))
	require.NoError(t, err)

	_, err = policy.Options()
	assert.ErrorIs(t, err, errWeightSum)
}

func TestFloorOnlyOverrideApplied(t *testing.T) {
	policy, err := Load(writePolicy(t, `
probability:
  floor: 20
confidence:
  floor: 70
`))
	require.NoError(t, err)

	opts, err := policy.Options()
	require.NoError(t, err)

	assert.Equal(t, 20, opts.Bounds.ProbabilityFloor)
	assert.Equal(t, 95, opts.Bounds.ProbabilityCeil)
	assert.Equal(t, 70, opts.Bounds.ConfidenceFloor)
	assert.Equal(t, 98, opts.Bounds.ConfidenceCeil)
}

func TestInvertedBoundsRejected(t *testing.T) {
	policy, err := Load(writePolicy(t, `
probability:
  floor: 80
  ceil: 40
`))
	require.NoError(t, err)

	_, err = policy.Options()
	assert.ErrorIs(t, err, errBounds)

	// Floor-only override crossing the preset ceiling.
	policy, err = Load(writePolicy(t, `
probability:
  floor: 96
`))
	require.NoError(t, err)

	_, err = policy.Options()
	assert.ErrorIs(t, err, errBounds)
}

func TestOutOfRangeBoundsRejected(t *testing.T) {
	policy, err := Load(writePolicy(t, `
confidence:
  ceil: 150
`))
	require.NoError(t, err)

	_, err = policy.Options()
	assert.ErrorIs(t, err, errBounds)
}

func TestUnknownProfileRejected(t *testing.T) {
	policy, err := Load(writePolicy(t, "profile: paranoid"))
	require.NoError(t, err)

	_, err = policy.Options()
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writePolicy(t, "weights: ["))
	assert.Error(t, err)
}
