package mimesis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/mimesis/internal/rand"
	"github.com/farcloser/mimesis/internal/types"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestAnalyzeGeneratedLookingImage(t *testing.T) {
	// Saturday 03:00, file written half an hour earlier.
	now := time.Date(2026, 3, 14, 3, 0, 0, 0, time.UTC)

	desc := types.FileDescriptor{
		Name:         "stable-diffusion-output-seed1234.png",
		MIMEType:     "image/png",
		SizeBytes:    900 * 1024,
		LastModified: now.Add(-30 * time.Minute),
	}

	opts := DefaultOptions()
	opts.Rand = rand.Fixed(0.1)
	opts.Clock = fixedClock(now)

	result, err := Analyze(context.Background(), desc, opts)
	require.NoError(t, err)

	assert.Equal(t, 87, result.Probability)
	assert.Equal(t, 93, result.Confidence)
	assert.Equal(t, "image", result.MediaKind)

	assert.InDelta(t, 65, result.Signals.Metadata, 0.001)
	assert.InDelta(t, 72.5, result.Signals.Filename, 0.001)
	assert.InDelta(t, 42, result.Signals.Structure, 0.001)
	assert.InDelta(t, 74, result.Signals.Content, 0.001)
	assert.InDelta(t, 57, result.Signals.Temporal, 0.001)

	assert.Contains(t, result.Explanation, "Strong signs of AI generation")
	assert.Contains(t, result.Explanation, "Filename Pattern")
	assert.Contains(t, result.Explanation, "very high")
}

func TestAnalyzeCameraRollPhoto(t *testing.T) {
	// Tuesday 14:00, photo over a year old.
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	desc := types.FileDescriptor{
		Name:         "IMG_2024_01_15.jpg",
		MIMEType:     "image/jpeg",
		SizeBytes:    12 * 1024 * 1024,
		LastModified: now.AddDate(0, 0, -400),
	}

	opts := DefaultOptions()
	opts.Rand = rand.Fixed(0.99)
	opts.Clock = fixedClock(now)

	result, err := Analyze(context.Background(), desc, opts)
	require.NoError(t, err)

	assert.Equal(t, 11, result.Probability)
	assert.Equal(t, 98, result.Confidence)

	assert.InDelta(t, 0, result.Signals.Metadata, 0.001)
	assert.InDelta(t, 9, result.Signals.Filename, 0.001)

	assert.Contains(t, result.Explanation, "Strong signs of human origin")
}

func TestAnalyzeLargeHomeVideo(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	desc := types.FileDescriptor{
		Name:         "family_trip.mov",
		MIMEType:     "video/quicktime",
		SizeBytes:    700 * 1024 * 1024,
		LastModified: now.AddDate(0, 0, -10),
	}

	opts := DefaultOptions()
	opts.Rand = rand.Fixed(0.99)
	opts.Clock = fixedClock(now)

	result, err := Analyze(context.Background(), desc, opts)
	require.NoError(t, err)

	assert.Equal(t, "video", result.MediaKind)
	assert.Less(t, result.Probability, 35)
}

func TestAnalyzeDeterministicUnderFixedSource(t *testing.T) {
	now := time.Date(2026, 3, 14, 3, 0, 0, 0, time.UTC)

	desc := types.FileDescriptor{
		Name:         "render-7f3a9b2c4d1e.webp",
		MIMEType:     "image/webp",
		SizeBytes:    512 * 1024,
		LastModified: now.Add(-2 * time.Hour),
	}

	opts := DefaultOptions()
	opts.Rand = rand.Fixed(0.2)
	opts.Clock = fixedClock(now)

	first, err := Analyze(context.Background(), desc, opts)
	require.NoError(t, err)

	for range 20 {
		again, err := Analyze(context.Background(), desc, opts)
		require.NoError(t, err)

		assert.Equal(t, first.Probability, again.Probability)
		assert.Equal(t, first.Confidence, again.Confidence)
		assert.Equal(t, first.Signals, again.Signals)
		assert.Equal(t, first.Indicators, again.Indicators)
		assert.Equal(t, first.Explanation, again.Explanation)
	}
}

func TestAnalyzeSeededSourcesAgree(t *testing.T) {
	now := time.Date(2026, 3, 14, 3, 0, 0, 0, time.UTC)

	desc := types.FileDescriptor{
		Name:         "clip_0001.mp4",
		MIMEType:     "video/mp4",
		SizeBytes:    20 * 1024 * 1024,
		LastModified: now,
	}

	run := func() *Result {
		opts := DefaultOptions()
		opts.Rand = rand.Seeded(7)
		opts.Clock = fixedClock(now)

		result, err := Analyze(context.Background(), desc, opts)
		require.NoError(t, err)

		return result
	}

	first, second := run(), run()
	assert.Equal(t, first.Probability, second.Probability)
	assert.Equal(t, first.Signals, second.Signals)
}

func TestAnalyzeIndicatorSets(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	opts := DefaultOptions()
	opts.Rand = rand.Fixed(0.5)
	opts.Clock = fixedClock(now)

	names := func(mime string) []string {
		result, err := Analyze(context.Background(), types.FileDescriptor{
			Name: "sample", MIMEType: mime, SizeBytes: 1024, LastModified: now,
		}, opts)
		require.NoError(t, err)

		out := make([]string, 0, len(result.Indicators))
		for _, ind := range result.Indicators {
			out = append(out, ind.Name)
		}

		return out
	}

	assert.Equal(t, []string{
		"Metadata Signature",
		"Filename Pattern",
		"Compression Artifacts",
		"Pixel Statistics",
		"Noise Distribution",
		"Color Coherence",
		"Creation Context",
	}, names("image/png"))

	assert.Equal(t, []string{
		"Metadata Signature",
		"Filename Pattern",
		"Container Structure",
		"Frame Consistency",
		"Motion Coherence",
		"Audio Track",
		"Creation Context",
	}, names("video/mp4"))
}

func TestAnalyzeRejectsInvalidDescriptors(t *testing.T) {
	opts := DefaultOptions()

	_, err := Analyze(context.Background(), types.FileDescriptor{
		Name: "x.png", MIMEType: "image/png", SizeBytes: -1,
	}, opts)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	_, err = Analyze(context.Background(), types.FileDescriptor{
		Name: "x.pdf", MIMEType: "application/pdf", SizeBytes: 1024,
	}, opts)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	_, err = Analyze(context.Background(), types.FileDescriptor{
		Name: "x", MIMEType: "", SizeBytes: 1024,
	}, opts)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestResultJSONRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 3, 0, 0, 0, time.UTC)

	opts := DefaultOptions()
	opts.Rand = rand.Fixed(0.1)
	opts.Clock = fixedClock(now)

	result, err := Analyze(context.Background(), types.FileDescriptor{
		Name: "midjourney_artwork.png", MIMEType: "image/png", SizeBytes: 1024 * 1024, LastModified: now,
	}, opts)
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"ai_probability"`)
	assert.Contains(t, string(raw), `"model_version"`)

	var decoded Result

	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, result.Probability, decoded.Probability)
	assert.Equal(t, result.Confidence, decoded.Confidence)
	assert.Equal(t, result.Indicators, decoded.Indicators)
	assert.Equal(t, result.Signals, decoded.Signals)
}

func TestParseProfile(t *testing.T) {
	for input, want := range map[string]Profile{
		"":         ProfileDefault,
		"default":  ProfileDefault,
		"balanced": ProfileDefault,
		"strict":   ProfileStrict,
		"lenient":  ProfileLenient,
	} {
		got, err := ParseProfile(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseProfile("paranoid")
	assert.Error(t, err)
}

func TestOptionsForProfileStrictNarrowsCeilings(t *testing.T) {
	strict := OptionsForProfile(ProfileStrict)
	assert.Equal(t, 90, strict.Bounds.ProbabilityCeil)
	assert.Equal(t, 95, strict.Bounds.ConfidenceCeil)

	lenient := OptionsForProfile(ProfileLenient)
	assert.InDelta(t, 60, lenient.HighIndicatorThreshold, 0.001)
	assert.InDelta(t, 30, lenient.LowIndicatorThreshold, 0.001)
}
