package filename

import (
	"regexp"
	"strings"

	"github.com/farcloser/mimesis/internal/signal/shared"
	"github.com/farcloser/mimesis/internal/types"
)

/*
Filename Signal Interpretation

Four independent passes over the lowercased filename, each adding to the
base score:

 1. Signature dictionary. Substring matches against known generator
    tools/brands and AI-adjacent keywords. Per-match bonus grows with
    the signature length (longer signatures are more specific); two or
    more distinct matches add a flat stacking bonus.
 2. Pattern list. Ordered regular expressions for parameter syntax,
    hash-like tokens, timestamp shapes and generic art keywords. First
    match wins; later patterns never double-count.
 3. Token scan. The name is split on '.', '_' and '-'; hex runs and
    long numeric runs contribute independently.
 4. Length and convention adjustments. Very long names lean generated;
    generic names (image1) and camera conventions (IMG_1234) lean human.

| Score  | Typical shape                                      |
|--------|----------------------------------------------------|
| < 10   | Camera roll naming (IMG_2024_01_15)                |
| 10-30  | Neutral human naming                               |
| 30-60  | One suspicious trait (hash token, parameter shape) |
| > 60   | Stacked tool signatures and parameters             |
*/

const (
	baseScore       = 18.0
	multiMatchBonus = 10.0
)

// signatures is the dictionary of generator tool, brand and AI-adjacent
// keyword substrings. All entries must be lowercase.
//
//nolint:gochecknoglobals // configuration data, effectively const
var signatures = []string{
	"stable-diffusion",
	"stablediffusion",
	"automatic1111",
	"midjourney",
	"dall-e",
	"dalle",
	"sdxl",
	"comfyui",
	"novelai",
	"nightcafe",
	"artbreeder",
	"deepdream",
	"craiyon",
	"ideogram",
	"leonardo",
	"firefly",
	"imagen",
	"recraft",
	"runway",
	"kling",
	"hailuo",
	"luma",
	"pika",
	"sora",
	"veo",
	"flux",
	"grok",
	"txt2img",
	"img2img",
	"inpaint",
	"outpaint",
	"upscaled",
	"ai-generated",
	"ai_generated",
	"ai-gen",
	"aigen",
	"generated",
	"synthetic",
	"diffusion",
	"neural",
	"seed",
	"prompt",
}

// patterns is the ordered first-match-wins list. Parameter shapes rank
// above hash and timestamp shapes so the most specific evidence counts.
//
//nolint:gochecknoglobals // configuration data, effectively const
var patterns = []struct {
	re    *regexp.Regexp
	bonus float64
}{
	{regexp.MustCompile(`seed[-_]?\d+`), 12},                                    // sampler seed
	{regexp.MustCompile(`(cfg|steps|guidance|denoise)[-_]?\d+`), 12},            // generation parameters
	{regexp.MustCompile(`\d{3,4}x\d{3,4}`), 8},                                  // resolution suffix
	{regexp.MustCompile(`[0-9a-f]{12,}`), 10},                                   // hash-like token
	{regexp.MustCompile(`\d{4}[-_]\d{2}[-_]\d{2}`), 6},                          // date stamp
	{regexp.MustCompile(`\d{10,13}`), 6},                                        // epoch timestamp
	{regexp.MustCompile(`(artwork|render|fantasy|portrait|landscape)[-_]?\d*`), 5}, // generic art keyword
}

//nolint:gochecknoglobals // configuration data, effectively const
var (
	hexToken     = regexp.MustCompile(`^[0-9a-f]{8,}$`)
	digitToken   = regexp.MustCompile(`^\d{6,}$`)
	genericName  = regexp.MustCompile(`^(image|img|photo|pic|untitled)[-_]?\d*\.[a-z0-9]+$`)
	cameraName   = regexp.MustCompile(`^(img|dsc|dscf|dscn|dcim|pxl|gopr|mvi)[-_]?\d`)
	hasDigitChar = regexp.MustCompile(`\d`)
)

// Score rates the filename text. Extra signatures (policy additions)
// are matched with the same rules as the built-in dictionary.
func Score(desc types.FileDescriptor, extraSignatures []string) float64 {
	name := strings.ToLower(desc.Name)
	score := baseScore

	score += signatureBonus(name, extraSignatures)
	score += patternBonus(name)
	score += tokenBonus(name)
	score += lengthAdjustment(name)

	return shared.Clamp(score)
}

func signatureBonus(name string, extra []string) float64 {
	var (
		bonus   float64
		matches int
	)

	for _, sig := range signatures {
		if strings.Contains(name, sig) {
			bonus += 6 + float64(len(sig))/2
			matches++
		}
	}

	for _, sig := range extra {
		sig = strings.ToLower(strings.TrimSpace(sig))
		if sig != "" && strings.Contains(name, sig) {
			bonus += 6 + float64(len(sig))/2
			matches++
		}
	}

	if matches >= 2 {
		bonus += multiMatchBonus
	}

	return bonus
}

func patternBonus(name string) float64 {
	for _, p := range patterns {
		if p.re.MatchString(name) {
			return p.bonus
		}
	}

	return 0
}

// tokenBonus splits on separators and inspects tokens for hash-like hex
// runs and long numeric runs. Both may apply on the same name.
func tokenBonus(name string) float64 {
	var bonus float64

	var sawHex, sawDigits bool

	for token := range strings.SplitSeq(name, ".") {
		for sub := range strings.SplitSeq(token, "_") {
			for part := range strings.SplitSeq(sub, "-") {
				if !sawHex && hexToken.MatchString(part) && hasDigitChar.MatchString(part) {
					bonus += 12
					sawHex = true
				}

				if !sawDigits && digitToken.MatchString(part) {
					bonus += 8
					sawDigits = true
				}
			}
		}
	}

	return bonus
}

func lengthAdjustment(name string) float64 {
	var adj float64

	switch {
	case len(name) > 60:
		adj += 8
	case len(name) < 8:
		adj += 4
	}

	switch {
	case cameraName.MatchString(name):
		adj -= 15
	case genericName.MatchString(name):
		adj -= 10
	}

	return adj
}
