package types

import (
	"strings"
	"time"
)

// MediaKind classifies a descriptor by its declared MIME type.
type MediaKind int

const (
	KindUnknown MediaKind = iota
	KindImage
	KindVideo
)

func (k MediaKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	case KindUnknown:
		return "unknown"
	}

	return "unknown"
}

// KindOf maps a MIME type to its media kind. Anything that is not
// image/* or video/* is KindUnknown and must be rejected before scoring.
func KindOf(mimeType string) MediaKind {
	// Strip parameters ("image/png; charset=binary").
	if idx := strings.IndexByte(mimeType, ';'); idx >= 0 {
		mimeType = mimeType[:idx]
	}

	mimeType = strings.TrimSpace(strings.ToLower(mimeType))

	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	}

	return KindUnknown
}

// FileDescriptor is the immutable input of one analysis. It carries file
// metadata only; no media content is ever decoded.
type FileDescriptor struct {
	Name         string    `json:"name"`
	MIMEType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	LastModified time.Time `json:"last_modified"`
}

/*
Signal Score Interpretation

Every signal is an independent sub-score in [0, 100]. Intermediate
arithmetic may leave that range; each signal package clamps at its own
boundary.

| Score  | Interpretation                              |
|--------|---------------------------------------------|
| 0-20   | Strongly consistent with human origin       |
| 20-40  | Mildly human-leaning                        |
| 40-60  | Inconclusive                                |
| 60-80  | Mildly generator-leaning                    |
| 80-100 | Strongly consistent with generated output   |

## Which signals consume randomness

| Signal    | Inputs                                | Random draws |
|-----------|---------------------------------------|--------------|
| metadata  | age, size, exact MIME                 | none         |
| filename  | lowercased name text                  | none         |
| structure | extension + MIME + size               | none         |
| content   | size buckets + simulated sub-analysis | 3            |
| temporal  | hour-of-day, weekday                  | 1            |

The content signal is dominated by its draws. That is the contract: the
engine simulates content forensics over metadata, it does not decode
pixels or frames.
*/

// Signals holds the raw per-extractor sub-scores of one analysis.
type Signals struct {
	Metadata  float64 `json:"metadata"`
	Filename  float64 `json:"filename"`
	Structure float64 `json:"structure"`
	Content   float64 `json:"content"`
	Temporal  float64 `json:"temporal"`
}

// Slice returns the sub-scores in canonical order (metadata, filename,
// structure, content, temporal).
func (s Signals) Slice() []float64 {
	return []float64{s.Metadata, s.Filename, s.Structure, s.Content, s.Temporal}
}
