// Package scoring calculates desirability scores for indexer search results.
package scoring

import (
	"github.com/mydia/mydia/internal/indexer/types"
	"github.com/mydia/mydia/internal/library/quality"
)

// Options configures a scoring pass.
type Options struct {
	// Profile, when set, takes over quality scoring via its own entry point.
	Profile *quality.Profile

	// MediaType defaults to movie when empty.
	MediaType types.MediaType

	// SearchQuery enables the textual relevance bonus when non-empty.
	SearchQuery string
}

func (o Options) mediaType() types.MediaType {
	if o.MediaType == "" {
		return types.MediaTypeMovie
	}
	return o.MediaType
}

// Breakdown itemizes how a score was assembled. All fields are rounded to
// two decimals.
type Breakdown struct {
	QualityScore      float64 `json:"qualityScore"`
	SeederScore       float64 `json:"seederScore"`
	TitleBonus        float64 `json:"titleBonus"`
	ZeroSeederPenalty float64 `json:"zeroSeederPenalty"`
}

// Detected echoes the quality signals the score was based on, for display
// and debugging.
type Detected struct {
	Resolution string  `json:"resolution,omitempty"`
	Source     string  `json:"source,omitempty"`
	Codec      string  `json:"codec,omitempty"`
	Audio      string  `json:"audio,omitempty"`
	HDRFormat  string  `json:"hdrFormat,omitempty"`
	SizeMB     float64 `json:"sizeMb"`
}

// ScoreRecord is the full outcome of scoring one result.
type ScoreRecord struct {
	Score      float64   `json:"score"`
	Breakdown  Breakdown `json:"breakdown"`
	Violations []string  `json:"violations,omitempty"`
	Detected   Detected  `json:"detected"`
}
