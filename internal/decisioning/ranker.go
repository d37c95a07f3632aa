// Package decisioning filters, ranks, and selects download candidates
// from scored search results. Every function is a pure transform of its
// inputs; the fetch executor may run many ranking passes in parallel.
package decisioning

import (
	"sort"
	"strings"

	"github.com/mydia/mydia/internal/indexer/scoring"
	"github.com/mydia/mydia/internal/indexer/types"
)

// unrankedBucket sorts results whose resolution is not in the preferred
// list after every preferred bucket.
const unrankedBucket = 999

// SizeRange bounds acceptable release sizes in megabytes.
type SizeRange struct {
	MinMB float64 `json:"minMb"`
	MaxMB float64 `json:"maxMb"`
}

// FilterOptions holds the hard constraints a result must satisfy.
type FilterOptions struct {
	// MinSeeders drops results below this seeder count. Zero keeps everything.
	MinSeeders int `json:"minSeeders"`

	// SizeRange, when set, drops results outside the bounds.
	SizeRange *SizeRange `json:"sizeRange,omitempty"`

	// BlockedTags drops results whose title contains any tag,
	// case-insensitively.
	BlockedTags []string `json:"blockedTags,omitempty"`

	// MinRatio drops results whose seeders/(seeders+leechers) falls below
	// this value. Results with zero total peers are never dropped by the
	// ratio rule.
	MinRatio float64 `json:"minRatio,omitempty"`
}

// Options configures a full ranking pass.
type Options struct {
	Filter FilterOptions `json:"filter"`

	// PreferredQualities buckets results by resolution in list order before
	// any score comparison, so a preferred 1080p release outranks a 2160p
	// release with a higher raw score.
	PreferredQualities []string `json:"preferredQualities,omitempty"`

	Scoring scoring.Options `json:"scoring"`
}

// RankedResult pairs a result with its score and breakdown.
type RankedResult struct {
	Result    types.SearchResult `json:"result"`
	Score     float64            `json:"score"`
	Breakdown scoring.Breakdown  `json:"breakdown"`
}

// FilterAcceptable drops results that violate the hard constraints.
// Filtering is idempotent and never grows the set.
func FilterAcceptable(results []types.SearchResult, opts FilterOptions) []types.SearchResult {
	filtered := make([]types.SearchResult, 0, len(results))
	for _, r := range results {
		if acceptable(&r, opts) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func acceptable(r *types.SearchResult, opts FilterOptions) bool {
	if r.Seeders < opts.MinSeeders {
		return false
	}

	if sr := opts.SizeRange; sr != nil {
		mb := r.SizeMB()
		if mb < sr.MinMB {
			return false
		}
		if sr.MaxMB > 0 && mb > sr.MaxMB {
			return false
		}
	}

	title := strings.ToLower(r.Title)
	for _, tag := range opts.BlockedTags {
		if tag == "" {
			continue
		}
		if strings.Contains(title, strings.ToLower(tag)) {
			return false
		}
	}

	if opts.MinRatio > 0 && r.Leechers > 0 {
		ratio := float64(r.Seeders) / float64(r.Seeders+r.Leechers)
		if ratio < opts.MinRatio {
			return false
		}
	}

	return true
}

// RankAll filters the results, scores the survivors, and sorts them:
// preferred-resolution bucket first (in opts.PreferredQualities order),
// score descending within each bucket. The sort is stable, so results
// tying on both bucket and score keep their input order.
func RankAll(results []types.SearchResult, opts Options) []RankedResult {
	filtered := FilterAcceptable(results, opts.Filter)

	ranked := make([]RankedResult, 0, len(filtered))
	for _, r := range filtered {
		rec := scoring.ScoreResultWithBreakdown(r, opts.Scoring)
		ranked = append(ranked, RankedResult{Result: r, Score: rec.Score, Breakdown: rec.Breakdown})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		bi := bucketIndex(ranked[i].Result.Quality.Resolution, opts.PreferredQualities)
		bj := bucketIndex(ranked[j].Result.Quality.Resolution, opts.PreferredQualities)
		if bi != bj {
			return bi < bj
		}
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// SelectBestResult returns the top-ranked acceptable result, or nil when
// nothing survives filtering.
func SelectBestResult(results []types.SearchResult, opts Options) *RankedResult {
	ranked := RankAll(results, opts)
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}

func bucketIndex(resolution string, preferred []string) int {
	for i, q := range preferred {
		if strings.EqualFold(q, resolution) {
			return i
		}
	}
	return unrankedBucket
}
