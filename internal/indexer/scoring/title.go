package scoring

import (
	"regexp"
	"slices"

	"github.com/mydia/mydia/internal/indexer/search"
	"github.com/mydia/mydia/internal/release"
)

const (
	exactMatchBonus        = 10.0
	sequentialMatchBonus   = 8.0
	sequentialExtraPenalty = 0.5
	sequentialMatchFloor   = 4.0
	partialMatchMax        = 3.0
)

// Numeric and season/episode tokens carry no relevance signal: years,
// S01E02 markers, and channel layouts like "5.1" all tokenize to these.
var releaseMetaToken = regexp.MustCompile(`(?i)^(\d+|s\d{1,2}(e\d{1,3})?|e\d{1,3})$`)

// ScoreTitleMatch scores the textual relevance of a release title against
// a search query. Quality-indicator and release-metadata tokens are
// stripped first so a correctly tagged release is never penalized for its
// tags. Exact matches outrank sequential matches with extra tokens
// (a superset title like "<show> Experience" loses to the show itself),
// which in turn outrank loose token overlap. Returns 0 for an empty query.
func ScoreTitleMatch(title, query string) float64 {
	queryTokens := relevantTokens(query)
	if len(queryTokens) == 0 {
		return 0
	}
	titleTokens := relevantTokens(title)
	if len(titleTokens) == 0 {
		return 0
	}

	if slices.Equal(titleTokens, queryTokens) {
		return exactMatchBonus
	}

	if containsSequence(titleTokens, queryTokens) {
		extra := float64(len(titleTokens) - len(queryTokens))
		score := sequentialMatchBonus - sequentialExtraPenalty*extra
		if score < sequentialMatchFloor {
			score = sequentialMatchFloor
		}
		return score
	}

	titleSet := make(map[string]struct{}, len(titleTokens))
	for _, tok := range titleTokens {
		titleSet[tok] = struct{}{}
	}
	matched := 0
	for _, tok := range queryTokens {
		if _, ok := titleSet[tok]; ok {
			matched++
		}
	}
	return partialMatchMax * float64(matched) / float64(len(queryTokens))
}

// relevantTokens strips quality markers while the string is still intact
// (WEB-DL and DD5.1 shatter into unrecognizable fragments after
// normalization), then drops any single-token markers and release
// metadata that remain.
func relevantTokens(s string) []string {
	var out []string
	for _, tok := range search.Tokenize(search.NormalizeTitle(release.StripQualitySignals(s))) {
		if releaseMetaToken.MatchString(tok) || release.IsQualityToken(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// containsSequence reports whether needle occurs as a contiguous
// subsequence of haystack.
func containsSequence(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}
