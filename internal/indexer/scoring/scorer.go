package scoring

import (
	"math"

	"github.com/mydia/mydia/internal/indexer/types"
	"github.com/mydia/mydia/internal/library/quality"
	"github.com/mydia/mydia/internal/release"
)

const (
	// qualityWeight scales the quality component in the unified formula:
	// total = (quality*0.6 + seeders + title) * zeroSeederPenalty.
	qualityWeight = 0.6

	// zeroSeederFactor is applied to the whole score when a torrent has no
	// seeders at all.
	zeroSeederFactor = 0.7

	// qualityScoreDivisor maps the raw extraction score (0..~2000) into the
	// same magnitude as the seeder score.
	qualityScoreDivisor = 20.0

	// maxSeederFallback caps the seeder-based stand-in used when a result
	// carries no quality signals and no profile is supplied.
	maxSeederFallback = 100
)

// ScoreResult calculates the desirability score for a single result.
func ScoreResult(r types.SearchResult, opts Options) float64 {
	return ScoreResultWithBreakdown(r, opts).Score
}

// ScoreResultWithBreakdown scores a result and itemizes every component.
func ScoreResultWithBreakdown(r types.SearchResult, opts Options) ScoreRecord {
	qualityScore, violations := ScoreQuality(r, opts.Profile, opts.mediaType())
	seederScore := ScoreSeeders(r.Seeders)
	titleBonus := ScoreTitleMatch(r.Title, opts.SearchQuery)

	penalty := 1.0
	if r.Seeders == 0 {
		penalty = zeroSeederFactor
		violations = append(violations, "No seeders (30% penalty applied)")
	}

	total := (qualityScore*qualityWeight + seederScore + titleBonus) * penalty
	if total < 0 {
		total = 0
	}

	return ScoreRecord{
		Score: round2(total),
		Breakdown: Breakdown{
			QualityScore:      round2(qualityScore),
			SeederScore:       round2(seederScore),
			TitleBonus:        round2(titleBonus),
			ZeroSeederPenalty: penalty,
		},
		Violations: violations,
		Detected: Detected{
			Resolution: r.Quality.Resolution,
			Source:     r.Quality.Source,
			Codec:      r.Quality.Codec,
			Audio:      r.Quality.Audio,
			HDRFormat:  r.Quality.HDRFormat,
			SizeMB:     round2(r.SizeMB()),
		},
	}
}

// ScoreQuality scores the quality component of a result. With a profile
// the profile's own scoring entry point decides; without one the raw
// extraction score is scaled down, and a result with no quality signals
// at all falls back to its seeder count (capped) so that healthy but
// oddly named releases still rank.
func ScoreQuality(r types.SearchResult, profile *quality.Profile, mediaType types.MediaType) (float64, []string) {
	if profile != nil {
		return profile.ScoreRelease(r.Quality, r.SizeMB(), mediaType)
	}

	if r.HasQuality() {
		return float64(release.QualityScore(r.Quality)) / qualityScoreDivisor, nil
	}

	seeders := r.Seeders
	if seeders < 0 {
		seeders = 0
	}
	if seeders > maxSeederFallback {
		seeders = maxSeederFallback
	}
	return float64(seeders), nil
}

// ScoreSeeders converts a seeder count into a score with diminishing
// returns: log10(n+1)*10, floored at 0 for non-positive input.
func ScoreSeeders(n int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Log10(float64(n)+1) * 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
