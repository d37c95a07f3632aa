// Package quality defines user quality policies for release decisions.
package quality

import (
	"fmt"
	"strings"

	"github.com/mydia/mydia/internal/indexer/types"
	"github.com/mydia/mydia/internal/release"
)

// Standards holds the preference lists and size bounds of a profile.
// Empty lists mean "no preference"; zero bounds mean "no explicit bound".
type Standards struct {
	PreferredResolutions []string `json:"preferredResolutions,omitempty"`
	PreferredSources     []string `json:"preferredSources,omitempty"`
	PreferredVideoCodecs []string `json:"preferredVideoCodecs,omitempty"`
	PreferredAudioCodecs []string `json:"preferredAudioCodecs,omitempty"`
	MinSizeMB            float64  `json:"minSizeMb,omitempty"`
	MaxSizeMB            float64  `json:"maxSizeMb,omitempty"`
	HDRFormats           []string `json:"hdrFormats,omitempty"`
}

// Profile is a user quality policy: an ordered list of acceptable quality
// names plus per-attribute standards. The scorer delegates quality scoring
// here whenever a profile is supplied.
type Profile struct {
	Name      string    `json:"name"`
	Qualities []string  `json:"qualities"`
	Standards Standards `json:"qualityStandards"`
}

// Points awarded per matched preference. Resolution dominates, in line
// with the raw extraction score where resolution is the largest component.
const (
	resolutionPoints = 40.0
	sourcePoints     = 25.0
	codecPoints      = 15.0
	audioPoints      = 10.0
	hdrPoints        = 10.0
)

// Default size sanity windows applied only when the profile pins no
// explicit bounds. Episodes run far smaller than movies.
var defaultSizeBounds = map[types.MediaType][2]float64{
	types.MediaTypeMovie:   {100, 200000},
	types.MediaTypeEpisode: {30, 50000},
}

// ScoreRelease is the profile's scoring entry point. It rewards matches
// against the profile's preference lists and reports human-readable
// violations for releases that fall outside the size bounds. Violations
// never abort scoring; the caller decides what to do with them.
func (p *Profile) ScoreRelease(q release.QualityInfo, sizeMB float64, mediaType types.MediaType) (float64, []string) {
	var score float64
	var violations []string

	if containsFold(p.Standards.PreferredResolutions, q.Resolution) {
		score += resolutionPoints
	}
	if containsFold(p.Standards.PreferredSources, q.Source) {
		score += sourcePoints
	}
	if containsFold(p.Standards.PreferredVideoCodecs, q.Codec) {
		score += codecPoints
	}
	if containsFold(p.Standards.PreferredAudioCodecs, q.Audio) {
		score += audioPoints
	}
	if containsFold(p.Standards.HDRFormats, q.HDRFormat) {
		score += hdrPoints
	}

	minMB, maxMB := p.sizeBounds(mediaType)
	if sizeMB > 0 {
		if minMB > 0 && sizeMB < minMB {
			violations = append(violations, fmt.Sprintf("Size %.0f MB below minimum %.0f MB", sizeMB, minMB))
		}
		if maxMB > 0 && sizeMB > maxMB {
			violations = append(violations, fmt.Sprintf("Size %.0f MB above maximum %.0f MB", sizeMB, maxMB))
		}
	}

	return score, violations
}

// IsAcceptable reports whether a quality name is allowed by this profile.
// An empty quality list accepts everything.
func (p *Profile) IsAcceptable(qualityName string) bool {
	if len(p.Qualities) == 0 {
		return true
	}
	return containsFold(p.Qualities, qualityName)
}

func (p *Profile) sizeBounds(mediaType types.MediaType) (float64, float64) {
	if p.Standards.MinSizeMB > 0 || p.Standards.MaxSizeMB > 0 {
		return p.Standards.MinSizeMB, p.Standards.MaxSizeMB
	}
	bounds, ok := defaultSizeBounds[mediaType]
	if !ok {
		return 0, 0
	}
	return bounds[0], bounds[1]
}

func containsFold(values []string, v string) bool {
	if v == "" {
		return false
	}
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}

// DefaultProfile returns an "Any" profile with no preferences: every
// release scores 0 quality points and nothing is rejected.
func DefaultProfile() Profile {
	return Profile{Name: "Any"}
}

// HD1080pProfile returns a profile preferring 1080p web and disc releases.
func HD1080pProfile() Profile {
	return Profile{
		Name:      "HD-1080p",
		Qualities: []string{"1080p", "720p"},
		Standards: Standards{
			PreferredResolutions: []string{"1080p"},
			PreferredSources:     []string{"BluRay", "WEB-DL"},
			PreferredVideoCodecs: []string{"x264", "H.264"},
		},
	}
}

// Ultra4KProfile returns a profile preferring 2160p HDR releases.
func Ultra4KProfile() Profile {
	return Profile{
		Name:      "Ultra-HD",
		Qualities: []string{"2160p", "1080p"},
		Standards: Standards{
			PreferredResolutions: []string{"2160p"},
			PreferredSources:     []string{"REMUX", "BluRay", "WEB-DL"},
			PreferredVideoCodecs: []string{"x265", "H.265"},
			HDRFormats:           []string{"DV", "HDR10+", "HDR10"},
		},
	}
}
