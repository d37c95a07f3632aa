// Package release extracts quality metadata from release titles.
// Release names are adversarial, externally authored text, so every
// extractor here is total: unrecognized input degrades to the zero value
// instead of failing.
package release

import (
	"regexp"
	"strings"
)

// QualityInfo holds the quality signals extracted from a release title.
// The zero value means "nothing detected" and scores exactly 0.
type QualityInfo struct {
	Resolution string `json:"resolution,omitempty"` // "2160p", "1080p", "720p", "480p"
	Source     string `json:"source,omitempty"`     // "REMUX", "BluRay", "WEB-DL", "WEBRip", "HDTV", "DVDRip", "CAM"
	Codec      string `json:"codec,omitempty"`      // "x265", "x264", "H.265", "H.264", "XviD", "DivX", "VP9", "AV1"
	Audio      string `json:"audio,omitempty"`      // "TrueHD Atmos", "TrueHD", "DTS-HD MA", "DTS-HD", "DD+", "AC3", "DTS", "AAC", "FLAC", "MP3", "Opus"
	HDR        bool   `json:"hdr,omitempty"`
	HDRFormat  string `json:"hdrFormat,omitempty"` // "DV", "HDR10+", "HDR10", "HDR"
	Proper     bool   `json:"proper,omitempty"`
	Repack     bool   `json:"repack,omitempty"`
}

// rule maps a title pattern to an extracted value. Each field keeps one
// ordered table and the first matching rule wins, so precedence between
// overlapping tokens (REMUX vs BluRay, DDP vs DD5.1, Atmos vs TrueHD)
// lives here and nowhere else. Tables are append-only: new release-group
// conventions get new rows, existing rows keep their order.
type rule struct {
	value string
	re    *regexp.Regexp
}

var resolutionRules = []rule{
	{"2160p", regexp.MustCompile(`(?i)\b(2160p|4k)\b`)},
	{"1080p", regexp.MustCompile(`(?i)\b1080p\b`)},
	{"720p", regexp.MustCompile(`(?i)\b720p\b`)},
	{"480p", regexp.MustCompile(`(?i)\b480p\b`)},
}

// REMUX outranks BluRay so "BD-Remux" resolves to REMUX even though it
// also matches the BluRay aliases.
var sourceRules = []rule{
	{"REMUX", regexp.MustCompile(`(?i)\bremux\b|\bbd[-. ]?remux\b`)},
	{"BluRay", regexp.MustCompile(`(?i)blu[-. ]?ray|\bbd[-. ]?remux\b|\bbdrip\b|\bbrrip\b`)},
	{"WEB-DL", regexp.MustCompile(`(?i)\bweb[-. ]?dl\b`)},
	{"WEBRip", regexp.MustCompile(`(?i)\bweb[-. ]?rip\b`)},
	{"HDTV", regexp.MustCompile(`(?i)\bhdtv\b`)},
	{"DVDRip", regexp.MustCompile(`(?i)\bdvd[-. ]?rip\b`)},
	{"CAM", regexp.MustCompile(`(?i)\b(cam|hdcam)\b`)},
}

var codecRules = []rule{
	{"x265", regexp.MustCompile(`(?i)\bx[.]?265\b|\bhevc\b`)},
	{"x264", regexp.MustCompile(`(?i)\bx[.]?264\b`)},
	{"H.265", regexp.MustCompile(`(?i)\bh[.]?265\b`)},
	{"H.264", regexp.MustCompile(`(?i)\bh[.]?264\b|\bavc\b`)},
	{"XviD", regexp.MustCompile(`(?i)\bxvid\b`)},
	{"DivX", regexp.MustCompile(`(?i)\bdivx\b`)},
	{"VP9", regexp.MustCompile(`(?i)\bvp9\b`)},
	{"AV1", regexp.MustCompile(`(?i)\bav1\b`)},
}

var audioRules = []rule{
	{"TrueHD Atmos", regexp.MustCompile(`(?i)\btrue[-. ]?hd\b.*\batmos\b|\batmos\b.*\btrue[-. ]?hd\b`)},
	{"TrueHD", regexp.MustCompile(`(?i)\btrue[-. ]?hd\b`)},
	{"DTS-HD MA", regexp.MustCompile(`(?i)\bdts[-. ]?hd[-. ]?ma\b`)},
	{"DTS-HD", regexp.MustCompile(`(?i)\bdts[-. ]?hd\b`)},
	{"DD+", regexp.MustCompile(`(?i)\bddp|dd\+|\be[-. ]?ac[-. ]?3\b`)},
	{"AC3", regexp.MustCompile(`(?i)\bac[-. ]?3\b|\bdd5[.]?1\b`)},
	{"DTS", regexp.MustCompile(`(?i)\bdts\b`)},
	{"AAC", regexp.MustCompile(`(?i)\baac\b`)},
	{"FLAC", regexp.MustCompile(`(?i)\bflac\b`)},
	{"MP3", regexp.MustCompile(`(?i)\bmp3\b`)},
	{"Opus", regexp.MustCompile(`(?i)\bopus\b`)},
}

var hdrFormatRules = []rule{
	{"DV", regexp.MustCompile(`(?i)\bdolby[-. ]?vision\b|\bdovi\b|\bdv\b`)},
	{"HDR10+", regexp.MustCompile(`(?i)\bhdr10\+`)},
	{"HDR10", regexp.MustCompile(`(?i)\bhdr10\b`)},
	{"HDR", regexp.MustCompile(`(?i)\bhdr\b`)},
}

// Whole-word boolean tags. The boundaries matter: "Improperly" and
// "Repacker" must not trigger.
var (
	properRe = regexp.MustCompile(`(?i)\bproper\b`)
	repackRe = regexp.MustCompile(`(?i)\brepack\b`)
	hdrRe    = regexp.MustCompile(`(?i)\bhdr(10\+?)?\b`)
)

func extract(title string, rules []rule) string {
	for _, r := range rules {
		if r.re.MatchString(title) {
			return r.value
		}
	}
	return ""
}

// ExtractResolution returns the detected resolution, or "" when none.
func ExtractResolution(title string) string { return extract(title, resolutionRules) }

// ExtractSource returns the detected source, or "" when none.
func ExtractSource(title string) string { return extract(title, sourceRules) }

// ExtractCodec returns the detected video codec, or "" when none.
func ExtractCodec(title string) string { return extract(title, codecRules) }

// ExtractAudio returns the detected audio codec, or "" when none.
func ExtractAudio(title string) string { return extract(title, audioRules) }

// ExtractHDRFormat returns the most specific HDR format tag, or "" when none.
func ExtractHDRFormat(title string) string { return extract(title, hdrFormatRules) }

// HasHDR reports whether the title carries an explicit whole-word HDR tag.
func HasHDR(title string) bool { return hdrRe.MatchString(title) }

// HasProper reports whether the title is tagged PROPER.
func HasProper(title string) bool { return properRe.MatchString(title) }

// HasRepack reports whether the title is tagged REPACK.
func HasRepack(title string) bool { return repackRe.MatchString(title) }

// Parse extracts all quality signals from a release title.
func Parse(title string) QualityInfo {
	format := ExtractHDRFormat(title)
	return QualityInfo{
		Resolution: ExtractResolution(title),
		Source:     ExtractSource(title),
		Codec:      ExtractCodec(title),
		Audio:      ExtractAudio(title),
		HDR:        format != "" || HasHDR(title),
		HDRFormat:  format,
		Proper:     HasProper(title),
		Repack:     HasRepack(title),
	}
}

// StripQualitySignals blanks every recognized quality marker in a title.
// Multi-token spellings like WEB-DL, DD5.1, and E-AC3 fall apart into
// unrecognized fragments once punctuation is normalized away, so they
// must be removed while the title is still intact.
func StripQualitySignals(title string) string {
	for _, rules := range [][]rule{resolutionRules, sourceRules, codecRules, audioRules, hdrFormatRules} {
		for _, r := range rules {
			title = r.re.ReplaceAllString(title, " ")
		}
	}
	title = properRe.ReplaceAllString(title, " ")
	title = repackRe.ReplaceAllString(title, " ")
	return hdrRe.ReplaceAllString(title, " ")
}

// Tokens that are quality markers on their own but never match a full
// rule in isolation (e.g. "Atmos" without TrueHD, the "MA" in DTS-HD MA).
var auxQualityTokens = map[string]bool{
	"atmos": true,
	"ma":    true,
	"uhd":   true,
	"hd":    true,
	"sd":    true,
	"10bit": true,
	"8bit":  true,
}

// IsQualityToken reports whether a single normalized title token is a
// quality indicator rather than part of the release name. Title relevance
// scoring uses this so a correctly tagged release is never penalized for
// its tags.
func IsQualityToken(token string) bool {
	if auxQualityTokens[strings.ToLower(token)] {
		return true
	}
	for _, rules := range [][]rule{resolutionRules, sourceRules, codecRules, audioRules, hdrFormatRules} {
		for _, r := range rules {
			if r.re.MatchString(token) {
				return true
			}
		}
	}
	return properRe.MatchString(token) || repackRe.MatchString(token)
}
