package release

// Score contributions per detected component. The extraction tables in
// parser.go decide WHAT was detected; this table decides what it is worth.
// Keeping the two apart lets the token vocabulary grow without touching
// the scoring formula.
var (
	resolutionScores = map[string]int{
		"2160p": 1000,
		"1080p": 800,
		"720p":  500,
		"480p":  200,
	}

	sourceScores = map[string]int{
		"REMUX":  500,
		"BluRay": 450,
		"WEB-DL": 400,
		"WEBRip": 350,
		"HDTV":   250,
		"DVDRip": 150,
		"CAM":    0,
	}

	codecScores = map[string]int{
		"x265":  150,
		"H.265": 150,
		"x264":  100,
		"H.264": 100,
	}

	audioScores = map[string]int{
		"TrueHD Atmos": 200,
		"TrueHD":       150,
		"DTS-HD MA":    150,
		"DTS-HD":       130,
		"DD+":          120,
		"DTS":          100,
		"AC3":          100,
		"FLAC":         70,
		"AAC":          60,
		"Opus":         50,
		"MP3":          30,
	}

	hdrFormatScores = map[string]int{
		"DV":     100,
		"HDR10+": 70,
		"HDR10":  55,
		"HDR":    40,
	}
)

const (
	// Codecs recognized by the extractor but without a dedicated score
	// (XviD, DivX, VP9, AV1) share one baseline.
	otherCodecScore = 50

	properBonus = 25
	repackBonus = 15
)

// QualityScore converts extracted quality info into an additive integer
// score. Components are independent and an absent component contributes 0,
// so the zero QualityInfo scores exactly 0 and upgrading any single
// component never lowers the total.
func QualityScore(q QualityInfo) int {
	score := resolutionScores[q.Resolution] +
		sourceScores[q.Source] +
		audioScores[q.Audio] +
		hdrFormatScores[q.HDRFormat]

	if q.Codec != "" {
		if s, ok := codecScores[q.Codec]; ok {
			score += s
		} else {
			score += otherCodecScore
		}
	}

	if q.Proper {
		score += properBonus
	}
	if q.Repack {
		score += repackBonus
	}

	return score
}
