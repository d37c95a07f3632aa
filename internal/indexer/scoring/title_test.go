package scoring

import "testing"

func TestScoreTitleMatchEmptyQuery(t *testing.T) {
	if got := ScoreTitleMatch("Movie.2023.1080p.WEB-DL", ""); got != 0.0 {
		t.Errorf("ScoreTitleMatch with empty query = %f, want 0.0", got)
	}
}

func TestScoreTitleMatchIgnoresQualityTokens(t *testing.T) {
	plain := ScoreTitleMatch("Firefly", "Firefly")

	// Multi-token markers like WEB-DL and DD5.1 shatter into fragments
	// under normalization and must not count as extra title tokens.
	tagged := []string{
		"Firefly.1080p.BluRay.REMUX.TrueHD.Atmos.x265.HDR10.PROPER",
		"Firefly.2002.1080p.WEB-DL.x264",
		"Firefly.2002.1080p.BluRay.DD5.1.x264",
		"Firefly.2002.2160p.WEBRip.E-AC3.x265",
	}
	for _, title := range tagged {
		if got := ScoreTitleMatch(title, "Firefly"); got != plain {
			t.Errorf("quality tags changed the title score for %q: got %f, plain %f", title, got, plain)
		}
	}
}

func TestScoreTitleMatchExactBeatsSuperset(t *testing.T) {
	exact := ScoreTitleMatch("Firefly.2002.1080p.BluRay.x264", "Firefly")
	superset := ScoreTitleMatch("The.Firefly.Experience.2019.1080p.WEB-DL.x264", "Firefly")

	if exact <= superset {
		t.Errorf("exact title score %f should beat superset title score %f", exact, superset)
	}
}

func TestScoreTitleMatchSequentialBeatsScattered(t *testing.T) {
	sequential := ScoreTitleMatch("Breaking.Bad.S01E01.720p.HDTV.x264", "Breaking Bad")
	scattered := ScoreTitleMatch("Bad.Day.Breaking.News.720p.HDTV.x264", "Breaking Bad")

	if sequential <= scattered {
		t.Errorf("sequential match %f should beat scattered match %f", sequential, scattered)
	}
}

func TestScoreTitleMatchUnrelatedTitle(t *testing.T) {
	got := ScoreTitleMatch("Completely.Different.Show.1080p.WEB-DL", "Breaking Bad")
	if got != 0.0 {
		t.Errorf("unrelated title score = %f, want 0.0", got)
	}
}

func TestScoreTitleMatchPartialOverlap(t *testing.T) {
	got := ScoreTitleMatch("Bad.Santa.2003.1080p.BluRay.x264", "Breaking Bad")
	if got <= 0.0 || got >= partialMatchMax {
		t.Errorf("partial overlap score = %f, want between 0 and %f", got, partialMatchMax)
	}
}
