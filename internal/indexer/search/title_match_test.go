package search

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Breaking Bad", "breaking bad"},
		{"Breaking.Bad.S01E01", "breaking bad s01e01"},
		{"Schitt's Creek", "schitts creek"},
		{"Schitts Creek", "schitts creek"},
		{"M*A*S*H", "m a s h"},
		{"  Spaced   Out  ", "spaced out"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.expected {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTitlesMatch(t *testing.T) {
	tests := []struct {
		title    string
		query    string
		expected bool
	}{
		{"Breaking Bad", "breaking bad", true},
		{"Schitt's Creek", "Schitts Creek", true},
		{"The Office", "The Office US", false},
		{"Firefly", "The Firefly Experience", false},
	}

	for _, tt := range tests {
		t.Run(tt.title+" vs "+tt.query, func(t *testing.T) {
			if got := TitlesMatch(tt.title, tt.query); got != tt.expected {
				t.Errorf("TitlesMatch(%q, %q) = %v, want %v", tt.title, tt.query, got, tt.expected)
			}
		})
	}
}

func TestCalculateTitleSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		title1   string
		title2   string
		expected float64
	}{
		{"identical", "Breaking Bad", "Breaking Bad", 1.0},
		{"disjoint", "Breaking Bad", "The Wire", 0.0},
		{"both empty", "", "", 1.0},
		{"one empty", "Breaking Bad", "", 0.0},
		{"half overlap", "Breaking Bad", "Breaking Away", 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTitleSimilarity(tt.title1, tt.title2)
			if got < tt.expected-1e-9 || got > tt.expected+1e-9 {
				t.Errorf("CalculateTitleSimilarity(%q, %q) = %f, want %f", tt.title1, tt.title2, got, tt.expected)
			}
		})
	}
}
