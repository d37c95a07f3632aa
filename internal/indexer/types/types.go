// Package types contains shared type definitions for indexer packages.
package types

import (
	"time"

	"github.com/mydia/mydia/internal/release"
)

// MediaType represents the type of media being searched.
type MediaType string

const (
	MediaTypeMovie   MediaType = "movie"
	MediaTypeEpisode MediaType = "episode"
)

// Privacy represents indexer privacy level.
type Privacy string

const (
	PrivacyPublic      Privacy = "public"
	PrivacySemiPrivate Privacy = "semi-private"
	PrivacyPrivate     Privacy = "private"
)

// SearchResult is one raw hit scraped from an indexer. The fetch executor
// produces these; the decision engine only reads them.
type SearchResult struct {
	Title       string              `json:"title"`
	Size        int64               `json:"size"` // bytes
	Seeders     int                 `json:"seeders"`
	Leechers    int                 `json:"leechers"`
	DownloadURL string              `json:"downloadUrl"`
	Indexer     string              `json:"indexer"`
	Quality     release.QualityInfo `json:"quality"`
	PublishedAt time.Time           `json:"publishedAt,omitempty"`
}

// SizeMB returns the result size in megabytes.
func (r *SearchResult) SizeMB() float64 {
	return float64(r.Size) / (1024 * 1024)
}

// HasQuality reports whether any quality signal was extracted from the title.
func (r *SearchResult) HasQuality() bool {
	return r.Quality != (release.QualityInfo{})
}
