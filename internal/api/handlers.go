package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mydia/mydia/internal/decisioning"
	"github.com/mydia/mydia/internal/indexer/cardigann"
	"github.com/mydia/mydia/internal/indexer/scoring"
	"github.com/mydia/mydia/internal/indexer/search"
	"github.com/mydia/mydia/internal/indexer/types"
	"github.com/mydia/mydia/internal/library/quality"
	"github.com/mydia/mydia/internal/release"
)

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// validateDefinition parses the request body as a Cardigann YAML
// definition and reports the first problem found, if any.
func (s *Server) validateDefinition(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	def, err := cardigann.ParseDefinition(body)
	if err != nil {
		var defErr *cardigann.DefinitionError
		if errors.As(err, &defErr) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{
				"valid": false,
				"code":  defErr.Code,
				"error": defErr.Error(),
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"valid":   true,
		"id":      def.ID,
		"name":    def.Name,
		"privacy": def.GetPrivacy(),
		"login":   def.HasLogin(),
	})
}

// resultPayload is one search result as submitted by API clients. Quality
// is derived from the title server-side.
type resultPayload struct {
	Title       string `json:"title"`
	Size        int64  `json:"size"`
	Seeders     int    `json:"seeders"`
	Leechers    int    `json:"leechers"`
	DownloadURL string `json:"downloadUrl"`
	Indexer     string `json:"indexer"`
}

func (p *resultPayload) toSearchResult() types.SearchResult {
	return types.SearchResult{
		Title:       p.Title,
		Size:        p.Size,
		Seeders:     p.Seeders,
		Leechers:    p.Leechers,
		DownloadURL: p.DownloadURL,
		Indexer:     p.Indexer,
		Quality:     release.Parse(p.Title),
	}
}

type scoreRequest struct {
	Result    resultPayload `json:"result"`
	Query     string        `json:"query"`
	MediaType string        `json:"mediaType"`
	Profile   string        `json:"profile"`
}

type rankRequest struct {
	Results            []resultPayload           `json:"results"`
	Filter             decisioning.FilterOptions `json:"filter"`
	PreferredQualities []string                  `json:"preferredQualities"`
	Query              string                    `json:"query"`
	MediaType          string                    `json:"mediaType"`
	Profile            string                    `json:"profile"`
}

// profileByName maps an optional profile name to a built-in profile.
func profileByName(name string) (*quality.Profile, error) {
	switch name {
	case "":
		return nil, nil
	case "default":
		p := quality.DefaultProfile()
		return &p, nil
	case "hd-1080p":
		p := quality.HD1080pProfile()
		return &p, nil
	case "ultra-4k":
		p := quality.Ultra4KProfile()
		return &p, nil
	default:
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unknown profile: "+name)
	}
}

func (s *Server) scoreResult(c echo.Context) error {
	var req scoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Result.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "result.title is required")
	}

	profile, err := profileByName(req.Profile)
	if err != nil {
		return err
	}

	rec := scoring.ScoreResultWithBreakdown(req.Result.toSearchResult(), scoring.Options{
		Profile:     profile,
		MediaType:   types.MediaType(req.MediaType),
		SearchQuery: req.Query,
	})

	return c.JSON(http.StatusOK, rec)
}

func (s *Server) rankResults(c echo.Context) error {
	opts, results, err := bindRankRequest(c)
	if err != nil {
		return err
	}

	ranked := decisioning.RankAll(results, opts)
	decisionID := uuid.NewString()

	s.logger.Info().
		Str("decision_id", decisionID).
		Int("candidates", len(results)).
		Int("ranked", len(ranked)).
		Msg("ranked search results")

	if query := opts.Scoring.SearchQuery; query != "" && len(ranked) > 0 {
		top := ranked[0].Result
		s.logger.Debug().
			Str("decision_id", decisionID).
			Str("title", top.Title).
			Bool("exactTitle", search.TitlesMatch(top.Title, query)).
			Float64("titleSimilarity", search.CalculateTitleSimilarity(top.Title, query)).
			Msg("top ranked result")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"decisionId": decisionID,
		"results":    ranked,
	})
}

func (s *Server) selectBestResult(c echo.Context) error {
	opts, results, err := bindRankRequest(c)
	if err != nil {
		return err
	}

	best := decisioning.SelectBestResult(results, opts)
	decisionID := uuid.NewString()

	s.logger.Info().
		Str("decision_id", decisionID).
		Int("candidates", len(results)).
		Bool("selected", best != nil).
		Msg("selected best result")

	return c.JSON(http.StatusOK, map[string]any{
		"decisionId": decisionID,
		"selected":   best,
	})
}

func bindRankRequest(c echo.Context) (decisioning.Options, []types.SearchResult, error) {
	var req rankRequest
	if err := c.Bind(&req); err != nil {
		return decisioning.Options{}, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	profile, err := profileByName(req.Profile)
	if err != nil {
		return decisioning.Options{}, nil, err
	}

	results := make([]types.SearchResult, 0, len(req.Results))
	for _, p := range req.Results {
		results = append(results, p.toSearchResult())
	}

	opts := decisioning.Options{
		Filter:             req.Filter,
		PreferredQualities: req.PreferredQualities,
		Scoring: scoring.Options{
			Profile:     profile,
			MediaType:   types.MediaType(req.MediaType),
			SearchQuery: req.Query,
		},
	}
	return opts, results, nil
}
