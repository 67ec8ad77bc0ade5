// Package agent runs the résumé to ranked listings pipeline.
package agent

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobmatchpro/backend/config"
	"github.com/jobmatchpro/backend/fusion"
	"github.com/jobmatchpro/backend/models"
	"github.com/jobmatchpro/backend/profile"
	"github.com/jobmatchpro/backend/query"
	"github.com/jobmatchpro/backend/sources"
	"github.com/jobmatchpro/backend/tools"
	"github.com/jobmatchpro/backend/utils"
)

// ErrDocumentTooShort is returned when a résumé yields too little text to
// build a profile from
var ErrDocumentTooShort = errors.New("could not read résumé content")

// JobAgent orchestrates profile extraction, query building, the fetch
// fan-out and fusion
type JobAgent struct {
	profileOpts   profile.Options
	queryOpts     query.Options
	fusionOpts    fusion.Options
	fetchers      []sources.Fetcher
	extractor     *utils.DocumentExtractor
	toolRegistry  *tools.ToolRegistry
	fetchTimeout  time.Duration
	maxConcurrent int
	logger        *zap.Logger
}

// NewJobAgent creates a new job matching agent
func NewJobAgent(cfg *config.Config, fetchers []sources.Fetcher, logger *zap.Logger) *JobAgent {
	a := &JobAgent{
		profileOpts: profile.Options{
			KeywordCap: cfg.Profile.KeywordCap,
			MaxTitles:  cfg.Profile.MaxTitles,
		},
		queryOpts: query.Options{
			TitlesPerQuery:   cfg.Query.TitlesPerQuery,
			KeywordsPerQuery: cfg.Query.KeywordsPerQuery,
			MaxQueries:       cfg.Query.MaxQueries,
			DefaultQuery:     cfg.Query.DefaultQuery,
		},
		fusionOpts: fusion.Options{
			ScoreCap:     cfg.Fusion.ScoreCap,
			KeywordBonus: cfg.Fusion.KeywordBonus,
			SourceBonus:  sources.Bonuses(cfg.Sources),
			MaxResults:   cfg.Fusion.MaxResults,
			MinResults:   cfg.Fusion.MinResults,
		},
		fetchers:      fetchers,
		extractor:     utils.NewDocumentExtractor(),
		fetchTimeout:  cfg.Fetch.Timeout,
		maxConcurrent: cfg.Fetch.MaxConcurrency,
		logger:        logger.With(zap.String("component", "agent")),
	}

	a.toolRegistry = tools.NewToolRegistry(
		tools.NewBuildProfileTool(a.profileOpts),
		tools.NewBuildQueriesTool(a.queryOpts),
		tools.NewSearchSourceTool(fetchers, a.fetchTimeout, logger),
		tools.NewFuseListingsTool(a.fusionOpts),
	)

	return a
}

// MatchInput represents the input for one matching request
type MatchInput struct {
	CVText        string `json:"cv_text,omitempty"`
	CVFileData    []byte `json:"-"`
	CVFileName    string `json:"-"`
	OnlyPaid      bool   `json:"only_paid,omitempty"`
	RecentMinutes int    `json:"recent_minutes,omitempty"`
}

// MatchOutput represents the result of one matching request
type MatchOutput struct {
	Results []models.Listing `json:"results"`
	Profile models.Profile   `json:"profile"`
	Queries []string         `json:"queries"`
	Stats   MatchStats       `json:"stats"`
}

// MatchStats provides statistics about the request
type MatchStats struct {
	Queries          int `json:"queries"`
	Fetches          int `json:"fetches"`
	EmptyFetches     int `json:"empty_fetches"`
	AbandonedFetches int `json:"abandoned_fetches"`
	ListingsFetched  int `json:"listings_fetched"`
	ListingsReturned int `json:"listings_returned"`
}

// AnalyzeOutput is the profile derived from a résumé and the queries built
// from it
type AnalyzeOutput struct {
	Profile models.Profile `json:"profile"`
	Queries []string       `json:"queries"`
}

// Analyze extracts the résumé text, builds the profile and its queries
// without contacting any source
func (a *JobAgent) Analyze(input MatchInput) (*AnalyzeOutput, error) {
	text := input.CVText
	if text == "" && len(input.CVFileData) > 0 {
		extracted, err := a.extractor.ExtractText(input.CVFileData, input.CVFileName)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text: %w", err)
		}
		text = extracted
	}

	if utils.CountNonSpace(text) < profile.MinTextChars {
		return nil, ErrDocumentTooShort
	}

	p := profile.Build(text, a.profileOpts)
	return &AnalyzeOutput{
		Profile: p,
		Queries: query.Build(p, a.queryOpts),
	}, nil
}

// Match runs the whole pipeline. Document problems are returned as
// *utils.DocumentError or ErrDocumentTooShort; source failures never are.
func (a *JobAgent) Match(ctx context.Context, input MatchInput) (*MatchOutput, error) {
	analysis, err := a.Analyze(input)
	if err != nil {
		return nil, err
	}
	p, queries := analysis.Profile, analysis.Queries

	a.logger.Info("profile built",
		zap.Strings("titles", p.Titles()),
		zap.Int("keywords", len(p.Keywords())),
		zap.Strings("queries", queries),
		zap.Int("recent_minutes", input.RecentMinutes),
		zap.Bool("only_paid", input.OnlyPaid))

	fetched, stats := a.fetchAll(ctx, queries)

	opts := a.fusionOpts
	opts.OnlyPaid = input.OnlyPaid
	results := fusion.Fuse(fetched, p, opts)

	stats.Queries = len(queries)
	stats.ListingsFetched = len(fetched)
	stats.ListingsReturned = len(results)
	a.logger.Info("match completed",
		zap.Int("fetched", stats.ListingsFetched),
		zap.Int("returned", stats.ListingsReturned),
		zap.Int("abandoned", stats.AbandonedFetches))

	return &MatchOutput{
		Results: results,
		Profile: p,
		Queries: queries,
		Stats:   stats,
	}, nil
}

// fetchAll runs every (query, source) pair concurrently. Results are merged
// in query order, then source order, whatever the completion order.
func (a *JobAgent) fetchAll(ctx context.Context, queries []string) ([]models.Listing, MatchStats) {
	slots := make([][]models.Listing, len(queries)*len(a.fetchers))
	var abandoned atomic.Int64

	var g errgroup.Group
	if a.maxConcurrent > 0 {
		g.SetLimit(a.maxConcurrent)
	}

	for qi, q := range queries {
		for si, f := range a.fetchers {
			slot := qi*len(a.fetchers) + si
			g.Go(func() error {
				listings, ok := a.fetchOne(ctx, f, q)
				if !ok {
					abandoned.Add(1)
				}
				slots[slot] = listings
				return nil
			})
		}
	}
	_ = g.Wait()

	stats := MatchStats{
		Fetches:          len(slots),
		AbandonedFetches: int(abandoned.Load()),
	}
	var all []models.Listing
	for _, listings := range slots {
		if len(listings) == 0 {
			stats.EmptyFetches++
		}
		all = append(all, listings...)
	}
	return all, stats
}

// fetchOne calls a fetcher under the per-fetch deadline; ok is false when
// the fetch was abandoned.
func (a *JobAgent) fetchOne(ctx context.Context, f sources.Fetcher, q string) ([]models.Listing, bool) {
	return sources.FetchWithin(ctx, f, q, 0, a.fetchTimeout, a.logger)
}

// Sources returns the names of the configured sources
func (a *JobAgent) Sources() []string {
	return sources.Names(a.fetchers)
}

// Tools returns the registry exposing the pipeline stages
func (a *JobAgent) Tools() *tools.ToolRegistry {
	return a.toolRegistry
}

// GetToolDefinitions returns the tool definitions for external use
func (a *JobAgent) GetToolDefinitions() []tools.Definition {
	return a.toolRegistry.Definitions()
}
