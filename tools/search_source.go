package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/models"
	"github.com/jobmatchpro/backend/sources"
)

// SearchSourceTool runs one query against one listing source
type SearchSourceTool struct {
	fetchers []sources.Fetcher
	timeout  time.Duration
	logger   *zap.Logger
}

// NewSearchSourceTool creates a new source search tool
func NewSearchSourceTool(fetchers []sources.Fetcher, timeout time.Duration, logger *zap.Logger) *SearchSourceTool {
	return &SearchSourceTool{fetchers: fetchers, timeout: timeout, logger: logger}
}

func (t *SearchSourceTool) Name() string {
	return "search_source"
}

func (t *SearchSourceTool) Description() string {
	return fmt.Sprintf(`Search one job listing source with a query built by build_queries.
Available sources: %s.
An unreachable source returns an empty list.`, strings.Join(sources.Names(t.fetchers), ", "))
}

func (t *SearchSourceTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"source": map[string]interface{}{
				"type":        "string",
				"description": "Source name",
				"enum":        sources.Names(t.fetchers),
			},
			"query": stringProperty(`Search query, words joined with "+"`),
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum number of listings, source default when omitted",
			},
		},
		"required": []string{"source", "query"},
	}
}

// SearchSourceInput represents the input for the search tool
type SearchSourceInput struct {
	Source string `json:"source"`
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
}

// SearchSourceOutput represents the output of the search tool
type SearchSourceOutput struct {
	Source   string           `json:"source"`
	Query    string           `json:"query"`
	Listings []models.Listing `json:"listings"`
}

func (t *SearchSourceTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in SearchSourceInput
	if err := decodeInput(input, &in); err != nil {
		return NewErrorResult(err.Error())
	}
	if strings.TrimSpace(in.Query) == "" {
		return NewErrorResult("query is required")
	}

	fetcher, ok := sources.Lookup(t.fetchers, in.Source)
	if !ok {
		return NewErrorResult(fmt.Sprintf("unknown source %q", in.Source))
	}

	listings, _ := sources.FetchWithin(ctx, fetcher, in.Query, in.Limit, t.timeout, t.logger)
	if listings == nil {
		listings = []models.Listing{}
	}
	t.logger.Debug("source searched",
		zap.String("source", in.Source),
		zap.String("query", in.Query),
		zap.Int("count", len(listings)))

	return NewSuccessResult(SearchSourceOutput{
		Source:   fetcher.Name(),
		Query:    in.Query,
		Listings: listings,
	})
}
