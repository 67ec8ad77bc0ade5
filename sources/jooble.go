package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/config"
	"github.com/jobmatchpro/backend/models"
	"github.com/jobmatchpro/backend/query"
)

// JoobleBaseScore is the initial score of a Jooble listing
const JoobleBaseScore = 0.7

// Jooble queries the Jooble REST API
type Jooble struct {
	base
	apiKey   string
	location string
}

type joobleRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
	Page     string `json:"page"`
}

type joobleJob struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Snippet  string `json:"snippet"`
	Salary   string `json:"salary"`
	Link     string `json:"link"`
	Updated  string `json:"updated"`
}

// NewJooble creates a Jooble fetcher
func NewJooble(cfg config.SourceConfig, client *http.Client, logger *zap.Logger) *Jooble {
	return &Jooble{
		base:     newBase(NameJooble, cfg, client, logger),
		apiKey:   cfg.APIKey,
		location: cfg.Location,
	}
}

// Fetch implements Fetcher
func (f *Jooble) Fetch(ctx context.Context, q string, limit int) []models.Listing {
	payload, err := json.Marshal(joobleRequest{
		Keywords: query.Plain(q),
		Location: f.location,
		Page:     "1",
	})
	if err != nil {
		return f.failed(q, err)
	}

	endpoint := f.baseURL + "/" + url.PathEscape(f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return f.failed(q, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := f.do(req)
	if err != nil {
		return f.failed(q, err)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(body, &resp); err != nil {
		return f.failed(q, fmt.Errorf("invalid json response: %w", err))
	}
	items, ok := resp["jobs"].([]interface{})
	if !ok {
		return f.failed(q, errors.New("response has no jobs array"))
	}

	limit = f.limit(limit)
	var listings []models.Listing
	for _, item := range items {
		job, err := decodeJoobleJob(item)
		if err != nil {
			f.logger.Debug("skipping record", zap.Error(err))
			continue
		}

		salary := htmlText(job.Salary)
		l := models.Listing{
			Title:       htmlText(job.Title),
			Company:     job.Company,
			Location:    job.Location,
			URL:         job.Link,
			Source:      f.name,
			MatchScore:  JoobleBaseScore,
			Snippet:     htmlText(job.Snippet),
			PublishedAt: models.OptionalString(job.Updated),
			IsPaid:      salary != "",
			SalaryText:  models.OptionalString(salary),
		}
		if skippable(l) {
			continue
		}

		listings = append(listings, l.Normalize())
		if limit > 0 && len(listings) == limit {
			break
		}
	}

	f.logger.Debug("fetched", zap.String("query", q), zap.Int("count", len(listings)))
	return listings
}

func decodeJoobleJob(item interface{}) (joobleJob, error) {
	var job joobleJob
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &job,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return job, err
	}
	if err := decoder.Decode(item); err != nil {
		return job, err
	}
	return job, nil
}
