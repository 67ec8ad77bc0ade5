package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/config"
	"github.com/jobmatchpro/backend/models"
	"github.com/jobmatchpro/backend/query"
)

// AdzunaBaseScore is the initial score of an Adzuna listing
const AdzunaBaseScore = 0.75

// Adzuna queries the Adzuna job search API
type Adzuna struct {
	base
	appID   string
	appKey  string
	country string
}

// NewAdzuna creates an Adzuna fetcher
func NewAdzuna(cfg config.SourceConfig, client *http.Client, logger *zap.Logger) *Adzuna {
	country := cfg.Country
	if country == "" {
		country = "ca"
	}
	return &Adzuna{
		base:    newBase(NameAdzuna, cfg, client, logger),
		appID:   cfg.AppID,
		appKey:  cfg.APIKey,
		country: country,
	}
}

// Fetch implements Fetcher
func (f *Adzuna) Fetch(ctx context.Context, q string, limit int) []models.Listing {
	limit = f.limit(limit)

	params := url.Values{}
	params.Set("app_id", f.appID)
	params.Set("app_key", f.appKey)
	params.Set("what", query.Plain(q))
	params.Set("content-type", "application/json")
	if limit > 0 {
		params.Set("results_per_page", strconv.Itoa(limit))
	}
	endpoint := fmt.Sprintf("%s/%s/search/1?%s", f.baseURL, url.PathEscape(f.country), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return f.failed(q, err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := f.do(req)
	if err != nil {
		return f.failed(q, err)
	}
	if !gjson.ValidBytes(body) {
		return f.failed(q, errors.New("invalid json response"))
	}

	results := gjson.GetBytes(body, "results")
	if !results.IsArray() {
		return f.failed(q, errors.New("response has no results array"))
	}

	var listings []models.Listing
	results.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}

		salary := adzunaSalary(item)
		l := models.Listing{
			Title:       htmlText(item.Get("title").String()),
			Company:     item.Get("company.display_name").String(),
			Location:    item.Get("location.display_name").String(),
			URL:         item.Get("redirect_url").String(),
			Source:      f.name,
			MatchScore:  AdzunaBaseScore,
			Snippet:     htmlText(item.Get("description").String()),
			PublishedAt: models.OptionalString(item.Get("created").String()),
			IsPaid:      salary != "",
			SalaryText:  models.OptionalString(salary),
		}
		if skippable(l) {
			return true
		}

		listings = append(listings, l.Normalize())
		return limit <= 0 || len(listings) < limit
	})

	f.logger.Debug("fetched", zap.String("query", q), zap.Int("count", len(listings)))
	return listings
}

func adzunaSalary(item gjson.Result) string {
	lo, hi := item.Get("salary_min"), item.Get("salary_max")
	switch {
	case lo.Exists() && hi.Exists() && lo.Float() != hi.Float():
		return fmt.Sprintf("%.0f - %.0f", lo.Float(), hi.Float())
	case lo.Exists():
		return fmt.Sprintf("%.0f", lo.Float())
	case hi.Exists():
		return fmt.Sprintf("%.0f", hi.Float())
	default:
		return ""
	}
}
