package sources

import (
	"context"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/config"
	"github.com/jobmatchpro/backend/models"
	"github.com/jobmatchpro/backend/query"
)

// IndeedBaseScore is the initial score of an Indeed listing
const IndeedBaseScore = 0.8

// Indeed scrapes the Indeed Canada search page
type Indeed struct {
	base
}

// NewIndeed creates an Indeed fetcher
func NewIndeed(cfg config.SourceConfig, client *http.Client, logger *zap.Logger) *Indeed {
	return &Indeed{base: newBase(NameIndeed, cfg, client, logger)}
}

// Fetch implements Fetcher
func (f *Indeed) Fetch(ctx context.Context, q string, limit int) []models.Listing {
	pageURL := f.baseURL + "/jobs?q=" + query.Escape(q) + "&sort=date"

	doc, err := f.document(ctx, pageURL)
	if err != nil {
		return f.failed(q, err)
	}

	limit = f.limit(limit)
	var listings []models.Listing
	doc.Find("a.tapItem").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := text(card, "h2.jobTitle span")
		if title == "" {
			title = text(card, "h2.jobTitle")
		}
		href, _ := card.Attr("href")

		l := models.Listing{
			Title:       title,
			Company:     text(card, "span.companyName"),
			Location:    text(card, "div.companyLocation"),
			URL:         f.resolve(href),
			Source:      f.name,
			MatchScore:  IndeedBaseScore,
			Snippet:     text(card, "div.job-snippet"),
			PublishedAt: models.OptionalString(text(card, "span.date")),
			IsPaid:      true,
			SalaryText:  models.OptionalString(text(card, "div.metadata.salary-snippet-container")),
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
