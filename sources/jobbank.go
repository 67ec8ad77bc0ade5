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

// JobBankBaseScore is the initial score of a Job Bank listing
const JobBankBaseScore = 0.7

// JobBankSnippet describes Job Bank listings, which carry no excerpt
const JobBankSnippet = "Offre trouvée sur JobBank Canada."

// JobBank scrapes the Government of Canada Job Bank search page
type JobBank struct {
	base
}

// NewJobBank creates a Job Bank fetcher
func NewJobBank(cfg config.SourceConfig, client *http.Client, logger *zap.Logger) *JobBank {
	return &JobBank{base: newBase(NameJobBank, cfg, client, logger)}
}

// Fetch implements Fetcher
func (f *JobBank) Fetch(ctx context.Context, q string, limit int) []models.Listing {
	pageURL := f.baseURL + "/jobsearch/jobsearch?searchstring=" + query.Escape(q)

	doc, err := f.document(ctx, pageURL)
	if err != nil {
		return f.failed(q, err)
	}

	limit = f.limit(limit)
	var listings []models.Listing
	doc.Find("article.resultJobItem").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		link := card.Find("a.title").First()
		href, _ := link.Attr("href")

		l := models.Listing{
			Title:       collapse(link.Text()),
			Company:     text(card, "li.business"),
			Location:    text(card, "li.location"),
			URL:         f.resolve(href),
			Source:      f.name,
			MatchScore:  JobBankBaseScore,
			Snippet:     JobBankSnippet,
			PublishedAt: models.OptionalString(text(card, "li.date")),
			IsPaid:      true,
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
