package sources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/config"
	"github.com/jobmatchpro/backend/models"
	"github.com/jobmatchpro/backend/query"
)

// TalentBaseScore is the initial score of a Talent.com listing
const TalentBaseScore = 0.7

// TalentSnippet describes Talent.com listings, which carry no excerpt
const TalentSnippet = "Offre trouvée sur Talent.com."

// Talent scrapes the Talent.com Canada search page
type Talent struct {
	base
	location string
}

// NewTalent creates a Talent.com fetcher
func NewTalent(cfg config.SourceConfig, client *http.Client, logger *zap.Logger) *Talent {
	return &Talent{
		base:     newBase(NameTalent, cfg, client, logger),
		location: cfg.Location,
	}
}

// Fetch implements Fetcher
func (f *Talent) Fetch(ctx context.Context, q string, limit int) []models.Listing {
	pageURL := f.baseURL + "/jobs?k=" + query.Escape(q)
	if f.location != "" {
		pageURL += "&l=" + url.QueryEscape(f.location)
	}

	doc, err := f.document(ctx, pageURL)
	if err != nil {
		return f.failed(q, err)
	}

	limit = f.limit(limit)
	var listings []models.Listing
	doc.Find("div.card.card__job").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		href, _ := card.Find("a").First().Attr("href")

		l := models.Listing{
			Title:      text(card, "h2.card__job-title"),
			Company:    text(card, "div.card__job-empname-label"),
			Location:   text(card, "div.card__job-location-label"),
			URL:        f.resolve(href),
			Source:     f.name,
			MatchScore: TalentBaseScore,
			Snippet:    TalentSnippet,
			IsPaid:     true,
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
