// Package sources fetches job listings from external providers.
//
// Every fetcher absorbs its own failures: network errors, unexpected
// statuses and unparseable responses are logged and yield no listings.
package sources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/config"
	"github.com/jobmatchpro/backend/models"
)

// Source names as reported in listings
const (
	NameIndeed  = "Indeed"
	NameJobBank = "JobBank"
	NameTalent  = "Talent.com"
	NameAdzuna  = "Adzuna"
	NameJooble  = "Jooble"
)

const maxBodyBytes = 5 * 1024 * 1024

// Fetcher retrieves listings for one query from one provider. Fetch never
// fails: any problem results in an empty slice. A limit of zero or less
// uses the fetcher's configured maximum.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, query string, limit int) []models.Listing
}

// base carries what every fetcher needs to talk to its provider
type base struct {
	name       string
	baseURL    string
	maxResults int
	client     *http.Client
	logger     *zap.Logger
}

func newBase(name string, cfg config.SourceConfig, client *http.Client, logger *zap.Logger) base {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = http.DefaultClient
	}
	return base{
		name:       name,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxResults: cfg.MaxResults,
		client:     client,
		logger:     logger.With(zap.String("source", name)),
	}
}

// Name returns the source name
func (b *base) Name() string {
	return b.name
}

func (b *base) limit(requested int) int {
	if requested <= 0 || (b.maxResults > 0 && requested > b.maxResults) {
		return b.maxResults
	}
	return requested
}

// do sends the request and returns the body of a 200 response
func (b *base) do(req *http.Request) ([]byte, error) {
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

// document fetches an HTML page
func (b *base) document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	body, err := b.do(req)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return doc, nil
}

func (b *base) failed(query string, err error) []models.Listing {
	b.logger.Warn("fetch failed", zap.String("query", query), zap.Error(err))
	return nil
}

// resolve turns an href into an absolute URL on the provider host
func (b *base) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}

	root, err := url.Parse(b.baseURL + "/")
	if err != nil {
		return href
	}
	return root.ResolveReference(ref).String()
}

// text returns the whitespace-collapsed text of the first match
func text(s *goquery.Selection, selector string) string {
	return collapse(s.Find(selector).First().Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// htmlText strips markup from an HTML fragment
func htmlText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapse(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapse(fragment)
	}
	return collapse(doc.Text())
}

// skippable reports a record that carries nothing to identify it
func skippable(l models.Listing) bool {
	return strings.TrimSpace(l.Title) == "" && strings.TrimSpace(l.URL) == ""
}
