package models

import "strings"

// Placeholders used when a source cannot supply a required field
const (
	PlaceholderTitle    = "title unavailable"
	PlaceholderCompany  = "employer unspecified"
	PlaceholderLocation = "location unspecified"
)

// MaxSnippetLength bounds the listing excerpt, in runes
const MaxSnippetLength = 300

// Listing represents one normalized job offer from an external source
type Listing struct {
	Title       string  `json:"title" example:"Technicien informatique N2"`
	Company     string  `json:"company" example:"Acme inc."`
	Location    string  `json:"location" example:"Montréal, QC"`
	URL         string  `json:"url" example:"https://ca.indeed.com/viewjob?jk=123"`
	Source      string  `json:"source" example:"Indeed"`
	MatchScore  float64 `json:"match_score" example:"0.84"`
	Snippet     string  `json:"snippet"`
	PublishedAt *string `json:"published_at"`
	IsPaid      bool    `json:"is_paid"`
	SalaryText  *string `json:"salary_text"`
}

// ListingKey identifies a listing for deduplication
type ListingKey struct {
	Title   string
	Company string
	URL     string
	Source  string
}

// Key returns the deduplication identity of the listing
func (l Listing) Key() ListingKey {
	return ListingKey{
		Title:   l.Title,
		Company: l.Company,
		URL:     l.URL,
		Source:  l.Source,
	}
}

// Normalize trims every field, fills placeholders for missing required
// fields, bounds the snippet and drops empty optional fields.
func (l Listing) Normalize() Listing {
	l.Title = orPlaceholder(l.Title, PlaceholderTitle)
	l.Company = orPlaceholder(l.Company, PlaceholderCompany)
	l.Location = orPlaceholder(l.Location, PlaceholderLocation)
	l.URL = strings.TrimSpace(l.URL)
	l.Source = strings.TrimSpace(l.Source)
	l.Snippet = truncateRunes(strings.TrimSpace(l.Snippet), MaxSnippetLength)
	l.PublishedAt = normalizeOptional(l.PublishedAt)
	l.SalaryText = normalizeOptional(l.SalaryText)

	if l.MatchScore < 0 {
		l.MatchScore = 0
	}

	return l
}

// OptionalString returns nil for blank strings
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	return OptionalString(*s)
}

func orPlaceholder(s, placeholder string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return placeholder
	}
	return s
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
