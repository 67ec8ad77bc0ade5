// Package query turns a profile into bounded search query strings.
package query

import (
	"net/url"
	"strings"

	"github.com/jobmatchpro/backend/models"
)

// Separator joins words inside a query string
const Separator = "+"

// DefaultQuery is returned when the profile yields no query
const DefaultQuery = "emploi+canada"

// Options bounds query construction
type Options struct {
	TitlesPerQuery   int
	KeywordsPerQuery int
	MaxQueries       int
	DefaultQuery     string
}

// DefaultOptions returns the options used when no configuration is given
func DefaultOptions() Options {
	return Options{
		TitlesPerQuery:   2,
		KeywordsPerQuery: 3,
		MaxQueries:       2,
		DefaultQuery:     DefaultQuery,
	}
}

// Build returns one query per leading title, each suffixed with the top
// keywords. Duplicates collapse and the result is never empty.
func Build(p models.Profile, opts Options) []string {
	if opts.DefaultQuery == "" {
		opts.DefaultQuery = DefaultQuery
	}

	titles := p.Titles()
	if opts.TitlesPerQuery > 0 && len(titles) > opts.TitlesPerQuery {
		titles = titles[:opts.TitlesPerQuery]
	}

	keywords := p.Keywords()
	if opts.KeywordsPerQuery >= 0 && len(keywords) > opts.KeywordsPerQuery {
		keywords = keywords[:opts.KeywordsPerQuery]
	}
	suffix := strings.Join(keywords, Separator)

	seen := make(map[string]struct{})
	var queries []string
	for _, title := range titles {
		base := Join(title)
		if base == "" {
			continue
		}

		q := base
		if suffix != "" {
			q += Separator + suffix
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
	}

	if len(queries) == 0 {
		queries = []string{opts.DefaultQuery}
	}
	if opts.MaxQueries > 0 && len(queries) > opts.MaxQueries {
		queries = queries[:opts.MaxQueries]
	}
	return queries
}

// Join lowercases text and joins its whitespace separated words
func Join(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), Separator)
}

// Words splits a query string back into its words
func Words(q string) []string {
	var words []string
	for _, w := range strings.Split(q, Separator) {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Escape renders a query for an HTML search URL: every word is escaped and
// the separator is kept as the space encoding.
func Escape(q string) string {
	words := Words(q)
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return strings.Join(words, Separator)
}

// Plain renders a query as space separated words for JSON APIs
func Plain(q string) string {
	return strings.Join(Words(q), " ")
}
