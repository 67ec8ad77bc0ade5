// Package profile derives a coarse candidate profile from résumé text.
package profile

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jobmatchpro/backend/models"
)

// DefaultTitle is used when neither a title line nor a keyword is found
const DefaultTitle = "Profil expérimenté"

// MinTextChars is the least non-whitespace text a résumé must yield
const MinTextChars = 30

const (
	minTitleLength = 4
	maxTitleLength = 120
)

var tokenPattern = regexp.MustCompile(`[A-Za-zÀ-ÖØ-öø-ÿ]{4,}`)

// Options tunes profile extraction
type Options struct {
	// KeywordCap bounds the number of ranked keywords
	KeywordCap int
	// MaxTitles bounds the number of candidate titles
	MaxTitles int
}

// DefaultOptions returns the options used when no configuration is given
func DefaultOptions() Options {
	return Options{KeywordCap: 25, MaxTitles: 3}
}

// Build extracts titles and ranked keywords from document text.
// The returned profile always carries at least one title.
func Build(text string, opts Options) models.Profile {
	if opts.KeywordCap <= 0 || opts.MaxTitles <= 0 {
		def := DefaultOptions()
		if opts.KeywordCap <= 0 {
			opts.KeywordCap = def.KeywordCap
		}
		if opts.MaxTitles <= 0 {
			opts.MaxTitles = def.MaxTitles
		}
	}

	text = norm.NFC.String(text)

	keywords := Keywords(text, opts.KeywordCap)
	titles := Titles(text, opts.MaxTitles)
	if len(titles) == 0 {
		titles = []string{fallbackTitle(keywords)}
	}

	return models.NewProfile(titles, keywords)
}

// Keywords returns lowercase tokens ranked by descending frequency. Ties keep
// the order in which tokens first appear.
func Keywords(text string, limit int) []string {
	counts := make(map[string]int)
	var order []string

	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if IsStopword(token) {
			continue
		}
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	return order
}

// Titles returns distinct trimmed lines that mention a role term
func Titles(text string, limit int) []string {
	seen := make(map[string]struct{})
	var titles []string

	for _, line := range lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		n := utf8.RuneCountInString(line)
		if n < minTitleLength || n > maxTitleLength {
			continue
		}
		if !mentionsRole(strings.ToLower(line)) {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}

		seen[line] = struct{}{}
		titles = append(titles, line)
		if limit > 0 && len(titles) == limit {
			break
		}
	}

	return titles
}

// lines splits text on every line boundary, including bare carriage
// returns and the Unicode line and paragraph separators.
func lines(text string) []string {
	return strings.FieldsFunc(text, isLineBreak)
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func mentionsRole(lower string) bool {
	for _, term := range roleTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func fallbackTitle(keywords []string) string {
	switch {
	case len(keywords) >= 2:
		return capitalize(keywords[0]) + " / " + capitalize(keywords[1])
	case len(keywords) == 1:
		return capitalize(keywords[0])
	default:
		return DefaultTitle
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
