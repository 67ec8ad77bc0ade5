// Package fusion merges listings from every source into one ranked result.
package fusion

import (
	"math"
	"sort"
	"strings"

	"github.com/jobmatchpro/backend/models"
)

// Options tunes scoring and bounds of the fused result
type Options struct {
	// ScoreCap is the highest score a listing may carry, below 1.0
	ScoreCap float64
	// KeywordBonus is added once per distinct profile keyword found
	KeywordBonus float64
	// SourceBonus is added to every listing of the named source
	SourceBonus map[string]float64
	// OnlyPaid keeps listings with salary information only
	OnlyPaid bool
	// MaxResults truncates the ranked output
	MaxResults int
	// MinResults is the floor under which the output is returned untruncated
	MinResults int
}

// DefaultOptions returns the options used when no configuration is given
func DefaultOptions() Options {
	return Options{
		ScoreCap:     0.99,
		KeywordBonus: 0.01,
		MaxResults:   40,
		MinResults:   20,
	}
}

// Fuse deduplicates, scores, ranks, filters and bounds listings. The input
// order decides which duplicate survives and how equal scores are ordered.
func Fuse(listings []models.Listing, p models.Profile, opts Options) []models.Listing {
	unique := Dedupe(listings)

	keywords := p.Keywords()
	for i := range unique {
		unique[i].MatchScore = Score(unique[i], keywords, opts)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].MatchScore > unique[j].MatchScore
	})

	if opts.OnlyPaid {
		unique = onlyPaid(unique)
	}

	return bound(unique, opts.MinResults, opts.MaxResults)
}

// Dedupe keeps the first listing of every identity key
func Dedupe(listings []models.Listing) []models.Listing {
	seen := make(map[models.ListingKey]struct{}, len(listings))
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		key := l.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Score returns the enriched score of a listing. It never lowers a score
// that is already within the cap and never exceeds the cap.
func Score(l models.Listing, keywords []string, opts Options) float64 {
	haystack := strings.ToLower(l.Title + " " + l.Snippet)

	matched := 0
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		if strings.Contains(haystack, kw) {
			matched++
		}
	}

	bonus := opts.KeywordBonus*float64(matched) + opts.SourceBonus[l.Source]
	score := math.Max(l.MatchScore, round2(l.MatchScore+bonus))

	if score > opts.ScoreCap {
		score = opts.ScoreCap
	}
	if score < 0 {
		score = 0
	}
	return score
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func onlyPaid(listings []models.Listing) []models.Listing {
	out := listings[:0]
	for _, l := range listings {
		if l.SalaryText != nil {
			out = append(out, l)
		}
	}
	return out
}

func bound(listings []models.Listing, floor, limit int) []models.Listing {
	if len(listings) < floor || limit <= 0 || len(listings) <= limit {
		return listings
	}
	return listings[:limit]
}
