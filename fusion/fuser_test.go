package fusion

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobmatchpro/backend/models"
)

func listing(title, company, source string, score float64) models.Listing {
	return models.Listing{
		Title:      title,
		Company:    company,
		Location:   models.PlaceholderLocation,
		URL:        "http://x/" + title,
		Source:     source,
		MatchScore: score,
	}
}

func TestFuseDeduplicatesFirstWins(t *testing.T) {
	first := models.Listing{Title: "Dev", Company: "Acme", URL: "http://x", Source: "A", MatchScore: 0.5, Snippet: "first"}
	second := models.Listing{Title: "Dev", Company: "Acme", URL: "http://x", Source: "A", MatchScore: 0.9, Snippet: "second"}

	got := Fuse([]models.Listing{first, second}, models.NewProfile([]string{"Dev"}, nil), DefaultOptions())

	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Snippet)
}

func TestFuseKeepsDistinctSources(t *testing.T) {
	a := models.Listing{Title: "Dev", Company: "Acme", URL: "http://x", Source: "A"}
	b := models.Listing{Title: "Dev", Company: "Acme", URL: "http://x", Source: "B"}

	got := Fuse([]models.Listing{a, b}, models.Profile{}, DefaultOptions())

	assert.Len(t, got, 2)
}

func TestScoreAddsKeywordAndSourceBonus(t *testing.T) {
	opts := DefaultOptions()
	opts.SourceBonus = map[string]float64{"Indeed": 0.02}

	l := models.Listing{
		Title:      "Technicien Support",
		Snippet:    "Support réseau et informatique",
		Source:     "Indeed",
		MatchScore: 0.8,
	}

	got := Score(l, []string{"support", "réseau", "support", "python"}, opts)

	assert.InDelta(t, 0.84, got, 1e-9)
}

func TestScoreNeverExceedsCapOrDecreases(t *testing.T) {
	opts := DefaultOptions()
	keywords := []string{"golang", "docker", "kubernetes", "linux", "aws"}

	for _, base := range []float64{0, 0.1, 0.333, 0.7, 0.75, 0.8, 0.98, 0.99} {
		l := models.Listing{Title: "golang docker kubernetes linux aws", MatchScore: base}

		got := Score(l, keywords, opts)

		assert.GreaterOrEqual(t, got, base, "base %v", base)
		assert.LessOrEqual(t, got, opts.ScoreCap, "base %v", base)
	}
}

func TestScoreClampsOutOfRangeInput(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, opts.ScoreCap, Score(models.Listing{MatchScore: 1.5}, nil, opts))
	assert.Equal(t, 0.0, Score(models.Listing{MatchScore: -0.3}, nil, opts))
}

func TestFuseSortsDescendingStable(t *testing.T) {
	in := []models.Listing{
		listing("a", "x", "S", 0.5),
		listing("b", "x", "S", 0.7),
		listing("c", "x", "S", 0.5),
		listing("d", "x", "S", 0.9),
	}

	got := Fuse(in, models.Profile{}, DefaultOptions())

	var titles []string
	for i, l := range got {
		titles = append(titles, l.Title)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].MatchScore, l.MatchScore)
		}
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, titles)
}

func TestFuseOnlyPaid(t *testing.T) {
	salary := "25 $ / heure"
	paid := listing("paid", "x", "S", 0.5)
	paid.SalaryText = &salary
	paid.IsPaid = true
	flagged := listing("flagged", "x", "S", 0.9)
	flagged.IsPaid = true

	opts := DefaultOptions()
	opts.OnlyPaid = true
	got := Fuse([]models.Listing{paid, flagged, listing("free", "x", "S", 0.7)}, models.Profile{}, opts)

	require.Len(t, got, 1)
	assert.Equal(t, "paid", got[0].Title)
	assert.NotNil(t, got[0].SalaryText)
}

func TestFuseBounds(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "below floor", count: 12, want: 12},
		{name: "between floor and cap", count: 33, want: 33},
		{name: "above cap", count: 75, want: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in []models.Listing
			for i := 0; i < tt.count; i++ {
				in = append(in, listing(fmt.Sprintf("job-%d", i), "x", "S", 0.5))
			}

			got := Fuse(in, models.Profile{}, DefaultOptions())

			assert.Len(t, got, tt.want)
		})
	}
}

func TestFuseKeepsIdentityKeysUnique(t *testing.T) {
	var in []models.Listing
	for i := 0; i < 30; i++ {
		in = append(in, listing(fmt.Sprintf("job-%d", i%7), "x", "S", float64(i%5)/10))
	}

	got := Fuse(in, models.NewProfile([]string{"Job"}, []string{"job"}), DefaultOptions())

	seen := make(map[models.ListingKey]bool)
	for _, l := range got {
		assert.False(t, seen[l.Key()], "duplicate %v", l.Key())
		seen[l.Key()] = true
	}
	assert.Len(t, got, 7)
}
