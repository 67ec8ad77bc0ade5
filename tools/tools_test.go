package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/fusion"
	"github.com/jobmatchpro/backend/models"
	"github.com/jobmatchpro/backend/profile"
	"github.com/jobmatchpro/backend/query"
	"github.com/jobmatchpro/backend/sources"
)

type stubFetcher struct {
	name     string
	listings []models.Listing
	gotLimit int
}

func (s *stubFetcher) Name() string { return s.name }

func (s *stubFetcher) Fetch(_ context.Context, _ string, limit int) []models.Listing {
	s.gotLimit = limit
	return s.listings
}

func decodeResult(t *testing.T, raw json.RawMessage, data interface{}) ToolResult {
	t.Helper()
	var res ToolResult
	require.NoError(t, json.Unmarshal(raw, &res))
	if res.Success && data != nil {
		require.NoError(t, json.Unmarshal(res.Data, data))
	}
	return res
}

func TestRegistryListsSortedDefinitions(t *testing.T) {
	r := NewToolRegistry(
		NewFuseListingsTool(fusion.DefaultOptions()),
		NewBuildProfileTool(profile.DefaultOptions()),
		NewBuildQueriesTool(query.DefaultOptions()),
		NewSearchSourceTool(nil, time.Second, zap.NewNop()),
	)

	var names []string
	for _, def := range r.Definitions() {
		names = append(names, def.Name)
		assert.NotEmpty(t, def.Description)
		assert.Equal(t, "object", def.Parameters["type"])
	}
	assert.Equal(t, []string{"build_profile", "build_queries", "fuse_listings", "search_source"}, names)

	_, ok := r.Get("build_profile")
	assert.True(t, ok)
	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestBuildProfileTool(t *testing.T) {
	tool := NewBuildProfileTool(profile.DefaultOptions())

	raw, err := tool.Execute(context.Background(), json.RawMessage(`{"text":"Technicien informatique N2\nSupport informatique et réseau pour PME"}`))
	require.NoError(t, err)

	var p models.Profile
	res := decodeResult(t, raw, &p)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Technicien informatique N2", p.Titles()[0])
	assert.Equal(t, "informatique", p.Keywords()[0])
}

func TestBuildProfileToolRejectsShortText(t *testing.T) {
	tool := NewBuildProfileTool(profile.DefaultOptions())

	raw, err := tool.Execute(context.Background(), json.RawMessage(`{"text":"   trop court   "}`))
	require.NoError(t, err)

	res := decodeResult(t, raw, nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "30")
}

func TestBuildProfileToolRejectsUnknownFields(t *testing.T) {
	raw, err := NewBuildProfileTool(profile.DefaultOptions()).Execute(context.Background(), json.RawMessage(`{"cv":"x"}`))
	require.NoError(t, err)

	res := decodeResult(t, raw, nil)
	assert.False(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Error, "invalid input"))
}

func TestBuildQueriesTool(t *testing.T) {
	tool := NewBuildQueriesTool(query.DefaultOptions())

	raw, err := tool.Execute(context.Background(), json.RawMessage(`{"profile":{"titles":["Agent de sécurité"],"keywords":["sécurité","surveillance"]}}`))
	require.NoError(t, err)

	var out BuildQueriesOutput
	res := decodeResult(t, raw, &out)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, []string{"agent+de+sécurité+sécurité+surveillance"}, out.Queries)
}

func TestSearchSourceTool(t *testing.T) {
	stub := &stubFetcher{name: sources.NameJobBank, listings: []models.Listing{{Title: "Caissier", Source: sources.NameJobBank}}}
	tool := NewSearchSourceTool([]sources.Fetcher{stub}, time.Second, zap.NewNop())

	raw, err := tool.Execute(context.Background(), json.RawMessage(`{"source":"JobBank","query":"caissier","limit":3}`))
	require.NoError(t, err)

	var out SearchSourceOutput
	res := decodeResult(t, raw, &out)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 3, stub.gotLimit)
	require.Len(t, out.Listings, 1)
	assert.Equal(t, "Caissier", out.Listings[0].Title)
}

func TestSearchSourceToolErrors(t *testing.T) {
	tool := NewSearchSourceTool([]sources.Fetcher{&stubFetcher{name: "A"}}, time.Second, zap.NewNop())

	for name, input := range map[string]string{
		"unknown source": `{"source":"B","query":"x"}`,
		"missing query":  `{"source":"A","query":" "}`,
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := tool.Execute(context.Background(), json.RawMessage(input))
			require.NoError(t, err)
			assert.False(t, decodeResult(t, raw, nil).Success)
		})
	}
}

func TestSearchSourceToolEmptyIsArray(t *testing.T) {
	tool := NewSearchSourceTool([]sources.Fetcher{&stubFetcher{name: "A"}}, 0, zap.NewNop())

	raw, err := tool.Execute(context.Background(), json.RawMessage(`{"source":"A","query":"x"}`))
	require.NoError(t, err)

	var res ToolResult
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.Contains(t, string(res.Data), `"listings":[]`)
}

func TestFuseListingsTool(t *testing.T) {
	tool := NewFuseListingsTool(fusion.DefaultOptions())

	input := `{
		"profile": {"titles": ["Dev"], "keywords": ["golang"]},
		"only_paid": true,
		"listings": [
			{"title": "Dev", "company": "Acme", "url": "http://x", "source": "A", "match_score": 0.5, "salary_text": "50k"},
			{"title": "Dev", "company": "Acme", "url": "http://x", "source": "A", "match_score": 0.7, "salary_text": "60k"},
			{"title": "Golang dev", "source": "A", "match_score": 0.6, "salary_text": "  "}
		]
	}`

	raw, err := tool.Execute(context.Background(), json.RawMessage(input))
	require.NoError(t, err)

	var out FuseListingsOutput
	res := decodeResult(t, raw, &out)
	require.True(t, res.Success, res.Error)
	require.Len(t, out.Listings, 1)
	assert.Equal(t, 0.5, out.Listings[0].MatchScore)
	assert.Equal(t, "50k", *out.Listings[0].SalaryText)
}

type stuckFetcher struct {
	release chan struct{}
}

func (stuckFetcher) Name() string { return "Stuck" }

func (s stuckFetcher) Fetch(context.Context, string, int) []models.Listing {
	<-s.release
	return []models.Listing{{Title: "late"}}
}

func TestSearchSourceToolAbandonsStuckSource(t *testing.T) {
	stuck := stuckFetcher{release: make(chan struct{})}
	t.Cleanup(func() { close(stuck.release) })
	tool := NewSearchSourceTool([]sources.Fetcher{stuck}, 50*time.Millisecond, zap.NewNop())

	start := time.Now()
	raw, err := tool.Execute(context.Background(), json.RawMessage(`{"source":"Stuck","query":"x"}`))
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	var out SearchSourceOutput
	res := decodeResult(t, raw, &out)
	require.True(t, res.Success, res.Error)
	assert.Empty(t, out.Listings)
	assert.NotNil(t, out.Listings)
}
