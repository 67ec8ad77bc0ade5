package sources

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/config"
)

const adzunaResponse = `{
  "count": 3,
  "results": [
    {
      "title": "<strong>Développeur</strong> Go",
      "company": {"display_name": "Acme"},
      "location": {"display_name": "Montréal, Québec"},
      "redirect_url": "https://www.adzuna.ca/land/ad/1",
      "description": "Go, Kubernetes et <b>PostgreSQL</b>",
      "created": "2024-03-01T10:00:00Z",
      "salary_min": 70000,
      "salary_max": 90000
    },
    "not an object",
    {
      "title": "Analyste",
      "redirect_url": "https://www.adzuna.ca/land/ad/2"
    }
  ]
}`

func TestAdzunaFetch(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(adzunaResponse))
	}))
	t.Cleanup(srv.Close)

	cfg := config.SourceConfig{BaseURL: srv.URL, MaxResults: 20, AppID: "id", APIKey: "key", Country: "ca"}
	listings := NewAdzuna(cfg, srv.Client(), zap.NewNop()).Fetch(context.Background(), "developpeur+go", 5)

	require.NotNil(t, got)
	assert.Equal(t, "/ca/search/1", got.URL.Path)
	assert.Equal(t, "id", got.URL.Query().Get("app_id"))
	assert.Equal(t, "key", got.URL.Query().Get("app_key"))
	assert.Equal(t, "developpeur go", got.URL.Query().Get("what"))
	assert.Equal(t, "5", got.URL.Query().Get("results_per_page"))

	require.Len(t, listings, 2)
	first := listings[0]
	assert.Equal(t, "Développeur Go", first.Title)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "Montréal, Québec", first.Location)
	assert.Equal(t, "Go, Kubernetes et PostgreSQL", first.Snippet)
	assert.Equal(t, NameAdzuna, first.Source)
	assert.Equal(t, AdzunaBaseScore, first.MatchScore)
	assert.True(t, first.IsPaid)
	require.NotNil(t, first.SalaryText)
	assert.Equal(t, "70000 - 90000", *first.SalaryText)

	second := listings[1]
	assert.False(t, second.IsPaid)
	assert.Nil(t, second.SalaryText)
	assert.Nil(t, second.PublishedAt)
}

func TestAdzunaFetchBadResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"results": []}`},
		{name: "invalid json", status: http.StatusOK, body: `{"results": [`},
		{name: "missing results", status: http.StatusOK, body: `{"error": "bad key"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body, nil)
			f := NewAdzuna(config.SourceConfig{BaseURL: srv.URL}, srv.Client(), zap.NewNop())

			assert.Empty(t, f.Fetch(context.Background(), "agent", 0))
		})
	}
}

func TestJoobleFetch(t *testing.T) {
	var (
		path    string
		payload joobleRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		_, _ = w.Write([]byte(`{
  "totalCount": 4,
  "jobs": [
    {"title": "Infirmière", "company": "CIUSSS", "location": "Québec", "snippet": "&nbsp;Soins <b>intensifs</b>", "salary": "35 $/h", "link": "https://jooble.org/desc/1", "updated": "2024-03-02T00:00:00", "id": 123},
    {"title": {"nested": true}},
    42,
    {"title": 1234, "link": "https://jooble.org/desc/2"}
  ]
}`))
	}))
	t.Cleanup(srv.Close)

	cfg := config.SourceConfig{BaseURL: srv.URL, MaxResults: 20, APIKey: "secret", Location: "Canada"}
	listings := NewJooble(cfg, srv.Client(), zap.NewNop()).Fetch(context.Background(), "infirmiere+soins", 0)

	assert.Equal(t, "/secret", path)
	assert.Equal(t, "infirmiere soins", payload.Keywords)
	assert.Equal(t, "Canada", payload.Location)

	require.Len(t, listings, 2)
	first := listings[0]
	assert.Equal(t, "Infirmière", first.Title)
	assert.Equal(t, "Soins intensifs", first.Snippet)
	assert.Equal(t, NameJooble, first.Source)
	assert.True(t, first.IsPaid)
	require.NotNil(t, first.SalaryText)
	assert.Equal(t, "35 $/h", *first.SalaryText)

	assert.Equal(t, "1234", listings[1].Title)
	assert.False(t, listings[1].IsPaid)
}

func TestJoobleFetchBadResponses(t *testing.T) {
	for name, body := range map[string]string{
		"not json": "<html>",
		"no jobs":  `{"totalCount": 0}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := serve(t, http.StatusOK, body, nil)
			f := NewJooble(config.SourceConfig{BaseURL: srv.URL, APIKey: "k"}, srv.Client(), zap.NewNop())

			assert.Empty(t, f.Fetch(context.Background(), "agent", 0))
		})
	}
}
