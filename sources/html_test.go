package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/config"
	"github.com/jobmatchpro/backend/models"
)

const indeedPage = `<html><body>
<a class="tapItem" href="/viewjob?jk=1">
  <h2 class="jobTitle"><span>Technicien   informatique N2</span></h2>
  <span class="companyName">Acme inc.</span>
  <div class="companyLocation">Montréal, QC</div>
  <span class="date">Il y a 2 jours</span>
  <div class="job-snippet"><ul>
    <li>Support</li>
    <li>réseau</li>
  </ul></div>
  <div class="metadata salary-snippet-container">25 $ - 30 $ de l'heure</div>
</a>
<a class="tapItem" href="https://ca.indeed.com/viewjob?jk=2">
  <h2 class="jobTitle">Analyste</h2>
</a>
<a class="tapItem"></a>
<a class="tapItem" href="/viewjob?jk=3"><h2 class="jobTitle">Agent</h2></a>
</body></html>`

const jobBankPage = `<html><body>
<article class="resultJobItem">
  <a class="title" href="/jobsearch/jobposting/42">Caissier</a>
  <ul><li class="business">Épicerie Tremblay</li><li class="location">Québec (QC)</li><li class="date">12 mars</li></ul>
</article>
<article class="resultJobItem"><ul><li class="business">Sans titre</li></ul></article>
</body></html>`

const talentPage = `<html><body>
<div class="card card__job">
  <a href="/view?id=7"><h2 class="card__job-title">Chauffeur livreur</h2></a>
  <div class="card__job-empname-label">Transports XYZ</div>
  <div class="card__job-location-label">Laval</div>
</div>
<div class="card card__job"><h2 class="card__job-title">Magasinier</h2></div>
</body></html>`

func serve(t *testing.T, status int, body string, seen *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = r.URL.RequestURI()
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func sourceConfig(baseURL string) config.SourceConfig {
	return config.SourceConfig{Enabled: true, BaseURL: baseURL, MaxResults: 10, Location: "Canada"}
}

func TestIndeedFetch(t *testing.T) {
	var uri string
	srv := serve(t, http.StatusOK, indeedPage, &uri)
	f := NewIndeed(sourceConfig(srv.URL), srv.Client(), zap.NewNop())

	got := f.Fetch(context.Background(), "technicien+informatique+n2", 0)

	assert.Equal(t, "/jobs?q=technicien+informatique+n2&sort=date", uri)
	require.Len(t, got, 3)

	first := got[0]
	assert.Equal(t, "Technicien informatique N2", first.Title)
	assert.Equal(t, "Acme inc.", first.Company)
	assert.Equal(t, "Montréal, QC", first.Location)
	assert.Equal(t, srv.URL+"/viewjob?jk=1", first.URL)
	assert.Equal(t, NameIndeed, first.Source)
	assert.Equal(t, IndeedBaseScore, first.MatchScore)
	assert.Equal(t, "Support réseau", first.Snippet)
	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, "Il y a 2 jours", *first.PublishedAt)
	require.NotNil(t, first.SalaryText)
	assert.True(t, first.IsPaid)

	second := got[1]
	assert.Equal(t, "Analyste", second.Title)
	assert.Equal(t, "https://ca.indeed.com/viewjob?jk=2", second.URL)
	assert.Equal(t, models.PlaceholderCompany, second.Company)
	assert.Equal(t, models.PlaceholderLocation, second.Location)
	assert.Nil(t, second.PublishedAt)
	assert.Nil(t, second.SalaryText)

	assert.Equal(t, "Agent", got[2].Title)
}

func TestIndeedFetchRespectsLimit(t *testing.T) {
	srv := serve(t, http.StatusOK, indeedPage, nil)
	f := NewIndeed(sourceConfig(srv.URL), srv.Client(), zap.NewNop())

	assert.Len(t, f.Fetch(context.Background(), "agent", 1), 1)
}

func TestJobBankFetch(t *testing.T) {
	var uri string
	srv := serve(t, http.StatusOK, jobBankPage, &uri)
	f := NewJobBank(sourceConfig(srv.URL), srv.Client(), zap.NewNop())

	got := f.Fetch(context.Background(), "caissier", 0)

	assert.Equal(t, "/jobsearch/jobsearch?searchstring=caissier", uri)
	require.Len(t, got, 1)
	assert.Equal(t, "Caissier", got[0].Title)
	assert.Equal(t, "Épicerie Tremblay", got[0].Company)
	assert.Equal(t, srv.URL+"/jobsearch/jobposting/42", got[0].URL)
	assert.Equal(t, JobBankSnippet, got[0].Snippet)
	assert.Equal(t, JobBankBaseScore, got[0].MatchScore)
}

func TestTalentFetch(t *testing.T) {
	var uri string
	srv := serve(t, http.StatusOK, talentPage, &uri)
	f := NewTalent(sourceConfig(srv.URL), srv.Client(), zap.NewNop())

	got := f.Fetch(context.Background(), "chauffeur+livreur", 0)

	assert.Equal(t, "/jobs?k=chauffeur+livreur&l=Canada", uri)
	require.Len(t, got, 2)
	assert.Equal(t, "Chauffeur livreur", got[0].Title)
	assert.Equal(t, srv.URL+"/view?id=7", got[0].URL)
	assert.Equal(t, NameTalent, got[0].Source)
	assert.Equal(t, TalentSnippet, got[0].Snippet)
	assert.Equal(t, "Magasinier", got[1].Title)
	assert.Equal(t, "", got[1].URL)
}

func TestHTMLFetchersDegradeToEmpty(t *testing.T) {
	constructors := map[string]func(config.SourceConfig, *http.Client, *zap.Logger) Fetcher{
		NameIndeed:  func(c config.SourceConfig, h *http.Client, l *zap.Logger) Fetcher { return NewIndeed(c, h, l) },
		NameJobBank: func(c config.SourceConfig, h *http.Client, l *zap.Logger) Fetcher { return NewJobBank(c, h, l) },
		NameTalent:  func(c config.SourceConfig, h *http.Client, l *zap.Logger) Fetcher { return NewTalent(c, h, l) },
	}

	for name, build := range constructors {
		t.Run(name+" server error", func(t *testing.T) {
			srv := serve(t, http.StatusInternalServerError, indeedPage, nil)
			f := build(sourceConfig(srv.URL), srv.Client(), zap.NewNop())

			assert.Empty(t, f.Fetch(context.Background(), "agent", 0))
		})

		t.Run(name+" unreachable", func(t *testing.T) {
			srv := httptest.NewServer(http.NotFoundHandler())
			srv.Close()
			f := build(sourceConfig(srv.URL), http.DefaultClient, zap.NewNop())

			assert.Empty(t, f.Fetch(context.Background(), "agent", 0))
		})

		t.Run(name+" timeout", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			}))
			t.Cleanup(srv.Close)
			f := build(sourceConfig(srv.URL), srv.Client(), zap.NewNop())

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			assert.Empty(t, f.Fetch(ctx, "agent", 0))
		})
	}
}

func TestResolve(t *testing.T) {
	b := newBase("x", config.SourceConfig{BaseURL: "https://www.jobbank.gc.ca/"}, nil, nil)

	assert.Equal(t, "https://www.jobbank.gc.ca/a/b?c=1", b.resolve("/a/b?c=1"))
	assert.Equal(t, "https://other.example/x", b.resolve("https://other.example/x"))
	assert.Equal(t, "", b.resolve("  "))
}

func TestHTMLText(t *testing.T) {
	assert.Equal(t, "Technicien support réseau", htmlText("<b>Technicien</b>&nbsp;support\n réseau"))
	assert.Equal(t, "plain text", htmlText("  plain   text "))
}
