package sources

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/config"
	"github.com/jobmatchpro/backend/utils"
)

// FromConfig creates the enabled fetchers in a fixed order: Indeed, Job
// Bank, Talent.com, Adzuna, Jooble. That order decides which duplicate
// survives fusion.
func FromConfig(cfg *config.Config, logger *zap.Logger) []Fetcher {
	client := utils.NewHTTPClient(cfg.Fetch.Timeout, cfg.Fetch.UserAgent, cfg.Fetch.AcceptLanguage)
	return New(cfg.Sources, client, logger)
}

// New creates the enabled fetchers sharing one HTTP client
func New(cfg config.SourcesConfig, client *http.Client, logger *zap.Logger) []Fetcher {
	var fetchers []Fetcher
	if cfg.Indeed.Enabled {
		fetchers = append(fetchers, NewIndeed(cfg.Indeed, client, logger))
	}
	if cfg.JobBank.Enabled {
		fetchers = append(fetchers, NewJobBank(cfg.JobBank, client, logger))
	}
	if cfg.Talent.Enabled {
		fetchers = append(fetchers, NewTalent(cfg.Talent, client, logger))
	}
	if cfg.Adzuna.Enabled {
		fetchers = append(fetchers, NewAdzuna(cfg.Adzuna, client, logger))
	}
	if cfg.Jooble.Enabled {
		fetchers = append(fetchers, NewJooble(cfg.Jooble, client, logger))
	}
	return fetchers
}

// Bonuses returns the per-source score bonus keyed by source name
func Bonuses(cfg config.SourcesConfig) map[string]float64 {
	bonuses := make(map[string]float64)
	for name, src := range map[string]config.SourceConfig{
		NameIndeed:  cfg.Indeed,
		NameJobBank: cfg.JobBank,
		NameTalent:  cfg.Talent,
		NameAdzuna:  cfg.Adzuna,
		NameJooble:  cfg.Jooble,
	} {
		if src.ScoreBonus != 0 {
			bonuses[name] = src.ScoreBonus
		}
	}
	return bonuses
}

// Lookup finds a fetcher by source name
func Lookup(fetchers []Fetcher, name string) (Fetcher, bool) {
	for _, f := range fetchers {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// Names lists the source names of the fetchers
func Names(fetchers []Fetcher) []string {
	names := make([]string, 0, len(fetchers))
	for _, f := range fetchers {
		names = append(names, f.Name())
	}
	return names
}
