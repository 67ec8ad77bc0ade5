package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultConfigName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultConfigName = "jobmatch"

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Profile ProfileConfig `mapstructure:"profile"`
	Query   QueryConfig   `mapstructure:"query"`
	Fusion  FusionConfig  `mapstructure:"fusion"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Sources SourcesConfig `mapstructure:"sources"`
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	Debug        bool     `mapstructure:"debug"`
	AllowOrigins []string `mapstructure:"allow_origins"`
	MaxUploadMB  int64    `mapstructure:"max_upload_mb"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}

// ProfileConfig tunes keyword and title extraction
type ProfileConfig struct {
	KeywordCap int `mapstructure:"keyword_cap"`
	MaxTitles  int `mapstructure:"max_titles"`
}

// QueryConfig tunes search query construction
type QueryConfig struct {
	TitlesPerQuery   int    `mapstructure:"titles_per_query"`
	KeywordsPerQuery int    `mapstructure:"keywords_per_query"`
	MaxQueries       int    `mapstructure:"max_queries"`
	DefaultQuery     string `mapstructure:"default_query"`
}

// FusionConfig tunes scoring and result bounds
type FusionConfig struct {
	ScoreCap     float64 `mapstructure:"score_cap"`
	KeywordBonus float64 `mapstructure:"keyword_bonus"`
	MaxResults   int     `mapstructure:"max_results"`
	MinResults   int     `mapstructure:"min_results"`
}

// FetchConfig configures outbound requests to listing sources
type FetchConfig struct {
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	UserAgent      string        `mapstructure:"user_agent"`
	AcceptLanguage string        `mapstructure:"accept_language"`
}

// SourceConfig configures a single listing source
type SourceConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	BaseURL    string  `mapstructure:"base_url"`
	MaxResults int     `mapstructure:"max_results"`
	ScoreBonus float64 `mapstructure:"score_bonus"`

	// API sources only
	AppID      string `mapstructure:"app_id"`
	APIKey     string `mapstructure:"api_key"`
	APIKeyFile string `mapstructure:"api_key_file"`
	Country    string `mapstructure:"country"`
	Location   string `mapstructure:"location"`
}

// SourcesConfig lists every known listing source
type SourcesConfig struct {
	Indeed  SourceConfig `mapstructure:"indeed"`
	JobBank SourceConfig `mapstructure:"jobbank"`
	Talent  SourceConfig `mapstructure:"talent"`
	Adzuna  SourceConfig `mapstructure:"adzuna"`
	Jooble  SourceConfig `mapstructure:"jooble"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment. An explicit cfgFile must exist; the default file is optional.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("JOBMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Plain names kept for deployments that already export them
	bindings := map[string]string{
		"server.port":            "PORT",
		"server.debug":           "DEBUG",
		"log.json":               "LOG_JSON",
		"sources.adzuna.app_id":  "ADZUNA_APP_ID",
		"sources.adzuna.api_key": "ADZUNA_APP_KEY",
		"sources.jooble.api_key": "JOOBLE_API_KEY",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "JOBMATCH_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.resolveSecrets(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("server.max_upload_mb", 10)

	v.SetDefault("log.json", false)

	v.SetDefault("profile.keyword_cap", 25)
	v.SetDefault("profile.max_titles", 3)

	v.SetDefault("query.titles_per_query", 2)
	v.SetDefault("query.keywords_per_query", 3)
	v.SetDefault("query.max_queries", 2)
	v.SetDefault("query.default_query", "emploi+canada")

	v.SetDefault("fusion.score_cap", 0.99)
	v.SetDefault("fusion.keyword_bonus", 0.01)
	v.SetDefault("fusion.max_results", 40)
	v.SetDefault("fusion.min_results", 20)

	v.SetDefault("fetch.timeout", 12*time.Second)
	v.SetDefault("fetch.max_concurrency", 8)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	v.SetDefault("fetch.accept_language", "fr-CA,fr;q=0.9,en;q=0.8")

	v.SetDefault("sources.indeed.enabled", true)
	v.SetDefault("sources.indeed.base_url", "https://ca.indeed.com")
	v.SetDefault("sources.indeed.max_results", 10)
	v.SetDefault("sources.indeed.score_bonus", 0.02)

	v.SetDefault("sources.jobbank.enabled", true)
	v.SetDefault("sources.jobbank.base_url", "https://www.jobbank.gc.ca")
	v.SetDefault("sources.jobbank.max_results", 8)
	v.SetDefault("sources.jobbank.score_bonus", 0.0)

	v.SetDefault("sources.talent.enabled", true)
	v.SetDefault("sources.talent.base_url", "https://ca.talent.com")
	v.SetDefault("sources.talent.max_results", 8)
	v.SetDefault("sources.talent.score_bonus", 0.0)
	v.SetDefault("sources.talent.location", "Canada")

	v.SetDefault("sources.adzuna.enabled", false)
	v.SetDefault("sources.adzuna.base_url", "https://api.adzuna.com/v1/api/jobs")
	v.SetDefault("sources.adzuna.max_results", 20)
	v.SetDefault("sources.adzuna.score_bonus", 0.0)
	v.SetDefault("sources.adzuna.country", "ca")
	v.SetDefault("sources.adzuna.app_id", "")
	v.SetDefault("sources.adzuna.api_key", "")
	v.SetDefault("sources.adzuna.api_key_file", "")

	v.SetDefault("sources.jooble.enabled", false)
	v.SetDefault("sources.jooble.base_url", "https://jooble.org/api")
	v.SetDefault("sources.jooble.max_results", 20)
	v.SetDefault("sources.jooble.score_bonus", 0.0)
	v.SetDefault("sources.jooble.location", "Canada")
	v.SetDefault("sources.jooble.api_key", "")
	v.SetDefault("sources.jooble.api_key_file", "")
}

func (c *Config) resolveSecrets() error {
	for name, src := range map[string]*SourceConfig{
		"adzuna": &c.Sources.Adzuna,
		"jooble": &c.Sources.Jooble,
	} {
		if !src.Enabled {
			continue
		}
		key, err := LoadSecret(SecretSource{
			Name:  name + " api key",
			Value: src.APIKey,
			File:  src.APIKeyFile,
		})
		if err != nil {
			return &ConfigError{Field: "sources." + name + ".api_key", Message: err.Error()}
		}
		src.APIKey = key
	}
	return nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return &ConfigError{Field: "server.port", Message: "server.port is required"}
	}

	if c.Fusion.ScoreCap <= 0 || c.Fusion.ScoreCap >= 1 {
		return &ConfigError{Field: "fusion.score_cap", Message: "fusion.score_cap must be between 0 and 1 (exclusive)"}
	}
	if c.Fusion.KeywordBonus < 0 {
		return &ConfigError{Field: "fusion.keyword_bonus", Message: "fusion.keyword_bonus must not be negative"}
	}
	if c.Fusion.MaxResults <= 0 {
		return &ConfigError{Field: "fusion.max_results", Message: "fusion.max_results must be positive"}
	}
	if c.Fusion.MinResults < 0 || c.Fusion.MinResults > c.Fusion.MaxResults {
		return &ConfigError{Field: "fusion.min_results", Message: "fusion.min_results must be between 0 and fusion.max_results"}
	}

	if c.Profile.KeywordCap <= 0 || c.Profile.MaxTitles <= 0 {
		return &ConfigError{Field: "profile", Message: "profile.keyword_cap and profile.max_titles must be positive"}
	}
	if c.Query.MaxQueries <= 0 || c.Query.TitlesPerQuery <= 0 {
		return &ConfigError{Field: "query", Message: "query.max_queries and query.titles_per_query must be positive"}
	}

	if c.Fetch.Timeout <= 0 {
		return &ConfigError{Field: "fetch.timeout", Message: "fetch.timeout must be positive"}
	}
	if c.Fetch.MaxConcurrency <= 0 {
		return &ConfigError{Field: "fetch.max_concurrency", Message: "fetch.max_concurrency must be positive"}
	}

	if c.Sources.Adzuna.Enabled && c.Sources.Adzuna.AppID == "" {
		return &ConfigError{Field: "sources.adzuna.app_id", Message: "ADZUNA_APP_ID is required when the adzuna source is enabled"}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
