// Package config loads the recommender configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/justestif/go-spotify-recommender/internal/scoring"
)

// Config holds the recommender configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Spotify  SpotifyConfig  `yaml:"spotify"`
	Answers  AnswersConfig  `yaml:"answers"`
	Moods    MoodsConfig    `yaml:"moods"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Addr            string   `yaml:"addr"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	CORSOrigins     []string `yaml:"cors_origins"`
	RateLimit       int      `yaml:"rate_limit_per_minute"` // per client IP on /recommend
}

// DatabaseConfig holds the PostgreSQL connection string.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// SpotifyConfig holds the client credentials and the catalog playlist.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	PlaylistID   string `yaml:"playlist_id"`
}

// AnswersConfig selects the questionnaire label set.
type AnswersConfig struct {
	Labels string `yaml:"labels"` // en, ja
}

// MoodsConfig holds the catalog clustering settings.
type MoodsConfig struct {
	NumClusters    int `yaml:"num_clusters"`
	MinClusterSize int `yaml:"min_cluster_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load reads config/<env>.yaml, applies environment overrides and defaults,
// and validates the result. A missing file is not an error; the environment
// alone can configure the service.
func Load(env string) (Config, error) {
	cfg, err := LoadFile(filepath.Join("config", env+".yaml"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg.applyEnv()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile parses a YAML config file after expanding ${VAR} references.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// applyEnv overrides file values with the well-known environment variables.
func (c *Config) applyEnv() {
	overrides := []struct {
		name string
		dst  *string
	}{
		{"SPOTIFY_ID", &c.Spotify.ClientID},
		{"SPOTIFY_SECRET", &c.Spotify.ClientSecret},
		{"SPOTIFY_PLAYLIST_ID", &c.Spotify.PlaylistID},
		{"DATABASE_URL", &c.Database.URL},
		{"HTTP_ADDR", &c.HTTP.Addr},
		{"LOG_LEVEL", &c.Logging.Level},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.name); v != "" {
			*o.dst = v
		}
	}
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = "127.0.0.1:8080"
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 15
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 15
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.RateLimit <= 0 {
		c.HTTP.RateLimit = 60
	}
	if c.Answers.Labels == "" {
		c.Answers.Labels = scoring.EnglishLabels.Name()
	}
	if c.Moods.NumClusters <= 0 {
		c.Moods.NumClusters = 4
	}
	if c.Moods.MinClusterSize <= 0 {
		c.Moods.MinClusterSize = 2
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required (or set DATABASE_URL)")
	}
	if _, err := scoring.LabelSetByName(c.Answers.Labels); err != nil {
		return fmt.Errorf("answers.labels: %w", err)
	}
	if (c.Spotify.ClientID == "") != (c.Spotify.ClientSecret == "") {
		return fmt.Errorf("spotify.client_id and spotify.client_secret must be set together")
	}
	return nil
}

// LabelSet returns the configured questionnaire label set.
func (c *Config) LabelSet() scoring.LabelSet {
	ls, err := scoring.LabelSetByName(c.Answers.Labels)
	if err != nil {
		return scoring.EnglishLabels
	}
	return ls
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
