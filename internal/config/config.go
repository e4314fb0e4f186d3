package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "CONTEXTWATCH_CONFIG"
	apiServerEnv  = "CONTEXT_API_SERVER"
	apiKeyEnv     = "CONTEXT_API_KEY"
	sessionIDEnv  = "CONTEXT_SESSION_ID"
	archiveDSNEnv = "CONTEXTWATCH_ARCHIVE_DSN"
)

// automaticSession marks a session id that should be replaced by a fresh UUID.
const automaticSession = "<automatic>"

// Config holds high-level settings required across the application.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Query   QueryConfig   `yaml:"query"`
	Client  ClientConfig  `yaml:"client"`
	Output  OutputConfig  `yaml:"output"`
	Archive ArchiveConfig `yaml:"archive"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig describes the remote Context API endpoint and credentials.
type ServerConfig struct {
	URL       string `yaml:"url"`
	APIKey    string `yaml:"apiKey"`
	SessionID string `yaml:"sessionId"`
}

// QueryConfig defines what the update loop asks the service for.
type QueryConfig struct {
	Text        string `yaml:"text"`
	Type        string `yaml:"type"`
	Exact       bool   `yaml:"exact"`
	BatchSize   int    `yaml:"batchSize"`
	PollSeconds int    `yaml:"pollSeconds"`
	MaxEntities int    `yaml:"maxEntities"`
}

// PollInterval resolves the configured back-off between polls.
func (q QueryConfig) PollInterval() time.Duration {
	return time.Duration(q.PollSeconds) * time.Second
}

// ClientConfig tunes the HTTP client talking to the Context API.
type ClientConfig struct {
	TimeoutSeconds  int     `yaml:"timeoutSeconds"`
	RequestsPerSec  float64 `yaml:"requestsPerSec"`
	RetryAttempts   int     `yaml:"retryAttempts"`
	RetryInitialSec int     `yaml:"retryInitialSeconds"`
	RetryMaxSec     int     `yaml:"retryMaxSeconds"`
}

// Timeout resolves the per-request HTTP timeout.
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryInitial resolves the first retry back-off.
func (c ClientConfig) RetryInitial() time.Duration {
	return time.Duration(c.RetryInitialSec) * time.Second
}

// RetryMax resolves the back-off ceiling.
func (c ClientConfig) RetryMax() time.Duration {
	return time.Duration(c.RetryMaxSec) * time.Second
}

// OutputConfig shapes the console transcript.
type OutputConfig struct {
	Colors   string `yaml:"colors"`
	Previews bool   `yaml:"previews"`
}

// ArchiveConfig enables the optional Postgres archive when a DSN is set.
type ArchiveConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. An empty path falls back to the CONTEXTWATCH_CONFIG variable.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

// Normalize applies the fix-ups the demo performs on raw input: a server URL
// without a scheme gains https://, and an absent or automatic session id is
// replaced by a fresh UUID so every run is individually attributable.
func (c *Config) Normalize() {
	if c.Server.URL != "" && !strings.Contains(c.Server.URL, "://") {
		c.Server.URL = "https://" + c.Server.URL
	}
	c.Server.URL = strings.TrimSuffix(c.Server.URL, "/")

	if c.Server.SessionID == "" || c.Server.SessionID == automaticSession {
		c.Server.SessionID = uuid.NewString()
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(apiServerEnv); v != "" {
		c.Server.URL = v
	}

	if v := os.Getenv(apiKeyEnv); v != "" {
		c.Server.APIKey = v
	}

	if v := os.Getenv(sessionIDEnv); v != "" {
		c.Server.SessionID = v
	}

	if v := os.Getenv(archiveDSNEnv); v != "" {
		c.Archive.DSN = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.URL != "" {
		base.Server.URL = override.Server.URL
	}
	if override.Server.APIKey != "" {
		base.Server.APIKey = override.Server.APIKey
	}
	if override.Server.SessionID != "" {
		base.Server.SessionID = override.Server.SessionID
	}

	if override.Query.Text != "" {
		base.Query.Text = override.Query.Text
	}
	if override.Query.Type != "" {
		base.Query.Type = override.Query.Type
	}
	if override.Query.Exact {
		base.Query.Exact = true
	}
	if override.Query.BatchSize > 0 {
		base.Query.BatchSize = override.Query.BatchSize
	}
	if override.Query.PollSeconds > 0 {
		base.Query.PollSeconds = override.Query.PollSeconds
	}
	if override.Query.MaxEntities > 0 {
		base.Query.MaxEntities = override.Query.MaxEntities
	}

	if override.Client.TimeoutSeconds > 0 {
		base.Client.TimeoutSeconds = override.Client.TimeoutSeconds
	}
	if override.Client.RequestsPerSec > 0 {
		base.Client.RequestsPerSec = override.Client.RequestsPerSec
	}
	if override.Client.RetryAttempts > 0 {
		base.Client.RetryAttempts = override.Client.RetryAttempts
	}
	if override.Client.RetryInitialSec > 0 {
		base.Client.RetryInitialSec = override.Client.RetryInitialSec
	}
	if override.Client.RetryMaxSec > 0 {
		base.Client.RetryMaxSec = override.Client.RetryMaxSec
	}

	if override.Output.Colors != "" {
		base.Output.Colors = override.Output.Colors
	}
	if override.Output.Previews {
		base.Output.Previews = true
	}

	if override.Archive.DSN != "" {
		base.Archive.DSN = override.Archive.DSN
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:       "https://context-api-test.seleritycorp.com",
			SessionID: automaticSession,
		},
		Query: QueryConfig{
			Type:        "FEED",
			BatchSize:   10,
			PollSeconds: 30,
			MaxEntities: 20,
		},
		Client: ClientConfig{
			TimeoutSeconds:  15,
			RequestsPerSec:  5,
			RetryAttempts:   0,
			RetryInitialSec: 2,
			RetryMaxSec:     30,
		},
		Output: OutputConfig{
			Colors: "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
