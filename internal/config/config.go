// ABOUTME: Source and page configuration loaded from YAML with environment expansion
// ABOUTME: Builds immutable source descriptors and omits store sources lacking credentials

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harper/matchday/internal/models"
)

// SourceConfig is one upstream as written in the config file.
type SourceConfig struct {
	Kind      string `yaml:"kind"`
	Label     string `yaml:"label"`
	Endpoint  string `yaml:"endpoint"` // store endpoints may be paths under MATCHDAY_STORE_URL
	Content   string `yaml:"content,omitempty"`
	Freshness int    `yaml:"freshness_seconds,omitempty"`
	TimeoutMs int    `yaml:"timeout_ms,omitempty"`
}

// CacheConfig selects where fetched payloads are kept.
type CacheConfig struct {
	Backend string `yaml:"backend,omitempty"` // "memory" (default) or "sqlite"
	Path    string `yaml:"path,omitempty"`    // sqlite file, supports ~
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// RateLimitConfig bounds requests per upstream host.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second,omitempty"`
	Burst     int     `yaml:"burst,omitempty"`
}

// Config stores matchday configuration.
type Config struct {
	Sources   []SourceConfig  `yaml:"sources"`
	Pages     []models.Page   `yaml:"pages"`
	Cache     CacheConfig     `yaml:"cache,omitempty"`
	Server    ServerConfig    `yaml:"server,omitempty"`
	RateLimit RateLimitConfig `yaml:"rate_limit,omitempty"`
	UserAgent string          `yaml:"user_agent,omitempty"`
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "matchday", "sources.yaml")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads config from path, or from GetConfigPath when path is empty.
// A missing file yields the built-in defaults. ${VAR} references are expanded
// from the environment before parsing.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes YAML config, fills defaults, and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultSources()
	}
	if len(cfg.Pages) == 0 {
		cfg.Pages = defaultPages()
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config as YAML, replacing any existing file atomically.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".sources-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func (c *Config) applyDefaults() {
	for i := range c.Sources {
		s := &c.Sources[i]
		s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
		if s.TimeoutMs <= 0 {
			s.TimeoutMs = DefaultFetchTimeoutMs
		}
		if s.Freshness <= 0 {
			s.Freshness = defaultFreshness(models.SourceKind(s.Kind))
		}
		if s.Kind == string(models.KindStore) && s.Content == "" {
			s.Content = string(models.ContentArticles)
		}
	}

	for i := range c.Pages {
		p := &c.Pages[i]
		if p.Cap == 0 {
			p.Cap = DefaultArticleCap
			if p.Content == models.ContentEvents {
				p.Cap = DefaultEventCap
			}
		}
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheMemory
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultListenAddr
	}
	if c.RateLimit.PerSecond <= 0 {
		c.RateLimit.PerSecond = DefaultHostRate
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = DefaultHostBurst
	}
}

func defaultFreshness(kind models.SourceKind) int {
	switch kind {
	case models.KindStore:
		return StoreFreshnessSeconds
	case models.KindScoreboard:
		return ScoreboardFreshnessSeconds
	}
	return FeedFreshnessSeconds
}

// Validate checks kinds, labels, page references, and caps.
func (c *Config) Validate() error {
	labels := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		if s.Label == "" {
			return fmt.Errorf("source %d: label is required", i)
		}
		if labels[s.Label] {
			return fmt.Errorf("source %s: duplicate label", s.Label)
		}
		labels[s.Label] = true

		if !models.SourceKind(s.Kind).Valid() {
			return fmt.Errorf("source %s: unknown kind %q", s.Label, s.Kind)
		}
		if s.Endpoint == "" {
			return fmt.Errorf("source %s: endpoint is required", s.Label)
		}
		if s.Content != "" && !models.ContentKind(s.Content).Valid() {
			return fmt.Errorf("source %s: unknown content %q", s.Label, s.Content)
		}
	}

	pages := make(map[string]bool, len(c.Pages))
	for _, p := range c.Pages {
		if p.Name == "" {
			return errors.New("page name is required")
		}
		if pages[p.Name] {
			return fmt.Errorf("page %s: duplicate name", p.Name)
		}
		pages[p.Name] = true

		if !p.Content.Valid() {
			return fmt.Errorf("page %s: unknown content %q", p.Name, p.Content)
		}
		if p.Cap < MinPageCap || p.Cap > MaxPageCap {
			return fmt.Errorf("page %s: cap %d outside [%d, %d]", p.Name, p.Cap, MinPageCap, MaxPageCap)
		}
		for _, label := range p.Sources {
			if !labels[label] {
				return fmt.Errorf("page %s: unknown source %q", p.Name, label)
			}
		}
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheSQLite:
	default:
		return fmt.Errorf("unknown cache backend: %q", c.Cache.Backend)
	}
	return nil
}

// Descriptors builds the active source set. Store sources are omitted when
// the store URL or token is missing from env; their labels are returned so
// the caller can log the omission once.
func (c *Config) Descriptors(env func(string) string) (active []models.SourceDescriptor, omitted []string) {
	if env == nil {
		env = os.Getenv
	}
	storeURL := strings.TrimRight(strings.TrimSpace(env(EnvStoreURL)), "/")
	storeToken := strings.TrimSpace(env(EnvStoreToken))

	for _, s := range c.Sources {
		d := models.SourceDescriptor{
			Kind:             models.SourceKind(s.Kind),
			Endpoint:         s.Endpoint,
			Label:            s.Label,
			FreshnessSeconds: s.Freshness,
			FetchTimeoutMs:   s.TimeoutMs,
			Content:          models.ContentKind(s.Content),
		}

		if d.Kind == models.KindStore {
			if storeURL == "" || storeToken == "" {
				omitted = append(omitted, s.Label)
				continue
			}
			d.Token = storeToken
			if !strings.HasPrefix(d.Endpoint, "http://") && !strings.HasPrefix(d.Endpoint, "https://") {
				d.Endpoint = storeURL + "/" + strings.TrimLeft(d.Endpoint, "/")
			}
		}

		active = append(active, d)
	}
	return active, omitted
}

// AddSource appends a source after applying defaults, rejecting a label or
// endpoint that is already configured.
func (c *Config) AddSource(s SourceConfig) error {
	for _, existing := range c.Sources {
		if existing.Label == s.Label {
			return fmt.Errorf("source %s: duplicate label", s.Label)
		}
		if existing.Endpoint == s.Endpoint {
			return fmt.Errorf("endpoint %s already configured as %s", s.Endpoint, existing.Label)
		}
	}

	c.Sources = append(c.Sources, s)
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		c.Sources = c.Sources[:len(c.Sources)-1]
		return err
	}
	return nil
}
