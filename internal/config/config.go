package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xxxsen/common/logger"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = 3000
	defaultTagName        = "toc"
	defaultTocTitle       = "Table of Contents"
	defaultHistoryMax     = 1000
	defaultHistoryTrim    = "*/10 * * * *"
	defaultJWTTTLHours    = 72
	defaultSearchPageSize = 100
)

// Config is read from a file and the environment. ServiceBaseURL is where
// the upstream can reach this service; the OAuth callback derives from it.
// ErrorPage and SuccessPage must be absolute URLs of externally hosted
// pages since this service serves no static content. Left empty, the OAuth
// callback answers with JSON.
type Config struct {
	Port           int              `json:"port"`
	LogConfig      logger.LogConfig `json:"log_config"`
	ConsumerKey    string           `json:"consumer_key"`
	ConsumerSecret string           `json:"consumer_secret"`
	Sandbox        bool             `json:"sandbox"`
	ServiceBaseURL string           `json:"service_base_url"`
	TagName        string           `json:"tag_name"`
	TocTitle       string           `json:"toc_title"`
	JWTSecret      string           `json:"jwt_secret"`
	JWTTTLHours    int              `json:"jwt_ttl_hours"`
	ErrorPage      string           `json:"error_page"`
	SuccessPage    string           `json:"success_page"`
	Upstream       UpstreamConfig   `json:"upstream"`
	History        HistoryConfig    `json:"history"`
}

type UpstreamConfig struct {
	// TimeoutSeconds of 0 leaves upstream calls unbounded.
	TimeoutSeconds     int   `json:"timeout_seconds"`
	SearchPageSize     int   `json:"search_page_size"`
	SerializeNotebooks *bool `json:"serialize_notebooks"`
}

type HistoryConfig struct {
	MaxEntries int    `json:"max_entries"`
	TrimCron   string `json:"trim_cron"`
}

func (c *Config) SerializeNotebooks() bool {
	return c.Upstream.SerializeNotebooks == nil || *c.Upstream.SerializeNotebooks
}

// CallbackURL is the OAuth callback the upstream redirects back to.
func (c *Config) CallbackURL() string {
	return strings.TrimRight(c.ServiceBaseURL, "/") + "/api/v1/oauth/callback"
}

// Load reads path (JSON, or YAML by extension) when given, then applies
// environment overrides, which win over the file.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		raw = data
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"CONSUMER_KEY":     &cfg.ConsumerKey,
		"CONSUMER_SECRET":  &cfg.ConsumerSecret,
		"SERVICE_BASE_URL": &cfg.ServiceBaseURL,
		"TOC_TAG":          &cfg.TagName,
		"TOC_TITLE":        &cfg.TocTitle,
		"JWT_SECRET":       &cfg.JWTSecret,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("SANDBOX"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SANDBOX: %w", err)
		}
		cfg.Sandbox = b
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.Port = port
	}
	return nil
}

func normalize(cfg *Config) error {
	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
		return fmt.Errorf("consumer_key and consumer_secret are required")
	}
	if cfg.ServiceBaseURL == "" {
		return fmt.Errorf("service_base_url is required")
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.TagName == "" {
		cfg.TagName = defaultTagName
	}
	if cfg.TocTitle == "" {
		cfg.TocTitle = defaultTocTitle
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = defaultJWTTTLHours
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Upstream.SearchPageSize <= 0 {
		cfg.Upstream.SearchPageSize = defaultSearchPageSize
	}
	for name, page := range map[string]string{"error_page": cfg.ErrorPage, "success_page": cfg.SuccessPage} {
		if page != "" && !strings.HasPrefix(page, "http://") && !strings.HasPrefix(page, "https://") {
			return fmt.Errorf("%s must be an absolute http(s) url", name)
		}
	}
	if cfg.Upstream.TimeoutSeconds < 0 {
		return fmt.Errorf("upstream.timeout_seconds must not be negative")
	}
	if cfg.History.MaxEntries == 0 {
		cfg.History.MaxEntries = defaultHistoryMax
	}
	if cfg.History.TrimCron == "" {
		cfg.History.TrimCron = defaultHistoryTrim
	}
	return nil
}
