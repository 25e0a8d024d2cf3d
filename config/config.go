// Package config loads redline settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/redline/demo"
	"github.com/fwojciec/redline/fs"
	"github.com/fwojciec/redline/gemini"
	theme "github.com/fwojciec/redline/lipgloss"
	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// Analyzer names.
const (
	AnalyzerDemo   = "demo"
	AnalyzerGemini = "gemini"
	AnalyzerJSONL  = "jsonl"
)

// Aligner names.
const (
	AlignerClause = "clause"
	AlignerLines  = "lines"
)

// Defaults for the HTTP server.
const (
	DefaultHTTPAddr        = "127.0.0.1:8080"
	DefaultMaxRequestBytes = 1 << 20
	DefaultRequestTimeout  = 30 * time.Second
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

// Config is the top-level redline configuration.
type Config struct {
	Analyzer    string        `yaml:"analyzer"`
	Aligner     string        `yaml:"aligner"`
	Model       string        `yaml:"model"`
	Notes       bool          `yaml:"notes"`
	DemoDelay   time.Duration `yaml:"demo_delay"`
	Theme       string        `yaml:"theme"`
	CacheDir    string        `yaml:"cache_dir"`
	Annotations string        `yaml:"annotations"`
	LogLevel    string        `yaml:"log_level"`
	LogFile     string        `yaml:"log_file"`
	HTTP        HTTPConfig    `yaml:"http"`
}

// HTTPConfig holds settings for the serve command.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	MaxRequestBytes int64         `yaml:"max_request_bytes"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Analyzer:  AnalyzerDemo,
		Aligner:   AlignerClause,
		Model:     gemini.DefaultModel,
		Notes:     true,
		DemoDelay: demo.DefaultDelay,
		Theme:     theme.ThemeDark,
		CacheDir:  fs.DefaultCacheDir(),
		LogLevel:  "info",
		HTTP: HTTPConfig{
			Addr:            DefaultHTTPAddr,
			MaxRequestBytes: DefaultMaxRequestBytes,
			RequestTimeout:  DefaultRequestTimeout,
		},
	}
}

// Load reads configuration from path, merged over the defaults.
// A missing file, or an empty path, yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for options a file cleared.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Analyzer == "" {
		c.Analyzer = defaults.Analyzer
	}
	if c.Aligner == "" {
		c.Aligner = defaults.Aligner
	}
	if c.Model == "" {
		c.Model = defaults.Model
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.CacheDir == "" {
		c.CacheDir = defaults.CacheDir
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = defaults.HTTP.Addr
	}
	if c.HTTP.MaxRequestBytes == 0 {
		c.HTTP.MaxRequestBytes = defaults.HTTP.MaxRequestBytes
	}
	if c.HTTP.RequestTimeout == 0 {
		c.HTTP.RequestTimeout = defaults.HTTP.RequestTimeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("analyzer", c.Analyzer, oneOf(AnalyzerDemo, AnalyzerGemini, AnalyzerJSONL)),
		criterio.Run("aligner", c.Aligner, oneOf(AlignerClause, AlignerLines)),
		criterio.Run("theme", c.Theme, oneOf(theme.ThemeDark, theme.ThemeLight)),
		criterio.Run("log_level", c.LogLevel, oneOf(logLevels...)),
		c.validateAnnotations(),
		c.validateLimits(),
	)
}

func (c *Config) validateAnnotations() error {
	if c.Analyzer != AnalyzerJSONL || c.Annotations != "" {
		return nil
	}
	return criterio.NewFieldErrors("annotations", fmt.Errorf("required when analyzer is %q", AnalyzerJSONL))
}

func (c *Config) validateLimits() error {
	var errs criterio.FieldErrorsBuilder
	if c.DemoDelay < 0 {
		errs = errs.Append("demo_delay", fmt.Errorf("must not be negative"))
	}
	if c.HTTP.MaxRequestBytes < 0 {
		errs = errs.Append("http.max_request_bytes", fmt.Errorf("must be positive"))
	}
	if c.HTTP.RequestTimeout < 0 {
		errs = errs.Append("http.request_timeout", fmt.Errorf("must be positive"))
	}
	return errs.ToError()
}

func oneOf(allowed ...string) func(string) error {
	return func(v string) error {
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("must be one of %v, got %q", allowed, v)
	}
}
