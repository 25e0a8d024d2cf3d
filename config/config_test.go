package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/redline/config"
	"github.com/fwojciec/redline/demo"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "redline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load("")

		require.NoError(t, err)
		assert.Equal(t, config.AnalyzerDemo, cfg.Analyzer)
		assert.Equal(t, config.AlignerClause, cfg.Aligner)
		assert.Equal(t, demo.DefaultDelay, cfg.DemoDelay)
		assert.True(t, cfg.Notes)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, config.DefaultHTTPAddr, cfg.HTTP.Addr)
		assert.Equal(t, int64(config.DefaultMaxRequestBytes), cfg.HTTP.MaxRequestBytes)
		assert.NotEmpty(t, cfg.CacheDir)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))

		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig().Analyzer, cfg.Analyzer)
	})
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
analyzer: gemini
theme: light
notes: false
demo_delay: 250ms
http:
  addr: ":9000"
`)

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, config.AnalyzerGemini, cfg.Analyzer)
	assert.Equal(t, "light", cfg.Theme)
	assert.False(t, cfg.Notes)
	assert.Equal(t, 250*time.Millisecond, cfg.DemoDelay)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, int64(config.DefaultMaxRequestBytes), cfg.HTTP.MaxRequestBytes)
	assert.Equal(t, config.AlignerClause, cfg.Aligner)
}

func TestLoad_AppliesDefaultsForClearedFields(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
analyzer: ""
log_level: ""
`)

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, config.AnalyzerDemo, cfg.Analyzer)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ParseError(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "analyzer: [unclosed")

	_, err := config.Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "unknown analyzer", content: "analyzer: oracle", field: "analyzer"},
		{name: "unknown aligner", content: "aligner: words", field: "aligner"},
		{name: "unknown theme", content: "theme: neon", field: "theme"},
		{name: "unknown log level", content: "log_level: loud", field: "log_level"},
		{name: "negative delay", content: "demo_delay: -1s", field: "demo_delay"},
		{name: "jsonl without annotations", content: "analyzer: jsonl", field: "annotations"},
		{name: "negative body limit", content: "http:\n  max_request_bytes: -5", field: "http.max_request_bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(writeConfig(t, tt.content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_JSONLWithAnnotations(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Analyzer = config.AnalyzerJSONL
	cfg.Annotations = "findings.jsonl"

	assert.NoError(t, cfg.Validate())
}
