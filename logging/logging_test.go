package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/redline/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFallback(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, closer, err := logging.New("info", "", &buf)
	require.NoError(t, err)
	defer closer()

	log.Info().Str("document", "nda.txt").Msg("review started")
	log.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "nda.txt", entry["document"])
	assert.Equal(t, "review started", entry["message"])
	assert.Contains(t, entry, "time")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_WritesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "redline.log")
	log, closer, err := logging.New("debug", path, nil)
	require.NoError(t, err)

	log.Debug().Msg("first")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"first"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, closer, err := logging.New("loud", "", &bytes.Buffer{})

	require.Error(t, err)
	assert.NotNil(t, closer)
}

func TestDefaultFile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("/tmp/cache", "redline.log"), logging.DefaultFile("/tmp/cache"))
}
