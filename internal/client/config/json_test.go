package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overlays present keys", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"server_base_url":      "https://api.example/api",
			"generation_timeout":   "5m",
			"analysis_concurrency": 2,
			"youtube_api_key":      "yt-key",
		})
		os.Args = []string{"nutricare", "-config", path}

		cfg := defaults()
		parseJson(cfg)

		assert.Equal(t, "https://api.example/api", cfg.ServerBaseURL)
		assert.Equal(t, 5*time.Minute, cfg.GenerationTimeout)
		assert.Equal(t, 2, cfg.AnalysisConcurrency)
		assert.Equal(t, "yt-key", cfg.YouTubeAPIKey)
		assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "nutricare.db", cfg.DatabasePath)
	})

	t.Run("no config flag leaves config untouched", func(t *testing.T) {
		os.Args = []string{"nutricare"}

		cfg := defaults()
		parseJson(cfg)

		assert.Equal(t, defaults(), cfg)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		os.Args = []string{"nutricare", "-c", bad}

		require.Panics(t, func() { parseJson(defaults()) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"nutricare", "-c", filepath.Join(t.TempDir(), "absent.json")}

		require.Panics(t, func() { parseJson(defaults()) })
	})
}
