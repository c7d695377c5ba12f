package config

import (
	"encoding/json"
	"os"

	"github.com/nutricare/nutricare-client/internal/flagx"
	"github.com/nutricare/nutricare-client/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so the file may say "60s" or give nanoseconds.
type JsonConfig struct {
	ServerBaseURL       string         `json:"server_base_url"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	CreateTimeout       timex.Duration `json:"create_timeout"`
	GenerationTimeout   timex.Duration `json:"generation_timeout"`
	AnalysisConcurrency int            `json:"analysis_concurrency"`
	DatabasePath        string         `json:"database_path"`
	DownloadDir         string         `json:"download_dir"`
	YouTubeAPIKey       string         `json:"youtube_api_key"`
	LogLevel            string         `json:"log_level"`
	LogFormat           string         `json:"log_format"`
}

// parseJson overlays Config with values from the file named by -c/-config.
// Keys missing from the file keep their current value. Read and decode
// errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.DownloadDir, jc.DownloadDir)
	setString(&cfg.YouTubeAPIKey, jc.YouTubeAPIKey)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CreateTimeout.Duration > 0 {
		cfg.CreateTimeout = jc.CreateTimeout.Duration
	}
	if jc.GenerationTimeout.Duration > 0 {
		cfg.GenerationTimeout = jc.GenerationTimeout.Duration
	}
	if jc.AnalysisConcurrency > 0 {
		cfg.AnalysisConcurrency = jc.AnalysisConcurrency
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
