// Package config loads runtime configuration for the NutriCare CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. NUTRICARE_* environment variables, e.g. NUTRICARE_SERVER_BASE_URL.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string     REST API base URL (default http://127.0.0.1:8080/api)
//	-t duration   default request timeout (default 60s)
//	-d string     local database path (default nutricare.db)
//	-l string     log level (default info)
//
// # JSON schema
//
//	{
//	  "server_base_url": "https://nutricare.example/api",
//	  "request_timeout": "60s",
//	  "create_timeout": "10s",
//	  "generation_timeout": "3m",
//	  "analysis_concurrency": 4,
//	  "database_path": "nutricare.db",
//	  "download_dir": "downloads",
//	  "youtube_api_key": "",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
