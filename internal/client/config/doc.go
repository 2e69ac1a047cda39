// Package config loads runtime configuration for the reminder CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), prefix REMIND_.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-t int      per-request timeout (seconds, 0 disables)
//	-d string   local sqlite file path for stored tokens
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "5s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:8000",
//	  "request_timeout": "5s",
//	  "database_path": "remind.db",
//	  "log_level": "info"
//	}
//
// Primary API
//
//   - type Config                     — holds the resolved settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, env, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
