package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// envConfig is a DTO for the environment layer. Values are read as strings
// and copied into Config only when set, so unset variables never clobber
// earlier sources.
type envConfig struct {
	ServerBaseURL  string `env:"REMIND_SERVER_URL"`
	RequestTimeout string `env:"REMIND_REQUEST_TIMEOUT"`
	DatabasePath   string `env:"REMIND_DB_PATH"`
	LogLevel       string `env:"REMIND_LOG_LEVEL"`
}

// parseEnv overlays Config with values from environment variables.
//
// Supported variables:
//
//	REMIND_SERVER_URL       base URL of the backend
//	REMIND_REQUEST_TIMEOUT  Go duration string, e.g. "5s"
//	REMIND_DB_PATH          local sqlite file path
//	REMIND_LOG_LEVEL        debug | info | warn | error
//
// A malformed REMIND_REQUEST_TIMEOUT panics, matching the JSON layer.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := cleanenv.ReadEnv(&ec); err != nil {
		panic(err)
	}

	if ec.ServerBaseURL != "" {
		cfg.ServerBaseURL = ec.ServerBaseURL
	}
	if ec.RequestTimeout != "" {
		d, err := time.ParseDuration(ec.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
}
