package config

import (
	"os"
	"time"
)

// parseEnv overlays configuration values from environment variables. A
// process manager (or a .env file loaded by the caller) can configure the
// server without touching flags.
//
// Recognized variables:
//
//	ADDRESS         HTTP bind address
//	DATABASE_DSN    PostgreSQL DSN
//	SECRET_KEY      JWT signing secret
//	TOKEN_VALIDITY  token lifetime, Go duration syntax (e.g. "4h")
//	ENV             environment name (dev/prod)
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("ENV"); ok {
		config.Env = v
	}
}
