// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - The default `.env` file in the working directory is loaded once, if present.
//   - Environment variables are parsed into any struct using `env` field tags.
//   - Load caches each configuration type so it is parsed once per process.
//   - Parse bypasses the cache, which is handy when the environment changes,
//     for example in tests.
//
// # Usage
//
//	type ActionConfig struct {
//	    LogErrors bool `env:"SAFEACTION_LOG_ERRORS" envDefault:"true"`
//	}
//
//	var cfg ActionConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with errors.Is:
//
//   - ErrParsingConfig – failed to parse env vars into struct.
//   - ErrLoadingEnvFile – an explicitly requested .env file could not be read.
//   - ErrConfigNotLoaded – the cache lost the value between parse and read.
//   - ErrNilPointer – nil pointer passed to Load or Parse.
package config
