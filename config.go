package safeaction

import (
	"log/slog"
	"os"

	"github.com/dmitrymomot/safeaction/pkg/config"
	"github.com/dmitrymomot/safeaction/pkg/logger"
)

// Config is the environment configuration of a Builder.
type Config struct {
	Name                string     `env:"SAFEACTION_NAME"`
	LogErrors           bool       `env:"SAFEACTION_LOG_ERRORS" envDefault:"true"`
	LogFormat           string     `env:"SAFEACTION_LOG_FORMAT" envDefault:"json"`
	LogLevel            slog.Level `env:"SAFEACTION_LOG_LEVEL" envDefault:"INFO"`
	IncludeInputInError bool       `env:"SAFEACTION_INCLUDE_INPUT_IN_ERRORS" envDefault:"false"`
}

// LoadConfig reads Config from the environment and .env files.
// The result is cached; see config.Load.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := logger.ParseFormat(cfg.LogFormat); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithConfig applies cfg. When logging is enabled it installs a logger that
// writes to stderr in the configured format and level.
// It panics if cfg.LogFormat is not a known format.
func WithConfig(cfg Config) Option {
	return func(o *Options) {
		if cfg.Name != "" {
			o.Name = cfg.Name
		}
		o.IncludeInputInErrorDetails = cfg.IncludeInputInError

		if !cfg.LogErrors {
			o.DisableLogging = true
			return
		}

		format := logger.FormatJSON
		if cfg.LogFormat != "" {
			f, err := logger.ParseFormat(cfg.LogFormat)
			if err != nil {
				panic("safeaction: " + err.Error())
			}
			format = f
		}

		o.DisableLogging = false
		o.Logger = logger.New(
			logger.WithOutput(os.Stderr),
			logger.WithFormat(format),
			logger.WithLevel(cfg.LogLevel),
			logger.WithAttr(logger.Component("safeaction")),
			logger.WithContextValue("invocation_id", invocationKey{}),
		)
	}
}
