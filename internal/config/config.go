package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Landed"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Log struct {
		Format string `envconfig:"LOG_FORMAT" default:"text"`
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	RateLimit struct {
		Exports int           `envconfig:"EXPORT_RATE_LIMIT" default:"30"`
		Window  time.Duration `envconfig:"EXPORT_RATE_WINDOW" default:"1m"`
	}

	// Worksheet holds the defaults the TUI and the worksheet CLI prefill: the
	// currency of a new invoice and the tax rate of a generation run. The JSON
	// API keeps its own USD default for drafts that leave currency out.
	Worksheet struct {
		Currency string  `envconfig:"DEFAULT_CURRENCY" default:"USD"`
		TaxRate  float64 `envconfig:"DEFAULT_TAX_RATE" default:"10"`
	}

	Export struct {
		Dir string `envconfig:"EXPORT_DIR" default:"exports"`
	}
}

// Addr is the listen address for the API server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
