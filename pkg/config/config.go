package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DatasetSourceFile     = "file"
	DatasetSourcePostgres = "postgres"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	Dataset struct {
		Source string `envconfig:"DATASET_SOURCE" default:"file"`
		Path   string `envconfig:"DATASET_PATH" default:"data/movies.csv"`
		Watch  bool   `envconfig:"DATASET_WATCH"`
	}
	HTTP struct {
		// CacheMaxAge is the Cache-Control max-age, in seconds, of film responses.
		CacheMaxAge int     `envconfig:"HTTP_CACHE_MAX_AGE" default:"5000"`
		RateLimit   float64 `envconfig:"HTTP_RATE_LIMIT" default:"20"`
	}
	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}
}

// Origins splits ALLOW_ORIGINS on commas.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	switch cfg.Dataset.Source {
	case DatasetSourceFile, DatasetSourcePostgres:
	default:
		return nil, fmt.Errorf("load config error: unknown DATASET_SOURCE %q", cfg.Dataset.Source)
	}

	return cfg, nil
}
