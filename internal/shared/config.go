package shared

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv         string        `envconfig:"APP_ENV" default:"prod"`
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:":5000"`
	MetricsAddr    string        `envconfig:"METRICS_ADDR"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"120s"`
	EnrichWorkers  int           `envconfig:"ENRICH_WORKERS" default:"5"`

	OpenAIKey     string        `envconfig:"OPENAI_API_KEY" required:"true"`
	OpenAIBaseURL string        `envconfig:"OPENAI_BASE_URL"`
	OpenAIModel   string        `envconfig:"OPENAI_MODEL" default:"gpt-4o"`
	OpenAITimeout time.Duration `envconfig:"OPENAI_TIMEOUT" default:"60s"`

	YouTubeKey      string        `envconfig:"YOUTUBE_API_KEY" required:"true"`
	YouTubeEndpoint string        `envconfig:"YOUTUBE_ENDPOINT"`
	YouTubeTimeout  time.Duration `envconfig:"YOUTUBE_TIMEOUT" default:"15s"`

	NominatimBase      string        `envconfig:"NOMINATIM_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	NominatimUserAgent string        `envconfig:"NOMINATIM_USER_AGENT" default:"travel-guide/1.0 (+https://github.com/travel-guide)"`
	NominatimTimeout   time.Duration `envconfig:"NOMINATIM_TIMEOUT" default:"5s"`
	NominatimRPS       float64       `envconfig:"NOMINATIM_RPS" default:"1"`
}

// Load reads .env (when present) and the process environment. Both provider
// keys are required; a missing one is returned as an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	// envconfig accepts a variable that is set but empty
	if c.OpenAIKey == "" {
		return Config{}, fmt.Errorf("load config: OPENAI_API_KEY is required")
	}
	if c.YouTubeKey == "" {
		return Config{}, fmt.Errorf("load config: YOUTUBE_API_KEY is required")
	}
	if c.EnrichWorkers < 1 {
		c.EnrichWorkers = 1
	}
	return c, nil
}
