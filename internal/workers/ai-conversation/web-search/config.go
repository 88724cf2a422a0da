// internal/workers/ai-conversation/web-search/config.go
package websearch

import (
	"time"

	"ai-web-explorer/internal/common/config"
)

type Config struct {
	SearchAPIBaseURL string
	SearchAPIKey     string
	SearchEngineID   string
	Timeout          time.Duration
	MaxResults       int
}

// FromConfig converts the search section of the application config.
func FromConfig(cfg config.SearchConfig) *Config {
	return &Config{
		SearchAPIBaseURL: cfg.BaseURL,
		SearchAPIKey:     cfg.APIKey,
		SearchEngineID:   cfg.EngineID,
		Timeout:          config.GetDuration(cfg.Timeout),
		MaxResults:       cfg.MaxResults,
	}
}
