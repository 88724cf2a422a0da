// internal/workers/ai-conversation/decide-web-search/config.go
package decidewebsearch

import "time"

type Config struct {
	// Timeout bounds a whole job; each LLM call has its own timeout.
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
