// internal/workers/ai-conversation/answer-question/config.go
package answerquestion

import (
	"time"

	"ai-web-explorer/internal/common/config"
)

type Config struct {
	// MaxResults caps the search step.
	MaxResults int
	// Timeout bounds a whole job in worker mode.
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxResults: config.DefaultSearchResults,
		Timeout:    2 * time.Minute,
	}
}
