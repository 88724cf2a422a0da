// internal/common/config/config.go
package config

import (
	goerrors "errors"
	"strings"

	apperrors "ai-web-explorer/internal/common/errors"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultGeminiModel    = "gemini-1.5-flash"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultSearchEndpoint = "https://www.googleapis.com/customsearch/v1"

	// MaxSearchResults is the largest page the Custom Search API returns.
	MaxSearchResults     = 10
	DefaultSearchResults = 5
)

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig               `mapstructure:"app"`
	LLM     LLMConfig               `mapstructure:"llm"`
	Search  SearchConfig            `mapstructure:"search"`
	Logging LoggingConfig           `mapstructure:"logging"`
	Metrics MetricsConfig           `mapstructure:"metrics"`
	Camunda CamundaConfig           `mapstructure:"camunda"`
	Workers map[string]WorkerConfig `mapstructure:"workers"`

	// EnvFile is the .env file that was loaded, if any.
	EnvFile string `mapstructure:"-"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LLMConfig selects and configures the hosted LLM service.
type LLMConfig struct {
	Provider        string  `mapstructure:"provider"`
	Model           string  `mapstructure:"model"`
	APIKey          string  `mapstructure:"api_key"`
	BaseURL         string  `mapstructure:"base_url"`
	Timeout         int     `mapstructure:"timeout"` // milliseconds
	Temperature     float64 `mapstructure:"temperature"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
}

// SearchConfig configures the Google Custom Search provider.
type SearchConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	EngineID   string `mapstructure:"engine_id"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	MaxResults int    `mapstructure:"max_results"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

type CamundaConfig struct {
	BrokerAddress string `mapstructure:"broker_address"`
	MaxJobsActive int    `mapstructure:"max_jobs_active"`
	Timeout       int    `mapstructure:"timeout"` // milliseconds
}

// WorkerConfig holds the settings applicable to every job worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

// Validate reports every credential the core needs but did not receive.
// Missing credentials are a startup error for the binaries, never for the core.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		errs = append(errs, apperrors.NewConfigurationMissingError("llm.api_key"))
	}
	if strings.TrimSpace(c.Search.APIKey) == "" {
		errs = append(errs, apperrors.NewConfigurationMissingError("search.api_key"))
	}
	if strings.TrimSpace(c.Search.EngineID) == "" {
		errs = append(errs, apperrors.NewConfigurationMissingError("search.engine_id"))
	}
	return goerrors.Join(errs...)
}

// ValidateWorkers adds the broker requirement of the worker-manager.
func (c *Config) ValidateWorkers() error {
	err := c.Validate()
	if strings.TrimSpace(c.Camunda.BrokerAddress) == "" {
		err = goerrors.Join(err, apperrors.NewConfigurationMissingError("camunda.broker_address"))
	}
	return err
}

// ClampMaxResults bounds a requested result count to 1..MaxSearchResults,
// using fallback for non-positive values.
func ClampMaxResults(n, fallback int) int {
	if n <= 0 {
		n = fallback
	}
	if n <= 0 {
		n = DefaultSearchResults
	}
	if n > MaxSearchResults {
		n = MaxSearchResults
	}
	return n
}
