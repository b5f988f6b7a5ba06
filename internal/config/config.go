package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the service configuration.
type Config struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	GitHubToken     string        `mapstructure:"github_token"`
	GitHubAPIURL    string        `mapstructure:"github_api_url"`
	LLMProvider     string        `mapstructure:"llm_provider"`
	GeminiAPIKey    string        `mapstructure:"gemini_api_key"`
	GeminiModel     string        `mapstructure:"gemini_model"`
	LLMBaseURL      string        `mapstructure:"llm_base_url"`
	LLMAPIKey       string        `mapstructure:"llm_api_key"`
	LLMModel        string        `mapstructure:"llm_model"`
	SummaryTimeout  time.Duration `mapstructure:"summary_timeout"`
	DatabaseDSN     string        `mapstructure:"database_dsn"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HasGenerator reports whether the selected provider has a credential.
func (c *Config) HasGenerator() bool {
	switch c.LLMProvider {
	case ProviderOpenAI:
		return c.LLMAPIKey != ""
	default:
		return c.GeminiAPIKey != ""
	}
}

// Load reads .env, then the optional config file, then the environment.
// Environment variables win over the file, the file wins over defaults.
func Load(cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("http_addr", DefaultHTTPAddr)
	v.SetDefault("github_token", "")
	v.SetDefault("github_api_url", "")
	v.SetDefault("llm_provider", DefaultLLMProvider)
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", DefaultGeminiModel)
	v.SetDefault("llm_base_url", DefaultLLMBaseURL)
	v.SetDefault("llm_api_key", "")
	v.SetDefault("llm_model", DefaultLLMModel)
	v.SetDefault("summary_timeout", DefaultSummaryTimeout)
	v.SetDefault("database_dsn", "")
	v.SetDefault("cors_origins", DefaultCORSOrigins)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("shutdown_timeout", DefaultShutdownTimeout)

	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	if cfg.LLMProvider != ProviderGemini && cfg.LLMProvider != ProviderOpenAI {
		return nil, fmt.Errorf("unknown llm_provider %q", cfg.LLMProvider)
	}
	cfg.CORSOrigins = splitOrigins(cfg.CORSOrigins)
	if cfg.SummaryTimeout <= 0 {
		cfg.SummaryTimeout = DefaultSummaryTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	return &cfg, nil
}

// splitOrigins flattens comma-joined entries and drops blanks.
func splitOrigins(raw []string) []string {
	origins := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, o := range strings.Split(entry, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	if len(origins) == 0 {
		return DefaultCORSOrigins
	}
	return origins
}
