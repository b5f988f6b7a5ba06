package config

import "time"

// Default values for configuration fields.
const (
	DefaultHTTPAddr        = ":8000"
	DefaultLLMProvider     = ProviderGemini
	DefaultGeminiModel     = "gemini-2.5-flash"
	DefaultLLMBaseURL      = "https://api.openai.com/v1"
	DefaultLLMModel        = "gpt-4o-mini"
	DefaultSummaryTimeout  = 10 * time.Second
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second
)

// Supported generative backends.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// DefaultCORSOrigins are the local front-end dev servers.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
