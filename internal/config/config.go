package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo holds basic application metadata.
type AppInfo struct {
	Name        string `yaml:"name"`        // application name
	Version     string `yaml:"version"`     // application version
	Environment string `yaml:"environment"` // e.g. "development", "production"
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Address        string `yaml:"address"`        // listen address, e.g. ":8080"
	MaxUploadBytes int64  `yaml:"maxUploadBytes"` // upload size cap, 0 means default
}

// OpenAIConfig holds the OpenAI provider settings.
type OpenAIConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseURL"` // optional, for proxies and compatible endpoints
}

// GeminiConfig holds the Gemini provider settings.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// OllamaConfig holds the Ollama provider settings.
type OllamaConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseURL"` // defaults to http://localhost:11434
}

// LLMConfig selects and configures the language model provider.
type LLMConfig struct {
	Provider string       `yaml:"provider"` // "openai", "gemini" or "ollama"
	OpenAI   OpenAIConfig `yaml:"openai"`
	Gemini   GeminiConfig `yaml:"gemini"`
	Ollama   OllamaConfig `yaml:"ollama"`
}

// RetryConfig configures retries for the suggestion call.
type RetryConfig struct {
	Attempts int    `yaml:"attempts"` // total attempts, minimum 1
	Backoff  string `yaml:"backoff"`  // delay between attempts, e.g. "2s"
}

// SuggestionConfig configures the visualization suggestion flow.
type SuggestionConfig struct {
	SampleRows int         `yaml:"sampleRows"` // rows included in the prompt, default 5
	MaxTokens  int         `yaml:"maxTokens"`  // completion token cap
	Timeout    string      `yaml:"timeout"`    // per-attempt timeout, e.g. "30s"
	Retry      RetryConfig `yaml:"retry"`
}

// OutputConfig configures chart persistence.
type OutputConfig struct {
	Dir     string `yaml:"dir"`     // directory for saved charts, created if absent
	SavePNG bool   `yaml:"savePNG"` // also rasterize to PNG when supported
}

// AppConfig is the root of the YAML configuration file.
type AppConfig struct {
	App        AppInfo          `yaml:"app"`
	Logger     LoggerConfig     `yaml:"logger"`
	Server     ServerConfig     `yaml:"server"`
	LLM        LLMConfig        `yaml:"llm"`
	Suggestion SuggestionConfig `yaml:"suggestion"`
	Output     OutputConfig     `yaml:"output"`
}

// LoadConfig reads and parses the YAML configuration file at path.
// API keys left empty in the file are filled from the environment
// (OPENAI_API_KEY, GEMINI_API_KEY) so credentials can stay out of the file.
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 32 << 20
	}
	if cfg.Suggestion.SampleRows == 0 {
		cfg.Suggestion.SampleRows = 5
	}
	if cfg.Suggestion.MaxTokens == 0 {
		cfg.Suggestion.MaxTokens = 300
	}
	if cfg.Suggestion.Timeout == "" {
		cfg.Suggestion.Timeout = "30s"
	}
	if cfg.Suggestion.Retry.Attempts == 0 {
		cfg.Suggestion.Retry.Attempts = 1
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "visualizations"
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if cfg.LLM.OpenAI.APIKey == "" {
		cfg.LLM.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLM.Gemini.APIKey == "" {
		cfg.LLM.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}
