package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported completion providers.
const (
	ProviderMistral = "mistral"
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
	ProviderMock    = "mock"
)

const (
	defaultServerAddr     = ":8080"
	defaultRequestTimeout = 60
	mistralBaseURL        = "https://api.mistral.ai/v1/"
)

// ErrMissingAPIKey is returned by Load when the credential variable is unset.
var ErrMissingAPIKey = errors.New("api key missing")

// Config is built once at startup and passed to every component that needs it.
type Config struct {
	LLM                   LLMConfig `json:"llm"`
	ServerAddr            string    `json:"server_addr,omitempty"`
	RequestTimeoutSeconds int       `json:"request_timeout_seconds,omitempty"`
}

// LLMConfig selects the completion service. APIKey is never read from the file,
// only from the variable named by APIKeyEnv.
type LLMConfig struct {
	Provider  string   `json:"provider,omitempty"`
	Models    []string `json:"models,omitempty"`
	APIKeyEnv string   `json:"api_key_env,omitempty"`
	BaseURL   string   `json:"base_url,omitempty"`
	APIKey    string   `json:"-"`
}

// Load reads the JSON config at path (a missing file means defaults), applies
// environment overrides and resolves the API credential.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.applyDefaults(); err != nil {
		return Config{}, err
	}
	if err := cfg.resolveAPIKey(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RequestTimeout bounds a single completion call.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) applyEnv() error {
	c.LLM.Provider = env("LLM_PROVIDER", c.LLM.Provider)
	c.LLM.BaseURL = env("LLM_BASE_URL", c.LLM.BaseURL)
	c.ServerAddr = env("SERVER_ADDR", c.ServerAddr)
	if v := os.Getenv("LLM_MODELS"); v != "" {
		c.LLM.Models = splitList(v)
	}
	n, err := envInt("REQUEST_TIMEOUT_SECONDS", c.RequestTimeoutSeconds)
	if err != nil {
		return err
	}
	c.RequestTimeoutSeconds = n
	return nil
}

func (c *Config) applyDefaults() error {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderMistral
	}
	switch c.LLM.Provider {
	case ProviderMistral:
		if c.LLM.BaseURL == "" {
			c.LLM.BaseURL = mistralBaseURL
		}
	case ProviderOpenAI, ProviderGemini, ProviderMock:
	default:
		return fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
	}
	if len(c.LLM.Models) == 0 {
		c.LLM.Models = DefaultModels(c.LLM.Provider)
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = defaultAPIKeyEnv(c.LLM.Provider)
	}
	if c.ServerAddr == "" {
		c.ServerAddr = defaultServerAddr
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = defaultRequestTimeout
	}
	return nil
}

func (c *Config) resolveAPIKey() error {
	if c.LLM.Provider == ProviderMock {
		return nil
	}
	c.LLM.APIKey = strings.TrimSpace(os.Getenv(c.LLM.APIKeyEnv))
	if c.LLM.APIKey == "" {
		return fmt.Errorf("%w: set %s in the environment or in a .env file", ErrMissingAPIKey, c.LLM.APIKeyEnv)
	}
	return nil
}

// DefaultModels lists the three model variants offered for a provider.
func DefaultModels(provider string) []string {
	switch provider {
	case ProviderOpenAI:
		return []string{"gpt-4o", "gpt-4o-mini", "gpt-4.1-mini"}
	case ProviderGemini:
		return []string{"gemini-2.0-flash", "gemini-1.5-pro", "gemini-1.5-flash"}
	default:
		return []string{"mistral-large-latest", "mistral-medium-latest", "mistral-small-latest"}
	}
}

func defaultAPIKeyEnv(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "MISTRAL_API_KEY"
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("parse %s=%q: want a positive number of seconds", k, v)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
