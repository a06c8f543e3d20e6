package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/IAnMove/ideagenerator/internal/features/ideas/application"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
)

// Defaults applied when the environment is silent.
const (
	DefaultHost     = "0.0.0.0"
	DefaultPort     = "8080"
	DefaultDataPath = "data/store.json"
	DefaultTimeout  = 60 * time.Second
)

// Config is the server configuration.
type Config struct {
	Host            string
	Port            string
	DataPath        string
	ElementsPath    string
	DefaultProvider domain.Provider
	Timeout         time.Duration
	LogLevel        string
	GinMode         string
	Providers       map[domain.Provider]application.ProviderSettings
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Load reads .env files (a missing file is fine) and then the environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug().Str("file", f).Msg("no .env file found, using environment variables")
				continue
			}
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	timeout, err := parseTimeout(os.Getenv("LLM_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Host:            getenv("HOST", DefaultHost),
		Port:            getenv("PORT", DefaultPort),
		DataPath:        getenv("DATA_PATH", DefaultDataPath),
		ElementsPath:    strings.TrimSpace(os.Getenv("ELEMENTS_PATH")),
		DefaultProvider: domain.Provider(strings.ToLower(getenv("LLM_PROVIDER", string(domain.ProviderDeepSeek)))),
		Timeout:         timeout,
		LogLevel:        getenv("LOG_LEVEL", "info"),
		GinMode:         getenv("GIN_MODE", "release"),
		Providers: map[domain.Provider]application.ProviderSettings{
			domain.ProviderDeepSeek: {
				Name:    domain.ProviderDeepSeek,
				BaseURL: getenv("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
				Model:   getenv("DEEPSEEK_MODEL", "deepseek-chat"),
				APIKey:  strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY")),
			},
			domain.ProviderOpenAI: {
				Name:    domain.ProviderOpenAI,
				BaseURL: getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
				Model:   getenv("OPENAI_MODEL", "gpt-4o-mini"),
				APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			},
		},
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// parseTimeout accepts a Go duration ("45s") or a whole number of seconds.
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTimeout, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("LLM_TIMEOUT must be positive, got %q", raw)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("LLM_TIMEOUT must be positive, got %q", raw)
	}
	return d, nil
}
