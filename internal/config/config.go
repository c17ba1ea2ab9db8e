package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM providers understood by the agent.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds application configuration
type Config struct {
	// Server
	Env             string
	Port            string
	LogLevel        string
	CORSAllowOrigin string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBMaxConns int32

	// LLM
	LLMProvider   string
	LLMTimeout    time.Duration
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Presentation
	CurrencySymbol string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Env:             getEnv("ENV", "development"),
		Port:            getEnv("PORT", "3005"),
		LogLevel:        getEnv("LOG_LEVEL", ""),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "expense"),
		DBPassword: getEnv("DB_PASSWORD", "expense"),
		DBName:     getEnv("DB_NAME", "expense"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// LLM
		LLMProvider:   strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
	}

	switch config.LLMProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER %q: must be %s or %s", config.LLMProvider, ProviderGemini, ProviderOpenAI)
	}

	timeout, err := parseTimeout(os.Getenv("LLM_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	config.LLMTimeout = timeout

	maxConns, err := parseMaxConns(os.Getenv("DB_MAX_CONNS"))
	if err != nil {
		return nil, err
	}
	config.DBMaxConns = maxConns

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// DSN returns the postgres URL used by the migration tooling.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("LLM_TIMEOUT must be positive, got %v", d)
	}
	return d, nil
}

func parseMaxConns(s string) (int32, error) {
	if s == "" {
		return 10, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid DB_MAX_CONNS %q: must be a positive integer", s)
	}
	return int32(n), nil
}
