package config

import (
	"os"
	"strconv"
	"time"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type TripAdvisorConfig struct {
	APIKey  string
	BaseURL string
}

type AdminConfig struct {
	Email        string
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
}

type EnrichmentConfig struct {
	// Delay between outbound places-API calls. Whole seconds in
	// production to stay under the shared rate limit.
	CallInterval time.Duration
	// Cities processed per job invocation; the report carries the
	// leftover count for the next run.
	MaxCitiesPerRun int
}

type Config struct {
	Postgres     PostgresConfig
	TripAdvisor  TripAdvisorConfig
	Admin        AdminConfig
	Enrichment   EnrichmentConfig
	GeminiAPIKey string
	ServerPort   string
	MetricsPort  string
}

// Load reads configuration from the environment. Store credentials are
// deliberately not validated here: the document store surfaces a
// ConfigurationError on first use, so tests and deployments can set them
// late.
func Load() (*Config, error) {
	cfg := &Config{
		Postgres: PostgresConfig{
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
			DB:       getEnvOrDefault("POSTGRES_DB", "wanderbase"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", ""),
			SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
			MaxConns: 30,
			MinConns: 5,
		},
		TripAdvisor: TripAdvisorConfig{
			APIKey:  os.Getenv("TRIPADVISOR_API_KEY"),
			BaseURL: getEnvOrDefault("TRIPADVISOR_BASE_URL", "https://api.content.tripadvisor.com/api/v1"),
		},
		Admin: AdminConfig{
			Email:        getEnvOrDefault("ADMIN_EMAIL", "hub@wanderbase.io"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
			JWTSecret:    os.Getenv("ADMIN_JWT_SECRET"),
			TokenTTL:     getEnvDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
		},
		Enrichment: EnrichmentConfig{
			CallInterval:    getEnvDuration("ENRICHMENT_CALL_INTERVAL", 2*time.Second),
			MaxCitiesPerRun: getEnvInt("ENRICHMENT_MAX_CITIES", 25),
		},
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		ServerPort:   getEnvOrDefault("SERVER_PORT", "8080"),
		MetricsPort:  getEnvOrDefault("METRICS_PORT", "9092"),
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
