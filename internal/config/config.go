package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	OpenAIAPIKey         string
	OpenAIModel          string
	OpenAIBaseURL        string
	EncryptionKey        string // hex-encoded 32-byte key; empty disables at-rest encryption
	AccessPassphraseHash string // bcrypt hash; empty leaves the API open
	JWTSecret            string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          getEnv("DATABASE_URL", "journal.db"),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		EncryptionKey:        getEnv("ENCRYPTION_KEY", ""),
		AccessPassphraseHash: getEnv("ACCESS_PASSPHRASE_HASH", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
	}
}

// AIAvailable reports whether the AI collaborator can be constructed at all.
// Everything works without it; entries are simply stored as written.
func (c *Config) AIAvailable() bool { return c.OpenAIAPIKey != "" }

// DriverName picks the database/sql driver from the connection string.
// Postgres URLs go through pgx; anything else is treated as a SQLite path.
func (c *Config) DriverName() string {
	if strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return "pgx"
	}
	return "sqlite"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
