package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env           string
	ServerPort    string
	MySQLDSN      string
	JWTSecret     string
	ForumPageSize int
	SwaggerHost   string
}

// IsProduction reports whether the server runs in production mode. Cookie
// security attributes depend on it.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		Env:           getEnv("APP_ENV", "development"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/alemsite?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		ForumPageSize: getEnvInt("FORUM_PAGE_SIZE", 10),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
