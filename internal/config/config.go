package config

import (
	"os"
	"strconv"
)

// MongoConfig holds MongoDB connection settings. Password is looked up per
// username from DATABASE_PASSWORD_FOR_<username>.
type MongoConfig struct {
	Username    string
	Hostname    string
	Database    string
	Password    string
	MaxPoolSize int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port      string
	JWTSecret string
	Mongo     MongoConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	username := getEnv("MONGODB_USERNAME", "")

	return &AppConfig{
		Port:      getEnv("PORT", "8080"), // default only for non-sensitive value
		JWTSecret: getEnv("JWT_SECRET", ""),
		Mongo: MongoConfig{
			Username:    username,
			Hostname:    getEnv("MONGODB_HOSTNAME", ""),
			Database:    getEnv("MONGODB_DATABASE", ""),
			Password:    databasePassword(username),
			MaxPoolSize: getEnvInt("MONGODB_MAX_POOL_SIZE", 20),
		},
	}
}

// databasePassword resolves the password for a database username from the
// DATABASE_PASSWORD_FOR_<username> environment variable.
func databasePassword(username string) string {
	if username == "" {
		return ""
	}
	return os.Getenv("DATABASE_PASSWORD_FOR_" + username)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
