package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("MONGODB_USERNAME", "apiuser")
	t.Setenv("MONGODB_HOSTNAME", "db.example.com")
	t.Setenv("MONGODB_DATABASE", "todos")
	t.Setenv("MONGODB_MAX_POOL_SIZE", "50")
	t.Setenv("DATABASE_PASSWORD_FOR_apiuser", "s3cret")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "apiuser", cfg.Mongo.Username)
	assert.Equal(t, "db.example.com", cfg.Mongo.Hostname)
	assert.Equal(t, "todos", cfg.Mongo.Database)
	assert.Equal(t, "s3cret", cfg.Mongo.Password)
	assert.Equal(t, 50, cfg.Mongo.MaxPoolSize)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGODB_USERNAME", "MONGODB_MAX_POOL_SIZE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 20, cfg.Mongo.MaxPoolSize)
	assert.Empty(t, cfg.Mongo.Password)
}

func TestDatabasePassword(t *testing.T) {
	t.Setenv("DATABASE_PASSWORD_FOR_alice", "wonder")

	assert.Equal(t, "wonder", databasePassword("alice"))
	assert.Empty(t, databasePassword("bob"))
	assert.Empty(t, databasePassword(""))
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
