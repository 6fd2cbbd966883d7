package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGODB_URI", "MONGODB_DB", "ALLOW_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	c := Load()
	require.NotNil(t, c)

	assert.Equal(t, "5000", c.Port)
	assert.Equal(t, "mongodb://localhost:27017", c.MongoURI)
	assert.Equal(t, "fleethr", c.MongoDB)
	assert.Equal(t, defaultAllowOrigins, c.AllowOrigins)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DB", "staging")
	t.Setenv("ALLOW_ORIGINS", "https://fleet.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	c := Load()

	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "mongodb://db:27017", c.MongoURI)
	assert.Equal(t, "staging", c.MongoDB)
	assert.Equal(t, "https://fleet.example.com", c.AllowOrigins)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadIgnoresBlankValues(t *testing.T) {
	t.Setenv("PORT", "   ")
	c := Load()
	assert.Equal(t, "5000", c.Port)
}
