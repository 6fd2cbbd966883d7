package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port         string
	MongoURI     string
	MongoDB      string
	AllowOrigins string
	LogLevel     string
}

// defaults for local development
const (
	defaultPort         = "5000"
	defaultMongoURI     = "mongodb://localhost:27017"
	defaultMongoDB      = "fleethr"
	defaultAllowOrigins = "http://127.0.0.1:5500,http://localhost:5500,http://localhost:3000"
	defaultLogLevel     = "info"
)

// Load reads a .env file if one is present, then overlays process
// environment variables on top of the defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", defaultPort),
		MongoURI:     getEnv("MONGODB_URI", defaultMongoURI),
		MongoDB:      getEnv("MONGODB_DB", defaultMongoDB),
		AllowOrigins: getEnv("ALLOW_ORIGINS", defaultAllowOrigins),
		LogLevel:     getEnv("LOG_LEVEL", defaultLogLevel),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
