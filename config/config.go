package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      int
	JWTSecret       string
	FirebaseKeyPath string
	Database        DatabaseConfig
}

type DatabaseConfig struct {
	// URI is the MongoDB connection string. When empty, or when it
	// points at a local deployment, the in-memory fallback store is
	// used instead.
	URI  string
	Name string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		URI:  getEnv("MONGO_URI", ""),
		Name: getEnv("MONGO_DB", "markitup"),
	}

	return Config{
		ServerPort:      getEnvInt("PORT", 5000),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		FirebaseKeyPath: getEnv("FIREBASE_KEY_PATH", "firebase-key.json"),
		Database:        dbConfig,
	}
}

// UseMemory reports whether the in-memory fallback store should back the
// service. The external database is selected only when a connection string
// is configured and its host is not local/loopback. The decision is made
// once at startup; no call site re-evaluates it.
func (d DatabaseConfig) UseMemory() bool {
	if strings.TrimSpace(d.URI) == "" {
		return true
	}
	host := d.URI
	if u, err := url.Parse(d.URI); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	if strings.Contains(host, "localhost") || strings.HasPrefix(host, "127.") || host == "::1" {
		return true
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
