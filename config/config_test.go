package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUseMemory(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want bool
	}{
		{"no uri configured", "", true},
		{"blank uri", "   ", true},
		{"localhost", "mongodb://localhost:27017/markitup", true},
		{"loopback", "mongodb://127.0.0.1:27017", true},
		{"remote host", "mongodb://db.example.com:27017/markitup", false},
		{"srv cluster", "mongodb+srv://cluster0.abc.mongodb.net/markitup", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DatabaseConfig{URI: tt.uri, Name: "markitup"}
			assert.Equal(t, tt.want, cfg.UseMemory())
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "JWT_SECRET", "FIREBASE_KEY_PATH", "MONGO_URI", "MONGO_DB"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := LoadConfig()

	assert.Equal(t, 5000, cfg.ServerPort)
	assert.Equal(t, "markitup", cfg.Database.Name)
	assert.True(t, cfg.Database.UseMemory())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MONGO_URI", "mongodb://db.example.com:27017")
	t.Setenv("MONGO_DB", "markitup_test")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, "markitup_test", cfg.Database.Name)
	assert.False(t, cfg.Database.UseMemory())
}
