package config_test

import (
	"testing"
	"time"

	"cookbook/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 60, cfg.RateLimitWrites)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.RedisURL)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DB_DRIVER", "SQLite")
	v.Set("DATABASE_DSN", "file::memory:")
	v.Set("JWT_EXPIRES_IN", "2h")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "file::memory:", cfg.DatabaseDSN)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiresIn)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
		want string
	}{
		{"unknown driver", "DB_DRIVER", "mysql", "unsupported DB_DRIVER"},
		{"empty dsn", "DATABASE_DSN", "", "DATABASE_DSN is required"},
		{"empty secret", "JWT_SECRET", "", "JWT_SECRET is required"},
		{"negative limit", "RATE_LIMIT_WRITES", -1, "RATE_LIMIT_WRITES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			config.SetDefaults(v)
			v.Set(tt.key, tt.val)

			_, err := config.FromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
