package config_test

import (
	"chatrelay/backend/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEND_BUFFER_SIZE", "32")
	t.Setenv("MAX_MESSAGE_SIZE", "1024")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("MIRROR_BUFFER_SIZE", "10")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 32, cfg.SendBufferSize)
	assert.Equal(t, int64(1024), cfg.MaxMessageSize)
	assert.True(t, cfg.MirrorEnabled())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 10, cfg.MirrorBufferSize)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "chatrelay", cfg.RedisChannelPrefix)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port not a number", key: "PORT", value: "http"},
		{name: "port out of range", key: "PORT", value: "70000"},
		{name: "zero send buffer", key: "SEND_BUFFER_SIZE", value: "0"},
		{name: "negative message size", key: "MAX_MESSAGE_SIZE", value: "-1"},
		{name: "zero mirror buffer", key: "MIRROR_BUFFER_SIZE", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := config.Load()

			assert.Nil(t, cfg)
			assert.Error(t, err)
		})
	}
}

func TestConfig_Addr_AllInterfaces(t *testing.T) {
	cfg := &config.Config{Port: 8080}
	assert.Equal(t, ":8080", cfg.Addr())
}
