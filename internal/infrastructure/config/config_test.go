package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFrom(t *testing.T, env map[string]string) *Config {
	t.Helper()
	var cfg Config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(env),
	})
	require.NoError(t, err)
	return &cfg
}

func TestDefaults(t *testing.T) {
	cfg := loadFrom(t, map[string]string{})

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 24, cfg.Pass.DefaultExpiryHours)
	assert.Equal(t, 720, cfg.Pass.MaxExpiryHours)
	assert.Equal(t, 30*time.Second, cfg.Pass.ScanDedupWindow)
	assert.Equal(t, "visitor_pass", cfg.Mongo.Database)
	assert.Equal(t, 4, cfg.Notify.Workers)
	assert.True(t, cfg.SMTP.UseTLS)
	assert.False(t, cfg.IsProduction())
}

func TestOverrides(t *testing.T) {
	cfg := loadFrom(t, map[string]string{
		"ENV":                       "Production",
		"JWT_SECRET":                "s",
		"PASS_DEFAULT_EXPIRY_HOURS": "8",
		"SCAN_DEDUP_WINDOW":         "2m",
		"TWILIO_PHONE_NUMBER":       "+15550000",
	})

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 8, cfg.Pass.DefaultExpiryHours)
	assert.Equal(t, 2*time.Minute, cfg.Pass.ScanDedupWindow)
	assert.Equal(t, "+15550000", cfg.Twilio.From)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := loadFrom(t, map[string]string{"PASS_DEFAULT_EXPIRY_HOURS": "1000"})

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
	assert.Contains(t, err.Error(), "exceeds PASS_MAX_EXPIRY_HOURS")
}
