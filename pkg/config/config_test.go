package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_APITOKEN", "")
	t.Setenv("POSTGRES_URI", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Telegram.Token)
	assert.Empty(t, cfg.Database.URI)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Game.Premium)
	assert.Equal(t, 3*time.Minute, cfg.Game.DayDuration)
	assert.Equal(t, 15*time.Second, cfg.Game.VoteResultDuration)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_APITOKEN", "token")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("GAME_PREMIUM", "true")
	t.Setenv("GAME_DAY_DURATION", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.Telegram.Token)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Game.Premium)
	assert.Equal(t, 90*time.Second, cfg.Game.DayDuration)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")

	_, err := Load()
	assert.ErrorContains(t, err, "server config")
}
