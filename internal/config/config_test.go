package config

import (
	"testing"

	"nex-terminal-be/internal/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadModelRoutesDefaults(t *testing.T) {
	routes := loadModelRoutes()

	cfg, ok := routes.Modes[constant.ModeNormal]
	require.True(t, ok)
	assert.Equal(t, defaultModels[constant.ModeNormal], cfg.Primary)
	assert.Equal(t, defaultAlternates[constant.ModeNormal], cfg.Alternate)

	// Rapido ships without a compiled alternate: one attempt only.
	cfg, ok = routes.Modes[constant.ModeRapido]
	require.True(t, ok)
	assert.Equal(t, defaultModels[constant.ModeRapido], cfg.Primary)
	assert.Empty(t, cfg.Alternate)

	assert.Equal(t, hardcodedDefault, routes.Default.Primary)
	assert.Empty(t, routes.AllowedModels)
}

func TestLoadModelRoutesEnvOverrides(t *testing.T) {
	t.Setenv("MODEL_NORMAL", "custom/primary")
	t.Setenv("MODEL_NORMAL_FALLBACK", "custom/alternate")
	t.Setenv("DEFAULT_MODEL", "custom/default")
	t.Setenv("ALLOWED_MODELS", "custom/primary, custom/alternate ,")

	routes := loadModelRoutes()

	cfg := routes.Modes[constant.ModeNormal]
	assert.Equal(t, "custom/primary", cfg.Primary)
	assert.Equal(t, "custom/alternate", cfg.Alternate)

	// Modes without their own env var keep compiled defaults, not the
	// global default.
	assert.Equal(t, defaultModels[constant.ModePensante], routes.Modes[constant.ModePensante].Primary)

	assert.Equal(t, "custom/default", routes.Default.Primary)
	assert.Equal(t, []string{"custom/primary", "custom/alternate"}, routes.AllowedModels)
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("STUDIO_DAILY_LIMIT", "5")
	assert.Equal(t, 5, getEnvAsInt("STUDIO_DAILY_LIMIT", 2))

	t.Setenv("STUDIO_DAILY_LIMIT", "not-a-number")
	assert.Equal(t, 2, getEnvAsInt("STUDIO_DAILY_LIMIT", 2))

	assert.Equal(t, 7, getEnvAsInt("UNSET_LIMIT_VAR", 7))
}
