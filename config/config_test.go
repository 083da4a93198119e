package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("GEMINI_API_MODEL", "gemini-2.0-flash")
	t.Setenv("DRIVE_FOLDER_ID", "folder-1")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, "us-central1", cfg.Location)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.GenerationTimeout)
}

func TestLoadTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv("GENERATION_TIMEOUT", "90s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.GenerationTimeout)
}

func TestLoadMissingModel(t *testing.T) {
	t.Setenv("GEMINI_API_MODEL", "")
	t.Setenv("DRIVE_FOLDER_ID", "folder-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMockProviderNeedsNoModel(t *testing.T) {
	t.Setenv("GEMINI_API_MODEL", "")
	t.Setenv("DRIVE_FOLDER_ID", "folder-1")
	t.Setenv("LLM_PROVIDER", "mock")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.Provider)
}

func TestLoadMissingFolder(t *testing.T) {
	t.Setenv("GEMINI_API_MODEL", "gemini-2.0-flash")
	t.Setenv("DRIVE_FOLDER_ID", "")

	_, err := Load()
	assert.Error(t, err)
}
