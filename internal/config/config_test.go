package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/edo-upd/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := config.New(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "5.03", cfg.Generation)
	assert.Equal(t, 60*time.Second, cfg.CRPT.Timeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Empty(t, cfg.Signer.Command)
	assert.Equal(t, 30*time.Second, cfg.Signer.Timeout)
}

func TestNew_Environment(t *testing.T) {
	t.Setenv("CRPT_SERVICE_URL", "https://edo.example.test")
	t.Setenv("CRPT_TIMEOUT", "15s")
	t.Setenv("SIGNER_COMMAND", "cryptcp -sign -detached")
	t.Setenv("UPD_GENERATION", "5.01")

	cfg, err := config.New("")
	require.NoError(t, err)

	assert.Equal(t, "https://edo.example.test", cfg.CRPT.ServiceURL)
	assert.Equal(t, "https://edo.example.test", cfg.CRPT.AuthURL)
	assert.Equal(t, 15*time.Second, cfg.CRPT.Timeout)
	assert.Equal(t, []string{"cryptcp", "-sign", "-detached"}, cfg.Signer.Command)
	assert.Equal(t, "5.01", cfg.Generation)
}

func TestNew_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CRPT_AUTH_URL=https://auth.example.test\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("CRPT_AUTH_URL")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := config.New(path)
	require.NoError(t, err)

	assert.Equal(t, "https://auth.example.test", cfg.CRPT.AuthURL)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestNew_InvalidDuration(t *testing.T) {
	t.Setenv("CRPT_TIMEOUT", "soon")

	_, err := config.New("")
	assert.Error(t, err)
}
