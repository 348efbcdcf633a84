package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	v, err := LoadConfig()
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 180*time.Second, cfg.Server.Timeout)
	assert.Equal(t, int64(32), cfg.Server.MaxUploadMB)
	assert.Equal(t, int64(89478485), cfg.Server.MaxPixels)
	assert.Equal(t, "coolvetica.otf", cfg.Fonts.Path)
	assert.Equal(t, 40.0, cfg.Fonts.HeadlineSize)
	assert.Equal(t, 20.0, cfg.Fonts.LabelSize)
	assert.Equal(t, 120*time.Second, cfg.Generator.Timeout)
	assert.True(t, cfg.Storage.Archive)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(`
server:
  port: "9090"
generator:
  base_url: "http://sd:7860"
  timeout: 30s
kafka:
  enabled: true
`), 0o644))
	t.Setenv("GENERATOR_API_KEY", "secret")
	t.Setenv("SERVER_PORT", "9191")

	v, err := LoadConfig()
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "9191", cfg.Server.Port)
	assert.Equal(t, "http://sd:7860", cfg.Generator.BaseURL)
	assert.Equal(t, "secret", cfg.Generator.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Generator.Timeout)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, "ad-renders", cfg.Kafka.Topic)
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	envFile := filepath.Join(dir, "adstudio.env")
	require.NoError(t, os.WriteFile(envFile, []byte("GENERATOR_BASE_URL=http://from-env-file:7860\n"), 0o644))
	t.Setenv("ENV_FILE", envFile)
	// godotenv skips variables that are already set
	t.Setenv("GENERATOR_BASE_URL", "")
	require.NoError(t, os.Unsetenv("GENERATOR_BASE_URL"))

	v, err := LoadConfig()
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env-file:7860", cfg.Generator.BaseURL)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ADSTUDIO_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("ADSTUDIO_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("ADSTUDIO_TEST_MISSING", "fallback"))
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
