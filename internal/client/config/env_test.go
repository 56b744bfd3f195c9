package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(m map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestParseEnv(t *testing.T) {
	noEnvFile(t)

	cfg := &Config{}
	cfg.LoadDefaults()

	err := parseEnv(cfg, lookupFrom(map[string]string{
		EnvAPIURL:         "https://api.posko.id/api",
		EnvStorePath:      "",
		EnvRequestTimeout: "15",
		EnvLogLevel:       "error",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://api.posko.id/api", cfg.APIBaseURL)
	assert.Equal(t, DefaultStorePath, cfg.StorePath, "empty value keeps the default")
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParseEnv_BadTimeout(t *testing.T) {
	noEnvFile(t)

	for _, v := range []string{"soon", "-3", "-1s"} {
		err := parseEnv(&Config{}, lookupFrom(map[string]string{EnvRequestTimeout: v}))
		assert.Error(t, err, v)
	}
}

func TestParseEnv_LoadsDotEnv(t *testing.T) {
	orig := envFile
	envFile = filepath.Join(t.TempDir(), ".env")
	t.Cleanup(func() { envFile = orig })

	require.NoError(t, os.WriteFile(envFile, []byte("POSKO_STORE_PATH=dotenv.db\n"), 0o600))
	t.Setenv(EnvStorePath, "")
	require.NoError(t, os.Unsetenv(EnvStorePath))

	cfg := &Config{}
	require.NoError(t, parseEnv(cfg, os.LookupEnv))
	assert.Equal(t, "dotenv.db", cfg.StorePath)
}

func Test_parseTimeout(t *testing.T) {
	d, err := parseTimeout("1500ms")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)

	d, err = parseTimeout("0")
	require.NoError(t, err)
	assert.Zero(t, d)
}
