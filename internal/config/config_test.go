package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("TIMESHEET_HOME", home)
	t.Setenv("TIMESHEET_CONFIG", "")
	for _, k := range []string{
		"TIMESHEET_API_URL", "TIMESHEET_DB", "TIMESHEET_TIMEOUT_MS",
		"TIMESHEET_SESSION_TTL_HOURS", "TIMESHEET_LOG_FILE", "TIMESHEET_LOG_LEVEL",
		"TIMESHEET_LOG_CALLS",
	} {
		t.Setenv(k, "")
	}
	// Run from an empty directory so no stray .env is picked up.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, filepath.Join(home, "timesheet.db"), cfg.DBPath)
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.Equal(t, 7*24*time.Hour, cfg.SessionLifetime())
	assert.True(t, cfg.LogCalls)
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	home := isolate(t)
	yml := "api_url: http://file.example/api\ntimeout_ms: 3000\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(yml), 0o600))
	t.Setenv("TIMESHEET_TIMEOUT_MS", "500")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://file.example/api", cfg.APIURL)
	assert.Equal(t, 500, cfg.TimeoutMs)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidEnvIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("TIMESHEET_TIMEOUT_MS", "-4")
	t.Setenv("TIMESHEET_SESSION_TTL_HOURS", "abc")
	t.Setenv("TIMESHEET_LOG_CALLS", "yes")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15000, cfg.TimeoutMs)
	assert.Equal(t, 168, cfg.SessionTTL)
	assert.True(t, cfg.LogCalls, "unparsable bool keeps the default")

	t.Setenv("TIMESHEET_LOG_CALLS", "false")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.LogCalls)
}

func TestLoad_DotEnvFillsUnsetVars(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("TIMESHEET_API_URL=http://dotenv.example/api\n"), 0o600))
	require.NoError(t, os.Unsetenv("TIMESHEET_API_URL"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv.example/api", cfg.APIURL)
	_ = os.Unsetenv("TIMESHEET_API_URL")
}

func TestLoad_MalformedFile(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("api_url: [oops"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}
