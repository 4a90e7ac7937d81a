package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the process variables so each test starts from defaults.
// t.Setenv registers the restore; the explicit unset matters because the
// .env loader treats a set-but-empty variable as present.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MEDIASTASH_ENV", "MEDIASTASH_LOG_LEVEL", "MEDIASTASH_DB_PATH"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "catalog", "main.db")

	cfg, err := Load(Options{
		DatabasePath: dbPath,
		EnvFile:      filepath.Join(t.TempDir(), "missing.env"),
	})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, dbPath, cfg.Database.Path)

	// The database directory is created on load.
	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadEnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("MEDIASTASH_ENV", "production")
	t.Setenv("MEDIASTASH_LOG_LEVEL", "debug")
	dbPath := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("MEDIASTASH_DB_PATH", dbPath)

	cfg, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, dbPath, cfg.Database.Path)
}

func TestLoadOptionsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MEDIASTASH_ENV", "production")
	t.Setenv("MEDIASTASH_LOG_LEVEL", "error")

	cfg, err := Load(Options{
		Environment:  "staging",
		LogLevel:     "warn",
		DatabasePath: filepath.Join(t.TempDir(), "opt.db"),
		EnvFile:      filepath.Join(t.TempDir(), "missing.env"),
	})
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	envFile := filepath.Join(dir, "test.env")
	content := `# comment line
MEDIASTASH_ENV=staging
MEDIASTASH_LOG_LEVEL="debug"
MEDIASTASH_DB_PATH=` + filepath.Join(dir, "file.db") + `
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, filepath.Join(dir, "file.db"), cfg.Database.Path)
}

func TestLoadEnvFileDoesNotOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MEDIASTASH_ENV", "production")

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("MEDIASTASH_ENV=staging\n"), 0o644))

	cfg, err := Load(Options{
		DatabasePath: filepath.Join(t.TempDir(), "x.db"),
		EnvFile:      envFile,
	})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
}

func TestLoadInvalidValues(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "missing.env")
	dbPath := filepath.Join(t.TempDir(), "x.db")

	_, err := Load(Options{Environment: "qa", DatabasePath: dbPath, EnvFile: missing})
	assert.ErrorContains(t, err, "invalid environment")

	_, err = Load(Options{LogLevel: "loud", DatabasePath: dbPath, EnvFile: missing})
	assert.ErrorContains(t, err, "invalid log level")
}
