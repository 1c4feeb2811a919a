package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TELEGRAM_API_TOKEN", "DATABASE_URL", "APP_ENV", "HISTORY_DRIVER", "VOCABULARY_DIR"} {
		t.Setenv(k, "")
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "json", cfg.Vocabulary.Dir)
	assert.Equal(t, DefaultModules(), cfg.Vocabulary.Modules)
	assert.Equal(t, "1", cfg.Preferences.DefaultModule)
	assert.Equal(t, "chinese", cfg.Preferences.DefaultMode)
	assert.Zero(t, cfg.Preferences.TimeLimit())
	assert.Equal(t, HistoryDriverSQLite, cfg.History.Driver)
	assert.Equal(t, 30*time.Minute, cfg.DB.MaxConnLifetime)

	assert.ErrorIs(t, cfg.RequireTelegramToken(), ErrMissingEnvironmentVariables)
	_, err = cfg.DB.DSN()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoadFrom_File(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	yaml := `
env: production
data_dir: /var/lib/vocab
vocabulary:
  dir: words
  modules:
    - id: "1"
      name: Basic
      file: basic.json
    - id: "2"
      name: Advanced
      file: advanced.json
preferences:
  default_module: "2"
  default_mode: english
  time_limit_seconds: 15
history:
  driver: none
quiz:
  seed: 99
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/var/lib/vocab", cfg.DataDir)
	assert.Equal(t, "words", cfg.Vocabulary.Dir)
	assert.Equal(t, []ModuleConfig{
		{ID: "1", Name: "Basic", File: "basic.json"},
		{ID: "2", Name: "Advanced", File: "advanced.json"},
	}, cfg.Vocabulary.Modules)
	assert.Equal(t, "english", cfg.Preferences.DefaultMode)
	assert.Equal(t, 15*time.Second, cfg.Preferences.TimeLimit())
	assert.Equal(t, HistoryDriverNone, cfg.History.Driver)
	assert.Equal(t, int64(99), cfg.Quiz.Seed)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/vocab")
	t.Setenv("HISTORY_DRIVER", "postgres")
	t.Setenv("APP_ENV", "dev")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, HistoryDriverPostgres, cfg.History.Driver)
	assert.NoError(t, cfg.RequireTelegramToken())

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/vocab", dsn)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		yaml string
	}{
		{
			name: "postgres without url",
			env:  map[string]string{"HISTORY_DRIVER": "postgres"},
		},
		{
			name: "unknown driver",
			env:  map[string]string{"HISTORY_DRIVER": "mongo"},
		},
		{
			name: "duplicate module id",
			yaml: "vocabulary:\n  modules:\n    - {id: \"1\", file: a.json}\n    - {id: \"1\", file: b.json}\n",
		},
		{
			name: "module without file",
			yaml: "vocabulary:\n  modules:\n    - {id: \"1\", name: A}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			if tt.yaml != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.yaml), 0o644))
			}

			_, err := LoadFrom(dir)
			assert.Error(t, err)
		})
	}
}
