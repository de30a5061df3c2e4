package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func noEnv() LoaderOption {
	return WithLookupEnv(envMap(nil))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 4, cfg.Editor.TabSize)
	assert.True(t, cfg.InfoBar.Enabled)
	assert.Empty(t, cfg.InfoBar.AutoFix)
	assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce.Std())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[editor]
tabSize = 8

[infobar]
autoFix = "untabify"

[watch]
debounce = "50ms"
`)

	cfg, err := NewLoader(WithConfigFile(path), WithEnvFile(""), noEnv()).Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Editor.TabSize)
	assert.Equal(t, "untabify", cfg.InfoBar.AutoFix)
	assert.True(t, cfg.InfoBar.Enabled, "unset keys keep defaults")
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce.Std())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
editor:
  tabSize: 2
infobar:
  enabled: false
logging:
  level: debug
watch:
  debounce: 1s
`)

	cfg, err := NewLoader(WithConfigFile(path), WithEnvFile(""), noEnv()).Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Editor.TabSize)
	assert.False(t, cfg.InfoBar.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, time.Second, cfg.Watch.Debounce.Std())
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := NewLoader(WithConfigFile(filepath.Join(t.TempDir(), "nope.toml")), noEnv()).Load()
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "config.ini", "tabSize=4")
		_, err := NewLoader(WithConfigFile(path), WithEnvFile(""), noEnv()).Load()
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("bad toml", func(t *testing.T) {
		path := writeFile(t, "config.toml", "[editor]\ntabSize = \n")
		_, err := NewLoader(WithConfigFile(path), WithEnvFile(""), noEnv()).Load()
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, path, perr.Path)
		assert.Positive(t, perr.Line)
	})

	t.Run("unknown yaml key", func(t *testing.T) {
		path := writeFile(t, "config.yml", "editor:\n  tabsize: 4\n")
		_, err := NewLoader(WithConfigFile(path), WithEnvFile(""), noEnv()).Load()
		var perr *ParseError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("invalid tab size", func(t *testing.T) {
		path := writeFile(t, "config.toml", "[editor]\ntabSize = 0\n")
		_, err := NewLoader(WithConfigFile(path), WithEnvFile(""), noEnv()).Load()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "editor.tabSize", verr.Path)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, "config.toml", "[editor]\ntabSize = 8\n[logging]\nlevel = \"warn\"\n")
	envFile := writeFile(t, ".env", "MIXEDTABS_TAB_SIZE=3\nMIXEDTABS_LOG_LEVEL=error\nMIXEDTABS_AUTO_FIX=Tabify\n")

	env := envMap(map[string]string{
		EnvTabSize:        "2",
		EnvInfoBarEnabled: "false",
		EnvWatchDebounce:  "10ms",
	})

	cfg, err := NewLoader(WithConfigFile(path), WithEnvFile(envFile), WithLookupEnv(env)).Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Editor.TabSize, "environment beats .env")
	assert.Equal(t, "error", cfg.Logging.Level, ".env beats file")
	assert.Equal(t, "tabify", cfg.InfoBar.AutoFix)
	assert.False(t, cfg.InfoBar.Enabled)
	assert.Equal(t, 10*time.Millisecond, cfg.Watch.Debounce.Std())

	width, fix := 6, "untabify"
	cfg.Apply(Overrides{TabSize: &width, AutoFix: &fix})
	assert.Equal(t, 6, cfg.Editor.TabSize, "flags beat everything")
	assert.Equal(t, "untabify", cfg.InfoBar.AutoFix)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadValidatesAfterOverrides(t *testing.T) {
	path := writeFile(t, "config.toml", "[editor]\ntabSize = 0\n")

	_, err := NewLoader(WithConfigFile(path), WithEnvFile(""), noEnv()).Load()
	assert.ErrorIs(t, err, ErrValidationFailed)

	width := 8
	cfg, err := NewLoader(WithConfigFile(path), WithEnvFile(""), noEnv(),
		WithOverrides(Overrides{TabSize: &width})).Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Editor.TabSize)

	width = 0
	_, err = NewLoader(WithEnvFile(""), noEnv(), WithOverrides(Overrides{TabSize: &width})).Load()
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestLoadBadEnvironment(t *testing.T) {
	tests := map[string]string{
		EnvTabSize:        "four",
		EnvInfoBarEnabled: "maybe",
		EnvWatchDebounce:  "soon",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := NewLoader(WithEnvFile(""), WithLookupEnv(envMap(map[string]string{key: value}))).Load()
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "$"+key, perr.Path)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"tab size", func(c *Config) { c.Editor.TabSize = -1 }, "editor.tabSize"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"auto fix", func(c *Config) { c.InfoBar.AutoFix = "retab" }, "infobar.autoFix"},
		{"debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			var verr *ValidationError
			require.ErrorAs(t, cfg.Validate(), &verr)
			assert.Equal(t, tt.path, verr.Path)
		})
	}
}
