package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, AppName+".toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("DefaultsWithoutFile", func(t *testing.T) {
		s, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), s)
	})

	t.Run("FileOverridesDefaults", func(t *testing.T) {
		path := writeSettings(t, t.TempDir(), `
config_file = "F:\\ind_bios.cfg"
strict = true

[log]
level = "debug"
`)
		s, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, `F:\ind_bios.cfg`, s.ConfigFile)
		assert.True(t, s.Strict)
		assert.Equal(t, "debug", s.Log.Level)
		// Untouched keys keep defaults
		assert.Equal(t, "presets", s.PresetDir)
		assert.Equal(t, "console", s.Log.Format)
		assert.True(t, s.OmitDefaults)
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		path := writeSettings(t, t.TempDir(), `
preset_dir = "from-file"
omit_defaults = true
`)
		t.Setenv("INDBIOS_PRESET_DIR", "from-env")
		t.Setenv("INDBIOS_OMIT_DEFAULTS", "false")
		t.Setenv("INDBIOS_LOG_FORMAT", "json")

		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", s.PresetDir)
		assert.False(t, s.OmitDefaults)
		assert.Equal(t, "json", s.Log.Format)
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		path := writeSettings(t, t.TempDir(), "[log]\nlevel = \"loud\"\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Level")
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := writeSettings(t, t.TempDir(), "colour = \"red\"\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "colour")
	})

	t.Run("MalformedFile", func(t *testing.T) {
		path := writeSettings(t, t.TempDir(), "strict = = true\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse TOML")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDiscover(t *testing.T) {
	t.Run("ExplicitWins", func(t *testing.T) {
		t.Setenv("INDBIOS_SETTINGS", "/from/env.toml")
		assert.Equal(t, "/cli.toml", Discover("/cli.toml", DefaultDiscoveryOptions()))
	})

	t.Run("EnvBeforeSearch", func(t *testing.T) {
		t.Setenv("INDBIOS_SETTINGS", "/from/env.toml")
		assert.Equal(t, "/from/env.toml", Discover("", DefaultDiscoveryOptions()))
	})

	t.Run("SearchPaths", func(t *testing.T) {
		t.Setenv("INDBIOS_SETTINGS", "")
		dir := t.TempDir()
		path := writeSettings(t, dir, "")

		opts := DefaultDiscoveryOptions()
		opts.UseXDG = false
		opts.UseCurrentDir = false
		opts.Paths = []string{filepath.Join(dir, "missing"), dir}

		assert.Equal(t, path, Discover("", opts))
	})

	t.Run("XDGConfigHome", func(t *testing.T) {
		t.Setenv("INDBIOS_SETTINGS", "")
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		require.NoError(t, os.MkdirAll(filepath.Join(home, AppName), 0755))
		path := writeSettings(t, filepath.Join(home, AppName), "")

		opts := DefaultDiscoveryOptions()
		opts.UseCurrentDir = false
		assert.Equal(t, path, Discover("", opts))
	})

	t.Run("NothingFound", func(t *testing.T) {
		t.Setenv("INDBIOS_SETTINGS", "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("XDG_CONFIG_DIRS", t.TempDir())

		opts := DefaultDiscoveryOptions()
		opts.UseCurrentDir = false
		assert.Equal(t, "", Discover("", opts))
	})
}

func TestNestedHelpers(t *testing.T) {
	nested := map[string]any{}
	setNestedValue(nested, "log.level", "warn")
	setNestedValue(nested, "strict", true)

	assert.Equal(t, map[string]any{
		"log":    map[string]any{"level": "warn"},
		"strict": true,
	}, nested)
	assert.Equal(t, map[string]any{"log.level": "warn", "strict": true}, flattenMap(nested, ""))
	assert.Equal(t, "INDBIOS_LOG_LEVEL", envName(EnvPrefix, "log.level"))
}
