package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// env is a scratch directory holding a settings file, the config file and a
// preset directory.
type env struct {
	dir      string
	settings string
	config   string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	e := &env{
		dir:      dir,
		settings: filepath.Join(dir, "indbios.toml"),
		config:   filepath.Join(dir, "ind_bios.cfg"),
	}
	content := fmt.Sprintf("config_file = '%s'\npreset_dir = '%s'\n\n[log]\nlevel = \"error\"\n",
		e.config, filepath.Join(dir, "presets"))
	require.NoError(t, os.WriteFile(e.settings, []byte(content), 0644))
	return e
}

func (e *env) run(args ...string) (string, error) {
	cmd := newRootCommand("test", "abc123", "today")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--settings", e.settings}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *env) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(args...)
	require.NoError(t, err, "indbios %v", args)
	return out
}

func (e *env) readConfig(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.config)
	require.NoError(t, err)
	return string(data)
}

func TestSetAndGet(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun(t, "set", "FANSPEED=30", "ledpattern=RRRR")
	assert.Equal(t, "2 field(s) changed\n", out)
	assert.Equal(t, "FANSPEED=30\r\nLEDPATTERN=RRRR\r\n", e.readConfig(t))

	assert.Equal(t, "FANSPEED=30\nLEDPATTERN=RRRR\n", e.mustRun(t, "get", "fanspeed", "LEDPATTERN"))
}

func TestSetIsAllOrNothing(t *testing.T) {
	e := newEnv(t)

	_, err := e.run("set", "FANSPEED=30", "FANSPEED2=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FANSPEED2 is not a valid option")

	_, err = e.run("set", "FANSPEED=99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FANSPEED")

	_, err = e.run("set", "FANSPEED")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NAME=VALUE")

	_, statErr := os.Stat(e.config)
	assert.True(t, os.IsNotExist(statErr), "nothing should be saved")
}

func TestSetPaths(t *testing.T) {
	e := newEnv(t)

	e.mustRun(t, "set", `DASH1=F:\apps\unleashx.xbe`, "CUSTOMBLOB=none")
	assert.Equal(t,
		"CUSTOMBLOB=0\r\nDASH1=\\Device\\Harddisk0\\Partition6\\apps\\unleashx.xbe\r\n",
		e.readConfig(t))

	assert.Equal(t, "CUSTOMBLOB=none\n", e.mustRun(t, "get", "CUSTOMBLOB"))
	assert.Equal(t, "DEFAULTXBE=\\Device\\CdRom0\\default.xbe\n", e.mustRun(t, "get", "--serialized", "DEFAULTXBE"))
}

func TestReset(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		e := newEnv(t)
		e.mustRun(t, "set", "FANSPEED=30", "AVCHECK=false")

		assert.Equal(t, "1 field(s) reset\n", e.mustRun(t, "reset", "fanspeed"))
		assert.Equal(t, "AVCHECK=0\r\n", e.readConfig(t))
	})

	t.Run("Group", func(t *testing.T) {
		e := newEnv(t)
		e.mustRun(t, "set", "FOG1COLOR=0xFF000000", "FANSPEED=30")
		assert.Contains(t, e.readConfig(t), "FOG1CUSTOM=1\r\n")

		e.mustRun(t, "reset", "--group", "fog")
		assert.Equal(t, "FANSPEED=30\r\n", e.readConfig(t))
	})

	t.Run("All", func(t *testing.T) {
		e := newEnv(t)
		e.mustRun(t, "set", "FANSPEED=30", "AVCHECK=false")

		assert.Equal(t, "2 field(s) reset\n", e.mustRun(t, "reset"))
		assert.Empty(t, e.readConfig(t))
	})

	t.Run("UnknownGroup", func(t *testing.T) {
		e := newEnv(t)
		_, err := e.run("reset", "--group", "sound")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown group")
	})
}

func TestValidate(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, os.WriteFile(e.config, []byte("FANSPEED=20\r\nAVCHECK=0\r\n"), 0644))
	out := e.mustRun(t, "validate")
	assert.Contains(t, out, "is valid (2 non-default field(s))")

	bad := filepath.Join(e.dir, "bad.cfg")
	require.NoError(t, os.WriteFile(bad, []byte("AUTOLOADDVD=X\r\n"), 0644))
	_, err := e.run("validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTOLOADDVD")
}

func TestInvalidFileHandling(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.WriteFile(e.config, []byte("FANSPEED=99\r\nAVCHECK=0\r\n"), 0644))

	// Lenient by default: the bad field reads as its default
	assert.Equal(t, "FANSPEED=10\nAVCHECK=false\n", e.mustRun(t, "get", "FANSPEED", "AVCHECK"))

	_, err := e.run("--strict", "get", "FANSPEED")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestDiff(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "set", "FANSPEED=30")

	assert.Equal(t, "FANSPEED=30 (default 10)\n", e.mustRun(t, "diff"))

	other := filepath.Join(e.dir, "other.cfg")
	require.NoError(t, os.WriteFile(other, []byte("FANSPEED=40\r\nAVCHECK=0\r\n"), 0644))
	out := e.mustRun(t, "diff", other)
	assert.Equal(t, "AVCHECK: true -> false\nFANSPEED: 30 -> 40\n", out)
}

func TestPresets(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "set", "BLOBCOLOR=0xFF0000", "FANSPEED=30")

	out := e.mustRun(t, "preset", "save", "red", "--group", "blob")
	assert.Contains(t, out, "saved 8 field(s)")

	preset, err := os.ReadFile(filepath.Join(e.dir, "presets", "red.cfg"))
	require.NoError(t, err)
	assert.Equal(t, "BLOBCOLOR=0xFF0000\r\n", string(preset))

	e.mustRun(t, "reset")
	e.mustRun(t, "preset", "load", "red", "--field", "blobcolor")
	assert.Equal(t, "BLOBCOLOR=0xFF0000\r\n", e.readConfig(t))

	t.Run("Missing", func(t *testing.T) {
		_, err := e.run("preset", "load", "absent", "--group", "blob")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `no preset named "absent"`)
	})

	t.Run("NoFields", func(t *testing.T) {
		_, err := e.run("preset", "save", "empty")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--group or --field")
	})
}

func TestExportImport(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "set", "FANSPEED=30")

	out := e.mustRun(t, "export", "--format", "json")
	assert.Contains(t, out, `"FANSPEED": 30`)
	assert.Contains(t, out, `"CUSTOMBLOB": "C:\\flubber.x"`)

	yamlPath := filepath.Join(e.dir, "values.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("fanspeed: 40\nCUSTOMBLOB: \"\"\n"), 0644))
	e.mustRun(t, "import", yamlPath)
	assert.Equal(t, "FANSPEED=40\nCUSTOMBLOB=none\n", e.mustRun(t, "get", "FANSPEED", "CUSTOMBLOB"))

	tomlPath := filepath.Join(e.dir, "values.toml")
	e.mustRun(t, "export", tomlPath)
	data, err := os.ReadFile(tomlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FANSPEED = 40")
}

func TestFields(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun(t, "fields", "--group", "glow")
	assert.Contains(t, out, "GLOWCOLOR")
	assert.Contains(t, out, "IOGLOWCOLOR")
	assert.NotContains(t, out, "FANSPEED")

	out = e.mustRun(t, "fields")
	assert.Contains(t, out, "FANSPEED")
	assert.Contains(t, out, "integer between 10 and 50")
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun(t, "--version")
	assert.Contains(t, out, "test (commit: abc123, built: today)")
}
