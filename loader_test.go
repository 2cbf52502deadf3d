package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"toml":  FormatTOML,
		".tml":  FormatTOML,
		"YAML":  FormatYAML,
		".yml":  FormatYAML,
		"json":  FormatJSON,
		".JSON": FormatJSON,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("ini")
	assert.Error(t, err)

	_, err = detectFileFormat("settings")
	assert.Error(t, err)
}

// TestMultiFormatExport tests exporting in every format
func TestMultiFormatExport(t *testing.T) {
	c := NewIndBios()
	require.NoError(t, c.Set("FANSPEED", 30))
	require.NoError(t, c.Set("CUSTOMBLOB", nil))

	t.Run("TOML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, c.Export(&buf, FormatTOML))

		var data map[string]any
		require.NoError(t, toml.Unmarshal(buf.Bytes(), &data))
		assert.Len(t, data, 69)
		assert.Equal(t, int64(30), data["FANSPEED"])
		assert.Equal(t, "", data["CUSTOMBLOB"])
		assert.Equal(t, `C:\evoxdash.xbe`, data["DASH1"])
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, c.Export(&buf, FormatYAML))

		var data map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &data))
		assert.Equal(t, 30, data["FANSPEED"])
		assert.Equal(t, true, data["AVCHECK"])
		assert.Equal(t, "Quick", data["IGRMODE"])
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, c.Export(&buf, FormatJSON))
		assert.Contains(t, buf.String(), `"FANSPEED": 30`)
		assert.Contains(t, buf.String(), `"CAMERAVIEW": "-1"`)
	})

	t.Run("Unsupported", func(t *testing.T) {
		assert.Error(t, c.Export(&bytes.Buffer{}, Format("ini")))
	})
}

// TestMultiFormatImport tests importing values in every format
func TestMultiFormatImport(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatTOML, "fanspeed = 30\nAVCHECK = false\nDASH1 = 'E:\\xbmc.xbe'\nCUSTOMBLOB = ''\n"},
		{FormatYAML, "fanspeed: 30\nAVCHECK: false\nDASH1: 'E:\\xbmc.xbe'\nCUSTOMBLOB: \"\"\n"},
		{FormatJSON, `{"fanspeed": 30, "AVCHECK": false, "DASH1": "E:\\xbmc.xbe", "CUSTOMBLOB": null}`},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			c := NewIndBios()
			require.NoError(t, c.Import(strings.NewReader(tt.input), tt.format, RaiseError))

			fan, _ := c.Int("FANSPEED")
			assert.Equal(t, 30, fan)
			avcheck, _ := c.Bool("AVCHECK")
			assert.False(t, avcheck)
			dash, _ := c.String("DASH1")
			assert.Equal(t, `E:\xbmc.xbe`, dash)
			_, set, _ := c.OptionalPath("CUSTOMBLOB")
			assert.False(t, set)

			assert.Len(t, c.NonDefault(), 4)
		})
	}

	t.Run("ExportImportRoundTrip", func(t *testing.T) {
		source, err := readFixture(t, "valid1.cfg", RaiseError)
		require.NoError(t, err)

		for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
			var buf bytes.Buffer
			require.NoError(t, source.Export(&buf, format))

			target := NewIndBios()
			require.NoError(t, target.Import(&buf, format, RaiseError), format)
			assert.Empty(t, source.Diff(target), format)
		}
	})

	t.Run("InvalidValues", func(t *testing.T) {
		input := `{"FANSPEED": 99, "AVCHECK": "maybe", "BLOBRADI": 2.5, "TMS": false}`

		c := NewIndBios()
		err := c.Import(strings.NewReader(input), FormatJSON, RaiseError)
		assert.ErrorIs(t, err, ErrInvalidValue)

		c = NewIndBios()
		require.NoError(t, c.Import(strings.NewReader(input), FormatJSON, ResetToDefault))

		changes := c.NonDefault()
		require.Len(t, changes, 1)
		assert.Equal(t, "TMS", changes[0].Field)
	})

	t.Run("UnknownKeys", func(t *testing.T) {
		input := "VOLUME: 3\nFANSPEED: 20\n"

		err := NewIndBios().Import(strings.NewReader(input), FormatYAML, RaiseError)
		assert.ErrorIs(t, err, ErrUnknownField)

		c := NewIndBios()
		require.NoError(t, c.Import(strings.NewReader(input), FormatYAML, ResetToDefault))
		fan, _ := c.Int("FANSPEED")
		assert.Equal(t, 20, fan)
	})

	t.Run("Malformed", func(t *testing.T) {
		assert.Error(t, NewIndBios().Import(strings.NewReader("{"), FormatJSON, ResetToDefault))
		assert.Error(t, NewIndBios().Import(strings.NewReader("a = = 1"), FormatTOML, ResetToDefault))
		assert.Error(t, NewIndBios().Import(strings.NewReader("x: [1"), FormatYAML, ResetToDefault))
	})
}

func TestExportImportFiles(t *testing.T) {
	dir := t.TempDir()

	source := NewIndBios()
	require.NoError(t, source.Set("XLOGOSCALE", 50))

	for _, name := range []string{"values.toml", "values.yaml", "values.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, source.ExportFile(path))

			target := NewIndBios()
			require.NoError(t, target.ImportFile(path, RaiseError))
			assert.Empty(t, source.Diff(target))
		})
	}

	assert.Error(t, source.ExportFile(filepath.Join(dir, "values.ini")))
	assert.ErrorIs(t, NewIndBios().ImportFile(filepath.Join(dir, "absent.json"), RaiseError), os.ErrNotExist)
}

// TestScan tests decoding into a struct
func TestScan(t *testing.T) {
	type Boot struct {
		Dash1      string `config:"DASH1"`
		Dashboards string `config:"DASH2"`
		Intro      bool   `config:"INTRO"`
		FanSpeed   int    `config:"FANSPEED"`
		CustomBlob string `config:"CUSTOMBLOB"`
		Camera     int    `config:"CAMERAVIEW"`
	}

	c := NewIndBios()
	require.NoError(t, c.Set("FANSPEED", 35))
	require.NoError(t, c.Set("CUSTOMBLOB", nil))
	require.NoError(t, c.Set("CAMERAVIEW", "7"))

	var boot Boot
	require.NoError(t, c.Scan(&boot))
	assert.Equal(t, `C:\evoxdash.xbe`, boot.Dash1)
	assert.Equal(t, `C:\nexgen.xbe`, boot.Dashboards)
	assert.True(t, boot.Intro)
	assert.Equal(t, 35, boot.FanSpeed)
	assert.Empty(t, boot.CustomBlob)
	assert.Equal(t, 7, boot.Camera, "weakly typed decode")

	t.Run("Map", func(t *testing.T) {
		values := map[string]any{}
		require.NoError(t, c.Scan(&values))
		assert.Len(t, values, 69)
		assert.Equal(t, 35, values["FANSPEED"])
	})

	t.Run("InvalidTargets", func(t *testing.T) {
		assert.Error(t, c.Scan(nil))
		assert.Error(t, c.Scan(boot))
		var nilBoot *Boot
		assert.Error(t, c.Scan(nilBoot))
	})
}

func TestParseNative(t *testing.T) {
	c := NewIndBios()

	tests := []struct {
		name string
		text string
		want any
	}{
		{"AVCHECK", "true", true},
		{"avcheck", "0", false},
		{"FANSPEED", " 25", 25},
		{"XSKEWLOGO", "-7", -7},
		{"IGRMODE", "Off", "Off"},
		{"CUSTOMBLOB", "none", nil},
		{"CUSTOMBLOB", "", nil},
		{"CUSTOMBLOB", `C:\b.x`, `C:\b.x`},
		{"LEDPATTERN", "RRRR", "RRRR"},
	}
	for _, tt := range tests {
		got, err := c.ParseNative(tt.name, tt.text)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := c.ParseNative("AVCHECK", "maybe")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = c.ParseNative("FANSPEED", "fast")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = c.ParseNative("NOPE", "1")
	assert.ErrorIs(t, err, ErrUnknownField)
}
