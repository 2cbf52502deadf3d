// Package settings loads the indbios command's own settings from a TOML file
// and INDBIOS_* environment variables.
package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

const (
	AppName   = "indbios"
	EnvPrefix = "INDBIOS_"
)

// Settings holds the command line tool's defaults.
type Settings struct {
	// ConfigFile is the iND-BiOS config edited when no --file is given.
	ConfigFile string `toml:"config_file" mapstructure:"config_file" validate:"required"`

	// PresetDir holds preset files referenced by bare name.
	PresetDir string `toml:"preset_dir" mapstructure:"preset_dir" validate:"required"`

	// Strict makes reads fail on invalid fields instead of resetting them.
	Strict bool `toml:"strict" mapstructure:"strict"`

	// OmitDefaults leaves default values out of written files.
	OmitDefaults bool `toml:"omit_defaults" mapstructure:"omit_defaults"`

	Log LogSettings `toml:"log" mapstructure:"log"`
}

// LogSettings configures logging.
type LogSettings struct {
	Level  string `toml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" mapstructure:"format" validate:"oneof=console json"`
}

// Default returns the settings used when no file or variable overrides them.
func Default() Settings {
	return Settings{
		ConfigFile:   "ind_bios.cfg",
		PresetDir:    "presets",
		OmitDefaults: true,
		Log: LogSettings{
			Level:  "info",
			Format: "console",
		},
	}
}

// paths lists every settings key, for environment lookup.
var paths = []string{
	"config_file",
	"preset_dir",
	"strict",
	"omit_defaults",
	"log.level",
	"log.format",
}

// Load builds settings from defaults, the file at path (skipped when path is
// empty) and INDBIOS_* environment variables, in increasing precedence.
func Load(path string) (Settings, error) {
	s := Default()

	data := make(map[string]any)
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("failed to read settings file '%s': %w", path, err)
		}
		if err := toml.Unmarshal(raw, &data); err != nil {
			return s, fmt.Errorf("failed to parse TOML settings file '%s': %w", path, err)
		}
	}

	flat := flattenMap(data, "")
	for _, p := range paths {
		if value, ok := os.LookupEnv(envName(EnvPrefix, p)); ok {
			flat[p] = value
		}
	}

	nested := make(map[string]any)
	for p, value := range flat {
		setNestedValue(nested, p, value)
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return s, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(nested); err != nil {
		return s, fmt.Errorf("failed to decode settings: %w", err)
	}
	if len(md.Unused) > 0 {
		return s, fmt.Errorf("unknown settings: %v", md.Unused)
	}

	if err := Validate(s); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks field constraints.
func Validate(s Settings) error {
	if err := validator.New().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid settings: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
