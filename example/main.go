// Command example walks through the config engine: building an iND-BiOS
// config, editing it, saving a preset and writing the file.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	config "github.com/jcn509/Xbox-BIOS-config-editor-for-XBMC"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	dir, err := os.MkdirTemp("", "indbios-example")
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot create work directory")
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "ind_bios.cfg")
	presetPath := filepath.Join(dir, "presets", "red-flubber.cfg")

	// =========================================================================
	// PART 1: BUILD FROM A FILE THAT DOES NOT EXIST YET
	// =========================================================================
	log.Info().Msg("PART 1: Building config")

	cfg, err := config.NewIndBiosBuilder().
		WithFile(configPath).
		WithLogger(log.Logger).
		Build()
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		log.Fatal().Err(err).Msg("Build failed")
	}
	log.Info().Int("fields", len(cfg.Options())).Msg("Started from defaults")

	// =========================================================================
	// PART 2: EDIT VALUES
	// Invalid values are rejected and the field keeps its previous value.
	// =========================================================================
	log.Info().Msg("PART 2: Editing values")

	must(cfg.Set("FANSPEED", 30))
	must(cfg.Set("DASH1", `E:\dashboards\xbmc\default.xbe`))
	must(cfg.Set("BLOBCOLOR", "0xFF2020"))
	must(cfg.Set("FOG1COLOR", "0xFF400000"))
	must(cfg.Set("CUSTOMBLOB", nil))

	if err := cfg.Set("FANSPEED", 99); err != nil {
		log.Warn().Err(err).Msg("Rejected as expected")
	}
	if err := cfg.Set("DASH2", `X:\nowhere.xbe`); err != nil {
		log.Warn().Err(err).Msg("Rejected as expected")
	}

	dash, _ := cfg.Serialized("DASH1")
	log.Info().Str("native", `E:\dashboards\xbmc\default.xbe`).Str("file", dash).Msg("Paths are stored in device form")

	// =========================================================================
	// PART 3: PRESETS
	// Save the Flubber page and apply it to a fresh config.
	// =========================================================================
	log.Info().Msg("PART 3: Presets")

	flubber, err := config.GroupFields("flubber")
	must(err)
	must(cfg.SavePresetFile(presetPath, flubber))

	other := config.NewIndBios()
	must(other.Set("FANSPEED", 45))
	must(other.LoadPresetFile(presetPath, flubber, config.RaiseError))
	for _, change := range other.NonDefault() {
		log.Info().Str("field", change.Field).Str("value", config.FormatNative(change.Value)).Msg("Preset target differs from default")
	}

	// =========================================================================
	// PART 4: WRITE AND READ BACK
	// Derived fields such as FOG1CUSTOM are recomputed on write.
	// =========================================================================
	log.Info().Msg("PART 4: Writing the file")

	must(cfg.WriteFile(configPath, true))
	data, err := os.ReadFile(configPath)
	must(err)
	fmt.Print(string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))))

	reread := config.NewIndBios()
	must(reread.ReadFile(configPath, config.RaiseError))
	log.Info().Strs("differences", cfg.Diff(reread)).Msg("Read back")
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("Example failed")
	}
}
