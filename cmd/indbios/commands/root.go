package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	config "github.com/jcn509/Xbox-BIOS-config-editor-for-XBMC"
	"github.com/jcn509/Xbox-BIOS-config-editor-for-XBMC/internal/settings"
)

var (
	// Global flags
	settingsPath string
	configFile   string
	verbose      bool
	strict       bool

	// Loaded in PersistentPreRunE
	current settings.Settings
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "indbios",
		Short: "Edit iND-BiOS configuration files",
		Long: `indbios reads, validates and edits the configuration file of the iND-BiOS
Xbox firmware.

Every value is checked against the firmware schema before it is written:
  - booleans, bounded integers and fixed choices
  - hex colours and LED patterns
  - dashboard and model paths on C:, E:, F:, G: or D:
  - the firmware's 300 character line limit

Presets copy one group of fields (for example the Flubber animation) between
config files.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadSettings(cmd)
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "settings file path")
	rootCmd.PersistentFlags().StringVarP(&configFile, "file", "f", "", "iND-BiOS config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on invalid fields instead of resetting them")

	// Add subcommands
	rootCmd.AddCommand(newFieldsCommand())
	rootCmd.AddCommand(newGetCommand())
	rootCmd.AddCommand(newSetCommand())
	rootCmd.AddCommand(newResetCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newDiffCommand())
	rootCmd.AddCommand(newPresetCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}

// loadSettings resolves the settings file, applies flag overrides and
// configures logging.
func loadSettings(cmd *cobra.Command) error {
	path := settings.Discover(settingsPath, settings.DefaultDiscoveryOptions())
	s, err := settings.Load(path)
	if err != nil {
		return err
	}

	if configFile != "" {
		s.ConfigFile = configFile
	}
	if cmd.Flags().Changed("strict") {
		s.Strict = strict
	}
	if verbose {
		s.Log.Level = "debug"
	}
	current = s

	configureLogging(s.Log)
	log.Debug().Str("settings", path).Str("config", s.ConfigFile).Bool("strict", s.Strict).Msg("Settings loaded")
	return nil
}

func configureLogging(ls settings.LogSettings) {
	if ls.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	level, err := zerolog.ParseLevel(ls.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

// policy returns the invalid field policy from settings.
func policy() config.InvalidPolicy {
	if current.Strict {
		return config.RaiseError
	}
	return config.ResetToDefault
}

// loadConfig reads the config file, starting from defaults when it does not
// exist yet.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewIndBiosBuilder().
		WithFile(current.ConfigFile).
		WithPolicy(policy()).
		WithLogger(log.Logger).
		Build()
	if errors.Is(err, config.ErrConfigNotFound) {
		log.Info().Str("path", current.ConfigFile).Msg("Config file does not exist, starting from defaults")
		return cfg, nil
	}
	return cfg, err
}

// saveConfig writes cfg back to the config file.
func saveConfig(cfg *config.Config) error {
	if err := cfg.WriteFile(current.ConfigFile, current.OmitDefaults); err != nil {
		return err
	}
	log.Info().Str("path", current.ConfigFile).Msg("Config saved")
	return nil
}

// resolveFields combines --group and explicit names into a field list.
func resolveFields(groups []string, names []string) ([]string, error) {
	var fields []string
	for _, g := range groups {
		members, err := config.GroupFields(g)
		if err != nil {
			return nil, fmt.Errorf("%w (groups: %s)", err, strings.Join(config.Groups(), ", "))
		}
		fields = append(fields, members...)
	}
	for _, name := range names {
		fields = append(fields, config.CanonicalName(name))
	}
	return fields, nil
}

// presetPath maps a bare preset name to a file in the preset directory.
func presetPath(name string) string {
	if strings.ContainsRune(name, filepath.Separator) || filepath.Ext(name) != "" {
		return name
	}
	return filepath.Join(current.PresetDir, name+".cfg")
}
