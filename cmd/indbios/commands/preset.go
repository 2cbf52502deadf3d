package commands

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	config "github.com/jcn509/Xbox-BIOS-config-editor-for-XBMC"
)

func newPresetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Save and load groups of fields",
		Long: `Presets hold a subset of fields, such as the Flubber animation or the
Xbox logo. Loading a preset only touches the fields it was loaded for.

A bare NAME refers to NAME.cfg in the preset directory. Anything containing a
path separator or an extension is used as a path.`,
	}

	cmd.AddCommand(newPresetSaveCommand())
	cmd.AddCommand(newPresetLoadCommand())

	return cmd
}

func newPresetSaveCommand() *cobra.Command {
	var (
		groups []string
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save fields of the config file as a preset",
		Example: `  # Save the Flubber animation
  indbios preset save green-flubber --group flubber`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := presetFields(groups, fields)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path := presetPath(args[0])
			if err := cfg.SavePresetFile(path, names); err != nil {
				return err
			}

			log.Info().Str("path", path).Int("fields", len(names)).Msg("Preset saved")
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d field(s) to %s\n", len(names), path)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&groups, "group", "g", nil, "include every field of this group")
	cmd.Flags().StringSliceVar(&fields, "field", nil, "include this field")

	return cmd
}

func newPresetLoadCommand() *cobra.Command {
	var (
		groups []string
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "load NAME",
		Short: "Apply a preset to the config file",
		Example: `  # Apply the Flubber animation
  indbios preset load green-flubber --group flubber`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := presetFields(groups, fields)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path := presetPath(args[0])
			if err := cfg.LoadPresetFile(path, names, policy()); err != nil {
				if config.IsPresetMissing(err) {
					return fmt.Errorf("no preset named %q in %s", args[0], current.PresetDir)
				}
				return err
			}
			if err := saveConfig(cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d field(s) from %s\n", len(names), path)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&groups, "group", "g", nil, "apply every field of this group")
	cmd.Flags().StringSliceVar(&fields, "field", nil, "apply this field")

	return cmd
}

// presetFields requires at least one group or field.
func presetFields(groups, fields []string) ([]string, error) {
	if len(groups) == 0 && len(fields) == 0 {
		return nil, errors.New("select fields with --group or --field")
	}
	return resolveFields(groups, fields)
}
