package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	config "github.com/jcn509/Xbox-BIOS-config-editor-for-XBMC"
)

func newExportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write field values as TOML, YAML or JSON",
		Long: `Write every field's value, in the form shown by get, to FILE or to standard
output. The format comes from --format or from the extension of FILE.`,
		Example: `  # Print as YAML
  indbios export --format yaml

  # Save as JSON
  indbios export settings.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				f, err := config.ParseFormat(format)
				if err != nil {
					return err
				}
				return cfg.Export(cmd.OutOrStdout(), f)
			}

			if err := cfg.ExportFile(args[0]); err != nil {
				return err
			}
			log.Info().Str("path", args[0]).Msg("Config exported")
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", "output format when writing to stdout (toml, yaml, json)")

	return cmd
}

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Set field values from a TOML, YAML or JSON file",
		Long: `Read field values from FILE, in the form produced by export, and save them
to the config file. Fields missing from FILE keep their value. The format comes
from the extension of FILE.`,
		Example: `  # Apply settings kept in version control
  indbios import settings.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := cfg.ImportFile(args[0], policy()); err != nil {
				return err
			}
			log.Info().Str("path", args[0]).Msg("Values imported")
			return saveConfig(cfg)
		},
	}

	return cmd
}
