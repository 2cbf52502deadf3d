package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	config "github.com/jcn509/Xbox-BIOS-config-editor-for-XBMC"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check a config file",
		Long: `Check every line of a config file against the iND-BiOS schema.

This command checks:
  - line syntax
  - field names
  - field values
  - line length

The file is never modified. The first problem found is reported and the
command exits with an error.`,
		Example: `  # Validate the configured file
  indbios validate

  # Validate another file
  indbios validate backup/ind_bios.cfg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := current.ConfigFile
			if len(args) > 0 {
				path = args[0]
			}

			log.Info().Str("path", path).Msg("Validating config file")

			cfg := config.NewWithOptions(config.IndBiosSchema(), indBiosOptions())
			if err := cfg.ReadFile(path, config.RaiseError); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d non-default field(s))\n", path, len(cfg.NonDefault()))
			return nil
		},
	}

	return cmd
}

// indBiosOptions returns the firmware options with the command's logger.
func indBiosOptions() config.Options {
	opts := config.IndBiosOptions()
	opts.Logger = log.Logger
	return opts
}
