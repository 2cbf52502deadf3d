package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	config "github.com/jcn509/Xbox-BIOS-config-editor-for-XBMC"
)

func newDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [OTHER]",
		Short: "Show changed fields",
		Long: `Without an argument, list the fields of the config file that differ from
their defaults. With OTHER, list the fields that differ between the config file
and OTHER.`,
		Example: `  # What did I change?
  indbios diff

  # Compare with a backup
  indbios diff backup/ind_bios.cfg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, change := range cfg.NonDefault() {
					fmt.Fprintf(out, "%s=%s (default %s)\n", change.Field, config.FormatNative(change.Value), config.FormatNative(change.Default))
				}
				return nil
			}

			other := config.NewWithOptions(config.IndBiosSchema(), indBiosOptions())
			if err := other.ReadFile(args[0], policy()); err != nil {
				return err
			}
			for _, name := range cfg.Diff(other) {
				mine, _ := cfg.Get(name)
				theirs, _ := other.Get(name)
				fmt.Fprintf(out, "%s: %s -> %s\n", name, config.FormatNative(mine), config.FormatNative(theirs))
			}
			return nil
		},
	}

	return cmd
}
