package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCommand() *cobra.Command {
	var groups []string

	cmd := &cobra.Command{
		Use:   "reset [NAME...]",
		Short: "Restore fields to their defaults",
		Long: `Restore the named fields, the fields of the given groups, or every field
when neither is given, to their default values and save the config file.`,
		Example: `  # Reset the whole file
  indbios reset

  # Reset the Flubber animation
  indbios reset --group flubber

  # Reset two fields
  indbios reset FANSPEED LEDPATTERN`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fields, err := resolveFields(groups, args)
			if err != nil {
				return err
			}

			before := cfg.Clone()
			if err := cfg.ResetToDefaults(fields...); err != nil {
				return err
			}
			if err := saveConfig(cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d field(s) reset\n", len(before.Diff(cfg)))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&groups, "group", "g", nil, "reset every field of this group")

	return cmd
}
