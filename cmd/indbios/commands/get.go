package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	config "github.com/jcn509/Xbox-BIOS-config-editor-for-XBMC"
)

func newGetCommand() *cobra.Command {
	var serialized bool

	cmd := &cobra.Command{
		Use:   "get [NAME...]",
		Short: "Print field values",
		Long: `Print the current value of the named fields, or of every field when no
name is given. Names are case-insensitive.

By default values are shown as edited (C:\dash.xbe). With --serialized they are
shown as stored in the file (\Device\Harddisk0\Partition2\dash.xbe).`,
		Example: `  # Print the dashboards
  indbios get dash1 dash2 dash3

  # Print the file form of every field
  indbios get --serialized`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = cfg.Options()
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				if serialized {
					value, err := cfg.Serialized(name)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s=%s\n", config.CanonicalName(name), value)
					continue
				}
				value, err := cfg.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s=%s\n", config.CanonicalName(name), config.FormatNative(value))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&serialized, "serialized", false, "print values as stored in the file")

	return cmd
}
