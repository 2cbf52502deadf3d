package commands

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set NAME=VALUE...",
		Short: "Change field values",
		Long: `Validate and store one or more field values, then save the config file.

Nothing is saved unless every assignment is valid. Booleans accept true/false
and 1/0. Optional paths accept "none" to unset them.`,
		Example: `  # Faster fan and a red LED
  indbios set FANSPEED=30 LEDPATTERN=RRRR

  # Boot a dashboard from F:
  indbios set 'DASH1=F:\apps\unleashx.xbe'

  # Disable the custom flubber model
  indbios set CUSTOMBLOB=none`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			staged := cfg.Clone()
			for _, arg := range args {
				name, text, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected NAME=VALUE, got %q", arg)
				}
				value, err := staged.ParseNative(name, text)
				if err != nil {
					return err
				}
				if err := staged.Set(name, value); err != nil {
					return err
				}
				log.Debug().Str("field", name).Str("value", text).Msg("Field set")
			}

			changed := cfg.Diff(staged)
			if err := saveConfig(staged); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d field(s) changed\n", len(changed))
			return nil
		},
	}

	return cmd
}
