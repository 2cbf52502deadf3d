package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	config "github.com/jcn509/Xbox-BIOS-config-editor-for-XBMC"
	"github.com/jcn509/Xbox-BIOS-config-editor-for-XBMC/internal/watch"
)

func newWatchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report changes to the config file as they happen",
		Long: `Watch the config file and print every field that changes each time the
file is saved, for example by an FTP client or another editor. Invalid files
are reported without stopping. Stop with Ctrl-C.`,
		Example: `  # Watch the configured file
  indbios watch

  # Watch a file on a mounted Xbox drive
  indbios watch -f /mnt/xbox/C/ind_bios.cfg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initial, err := loadConfig()
			if err != nil {
				return err
			}

			load := func(path string) (*config.Config, error) {
				cfg := config.NewWithOptions(config.IndBiosSchema(), indBiosOptions())
				if err := cfg.ReadFile(path, policy()); err != nil {
					return nil, err
				}
				return cfg, nil
			}

			opts := watch.DefaultOptions()
			opts.Debounce = debounce
			opts.Logger = log.Logger

			events, err := watch.New(current.ConfigFile, initial, load, opts).Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for ev := range events {
				switch {
				case ev.Err != nil:
					log.Error().Err(ev.Err).Msg("Config file is invalid")
				case ev.Removed:
					fmt.Fprintln(out, "config file removed")
				default:
					for _, name := range ev.Changed {
						value, _ := ev.Config.Get(name)
						fmt.Fprintf(out, "%s=%s\n", name, config.FormatNative(value))
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "wait this long for writes to settle")

	return cmd
}
