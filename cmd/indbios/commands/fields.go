package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	config "github.com/jcn509/Xbox-BIOS-config-editor-for-XBMC"
)

func newFieldsCommand() *cobra.Command {
	var groups []string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the fields of the iND-BiOS config",
		Long: `List every field with its type, default and constraint.

Use --group to restrict the list to one page of settings. Run with an unknown
group name to see the available groups.`,
		Example: `  # List all fields
  indbios fields

  # List the fog and glow fields
  indbios fields --group fog --group glow`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := config.IndBiosSchema()

			names := schema.Names()
			if len(groups) > 0 {
				var err error
				if names, err = resolveFields(groups, nil); err != nil {
					return err
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tDEFAULT\tCONSTRAINT")
			for _, name := range names {
				f, _ := schema.Lookup(name)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Name, f.Type.Kind(), config.FormatNative(f.Default), f.Type.Describe())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringSliceVarP(&groups, "group", "g", nil, "only list fields of this group")

	return cmd
}
