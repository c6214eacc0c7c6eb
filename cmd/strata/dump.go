package main

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/strata"
)

func dumpCmd() *cobra.Command {
	var pages []int

	cmd := &cobra.Command{
		Use:   "dump <pdf>",
		Short: "Write the decoded fragments of a PDF as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fragments, err := strata.Open(args[0]).Pages(pages...).Fragments()
			if err != nil {
				return err
			}
			return strata.WriteFragments(cmd.OutOrStdout(), fragments)
		},
	}
	cmd.Flags().IntSliceVar(&pages, "pages", nil, "pages to decode (1-indexed, default: all)")
	return cmd
}
