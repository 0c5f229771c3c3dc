package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print entry and token counts for the loaded gazetteers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensureLoaded(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "categories %d\n", len(ctx.gazetteers))
			fmt.Fprintf(out, "entries    %d\n", ctx.aggregate.EntryCount())
			fmt.Fprintf(out, "tokens     %d\n", ctx.aggregate.TokenCount())
			return nil
		},
	}
}
