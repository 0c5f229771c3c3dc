package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQueryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "query <phrase>...",
		Short: "Run one-off lookups against the loaded gazetteers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensureLoaded(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, phrase := range args {
				fmt.Fprintf(out, "%s:\n", phrase)
				fmt.Fprintf(out, "  entry_types    %s\n", ctx.aggregate.ClosestEntryTypes(phrase))
				fmt.Fprintf(out, "  token_types    %s\n", ctx.aggregate.ClosestTokenTypes(phrase))
				fmt.Fprintf(out, "  entry_distance %.3f\n", ctx.aggregate.MinimumDistanceToEntry(phrase))
				fmt.Fprintf(out, "  token_distance %.3f\n", ctx.aggregate.MinimumDistanceToToken(phrase))
				for _, g := range ctx.gazetteers {
					fmt.Fprintf(out, "  [%s] official=%t synonym=%t closest=%s\n",
						g.Category(),
						g.ContainsAsOfficialName(phrase),
						g.ContainsAsSynonym(phrase),
						g.ClosestOfficialName(phrase))
				}
			}
			return nil
		},
	}
}
