package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andreiashu/gazetteer"
)

func newAnnotateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "annotate",
		Short: "Annotate whitespace-tokenized lines from stdin with feature strings",
		Long: "Reads lines from stdin, treats each line as one window of " +
			"whitespace-separated tokens, and prints each token followed by " +
			"its feature strings, one token per line with a blank line " +
			"between windows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensureLoaded(); err != nil {
				return err
			}
			generators := gazetteer.CreateFeatures(ctx.aggregate, ctx.gazetteers)

			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				words := strings.Fields(scanner.Text())
				if len(words) == 0 {
					continue
				}
				window := gazetteer.NewWindow(words...)

				features := make([][]string, len(words))
				for _, gen := range generators {
					for i, fs := range gen.ConvertWindow(window) {
						features[i] = append(features[i], fs...)
					}
				}
				for i, word := range words {
					fmt.Fprintf(out, "%s\t%s\n", word, strings.Join(features[i], " "))
				}
				fmt.Fprintln(out)
			}
			return scanner.Err()
		},
	}
}
