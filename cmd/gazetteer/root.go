package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/andreiashu/gazetteer"
)

// commandContext carries the lazily-built gazetteers shared by all
// subcommands.
type commandContext struct {
	configPath *string

	aggregate  *gazetteer.AggregateGazetteer
	gazetteers []*gazetteer.Gazetteer
}

// ensureLoaded builds the gazetteers from the config file once; later
// calls reuse them.
func (ctx *commandContext) ensureLoaded() error {
	if ctx.aggregate != nil {
		return nil
	}
	if *ctx.configPath == "" {
		return fmt.Errorf("no config file given, use --config")
	}

	cfg, err := gazetteer.LoadRunConfig(*ctx.configPath)
	if err != nil {
		return err
	}

	slog.Debug("loading gazetteers", "config", *ctx.configPath, "categories", len(cfg.Sources))
	ag, gazetteers, err := cfg.Build()
	if err != nil {
		return err
	}
	ctx.aggregate = ag
	ctx.gazetteers = gazetteers
	return nil
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var verboseFlag bool

	ctx := &commandContext{configPath: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "gazetteer",
		Short:         "Fuzzy matching against categorized entity name lists",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verboseFlag {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "TOML config mapping categories to source files")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newQueryCommand(ctx))
	rootCmd.AddCommand(newAnnotateCommand(ctx))
	rootCmd.AddCommand(newStatsCommand(ctx))

	return rootCmd
}
