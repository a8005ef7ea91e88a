package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sindex/internal/episode"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var fuzzy bool

	cmd := &cobra.Command{
		Use:   "check [SERIES] EPISODE",
		Short: "Report whether an episode was already watched",
		Long: "Prints \"watched\" when the episode is recorded for the series and language, \"new\" otherwise.\n" +
			"With a single argument the series name is taken from the release name before its SxxEyy marker.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			series, text := "", args[len(args)-1]
			if len(args) == 2 {
				series = args[0]
			} else {
				name, ok := episode.ExtractSeriesName(text)
				if !ok {
					return fmt.Errorf("no series name in %q", text)
				}
				series = name
			}
			if _, ok := episode.Extract(text); !ok {
				return fmt.Errorf("no episode identifier in %q", text)
			}
			language, err := ctx.language(lang, text)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("fuzzy") {
				fuzzy = cfg.Scan.Fuzzy
			}

			store, err := ctx.store()
			if err != nil {
				return err
			}
			lockCtx, cancel := ctx.lockContext(cmd)
			defer cancel()
			ix, err := store.Load(lockCtx)
			if err != nil {
				return err
			}

			var watched bool
			if fuzzy {
				watched = ix.EpisodeExistingFuzzy(series, text, language)
			} else {
				watched = ix.EpisodeExisting(series, text, language)
			}
			if watched {
				fmt.Fprintln(cmd.OutOrStdout(), "watched")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "new")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Episode language (default: detected from the release name, then index.default_language)")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "Fall back to fuzzy series matching (default: scan.fuzzy)")
	return cmd
}

func newHasSeriesCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var clean bool

	cmd := &cobra.Command{
		Use:   "has-series TEXT",
		Short: "Report whether a series is in the index",
		Long: "Prints \"yes\" or \"no\". TEXT is a release name unless --clean is given.\n" +
			"With --lang the series must also have episodes in that language.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}
			lockCtx, cancel := ctx.lockContext(cmd)
			defer cancel()
			ix, err := store.Load(lockCtx)
			if err != nil {
				return err
			}

			text := args[0]
			if lang == "" {
				fmt.Fprintln(cmd.OutOrStdout(), yesNo(ix.IsSeriesInIndex(text, clean)))
				return nil
			}
			language, err := ctx.language(lang, "")
			if err != nil {
				return err
			}
			query := text
			if !clean {
				if name, ok := episode.ExtractSeriesName(text); ok {
					query = name
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), yesNo(ix.IsSeriesInThisLanguage(query, language)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Require episodes in this language")
	cmd.Flags().BoolVar(&clean, "clean", false, "TEXT is already a series name")
	return cmd
}
