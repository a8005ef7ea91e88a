package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"sindex/internal/episode"
	"sindex/internal/seriesindex"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var allBefore bool

	cmd := &cobra.Command{
		Use:   "add SERIES FILENAME",
		Short: "Record an episode as watched",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, filename := args[0], args[1]
			id, ok := episode.Extract(filename)
			if !ok {
				return fmt.Errorf("no episode identifier in %q", filename)
			}
			language, err := ctx.language(lang, filename)
			if err != nil {
				return err
			}

			store, err := ctx.store()
			if err != nil {
				return err
			}
			lockCtx, cancel := ctx.lockContext(cmd)
			defer cancel()

			var name string
			err = store.Update(lockCtx, func(ix *seriesindex.Index) error {
				resolved, ok := ix.Resolve(query)
				if !ok {
					return fmt.Errorf("add episode: %w: %q", seriesindex.ErrSeriesNotFound, query)
				}
				name = resolved
				if allBefore {
					ix.AddEpisodeWithBackfill(query, filename, language)
				} else {
					ix.AddEpisodeToIndex(query, filename, language)
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %s (%s)\n", name, id.Marker(), language)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Episode language (default: detected from the filename, then index.default_language)")
	cmd.Flags().BoolVar(&allBefore, "all-before", false, "Also mark every earlier episode as watched")
	return cmd
}

func newNewSeriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "new-series NAME",
		Short: "Add a series to the index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}
			lockCtx, cancel := ctx.lockContext(cmd)
			defer cancel()
			if err := store.Update(lockCtx, func(ix *seriesindex.Index) error {
				return ix.AddNewSeries(args[0])
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added series %s\n", args[0])
			return nil
		},
	}
}

func newAliasCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "alias ALIAS SERIES",
		Short: "Redirect an alternative name to a series",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}
			lockCtx, cancel := ctx.lockContext(cmd)
			defer cancel()

			var target string
			if err := store.Update(lockCtx, func(ix *seriesindex.Index) error {
				if err := ix.AddAlias(args[0], args[1]); err != nil {
					return err
				}
				target = ix.Aliases()[args[0]]
				return nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Alias %s -> %s\n", args[0], target)
			return nil
		},
	}
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var force bool

	cmd := &cobra.Command{
		Use:   "build DIR",
		Short: "Seed the index from a directory of series folders",
		Long: "Every subdirectory of DIR becomes a series; video files below it that carry an\n" +
			"SxxEyy marker are recorded as watched. A non-empty index is only extended with --force,\n" +
			"in which case scanned series replace existing ones of the same name.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, err := ctx.language(lang, "")
			if err != nil {
				return err
			}
			store, err := ctx.store()
			if err != nil {
				return err
			}
			lockCtx, cancel := ctx.lockContext(cmd)
			defer cancel()

			var total int
			err = store.Update(lockCtx, func(ix *seriesindex.Index) error {
				if !ix.Empty() && !force {
					return fmt.Errorf("index %s already holds %d series (use --force to extend it)", store.Path(), ix.Len())
				}
				if err := ix.BuildFromDirectory(afero.NewOsFs(), args[0], language); err != nil {
					return err
				}
				total = ix.Len()
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Index now holds %d series\n", total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Language of the scanned episodes (default: index.default_language)")
	cmd.Flags().BoolVar(&force, "force", false, "Extend a non-empty index")
	return cmd
}

func newMergeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "merge FILE",
		Short: "Merge another index document into the index",
		Long:  "Series from FILE replace series of the same name; its aliases are added when they do not conflict.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("merge: %s does not exist", args[0])
				}
				return fmt.Errorf("merge: %w", err)
			}
			defer file.Close()
			other, err := seriesindex.Import(file)
			if err != nil {
				return err
			}

			store, err := ctx.store()
			if err != nil {
				return err
			}
			lockCtx, cancel := ctx.lockContext(cmd)
			defer cancel()
			var total int
			if err := store.Update(lockCtx, func(ix *seriesindex.Index) error {
				ix.Merge(other)
				total = ix.Len()
				return nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d series; index now holds %d series\n", other.Len(), total)
			return nil
		},
	}
}
