package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sindex/internal/document"
	"sindex/internal/language"
	"sindex/internal/seriesindex"
)

type languageSummary struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Episodes int    `json:"episodes"`
	Real     int    `json:"real"`
}

type seriesSummary struct {
	Name           string            `json:"name"`
	ReceiveUpdates bool              `json:"receive_updates"`
	Aliases        []string          `json:"aliases,omitempty"`
	Languages      []languageSummary `json:"languages"`
}

func summarize(ix *seriesindex.Index) []seriesSummary {
	aliases := map[string][]string{}
	for alias, target := range ix.Aliases() {
		aliases[target] = append(aliases[target], alias)
	}

	out := make([]seriesSummary, 0, ix.Len())
	for _, name := range ix.SeriesNames() {
		series, _ := ix.Series(name)
		summary := seriesSummary{
			Name:           name,
			ReceiveUpdates: series.ReceiveUpdates,
			Aliases:        slices.Sorted(slices.Values(aliases[name])),
			Languages:      []languageSummary{},
		}
		for _, code := range series.Languages() {
			summary.Languages = append(summary.Languages, languageSummary{
				Code:     code,
				Name:     language.DisplayName(code),
				Episodes: series.Count(code),
				Real:     series.RealCount(code),
			})
		}
		out = append(out, summary)
	}
	return out
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List series, languages and watched counts",
		Args:  cobra.NoArgs,
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

			summaries := summarize(ix)
			if asJSON {
				return writeJSON(cmd, summaries)
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Index is empty")
				return nil
			}

			rows := make([][]string, 0, len(summaries))
			var watched, files int
			for _, s := range summaries {
				aliasText := strings.Join(s.Aliases, ", ")
				if len(s.Languages) == 0 {
					rows = append(rows, []string{s.Name, aliasText, yesNo(s.ReceiveUpdates), "-", "0", "0"})
					continue
				}
				for i, l := range s.Languages {
					watched += l.Episodes
					files += l.Real
					name, updates := s.Name, yesNo(s.ReceiveUpdates)
					if i > 0 {
						name, aliasText, updates = "", "", ""
					}
					rows = append(rows, []string{name, aliasText, updates, l.Code, strconv.Itoa(l.Episodes), strconv.Itoa(l.Real)})
				}
			}
			table := renderTable(
				[]string{"Series", "Aliases", "Updates", "Lang", "Watched", "Files"},
				rows,
				[]string{fmt.Sprintf("%d series", len(summaries)), "", "", "", strconv.Itoa(watched), strconv.Itoa(files)},
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the index document to stdout",
		Args:  cobra.NoArgs,
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
			return ix.Export(cmd.OutOrStdout())
		},
	}
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check an index document against the schema",
		Long:  "Validates FILE, or the configured index document when FILE is omitted, and prints every violation.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				path = cfg.Index.Path
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open index document: %w", err)
			}
			defer file.Close()

			out := cmd.OutOrStdout()
			root, err := document.Parse(file, seriesindex.Schema)
			var verr *document.ValidationError
			if errors.As(err, &verr) {
				for _, v := range verr.Violations {
					fmt.Fprintln(out, v.String())
				}
				return fmt.Errorf("%s: %d violation(s)", path, len(verr.Violations))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s is valid (%d series)\n", path, len(root.ChildrenNamed("series")))
			return nil
		},
	}
}
