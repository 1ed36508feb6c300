package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datakortet/ttcal"
	"github.com/datakortet/ttcal/internal/ics"
	"github.com/datakortet/ttcal/internal/model"
)

func newICSCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export periods to, and read occasions from, iCalendar",
	}
	cmd.AddCommand(newICSExportCmd(a), newICSImportCmd(a))
	return cmd
}

func newICSExportCmd(a *app) *cobra.Command {
	var (
		name      string
		occasions bool
	)

	cmd := &cobra.Command{
		Use:   "export period...",
		Short: "Write periods as all-day events",
		Example: `  ttcal ics export w201215 m20125 > periods.ics
  ttcal ics export --occasions q20122`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				entries []ics.Entry
				spans   []ttcal.Span
			)
			for _, arg := range args {
				s, err := resolveSpan(arg)
				if err != nil {
					return err
				}
				spans = append(spans, s)
				entries = append(entries, ics.SpanEntry(s, s.Format(a.cfg.Formats.For(s))))
			}
			if occasions && len(a.cfg.ICS) > 0 {
				all := a.occasions(cmd.Context())
				seen := map[string]bool{}
				for _, s := range spans {
					for _, o := range model.Within(all, s) {
						if seen[o.UID] {
							continue
						}
						seen[o.UID] = true
						entries = append(entries, ics.OccasionEntry(o))
					}
				}
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), ics.Export(name, entries...))
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "ttcal", "Calendar name (X-WR-CALNAME)")
	cmd.Flags().BoolVar(&occasions, "occasions", false, "Include feed occasions inside the periods")
	return cmd
}

func newICSImportCmd(a *app) *cobra.Command {
	var within string

	cmd := &cobra.Command{
		Use:   "import {file|url}",
		Short: "List the occasions of an ICS file or feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := ics.Source{ID: "import", Name: args[0], URL: args[0]}
			res, err := ics.NewFetcher(a.cfg.CacheDir).FetchOne(cmd.Context(), src)
			if err != nil {
				return err
			}
			occs, err := ics.Parse(src, res.Body, time.Local)
			if err != nil {
				return err
			}
			if within != "" {
				s, err := resolveSpan(within)
				if err != nil {
					return err
				}
				occs = model.Within(occs, s)
			}

			out := cmd.OutOrStdout()
			for _, o := range occs {
				when := o.First.String()
				if o.Last.String() != when {
					when += ".." + o.Last.String()
				}
				if _, err := fmt.Fprintf(out, "%-22s %-12s %s\n", when, o.First.WeekOf().IDTag(), o.Summary); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&within, "within", "", "Only occasions overlapping this period")
	return cmd
}
