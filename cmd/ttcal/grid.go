package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/datakortet/ttcal"
	"github.com/datakortet/ttcal/internal/model"
	"github.com/datakortet/ttcal/internal/render"
)

// gridFlags are shared by the month and year commands.
type gridFlags struct {
	color  string
	legend bool
	feeds  bool
}

func (g *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&g.color, "color", "auto", "Highlight today and marks: auto, always, never")
	cmd.Flags().BoolVar(&g.legend, "legend", false, "List marked days below the grid")
	cmd.Flags().BoolVar(&g.feeds, "feeds", true, "Mark occasions from the configured ICS feeds")
}

func (g *gridFlags) options(a *app, w io.Writer) (render.Options, error) {
	color, err := useColor(g.color, w)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		MonthFormat: a.cfg.Formats.Month,
		Color:       color,
		Legend:      g.legend,
	}, nil
}

// useColor resolves the --color mode against the output.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, fmt.Errorf("invalid --color %q (want auto, always or never)", mode)
}

func newMonthCmd(a *app) *cobra.Command {
	var (
		g     gridFlags
		count int
	)

	cmd := &cobra.Command{
		Use:   "month [period]",
		Short: "Print the week grid of a month",
		Long: `Print the week grid of a month. The period may be any idtag or date;
the month containing its first day is shown. Days covered by configured
marks and feed occasions get a '*'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := ttcal.CurrentMonth()
			if len(args) == 1 {
				s, err := resolveSpan(args[0])
				if err != nil {
					return err
				}
				m = ttcal.MonthOf(s.First())
			}
			if count < 1 {
				return fmt.Errorf("--count must be positive")
			}

			out := cmd.OutOrStdout()
			opt, err := g.options(a, out)
			if err != nil {
				return err
			}
			months := make([]*ttcal.Month, count)
			for i := range months {
				months[i] = m.Add(i)
			}
			extent := ttcal.Days{months[0].Grid().First(), months[count-1].Grid().Last()}
			marks := a.markings(cmd.Context(), extent, g.feeds)

			for i, mm := range months {
				if i > 0 {
					if _, err := fmt.Fprintln(out); err != nil {
						return err
					}
				}
				model.MarkMonth(mm, marks)
				if err := render.Month(out, mm, opt); err != nil {
					return err
				}
			}
			return nil
		},
	}
	g.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of consecutive months")
	return cmd
}

func newYearCmd(a *app) *cobra.Command {
	var (
		g      gridFlags
		perRow int
	)

	cmd := &cobra.Command{
		Use:   "year [period]",
		Short: "Print all months of a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			y := ttcal.CurrentYear()
			if len(args) == 1 {
				s, err := resolveSpan(args[0])
				if err != nil {
					return err
				}
				y = s.First().YearOf()
			}
			if perRow != 3 && perRow != 4 {
				return fmt.Errorf("--per-row must be 3 or 4")
			}

			out := cmd.OutOrStdout()
			opt, err := g.options(a, out)
			if err != nil {
				return err
			}
			marks := a.markings(cmd.Context(), y, g.feeds)
			for _, m := range y.Months() {
				model.MarkMonth(m, marks)
			}
			return render.Year(out, y, perRow, opt)
		},
	}
	g.register(cmd)
	cmd.Flags().IntVar(&perRow, "per-row", 3, "Months per row: 3 or 4")
	return cmd
}
