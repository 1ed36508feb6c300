package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/datakortet/ttcal"
	"github.com/datakortet/ttcal/internal/model"
)

func newShowCmd(a *app) *cobra.Command {
	var layout string

	cmd := &cobra.Command{
		Use:   "show [period...]",
		Short: "Describe periods, or every period containing today",
		Example: `  ttcal show
  ttcal show w201215 2012-04 q20122
  ttcal show --format "l j. F Y" 17.5.2012`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var spans []ttcal.Span
			if len(args) == 0 {
				spans = []ttcal.Span{
					ttcal.Today(),
					ttcal.CurrentWeek(),
					ttcal.CurrentMonth(),
					ttcal.CurrentQuarter(),
					ttcal.CurrentHalfyear(),
					ttcal.CurrentYear(),
				}
			}
			for _, arg := range args {
				s, err := resolveSpan(arg)
				if err != nil {
					return err
				}
				spans = append(spans, s)
			}

			out := cmd.OutOrStdout()
			for _, s := range spans {
				f := layout
				if f == "" {
					f = a.cfg.Formats.For(s)
				}
				if err := writeSpan(out, s, f); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&layout, "format", "", "Label layout (default from config)")
	return cmd
}

// writeSpan prints one line per period: tag, kind, label and day range.
func writeSpan(w io.Writer, s ttcal.Span, layout string) error {
	days := s.Last().Sub(s.First()) + 1
	mark := ""
	if ttcal.IsCurrent(s) {
		mark = " *"
	}
	_, err := fmt.Fprintf(w, "%-12s %-9s %-22s %s..%s (%d days)%s\n",
		s.IDTag(), model.Kind(s), s.Format(layout), s.First(), s.Last(), days, mark)
	return err
}
