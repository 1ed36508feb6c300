package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datakortet/ttcal"
)

func newParseCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "parse {day|duration|month|period|tag} TEXT",
		Short: "Parse free text as a calendar value",
		Example: `  ttcal parse day 10.4.2012
  ttcal parse duration 2d 1:30
  ttcal parse month "april 2012"
  ttcal parse period P1Y2M`,
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{"day", "duration", "month", "period", "tag"},
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			line, err := parseValue(a, args[0], text, strict)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject durations with trailing text")
	return cmd
}

func parseValue(a *app, kind, text string, strict bool) (string, error) {
	switch kind {
	case "day":
		d, ok, err := ttcal.ParseDay(text)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("no date in %q", text)
		}
		return fmt.Sprintf("%s %s %s", d, d.IDTag(), d.Format(a.cfg.Formats.Day)), nil
	case "duration":
		d, ok, err := ttcal.ParseDuration(text, strict)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("no duration in %q", text)
		}
		return fmt.Sprintf("%s %s", d, d.ISO()), nil
	case "month":
		m, err := ttcal.ParseMonth(text)
		if err != nil {
			return "", err
		}
		if m == nil {
			return "", fmt.Errorf("no month in %q", text)
		}
		return fmt.Sprintf("%s %s %s", m, m.IDTag(), m.Format(a.cfg.Formats.Month)), nil
	case "period":
		p, err := ttcal.ParsePeriod(strings.ToUpper(text))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s", p, p.ISO()), nil
	case "tag":
		s, err := ttcal.FromIDTag(text)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", s, s.IDTag(), s.Format(a.cfg.Formats.For(s))), nil
	}
	return "", fmt.Errorf("unknown kind %q", kind)
}
