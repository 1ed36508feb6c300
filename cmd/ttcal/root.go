package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/datakortet/ttcal"
	"github.com/datakortet/ttcal/internal/config"
	"github.com/datakortet/ttcal/internal/ics"
	appLog "github.com/datakortet/ttcal/internal/log"
	"github.com/datakortet/ttcal/internal/model"
)

// app carries what the subcommands share once the config is loaded.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ttcal",
		Short: "Calendar periods with Norwegian names",
		Long: `ttcal works with days, ISO weeks, months, quarters, halfyears and years.
Periods are named by idtags such as d2012041004, w201215, m20124, q20122,
H20121 and y2012, or by dates such as 2012-04-10.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath(), "Path to config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (overrides config): debug, info, warn, error")

	root.AddCommand(
		newShowCmd(a),
		newParseCmd(a),
		newMonthCmd(a),
		newYearCmd(a),
		newICSCmd(a),
		newServeCmd(a),
	)
	return root
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "ttcal.yaml"
	}
	return filepath.Join(dir, "ttcal", "config.yaml")
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", a.configPath, err)
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	l, err := appLog.ParseLevel(level)
	if err != nil {
		return err
	}
	appLog.SetLevel(l)
	appLog.Debug("config loaded", "path", a.configPath, "marks", len(cfg.Marks), "ics_count", len(cfg.ICS))
	return nil
}

var yearArg = regexp.MustCompile(`^\d{4}$`)

// resolveSpan reads an idtag, a four digit year, a date or a month.
func resolveSpan(arg string) (ttcal.Span, error) {
	if s, err := ttcal.FromIDTag(arg); err == nil {
		return s, nil
	}
	if yearArg.MatchString(arg) {
		n, _ := strconv.Atoi(arg)
		y, err := ttcal.NewYear(n)
		if err != nil {
			return nil, err
		}
		return y, nil
	}
	if d, ok, err := ttcal.ParseDay(arg); err == nil && ok {
		return d, nil
	}
	m, err := ttcal.ParseMonth(arg)
	if err != nil {
		return nil, fmt.Errorf("%q is not a period: %w", arg, err)
	}
	if m == nil {
		return nil, fmt.Errorf("empty period")
	}
	return m, nil
}

// markings collects the configured marks and, when withFeeds is set, the
// feed occasions overlapping r.
func (a *app) markings(ctx context.Context, r ttcal.Ranged, withFeeds bool) []model.Marking {
	var res []model.Marking
	for _, m := range a.cfg.Marks {
		if s, err := m.Span(); err == nil {
			res = append(res, model.MarkingOf(s, m.Value))
		}
	}
	if !withFeeds || len(a.cfg.ICS) == 0 {
		return res
	}
	for _, o := range model.Within(a.occasions(ctx), r) {
		res = append(res, model.MarkingFor(o))
	}
	return res
}

func (a *app) occasions(ctx context.Context) []model.Occasion {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	results, errs := ics.NewFetcher(a.cfg.CacheDir).FetchAll(ctx, ics.SourcesFrom(a.cfg.ICS))
	for _, err := range errs {
		appLog.Warn("calendar feed skipped", "reason", err)
	}
	return ics.ParseAll(results, time.Local)
}
