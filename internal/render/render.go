// Package render draws months and years as fixed-width text grids.
package render

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/datakortet/ttcal"
)

const (
	cellWidth = 4
	weekWidth = 4
	gutter    = "  "

	ansiReset   = "\x1b[0m"
	ansiReverse = "\x1b[7m"
	ansiFaint   = "\x1b[2m"
	ansiBold    = "\x1b[1m"
)

// Options control the rendering.
type Options struct {
	// MonthFormat is the header layout, ttcal.DefaultMonthFormat when empty.
	MonthFormat string
	// Color enables ANSI attributes for today, padding days and marks.
	Color bool
	// Legend lists the marked days under each month.
	Legend bool
}

// MonthLines returns the rows of m: header, weekday names and one row per
// week with the week number first. Marked days get a '*' suffix.
func MonthLines(m *ttcal.Month, opt Options) []string {
	layout := opt.MonthFormat
	if layout == "" {
		layout = ttcal.DefaultMonthFormat
	}
	width := weekWidth + 7*cellWidth

	lines := []string{center(m.Format(layout), width)}

	var hdr strings.Builder
	hdr.WriteString(runewidth.FillRight("Uke", weekWidth))
	for i := 0; i < 7; i++ {
		hdr.WriteString(runewidth.FillLeft(ttcal.TitleDayName(i, 2), cellWidth))
	}
	lines = append(lines, hdr.String())

	for _, w := range m.Weeks() {
		var row strings.Builder
		row.WriteString(runewidth.FillLeft(strconv.Itoa(w.Num()), weekWidth-1) + " ")
		for _, d := range w.Days() {
			row.WriteString(cell(d, opt.Color))
		}
		lines = append(lines, row.String())
	}

	if opt.Legend {
		for _, d := range legendDays(m) {
			v, _ := d.Mark()
			lines = append(lines, fmt.Sprintf("%s %s", d.Format("d.m"), v))
		}
	}
	return lines
}

// legendDays returns the marked days of m itself. Marked padding days
// belong to the neighbouring month's legend.
func legendDays(m *ttcal.Month) ttcal.Days {
	var res ttcal.Days
	for _, d := range m.MarkedDays() {
		if d.InMonth() {
			res = append(res, d)
		}
	}
	return res
}

// cell renders one day right-aligned in cellWidth columns. Padding days
// are shown as dots so the grid keeps its shape.
func cell(d ttcal.Day, color bool) string {
	txt := strconv.Itoa(d.Day())
	if !d.InMonth() {
		txt = "."
	}
	if _, ok := d.Mark(); ok && d.InMonth() {
		txt += "*"
	} else {
		txt += " "
	}
	s := runewidth.FillLeft(txt, cellWidth)
	if !color {
		return s
	}
	classes := strings.Fields(d.Display())
	switch {
	case slices.Contains(classes, "today"):
		return ansiReverse + s + ansiReset
	case slices.Contains(classes, "noday"):
		return ansiFaint + s + ansiReset
	case slices.Contains(classes, "weekend"):
		return ansiBold + s + ansiReset
	}
	return s
}

// Month writes the grid of m to w.
func Month(w io.Writer, m *ttcal.Month, opt Options) error {
	for _, l := range MonthLines(m, opt) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(l, " ")); err != nil {
			return err
		}
	}
	return nil
}

// Year writes the months of y side by side, perRow months per band
// (3 or 4, the layouts of Year.Rows and Year.Rows4).
func Year(w io.Writer, y *ttcal.Year, perRow int, opt Options) error {
	rows := y.Rows()
	if perRow == 4 {
		rows = y.Rows4()
	}
	if _, err := fmt.Fprintln(w, center(y.Format(ttcal.DefaultYearFormat), perRow*(weekWidth+7*cellWidth)+(perRow-1)*len(gutter))); err != nil {
		return err
	}

	for i, band := range rows {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		cols := make([][]string, len(band))
		height := 0
		for j, m := range band {
			cols[j] = MonthLines(m, Options{MonthFormat: opt.MonthFormat, Color: opt.Color})
			height = max(height, len(cols[j]))
		}
		for r := 0; r < height; r++ {
			parts := make([]string, len(cols))
			for j, col := range cols {
				line := ""
				if r < len(col) {
					line = col[r]
				}
				parts[j] = padVisible(line, weekWidth+7*cellWidth)
			}
			if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, gutter), " ")); err != nil {
				return err
			}
		}
	}

	if opt.Legend {
		for _, m := range y.Months() {
			for _, d := range legendDays(m) {
				v, _ := d.Mark()
				if _, err := fmt.Fprintf(w, "%s %s\n", d.Format("d.m"), v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// padVisible pads s to width display columns, ignoring ANSI sequences.
func padVisible(s string, width int) string {
	vis := runewidth.StringWidth(stripANSI(s))
	if vis >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vis)
}

func stripANSI(s string) string {
	var b strings.Builder
	in := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			in = true
		case in && r == 'm':
			in = false
		case !in:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func center(s string, width int) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
