package ttcal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Month is a calendar month together with its display grid: the Monday
// first weeks covering the month, padded with days from the neighbouring
// months. Every day in the grid has this month as membermonth.
//
// A Month is immutable except for the marks set by Mark. Marking is not
// safe for concurrent use on the same Month.
type Month struct {
	year  int
	month time.Month
	weeks []*Week
}

// NewMonth returns month m of year.
func NewMonth(year int, m time.Month) (*Month, error) {
	if m < time.January || m > time.December {
		return nil, fmt.Errorf("%w: got %d", ErrMonthRange, int(m))
	}
	if year < MinYear || year > MaxYear {
		return nil, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	mn := &Month{year: year, month: m}
	first := MustDay(year, m, 1)
	last := MustDay(year, m, daysIn(year, m))
	grid := dayRun(fromOrdinal(first.Ordinal()-first.Weekday()), fromOrdinal(last.Ordinal()+6-last.Weekday()))
	for _, days := range Chop(grid, 7) {
		w, err := NewWeek(days, m)
		if err != nil {
			return nil, err
		}
		mn.weeks = append(mn.weeks, w)
	}
	return mn, nil
}

// MustMonth is like NewMonth but panics on an invalid month.
func MustMonth(year int, m time.Month) *Month {
	mn, err := NewMonth(year, m)
	if err != nil {
		panic(err)
	}
	return mn
}

// MonthOf returns the month containing v. The year 10000 padding days of
// December 9999 map to December 9999.
func MonthOf(v DateLike) *Month {
	return MustMonth(addMonths(yearMonth(v)))
}

// CurrentMonth returns the month containing today.
func CurrentMonth() *Month { return MonthOf(Today()) }

var monthRe = regexp.MustCompile(`^(\d{4})-?(\d{1,2})`)

// ParseMonth reads "yyyy-mm", "yyyy-m" or "yyyymm". Blank text returns a
// nil Month and a nil error.
func ParseMonth(txt string) (*Month, error) {
	if strings.TrimSpace(txt) == "" {
		return nil, nil
	}
	m := monthRe.FindStringSubmatch(txt)
	if m == nil {
		return nil, &ParseError{
			Kind:  "month",
			Text:  txt,
			Cause: fmt.Errorf("Ugyldig format, må være åååå-mm, ikke %q.", txt),
		}
	}
	y, _ := strconv.Atoi(m[1])
	n, _ := strconv.Atoi(m[2])
	mn, err := NewMonth(y, time.Month(n))
	if err != nil {
		return nil, &ParseError{Kind: "month", Text: txt, Cause: err}
	}
	return mn, nil
}

// ParseMonthTag is the inverse of Month.IDTag.
func ParseMonthTag(tag string) (*Month, error) {
	y, n, err := splitTag(tag, 'm', "month tag")
	if err != nil {
		return nil, err
	}
	mn, err := NewMonth(y, time.Month(n))
	if err != nil {
		return nil, &ParseError{Kind: "month tag", Text: tag, Cause: err}
	}
	return mn, nil
}

// splitTag reads the {c}{yyyy}{n} layout shared by the month, quarter,
// halfyear and week tags.
func splitTag(tag string, c byte, kind string) (year, n int, err error) {
	if len(tag) < 6 || tag[0] != c {
		return 0, 0, &ParseError{Kind: kind, Text: tag}
	}
	parts := FSplit(tag, 1, 5)
	if year, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, &ParseError{Kind: kind, Text: tag, Cause: err}
	}
	if n, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, &ParseError{Kind: kind, Text: tag, Cause: err}
	}
	return year, n, nil
}

func (m *Month) Year() int         { return m.year }
func (m *Month) Month() time.Month { return m.month }
func (m *Month) Name() string      { return MonthName(m.month) }
func (m *Month) ShortName() string { return prefix(m.Name(), 3) }
func (m *Month) DayCount() int     { return daysIn(m.year, m.month) }
func (m *Month) First() Day        { return MustDay(m.year, m.month, 1) }
func (m *Month) Last() Day         { return MustDay(m.year, m.month, m.DayCount()) }
func (m *Month) Middle() Day       { return middleOf(m.First(), m.Last()) }
func (m *Month) Range() Days       { return dayRun(m.First(), m.Last()) }
func (m *Month) IDTag() string     { return fmt.Sprintf("m%d%d", m.year, int(m.month)) }
func (m *Month) YearOf() *Year     { return MustYear(m.year) }
func (m *Month) Next() *Month      { return m.Add(1) }
func (m *Month) Prev() *Month      { return m.Add(-1) }
func (m *Month) Sub(n int) *Month  { return m.Add(-n) }

// Add steps n months, wrapping years. It stops at January 0001 and
// December 9999.
func (m *Month) Add(n int) *Month {
	y, mm := addMonths(m.year, m.month, n)
	return MustMonth(y, mm)
}

// Diff returns the number of months from o to m (m - o).
func (m *Month) Diff(o *Month) int {
	return (m.year*12 + int(m.month)) - (o.year*12 + int(o.month))
}

// Weeks returns the rows of the month's grid.
func (m *Month) Weeks() []*Week {
	return append([]*Week(nil), m.weeks...)
}

// Grid returns every day of the grid, padding days included.
func (m *Month) Grid() Days {
	res := make(Days, 0, 7*len(m.weeks))
	for _, w := range m.weeks {
		res = append(res, w.days...)
	}
	return res
}

// Days returns the days of the grid that are inside the month.
func (m *Month) Days() Days {
	res := make(Days, 0, 31)
	for _, w := range m.weeks {
		for _, d := range w.days {
			if d.month == m.month {
				res = append(res, d)
			}
		}
	}
	return res
}

// Day returns day n of the month.
func (m *Month) Day(n int) (Day, error) {
	return newDay(m.year, m.month, n)
}

// Contains reports whether v is a date in the month.
func (m *Month) Contains(v DateLike) bool {
	y, mm, _ := v.Date()
	return y == m.year && mm == m.month
}

// Lookup returns the grid day with the date of d, marks included. Padding
// days can be found too. A date outside the grid is ErrNotFound.
func (m *Month) Lookup(d DateLike) (Day, error) {
	w, i := m.find(d)
	if w == nil {
		return Day{}, fmt.Errorf("%w: %s in %s", ErrNotFound, DayFrom(d), m)
	}
	return w.days[i], nil
}

func (m *Month) find(d DateLike) (*Week, int) {
	y, mm, dd := d.Date()
	for _, w := range m.weeks {
		for i, gd := range w.days {
			if gd.year == y && gd.month == mm && gd.day == dd {
				return w, i
			}
		}
	}
	return nil, 0
}

// MarkMethod decides how Mark treats a day that is already marked.
type MarkMethod int

const (
	// MarkReplace overwrites an existing mark.
	MarkReplace MarkMethod = iota
	// MarkAppend concatenates the new value to an existing mark.
	MarkAppend
)

// Mark attaches value to the grid day with the date of d. Dates outside
// the grid are ignored.
func (m *Month) Mark(d DateLike, value string, method MarkMethod) {
	w, i := m.find(d)
	if w == nil {
		return
	}
	gd := w.days[i]
	if method == MarkAppend && gd.marked {
		value = gd.mark + value
	}
	w.days[i] = gd.WithMark(value)
}

// MarkedDays returns the marked days of the grid in calendar order.
func (m *Month) MarkedDays() Days {
	var res Days
	for _, w := range m.weeks {
		for _, d := range w.days {
			if d.marked {
				res = append(res, d)
			}
		}
	}
	return res
}

func (m *Month) RangeTuple() Extent {
	return Extent{Start: m.First().Time(), End: m.Last().end()}
}

func (m *Month) BetweenTuple() (time.Time, time.Time) {
	return betweenTuple(m.First(), m.Last())
}

// DefaultMonthFormat renders as e.g. "April, 2012".
const DefaultMonthFormat = "F, Y"

// Format renders the month with the codes y Y n m b M N F (see
// Day.Format). Other characters are copied.
func (m *Month) Format(layout string) string {
	if layout == "" {
		layout = DefaultMonthFormat
	}
	var sb strings.Builder
	for _, ch := range layout {
		sb.WriteString(formatMonthCode(m.year, m.month, ch))
	}
	return sb.String()
}

// String returns yyyy-mm.
func (m *Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.year, int(m.month))
}

func (m *Month) GoString() string {
	return fmt.Sprintf("Month(%d, %d)", m.year, int(m.month))
}

// Compare orders m against other by extent. An integer operand is compared
// with the month number.
func (m *Month) Compare(other any) (int, bool) {
	return relateOrdinal(m.RangeTuple(), int(m.month), other)
}

func (m *Month) Lt(other any) bool { return lt(m.Compare(other)) }
func (m *Month) Le(other any) bool { return le(m.Compare(other)) }
func (m *Month) Eq(other any) bool { return eq(m.Compare(other)) }
func (m *Month) Ne(other any) bool { return ne(m.Compare(other)) }
func (m *Month) Gt(other any) bool { return gt(m.Compare(other)) }
func (m *Month) Ge(other any) bool { return ge(m.Compare(other)) }

func (m *Month) MarshalText() ([]byte, error) { return []byte(m.IDTag()), nil }

func (m *Month) UnmarshalText(b []byte) error {
	v, err := ParseMonthTag(string(b))
	if err != nil {
		return err
	}
	*m = *v
	return nil
}
