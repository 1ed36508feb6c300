package ttcal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Week is an ISO week: seven days starting on a Monday.
//
// The ISO year and week number come from the week's Thursday, so the first
// days of January can belong to week 52 or 53 of the previous year. The
// month is the month context the week was built for, e.g. the month grid
// it is a row of; every day of the week has that month as membermonth.
type Week struct {
	year  int
	num   int
	month time.Month
	days  []Day
}

// NewWeek builds a week from seven consecutive days in a month context.
func NewWeek[D DateLike](days []D, month time.Month) (*Week, error) {
	if len(days) != 7 {
		return nil, &ArgumentError{Func: "NewWeek", Got: len(days)}
	}
	w := &Week{month: month, days: make([]Day, 7)}
	for i, d := range days {
		w.days[i] = DayFrom(d).WithMemberMonth(month)
	}
	w.year, w.num = w.days[3].Time().ISOWeek()
	return w, nil
}

// WeekNum returns ISO week n of year. The month context is the month of
// the week's Monday.
func WeekNum(n, year int) (*Week, error) {
	days, err := ISOWeekDays(year, n)
	if err != nil {
		return nil, err
	}
	return NewWeek(days, days[0].month)
}

// CurrentWeek returns the ISO week containing today.
func CurrentWeek() *Week { return Today().WeekOf() }

// ParseWeekTag is the inverse of Week.IDTag.
func ParseWeekTag(tag string) (*Week, error) {
	if len(tag) < 6 || tag[0] != 'w' {
		return nil, &ParseError{Kind: "week tag", Text: tag}
	}
	y, err := strconv.Atoi(tag[1:5])
	if err != nil {
		return nil, &ParseError{Kind: "week tag", Text: tag, Cause: err}
	}
	n, err := strconv.Atoi(tag[5:])
	if err != nil {
		return nil, &ParseError{Kind: "week tag", Text: tag, Cause: err}
	}
	w, err := WeekNum(n, y)
	if err != nil {
		return nil, &ParseError{Kind: "week tag", Text: tag, Cause: err}
	}
	return w, nil
}

// Year returns the ISO year of the week.
func (w *Week) Year() int         { return w.year }
func (w *Week) Num() int          { return w.num }
func (w *Week) Month() time.Month { return w.month }
func (w *Week) First() Day        { return w.days[0] }
func (w *Week) Last() Day         { return w.days[6] }
func (w *Week) Middle() Day       { return middleOf(w.First(), w.Last()) }
func (w *Week) Range() Days       { return dayRun(w.First(), w.Last()) }
func (w *Week) IDTag() string     { return fmt.Sprintf("w%d%d", w.year, w.num) }
func (w *Week) Next() *Week       { return w.Add(1) }
func (w *Week) Prev() *Week       { return w.Add(-1) }
func (w *Week) Sub(n int) *Week   { return w.Add(-n) }

// Days returns the seven days of the week, Monday first.
func (w *Week) Days() Days {
	return append(Days(nil), w.days...)
}

// Day returns day i of the week, 0 being Monday. Negative i counts from
// Sunday.
func (w *Week) Day(i int) (Day, error) {
	if i < 0 {
		i += len(w.days)
	}
	if i < 0 || i >= len(w.days) {
		return Day{}, fmt.Errorf("%w: week day index %d", ErrNotFound, i)
	}
	return w.days[i], nil
}

// Add steps n ISO weeks.
func (w *Week) Add(n int) *Week {
	return w.First().Add(7 * n).WeekOf()
}

// Current reports whether today is in the week.
func (w *Week) Current() bool {
	for _, d := range w.days {
		if d.IsToday() {
			return true
		}
	}
	return false
}

// UntilToday returns the days of the week before today. For a week that
// does not contain today all seven days are returned.
func (w *Week) UntilToday() Days {
	var res Days
	for _, d := range w.days {
		if d.IsToday() {
			break
		}
		res = append(res, d)
	}
	return res
}

// Contains reports whether the date of v is one of the week's days.
func (w *Week) Contains(v DateLike) bool {
	return containsDate(w.First(), w.Last(), v)
}

func (w *Week) RangeTuple() Extent {
	return Extent{Start: w.First().Time(), End: w.Last().end()}
}

func (w *Week) BetweenTuple() (time.Time, time.Time) {
	return betweenTuple(w.First(), w.Last())
}

// DefaultWeekFormat renders as e.g. "Uke 4 (2012)".
const DefaultWeekFormat = "Uke W (Y)"

// Format renders the week with the codes W (week number), Y (ISO year),
// y (two digit ISO year) and n (month context). Other characters are
// copied.
func (w *Week) Format(layout string) string {
	if layout == "" {
		layout = DefaultWeekFormat
	}
	var sb strings.Builder
	for _, ch := range layout {
		switch ch {
		case 'W':
			sb.WriteString(strconv.Itoa(w.num))
		case 'Y':
			sb.WriteString(strconv.Itoa(w.year))
		case 'y':
			sb.WriteString(twoDigitYear(w.year))
		case 'n':
			sb.WriteString(strconv.Itoa(int(w.month)))
		default:
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

func (w *Week) String() string { return w.Format(DefaultWeekFormat) }

func (w *Week) GoString() string {
	return fmt.Sprintf("Week(%d, month=%d, year=%d)", w.num, int(w.month), w.year)
}

func (w *Week) Compare(other any) (int, bool) { return relate(w.RangeTuple(), other) }

func (w *Week) Lt(other any) bool { return lt(w.Compare(other)) }
func (w *Week) Le(other any) bool { return le(w.Compare(other)) }
func (w *Week) Eq(other any) bool { return eq(w.Compare(other)) }
func (w *Week) Ne(other any) bool { return ne(w.Compare(other)) }
func (w *Week) Gt(other any) bool { return gt(w.Compare(other)) }
func (w *Week) Ge(other any) bool { return ge(w.Compare(other)) }

func (w *Week) MarshalText() ([]byte, error) { return []byte(w.IDTag()), nil }

func (w *Week) UnmarshalText(b []byte) error {
	v, err := ParseWeekTag(string(b))
	if err != nil {
		return err
	}
	*w = *v
	return nil
}

// containsDate reports whether v falls within first..last inclusive.
func containsDate(first, last Day, v DateLike) bool {
	n := DayFrom(v).Ordinal()
	return first.Ordinal() <= n && n <= last.Ordinal()
}
