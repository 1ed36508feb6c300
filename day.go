package ttcal

import (
	"fmt"
	"strings"
	"time"
)

// NowFunc returns the current time. It drives every "today" computation in
// the package and can be replaced, for example by tests that need a fixed
// date.
var NowFunc = time.Now

// unixEpochOrdinal is the proleptic Gregorian ordinal of 1970-01-01, where
// 0001-01-01 has ordinal 1.
const unixEpochOrdinal = 719163

const secondsPerDay = 86400

// MinYear and MaxYear bound the supported years. Stepping a period past
// either end stops at the first or last supported period.
const (
	MinYear = 1
	MaxYear = 9999
)

// maxOrdinal is the ordinal of 9999-12-31.
const maxOrdinal = 3652059

// Day is a single calendar date.
//
// membermonth records the month a Day belongs to when it is shown as padding
// in a neighbouring month's calendar grid, e.g. April 30th drawn in the May
// grid has Month() == April and MemberMonth() == May. It defaults to the
// day's own month.
//
// Day is an immutable value. The optional mark is an annotation attached by
// Month.Mark / Year.Mark for calendar rendering and does not take part in
// comparisons.
type Day struct {
	year        int
	month       time.Month
	day         int
	memberMonth time.Month

	mark   string
	marked bool
}

// NewDay constructs a Day. With no arguments it returns today, with three
// arguments they are year, month and day. Any other arity is an
// *ArgumentError.
func NewDay(parts ...int) (Day, error) {
	switch len(parts) {
	case 0:
		return Today(), nil
	case 3:
		return newDay(parts[0], time.Month(parts[1]), parts[2])
	}
	return Day{}, &ArgumentError{Func: "NewDay", Got: len(parts)}
}

// MustDay is like NewDay with explicit year/month/day but panics on an
// invalid date. It is intended for constants and tests.
func MustDay(year int, month time.Month, day int) Day {
	d, err := newDay(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func newDay(year int, month time.Month, day int) (Day, error) {
	if year < MinYear || year > MaxYear {
		return Day{}, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	if month < time.January || month > time.December {
		return Day{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}
	if day < 1 || day > daysIn(year, month) {
		return Day{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}
	return Day{year: year, month: month, day: day, memberMonth: month}, nil
}

// DayFrom copies the calendar date out of any date-like value. Other
// attributes (a Day's membermonth and mark) are not copied.
func DayFrom(v DateLike) Day {
	y, m, d := v.Date()
	return Day{year: y, month: m, day: d, memberMonth: m}
}

// Today returns the current date according to NowFunc.
func Today() Day {
	return DayFrom(NowFunc())
}

// FromOrdinal returns the day with the given proleptic Gregorian ordinal,
// clamped to 0001-01-01..9999-12-31.
func FromOrdinal(n int) Day {
	return fromOrdinal(min(max(n, 1), maxOrdinal))
}

// fromOrdinal is FromOrdinal without the clamp. Grid padding after
// December 9999 reaches into year 10000.
func fromOrdinal(n int) Day {
	t := time.Unix(int64(n-unixEpochOrdinal)*secondsPerDay, 0).UTC()
	return DayFrom(t)
}

// WithMemberMonth returns a copy of d that belongs to month m.
func (d Day) WithMemberMonth(m time.Month) Day {
	d.memberMonth = m
	return d
}

// WithMark returns a copy of d carrying the given annotation.
func (d Day) WithMark(value string) Day {
	d.mark = value
	d.marked = true
	return d
}

// Mark returns the annotation attached to d, if any.
func (d Day) Mark() (string, bool) { return d.mark, d.marked }

// Date implements DateLike.
func (d Day) Date() (int, time.Month, int) { return d.year, d.month, d.day }

func (d Day) Year() int                            { return d.year }
func (d Day) Month() time.Month                    { return d.month }
func (d Day) Day() int                             { return d.day }
func (d Day) MemberMonth() time.Month              { return d.memberMonth }
func (d Day) IsZero() bool                         { return d.year == 0 }
func (d Day) InMonth() bool                        { return d.month == d.memberMonth }
func (d Day) Time() time.Time                      { return d.At(0, 0, 0) }
func (d Day) Next() Day                            { return d.Add(1) }
func (d Day) Prev() Day                            { return d.Add(-1) }
func (d Day) First() Day                           { return d }
func (d Day) Last() Day                            { return d }
func (d Day) Middle() Day                          { return d }
func (d Day) Range() Days                          { return Days{d} }
func (d Day) RangeTuple() Extent                   { return Extent{Start: d.Time(), End: d.end()} }
func (d Day) BetweenTuple() (time.Time, time.Time) { return betweenTuple(d, d) }

// At extends d to an instant (UTC) at the given wall clock time.
func (d Day) At(hour, minute, second int) time.Time {
	return time.Date(d.year, d.month, d.day, hour, minute, second, 0, time.UTC)
}

// end is midnight after d.
func (d Day) end() time.Time { return d.Time().AddDate(0, 0, 1) }

// Ordinal returns the proleptic Gregorian ordinal of d; 0001-01-01 is 1.
func (d Day) Ordinal() int {
	return int(d.Time().Unix()/secondsPerDay) + unixEpochOrdinal
}

// Add returns the day n days after d (before, for negative n). The result
// stops at 0001-01-01 and 9999-12-31.
func (d Day) Add(n int) Day {
	return FromOrdinal(d.Ordinal() + n)
}

// AddPeriod steps d by a calendar period; see Period.AddTo.
func (d Day) AddPeriod(p Period) Day { return p.AddTo(d) }

// SubPeriod steps d back by a calendar period; see Period.SubFrom.
func (d Day) SubPeriod(p Period) Day { return p.SubFrom(d) }

// Sub returns the number of days between o and d (d - o).
func (d Day) Sub(o Day) int { return d.Ordinal() - o.Ordinal() }

// SubDays returns the day n days before d.
func (d Day) SubDays(n int) Day { return d.Add(-n) }

// SubDuration moves d back by the whole days in dur.
func (d Day) SubDuration(dur Duration) Day { return d.Add(-dur.Days()) }

// Plus adds an int (days), Period or Duration (whole days) to d.
func (d Day) Plus(x any) (Day, error) {
	switch v := x.(type) {
	case Period:
		return v.AddTo(d), nil
	case Duration:
		return d.Add(v.Days()), nil
	}
	if n, ok := asInt(x); ok {
		return d.Add(n), nil
	}
	return Day{}, operandError("addition", d, x)
}

// Minus mirrors the subtraction rules of the calendar types: Day - Day is an
// int day count, Day - int/Period/Duration is a Day. Any other operand is an
// *OperandError.
func (d Day) Minus(x any) (any, error) {
	switch v := x.(type) {
	case Day:
		return d.Sub(v), nil
	case Period:
		return v.SubFrom(d), nil
	case Duration:
		return d.SubDuration(v), nil
	}
	if n, ok := asInt(x); ok {
		return d.SubDays(n), nil
	}
	return nil, operandError("subtraction", d, x)
}

// Weekday returns the day of the week with Monday = 0 and Sunday = 6.
func (d Day) Weekday() int {
	return (int(d.Time().Weekday()) + 6) % 7
}

// Weekend reports whether d is a Saturday or Sunday.
func (d Day) Weekend() bool { return d.Weekday() >= 5 }

// WeekNum returns the ISO week number of d.
func (d Day) WeekNum() int {
	_, w := d.Time().ISOWeek()
	return w
}

// ISOYear returns the ISO year of d, which differs from Year() for some days
// around New Year.
func (d Day) ISOYear() int {
	y, _ := d.Time().ISOWeek()
	return y
}

// YearDay returns the 0-based day number within the year.
func (d Day) YearDay() int { return d.Time().YearDay() - 1 }

// DayName returns the Norwegian name of d's weekday.
func (d Day) DayName() string { return dayNames[d.Weekday()] }

// Code is a one letter code for d's weekday.
func (d Day) Code() string { return dayCodes[d.Weekday()] }

// IsToday reports whether d is the current date.
func (d Day) IsToday() bool { return d.CommonUnit(Today()) == "day" }

// CommonUnit returns the largest calendar unit d shares with other: "day",
// "month" or "year". It returns "" when the years differ or other is not
// date-like.
func (d Day) CommonUnit(other any) string {
	o, ok := other.(DateLike)
	if !ok {
		return ""
	}
	y, m, dd := o.Date()
	switch {
	case d.year != y:
		return ""
	case d.month != m:
		return "year"
	case d.day != dd:
		return "month"
	}
	return "day"
}

// Display returns the space separated rendering classes of d: "today" when
// d is the current date inside its own month, "month" or "noday" depending
// on whether d is inside its member month, "weekend" and finally the mark.
func (d Day) Display() string {
	res := make([]string, 0, 4)
	if d.InMonth() && d.IsToday() {
		res = append(res, "today")
	}
	if d.InMonth() {
		res = append(res, "month")
	} else {
		res = append(res, "noday")
	}
	if d.Weekend() {
		res = append(res, "weekend")
	}
	if d.marked {
		res = append(res, d.mark)
	}
	return strings.Join(res, " ")
}

// WeekOf returns the ISO week containing d.
func (d Day) WeekOf() *Week {
	w, err := WeekNum(d.WeekNum(), d.ISOYear())
	if err != nil {
		panic(err) // unreachable: d is a valid date
	}
	return w
}

// MonthOf returns the month containing d.
func (d Day) MonthOf() *Month { return MonthOf(d) }

// YearOf returns the year containing d.
func (d Day) YearOf() *Year { return MustYear(clampYear(d.year)) }

// Compare orders d against any calendar value by extent.
func (d Day) Compare(other any) (int, bool) { return relate(d.RangeTuple(), other) }

func (d Day) Lt(other any) bool { return lt(d.Compare(other)) }
func (d Day) Le(other any) bool { return le(d.Compare(other)) }
func (d Day) Eq(other any) bool { return eq(d.Compare(other)) }
func (d Day) Ne(other any) bool { return ne(d.Compare(other)) }
func (d Day) Gt(other any) bool { return gt(d.Compare(other)) }
func (d Day) Ge(other any) bool { return ge(d.Compare(other)) }

// String returns d in ISO format, yyyy-mm-dd.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// GoString returns year-month-day-membermonth without padding.
func (d Day) GoString() string {
	return fmt.Sprintf("%d-%d-%d-%d", d.year, int(d.month), d.day, int(d.memberMonth))
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// betweenTuple returns the closed interval [first 00:00:00, last 23:59:59]
// for inclusive range queries.
func betweenTuple(first, last Day) (time.Time, time.Time) {
	return first.Time(), last.end().Add(-time.Second)
}

// middleOf returns the day at the floor of the ordinal midpoint, which
// favours first for even-length ranges.
func middleOf(first, last Day) Day {
	return FromOrdinal(floorDiv(first.Ordinal()+last.Ordinal(), 2))
}

// clampYear maps the year 10000 padding days of December 9999 back into
// the supported range.
func clampYear(y int) int { return min(max(y, MinYear), MaxYear) }

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
