package ttcal

import (
	"fmt"
	"time"
)

// Span is the surface shared by Day and the composite periods.
type Span interface {
	Ranged
	First() Day
	Last() Day
	Middle() Day
	BetweenTuple() (time.Time, time.Time)
	IDTag() string
	Format(layout string) string
	String() string
}

var (
	_ Span = Day{}
	_ Span = (*Week)(nil)
	_ Span = (*Month)(nil)
	_ Span = (*Quarter)(nil)
	_ Span = (*Halfyear)(nil)
	_ Span = (*Year)(nil)
)

// FromIDTag parses any tag produced by an IDTag method. The first
// character selects the type: d (Day), w (Week), m (Month), q (Quarter),
// H or h (Halfyear) and y (Year).
func FromIDTag(tag string) (Span, error) {
	if len(tag) < 2 {
		return nil, &ParseError{Kind: "tag", Text: tag}
	}
	var (
		s   Span
		err error
	)
	switch tag[0] {
	case 'd':
		s, err = ParseDayTag(tag)
	case 'w':
		s, err = ParseWeekTag(tag)
	case 'm':
		s, err = ParseMonthTag(tag)
	case 'q':
		s, err = ParseQuarterTag(tag)
	case 'H', 'h':
		s, err = ParseHalfyearTag(tag)
	case 'y':
		s, err = ParseYearTag(tag)
	default:
		return nil, &ParseError{Kind: "tag", Text: tag}
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// monthRun is a contiguous run of whole months. Quarter, Halfyear and Year
// embed it for their day boundaries.
type monthRun struct {
	months []*Month
}

func (r monthRun) First() Day  { return r.months[0].First() }
func (r monthRun) Last() Day   { return r.months[len(r.months)-1].Last() }
func (r monthRun) Middle() Day { return middleOf(r.First(), r.Last()) }
func (r monthRun) Range() Days { return dayRun(r.First(), r.Last()) }

// Months returns the months of the run.
func (r monthRun) Months() []*Month {
	return append([]*Month(nil), r.months...)
}

// Days returns the in-month days of every month, marks included.
func (r monthRun) Days() Days {
	var res Days
	for _, m := range r.months {
		res = append(res, m.Days()...)
	}
	return res
}

// DayCount returns the number of days in the run.
func (r monthRun) DayCount() int {
	return r.Last().Sub(r.First()) + 1
}

// Contains reports whether v is a date inside the run.
func (r monthRun) Contains(v DateLike) bool {
	return containsDate(r.First(), r.Last(), v)
}

func (r monthRun) RangeTuple() Extent {
	return Extent{Start: r.First().Time(), End: r.Last().end()}
}

func (r monthRun) BetweenTuple() (time.Time, time.Time) {
	return betweenTuple(r.First(), r.Last())
}

// Lookup returns the grid day with the date of d from the month it
// belongs to.
func (r monthRun) Lookup(d DateLike) (Day, error) {
	m, err := r.monthFor(d)
	if err != nil {
		return Day{}, err
	}
	return m.Lookup(d)
}

// Mark replaces the mark of the day with the date of d. Dates outside the
// run are ignored.
func (r monthRun) Mark(d DateLike, value string) {
	if m, err := r.monthFor(d); err == nil {
		m.Mark(d, value, MarkReplace)
	}
}

// MarkPeriod marks every day from s.First() through s.Last().
func (r monthRun) MarkPeriod(s Span, value string) {
	for _, d := range dayRun(s.First(), s.Last()) {
		r.Mark(d, value)
	}
}

// MarkedDays returns the marked days of all months in order.
func (r monthRun) MarkedDays() Days {
	var res Days
	for _, m := range r.months {
		res = append(res, m.MarkedDays()...)
	}
	return res
}

func (r monthRun) monthFor(d DateLike) (*Month, error) {
	for _, m := range r.months {
		if m.Contains(d) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, DayFrom(d))
}

func buildMonths(year int, from time.Month, n int) monthRun {
	r := monthRun{months: make([]*Month, n)}
	for i := range r.months {
		y, m := addMonths(year, from, i)
		r.months[i] = MustMonth(y, m)
	}
	return r
}
