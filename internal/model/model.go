package model

import (
	"sort"
	"strings"
	"time"

	"github.com/datakortet/ttcal"
)

// Occasion is a calendar entry reduced to the whole days it touches.
// First and Last are inclusive.
type Occasion struct {
	SourceID string // calendar source ID
	UID      string // iCalendar UID

	Summary     string
	Description string
	Location    string

	AllDay bool

	First ttcal.Day
	Last  ttcal.Day
}

// RangeTuple makes an Occasion comparable with any ttcal period.
func (o Occasion) RangeTuple() ttcal.Extent {
	return ttcal.Extent{Start: o.First.Time(), End: o.Last.Time().AddDate(0, 0, 1)}
}

// BetweenTuple returns the first and last instant of the occasion.
func (o Occasion) BetweenTuple() (time.Time, time.Time) {
	return (ttcal.Days{o.First, o.Last}).BetweenTuple()
}

// Days returns every day of the occasion.
func (o Occasion) Days() ttcal.Days {
	return (ttcal.Days{o.First, o.Last}).Range()
}

// Overlaps reports whether the occasion shares at least one day with r.
func (o Occasion) Overlaps(r ttcal.Ranged) bool {
	c, ok := ttcal.Compare(o, r)
	return ok && c == 0
}

// Within returns the occasions overlapping r, ordered by first day and
// then summary.
func Within(occs []Occasion, r ttcal.Ranged) []Occasion {
	res := make([]Occasion, 0, len(occs))
	for _, o := range occs {
		if o.Overlaps(r) {
			res = append(res, o)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if c := res[i].First.Sub(res[j].First); c != 0 {
			return c < 0
		}
		return res[i].Summary < res[j].Summary
	})
	return res
}

// Marking is a value to attach to every day from First through Last.
type Marking struct {
	First ttcal.Day
	Last  ttcal.Day
	Value string
}

// MarkingOf covers every day of s.
func MarkingOf(s ttcal.Span, value string) Marking {
	return Marking{First: s.First(), Last: s.Last(), Value: value}
}

// MarkingFor turns an occasion into a marking labelled with its summary.
func MarkingFor(o Occasion) Marking {
	return Marking{First: o.First, Last: o.Last, Value: o.Summary}
}

// MarkMonth applies the markings to m, padding days included. A day hit by
// more than one marking gets their values joined with ", ".
func MarkMonth(m *ttcal.Month, marks []Marking) {
	for _, mk := range marks {
		for _, d := range (ttcal.Days{mk.First, mk.Last}).Range() {
			cur, err := m.Lookup(d)
			if err != nil {
				continue
			}
			if v, ok := cur.Mark(); ok && v != "" {
				if !containsValue(v, mk.Value) {
					m.Mark(d, ", "+mk.Value, ttcal.MarkAppend)
				}
				continue
			}
			m.Mark(d, mk.Value, ttcal.MarkReplace)
		}
	}
}

func containsValue(joined, v string) bool {
	for _, part := range strings.Split(joined, ", ") {
		if part == v {
			return true
		}
	}
	return false
}

// Kind names the period type of s: day, week, month, quarter, halfyear or
// year.
func Kind(s ttcal.Span) string {
	switch s.(type) {
	case ttcal.Day:
		return "day"
	case *ttcal.Week:
		return "week"
	case *ttcal.Month:
		return "month"
	case *ttcal.Quarter:
		return "quarter"
	case *ttcal.Halfyear:
		return "halfyear"
	case *ttcal.Year:
		return "year"
	}
	return ""
}
