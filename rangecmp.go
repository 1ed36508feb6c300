package ttcal

import "time"

// Extent is a half-open interval [Start, End) of instants. Every calendar
// value in this package reports its extent through RangeTuple.
type Extent struct {
	Start time.Time
	End   time.Time
}

// Ranged is implemented by values that occupy a calendar extent.
type Ranged interface {
	RangeTuple() Extent
}

// DateLike is implemented by values carrying a calendar date. time.Time and
// Day both satisfy it.
type DateLike interface {
	Date() (year int, month time.Month, day int)
}

// RangeCmp compares two half-open extents.
//
// It returns -1 when a lies entirely before b, +1 when a lies entirely after
// b, and 0 when the extents overlap or one contains the other. The result is
// a partial order: two extents that both overlap a third need not overlap
// each other.
func RangeCmp(a, b Extent) int {
	if !a.End.After(b.Start) {
		return -1
	}
	if !a.Start.Before(b.End) {
		return 1
	}
	return 0
}

// RangeTupleOf adapts v to an Extent. Ranged values report their own
// extent, an Extent or [2]time.Time is used as-is, and any other DateLike is
// treated as the whole day it falls on. For anything else ok is false,
// meaning v is not comparable with calendar values.
func RangeTupleOf(v any) (ext Extent, ok bool) {
	switch x := v.(type) {
	case nil:
		return Extent{}, false
	case Ranged:
		return x.RangeTuple(), true
	case Extent:
		return x, true
	case [2]time.Time:
		return Extent{Start: x[0], End: x[1]}, true
	case DateLike:
		return DayFrom(x).RangeTuple(), true
	}
	return Extent{}, false
}

// Compare compares two calendar values by extent. ok is false when either
// operand has no extent; cmp is meaningless in that case.
func Compare(a, b any) (cmp int, ok bool) {
	ea, ok := RangeTupleOf(a)
	if !ok {
		return 0, false
	}
	eb, ok := RangeTupleOf(b)
	if !ok {
		return 0, false
	}
	return RangeCmp(ea, eb), true
}

// relate compares self against other by extent.
func relate(self Extent, other any) (int, bool) {
	o, ok := RangeTupleOf(other)
	if !ok {
		return 0, false
	}
	return RangeCmp(self, o), true
}

// relateOrdinal is used by the period types that compare integers against
// their own ordinal field (month number, quarter number, year...).
func relateOrdinal(self Extent, field int, other any) (int, bool) {
	if n, ok := asInt(other); ok {
		return cmpInt(field, n), true
	}
	return relate(self, other)
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	}
	return 0, false
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// The predicates below turn a (cmp, ok) pair into the six relational
// operators. An incomparable operand makes all six false.

func lt(c int, ok bool) bool { return ok && c < 0 }
func le(c int, ok bool) bool { return ok && c <= 0 }
func eq(c int, ok bool) bool { return ok && c == 0 }
func ne(c int, ok bool) bool { return ok && c != 0 }
func gt(c int, ok bool) bool { return ok && c > 0 }
func ge(c int, ok bool) bool { return ok && c >= 0 }
