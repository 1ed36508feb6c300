package ttcal

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rickb777/period"
)

// Duration is a fixed length of elapsed time. Unlike Period it has no
// calendar semantics: a day is always 86400 seconds.
//
// The decomposed views (DurationTuple, Hrs, Mins, Secs, TotalSeconds) work in
// whole seconds, sub-second precision is kept internally.
type Duration time.Duration

// averageYear is the Gregorian mean year, 365.2425 days.
const averageYear = 365.2425

// NewDuration returns the duration of the given components. Components may
// be negative or exceed their natural range; they are simply summed.
func NewDuration(days, hours, minutes, seconds int) Duration {
	return Duration(time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second)
}

// DurationOf converts a time.Duration.
func DurationOf(d time.Duration) Duration { return Duration(d) }

// DurationFromSeconds returns a duration of s seconds.
func DurationFromSeconds(s int64) Duration {
	return Duration(time.Duration(s) * time.Second)
}

// YearsDuration returns n average Gregorian years: 365 days each plus the
// whole leap days accumulated over n years.
func YearsDuration(n int) Duration {
	leapDays := int(averageYear*float64(n) - 365*float64(n))
	return NewDuration(365*n+leapDays, 0, 0, 0)
}

// SumDurations folds the durations into their total, starting from zero.
func SumDurations(ds ...Duration) Duration {
	var res Duration
	for _, d := range ds {
		res += d
	}
	return res
}

func (d Duration) Std() time.Duration      { return time.Duration(d) }
func (d Duration) Add(o Duration) Duration { return d + o }
func (d Duration) Sub(o Duration) Duration { return d - o }
func (d Duration) Mul(n int64) Duration    { return d * Duration(n) }
func (d Duration) Neg() Duration           { return -d }

func (d Duration) MulFloat(f float64) Duration {
	return Duration(math.Round(float64(d) * f))
}

// Div divides d by a scalar. Division by zero returns zero.
func (d Duration) Div(n int64) Duration {
	if n == 0 {
		return 0
	}
	return d / Duration(n)
}

// DivDuration returns how many times o fits in d, truncated towards zero.
// A zero length o yields 0.
func (d Duration) DivDuration(o Duration) int64 {
	if o.TotalSeconds() == 0 {
		return 0
	}
	return int64(float64(d.TotalSeconds()) / float64(o.TotalSeconds()))
}

func (d Duration) Abs() Duration {
	if d < 0 {
		return -d
	}
	return d
}

// TotalSeconds returns the whole number of seconds in d, rounded down.
func (d Duration) TotalSeconds() int64 {
	ns := int64(d)
	s := ns / int64(time.Second)
	if ns%int64(time.Second) < 0 {
		s--
	}
	return s
}

// Days returns the whole number of days in d, rounded down.
func (d Duration) Days() int {
	return floorDiv(int(d.TotalSeconds()), secondsPerDay)
}

// DurationTuple decomposes d into sign ("-" or ""), hours (days included),
// minutes and seconds.
func (d Duration) DurationTuple() (sign string, hours, minutes, seconds int) {
	s := d.TotalSeconds()
	if s < 0 {
		sign = "-"
		s = -s
	}
	return sign, int(s / 3600), int(s / 60 % 60), int(s % 60)
}

func (d Duration) signum() int {
	if d.TotalSeconds() < 0 {
		return -1
	}
	return 1
}

// Hrs is the number of hours in d, including whole days.
func (d Duration) Hrs() int {
	_, h, _, _ := d.DurationTuple()
	return d.signum() * h
}

// Hours is the hour component of d, not including whole days.
func (d Duration) Hours() int {
	_, h, _, _ := d.DurationTuple()
	return d.signum() * (h % 24)
}

// Mins is the minute component of d.
func (d Duration) Mins() int {
	_, _, m, _ := d.DurationTuple()
	return d.signum() * m
}

// Secs is the second component of d.
func (d Duration) Secs() int {
	_, _, _, s := d.DurationTuple()
	return d.signum() * s
}

// String renders d as [-]H:MM:SS, hours include whole days.
func (d Duration) String() string {
	sign, h, m, s := d.DurationTuple()
	return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
}

func (d Duration) GoString() string {
	sign, h, m, s := d.DurationTuple()
	return fmt.Sprintf("%sDuration(hours=%d, minutes=%d, seconds=%d)", sign, h, m, s)
}

var durationRe = regexp.MustCompile(`^(-)?` +
	`(?:(\d+)\W*(?:weeks?|w),?)?\W*` +
	`(?:(\d+)\W*(?:days?|d),?)?\W*` +
	`(?:(\d+):(\d+)(?::(\d+)(?:\.(\d+))?)?)?`)

// ParseDuration reads [-][Nw][Nd][H:MM[:SS[.ffffff]]], e.g. "-1:10",
// "2 weeks, 3 days 4:00" or "1d 0:30:15". Every component is optional.
// Fractions of a second are read but truncated toward zero, so
// "-0:00:01.5" is minus one second.
//
// Blank txt yields ok == false and a nil error. Otherwise the longest prefix
// that fits the grammar is used. With strict, text left after that prefix is
// a *ParseError naming the remainder.
func ParseDuration(txt string, strict bool) (d Duration, ok bool, err error) {
	if txt == "" {
		return 0, false, nil
	}
	m := durationRe.FindStringSubmatchIndex(txt)
	if m == nil {
		if strict {
			return 0, false, &ParseError{Kind: "duration", Text: txt}
		}
		return 0, false, nil
	}
	if strict && m[1] != len(txt) {
		return 0, false, &ParseError{Kind: "duration", Text: txt, Remainder: txt[m[1]:]}
	}
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return txt[m[2*i]:m[2*i+1]]
	}
	num := func(i int) int {
		n, _ := strconv.Atoi(group(i))
		return n
	}
	days := num(3) + 7*num(2)
	res := NewDuration(days, num(4), num(5), num(6))
	if group(1) == "-" {
		res = -res
	}
	return res, true, nil
}

// Seconder is implemented by values that can be compared with a Duration
// by their whole number of seconds.
type Seconder interface {
	TotalSeconds() int64
}

// DurationComparer is implemented by types that know how to compare
// themselves with a Duration. CompareDuration reports how d relates to the
// receiver (-1 when d is smaller); ok is false when there is no relation.
// Duration comparisons hand over to the other operand when it implements
// this interface.
type DurationComparer interface {
	CompareDuration(d Duration) (cmp int, ok bool)
}

// Compare orders d against other. Accepted operands are DurationComparer
// (delegated to), Duration, time.Duration, integers (seconds) and Seconder.
func (d Duration) Compare(other any) (int, bool) {
	switch o := other.(type) {
	case DurationComparer:
		return o.CompareDuration(d)
	case Duration:
		return cmpInt64(int64(d), int64(o)), true
	case time.Duration:
		return cmpInt64(int64(d), int64(o)), true
	}
	if n, ok := asInt(other); ok {
		return cmpInt64(d.TotalSeconds(), int64(n)), true
	}
	if s, ok := other.(Seconder); ok {
		return cmpInt64(d.TotalSeconds(), s.TotalSeconds()), true
	}
	return 0, false
}

// Eq reports equality. An integer operand is only ever equal when both it
// and d are zero.
func (d Duration) Eq(other any) bool {
	if n, ok := asInt(other); ok {
		return n == 0 && d.TotalSeconds() == 0
	}
	return eq(d.Compare(other))
}

// Ne is the negation of Eq for comparable operands; it is false for
// operands Eq cannot relate, including non-zero integers.
func (d Duration) Ne(other any) bool {
	if n, ok := asInt(other); ok {
		return n == 0 && d.TotalSeconds() != 0
	}
	return ne(d.Compare(other))
}

func (d Duration) Lt(other any) bool { return lt(d.Compare(other)) }
func (d Duration) Le(other any) bool { return le(d.Compare(other)) }
func (d Duration) Gt(other any) bool { return gt(d.Compare(other)) }
func (d Duration) Ge(other any) bool { return ge(d.Compare(other)) }

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ISO returns d as an ISO 8601 duration, e.g. "P1DT2H30M".
func (d Duration) ISO() string {
	sign, h, m, s := d.DurationTuple()
	if h == 0 && m == 0 && s == 0 {
		return string(period.CanonicalZero)
	}
	p := period.New(0, 0, 0, h/24, h%24, m, s)
	if sign == "-" {
		p = p.Negate()
	}
	return p.String()
}

// ParseDurationISO reads an ISO 8601 duration. Years and months have no
// fixed length and are rejected.
func ParseDurationISO(s string) (Duration, error) {
	p, err := period.Parse(s)
	if err != nil {
		return 0, &ParseError{Kind: "ISO duration", Text: s, Cause: err}
	}
	if p.Years() != 0 || p.Months() != 0 {
		return 0, &ParseError{Kind: "ISO duration", Text: s, Cause: fmt.Errorf("calendar fields in %s", s)}
	}
	dur, _ := p.Duration()
	return Duration(dur), nil
}

// MarshalText encodes d in its H:MM:SS form.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts the H:MM:SS family read by ParseDuration in strict
// mode as well as ISO 8601 durations.
func (d *Duration) UnmarshalText(b []byte) error {
	s := string(b)
	if strings.HasPrefix(s, "P") || strings.HasPrefix(s, "-P") {
		v, err := ParseDurationISO(s)
		if err != nil {
			return err
		}
		*d = v
		return nil
	}
	v, _, err := ParseDuration(s, true)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
