package ttcal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickb777/period"
)

// Period is a signed calendar offset counted in months. It has no fixed
// length: one month after January 31st is the last day of February.
type Period struct {
	months int
}

// NewPeriod returns the period of years and months.
func NewPeriod(years, months int) Period {
	return Period{months: 12*years + months}
}

// Months returns a period of n months.
func Months(n int) Period { return Period{months: n} }

// Years returns a period of n years.
func Years(n int) Period { return Period{months: 12 * n} }

// TotalMonths returns the signed number of months in p.
func (p Period) TotalMonths() int { return p.months }

func (p Period) Add(o Period) Period { return Period{months: p.months + o.months} }
func (p Period) Sub(o Period) Period { return Period{months: p.months - o.months} }
func (p Period) Neg() Period         { return Period{months: -p.months} }
func (p Period) IsZero() bool        { return p.months == 0 }

// AddTo moves d forward by p. The target month is found by month
// arithmetic, and the day of month is clamped to the target month's length.
// Each call clamps independently, so adding one month twice can land on a
// different day than adding two months once.
func (p Period) AddTo(d Day) Day {
	return stepMonths(d, p.months)
}

// SubFrom moves d backward by p, clamping like AddTo.
func (p Period) SubFrom(d Day) Day {
	return stepMonths(d, -p.months)
}

func stepMonths(d Day, n int) Day {
	y, m := addMonths(d.year, d.month, n)
	return MustDay(y, m, min(d.day, daysIn(y, m)))
}

// addMonths steps (year, month) by n months, wrapping years and stopping
// at January 0001 and December 9999.
func addMonths(year int, m time.Month, n int) (int, time.Month) {
	idx := min(max(year*12+int(m)-1+n, MinYear*12), MaxYear*12+11)
	return idx / 12, time.Month(idx%12 + 1)
}

// yearMonth feeds the date of v to addMonths as a zero step.
func yearMonth(v DateLike) (int, time.Month, int) {
	y, m, _ := v.Date()
	return y, m, 0
}

// Compare orders periods by total months. Only Period operands are
// comparable.
func (p Period) Compare(other any) (int, bool) {
	o, ok := other.(Period)
	if !ok {
		return 0, false
	}
	return cmpInt(p.months, o.months), true
}

func (p Period) Lt(other any) bool { return lt(p.Compare(other)) }
func (p Period) Le(other any) bool { return le(p.Compare(other)) }
func (p Period) Eq(other any) bool { return eq(p.Compare(other)) }
func (p Period) Ne(other any) bool { return ne(p.Compare(other)) }
func (p Period) Gt(other any) bool { return gt(p.Compare(other)) }
func (p Period) Ge(other any) bool { return ge(p.Compare(other)) }

// String renders p as "Period(1 years, 1 months)", or "Period(N months)" for
// less than a year.
func (p Period) String() string {
	if p.months >= 12 {
		return fmt.Sprintf("Period(%d years, %d months)", p.months/12, p.months%12)
	}
	return fmt.Sprintf("Period(%d months)", p.months)
}

// ISO returns p as an ISO 8601 period such as "P1Y2M". The zero period is
// "P0D".
func (p Period) ISO() string {
	n := p.months
	if n == 0 {
		return string(period.CanonicalZero)
	}
	neg := n < 0
	if neg {
		n = -n
	}
	iso := period.NewYMD(n/12, n%12, 0)
	if neg {
		iso = iso.Negate()
	}
	return iso.String()
}

// ParsePeriod reads an ISO 8601 period containing only whole years and
// months, e.g. "P1Y6M" or "-P3M".
func ParsePeriod(s string) (Period, error) {
	iso, err := period.Parse(strings.TrimSpace(s))
	if err != nil {
		return Period{}, &ParseError{Kind: "period", Text: s, Cause: err}
	}
	if iso.Weeks() != 0 || iso.Days() != 0 || !iso.OnlyHMS().IsZero() {
		return Period{}, &ParseError{Kind: "period", Text: s, Cause: fmt.Errorf("only years and months are allowed")}
	}
	if !iso.YearsDecimal().IsInt() || !iso.MonthsDecimal().IsInt() {
		return Period{}, &ParseError{Kind: "period", Text: s, Cause: fmt.Errorf("fractional months")}
	}
	return NewPeriod(iso.Years(), iso.Months()), nil
}

func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.ISO()), nil
}

func (p *Period) UnmarshalText(b []byte) error {
	v, err := ParsePeriod(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
