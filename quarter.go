package ttcal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Quarter is three consecutive months starting in January, April, July or
// October.
type Quarter struct {
	monthRun
	year    int
	quarter int
}

// NewQuarter returns quarter q (1..4) of year.
func NewQuarter(year, q int) (*Quarter, error) {
	if q < 1 || q > 4 {
		return nil, fmt.Errorf("ttcal: quarter must be in 1..4, got %d", q)
	}
	if year < MinYear || year > MaxYear {
		return nil, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	return &Quarter{
		monthRun: buildMonths(year, time.Month(3*q-2), 3),
		year:     year,
		quarter:  q,
	}, nil
}

func mustQuarter(year, q int) *Quarter {
	v, err := NewQuarter(year, q)
	if err != nil {
		panic(err)
	}
	return v
}

// QuarterOf returns the quarter containing v.
func QuarterOf(v DateLike) *Quarter {
	y, m := addMonths(yearMonth(v))
	return mustQuarter(y, (int(m)+2)/3)
}

// CurrentQuarter returns the quarter containing today.
func CurrentQuarter() *Quarter { return QuarterOf(Today()) }

// ParseQuarterTag is the inverse of Quarter.IDTag.
func ParseQuarterTag(tag string) (*Quarter, error) {
	y, n, err := splitTag(tag, 'q', "quarter tag")
	if err != nil {
		return nil, err
	}
	q, err := NewQuarter(y, n)
	if err != nil {
		return nil, &ParseError{Kind: "quarter tag", Text: tag, Cause: err}
	}
	return q, nil
}

func (q *Quarter) Year() int          { return q.year }
func (q *Quarter) Quarter() int       { return q.quarter }
func (q *Quarter) FirstMonth() *Month { return q.months[0] }
func (q *Quarter) YearOf() *Year      { return MustYear(q.year) }
func (q *Quarter) IDTag() string      { return fmt.Sprintf("q%d%d", q.year, q.quarter) }
func (q *Quarter) Next() *Quarter     { return q.Add(1) }
func (q *Quarter) Prev() *Quarter     { return q.Add(-1) }
func (q *Quarter) Sub(n int) *Quarter { return q.Add(-n) }

// Add steps n quarters, wrapping into neighbouring years. It stops at the
// first quarter of year 1 and the last of 9999.
func (q *Quarter) Add(n int) *Quarter {
	idx := min(max(q.year*4+q.quarter-1+n, MinYear*4), MaxYear*4+3)
	return mustQuarter(idx/4, idx%4+1)
}

// DefaultQuarterFormat renders as e.g. "2005Q1".
const DefaultQuarterFormat = "Q"

// Format renders the quarter with the codes q (quarter number) and Q
// (e.g. "2005Q1"). Other characters are copied.
func (q *Quarter) Format(layout string) string {
	if layout == "" {
		layout = DefaultQuarterFormat
	}
	var sb strings.Builder
	for _, ch := range layout {
		switch ch {
		case 'q':
			sb.WriteString(strconv.Itoa(q.quarter))
		case 'Q':
			fmt.Fprintf(&sb, "%dQ%d", q.year, q.quarter)
		default:
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

func (q *Quarter) String() string { return q.Format(DefaultQuarterFormat) }

func (q *Quarter) GoString() string {
	return fmt.Sprintf("Quarter(%d, %d)", q.year, q.quarter)
}

// Compare orders q against other by extent. An integer operand is compared
// with the quarter number.
func (q *Quarter) Compare(other any) (int, bool) {
	return relateOrdinal(q.RangeTuple(), q.quarter, other)
}

func (q *Quarter) Lt(other any) bool { return lt(q.Compare(other)) }
func (q *Quarter) Le(other any) bool { return le(q.Compare(other)) }
func (q *Quarter) Eq(other any) bool { return eq(q.Compare(other)) }
func (q *Quarter) Ne(other any) bool { return ne(q.Compare(other)) }
func (q *Quarter) Gt(other any) bool { return gt(q.Compare(other)) }
func (q *Quarter) Ge(other any) bool { return ge(q.Compare(other)) }

func (q *Quarter) MarshalText() ([]byte, error) { return []byte(q.IDTag()), nil }

func (q *Quarter) UnmarshalText(b []byte) error {
	v, err := ParseQuarterTag(string(b))
	if err != nil {
		return err
	}
	*q = *v
	return nil
}
