package ttcal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Year is a calendar year holding its twelve months.
//
// Marks set through Mark and MarkPeriod live in the year's own months; the
// same single-writer rule as for Month applies.
type Year struct {
	monthRun
	year int
}

// NewYear returns the year y, which must be in MinYear..MaxYear.
func NewYear(y int) (*Year, error) {
	if y < MinYear || y > MaxYear {
		return nil, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, y)
	}
	return &Year{monthRun: buildMonths(y, time.January, 12), year: y}, nil
}

// MustYear is like NewYear but panics on a year out of range.
func MustYear(y int) *Year {
	v, err := NewYear(y)
	if err != nil {
		panic(err)
	}
	return v
}

// CurrentYear returns the year containing today.
func CurrentYear() *Year { return MustYear(Today().year) }

// ParseYearTag is the inverse of Year.IDTag.
func ParseYearTag(tag string) (*Year, error) {
	if len(tag) != 5 || tag[0] != 'y' {
		return nil, &ParseError{Kind: "year tag", Text: tag}
	}
	n, err := strconv.Atoi(tag[1:])
	if err != nil {
		return nil, &ParseError{Kind: "year tag", Text: tag, Cause: err}
	}
	y, err := NewYear(n)
	if err != nil {
		return nil, &ParseError{Kind: "year tag", Text: tag, Cause: err}
	}
	return y, nil
}

func (y *Year) Year() int       { return y.year }
func (y *Year) IDTag() string   { return fmt.Sprintf("y%d", y.year) }
func (y *Year) Sub(n int) *Year { return y.Add(-n) }
func (y *Year) Next() *Year     { return y.Add(1) }
func (y *Year) Prev() *Year     { return y.Add(-1) }
func (y *Year) IsLeap() bool    { return isLeap(y.year) }

// Month returns month m of the year, as held by the year.
func (y *Year) Month(m time.Month) (*Month, error) {
	if m < time.January || m > time.December {
		return nil, fmt.Errorf("%w: got %d", ErrMonthRange, int(m))
	}
	return y.months[m-1], nil
}

// Add steps n years. It stops at years 1 and 9999.
func (y *Year) Add(n int) *Year {
	return MustYear(min(max(y.year+n, MinYear), MaxYear))
}

func (y *Year) January() *Month   { return y.months[0] }
func (y *Year) February() *Month  { return y.months[1] }
func (y *Year) March() *Month     { return y.months[2] }
func (y *Year) April() *Month     { return y.months[3] }
func (y *Year) May() *Month       { return y.months[4] }
func (y *Year) June() *Month      { return y.months[5] }
func (y *Year) July() *Month      { return y.months[6] }
func (y *Year) August() *Month    { return y.months[7] }
func (y *Year) September() *Month { return y.months[8] }
func (y *Year) October() *Month   { return y.months[9] }
func (y *Year) November() *Month  { return y.months[10] }
func (y *Year) December() *Month  { return y.months[11] }

func (y *Year) H1() []*Month { return y.Months()[:6] }
func (y *Year) H2() []*Month { return y.Months()[6:] }
func (y *Year) Q1() []*Month { return y.Months()[:3] }
func (y *Year) Q2() []*Month { return y.Months()[3:6] }
func (y *Year) Q3() []*Month { return y.Months()[6:9] }
func (y *Year) Q4() []*Month { return y.Months()[9:] }

// Halves returns the months of the year split in two.
func (y *Year) Halves() [][]*Month { return Chop(y.months, 6) }

// Quarters returns the months of the year split in four.
func (y *Year) Quarters() [][]*Month { return Chop(y.months, 3) }

// Halfyears returns both halfyears of the year.
func (y *Year) Halfyears() []*Halfyear {
	return []*Halfyear{mustHalfyear(y.year, 1), mustHalfyear(y.year, 2)}
}

// QuarterPeriods returns the four quarters of the year.
func (y *Year) QuarterPeriods() []*Quarter {
	res := make([]*Quarter, 4)
	for i := range res {
		res[i] = mustQuarter(y.year, i+1)
	}
	return res
}

// Rows lays the months out for a calendar of four rows of three.
func (y *Year) Rows() [][]*Month { return Chop(y.months, 3) }

// Rows4 lays the months out for a calendar of three rows of four.
func (y *Year) Rows4() [][]*Month { return Chop(y.months, 4) }

// DefaultYearFormat renders the four digit year.
const DefaultYearFormat = "Y"

// Format renders the year with the codes y (two digits) and Y (four
// digits). Other characters are copied.
func (y *Year) Format(layout string) string {
	if layout == "" {
		layout = DefaultYearFormat
	}
	var sb strings.Builder
	for _, ch := range layout {
		switch ch {
		case 'y':
			sb.WriteString(twoDigitYear(y.year))
		case 'Y':
			sb.WriteString(strconv.Itoa(y.year))
		default:
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

func (y *Year) String() string { return strconv.Itoa(y.year) }

func (y *Year) GoString() string { return fmt.Sprintf("Year(%d)", y.year) }

// Compare orders y against other by extent. An integer operand is compared
// with the year number.
func (y *Year) Compare(other any) (int, bool) {
	return relateOrdinal(y.RangeTuple(), y.year, other)
}

func (y *Year) Lt(other any) bool { return lt(y.Compare(other)) }
func (y *Year) Le(other any) bool { return le(y.Compare(other)) }
func (y *Year) Eq(other any) bool { return eq(y.Compare(other)) }
func (y *Year) Ne(other any) bool { return ne(y.Compare(other)) }
func (y *Year) Gt(other any) bool { return gt(y.Compare(other)) }
func (y *Year) Ge(other any) bool { return ge(y.Compare(other)) }

func (y *Year) MarshalText() ([]byte, error) { return []byte(y.IDTag()), nil }

func (y *Year) UnmarshalText(b []byte) error {
	v, err := ParseYearTag(string(b))
	if err != nil {
		return err
	}
	*y = *v
	return nil
}
