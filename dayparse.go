package ttcal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateFamily is one accepted textual layout. The sub-matches are picked out
// by the day, month and year indexes.
type dateFamily struct {
	re             *regexp.Regexp
	day, month, yr int
	twoDigitYear   bool
}

const (
	reYear4   = `([12]\d{3})`
	reMonth   = `(0[1-9]|1[012]|[1-9])`
	reMonthD  = `(0[1-9]|1[012]|\d)`
	reDay     = `(3[01]|[12]\d|0[1-9]|[1-9])`
	reDayD    = `(3[01]|[12]\d|0[1-9]|\d)`
	reDay2    = `(3[01]|[12]\d|0[1-9])`
	reMonth2  = `(0[1-9]|1[012])`
	reYearNSP = `(20[1-5]\d)`
	reYear2   = `([1-9]\d)`
)

// spaceSeps are the whitespace characters allowed as a date separator, one
// pattern each so both separators of a date are the same character.
var spaceSeps = []string{` `, `\t`, `\n`, `\r`, `\f`, `\v`}

// dateFamilies lists the accepted layouts in the order they are tried. The
// two separators of a date must be the same character, so every separated
// layout is expanded once per separator.
var dateFamilies = buildDateFamilies()

func buildDateFamilies() []dateFamily {
	var res []dateFamily
	add := func(pattern string, day, month, yr int, two bool) {
		res = append(res, dateFamily{
			re:           regexp.MustCompile(`^\s*` + pattern),
			day:          day,
			month:        month,
			yr:           yr,
			twoDigitYear: two,
		})
	}
	seps := append([]string{`-`, `\.`, `/`}, spaceSeps...)
	for _, sep := range seps {
		add(reYear4+sep+reMonth+sep+reDay, 3, 2, 1, false)
	}
	for _, sep := range seps {
		add(reDayD+sep+reMonthD+sep+reYear4, 1, 2, 3, false)
	}
	add(reDay2+reMonth2+reYear4, 1, 2, 3, false)
	add(reYearNSP+reMonth2+reDay2, 3, 2, 1, false)
	for _, sep := range seps[1:] {
		add(reDayD+sep+reMonthD+sep+reYear2, 1, 2, 3, true)
	}
	return res
}

// ParseDay interprets s as a date. Accepted layouts, with separator one of
// "-./ " used consistently:
//
//	yyyy-mm-dd   (month and day may have one digit)
//	dd-mm-yyyy
//	ddmmyyyy
//	yyyymmdd     (years 2010..2059 only)
//	dd.mm.yy     (separator "./ "; yy >= 13 maps to 20yy)
//
// A blank s yields ok == false and a nil error. Anything else that does not
// parse is a *ParseError.
func ParseDay(s string) (d Day, ok bool, err error) {
	if strings.TrimSpace(s) == "" {
		return Day{}, false, nil
	}
	for _, f := range dateFamilies {
		m := f.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		day, _ := strconv.Atoi(m[f.day])
		month, _ := strconv.Atoi(m[f.month])
		year, _ := strconv.Atoi(m[f.yr])
		if f.twoDigitYear {
			if year < 13 {
				return Day{}, false, &ParseError{Kind: "date", Text: s}
			}
			year += 2000
		}
		d, err := newDay(year, time.Month(month), day)
		if err != nil {
			return Day{}, false, &ParseError{Kind: "date", Text: s, Cause: err}
		}
		return d, true, nil
	}
	return Day{}, false, &ParseError{Kind: "date", Text: s}
}

// IDTag returns the serialization tag of d: d{yyyy}{mm}{dd}{bb} where bb is
// the membermonth.
func (d Day) IDTag() string {
	return fmt.Sprintf("d%d%02d%02d%02d", d.year, int(d.month), d.day, int(d.memberMonth))
}

// ParseDayTag is the inverse of Day.IDTag. The 9 character legacy form
// without membermonth is accepted, the membermonth is then the day's month.
func ParseDayTag(tag string) (Day, error) {
	if len(tag) < 9 || tag[0] != 'd' {
		return Day{}, &ParseError{Kind: "day tag", Text: tag}
	}
	idx := []int{1, 5, 7, 9}
	if len(tag) == 9 {
		idx = idx[:3]
	}
	parts := FSplit(tag, idx...)[1:]
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Day{}, &ParseError{Kind: "day tag", Text: tag, Cause: err}
		}
		nums[i] = n
	}
	d, err := newDay(nums[0], time.Month(nums[1]), nums[2])
	if err != nil {
		return Day{}, &ParseError{Kind: "day tag", Text: tag, Cause: err}
	}
	if len(nums) == 4 {
		if nums[3] < 1 || nums[3] > 12 {
			return Day{}, &ParseError{Kind: "day tag", Text: tag, Cause: ErrMonthRange}
		}
		d = d.WithMemberMonth(time.Month(nums[3]))
	}
	return d, nil
}

// DefaultDayFormat renders as e.g. "Apr 10, 2012".
const DefaultDayFormat = "N j, Y"

// Format renders d using single character codes, unknown characters are
// copied verbatim:
//
//	y  two digit year        Y  four digit year
//	W  ISO week number       w  weekday, 0 = Monday
//	n  month                 m  zero padded month
//	b  "apr"                 M, N  "Apr"
//	F  "April"               j  day of month
//	d  zero padded day       D  "tir"
//	l  "tirsdag"             z  day of year, 0 = Jan 1
//
// An empty layout uses DefaultDayFormat.
func (d Day) Format(layout string) string {
	if layout == "" {
		layout = DefaultDayFormat
	}
	var sb strings.Builder
	for _, ch := range layout {
		switch ch {
		case 'y':
			sb.WriteString(twoDigitYear(d.year))
		case 'Y':
			sb.WriteString(strconv.Itoa(d.year))
		case 'W':
			sb.WriteString(strconv.Itoa(d.WeekNum()))
		case 'w':
			sb.WriteString(strconv.Itoa(d.Weekday()))
		case 'n', 'm', 'b', 'M', 'N', 'F':
			sb.WriteString(formatMonthCode(d.year, d.month, ch))
		case 'j':
			sb.WriteString(strconv.Itoa(d.day))
		case 'd':
			sb.WriteString(pad2(d.day))
		case 'D':
			sb.WriteString(prefix(d.DayName(), 3))
		case 'l':
			sb.WriteString(d.DayName())
		case 'z':
			sb.WriteString(strconv.Itoa(d.YearDay()))
		default:
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// formatMonthCode renders the month related format codes shared by Day and
// Month.
func formatMonthCode(year int, m time.Month, ch rune) string {
	switch ch {
	case 'y':
		return twoDigitYear(year)
	case 'Y':
		return strconv.Itoa(year)
	case 'n':
		return strconv.Itoa(int(m))
	case 'm':
		return pad2(int(m))
	case 'b':
		return lowerNO(prefix(MonthName(m), 3))
	case 'M', 'N':
		return prefix(MonthName(m), 3)
	case 'F':
		return MonthName(m)
	}
	return string(ch)
}

func twoDigitYear(y int) string {
	s := strconv.Itoa(y)
	if len(s) > 2 {
		return s[len(s)-2:]
	}
	return s
}

func pad2(n int) string {
	if n < 10 && n >= 0 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// MarshalText encodes d as an ISO date.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts any layout ParseDay understands as well as day
// idtags.
func (d *Day) UnmarshalText(b []byte) error {
	s := string(b)
	if strings.HasPrefix(s, "d") {
		v, err := ParseDayTag(s)
		if err != nil {
			return err
		}
		*d = v
		return nil
	}
	v, ok, err := ParseDay(s)
	if err != nil {
		return err
	}
	if !ok {
		*d = Day{}
		return nil
	}
	*d = v
	return nil
}

// Days is a contiguous run of days.
type Days []Day

// NewDays returns every day from start through end inclusive. With
// startWeek the run is extended backwards to the Monday of start's week.
func NewDays(start, end DateLike, startWeek bool) (Days, error) {
	first, last := DayFrom(start), DayFrom(end)
	if first.Ordinal() > last.Ordinal() {
		return nil, fmt.Errorf("ttcal: start %s is after end %s", first, last)
	}
	if startWeek {
		first = first.Add(-first.Weekday())
	}
	return dayRun(first, last), nil
}

func dayRun(first, last Day) Days {
	a, b := first.Ordinal(), last.Ordinal()
	if b < a {
		return Days{}
	}
	res := make(Days, 0, b-a+1)
	for i := a; i <= b; i++ {
		res = append(res, fromOrdinal(i))
	}
	return res
}

func (ds Days) First() Day  { return ds[0] }
func (ds Days) Last() Day   { return ds[len(ds)-1] }
func (ds Days) Middle() Day { return middleOf(ds.First(), ds.Last()) }

// Range returns a fresh copy of the run.
func (ds Days) Range() Days { return dayRun(ds.First(), ds.Last()) }

func (ds Days) RangeTuple() Extent {
	return Extent{Start: ds.First().Time(), End: ds.Last().end()}
}

func (ds Days) BetweenTuple() (time.Time, time.Time) {
	return betweenTuple(ds.First(), ds.Last())
}
