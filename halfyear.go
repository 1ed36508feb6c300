package ttcal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Halfyear is the six months January..June or July..December.
type Halfyear struct {
	monthRun
	year int
	half int
}

// NewHalfyear returns half h (1 or 2) of year.
func NewHalfyear(year, h int) (*Halfyear, error) {
	if h < 1 || h > 2 {
		return nil, fmt.Errorf("ttcal: halfyear must be 1 or 2, got %d", h)
	}
	if year < MinYear || year > MaxYear {
		return nil, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	return &Halfyear{
		monthRun: buildMonths(year, time.Month(6*h-5), 6),
		year:     year,
		half:     h,
	}, nil
}

func mustHalfyear(year, h int) *Halfyear {
	v, err := NewHalfyear(year, h)
	if err != nil {
		panic(err)
	}
	return v
}

// HalfyearOf returns the halfyear containing v.
func HalfyearOf(v DateLike) *Halfyear {
	y, m := addMonths(yearMonth(v))
	return mustHalfyear(y, (int(m)+5)/6)
}

// CurrentHalfyear returns the halfyear containing today.
func CurrentHalfyear() *Halfyear { return HalfyearOf(Today()) }

// ParseHalfyearTag is the inverse of Halfyear.IDTag. The legacy lower-case
// h prefix is accepted as well.
func ParseHalfyearTag(tag string) (*Halfyear, error) {
	if strings.HasPrefix(tag, "h") {
		tag = "H" + tag[1:]
	}
	y, n, err := splitTag(tag, 'H', "halfyear tag")
	if err != nil {
		return nil, err
	}
	h, err := NewHalfyear(y, n)
	if err != nil {
		return nil, &ParseError{Kind: "halfyear tag", Text: tag, Cause: err}
	}
	return h, nil
}

func (h *Halfyear) Year() int           { return h.year }
func (h *Halfyear) Half() int           { return h.half }
func (h *Halfyear) FirstMonth() *Month  { return h.months[0] }
func (h *Halfyear) YearOf() *Year       { return MustYear(h.year) }
func (h *Halfyear) IDTag() string       { return fmt.Sprintf("H%d%d", h.year, h.half) }
func (h *Halfyear) Next() *Halfyear     { return h.Add(1) }
func (h *Halfyear) Prev() *Halfyear     { return h.Add(-1) }
func (h *Halfyear) Sub(n int) *Halfyear { return h.Add(-n) }

// Add steps n halfyears, wrapping into neighbouring years. It stops at
// the first half of year 1 and the second half of 9999.
func (h *Halfyear) Add(n int) *Halfyear {
	idx := min(max(h.year*2+h.half-1+n, MinYear*2), MaxYear*2+1)
	return mustHalfyear(idx/2, idx%2+1)
}

// DefaultHalfyearFormat renders as e.g. "2005H1".
const DefaultHalfyearFormat = "H"

// Format renders the halfyear with the codes h (half number) and H
// (e.g. "2005H1"). Other characters are copied.
func (h *Halfyear) Format(layout string) string {
	if layout == "" {
		layout = DefaultHalfyearFormat
	}
	var sb strings.Builder
	for _, ch := range layout {
		switch ch {
		case 'h':
			sb.WriteString(strconv.Itoa(h.half))
		case 'H':
			fmt.Fprintf(&sb, "%dH%d", h.year, h.half)
		default:
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

func (h *Halfyear) String() string { return h.Format(DefaultHalfyearFormat) }

func (h *Halfyear) GoString() string {
	return fmt.Sprintf("Halfyear(%d, %d)", h.year, h.half)
}

// Compare orders h against other by extent. An integer operand is compared
// with the half number.
func (h *Halfyear) Compare(other any) (int, bool) {
	return relateOrdinal(h.RangeTuple(), h.half, other)
}

func (h *Halfyear) Lt(other any) bool { return lt(h.Compare(other)) }
func (h *Halfyear) Le(other any) bool { return le(h.Compare(other)) }
func (h *Halfyear) Eq(other any) bool { return eq(h.Compare(other)) }
func (h *Halfyear) Ne(other any) bool { return ne(h.Compare(other)) }
func (h *Halfyear) Gt(other any) bool { return gt(h.Compare(other)) }
func (h *Halfyear) Ge(other any) bool { return ge(h.Compare(other)) }

func (h *Halfyear) MarshalText() ([]byte, error) { return []byte(h.IDTag()), nil }

func (h *Halfyear) UnmarshalText(b []byte) error {
	v, err := ParseHalfyearTag(string(b))
	if err != nil {
		return err
	}
	*h = *v
	return nil
}
