package ttcal

import (
	"fmt"
	"sort"
	"time"
)

// Chop splits items into consecutive chunks of n elements. The last chunk
// is shorter when len(items) is not a multiple of n.
func Chop[T any](items []T, n int) [][]T {
	if n <= 0 {
		return nil
	}
	res := make([][]T, 0, (len(items)+n-1)/n)
	for len(items) > 0 {
		k := min(n, len(items))
		chunk := make([]T, k)
		copy(chunk, items[:k])
		res = append(res, chunk)
		items = items[k:]
	}
	return res
}

// ISOWeekDays returns the seven days (Monday..Sunday) of ISO week n in the
// given ISO year.
func ISOWeekDays(year, n int) ([]Day, error) {
	if year < MinYear || year > MaxYear {
		return nil, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	if n < 1 || n > isoWeeksInYear(year) {
		return nil, fmt.Errorf("%w: iso week %d of %d", ErrInvalidDate, n, year)
	}
	// January 4th is always in week 1.
	jan4 := MustDay(year, time.January, 4)
	monday := jan4.Add(-jan4.Weekday() + 7*(n-1))
	days := make([]Day, 7)
	for i := range days {
		days[i] = fromOrdinal(monday.Ordinal() + i)
	}
	return days, nil
}

// isoWeeksInYear is 53 when December 28th falls in week 53, else 52.
func isoWeeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// FSplit splits s at the given byte offsets. Offsets are de-duplicated and
// sorted; zero and offsets past the end of s are ignored.
//
//	FSplit("D2008022002", 1, 5, 7, 9) => ["D", "2008", "02", "20", "02"]
func FSplit(s string, idx ...int) []string {
	idx = validIndexes(len(s), idx)
	if len(idx) == 0 {
		return []string{s}
	}
	res := make([]string, 0, len(idx)+1)
	b := 0
	for _, a := range idx {
		res = append(res, s[b:a])
		b = a
	}
	return append(res, s[b:])
}

// FJoin is the inverse of FSplit for parts produced with the same offsets:
// each part except the last is truncated to the width given by idx.
func FJoin(parts []string, idx ...int) string {
	var widths []int
	for _, n := range idx {
		if n > 0 {
			widths = append(widths, n)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	if len(widths) == 0 {
		return parts[0]
	}
	res := ""
	for i, w := range widths {
		if i >= len(parts)-1 {
			break
		}
		p := parts[i]
		if len(p) > w {
			p = p[:w]
		}
		res += p
	}
	return res + parts[len(parts)-1]
}

func validIndexes(n int, idx []int) []int {
	seen := make(map[int]bool, len(idx))
	var out []int
	for _, i := range idx {
		if i <= 0 || i > n || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
