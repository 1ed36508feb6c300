package ttcal

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Norwegian day and month names. Weekday index 0 is Monday.
var (
	dayNames = [7]string{
		"mandag", "tirsdag", "onsdag", "torsdag", "fredag", "lørdag", "søndag",
	}
	dayCodes = [7]string{"M", "U", "W", "H", "F", "A", "S"}

	monthNames = [13]string{
		"", "Januar", "Februar", "Mars", "April", "Mai", "Juni", "Juli",
		"August", "September", "Oktober", "November", "Desember",
	}
)

// A cases.Caser keeps state between calls, so a fresh one is made for every
// conversion.
func lowerNO(s string) string { return cases.Lower(language.Norwegian).String(s) }
func titleNO(s string) string { return cases.Title(language.Norwegian).String(s) }

// DayName returns the Norwegian name of weekday n (0 = Monday), truncated to
// length runes when length > 0.
func DayName(n, length int) string {
	name := dayNames[((n%7)+7)%7]
	if length <= 0 {
		return name
	}
	return prefix(name, length)
}

// TitleDayName is DayName with an initial capital, as used in calendar
// headers.
func TitleDayName(n, length int) string {
	return titleNO(DayName(n, length))
}

// MonthName returns the Norwegian name of month m, capitalised.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m]
}

// prefix returns the first n runes of s. Names contain non-ASCII letters
// (lørdag, søndag), so slicing bytes is not safe.
func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
