package ttcal

// Stepper is a calendar value that can be moved by whole units of its own
// granularity: Day, *Week, *Month, *Quarter, *Halfyear and *Year.
type Stepper[T any] interface {
	Ranged
	Add(n int) T
}

// Surround returns the 2n values around x, from x-n up to x+n-1. With n of
// 1 that is the previous value followed by x itself.
func Surround[T Stepper[T]](x T, n int) []T {
	res := make([]T, 0, 2*n)
	for i := -n; i < n; i++ {
		res = append(res, x.Add(i))
	}
	return res
}

// Previous returns the n values before x, nearest first.
func Previous[T Stepper[T]](x T, n int) []T {
	res := make([]T, 0, n)
	for i := 1; i <= n; i++ {
		res = append(res, x.Add(-i))
	}
	return res
}

// ChopAtNow returns the leading items up to and including the first one
// that contains today.
func ChopAtNow[T Ranged](items []T) []T {
	today := Today()
	for i, it := range items {
		if c, ok := Compare(it, today); ok && c == 0 {
			return items[:i+1]
		}
	}
	return items
}

// IsCurrent reports whether today lies within r.
func IsCurrent(r Ranged) bool {
	c, ok := Compare(r, Today())
	return ok && c == 0
}
