package ttcal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datakortet/ttcal"
)

func TestChop(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		n     int
		want  [][]int
	}{
		{"even", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"ragged", []int{1, 2, 3, 4, 5}, 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"single", []int{1, 2}, 5, [][]int{{1, 2}}},
		{"empty", nil, 3, [][]int{}},
		{"zero_width", []int{1}, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ttcal.Chop(tt.items, tt.n))
		})
	}
}

func TestChop_Copies(t *testing.T) {
	items := []int{1, 2, 3}
	chunks := ttcal.Chop(items, 2)
	chunks[0][0] = 99
	assert.Equal(t, 1, items[0])
}

func TestFSplit(t *testing.T) {
	tests := []struct {
		name string
		s    string
		idx  []int
		want []string
	}{
		{"day_tag", "D2008022002", []int{1, 5, 7, 9}, []string{"D", "2008", "02", "20", "02"}},
		{"unsorted", "abcdef", []int{4, 2}, []string{"ab", "cd", "ef"}},
		{"duplicates", "abcdef", []int{2, 2}, []string{"ab", "cdef"}},
		{"out_of_range", "abc", []int{0, 1, 10}, []string{"a", "bc"}},
		{"no_offsets", "abc", nil, []string{"abc"}},
		{"at_end", "abc", []int{3}, []string{"abc", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ttcal.FSplit(tt.s, tt.idx...))
		})
	}
}

func TestFJoin(t *testing.T) {
	parts := ttcal.FSplit("D2008022002", 1, 5, 7, 9)
	assert.Equal(t, "D2008022002", ttcal.FJoin(parts, 1, 4, 2, 2))
	assert.Equal(t, "", ttcal.FJoin(nil, 1))
	assert.Equal(t, "abc", ttcal.FJoin([]string{"abc", "def"}))
	assert.Equal(t, "abdef", ttcal.FJoin([]string{"abc", "def"}, 2))
}

func TestISOWeekDays(t *testing.T) {
	days, err := ttcal.ISOWeekDays(2009, 53)
	assert.NoError(t, err)
	assert.Equal(t, "2009-12-28", days[0].String())
	assert.Equal(t, "2010-01-03", days[6].String())

	_, err = ttcal.ISOWeekDays(2010, 53)
	assert.ErrorIs(t, err, ttcal.ErrInvalidDate)
}
