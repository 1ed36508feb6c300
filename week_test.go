package ttcal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datakortet/ttcal"
)

func TestWeekNum(t *testing.T) {
	tests := []struct {
		name        string
		n, year     int
		first, last string
		tag         string
		month       time.Month
	}{
		{"w4_2012", 4, 2012, "2012-01-23", "2012-01-29", "w20124", time.January},
		{"w1_2013", 1, 2013, "2012-12-31", "2013-01-06", "w20131", time.December},
		{"w53_2015", 53, 2015, "2015-12-28", "2016-01-03", "w201553", time.December},
		{"w52_2012", 52, 2012, "2012-12-24", "2012-12-30", "w201252", time.December},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ttcal.WeekNum(tt.n, tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.first, w.First().String())
			assert.Equal(t, tt.last, w.Last().String())
			assert.Equal(t, tt.tag, w.IDTag())
			assert.Equal(t, tt.year, w.Year())
			assert.Equal(t, tt.n, w.Num())
			assert.Equal(t, tt.month, w.Month())
			assert.Len(t, w.Days(), 7)
		})
	}
}

func TestWeekNum_OutOfRange(t *testing.T) {
	for _, n := range []int{0, -1, 53, 54} {
		_, err := ttcal.WeekNum(n, 2014)
		assert.ErrorIs(t, err, ttcal.ErrInvalidDate, "week %d", n)
	}

	for _, y := range []int{0, 10000} {
		_, err := ttcal.WeekNum(1, y)
		assert.ErrorIs(t, err, ttcal.ErrInvalidDate, "year %d", y)
	}
	_, err := ttcal.ParseWeekTag("w00001")
	assert.Error(t, err)
}

func TestNewWeek(t *testing.T) {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = time.Date(2012, time.April, 30+i, 0, 0, 0, 0, time.UTC)
	}
	w, err := ttcal.NewWeek(days, time.May)
	require.NoError(t, err)
	assert.Equal(t, 18, w.Num())
	assert.Equal(t, "2012-04-30", w.First().String())
	for _, d := range w.Days() {
		assert.Equal(t, time.May, d.MemberMonth())
	}
	assert.False(t, w.First().InMonth())
	assert.True(t, w.Last().InMonth())

	_, err = ttcal.NewWeek(days[:6], time.May)
	var ae *ttcal.ArgumentError
	assert.ErrorAs(t, err, &ae)
}

func TestWeek_Format(t *testing.T) {
	w, err := ttcal.WeekNum(4, 2012)
	require.NoError(t, err)

	assert.Equal(t, "Uke 4 (2012)", w.String())
	assert.Equal(t, "Uke 4 (2012)", w.Format(""))
	assert.Equal(t, "4/12", w.Format("W/y"))
	assert.Equal(t, "Week(4, month=1, year=2012)", w.GoString())
}

func TestWeek_Navigation(t *testing.T) {
	w, err := ttcal.WeekNum(52, 2012)
	require.NoError(t, err)

	next := w.Next()
	assert.Equal(t, "w20131", next.IDTag())
	assert.Equal(t, "w201251", w.Prev().IDTag())
	assert.Equal(t, "w201250", w.Sub(2).IDTag())
	assert.Equal(t, "w20132", w.Add(2).IDTag())
	assert.Equal(t, "2012-12-27", w.Middle().String())
}

func TestWeek_Day(t *testing.T) {
	w, err := ttcal.WeekNum(4, 2012)
	require.NoError(t, err)

	d, err := w.Day(0)
	require.NoError(t, err)
	assert.Equal(t, "2012-01-23", d.String())

	d, err = w.Day(-1)
	require.NoError(t, err)
	assert.Equal(t, "2012-01-29", d.String())

	_, err = w.Day(7)
	assert.ErrorIs(t, err, ttcal.ErrNotFound)
}

func TestWeek_Contains(t *testing.T) {
	w, err := ttcal.WeekNum(4, 2012)
	require.NoError(t, err)

	assert.True(t, w.Contains(ttcal.MustDay(2012, time.January, 23)))
	assert.True(t, w.Contains(time.Date(2012, time.January, 29, 23, 59, 0, 0, time.UTC)))
	assert.False(t, w.Contains(ttcal.MustDay(2012, time.January, 30)))
	assert.Len(t, w.Range(), 7)

	start, end := w.BetweenTuple()
	assert.Equal(t, time.Date(2012, time.January, 23, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 29, end.Day())
}

func TestWeek_Today(t *testing.T) {
	fixNow(t, 2012, time.January, 25)

	w := ttcal.CurrentWeek()
	assert.Equal(t, "w20124", w.IDTag())
	assert.True(t, w.Current())
	assert.Len(t, w.UntilToday(), 2)

	past := w.Prev()
	assert.False(t, past.Current())
	assert.Len(t, past.UntilToday(), 7)
}

func TestParseWeekTag(t *testing.T) {
	w, err := ttcal.ParseWeekTag("w201553")
	require.NoError(t, err)
	assert.Equal(t, 53, w.Num())

	for _, bad := range []string{"", "w2015", "x20151", "w2014x", "w201453"} {
		_, err := ttcal.ParseWeekTag(bad)
		assert.Error(t, err, bad)
	}

	var got ttcal.Week
	require.NoError(t, got.UnmarshalText([]byte("w20124")))
	assert.Equal(t, "Uke 4 (2012)", got.String())
}
