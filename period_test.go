package ttcal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datakortet/ttcal"
)

func TestPeriod_AddTo(t *testing.T) {
	tests := []struct {
		name string
		from ttcal.Day
		p    ttcal.Period
		want ttcal.Day
	}{
		{"clamp_leap", ttcal.MustDay(2020, time.January, 31), ttcal.Months(1), ttcal.MustDay(2020, time.February, 29)},
		{"two_months", ttcal.MustDay(2020, time.January, 31), ttcal.Months(2), ttcal.MustDay(2020, time.March, 31)},
		{"leap_year", ttcal.MustDay(2020, time.February, 29), ttcal.Years(1), ttcal.MustDay(2021, time.February, 28)},
		{"wrap_year", ttcal.MustDay(2012, time.November, 15), ttcal.Months(3), ttcal.MustDay(2013, time.February, 15)},
		{"backwards", ttcal.MustDay(2012, time.March, 31), ttcal.Months(-1), ttcal.MustDay(2012, time.February, 29)},
		{"zero", ttcal.MustDay(2012, time.March, 31), ttcal.Period{}, ttcal.MustDay(2012, time.March, 31)},
		{"past_last", ttcal.MustDay(9999, time.December, 31), ttcal.Months(1), ttcal.MustDay(9999, time.December, 31)},
		{"into_last", ttcal.MustDay(9999, time.October, 31), ttcal.Months(5), ttcal.MustDay(9999, time.December, 31)},
		{"before_first", ttcal.MustDay(1, time.February, 15), ttcal.Years(-1), ttcal.MustDay(1, time.January, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.AddTo(tt.from))
			assert.Equal(t, tt.want, tt.from.AddPeriod(tt.p))
		})
	}
}

func TestPeriod_SubFrom(t *testing.T) {
	assert.Equal(t, ttcal.MustDay(2011, time.December, 31), ttcal.Months(1).SubFrom(ttcal.MustDay(2012, time.January, 31)))
	assert.Equal(t, ttcal.MustDay(2012, time.February, 29), ttcal.Months(1).SubFrom(ttcal.MustDay(2012, time.March, 31)))
	assert.Equal(t, ttcal.MustDay(2011, time.February, 28), ttcal.Years(1).SubFrom(ttcal.MustDay(2012, time.February, 29)))
}

func TestPeriod_StepwiseClamping(t *testing.T) {
	jan31 := ttcal.MustDay(2020, time.January, 31)
	once := ttcal.Months(2).AddTo(jan31)
	twice := ttcal.Months(1).AddTo(ttcal.Months(1).AddTo(jan31))

	assert.Equal(t, ttcal.MustDay(2020, time.March, 31), once)
	assert.Equal(t, ttcal.MustDay(2020, time.March, 29), twice)
}

func TestPeriod_Arithmetic(t *testing.T) {
	p := ttcal.NewPeriod(1, 2)
	assert.Equal(t, 14, p.TotalMonths())
	assert.Equal(t, 17, p.Add(ttcal.Months(3)).TotalMonths())
	assert.Equal(t, 2, p.Sub(ttcal.Years(1)).TotalMonths())
	assert.Equal(t, -14, p.Neg().TotalMonths())
	assert.True(t, p.Sub(p).IsZero())
	assert.Equal(t, ttcal.Years(1), ttcal.Months(12))
}

func TestPeriod_Compare(t *testing.T) {
	assert.True(t, ttcal.Months(11).Lt(ttcal.Years(1)))
	assert.True(t, ttcal.Years(1).Eq(ttcal.Months(12)))
	assert.True(t, ttcal.Years(2).Gt(ttcal.NewPeriod(1, 11)))
	assert.True(t, ttcal.Years(1).Ne(ttcal.Months(1)))

	assert.False(t, ttcal.Months(1).Eq(1))
	assert.False(t, ttcal.Months(1).Ne(1))
	assert.False(t, ttcal.Months(1).Lt(time.Hour))
}

func TestPeriod_String(t *testing.T) {
	assert.Equal(t, "Period(3 months)", ttcal.Months(3).String())
	assert.Equal(t, "Period(1 years, 1 months)", ttcal.Months(13).String())
	assert.Equal(t, "Period(2 years, 0 months)", ttcal.Years(2).String())
}

func TestPeriod_ISO(t *testing.T) {
	tests := []struct {
		p    ttcal.Period
		want string
	}{
		{ttcal.Period{}, "P0D"},
		{ttcal.Months(3), "P3M"},
		{ttcal.NewPeriod(1, 6), "P1Y6M"},
		{ttcal.Years(2), "P2Y"},
		{ttcal.Months(-3), "-P3M"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.ISO())
			back, err := ttcal.ParsePeriod(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.p, back)
		})
	}
}

func TestParsePeriod_Rejects(t *testing.T) {
	for _, in := range []string{"", "P1D", "P2W", "PT3H", "P1.5M", "three months"} {
		t.Run(in, func(t *testing.T) {
			_, err := ttcal.ParsePeriod(in)
			var pe *ttcal.ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestPeriod_Text(t *testing.T) {
	var p ttcal.Period
	require.NoError(t, p.UnmarshalText([]byte("P1Y2M")))
	assert.Equal(t, 14, p.TotalMonths())

	b, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "P1Y2M", string(b))
}
