package ttcal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datakortet/ttcal"
)

func monthStrings(ms []*ttcal.Month) []string {
	res := make([]string, len(ms))
	for i, m := range ms {
		res[i] = m.String()
	}
	return res
}

func TestSurround(t *testing.T) {
	m := ttcal.MustMonth(2012, time.January)
	assert.Equal(t,
		[]string{"2011-11", "2011-12", "2012-01", "2012-02"},
		monthStrings(ttcal.Surround(m, 2)))
	assert.Equal(t, []string{"2011-12", "2012-01"}, monthStrings(ttcal.Surround(m, 1)))
	assert.Empty(t, ttcal.Surround(m, 0))

	d := ttcal.MustDay(2012, time.March, 1)
	days := ttcal.Surround(d, 1)
	require.Len(t, days, 2)
	assert.Equal(t, "2012-02-29", days[0].String())
	assert.Equal(t, d, days[1])
}

func TestPrevious(t *testing.T) {
	y := ttcal.MustYear(2012)
	prev := ttcal.Previous(y, 3)
	require.Len(t, prev, 3)
	assert.Equal(t, 2011, prev[0].Year())
	assert.Equal(t, 2009, prev[2].Year())

	q, err := ttcal.NewQuarter(2012, 1)
	require.NoError(t, err)
	assert.Equal(t, "2011Q4", ttcal.Previous(q, 1)[0].String())
}

func TestChopAtNow(t *testing.T) {
	fixNow(t, 2012, time.March, 15)

	months := ttcal.MustYear(2012).Months()
	got := ttcal.ChopAtNow(months)
	assert.Equal(t, []string{"2012-01", "2012-02", "2012-03"}, monthStrings(got))

	// nothing contains today
	other := ttcal.MustYear(2010).Months()
	assert.Len(t, ttcal.ChopAtNow(other), 12)
}

func TestIsCurrent(t *testing.T) {
	fixNow(t, 2012, time.March, 15)

	assert.True(t, ttcal.IsCurrent(ttcal.MustMonth(2012, time.March)))
	assert.True(t, ttcal.IsCurrent(ttcal.MustYear(2012)))
	assert.True(t, ttcal.IsCurrent(ttcal.Today()))
	assert.False(t, ttcal.IsCurrent(ttcal.MustMonth(2012, time.April)))
	assert.False(t, ttcal.IsCurrent(ttcal.Today().Add(1)))
}
