package ttcal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datakortet/ttcal"
)

func TestFromIDTag_RoundTrip(t *testing.T) {
	w, err := ttcal.WeekNum(53, 2015)
	require.NoError(t, err)
	q, err := ttcal.NewQuarter(2012, 3)
	require.NoError(t, err)
	h, err := ttcal.NewHalfyear(2012, 2)
	require.NoError(t, err)

	spans := []ttcal.Span{
		ttcal.MustDay(2012, time.April, 10),
		ttcal.MustDay(2012, time.June, 25).WithMemberMonth(time.July),
		w,
		ttcal.MustMonth(2012, time.November),
		q,
		h,
		ttcal.MustYear(2012),
	}
	for _, s := range spans {
		t.Run(s.IDTag(), func(t *testing.T) {
			got, err := ttcal.FromIDTag(s.IDTag())
			require.NoError(t, err)
			assert.IsType(t, s, got)
			assert.Equal(t, s.IDTag(), got.IDTag())
			assert.Equal(t, s.String(), got.String())
			assert.Equal(t, s.RangeTuple(), got.RangeTuple())
		})
	}
}

func TestFromIDTag_Legacy(t *testing.T) {
	s, err := ttcal.FromIDTag("h20121")
	require.NoError(t, err)
	assert.Equal(t, "H20121", s.IDTag())

	s, err = ttcal.FromIDTag("d20120410")
	require.NoError(t, err)
	assert.Equal(t, "d2012041004", s.IDTag())
}

func TestFromIDTag_Errors(t *testing.T) {
	for _, tag := range []string{"", "d", "x2012", "z20121", "m20121x", "q20129", "y12"} {
		t.Run(tag, func(t *testing.T) {
			s, err := ttcal.FromIDTag(tag)
			assert.Nil(t, s)
			var pe *ttcal.ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestSpan_Boundaries(t *testing.T) {
	q, err := ttcal.NewQuarter(2012, 1)
	require.NoError(t, err)

	for _, s := range []ttcal.Span{q, ttcal.MustMonth(2012, time.February), ttcal.MustYear(2012)} {
		start, end := s.BetweenTuple()
		assert.Equal(t, s.First().Time(), start, s.String())
		assert.Equal(t, s.Last().Time().Add(24*time.Hour-time.Second), end, s.String())
		assert.Equal(t, s.RangeTuple().End, end.Add(time.Second), s.String())
	}
}
