package ics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datakortet/ttcal"
	"github.com/datakortet/ttcal/internal/model"
)

func TestExport(t *testing.T) {
	prev := ttcal.NowFunc
	ttcal.NowFunc = func() time.Time { return time.Date(2012, time.April, 10, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { ttcal.NowFunc = prev })

	q, err := ttcal.NewQuarter(2012, 2)
	require.NoError(t, err)

	out := Export("Kvartal",
		SpanEntry(q, ""),
		SpanEntry(ttcal.MustDay(2012, time.May, 17), "Grunnlovsdag"),
	)

	assert.Contains(t, out, "X-WR-CALNAME:Kvartal")
	assert.Contains(t, out, "PRODID:"+productID)
	assert.Contains(t, out, "UID:q20122@ttcal")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20120401")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20120701")
	assert.Contains(t, out, "SUMMARY:2012Q2")
	assert.Contains(t, out, "DTSTAMP:20120410T120000Z")
}

func TestExport_RoundTrip(t *testing.T) {
	w, err := ttcal.WeekNum(53, 2015)
	require.NoError(t, err)
	occ := model.Occasion{
		UID:     "trip-1",
		Summary: "Tur",
		First:   ttcal.MustDay(2012, time.February, 28),
		Last:    ttcal.MustDay(2012, time.March, 1),
	}

	out := Export("", SpanEntry(w, "Romjul"), OccasionEntry(occ), Entry{
		Summary: "no uid",
		First:   ttcal.MustDay(2012, time.January, 1),
		Last:    ttcal.MustDay(2012, time.January, 1),
	})

	occs, err := Parse(Source{ID: "self"}, []byte(out), time.UTC)
	require.NoError(t, err)
	require.Len(t, occs, 3)

	assert.Equal(t, "w201553@ttcal", occs[0].UID)
	assert.Equal(t, "2015-12-28", occs[0].First.String())
	assert.Equal(t, "2016-01-03", occs[0].Last.String())
	assert.Equal(t, "Romjul", occs[0].Summary)
	assert.True(t, occs[0].AllDay)

	assert.Equal(t, "trip-1", occs[1].UID)
	assert.Equal(t, occ.First, occs[1].First)
	assert.Equal(t, occ.Last, occs[1].Last)

	assert.Equal(t, "d2012010101@ttcal", occs[2].UID)
}
