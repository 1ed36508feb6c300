package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/datakortet/ttcal"
	"github.com/datakortet/ttcal/internal/model"
)

const productID = "-//datakortet//ttcal//NO"

// uidDomain is appended to idtags to form event UIDs.
const uidDomain = "@ttcal"

// Entry is one all-day event of an exported calendar.
type Entry struct {
	UID     string // defaults to the span's idtag
	Summary string
	First   ttcal.Day
	Last    ttcal.Day
}

// SpanEntry covers every day of s. The summary defaults to s.String().
func SpanEntry(s ttcal.Span, summary string) Entry {
	if summary == "" {
		summary = s.String()
	}
	return Entry{UID: s.IDTag() + uidDomain, Summary: summary, First: s.First(), Last: s.Last()}
}

// OccasionEntry re-exports an imported occasion as an all-day event.
func OccasionEntry(o model.Occasion) Entry {
	return Entry{UID: o.UID, Summary: o.Summary, First: o.First, Last: o.Last}
}

// Export renders the entries as an iCalendar document named name.
func Export(name string, entries ...Entry) string {
	cal := ical.NewCalendarFor("ttcal")
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	stamp := ttcal.NowFunc().UTC().Truncate(time.Second)
	for _, e := range entries {
		uid := e.UID
		if uid == "" {
			uid = e.First.IDTag() + uidDomain
		}
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(e.First.Time())
		// DTEND of an all-day event is exclusive.
		ev.SetAllDayEndAt(e.Last.Time().AddDate(0, 0, 1))
		ev.SetSummary(e.Summary)
	}
	return cal.Serialize()
}
