package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/datakortet/ttcal"
	appLog "github.com/datakortet/ttcal/internal/log"
	"github.com/datakortet/ttcal/internal/model"
)

// Parse reads the VEVENTs of one ICS payload as occasions. Timed events
// are placed on days in loc (time.Local when nil). Events that cannot be
// read are logged and skipped.
func Parse(src Source, body []byte, loc *time.Location) ([]model.Occasion, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}
	if loc == nil {
		loc = time.Local
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err, "id", src.ID, "url", redactURL(src.URL))
		return nil, err
	}

	occs := make([]model.Occasion, 0)
	for _, ve := range cal.Events() {
		o, err := parseVEvent(src, ve, loc)
		if err != nil {
			appLog.Warn("ics vevent skipped", "id", src.ID, "reason", err)
			continue
		}
		occs = append(occs, o)
	}

	appLog.Debug("ics parse completed", "id", src.ID, "event_count", len(occs))
	return occs, nil
}

// ParseAll parses every fetched result, skipping payloads that fail.
func ParseAll(results []FetchResult, loc *time.Location) []model.Occasion {
	var all []model.Occasion
	for _, r := range results {
		occs, err := Parse(r.Source, r.Body, loc)
		if err != nil {
			continue
		}
		all = append(all, occs...)
	}
	return all
}

func parseVEvent(src Source, ve *ical.VEvent, loc *time.Location) (model.Occasion, error) {
	out := model.Occasion{SourceID: src.ID}

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}

	start := ve.GetProperty(ical.ComponentPropertyDtStart)
	if start == nil {
		return out, fmt.Errorf("%s: missing DTSTART", out.UID)
	}
	out.AllDay = isDateValue(start)

	var err error
	if out.AllDay {
		err = allDayBounds(ve, &out)
	} else {
		err = timedBounds(ve, &out, loc)
	}
	if err != nil {
		return out, fmt.Errorf("%s: %w", out.UID, err)
	}
	return out, nil
}

// isDateValue reports VALUE=DATE or a date-only value.
func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// allDayBounds reads DTSTART/DTEND as dates. DTEND is exclusive; a missing
// or non-advancing DTEND gives a one-day occasion.
func allDayBounds(ve *ical.VEvent, out *model.Occasion) error {
	st, err := ve.GetAllDayStartAt()
	if err != nil {
		return err
	}
	out.First = ttcal.DayFrom(st)
	out.Last = out.First

	end, err := ve.GetAllDayEndAt()
	if err != nil {
		if d, ok := eventDuration(ve); ok && d >= time.Hour*24 {
			out.Last = out.First.Add(int(d/(24*time.Hour)) - 1)
		}
		return nil
	}
	if last := ttcal.DayFrom(end).Prev(); last.Sub(out.First) > 0 {
		out.Last = last
	}
	return nil
}

// timedBounds maps a timed event to the days it touches in loc. An event
// ending exactly at midnight does not touch the following day.
func timedBounds(ve *ical.VEvent, out *model.Occasion, loc *time.Location) error {
	st, err := ve.GetStartAt()
	if err != nil {
		return err
	}
	end, err := ve.GetEndAt()
	if err != nil {
		d, ok := eventDuration(ve)
		if !ok {
			d = 0
		}
		end = st.Add(d)
	}

	out.First = ttcal.DayFrom(st.In(loc))
	out.Last = out.First
	if end.After(st) {
		if last := ttcal.DayFrom(end.Add(-time.Nanosecond).In(loc)); last.Sub(out.First) > 0 {
			out.Last = last
		}
	}
	return nil
}

// eventDuration reads an ISO 8601 DURATION property.
func eventDuration(ve *ical.VEvent) (time.Duration, bool) {
	p := ve.GetProperty(ical.ComponentPropertyDuration)
	if p == nil {
		return 0, false
	}
	d, err := ttcal.ParseDurationISO(strings.TrimSpace(p.Value))
	if err != nil {
		return 0, false
	}
	return d.Std(), true
}
