package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/datakortet/ttcal"
	"github.com/datakortet/ttcal/internal/ics"
	appLog "github.com/datakortet/ttcal/internal/log"
	"github.com/datakortet/ttcal/internal/model"
)

// periodDTO is the JSON view of any span.
type periodDTO struct {
	Tag    string    `json:"tag"`
	Kind   string    `json:"kind"`
	Label  string    `json:"label"`
	Text   string    `json:"text"`
	First  ttcal.Day `json:"first"`
	Last   ttcal.Day `json:"last"`
	Middle ttcal.Day `json:"middle"`
	Days   int       `json:"days"`
	Prev   string    `json:"prev,omitempty"`
	Next   string    `json:"next,omitempty"`
	Today  bool      `json:"today"`
}

type occasionDTO struct {
	SourceID string    `json:"source_id"`
	UID      string    `json:"uid"`
	Summary  string    `json:"summary"`
	Location string    `json:"location,omitempty"`
	AllDay   bool      `json:"all_day"`
	First    ttcal.Day `json:"first"`
	Last     ttcal.Day `json:"last"`
}

type gridDayDTO struct {
	Date    ttcal.Day `json:"date"`
	Day     int       `json:"day"`
	InMonth bool      `json:"in_month"`
	Display string    `json:"display"`
	Mark    string    `json:"mark,omitempty"`
}

type gridWeekDTO struct {
	Num  int          `json:"num"`
	Tag  string       `json:"tag"`
	Days []gridDayDTO `json:"days"`
}

type gridDTO struct {
	Month periodDTO     `json:"month"`
	Names []string      `json:"day_names"`
	Weeks []gridWeekDTO `json:"weeks"`
}

// neighbours returns the tags of the spans before and after s. A side is
// empty at the ends of the supported range, where stepping stays on s.
func neighbours(s ttcal.Span) (prev, next string) {
	prev, next = adjacent(s)
	if prev == s.IDTag() {
		prev = ""
	}
	if next == s.IDTag() {
		next = ""
	}
	return prev, next
}

func adjacent(s ttcal.Span) (prev, next string) {
	switch v := s.(type) {
	case ttcal.Day:
		return v.Prev().IDTag(), v.Next().IDTag()
	case *ttcal.Week:
		return v.Prev().IDTag(), v.Next().IDTag()
	case *ttcal.Month:
		return v.Prev().IDTag(), v.Next().IDTag()
	case *ttcal.Quarter:
		return v.Prev().IDTag(), v.Next().IDTag()
	case *ttcal.Halfyear:
		return v.Prev().IDTag(), v.Next().IDTag()
	case *ttcal.Year:
		return v.Prev().IDTag(), v.Next().IDTag()
	}
	return "", ""
}

func (s *Server) periodView(span ttcal.Span) periodDTO {
	prev, next := neighbours(span)
	return periodDTO{
		Tag:    span.IDTag(),
		Kind:   model.Kind(span),
		Label:  span.Format(s.cfg.Formats.For(span)),
		Text:   span.String(),
		First:  span.First(),
		Last:   span.Last(),
		Middle: span.Middle(),
		Days:   span.Last().Sub(span.First()) + 1,
		Prev:   prev,
		Next:   next,
		Today:  ttcal.IsCurrent(span),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// handleToday returns every span containing today.
//
// GET /api/today
func (s *Server) handleToday(w http.ResponseWriter, _ *http.Request) {
	spans := []ttcal.Span{
		ttcal.Today(),
		ttcal.CurrentWeek(),
		ttcal.CurrentMonth(),
		ttcal.CurrentQuarter(),
		ttcal.CurrentHalfyear(),
		ttcal.CurrentYear(),
	}
	res := make([]periodDTO, 0, len(spans))
	for _, sp := range spans {
		res = append(res, s.periodView(sp))
	}
	writeJSON(w, http.StatusOK, res)
}

// handlePeriod describes the span named by an idtag.
//
// GET /api/period/{tag}
func (s *Server) handlePeriod(w http.ResponseWriter, r *http.Request) {
	span, err := spanParam(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.periodView(span))
}

// handleOccasions lists feed occasions overlapping the span.
//
// GET /api/period/{tag}/occasions
func (s *Server) handleOccasions(w http.ResponseWriter, r *http.Request) {
	span, err := spanParam(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	occs := model.Within(s.occasions(r.Context()), span)
	res := make([]occasionDTO, 0, len(occs))
	for _, o := range occs {
		res = append(res, occasionDTO{
			SourceID: o.SourceID,
			UID:      o.UID,
			Summary:  o.Summary,
			Location: o.Location,
			AllDay:   o.AllDay,
			First:    o.First,
			Last:     o.Last,
		})
	}
	writeJSON(w, http.StatusOK, res)
}

// handleCalendar exports the span, and the occasions inside it, as an
// iCalendar document.
//
// GET /api/period/{tag}/calendar.ics
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	span, err := spanParam(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	label := span.Format(s.cfg.Formats.For(span))
	entries := []ics.Entry{ics.SpanEntry(span, label)}
	for _, o := range model.Within(s.occasions(r.Context()), span) {
		entries = append(entries, ics.OccasionEntry(o))
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+span.IDTag()+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics.Export(label, entries...)))
}

// handleMonthGrid returns the weeks of a month with display classes and
// marks from config and feeds.
//
// GET /api/month/{tag}/grid
func (s *Server) handleMonthGrid(w http.ResponseWriter, r *http.Request) {
	span, err := spanParam(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	m, ok := span.(*ttcal.Month)
	if !ok {
		m = ttcal.MonthOf(span.First())
	}
	model.MarkMonth(m, s.markings(r.Context(), m.Grid()))

	res := gridDTO{Month: s.periodView(m)}
	for i := 0; i < 7; i++ {
		res.Names = append(res.Names, ttcal.TitleDayName(i, 3))
	}
	for _, wk := range m.Weeks() {
		row := gridWeekDTO{Num: wk.Num(), Tag: wk.IDTag()}
		for _, d := range wk.Days() {
			mark, _ := d.Mark()
			row.Days = append(row.Days, gridDayDTO{
				Date:    d,
				Day:     d.Day(),
				InMonth: d.InMonth(),
				Display: d.Display(),
				Mark:    mark,
			})
		}
		res.Weeks = append(res.Weeks, row)
	}
	writeJSON(w, http.StatusOK, res)
}

type parseDTO struct {
	Kind  string `json:"kind"`
	Input string `json:"input"`
	Value string `json:"value"`
	Tag   string `json:"tag,omitempty"`
	ISO   string `json:"iso,omitempty"`
	Label string `json:"label,omitempty"`
}

var errBlankInput = &ttcal.ParseError{Kind: "input", Text: ""}

// handleParse parses free text as a day, duration, month, period or tag.
//
// GET /api/parse?kind=day&q=10.4.2012
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	q := r.URL.Query().Get("q")
	if kind == "" {
		kind = "day"
	}
	res := parseDTO{Kind: kind, Input: q}

	switch kind {
	case "day":
		d, ok, err := ttcal.ParseDay(q)
		if err == nil && !ok {
			err = errBlankInput
		}
		if err != nil {
			writeFailure(w, err)
			return
		}
		res.Value, res.Tag, res.Label = d.String(), d.IDTag(), d.Format(s.cfg.Formats.Day)
	case "duration":
		d, ok, err := ttcal.ParseDuration(q, r.URL.Query().Get("strict") == "1")
		if err == nil && !ok {
			err = errBlankInput
		}
		if err != nil {
			writeFailure(w, err)
			return
		}
		res.Value, res.ISO = d.String(), d.ISO()
	case "month":
		m, err := ttcal.ParseMonth(q)
		if err == nil && m == nil {
			err = errBlankInput
		}
		if err != nil {
			writeFailure(w, err)
			return
		}
		res.Value, res.Tag, res.Label = m.String(), m.IDTag(), m.Format(s.cfg.Formats.Month)
	case "period":
		p, err := ttcal.ParsePeriod(strings.ToUpper(q))
		if err != nil {
			writeFailure(w, err)
			return
		}
		res.Value, res.ISO = p.String(), p.ISO()
	case "tag":
		span, err := ttcal.FromIDTag(q)
		if err != nil {
			writeFailure(w, err)
			return
		}
		res.Value, res.Tag, res.Label = span.String(), span.IDTag(), span.Format(s.cfg.Formats.For(span))
	default:
		writeError(w, http.StatusBadRequest, "unknown kind "+kind)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type compareDTO struct {
	A       string `json:"a"`
	B       string `json:"b"`
	Cmp     *int   `json:"cmp"`
	Overlap bool   `json:"overlap"`
}

// handleCompare orders two spans by range overlap. cmp is null when they
// cannot be compared.
//
// GET /api/compare?a=m20124&b=d2012041004
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, err := ttcal.FromIDTag(q.Get("a"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	b, err := ttcal.FromIDTag(q.Get("b"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	res := compareDTO{A: a.IDTag(), B: b.IDTag()}
	if c, ok := ttcal.Compare(a, b); ok {
		res.Cmp = &c
		res.Overlap = c == 0
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
