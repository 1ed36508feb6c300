package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datakortet/ttcal"
	"github.com/datakortet/ttcal/internal/config"
)

const feed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:meeting-1\r\n" +
	"DTSTAMP:20120101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20120410\r\n" +
	"SUMMARY:møte\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	prev := ttcal.NowFunc
	ttcal.NowFunc = func() time.Time { return time.Date(2012, time.April, 10, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { ttcal.NowFunc = prev })

	dir := t.TempDir()
	path := filepath.Join(dir, "team.ics")
	require.NoError(t, os.WriteFile(path, []byte(feed), 0o600))

	cfg := config.DefaultConfig()
	cfg.CacheDir = filepath.Join(dir, "cache")
	cfg.Marks = []config.MarkConfig{{Tag: "w201215", Value: "ferie"}}
	cfg.ICS = []config.ICSConfig{{ID: "team", Name: "Team", URL: path}}

	srv := httptest.NewServer(NewServer(cfg).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func getJSON(t *testing.T, srv *httptest.Server, path string, wantStatus int, v any) {
	t.Helper()
	resp, body := get(t, srv, path)
	require.Equal(t, wantStatus, resp.StatusCode, string(body))
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	require.NoError(t, json.Unmarshal(body, v), string(body))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", string(body))
}

func TestPeriod(t *testing.T) {
	srv := newTestServer(t)

	var got map[string]any
	getJSON(t, srv, "/api/period/m20124", http.StatusOK, &got)
	assert.Equal(t, "month", got["kind"])
	assert.Equal(t, "April, 2012", got["label"])
	assert.Equal(t, "2012-04-01", got["first"])
	assert.Equal(t, "2012-04-30", got["last"])
	assert.Equal(t, "2012-04-15", got["middle"])
	assert.Equal(t, float64(30), got["days"])
	assert.Equal(t, "m20123", got["prev"])
	assert.Equal(t, "m20125", got["next"])
	assert.Equal(t, true, got["today"])

	getJSON(t, srv, "/api/period/H20122", http.StatusOK, &got)
	assert.Equal(t, "halfyear", got["kind"])
	assert.Equal(t, "H20131", got["next"])
	assert.Equal(t, false, got["today"])
}

func TestPeriod_RangeEnds(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		tag        string
		prev, next string
	}{
		{"m999912", "m999911", ""},
		{"y9999", "y9998", ""},
		{"q99994", "q99993", ""},
		{"H99992", "H99991", ""},
		{"w999952", "w999951", ""},
		{"d9999123112", "d9999123012", ""},
		{"y1", "", "y2"},
		{"m11", "", "m12"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			var got struct {
				Tag  string `json:"tag"`
				Prev string `json:"prev"`
				Next string `json:"next"`
			}
			getJSON(t, srv, "/api/period/"+tt.tag, http.StatusOK, &got)
			assert.Equal(t, tt.tag, got.Tag)
			assert.Equal(t, tt.prev, got.Prev)
			assert.Equal(t, tt.next, got.Next)
		})
	}

	var grid struct {
		Weeks []struct {
			Tag string `json:"tag"`
		} `json:"weeks"`
	}
	getJSON(t, srv, "/api/month/m999912/grid", http.StatusOK, &grid)
	require.Len(t, grid.Weeks, 5)
	assert.Equal(t, "w999952", grid.Weeks[4].Tag)
}

func TestPeriod_Errors(t *testing.T) {
	srv := newTestServer(t)

	var e struct {
		Error string `json:"error"`
	}
	getJSON(t, srv, "/api/period/x2012", http.StatusBadRequest, &e)
	assert.Contains(t, e.Error, "x2012")

	getJSON(t, srv, "/api/period/m201213", http.StatusBadRequest, &e)
	assert.NotEmpty(t, e.Error)
}

func TestToday(t *testing.T) {
	srv := newTestServer(t)

	var got []struct {
		Tag   string `json:"tag"`
		Kind  string `json:"kind"`
		Today bool   `json:"today"`
	}
	getJSON(t, srv, "/api/today", http.StatusOK, &got)
	require.Len(t, got, 6)

	var tags []string
	for _, p := range got {
		assert.True(t, p.Today, p.Tag)
		tags = append(tags, p.Tag)
	}
	assert.Equal(t, []string{"d2012041004", "w201215", "m20124", "q20122", "H20121", "y2012"}, tags)
}

func TestMonthGrid(t *testing.T) {
	srv := newTestServer(t)

	var got gridDTO
	getJSON(t, srv, "/api/month/m20124/grid", http.StatusOK, &got)

	require.Len(t, got.Weeks, 6)
	assert.Equal(t, 13, got.Weeks[0].Num)
	assert.Equal(t, "Man", got.Names[0])
	assert.False(t, got.Weeks[0].Days[0].InMonth)

	day := got.Weeks[2].Days[1]
	assert.Equal(t, 10, day.Day)
	assert.Equal(t, "ferie, møte", day.Mark)
	assert.True(t, strings.HasPrefix(day.Display, "today month"), day.Display)

	assert.Equal(t, "ferie", got.Weeks[2].Days[0].Mark)
	assert.Empty(t, got.Weeks[3].Days[0].Mark)
}

func TestMonthGrid_FromDayTag(t *testing.T) {
	srv := newTestServer(t)

	var got gridDTO
	getJSON(t, srv, "/api/month/d2012051705/grid", http.StatusOK, &got)
	assert.Equal(t, "m20125", got.Month.Tag)
}

func TestOccasions(t *testing.T) {
	srv := newTestServer(t)

	var got []occasionDTO
	getJSON(t, srv, "/api/period/w201215/occasions", http.StatusOK, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "meeting-1", got[0].UID)
	assert.Equal(t, "team", got[0].SourceID)

	getJSON(t, srv, "/api/period/w201216/occasions", http.StatusOK, &got)
	assert.Empty(t, got)
}

func TestCalendar(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/api/period/m20124/calendar.ics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/calendar; charset=utf-8", resp.Header.Get("Content-Type"))

	out := string(body)
	assert.Contains(t, out, "UID:m20124@ttcal")
	assert.Contains(t, out, "SUMMARY:April\\, 2012")
	assert.Contains(t, out, "UID:meeting-1")
}

func TestParse(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		query  string
		status int
		want   parseDTO
	}{
		{"kind=day&q=2012-04-10", http.StatusOK, parseDTO{Kind: "day", Input: "2012-04-10", Value: "2012-04-10", Tag: "d2012041004", Label: "Apr 10, 2012"}},
		{"q=2012-04-10", http.StatusOK, parseDTO{Kind: "day", Input: "2012-04-10", Value: "2012-04-10", Tag: "d2012041004", Label: "Apr 10, 2012"}},
		{"kind=duration&q=1:30", http.StatusOK, parseDTO{Kind: "duration", Input: "1:30", Value: "1:30:00", ISO: "PT1H30M"}},
		{"kind=period&q=p1y2m", http.StatusOK, parseDTO{Kind: "period", Input: "p1y2m", Value: "Period(1 years, 2 months)", ISO: "P1Y2M"}},
		{"kind=month&q=2012-04", http.StatusOK, parseDTO{Kind: "month", Input: "2012-04", Value: "2012-04", Tag: "m20124", Label: "April, 2012"}},
		{"kind=tag&q=q20121", http.StatusOK, parseDTO{Kind: "tag", Input: "q20121", Value: "2012Q1", Tag: "q20121", Label: "2012Q1"}},
		{"kind=month&q=", http.StatusBadRequest, parseDTO{}},
		{"kind=day&q=", http.StatusBadRequest, parseDTO{}},
		{"kind=day&q=not+a+date", http.StatusBadRequest, parseDTO{}},
		{"kind=nope&q=1", http.StatusBadRequest, parseDTO{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got parseDTO
			getJSON(t, srv, "/api/parse?"+tt.query, tt.status, &got)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	srv := newTestServer(t)

	var got compareDTO
	getJSON(t, srv, "/api/compare?a=m20124&b=d2012041004", http.StatusOK, &got)
	require.NotNil(t, got.Cmp)
	assert.Equal(t, 0, *got.Cmp)
	assert.True(t, got.Overlap)

	getJSON(t, srv, "/api/compare?a=m20124&b=y2013", http.StatusOK, &got)
	require.NotNil(t, got.Cmp)
	assert.Equal(t, -1, *got.Cmp)
	assert.False(t, got.Overlap)

	var e map[string]string
	getJSON(t, srv, "/api/compare?a=m20124&b=", http.StatusBadRequest, &e)
}

func TestStatusFor(t *testing.T) {
	_, err := ttcal.NewMonth(2012, 13)
	assert.Equal(t, http.StatusBadRequest, statusFor(err))

	_, err = ttcal.MustMonth(2012, time.April).Lookup(ttcal.MustDay(2013, time.January, 1))
	assert.Equal(t, http.StatusNotFound, statusFor(err))

	_, err = ttcal.NewDay(1, 2)
	assert.Equal(t, http.StatusBadRequest, statusFor(err))

	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}
