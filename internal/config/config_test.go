package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datakortet/ttcal"
)

func TestLoad_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("default config mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
listen: ":9000"
formats:
  month: "b y"
marks:
  - tag: d2012051705
    value: holiday
ics:
  - name: Team
    url: ./team.ics
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "b y", cfg.Formats.Month)
	assert.Equal(t, ttcal.DefaultDayFormat, cfg.Formats.Day)
	require.Len(t, cfg.ICS, 1)
	assert.Equal(t, "ics1", cfg.ICS[0].ID)

	require.Len(t, cfg.Marks, 1)
	s, err := cfg.Marks[0].Span()
	require.NoError(t, err)
	assert.Equal(t, ttcal.MustDay(2012, time.May, 17), s)
	assert.Equal(t, "d2012051705", s.IDTag())
	assert.Equal(t, "holiday", cfg.Marks[0].Value)
}

func TestLoad_BadMarkTag(t *testing.T) {
	for _, tag := range []string{"x1", "d2012-05-17", "y0000"} {
		t.Run(tag, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			yml := "marks:\n  - tag: " + tag + "\n    value: v\n"
			require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

			_, err := Load(path)
			var pe *ttcal.ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TTCAL_LISTEN", ":7000")
	t.Setenv("TTCAL_LOG_LEVEL", "debug")
	t.Setenv("TTCAL_CACHE_DIR", "")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, ":7000", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, defaultCacheDir, cfg.CacheDir)

	t.Setenv("TTCAL_LOG_LEVEL", "chatty")
	assert.Error(t, cfg.ApplyEnv())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Marks = append(cfg.Marks, MarkConfig{Tag: "w20124", Value: "ferie"})
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestSave_Errors(t *testing.T) {
	assert.Error(t, Save("", DefaultConfig()))
	assert.Error(t, Save(filepath.Join(t.TempDir(), "c.yaml"), nil))
	_, err := Load("")
	assert.Error(t, err)
}

func TestFormatConfig_For(t *testing.T) {
	f := defaultFormats()
	assert.Equal(t, ttcal.DefaultWeekFormat, f.For(ttcal.CurrentWeek()))
	assert.Equal(t, ttcal.DefaultYearFormat, f.For(ttcal.MustYear(2012)))
	assert.Equal(t, ttcal.DefaultDayFormat, f.For(ttcal.MustDay(2012, time.April, 1)))
}

func TestNormalize_BadLogLevel(t *testing.T) {
	cfg := &Config{LogLevel: "verbose"}
	cfg.Normalize()
	assert.Equal(t, "info", cfg.LogLevel)
}
