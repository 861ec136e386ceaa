package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bottoscon/consched/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONSCHED_SHEET_URL", "https://example.com/export?format=csv")

	Convey("Given only a sheet URL from the environment", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then loading succeeds with defaults filled in", func() {
			So(err, ShouldBeNil)
			So(cfg.SheetURL, ShouldEqual, "https://example.com/export?format=csv")
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.CacheTTL(), ShouldEqual, time.Hour)
			So(cfg.FetchTimeout(), ShouldEqual, 10*time.Second)
			So(cfg.HeaderRows, ShouldEqual, 2)
			So(cfg.Days, ShouldResemble, []string{"Thursday", "Friday", "Saturday", "Sunday"})
			So(cfg.Columns.MinWidth, ShouldEqual, 23)
			So(cfg.RefreshCron, ShouldEqual, "")
		})

		Convey("And the start date parses to the first convention day", func() {
			start, err := cfg.StartTime()
			So(err, ShouldBeNil)
			So(start.Weekday(), ShouldEqual, time.Thursday)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONSCHED_SHEET_URL", "https://example.com/sheet.csv")
	t.Setenv("CONSCHED_CACHE_TTL_SECONDS", "120")
	t.Setenv("CONSCHED_LOG_LEVEL", "debug")

	Convey("Given environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env wins over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.CacheTTLSeconds, ShouldEqual, 120)
			So(cfg.LogLevel, ShouldEqual, "debug")
		})
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "consched.yaml")
	yaml := "sheet_url: https://example.com/file.csv\nheader_rows: 3\naddr: \":9090\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONSCHED_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then file values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.SheetURL, ShouldEqual, "https://example.com/file.csv")
			So(cfg.HeaderRows, ShouldEqual, 3)
			So(cfg.Addr, ShouldEqual, ":9090")
		})
	})
}

func TestLoadFileEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "consched.yaml")
	yaml := "sheet_url: https://example.com/file.csv\naddr: \":9090\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONSCHED_CONFIG", path)
	t.Setenv("CONSCHED_ADDR", ":7070")

	Convey("Given both a file and an env override", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env wins over the file", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
		})
	})
}

func TestLoadRejectsMissingSheetURL(t *testing.T) {
	t.Setenv("CONSCHED_SHEET_URL", "")

	Convey("Given no sheet URL anywhere", t, func() {
		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
	})
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("CONSCHED_SHEET_URL", "https://example.com/x.csv")
	t.Setenv("CONSCHED_CACHE_TTL_SECONDS", "0")

	Convey("Given a non-positive TTL", t, func() {
		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
	})
}

func TestLoadRejectsBadStartDate(t *testing.T) {
	t.Setenv("CONSCHED_SHEET_URL", "https://example.com/x.csv")
	t.Setenv("CONSCHED_START_DATE", "November 6th")

	Convey("Given a malformed start date", t, func() {
		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
	})
}
