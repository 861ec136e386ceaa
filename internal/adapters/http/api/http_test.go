package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bottoscon/consched/internal/adapters/http/api"
	"github.com/bottoscon/consched/internal/domain/chrono"
	"github.com/bottoscon/consched/internal/domain/model"
	"github.com/bottoscon/consched/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeDeps serves a fixed snapshot to the handlers.
type fakeDeps struct {
	snap       *model.Snapshot
	snapErr    error
	refreshErr error
	refreshed  int
}

func (f *fakeDeps) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	return f.snap, f.snapErr
}

func (f *fakeDeps) ForceRefresh(ctx context.Context) (*model.Snapshot, error) {
	f.refreshed++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.snap, nil
}

func (f *fakeDeps) Days() []string { return chrono.DefaultDays }

func (f *fakeDeps) Stats() map[string]interface{} {
	return map[string]interface{}{"events": len(f.snap.Events)}
}

func fixtureDeps() *fakeDeps {
	a := &model.Event{
		ID: "1", Name: "First", Status: "OPEN",
		StartDay: "Thursday", StartAt: "20:00:00",
		EndDay: "Thursday", EndAt: "23:00:00",
		Location: "A1", Players: []string{"Ann", "Bob"},
	}
	b := &model.Event{
		ID: "167", Name: "New Cold War", Status: "FULL",
		StartDay: "Friday", StartAt: "09:00:00",
		EndDay: "Friday", EndAt: "13:00:00",
		Location: "H23", Players: []string{"Ann"},
	}
	odd := &model.Event{
		ID: "9", Name: "Mystery", StartDay: "Funday", StartAt: "10:00:00",
		EndDay: "Funday", EndAt: "12:00:00", Players: []string{"Bob"},
	}
	events := []*model.Event{a, b, odd}
	return &fakeDeps{snap: &model.Snapshot{
		ID:          "snap-1",
		Events:      events,
		Index:       roster.BuildIndex(events),
		GeneratedAt: time.Now(),
	}}
}

func newMux(deps api.Dependencies) *http.ServeMux {
	start := time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	api.NewServer(deps, start).Register(context.Background(), mux)
	return mux
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPlayersEndpoint(t *testing.T) {
	Convey("Given the API with a snapshot", t, func() {
		mux := newMux(fixtureDeps())

		Convey("When GET /players", func() {
			rec := get(mux, "/players")

			Convey("Then all players come back sorted", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Players []string `json:"players"`
					Count   int      `json:"count"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Players, ShouldResemble, []string{"Ann", "Bob"})
				So(body.Count, ShouldEqual, 2)
			})
		})

		Convey("When the snapshot is unavailable", func() {
			mux := newMux(&fakeDeps{snapErr: errors.New("no data ever fetched")})
			rec := get(mux, "/players")

			So(rec.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestScheduleEndpoint(t *testing.T) {
	Convey("Given the API with a snapshot", t, func() {
		mux := newMux(fixtureDeps())

		Convey("When GET /schedule/Ann", func() {
			rec := get(mux, "/schedule/Ann")

			Convey("Then Ann's games come back in chronological order", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Player string `json:"player"`
					Games  []struct {
						ID        string `json:"id"`
						StartTime string `json:"start_time"`
					} `json:"games"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Player, ShouldEqual, "Ann")
				So(body.Games, ShouldHaveLength, 2)
				So(body.Games[0].ID, ShouldEqual, "1")
				So(body.Games[1].ID, ShouldEqual, "167")
				So(body.Games[1].StartTime, ShouldEqual, "09:00:00")
			})
		})

		Convey("When GET /schedule/Nobody", func() {
			rec := get(mux, "/schedule/Nobody")

			Convey("Then the player is unknown", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the player segment is missing", func() {
			rec := get(mux, "/schedule/")

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestGamesEndpoint(t *testing.T) {
	Convey("Given the API with a snapshot", t, func() {
		mux := newMux(fixtureDeps())

		Convey("When GET /games", func() {
			rec := get(mux, "/games")

			Convey("Then every event is listed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Games []struct {
						ID     string `json:"id"`
						Status string `json:"status"`
					} `json:"games"`
					Count int `json:"count"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Count, ShouldEqual, 3)
				So(body.Games[1].ID, ShouldEqual, "167")
				So(body.Games[1].Status, ShouldEqual, "FULL")
			})
		})

		Convey("When POST /games", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/games", nil))

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRefreshEndpoint(t *testing.T) {
	Convey("Given the API", t, func() {
		Convey("When POST /refresh succeeds", func() {
			deps := fixtureDeps()
			mux := newMux(deps)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh", nil))

			Convey("Then the ack reports success", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.refreshed, ShouldEqual, 1)
				var body struct {
					Success bool   `json:"success"`
					Message string `json:"message"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Success, ShouldBeTrue)
			})
		})

		Convey("When the refresh fails", func() {
			deps := fixtureDeps()
			deps.refreshErr = errors.New("sheet fetch failed: status 503")
			mux := newMux(deps)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh", nil))

			Convey("Then the ack reports the failure", func() {
				So(rec.Code, ShouldEqual, http.StatusInternalServerError)
				var body struct {
					Success bool   `json:"success"`
					Message string `json:"message"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Success, ShouldBeFalse)
				So(body.Message, ShouldContainSubstring, "503")
			})
		})

		Convey("When GET /refresh", func() {
			mux := newMux(fixtureDeps())
			rec := get(mux, "/refresh")

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestCalendarEndpoint(t *testing.T) {
	Convey("Given the API with a snapshot", t, func() {
		mux := newMux(fixtureDeps())

		Convey("When GET /calendar/all.ics", func() {
			rec := get(mux, "/calendar/all.ics")

			Convey("Then an ICS feed comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "text/calendar")
				body := rec.Body.String()
				So(body, ShouldContainSubstring, "BEGIN:VCALENDAR")
				So(body, ShouldContainSubstring, "New Cold War")
			})

			Convey("And stamps compose date plus canonical time", func() {
				// Friday = start date + 1 day, 09:00:00.
				So(rec.Body.String(), ShouldContainSubstring, "20251107T090000Z")
			})

			Convey("And events on unrecognized days are omitted", func() {
				So(rec.Body.String(), ShouldNotContainSubstring, "Mystery")
				So(strings.Count(rec.Body.String(), "BEGIN:VEVENT"), ShouldEqual, 2)
			})
		})

		Convey("When GET /calendar/Ann.ics", func() {
			rec := get(mux, "/calendar/Ann.ics")

			Convey("Then only Ann's games appear", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(strings.Count(rec.Body.String(), "BEGIN:VEVENT"), ShouldEqual, 2)
			})
		})

		Convey("When GET /calendar/Nobody.ics", func() {
			rec := get(mux, "/calendar/Nobody.ics")

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the path has no .ics suffix", func() {
			rec := get(mux, "/calendar/Ann")

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the API with a snapshot", t, func() {
		mux := newMux(fixtureDeps())

		Convey("When GET /stats", func() {
			rec := get(mux, "/stats")

			So(rec.Code, ShouldEqual, http.StatusOK)
			var body map[string]interface{}
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body["events"], ShouldEqual, float64(3))
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given the API", t, func() {
		mux := newMux(fixtureDeps())

		Convey("When GET /healthz", func() {
			rec := get(mux, "/healthz")

			Convey("Then the metrics exposition responds", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}
