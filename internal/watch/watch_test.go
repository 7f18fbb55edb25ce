package watch

import (
	"math"
	"testing"
	"time"

	"github.com/JustinTDCT/MediaShelf/internal/store"
)

func newTracker(t *testing.T) *Tracker {
	t.Helper()
	return NewTracker(store.Open("", t.TempDir()))
}

func TestAddWatchTimeAccumulates(t *testing.T) {
	tr := newTracker(t)
	day := time.Date(2026, 8, 30, 20, 0, 0, 0, time.Local)
	tr.now = func() time.Time { return day }

	if !tr.AddWatchTime("/v.mp4", 125) {
		t.Fatal("valid watch time rejected")
	}
	if !tr.AddWatchTime("/v.mp4", 60) {
		t.Fatal("valid watch time rejected")
	}

	got, ok := tr.Stats("/v.mp4")
	if !ok {
		t.Fatal("no stats recorded")
	}
	if math.Abs(got.TotalMinutes-185.0/60) > 1e-9 {
		t.Errorf("total minutes = %v, want ~3.083", got.TotalMinutes)
	}
	if got.LastWatched != day.UnixMilli() {
		t.Errorf("last watched = %d, want %d", got.LastWatched, day.UnixMilli())
	}

	buckets := tr.DailyBuckets()["/v.mp4"]
	if buckets["2026-08-30"] != 185 {
		t.Errorf("today's bucket = %d, want 185", buckets["2026-08-30"])
	}
}

func TestAddWatchTimeRejectsInvalid(t *testing.T) {
	tr := newTracker(t)
	for _, s := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if tr.AddWatchTime("/v.mp4", s) {
			t.Errorf("AddWatchTime(%v) accepted", s)
		}
	}
	if _, ok := tr.Stats("/v.mp4"); ok {
		t.Error("rejected events still created a record")
	}
}

func TestRollingWindowIgnoresOldBuckets(t *testing.T) {
	tr := newTracker(t)
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	// 600s fourteen days before "today": outside the window.
	tr.now = func() time.Time { return base.AddDate(0, 0, -14) }
	tr.AddWatchTime("/v.mp4", 600)

	// 120s on the oldest in-window day, 60s today.
	tr.now = func() time.Time { return base.AddDate(0, 0, -13) }
	tr.AddWatchTime("/v.mp4", 120)
	tr.now = func() time.Time { return base }
	tr.AddWatchTime("/v.mp4", 60)

	got, _ := tr.Stats("/v.mp4")
	if got.Last14Minutes != 3 {
		t.Errorf("last14 = %d minutes, want 3 (180s in window)", got.Last14Minutes)
	}
}

func TestSetLastPosition(t *testing.T) {
	tr := newTracker(t)

	if tr.SetLastPosition("/v.mp4", -1) || tr.SetLastPosition("/v.mp4", math.NaN()) {
		t.Fatal("invalid position accepted")
	}
	if !tr.SetLastPosition("/v.mp4", 95.6) {
		t.Fatal("valid position rejected")
	}

	got, ok := tr.Stats("/v.mp4")
	if !ok || got.LastPositionSec == nil || *got.LastPositionSec != 96 {
		t.Fatalf("position = %v", got.LastPositionSec)
	}
	if got.TotalMinutes != 0 {
		t.Errorf("position update changed totals: %v", got.TotalMinutes)
	}
}

func TestMarkWatchedCreatesRecord(t *testing.T) {
	tr := newTracker(t)
	at := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	tr.now = func() time.Time { return at }

	tr.MarkWatched("/v.mp4")
	got, ok := tr.Stats("/v.mp4")
	if !ok || got.LastWatched != at.UnixMilli() {
		t.Fatalf("stats after mark: %+v ok=%v", got, ok)
	}
}

func TestDailyTotalsAcrossPaths(t *testing.T) {
	tr := newTracker(t)
	day := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	tr.now = func() time.Time { return day.AddDate(0, 0, -1) }
	tr.AddWatchTime("/a.mp4", 120)
	tr.now = func() time.Time { return day }
	tr.AddWatchTime("/a.mp4", 60)
	tr.AddWatchTime("/b.mkv", 30)

	totals := tr.DailyTotals(2)
	if len(totals) != 2 {
		t.Fatalf("expected 2 days, got %d", len(totals))
	}
	if totals[0].Date != "2026-08-31" || totals[0].Minutes != 2 {
		t.Errorf("day 0 = %+v", totals[0])
	}
	if totals[1].Date != "2026-09-01" || totals[1].Minutes != 2 {
		t.Errorf("day 1 = %+v (90s rounds to 2)", totals[1])
	}
}

func TestWorkingSetOrderAndCap(t *testing.T) {
	tr := newTracker(t)
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)

	for i, p := range []string{"/old.mp4", "/mid.mp4", "/new.mp4"} {
		at := base.Add(time.Duration(i) * time.Hour)
		tr.now = func() time.Time { return at }
		tr.AddWatchTime(p, 60)
	}

	set := tr.WorkingSet(2)
	if len(set) != 2 {
		t.Fatalf("cap not applied: %d entries", len(set))
	}
	if set[0].Path != "/new.mp4" || set[1].Path != "/mid.mp4" {
		t.Errorf("wrong order: %q, %q", set[0].Path, set[1].Path)
	}
	if set[0].Last14Minutes != 1 {
		t.Errorf("last14 = %d, want 1", set[0].Last14Minutes)
	}
}

func TestWorkingSetRollingMinutesPerPath(t *testing.T) {
	tr := newTracker(t)
	tr.now = func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	}

	tr.AddWatchTime("/a.mp4", 120)
	tr.AddWatchTime("/b.mp4", 300)
	tr.AddWatchTime("/b.mp4", 60)

	set := tr.WorkingSet(0)
	if len(set) != 2 {
		t.Fatalf("got %d entries, want 2", len(set))
	}
	for _, s := range set {
		st, ok := tr.Stats(s.Path)
		if !ok {
			t.Fatalf("missing stats for %s", s.Path)
		}
		if s.Last14Minutes != st.Last14Minutes {
			t.Errorf("%s: working-set last14 = %d, Stats = %d",
				s.Path, s.Last14Minutes, st.Last14Minutes)
		}
	}
	byPath := map[string]int{}
	for _, s := range set {
		byPath[s.Path] = s.Last14Minutes
	}
	if byPath["/a.mp4"] != 2 || byPath["/b.mp4"] != 6 {
		t.Errorf("last14 by path = %v, want /a.mp4:2 /b.mp4:6", byPath)
	}
}
