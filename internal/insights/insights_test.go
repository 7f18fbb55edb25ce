package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/JustinTDCT/MediaShelf/internal/categories"
)

func intp(v int) *int { return &v }

func TestCompletionClassifier(t *testing.T) {
	cases := []struct {
		name string
		e    Entry
		want bool
	}{
		{"watched ratio over threshold", Entry{DurationSec: intp(100), TotalMinutes: 1.67}, true},
		{"near-end position", Entry{DurationSec: intp(100), TotalMinutes: 0.5, LastPositionSec: intp(95)}, true},
		{"position reset to start", Entry{DurationSec: intp(100), TotalMinutes: 0.5, LastPositionSec: intp(3)}, true},
		{"mid-way", Entry{DurationSec: intp(100), TotalMinutes: 0.5, LastPositionSec: intp(50)}, false},
		{"no duration", Entry{TotalMinutes: 500, LastPositionSec: intp(95)}, false},
		{"zero duration", Entry{DurationSec: intp(0), TotalMinutes: 500}, false},
	}
	for _, c := range cases {
		if got := isCompleted(c.e); got != c.want {
			t.Errorf("%s: isCompleted = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestBuildTotalsAndBreakdowns(t *testing.T) {
	entries := []Entry{
		{Path: "/media/films/a.mp4", TotalMinutes: 10.4, Last14Minutes: 5},
		{Path: "/media/films/b.mp4", TotalMinutes: 20.6, Last14Minutes: 7},
		{Path: "/media/talks/c.mkv", TotalMinutes: 3.2, Last14Minutes: 0},
	}
	r := Build(entries, nil, nil, 0, time.Now())

	// 10 + 21 + 3, each rounded before summing.
	if r.TotalMinutes != 34 {
		t.Errorf("total = %d, want 34", r.TotalMinutes)
	}
	if r.Last14Minutes != 12 {
		t.Errorf("last14 = %d, want 12", r.Last14Minutes)
	}

	if len(r.ByExtension) != 2 || r.ByExtension[0].Ext != "mp4" || r.ByExtension[0].Count != 2 {
		t.Errorf("extension breakdown: %+v", r.ByExtension)
	}
	if r.ByExtension[0].Minutes != 31 {
		t.Errorf("mp4 minutes = %d, want 31", r.ByExtension[0].Minutes)
	}

	if len(r.ByFolder) != 2 || r.ByFolder[0].Folder != "/media/films" || r.ByFolder[0].Minutes != 31 {
		t.Errorf("folder breakdown: %+v", r.ByFolder)
	}

	if r.MostWatched == nil || r.MostWatched.Path != "/media/films/b.mp4" {
		t.Errorf("most watched: %+v", r.MostWatched)
	}
}

func TestMostWatchedComparesRawMinutes(t *testing.T) {
	// Both totals round to 10; the strictly larger raw total must still win.
	entries := []Entry{
		{Path: "/a.mp4", TotalMinutes: 10.2},
		{Path: "/b.mp4", TotalMinutes: 10.4},
	}
	r := Build(entries, nil, nil, 0, time.Now())
	if r.MostWatched == nil || r.MostWatched.Path != "/b.mp4" {
		t.Errorf("most watched: %+v, want /b.mp4", r.MostWatched)
	}
	if r.MostWatched != nil && r.MostWatched.Minutes != 10 {
		t.Errorf("reported minutes = %d, want rounded 10", r.MostWatched.Minutes)
	}
}

func TestTopCategoryComparesRawMinutes(t *testing.T) {
	entries := []Entry{
		{Path: "/v/a.mp4", TotalMinutes: 10.2},
		{Path: "/v/b.mp4", TotalMinutes: 10.4},
	}
	cats := []categories.Category{
		{ID: "1", Name: "A", Items: []categories.Item{{Kind: categories.KindVideo, Path: "/v/a.mp4"}}},
		{ID: "2", Name: "B", Items: []categories.Item{{Kind: categories.KindVideo, Path: "/v/b.mp4"}}},
	}
	r := Build(entries, cats, nil, 0, time.Now())
	if r.TopCategory == nil || r.TopCategory.ID != "2" {
		t.Errorf("top category: %+v, want B", r.TopCategory)
	}
	if r.TopCategory != nil && r.TopCategory.Minutes != 10 {
		t.Errorf("reported minutes = %d, want rounded 10", r.TopCategory.Minutes)
	}
}

func TestMostWatchedTieBreak(t *testing.T) {
	entries := []Entry{
		{Path: "/a.mp4", TotalMinutes: 10},
		{Path: "/b.mp4", TotalMinutes: 10},
	}
	r := Build(entries, nil, nil, 0, time.Now())
	if r.MostWatched == nil || r.MostWatched.Path != "/a.mp4" {
		t.Errorf("tie should keep first-seen entry, got %+v", r.MostWatched)
	}
}

func TestTopSixGroups(t *testing.T) {
	var entries []Entry
	for i := 0; i < 8; i++ {
		entries = append(entries, Entry{
			Path:         fmt.Sprintf("/d%d/v.fmt%d", i, i),
			TotalMinutes: float64(i + 1),
		})
	}
	r := Build(entries, nil, nil, 0, time.Now())
	if len(r.ByExtension) != 6 {
		t.Errorf("extension groups = %d, want 6", len(r.ByExtension))
	}
	if len(r.ByFolder) != 6 {
		t.Errorf("folder groups = %d, want 6", len(r.ByFolder))
	}
	// Folders ranked by minutes: the largest totals survive the cut.
	if r.ByFolder[0].Minutes != 8 {
		t.Errorf("top folder minutes = %d, want 8", r.ByFolder[0].Minutes)
	}
}

func TestTopCategory(t *testing.T) {
	entries := []Entry{
		{Path: "/media/talks/a.mp4", TotalMinutes: 30},
		{Path: "/media/films/b.mp4", TotalMinutes: 10},
	}
	cats := []categories.Category{
		{ID: "1", Name: "Talks", Items: []categories.Item{{Kind: categories.KindFolder, Path: "/media/talks"}}},
		{ID: "2", Name: "Films", Items: []categories.Item{{Kind: categories.KindVideo, Path: "/media/films/b.mp4"}}},
		{ID: "3", Name: "Empty", Items: []categories.Item{{Kind: categories.KindVideo, Path: "/gone.mp4"}}},
	}
	r := Build(entries, cats, nil, 0, time.Now())
	if r.TopCategory == nil || r.TopCategory.ID != "1" || r.TopCategory.Minutes != 30 {
		t.Errorf("top category: %+v", r.TopCategory)
	}
}

func TestNoPositiveCategorySum(t *testing.T) {
	entries := []Entry{{Path: "/a.mp4", TotalMinutes: 5}}
	cats := []categories.Category{
		{ID: "1", Name: "Unrelated", Items: []categories.Item{{Kind: categories.KindVideo, Path: "/b.mp4"}}},
	}
	r := Build(entries, cats, nil, 0, time.Now())
	if r.TopCategory != nil {
		t.Errorf("expected no top category, got %+v", r.TopCategory)
	}
}

func TestCompletedListCapped(t *testing.T) {
	var entries []Entry
	for i := 0; i < 15; i++ {
		entries = append(entries, Entry{
			Path:         fmt.Sprintf("/v%d.mp4", i),
			TotalMinutes: 2,
			DurationSec:  intp(100),
		})
	}
	r := Build(entries, nil, nil, 0, time.Now())
	if r.CompletedCount != 15 {
		t.Errorf("completed count = %d, want 15", r.CompletedCount)
	}
	if len(r.Completed) != 12 {
		t.Errorf("completed list = %d entries, want 12", len(r.Completed))
	}
}

func TestDailySeries(t *testing.T) {
	today := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	daily := map[string]map[string]int{
		"/a.mp4": {"2026-09-01": 90, "2026-08-31": 60},
		"/b.mp4": {"2026-09-01": 30, "2026-08-01": 600},
	}
	r := Build(nil, nil, daily, 3, today)
	if len(r.Daily) != 3 {
		t.Fatalf("expected 3 days, got %d", len(r.Daily))
	}
	if r.Daily[0].Date != "2026-08-30" || r.Daily[0].Minutes != 0 {
		t.Errorf("day 0: %+v", r.Daily[0])
	}
	if r.Daily[1].Date != "2026-08-31" || r.Daily[1].Minutes != 1 {
		t.Errorf("day 1: %+v", r.Daily[1])
	}
	if r.Daily[2].Date != "2026-09-01" || r.Daily[2].Minutes != 2 {
		t.Errorf("day 2: %+v", r.Daily[2])
	}
}

func TestWorkingSetCap(t *testing.T) {
	var entries []Entry
	for i := 0; i < WorkingSetLimit+50; i++ {
		entries = append(entries, Entry{Path: fmt.Sprintf("/v%d.mp4", i), TotalMinutes: 1})
	}
	r := Build(entries, nil, nil, 0, time.Now())
	if r.TotalMinutes != WorkingSetLimit {
		t.Errorf("entries past the cap were aggregated: total = %d", r.TotalMinutes)
	}
}
