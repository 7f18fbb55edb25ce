package watch

import (
	"math"
	"sort"
	"time"

	"github.com/JustinTDCT/MediaShelf/internal/store"
)

const dateLayout = "2006-01-02"

// Stat is the persisted per-file aggregate. LastWatched is unix milliseconds.
type Stat struct {
	LastWatched     int64   `json:"lastWatched"`
	TotalMinutes    float64 `json:"totalMinutes"`
	LastPositionSec *int    `json:"lastPositionSec,omitempty"`
}

// Stats is the read-side view of one file's record.
type Stats struct {
	Path            string  `json:"path"`
	LastWatched     int64   `json:"last_watched"`
	TotalMinutes    float64 `json:"total_minutes"`
	LastPositionSec *int    `json:"last_position_sec,omitempty"`
	Last14Minutes   int     `json:"last14_minutes"`
}

// DayTotal is one point of the daily chart series.
type DayTotal struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// Tracker accumulates watch events into the store's watchStats and watchDaily
// slots. Daily buckets are keyed by local calendar date and are never pruned;
// the document grows with watched history.
type Tracker struct {
	store *store.Store
	now   func() time.Time
}

func NewTracker(st *store.Store) *Tracker {
	return &Tracker{store: st, now: time.Now}
}

func (t *Tracker) loadStats() map[string]Stat {
	stats := map[string]Stat{}
	t.store.Get(store.SlotWatchStats, &stats)
	return stats
}

func (t *Tracker) loadDaily() map[string]map[string]int {
	daily := map[string]map[string]int{}
	t.store.Get(store.SlotWatchDaily, &daily)
	return daily
}

// MarkWatched stamps the file's last-watched time, creating the record if
// this is the first event for the path.
func (t *Tracker) MarkWatched(path string) {
	stats := t.loadStats()
	s := stats[path]
	s.LastWatched = t.now().UnixMilli()
	stats[path] = s
	_ = t.store.Set(store.SlotWatchStats, stats)
}

// AddWatchTime adds elapsed playback seconds to the file's cumulative total
// and to today's daily bucket. Non-positive or non-finite seconds are
// rejected without any mutation.
func (t *Tracker) AddWatchTime(path string, seconds float64) bool {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return false
	}

	now := t.now()
	stats := t.loadStats()
	s := stats[path]
	s.TotalMinutes += seconds / 60
	s.LastWatched = now.UnixMilli()
	stats[path] = s
	_ = t.store.Set(store.SlotWatchStats, stats)

	daily := t.loadDaily()
	buckets := daily[path]
	if buckets == nil {
		buckets = map[string]int{}
		daily[path] = buckets
	}
	buckets[now.Format(dateLayout)] += int(math.Round(seconds))
	_ = t.store.Set(store.SlotWatchDaily, daily)
	return true
}

// SetLastPosition stores the resume position. Cumulative totals are not
// touched. Negative or non-finite seconds are rejected.
func (t *Tracker) SetLastPosition(path string, seconds float64) bool {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return false
	}
	pos := int(math.Round(math.Max(0, seconds)))

	stats := t.loadStats()
	s := stats[path]
	s.LastPositionSec = &pos
	stats[path] = s
	_ = t.store.Set(store.SlotWatchStats, stats)
	return true
}

// Stats returns the file's record with the rolling 14-day total, which sums
// the daily buckets for today and the prior 13 calendar days regardless of
// how many of those days have entries. False when the path was never watched.
func (t *Tracker) Stats(path string) (Stats, bool) {
	stats := t.loadStats()
	s, ok := stats[path]
	if !ok {
		return Stats{}, false
	}
	return Stats{
		Path:            path,
		LastWatched:     s.LastWatched,
		TotalMinutes:    s.TotalMinutes,
		LastPositionSec: s.LastPositionSec,
		Last14Minutes:   rollingMinutes(t.loadDaily()[path], 14, t.now()),
	}, true
}

func rollingMinutes(buckets map[string]int, days int, today time.Time) int {
	if len(buckets) == 0 {
		return 0
	}
	sec := 0
	for i := 0; i < days; i++ {
		sec += buckets[today.AddDate(0, 0, -i).Format(dateLayout)]
	}
	return int(math.Round(float64(sec) / 60))
}

// DailyTotals sums bucket seconds across every path for the last days
// calendar dates ending today, oldest first, in minutes.
func (t *Tracker) DailyTotals(days int) []DayTotal {
	if days <= 0 {
		days = 30
	}
	daily := t.loadDaily()
	today := t.now()

	out := make([]DayTotal, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(dateLayout)
		sec := 0
		for _, buckets := range daily {
			sec += buckets[date]
		}
		out = append(out, DayTotal{Date: date, Minutes: int(math.Round(float64(sec) / 60))})
	}
	return out
}

// WorkingSet returns up to limit records ordered most recently watched first,
// each with its rolling 14-day minutes. This is the bounded history slice the
// insights aggregation runs over.
func (t *Tracker) WorkingSet(limit int) []Stats {
	stats := t.loadStats()
	out := make([]Stats, 0, len(stats))
	for path, s := range stats {
		out = append(out, Stats{
			Path:            path,
			LastWatched:     s.LastWatched,
			TotalMinutes:    s.TotalMinutes,
			LastPositionSec: s.LastPositionSec,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastWatched != out[j].LastWatched {
			return out[i].LastWatched > out[j].LastWatched
		}
		return out[i].Path < out[j].Path
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	// Decode the daily document once rather than per entry.
	daily := t.loadDaily()
	today := t.now()
	for i := range out {
		out[i].Last14Minutes = rollingMinutes(daily[out[i].Path], 14, today)
	}
	return out
}

// DailyBuckets exposes the raw per-path buckets for aggregation.
func (t *Tracker) DailyBuckets() map[string]map[string]int {
	return t.loadDaily()
}
