package insights

import (
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/JustinTDCT/MediaShelf/internal/categories"
	"github.com/JustinTDCT/MediaShelf/internal/classify"
	"github.com/JustinTDCT/MediaShelf/internal/watch"
)

const (
	// WorkingSetLimit bounds how much history one aggregation processes.
	WorkingSetLimit = 300

	topGroups     = 6
	completedCap  = 12
	completeRatio = 0.95
	// A stored resume position at or under this is read as "played to the end
	// and the player reset to the start".
	resetPositionSec = 10
)

// Entry is one working-set record: a watch stat joined with the file's
// derived duration, when known.
type Entry struct {
	Path            string  `json:"path"`
	TotalMinutes    float64 `json:"total_minutes"`
	Last14Minutes   int     `json:"last14_minutes"`
	LastPositionSec *int    `json:"last_position_sec,omitempty"`
	DurationSec     *int    `json:"duration_sec,omitempty"`
}

type ExtGroup struct {
	Ext     string `json:"ext"`
	Count   int    `json:"count"`
	Minutes int    `json:"minutes"`
}

type FolderGroup struct {
	Folder  string `json:"folder"`
	Minutes int    `json:"minutes"`
}

type TopFile struct {
	Path    string `json:"path"`
	Minutes int    `json:"minutes"`
}

type TopCategory struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
}

type Report struct {
	TotalMinutes   int              `json:"total_minutes"`
	Last14Minutes  int              `json:"last14_minutes"`
	ByExtension    []ExtGroup       `json:"by_extension"`
	ByFolder       []FolderGroup    `json:"by_folder"`
	MostWatched    *TopFile         `json:"most_watched,omitempty"`
	TopCategory    *TopCategory     `json:"top_category,omitempty"`
	CompletedCount int              `json:"completed_count"`
	Completed      []string         `json:"completed"`
	Daily          []watch.DayTotal `json:"daily"`
}

// Build aggregates the working set into a report. entries are expected most
// recently watched first and at most WorkingSetLimit long; anything past the
// cap is ignored.
func Build(entries []Entry, cats []categories.Category, daily map[string]map[string]int, days int, today time.Time) Report {
	if len(entries) > WorkingSetLimit {
		entries = entries[:WorkingSetLimit]
	}

	var r Report
	extGroups := map[string]*ExtGroup{}
	folderMinutes := map[string]int{}
	var extOrder, folderOrder []string
	bestRaw := 0.0

	for i, e := range entries {
		mins := int(math.Round(e.TotalMinutes))
		r.TotalMinutes += mins
		r.Last14Minutes += e.Last14Minutes

		ext := classify.Ext(e.Path)
		g, ok := extGroups[ext]
		if !ok {
			g = &ExtGroup{Ext: ext}
			extGroups[ext] = g
			extOrder = append(extOrder, ext)
		}
		g.Count++
		g.Minutes += mins

		folder := filepath.Dir(e.Path)
		if _, ok := folderMinutes[folder]; !ok {
			folderOrder = append(folderOrder, folder)
		}
		folderMinutes[folder] += mins

		// Ranked on the raw total so close entries don't collapse into a
		// rounding tie; first-seen wins real ties.
		if r.MostWatched == nil || e.TotalMinutes > bestRaw {
			bestRaw = e.TotalMinutes
			r.MostWatched = &TopFile{Path: entries[i].Path, Minutes: mins}
		}

		if isCompleted(e) {
			r.CompletedCount++
			if len(r.Completed) < completedCap {
				r.Completed = append(r.Completed, e.Path)
			}
		}
	}

	r.ByExtension = topExtensions(extGroups, extOrder)
	r.ByFolder = topFolders(folderMinutes, folderOrder)
	r.TopCategory = topCategory(entries, cats)
	r.Daily = dailySeries(daily, days, today)
	return r
}

func isCompleted(e Entry) bool {
	if e.DurationSec == nil || *e.DurationSec <= 0 {
		return false
	}
	dur := float64(*e.DurationSec)
	if e.TotalMinutes*60/dur >= completeRatio {
		return true
	}
	if e.LastPositionSec != nil {
		pos := float64(*e.LastPositionSec)
		if pos <= resetPositionSec || pos/dur >= completeRatio {
			return true
		}
	}
	return false
}

func topExtensions(groups map[string]*ExtGroup, order []string) []ExtGroup {
	out := make([]ExtGroup, 0, len(order))
	for _, ext := range order {
		out = append(out, *groups[ext])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > topGroups {
		out = out[:topGroups]
	}
	return out
}

func topFolders(minutes map[string]int, order []string) []FolderGroup {
	out := make([]FolderGroup, 0, len(order))
	for _, folder := range order {
		out = append(out, FolderGroup{Folder: folder, Minutes: minutes[folder]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Minutes > out[j].Minutes })
	if len(out) > topGroups {
		out = out[:topGroups]
	}
	return out
}

// topCategory sums working-set minutes per category: video members match the
// path exactly, folder members match by prefix. A winner needs a positive sum.
func topCategory(entries []Entry, cats []categories.Category) *TopCategory {
	var best *TopCategory
	bestRaw := 0.0
	for _, cat := range cats {
		raw := 0.0
		for _, e := range entries {
			if categoryHolds(cat, e.Path) {
				raw += e.TotalMinutes
			}
		}
		if raw > 0 && (best == nil || raw > bestRaw) {
			bestRaw = raw
			best = &TopCategory{ID: cat.ID, Name: cat.Name, Minutes: int(math.Round(raw))}
		}
	}
	return best
}

func categoryHolds(cat categories.Category, path string) bool {
	for _, it := range cat.Items {
		switch it.Kind {
		case categories.KindVideo:
			if it.Path == path {
				return true
			}
		case categories.KindFolder:
			if strings.HasPrefix(path, it.Path) {
				return true
			}
		}
	}
	return false
}

func dailySeries(daily map[string]map[string]int, days int, today time.Time) []watch.DayTotal {
	if days <= 0 {
		days = 30
	}
	out := make([]watch.DayTotal, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		sec := 0
		for _, buckets := range daily {
			sec += buckets[date]
		}
		out = append(out, watch.DayTotal{Date: date, Minutes: int(math.Round(float64(sec) / 60))})
	}
	return out
}
