package analytics

import (
	"fmt"
	"time"

	"apptrack-engine/internal/domain"
)

// TimeSeriesPoint is one zero-filled bucket of a trend series.
type TimeSeriesPoint struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// MonthlyApplications buckets CreatedAt into the last periodCount calendar
// months ending at now, labeled "2006-01", oldest first. Records outside the
// window are ignored; every requested period appears even when empty.
func MonthlyApplications(records []domain.Record, periodCount int, now time.Time) []TimeSeriesPoint {
	if periodCount <= 0 {
		return []TimeSeriesPoint{}
	}

	start := monthStart(now).AddDate(0, -(periodCount - 1), 0)
	points := make([]TimeSeriesPoint, periodCount)
	index := make(map[string]int, periodCount)
	for i := 0; i < periodCount; i++ {
		label := start.AddDate(0, i, 0).Format("2006-01")
		points[i] = TimeSeriesPoint{Period: label}
		index[label] = i
	}

	for _, r := range records {
		if i, ok := index[r.CreatedAt.Format("2006-01")]; ok {
			points[i].Count++
		}
	}
	return points
}

// WeeklyApplications is the weekly variant of MonthlyApplications. Weeks
// start on Monday and are labeled by ISO week ("2006-W02").
func WeeklyApplications(records []domain.Record, periodCount int, now time.Time) []TimeSeriesPoint {
	if periodCount <= 0 {
		return []TimeSeriesPoint{}
	}

	start := weekStart(now).AddDate(0, 0, -7*(periodCount-1))
	points := make([]TimeSeriesPoint, periodCount)
	index := make(map[string]int, periodCount)
	for i := 0; i < periodCount; i++ {
		label := isoWeekLabel(start.AddDate(0, 0, 7*i))
		points[i] = TimeSeriesPoint{Period: label}
		index[label] = i
	}

	for _, r := range records {
		if i, ok := index[isoWeekLabel(r.CreatedAt)]; ok {
			points[i].Count++
		}
	}
	return points
}

// ThisWeekCount counts records created in the current Monday-based week.
func ThisWeekCount(records []domain.Record, now time.Time) int {
	ws := weekStart(now)
	we := ws.AddDate(0, 0, 7)
	n := 0
	for _, r := range records {
		if !r.CreatedAt.Before(ws) && r.CreatedAt.Before(we) {
			n++
		}
	}
	return n
}

// StageDurations reports, per stage, the mean elapsed days between CreatedAt
// and StatusChangedAt over records currently classified in that stage.
// Stages with no qualifying record report 0 (a default, deliberately not
// distinguished from a genuine zero-day duration).
//
// Known limitation: StatusChangedAt is the last transition, not a stage-entry
// history, so for records that passed through several stages this measures
// time since the most recent move, not time spent in the stage. The
// approximation is kept intentionally.
func StageDurations(records []domain.Record) map[domain.Stage]float64 {
	sums := make(map[domain.Stage]float64)
	counts := make(map[domain.Stage]int)
	for _, r := range records {
		if r.StatusChangedAt == nil {
			continue
		}
		s := domain.ParseStage(r.Status)
		sums[s] += daysBetween(r.CreatedAt, *r.StatusChangedAt)
		counts[s]++
	}

	out := make(map[domain.Stage]float64, len(domain.Stages()))
	for _, s := range domain.Stages() {
		if counts[s] > 0 {
			out[s] = sums[s] / float64(counts[s])
		} else {
			out[s] = 0
		}
	}
	return out
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// weekStart snaps to Monday 00:00.
func weekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return time.Date(t.Year(), t.Month(), t.Day()-(weekday-1), 0, 0, 0, 0, t.Location())
}

func isoWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
