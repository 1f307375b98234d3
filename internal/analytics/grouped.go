package analytics

import (
	"sort"
	"time"

	"apptrack-engine/internal/domain"
)

// Dimension selects which record field grouped metrics aggregate over.
type Dimension string

const (
	ByCompany  Dimension = "company"
	ByIndustry Dimension = "industry"
	ByJobType  Dimension = "job_type"
)

// UnspecifiedKey groups records whose dimension value is empty.
const UnspecifiedKey = "Unspecified"

func dimensionValue(r domain.Record, dim Dimension) string {
	var v string
	switch dim {
	case ByIndustry:
		v = r.Industry
	case ByJobType:
		v = r.JobType
	default:
		v = r.Company
	}
	if v == "" {
		return UnspecifiedKey
	}
	return v
}

// GroupedAverage is the mean response latency for one dimension value.
// Total is the group size; Samples is how many records actually had a
// recorded response and so contributed to AvgDays.
type GroupedAverage struct {
	Key     string  `json:"key"`
	AvgDays float64 `json:"avgDays"`
	Samples int     `json:"samples"`
	Total   int     `json:"total"`
}

// GroupedAverages computes mean (StatusChangedAt - CreatedAt) in whole days
// per dimension value. Records without a StatusChangedAt are counted in the
// group but excluded from the mean. Negative day differences from malformed
// upstream data are included as-is rather than clamped; surfacing anomalies
// beats masking them.
//
// Groups are ordered by Total descending, ties broken by first appearance in
// the input slice, then truncated to limit (limit <= 0 means no truncation).
func GroupedAverages(records []domain.Record, dim Dimension, limit int) []GroupedAverage {
	type acc struct {
		days    float64
		samples int
		total   int
	}
	groups := make(map[string]*acc)
	var order []string

	for _, r := range records {
		key := dimensionValue(r, dim)
		g, ok := groups[key]
		if !ok {
			g = &acc{}
			groups[key] = g
			order = append(order, key)
		}
		g.total++
		if r.StatusChangedAt != nil {
			g.days += daysBetween(r.CreatedAt, *r.StatusChangedAt)
			g.samples++
		}
	}

	out := make([]GroupedAverage, 0, len(order))
	for _, key := range order {
		g := groups[key]
		avg := 0.0
		if g.samples > 0 {
			avg = g.days / float64(g.samples)
		}
		out = append(out, GroupedAverage{Key: key, AvgDays: avg, Samples: g.samples, Total: g.total})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SuccessRate is the offer rate for one dimension value. Offers and Total are
// returned alongside the ratio for transparency.
type SuccessRate struct {
	Key    string  `json:"key"`
	Offers int     `json:"offers"`
	Total  int     `json:"total"`
	Rate   float64 `json:"rate"`
}

// SuccessRates computes offers/total per dimension value, ordered like
// GroupedAverages: by group size descending, first appearance breaking ties.
func SuccessRates(records []domain.Record, dim Dimension) []SuccessRate {
	type acc struct {
		offers int
		total  int
	}
	groups := make(map[string]*acc)
	var order []string

	for _, r := range records {
		key := dimensionValue(r, dim)
		g, ok := groups[key]
		if !ok {
			g = &acc{}
			groups[key] = g
			order = append(order, key)
		}
		g.total++
		if domain.ParseStage(r.Status) == domain.StageOffer {
			g.offers++
		}
	}

	out := make([]SuccessRate, 0, len(order))
	for _, key := range order {
		g := groups[key]
		out = append(out, SuccessRate{
			Key:    key,
			Offers: g.offers,
			Total:  g.total,
			Rate:   ratio(g.offers, g.total),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// daysBetween returns whole days from a to b, negative when b precedes a.
func daysBetween(a, b time.Time) float64 {
	return float64(int(b.Sub(a).Hours() / 24))
}
