package analytics

import (
	"time"

	"apptrack-engine/internal/domain"
)

// Options controls the shape of a Summary. Now is explicit so that a given
// (records, Options) pair always computes the same Summary.
type Options struct {
	Now        time.Time
	Months     int
	Weeks      int
	GroupLimit int

	// Dimension selects the grouping for the grouped averages and success
	// rates (company when unset).
	Dimension Dimension
}

// DefaultMonths et al. are the dashboard defaults; config can override them.
const (
	DefaultMonths     = 12
	DefaultWeeks      = 8
	DefaultGroupLimit = 10
)

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now().UTC()
	}
	if o.Months <= 0 {
		o.Months = DefaultMonths
	}
	if o.Weeks <= 0 {
		o.Weeks = DefaultWeeks
	}
	if o.GroupLimit <= 0 {
		o.GroupLimit = DefaultGroupLimit
	}
	if o.Dimension == "" {
		o.Dimension = ByCompany
	}
	return o
}

// Summary is the fixed-shape bundle of every derived metric, computed fresh
// per call. Consumers are the HTTP API, the CSV exporter, and the insight
// generator.
type Summary struct {
	Total int `json:"total"`

	Funnel     map[domain.Stage]int `json:"-"`
	FunnelJSON map[string]int       `json:"funnel"`

	Conversion Conversion `json:"conversion"`

	ResponseRate       float64       `json:"responseRate"`
	AvgTimeToOfferDays float64       `json:"avgTimeToOfferDays"`
	Deadline           DeadlineStats `json:"deadline"`

	StageDurations map[domain.Stage]float64 `json:"-"`
	DurationsJSON  map[string]float64       `json:"stageDurations"`

	// Dimension is the grouping the grouped sections were computed over,
	// as selected by Options.Dimension.
	Dimension       string           `json:"dimension"`
	GroupedAverages []GroupedAverage `json:"groupedAverages"`
	SuccessRates    []SuccessRate    `json:"successRates"`

	Monthly []TimeSeriesPoint `json:"monthly"`
	Weekly  []TimeSeriesPoint `json:"weekly"`

	ThisWeekCount int `json:"thisWeekCount"`
}

// Compute runs the whole engine over one record collection. It is a plain
// chain of full scans; callers that recompute on every read should sit behind
// a Cache.
func Compute(records []domain.Record, opts Options) Summary {
	opts = opts.withDefaults()

	funnel := FunnelCounts(records)
	durations := StageDurations(records)

	s := Summary{
		Total:              len(records),
		Funnel:             funnel,
		FunnelJSON:         stageKeyed(funnel),
		Conversion:         ComputeConversion(records),
		ResponseRate:       ResponseRate(records),
		AvgTimeToOfferDays: TimeToOffer(records),
		Deadline:           DeadlineAdherence(records),
		StageDurations:     durations,
		DurationsJSON:      stageKeyedFloat(durations),
		Dimension:          string(opts.Dimension),
		GroupedAverages:    GroupedAverages(records, opts.Dimension, opts.GroupLimit),
		SuccessRates:       SuccessRates(records, opts.Dimension),
		Monthly:            MonthlyApplications(records, opts.Months, opts.Now),
		Weekly:             WeeklyApplications(records, opts.Weeks, opts.Now),
		ThisWeekCount:      ThisWeekCount(records, opts.Now),
	}
	return s
}

func stageKeyed(m map[domain.Stage]int) map[string]int {
	out := make(map[string]int, len(m))
	for s, v := range m {
		out[s.String()] = v
	}
	return out
}

func stageKeyedFloat(m map[domain.Stage]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for s, v := range m {
		out[s.String()] = v
	}
	return out
}
