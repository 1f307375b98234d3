// Package analytics computes derived metrics over a collection of job
// application records: funnel counts, conversion ratios, grouped averages,
// trend series, deadline adherence, and time-to-offer. Every function here is
// pure: a full scan over the input slice, no I/O, no retained state, and the
// same output for the same input. Malformed records (missing timestamps,
// unrecognized status labels) degrade to zeros or the Unknown bucket, never
// to an error.
package analytics

import "apptrack-engine/internal/domain"

// FunnelCounts buckets every record into its pipeline stage. All canonical
// stages are present in the result, zero-valued when empty, so the sum of the
// counts always equals len(records).
func FunnelCounts(records []domain.Record) map[domain.Stage]int {
	counts := make(map[domain.Stage]int, len(domain.Stages()))
	for _, s := range domain.Stages() {
		counts[s] = 0
	}
	for _, r := range records {
		counts[domain.ParseStage(r.Status)]++
	}
	return counts
}

// Conversion holds the cumulative reachability counts and the stage-to-stage
// ratios derived from them. Ratios are 0 whenever their denominator is 0.
type Conversion struct {
	Applied      int `json:"applied"`
	PhoneScreens int `json:"phoneScreens"`
	Interviews   int `json:"interviews"`
	Offers       int `json:"offers"`

	AppliedToPhone     float64 `json:"appliedToPhone"`
	PhoneToInterview   float64 `json:"phoneToInterview"`
	InterviewToOffer   float64 `json:"interviewToOffer"`
	AppliedToInterview float64 `json:"appliedToInterview"`
}

// ComputeConversion derives the funnel conversion ratios. Reachability is
// cumulative: a record sitting at Interview has necessarily applied and
// passed a phone screen, so it counts toward the earlier buckets too.
// Rejected records count as applied (they got far enough to be turned down)
// but toward nothing later.
func ComputeConversion(records []domain.Record) Conversion {
	var c Conversion
	for _, r := range records {
		switch domain.ParseStage(r.Status) {
		case domain.StageApplied, domain.StageRejected:
			c.Applied++
		case domain.StagePhoneScreen:
			c.Applied++
			c.PhoneScreens++
		case domain.StageInterview:
			c.Applied++
			c.PhoneScreens++
			c.Interviews++
		case domain.StageOffer:
			c.Applied++
			c.PhoneScreens++
			c.Interviews++
			c.Offers++
		}
	}
	c.AppliedToPhone = ratio(c.PhoneScreens, c.Applied)
	c.PhoneToInterview = ratio(c.Interviews, c.PhoneScreens)
	c.InterviewToOffer = ratio(c.Offers, c.Interviews)
	c.AppliedToInterview = ratio(c.Interviews, c.Applied)
	return c
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
