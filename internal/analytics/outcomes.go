package analytics

import "apptrack-engine/internal/domain"

// DeadlineStats summarizes submission timeliness over deadline-bearing
// records. Met + Missed equals the number of records carrying a deadline.
type DeadlineStats struct {
	Met       int     `json:"met"`
	Missed    int     `json:"missed"`
	Adherence float64 `json:"adherence"`
}

// DeadlineAdherence considers only records with a deadline. A record is met
// when it entered the pipeline on or before its deadline. Adherence is 0 when
// no record carries a deadline.
func DeadlineAdherence(records []domain.Record) DeadlineStats {
	var d DeadlineStats
	for _, r := range records {
		if r.ApplicationDeadline == nil {
			continue
		}
		if !r.CreatedAt.After(*r.ApplicationDeadline) {
			d.Met++
		} else {
			d.Missed++
		}
	}
	d.Adherence = ratio(d.Met, d.Met+d.Missed)
	return d
}

// TimeToOffer is the mean days from pipeline entry to the offer transition,
// over records currently at Offer with a recorded transition time. 0 when no
// such record exists.
func TimeToOffer(records []domain.Record) float64 {
	var sum float64
	n := 0
	for _, r := range records {
		if r.StatusChangedAt == nil {
			continue
		}
		if domain.ParseStage(r.Status) != domain.StageOffer {
			continue
		}
		sum += daysBetween(r.CreatedAt, *r.StatusChangedAt)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ResponseRate is the fraction of records that received any response beyond
// the initial submission (StatusChangedAt set). 0 for empty input.
func ResponseRate(records []domain.Record) float64 {
	n := 0
	for _, r := range records {
		if r.StatusChangedAt != nil {
			n++
		}
	}
	return ratio(n, len(records))
}
