// Package export serializes a computed Summary for download. The CSV layout
// is a flat Metric,Value section followed by labeled sub-tables, CRLF
// terminated, with percentages at one decimal and counts as plain integers.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"apptrack-engine/internal/analytics"
	"apptrack-engine/internal/domain"
)

// WriteCSV writes the metrics report for s to w.
func WriteCSV(w io.Writer, s analytics.Summary) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	rows := [][]string{
		{"Metric", "Value"},
		{"Total Applications", count(s.Total)},
		{"Response Rate", percent(s.ResponseRate)},
		{"Applied to Phone Screen", percent(s.Conversion.AppliedToPhone)},
		{"Phone Screen to Interview", percent(s.Conversion.PhoneToInterview)},
		{"Interview to Offer", percent(s.Conversion.InterviewToOffer)},
		{"Applied to Interview", percent(s.Conversion.AppliedToInterview)},
		{"Deadline Adherence", percent(s.Deadline.Adherence)},
		{"Deadlines Met", count(s.Deadline.Met)},
		{"Deadlines Missed", count(s.Deadline.Missed)},
		{"Average Time to Offer (days)", days(s.AvgTimeToOfferDays)},
		{},
		{"Funnel Breakdown"},
		{"Stage", "Count"},
	}
	for _, stage := range domain.Stages() {
		rows = append(rows, []string{stage.String(), count(s.Funnel[stage])})
	}

	dim := dimensionTitle(s.Dimension)
	rows = append(rows, []string{}, []string{"Average Response Time by " + dim},
		[]string{dim, "Avg Days", "Samples", "Total"})
	for _, g := range s.GroupedAverages {
		rows = append(rows, []string{g.Key, days(g.AvgDays), count(g.Samples), count(g.Total)})
	}

	rows = append(rows, []string{}, []string{"Stage Durations"},
		[]string{"Stage", "Avg Days"})
	for _, stage := range domain.Stages() {
		rows = append(rows, []string{stage.String(), days(s.StageDurations[stage])})
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func dimensionTitle(d string) string {
	switch d {
	case "industry":
		return "Industry"
	case "job_type":
		return "Job Type"
	default:
		return "Company"
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func days(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func count(n int) string {
	return fmt.Sprintf("%d", n)
}
