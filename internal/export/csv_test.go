package export

import (
	"strings"
	"testing"
	"time"

	"apptrack-engine/internal/analytics"
	"apptrack-engine/internal/domain"
)

func sampleSummary() analytics.Summary {
	now := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	base := now.AddDate(0, 0, -30)
	changed := base.AddDate(0, 0, 9)
	records := []domain.Record{
		{Company: "Acme", Status: "Offer", CreatedAt: base, StatusChangedAt: &changed},
		{Company: "Acme", Status: "Applied", CreatedAt: base},
		{Company: "Globex", Status: "Interview", CreatedAt: base, StatusChangedAt: &changed},
	}
	return analytics.Compute(records, analytics.Options{Now: now})
}

func TestWriteCSV(t *testing.T) {
	var b strings.Builder
	if err := WriteCSV(&b, sampleSummary()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := b.String()

	if !strings.Contains(out, "\r\n") {
		t.Error("output is not CRLF terminated")
	}
	if strings.Contains(strings.ReplaceAll(out, "\r\n", ""), "\n") {
		t.Error("found a bare LF line terminator")
	}

	for _, want := range []string{
		"Metric,Value\r\n",
		"Total Applications,3\r\n",
		"Funnel Breakdown\r\n",
		"Stage,Count\r\n",
		"Offer,1\r\n",
		"Average Response Time by Company\r\n",
		"Stage Durations\r\n",
		"Average Time to Offer (days),9.0\r\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Percentages carry one decimal and a trailing percent sign.
	if !strings.Contains(out, "Applied to Interview,66.7%\r\n") {
		t.Errorf("conversion percentage not formatted to one decimal: %s", out)
	}
	if !strings.Contains(out, "Response Rate,66.7%\r\n") {
		t.Errorf("response rate not formatted: %s", out)
	}
}

func TestWriteCSVDimensionSection(t *testing.T) {
	now := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	records := []domain.Record{
		{Industry: "Fintech", Status: "Applied", CreatedAt: now.AddDate(0, 0, -5)},
	}
	s := analytics.Compute(records, analytics.Options{Now: now, Dimension: analytics.ByIndustry})

	var b strings.Builder
	if err := WriteCSV(&b, s); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Average Response Time by Industry\r\n") {
		t.Error("section title does not follow the configured dimension")
	}
	if !strings.Contains(out, "Industry,Avg Days,Samples,Total\r\n") {
		t.Error("sub-table header does not follow the configured dimension")
	}
	if !strings.Contains(out, "Fintech,0.0,0,1\r\n") {
		t.Errorf("missing Fintech group row in:\n%s", out)
	}
}

func TestWriteCSVEmptySummary(t *testing.T) {
	var b strings.Builder
	if err := WriteCSV(&b, analytics.Compute(nil, analytics.Options{})); err != nil {
		t.Fatalf("WriteCSV on empty summary: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Total Applications,0\r\n") {
		t.Error("empty summary should still render a zeroed report")
	}
	if !strings.Contains(out, "Response Rate,0.0%\r\n") {
		t.Error("guarded ratios should render as 0.0%")
	}
}
