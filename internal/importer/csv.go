// Package importer reads job application records from exported files: a CSV
// with a header row, or an HTML page containing an applications table. It
// replaces remote scraping entirely; ingestion here is file-based and the
// engine never touches the network.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"apptrack-engine/internal/domain"
)

// Accepted timestamp layouts, most specific first.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ReadCSV parses records from r. The first row is a header; columns are
// matched by normalized name (company, industry, job_type, status,
// created_at, status_changed_at, application_deadline, source_id). Unknown
// columns are ignored, rows with an unparseable created_at are skipped and
// counted, and records without a source ID get a generated one so re-imports
// stay idempotent at the store layer.
func ReadCSV(r io.Reader) ([]domain.Record, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[normalizeHeader(name)] = i
	}
	if _, ok := cols["created_at"]; !ok {
		return nil, 0, fmt.Errorf("csv header has no created_at column")
	}

	var out []domain.Record
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("read csv row: %w", err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		created, ok := parseTime(field("created_at"))
		if !ok {
			skipped++
			continue
		}

		rec := domain.Record{
			Company:   field("company"),
			Industry:  field("industry"),
			JobType:   field("job_type"),
			Status:    field("status"),
			CreatedAt: created,
			SourceID:  field("source_id"),
		}
		if t, ok := parseTime(field("status_changed_at")); ok {
			rec.StatusChangedAt = &t
		}
		if t, ok := parseTime(field("application_deadline")); ok {
			rec.ApplicationDeadline = &t
		}
		if rec.SourceID == "" {
			rec.SourceID = "import:" + uuid.NewString()
		}
		out = append(out, rec)
	}
	return out, skipped, nil
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	switch name {
	case "jobtype", "type":
		return "job_type"
	case "createdat", "created", "date_applied", "applied_at":
		return "created_at"
	case "statuschangedat", "status_changed", "last_update", "updated_at":
		return "status_changed_at"
	case "applicationdeadline", "deadline", "due_date":
		return "application_deadline"
	}
	return name
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
