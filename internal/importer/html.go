package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"apptrack-engine/internal/domain"
)

// ReadHTML parses records out of the first table in an HTML document whose
// header row it can map to known columns (saved application pages from job
// boards export this shape). Same column vocabulary and skip behavior as
// ReadCSV.
func ReadHTML(r io.Reader) ([]domain.Record, int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("parse html: %w", err)
	}

	var out []domain.Record
	skipped := 0
	found := false

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		cols := headerColumns(table)
		if _, ok := cols["created_at"]; !ok {
			return true // not an applications table, keep looking
		}
		found = true

		rows := table.Find("tbody tr")
		if rows.Length() == 0 {
			all := table.Find("tr")
			rows = all.Slice(1, all.Length()) // drop the header row
		}
		rows.Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			if cells.Length() == 0 {
				return // decoration row
			}
			field := func(name string) string {
				i, ok := cols[name]
				if !ok || i >= cells.Length() {
					return ""
				}
				return strings.TrimSpace(cells.Eq(i).Text())
			}

			created, ok := parseTime(field("created_at"))
			if !ok {
				skipped++
				return
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
		})
		return false
	})

	if !found {
		return nil, 0, fmt.Errorf("no applications table found in document")
	}
	return out, skipped, nil
}

func headerColumns(table *goquery.Selection) map[string]int {
	cols := make(map[string]int)
	header := table.Find("thead tr").First()
	if header.Length() == 0 {
		header = table.Find("tr").First()
	}
	header.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		name := normalizeHeader(cell.Text())
		if name != "" {
			cols[name] = i
		}
	})
	return cols
}
