package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"apptrack-engine/internal/analytics"
	"apptrack-engine/internal/domain"
	"apptrack-engine/internal/events"
	"apptrack-engine/internal/importer"
	"apptrack-engine/internal/metrics"
	"apptrack-engine/internal/store"
)

type RecordsHandler struct {
	DB    *sql.DB
	Hub   *events.Hub
	Cache *analytics.Cache
}

func (h RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := store.ListRecords(r.Context(), h.DB)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	out := make([]recordPayload, 0, len(records))
	for _, rec := range records {
		out = append(out, toPayload(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p recordPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	rec := fromPayload(p)
	id, added, err := store.InsertRecord(r.Context(), h.DB, rec)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "insert_failed", err.Error())
		return
	}
	if !added {
		writeError(w, r, http.StatusConflict, "duplicate", "a record with this sourceId already exists")
		return
	}
	p.ID = id
	h.recordsChanged(r)
	writeJSON(w, http.StatusCreated, p)
}

// Import accepts a CSV or HTML file body (?format=csv|html, default csv) and
// inserts the parsed records, deduping on sourceId.
func (h RecordsHandler) Import(w http.ResponseWriter, r *http.Request) {
	var (
		records []domain.Record
		skipped int
		err     error
	)
	switch r.URL.Query().Get("format") {
	case "", "csv":
		records, skipped, err = importer.ReadCSV(r.Body)
	case "html":
		records, skipped, err = importer.ReadHTML(r.Body)
	default:
		writeError(w, r, http.StatusBadRequest, "bad_format", "format must be csv or html")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "parse_failed", err.Error())
		return
	}

	added := 0
	for _, rec := range records {
		_, ok, err := store.InsertRecord(r.Context(), h.DB, rec)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "insert_failed", err.Error())
			return
		}
		if ok {
			added++
		}
	}
	metrics.RecordsImported.Add(float64(added))
	if added > 0 {
		h.recordsChanged(r)
	}
	writeJSON(w, http.StatusOK, importResult{Parsed: len(records), Added: added, Skipped: skipped})
}

func (h RecordsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_id", "record id must be an integer")
		return
	}
	var p statusPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	changedAt := time.Now().UTC()
	if p.ChangedAt != nil {
		changedAt = *p.ChangedAt
	}

	if err := store.UpdateStatus(r.Context(), h.DB, id, p.Status, changedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, r, http.StatusNotFound, "not_found", "no such record")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "update_failed", err.Error())
		return
	}
	h.recordsChanged(r)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_id", "record id must be an integer")
		return
	}
	if err := store.DeleteRecord(r.Context(), h.DB, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, r, http.StatusNotFound, "not_found", "no such record")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "delete_failed", err.Error())
		return
	}
	h.recordsChanged(r)
	w.WriteHeader(http.StatusNoContent)
}

func (h RecordsHandler) recordsChanged(r *http.Request) {
	if h.Cache != nil {
		h.Cache.Invalidate()
	}
	if h.Hub != nil {
		h.Hub.Publish(events.Make(reqID(r), events.TypeRecordsChanged, nil))
	}
}

func toPayload(rec domain.Record) recordPayload {
	return recordPayload{
		ID:                  rec.ID,
		Company:             rec.Company,
		Industry:            rec.Industry,
		JobType:             rec.JobType,
		Status:              rec.Status,
		CreatedAt:           rec.CreatedAt,
		StatusChangedAt:     rec.StatusChangedAt,
		ApplicationDeadline: rec.ApplicationDeadline,
		SourceID:            rec.SourceID,
	}
}

func fromPayload(p recordPayload) domain.Record {
	return domain.Record{
		Company:             p.Company,
		Industry:            p.Industry,
		JobType:             p.JobType,
		Status:              p.Status,
		CreatedAt:           p.CreatedAt,
		StatusChangedAt:     p.StatusChangedAt,
		ApplicationDeadline: p.ApplicationDeadline,
		SourceID:            p.SourceID,
	}
}
