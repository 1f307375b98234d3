package httpapi

import (
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"apptrack-engine/internal/analytics"
	"apptrack-engine/internal/config"
	"apptrack-engine/internal/export"
	"apptrack-engine/internal/store"
)

type ExportHandler struct {
	DB     *sql.DB
	Cache  *analytics.Cache
	CfgVal *atomic.Value // stores config.Config
}

func (h ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	cfg := config.Default()
	if h.CfgVal != nil {
		if v := h.CfgVal.Load(); v != nil {
			cfg = v.(config.Config)
		}
	}

	records, err := store.ListRecords(r.Context(), h.DB)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	s, _ := h.Cache.Summary(records, analytics.Options{
		Now:        time.Now().UTC(),
		Months:     cfg.Analytics.Months,
		Weeks:      cfg.Analytics.Weeks,
		GroupLimit: cfg.Analytics.GroupLimit,
		Dimension:  analytics.Dimension(cfg.Analytics.Dimension),
	})

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="apptrack-metrics.csv"`)
	// The status line is committed with the first row; a mid-stream failure
	// can only truncate the download.
	_ = export.WriteCSV(w, s)
}
