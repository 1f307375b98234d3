package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"apptrack-engine/internal/analytics"
	"apptrack-engine/internal/config"
	"apptrack-engine/internal/events"
	"apptrack-engine/internal/insights"
	"apptrack-engine/internal/metrics"
	"apptrack-engine/internal/store"
)

type AnalyticsHandler struct {
	DB      *sql.DB
	Cache   *analytics.Cache
	CfgVal  *atomic.Value // stores config.Config
	Limiter *rate.Limiter
	Hub     *events.Hub
}

func (h AnalyticsHandler) config() config.Config {
	if h.CfgVal != nil {
		if v := h.CfgVal.Load(); v != nil {
			return v.(config.Config)
		}
	}
	return config.Default()
}

func (h AnalyticsHandler) options(cfg config.Config) analytics.Options {
	return analytics.Options{
		Now:        time.Now().UTC(),
		Months:     cfg.Analytics.Months,
		Weeks:      cfg.Analytics.Weeks,
		GroupLimit: cfg.Analytics.GroupLimit,
		Dimension:  analytics.Dimension(cfg.Analytics.Dimension),
	}
}

func (h AnalyticsHandler) summary(r *http.Request) (analytics.Summary, config.Config, error) {
	cfg := h.config()
	records, err := store.ListRecords(r.Context(), h.DB)
	if err != nil {
		return analytics.Summary{}, cfg, err
	}

	start := time.Now()
	s, cached := h.Cache.Summary(records, h.options(cfg))
	if cached {
		metrics.SummaryCacheHits.Inc()
	} else {
		metrics.SummaryComputes.Inc()
		metrics.SummaryComputeSeconds.Observe(time.Since(start).Seconds())
	}
	return s, cfg, nil
}

func (h AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, _, err := h.summary(r)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "summary_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h AnalyticsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	s, cfg, err := h.summary(r)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "summary_failed", err.Error())
		return
	}

	goal := cfg.Analytics.WeeklyGoal
	if raw := r.URL.Query().Get("weekly_goal"); raw != "" {
		if g, err := strconv.Atoi(raw); err == nil && g >= 0 {
			goal = g
		}
	}

	list := insights.Generate(s, insights.Inputs{
		WeeklyGoal:    goal,
		ThisWeekCount: s.ThisWeekCount,
	}, cfg.Policy())
	metrics.InsightsGenerated.Add(float64(len(list)))

	writeJSON(w, http.StatusOK, insightsResponse{Insights: list})
}

// Refresh drops the memo cache and recomputes. Rate limited: the UI may call
// this on every focus event.
func (h AnalyticsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.Limiter != nil && !h.Limiter.Allow() {
		writeError(w, r, http.StatusTooManyRequests, "rate_limited", "refresh requested too frequently")
		return
	}
	h.Cache.Invalidate()
	s, _, err := h.summary(r)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "summary_failed", err.Error())
		return
	}
	if h.Hub != nil {
		h.Hub.Publish(events.Make(reqID(r), events.TypeSummaryRefreshed, nil))
	}
	writeJSON(w, http.StatusOK, s)
}
