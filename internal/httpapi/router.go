package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(cors)

	auth := requireToken(d.APIToken)

	hh := HealthHandler{}
	r.Get("/health", hh.Get)
	r.Handle("/metrics", promhttp.Handler())

	rh := RecordsHandler{DB: d.DB, Hub: d.Hub, Cache: d.Cache}
	r.Route("/records", func(r chi.Router) {
		r.Get("/", rh.List)
		r.With(auth).Post("/", rh.Create)
		r.With(auth).Post("/import", rh.Import)
		r.With(auth).Patch("/{id}/status", rh.UpdateStatus)
		r.With(auth).Delete("/{id}", rh.Delete)
	})

	ah := AnalyticsHandler{DB: d.DB, Cache: d.Cache, CfgVal: d.CfgVal, Limiter: d.RefreshLimiter, Hub: d.Hub}
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/summary", ah.Summary)
		r.Get("/insights", ah.Insights)
		r.Post("/refresh", ah.Refresh)
	})

	xh := ExportHandler{DB: d.DB, Cache: d.Cache, CfgVal: d.CfgVal}
	r.Get("/export/csv", xh.CSV)

	ch := ConfigHandler{CfgVal: d.CfgVal, UserCfgPath: d.UserCfgPath}
	r.Get("/config", ch.Get)
	r.With(auth).Put("/config", ch.Put)

	sh := SecretsHandler{}
	r.With(auth).Post("/api/secrets/token", sh.SetToken)

	eh := EventsHandler{Hub: d.Hub}
	r.Get("/events", eh.ServeSSE)

	return r
}
