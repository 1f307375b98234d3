package httpapi

import (
	"database/sql"
	"sync/atomic"

	"golang.org/x/time/rate"

	"apptrack-engine/internal/analytics"
	"apptrack-engine/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub   *events.Hub
	Cache *analytics.Cache

	// CfgVal stores config.Config; handlers snapshot it per request so a
	// config reload never tears a response.
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string

	// RefreshLimiter throttles manual recompute requests.
	RefreshLimiter *rate.Limiter

	// APIToken resolves the token guarding mutating endpoints; an error
	// means no token is set and auth is disabled (local-only tool).
	APIToken func() (string, error)
}
