package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"apptrack-engine/internal/analytics"
	"apptrack-engine/internal/config"
	"apptrack-engine/internal/events"
	"apptrack-engine/internal/httpapi"
	"apptrack-engine/internal/scheduler"
	"apptrack-engine/internal/secrets"
	"apptrack-engine/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One engine per data dir; a second instance would fight over the db.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another engine is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return fmt.Errorf("config bootstrap: %w", err)
	}
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return fmt.Errorf("config load (%s): %w", userCfgPath, err)
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	if !res.OK() {
		return fmt.Errorf("config invalid: %v", res.Errors)
	}
	for _, warn := range res.Warnings {
		log.Warn().Str("config", userCfgPath).Msg(warn)
	}

	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	db, err := store.Open(dbPath())
	if err != nil {
		return err
	}
	defer db.Close()

	hub := events.NewHub()
	cache := &analytics.Cache{}

	d := httpapi.Deps{
		DB:             db.Pool,
		Hub:            hub,
		Cache:          cache,
		CfgVal:         &cfgVal,
		UserCfgPath:    userCfgPath,
		RefreshLimiter: rate.NewLimiter(rate.Every(5*time.Second), 2),
		APIToken:       secrets.GetAPIToken,
	}

	// Background refresh keeps the summary warm and lets SSE clients follow
	// along without polling.
	go scheduler.Every(ctx, time.Duration(cfg.Analytics.RefreshSeconds)*time.Second, "summary_refresh",
		func(ctx context.Context) error {
			records, err := store.ListRecords(ctx, db.Pool)
			if err != nil {
				return err
			}
			c := cfgVal.Load().(config.Config)
			_, cached := cache.Summary(records, analytics.Options{
				Now:        time.Now().UTC(),
				Months:     c.Analytics.Months,
				Weeks:      c.Analytics.Weeks,
				GroupLimit: c.Analytics.GroupLimit,
				Dimension:  analytics.Dimension(c.Analytics.Dimension),
			})
			if !cached {
				hub.Publish(events.Make("", events.TypeSummaryRefreshed, nil))
			}
			return nil
		})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Info().Str("addr", addr).Str("db", dbPath()).Msg("engine listening")

	srv := &http.Server{
		Handler:           httpapi.NewRouter(d),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
