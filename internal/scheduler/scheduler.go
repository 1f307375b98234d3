package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then on each tick until ctx is canceled.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	t := time.NewTicker(interval)
	defer t.Stop()

	if err := task(ctx); err != nil {
		log.Error().Err(err).Str("task", name).Msg("scheduled task failed")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := task(ctx); err != nil {
				log.Error().Err(err).Str("task", name).Msg("scheduled task failed")
			}
		}
	}
}
