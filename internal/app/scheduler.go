package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/riskibarqy/fantasy-league-portal/internal/platform/logging"
)

const purgeTimeout = 30 * time.Second

type sessionPurger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// sessionPurgeScheduler drops expired sessions on a fixed interval.
type sessionPurgeScheduler struct {
	s      gocron.Scheduler
	purger sessionPurger
	logger *logging.Logger
}

func newSessionPurgeScheduler(purger sessionPurger, interval time.Duration, logger *logging.Logger) (*sessionPurgeScheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	ps := &sessionPurgeScheduler{s: s, purger: purger, logger: logger}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(ps.purge),
		gocron.WithName("purge-expired-sessions"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("create session purge job: %w", err)
	}
	return ps, nil
}

func (ps *sessionPurgeScheduler) Start() {
	ps.s.Start()
}

func (ps *sessionPurgeScheduler) Stop() error {
	if err := ps.s.Shutdown(); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	return nil
}

func (ps *sessionPurgeScheduler) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	if _, err := ps.purger.PurgeExpired(ctx); err != nil {
		ps.logger.ErrorContext(ctx, "session purge failed", "error", err)
	}
}
