package jobs

import (
	"context"
	"log/slog"
	"time"

	"alltown/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleClaimReleaseJob periodically returns claims that were never started
// to the available pool. Runs every minute; a claim older than maxClaimAge
// that is still in the claimed status gets released.
type StaleClaimReleaseJob struct {
	handler     commands.ReleaseStaleClaimsCommandHandler
	maxClaimAge time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewStaleClaimReleaseJob creates a job that sweeps stale claims with the
// given age limit.
func NewStaleClaimReleaseJob(
	handler commands.ReleaseStaleClaimsCommandHandler,
	maxClaimAge time.Duration,
	logger *slog.Logger,
) *StaleClaimReleaseJob {
	return &StaleClaimReleaseJob{
		handler:     handler,
		maxClaimAge: maxClaimAge,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "stale_claim_release_job"),
	}
}

// Start begins the stale claim sweep, running once a minute.
func (j *StaleClaimReleaseJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewReleaseStaleClaimsCommand(j.maxClaimAge)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale claim release command is invalid", "error", err)
			return
		}

		released, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale claim release job failed", "error", err)
			return
		}

		if len(released) > 0 {
			j.logger.InfoContext(ctx, "Released stale claims", "count", len(released))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale claim release job started (running every minute)")
	return nil
}

// Stop stops the stale claim sweep.
func (j *StaleClaimReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale claim release job stopped")
}
