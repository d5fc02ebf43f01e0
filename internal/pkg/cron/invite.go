package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// InviteSweeper deactivates invite codes that expired without being consumed.
type InviteSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

type InviteJobs struct {
	sweeper  InviteSweeper
	interval time.Duration
}

func NewInviteJobs(sweeper InviteSweeper, interval time.Duration) *InviteJobs {
	return &InviteJobs{sweeper: sweeper, interval: interval}
}

func (j *InviteJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("deactivate_expired_invites", j.interval, j.DeactivateExpired)
}

func (j *InviteJobs) DeactivateExpired(ctx context.Context) error {
	count, err := j.sweeper.SweepExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to deactivate expired invites: %w", err)
	}
	if count > 0 {
		slog.Info("Cron: deactivated expired invite codes", "count", count)
	}
	return nil
}
