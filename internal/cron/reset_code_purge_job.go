package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/xypherlux/storefront-backend/pkg/logger"
)

const defaultResetCodeTTL = 10 * time.Minute

type resetCodePurgeRepo interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ResetCodePurgeJobParams configure the purge job.
type ResetCodePurgeJobParams struct {
	Logger     *logger.Logger
	Repository resetCodePurgeRepo
	TTL        time.Duration
}

// NewResetCodePurgeJob builds a job that removes expired password reset codes.
func NewResetCodePurgeJob(params ResetCodePurgeJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("reset code repository required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultResetCodeTTL
	}
	return &resetCodePurgeJob{
		logg: params.Logger,
		repo: params.Repository,
		ttl:  ttl,
		now:  time.Now,
	}, nil
}

type resetCodePurgeJob struct {
	logg *logger.Logger
	repo resetCodePurgeRepo
	ttl  time.Duration
	now  func() time.Time
}

func (j *resetCodePurgeJob) Name() string { return "reset-code-purge" }

func (j *resetCodePurgeJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.ttl)
	deleted, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("reset code purge: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"rows_deleted": deleted,
	})
	j.logg.Info(logCtx, "reset code purge complete")
	return nil
}
