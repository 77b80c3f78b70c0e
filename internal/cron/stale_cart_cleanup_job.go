package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xypherlux/storefront-backend/pkg/db/models"
	"github.com/xypherlux/storefront-backend/pkg/logger"
	"go.uber.org/multierr"
)

const staleCartRetentionDays = 30

type staleCartRepo interface {
	ListInactiveOlderThan(ctx context.Context, cutoff time.Time) ([]models.Cart, error)
	DeleteCart(ctx context.Context, cartID uuid.UUID) error
}

// StaleCartCleanupJobParams configure the cleanup job.
type StaleCartCleanupJobParams struct {
	Logger     *logger.Logger
	Repository staleCartRepo
	Retention  int
}

// NewStaleCartCleanupJob builds a job that deletes checked-out carts past retention.
func NewStaleCartCleanupJob(params StaleCartCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = staleCartRetentionDays
	}
	return &staleCartCleanupJob{
		logg:      params.Logger,
		repo:      params.Repository,
		retention: retention,
		now:       time.Now,
	}, nil
}

type staleCartCleanupJob struct {
	logg      *logger.Logger
	repo      staleCartRepo
	retention int
	now       func() time.Time
}

func (j *staleCartCleanupJob) Name() string { return "stale-cart-cleanup" }

func (j *staleCartCleanupJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	carts, err := j.repo.ListInactiveOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list stale carts: %w", err)
	}

	var errs error
	deleted := 0
	for _, record := range carts {
		if err := j.repo.DeleteCart(ctx, record.ID); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete cart %s: %w", record.ID, err))
			continue
		}
		deleted++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"carts_deleted":  deleted,
		"carts_failed":   len(carts) - deleted,
	})
	j.logg.Info(logCtx, "stale cart cleanup complete")
	return errs
}
