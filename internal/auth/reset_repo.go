package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/xypherlux/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ResetCodeRepository persists password reset codes.
type ResetCodeRepository struct {
	db *gorm.DB
}

// NewResetCodeRepository constructs a reset-code repo bound to the provided DB.
func NewResetCodeRepository(db *gorm.DB) *ResetCodeRepository {
	return &ResetCodeRepository{db: db}
}

// Create inserts a fresh code for the user.
func (r *ResetCodeRepository) Create(ctx context.Context, userID uuid.UUID, code string) (*models.PasswordResetCode, error) {
	record := &models.PasswordResetCode{ID: uuid.New(), UserID: userID, Code: code}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindLatestByUser returns the user's most recent code.
func (r *ResetCodeRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*models.PasswordResetCode, error) {
	var record models.PasswordResetCode
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByUserAndCode returns the matching code row for the user.
func (r *ResetCodeRepository) FindByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*models.PasswordResetCode, error) {
	var record models.PasswordResetCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ?", userID, code).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a single code row.
func (r *ResetCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.PasswordResetCode{}).Error
}

// DeleteByUser removes all codes issued to the user.
func (r *ResetCodeRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.PasswordResetCode{}).Error
}

// DeleteOlderThan purges codes created before the cutoff and reports how many went away.
func (r *ResetCodeRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.PasswordResetCode{})
	return res.RowsAffected, res.Error
}
