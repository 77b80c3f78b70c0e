package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupResetCodeTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	// Codes are unique per user only; two users may hold the same code.
	schema := `
CREATE TABLE IF NOT EXISTS password_reset_codes (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  code TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestResetCodeRepositoryAllowsSameCodeAcrossUsers(t *testing.T) {
	db := setupResetCodeTestDB(t)
	repo := NewResetCodeRepository(db)

	alice := uuid.New()
	bob := uuid.New()

	first, err := repo.Create(context.Background(), alice, "12345")
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), bob, "12345")
	require.NoError(t, err)

	found, err := repo.FindByUserAndCode(context.Background(), alice, "12345")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	found, err = repo.FindByUserAndCode(context.Background(), bob, "12345")
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)
}

func TestResetCodeRepositoryLookupIsUserScoped(t *testing.T) {
	db := setupResetCodeTestDB(t)
	repo := NewResetCodeRepository(db)

	owner := uuid.New()
	_, err := repo.Create(context.Background(), owner, "54321")
	require.NoError(t, err)

	_, err = repo.FindByUserAndCode(context.Background(), uuid.New(), "54321")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestResetCodeRepositoryDeleteByUser(t *testing.T) {
	db := setupResetCodeTestDB(t)
	repo := NewResetCodeRepository(db)

	owner := uuid.New()
	other := uuid.New()
	_, err := repo.Create(context.Background(), owner, "11111")
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), other, "22222")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByUser(context.Background(), owner))

	_, err = repo.FindByUserAndCode(context.Background(), owner, "11111")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	survivor, err := repo.FindLatestByUser(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, "22222", survivor.Code)
	assert.WithinDuration(t, time.Now(), survivor.CreatedAt, time.Minute)
}
