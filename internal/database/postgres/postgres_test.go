package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"juntell/careers-gateway/internal/application"
)

func setupTestRepo(t *testing.T) *ApplicationRepo {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, dsn)
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	t.Cleanup(pool.Close)

	repo := NewApplicationRepo(pool)
	require.NoError(t, repo.Migrate(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE applications`)
	require.NoError(t, err)
	return repo
}

func TestApplicationRepo_CreateGetList(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	dept := "engineering"

	app := &application.Application{
		ID:         uuid.NewString(),
		JobID:      "job-42",
		Department: &dept,
		Name:       "Lee",
		Phone:      "010-1234-5678",
		Email:      "lee@example.com",
		Birthday:   19950101,
		Status:     application.StatusPending,
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Create(ctx, app))

	got, err := repo.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.Name, got.Name)
	require.NotNil(t, got.Department)
	assert.Equal(t, dept, *got.Department)
	assert.Nil(t, got.Referrer)
	assert.True(t, app.CreatedAt.Equal(got.CreatedAt))

	list, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestApplicationRepo_GetNotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestApplicationRepo_ImplementsRepository(t *testing.T) {
	var _ application.Repository = (*ApplicationRepo)(nil)
}
