package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/repositories"
)

func TestEmployeeNumbers(t *testing.T) {
	svc := NewEmployeeNumberService(&fakeEmployeeRepo{})
	ctx := context.Background()

	n, err := svc.Add(ctx, 1, "  E-100 ")
	require.NoError(t, err)
	assert.Equal(t, "E-100", n.Number)

	_, err = svc.Add(ctx, 1, "e-100")
	assert.ErrorIs(t, err, repositories.ErrConflict)

	_, err = svc.Add(ctx, 1, "   ")
	assert.ErrorIs(t, err, ErrValidationFailed)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, svc.Delete(ctx, 2, n.ID), ErrNotFound, "number belongs to another tournament")
	require.NoError(t, svc.Delete(ctx, 1, n.ID))
}

type fakeActivityRepo struct {
	logs      []models.ActivityLog
	lastLimit int
}

func (r *fakeActivityRepo) ListByTournament(_ context.Context, _ int, limit int) ([]models.ActivityLog, error) {
	r.lastLimit = limit
	return append([]models.ActivityLog(nil), r.logs...), nil
}

func TestActivityNewestFirst(t *testing.T) {
	repo := &fakeActivityRepo{}
	for i := 0; i < 5; i++ {
		repo.logs = append(repo.logs, models.ActivityLog{ID: i + 1, CreatedAt: testNow.Add(time.Duration(i) * time.Minute)})
	}
	svc := NewActivityService(repo)

	logs, err := svc.List(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, []int{5, 4, 3}, []int{logs[0].ID, logs[1].ID, logs[2].ID})

	_, err = svc.List(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultActivityLimit, repo.lastLimit)

	_, err = svc.List(context.Background(), 1, 10_000)
	require.NoError(t, err)
	assert.Equal(t, MaxActivityLimit, repo.lastLimit)
}
