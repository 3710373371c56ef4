package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/contentgen/internal/lib/paginate"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateHistoryEntry(ctx context.Context, e models.HistoryEntry) (string, error) {
	args := m.Called(ctx, e)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) ListHistory(ctx context.Context, userID string, limit, offset int) ([]*models.HistoryEntry, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.HistoryEntry), args.Int(1), args.Error(2)
}

func (m *RepoMock) DeleteHistoryEntry(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *RepoMock) ClearHistory(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func TestHistoryService_Record(t *testing.T) {
	contentID := "c1"
	repo := new(RepoMock)
	repo.On("CreateHistoryEntry", mock.Anything, models.HistoryEntry{
		UserID: "u1", Action: models.ActionContentGenerated, ContentID: &contentID, Details: "Title",
	}).Return("h1", nil).Once()
	repo.On("CreateHistoryEntry", mock.Anything, mock.Anything).Return("", errors.New("db error")).Once()

	svc := NewHistoryService(repo)
	require.NoError(t, svc.Record(context.Background(), "u1", models.ActionContentGenerated, &contentID, "Title"))
	assert.Error(t, svc.Record(context.Background(), "u1", models.ActionSubscriptionCanceled, nil, ""))
	repo.AssertExpectations(t)
}

func TestHistoryService_List(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListHistory", mock.Anything, "u1", 10, 0).Return(nil, 0, nil).Once()

	page, err := NewHistoryService(repo).List(context.Background(), "u1", paginate.New(1, 10))
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}

func TestHistoryService_RemoveAndClear(t *testing.T) {
	repo := new(RepoMock)
	repo.On("DeleteHistoryEntry", mock.Anything, "u1", "h1").Return(nil).Once()
	repo.On("ClearHistory", mock.Anything, "u1").Return(4, nil).Once()

	svc := NewHistoryService(repo)
	require.NoError(t, svc.Remove(context.Background(), "u1", "h1"))
	n, err := svc.Clear(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	repo.AssertExpectations(t)
}
