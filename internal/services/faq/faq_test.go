package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/contentgen/internal/cache"
	"github.com/magabrotheeeer/contentgen/internal/config"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListFAQs(ctx context.Context) ([]*models.FAQ, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FAQ), args.Error(1)
}

func (m *RepoMock) CreateFAQ(ctx context.Context, f models.FAQ) (string, error) {
	args := m.Called(ctx, f)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) UpdateFAQ(ctx context.Context, f models.FAQ) error {
	return m.Called(ctx, f).Error(0)
}

func (m *RepoMock) DeleteFAQ(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func setup(t *testing.T) (*FAQService, *RepoMock, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	repo := new(RepoMock)
	return NewFAQService(repo, c, slog.New(slog.NewTextHandler(io.Discard, nil))), repo, mr
}

func TestFAQService_ListIsCached(t *testing.T) {
	svc, repo, mr := setup(t)
	faqs := []*models.FAQ{{ID: "1", Question: "Q1", Position: 1}, {ID: "2", Question: "Q2", Position: 2}}
	repo.On("ListFAQs", mock.Anything).Return(faqs, nil).Once()

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, faqs, first)
	assert.True(t, mr.Exists(CacheKey))

	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, faqs, second)
	repo.AssertNumberOfCalls(t, "ListFAQs", 1)
}

func TestFAQService_MutationsInvalidateCache(t *testing.T) {
	svc, repo, mr := setup(t)
	ctx := context.Background()
	req := models.FAQRequest{Question: "Q", Answer: "A", Category: "general", Position: 3}

	require.NoError(t, mr.Set(CacheKey, "[]"))
	repo.On("CreateFAQ", mock.Anything, models.FAQ{Question: "Q", Answer: "A", Category: "general", Position: 3}).Return("f1", nil).Once()
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "f1", created.ID)
	assert.False(t, mr.Exists(CacheKey))

	require.NoError(t, mr.Set(CacheKey, "[]"))
	repo.On("UpdateFAQ", mock.Anything, models.FAQ{ID: "f1", Question: "Q", Answer: "A", Category: "general", Position: 3}).Return(nil).Once()
	_, err = svc.Update(ctx, "f1", req)
	require.NoError(t, err)
	assert.False(t, mr.Exists(CacheKey))

	require.NoError(t, mr.Set(CacheKey, "[]"))
	repo.On("DeleteFAQ", mock.Anything, "f1").Return(nil).Once()
	require.NoError(t, svc.Remove(ctx, "f1"))
	assert.False(t, mr.Exists(CacheKey))

	repo.AssertExpectations(t)
}
