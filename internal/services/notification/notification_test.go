package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/contentgen/internal/lib/paginate"
	"github.com/magabrotheeeer/contentgen/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateNotificationUnlessRecent(ctx context.Context, n models.Notification, window time.Duration) (*models.Notification, bool, error) {
	args := m.Called(ctx, n, window)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Notification), args.Bool(1), args.Error(2)
}

func (m *RepoMock) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*models.Notification, int, error) {
	args := m.Called(ctx, userID, unreadOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Notification), args.Int(1), args.Error(2)
}

func (m *RepoMock) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) MarkNotificationRead(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *RepoMock) MarkAllNotificationsRead(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) DeleteNotification(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *RepoMock) ClearNotifications(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type UsersMock struct{ mock.Mock }

func (m *UsersMock) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestNotificationService_Create(t *testing.T) {
	stored := &models.Notification{ID: "n1", UserID: "u1", Title: "Hi", Message: "There", Type: models.NotificationInfo}
	user := &models.User{ID: "u1", Email: "u1@example.com", Username: "u1"}

	tests := []struct {
		name        string
		typ         string
		setup       func(r *RepoMock, u *UsersMock, p *PublisherMock)
		wantCreated bool
		wantErr     error
	}{
		{
			name: "created and published",
			setup: func(r *RepoMock, u *UsersMock, p *PublisherMock) {
				r.On("CreateNotificationUnlessRecent", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
					return n.Type == models.NotificationInfo && n.UserID == "u1"
				}), DedupWindow).Return(stored, true, nil).Once()
				u.On("GetUserByID", mock.Anything, "u1").Return(user, nil).Once()
				p.On("Publish", mock.Anything, rabbitmq.RoutingKeyEmail, models.NotificationMessage{
					NotificationID: "n1", Email: "u1@example.com", Username: "u1", Title: "Hi", Message: "There",
				}).Return(nil).Once()
			},
			wantCreated: true,
		},
		{
			name: "duplicate is not published",
			typ:  models.NotificationWarning,
			setup: func(r *RepoMock, _ *UsersMock, _ *PublisherMock) {
				r.On("CreateNotificationUnlessRecent", mock.Anything, mock.Anything, DedupWindow).Return(stored, false, nil).Once()
			},
			wantCreated: false,
		},
		{
			name: "publish failure is swallowed",
			setup: func(r *RepoMock, u *UsersMock, p *PublisherMock) {
				r.On("CreateNotificationUnlessRecent", mock.Anything, mock.Anything, DedupWindow).Return(stored, true, nil).Once()
				u.On("GetUserByID", mock.Anything, "u1").Return(user, nil).Once()
				p.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
			wantCreated: true,
		},
		{
			name:    "invalid type",
			typ:     "loud",
			setup:   func(_ *RepoMock, _ *UsersMock, _ *PublisherMock) {},
			wantErr: ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, u, p := new(RepoMock), new(UsersMock), new(PublisherMock)
			tt.setup(r, u, p)
			svc := NewNotificationService(r, u, p, newNoopLogger())

			n, created, err := svc.Create(context.Background(), "u1", "Hi", "There", tt.typ)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
			assert.Equal(t, "n1", n.ID)
			r.AssertExpectations(t)
			u.AssertExpectations(t)
			p.AssertExpectations(t)
		})
	}
}

func TestNotificationService_CreateWithoutPublisher(t *testing.T) {
	r := new(RepoMock)
	r.On("CreateNotificationUnlessRecent", mock.Anything, mock.Anything, DedupWindow).
		Return(&models.Notification{ID: "n1"}, true, nil).Once()

	svc := NewNotificationService(r, new(UsersMock), nil, newNoopLogger())
	_, created, err := svc.Create(context.Background(), "u1", "a", "b", "")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestNotificationService_ListSetsTimeAgo(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	items := []*models.Notification{
		{ID: "1", CreatedAt: now.Add(-10 * time.Second)},
		{ID: "2", CreatedAt: now.Add(-5 * time.Minute)},
		{ID: "3", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "4", CreatedAt: now.Add(-72 * time.Hour)},
	}
	r := new(RepoMock)
	r.On("ListNotifications", mock.Anything, "u1", true, 10, 10).Return(items, 14, nil).Once()

	svc := NewNotificationService(r, new(UsersMock), nil, newNoopLogger())
	svc.now = func() time.Time { return now }

	page, err := svc.List(context.Background(), "u1", true, paginate.New(2, 10))
	require.NoError(t, err)
	assert.Equal(t, 14, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "just now", page.Items[0].TimeAgo)
	assert.Equal(t, "5 minutes ago", page.Items[1].TimeAgo)
	assert.Equal(t, "2 hours ago", page.Items[2].TimeAgo)
	assert.Equal(t, "3 days ago", page.Items[3].TimeAgo)
}

func TestNotificationService_Mutations(t *testing.T) {
	r := new(RepoMock)
	r.On("MarkNotificationRead", mock.Anything, "u1", "n1").Return(nil).Once()
	r.On("MarkAllNotificationsRead", mock.Anything, "u1").Return(3, nil).Once()
	r.On("DeleteNotification", mock.Anything, "u1", "n2").Return(errors.New("not found")).Once()
	r.On("ClearNotifications", mock.Anything, "u1").Return(5, nil).Once()
	r.On("CountUnreadNotifications", mock.Anything, "u1").Return(7, nil).Once()

	svc := NewNotificationService(r, new(UsersMock), nil, newNoopLogger())
	ctx := context.Background()

	require.NoError(t, svc.MarkRead(ctx, "u1", "n1"))
	n, err := svc.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Error(t, svc.Remove(ctx, "u1", "n2"))
	n, err = svc.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	n, err = svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	r.AssertExpectations(t)
}
