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
	"github.com/magabrotheeeer/contentgen/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *RepoMock) ActivatePlan(ctx context.Context, payment models.Payment, sub models.Subscription) (string, error) {
	args := m.Called(ctx, payment, sub)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) SetSubscriptionStatus(ctx context.Context, userID, status string) error {
	return m.Called(ctx, userID, status).Error(0)
}

func (m *RepoMock) ListPaymentsByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Payment, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Payment), args.Int(1), args.Error(2)
}

type HistoryMock struct{ mock.Mock }

func (m *HistoryMock) Record(ctx context.Context, userID, action string, contentID *string, details string) error {
	return m.Called(ctx, userID, action, contentID, details).Error(0)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) Create(ctx context.Context, userID, title, message, typ string) (*models.Notification, bool, error) {
	args := m.Called(ctx, userID, title, message, typ)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Notification), args.Bool(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSubscriptionService_Get(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscription", mock.Anything, "u1").
		Return(&models.Subscription{UserID: "u1", Plan: models.PlanPro, Credits: 42}, nil).Once()

	svc := NewSubscriptionService(repo, new(HistoryMock), new(NotifierMock), newNoopLogger())
	info, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 42, info.Credits)
	assert.Equal(t, 100, info.PlanDetails.Credits)
	assert.InDelta(t, 19.0, info.PlanDetails.Price, 0.001)
}

func TestSubscriptionService_Checkout(t *testing.T) {
	now := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		plan    string
		setup   func(r *RepoMock, h *HistoryMock, n *NotifierMock)
		wantErr error
	}{
		{
			name: "business",
			plan: models.PlanBusiness,
			setup: func(r *RepoMock, h *HistoryMock, n *NotifierMock) {
				r.On("ActivatePlan", mock.Anything,
					mock.MatchedBy(func(p models.Payment) bool {
						return p.Amount == 49 && p.Status == models.PaymentCompleted && p.Plan == models.PlanBusiness
					}),
					mock.MatchedBy(func(s models.Subscription) bool {
						return s.Credits == 500 && s.Status == models.SubscriptionActive &&
							s.RenewsAt.Equal(now.AddDate(0, 1, 0))
					}),
				).Return("p1", nil).Once()
				h.On("Record", mock.Anything, "u1", models.ActionSubscriptionUpgraded, (*string)(nil), models.PlanBusiness).Return(nil).Once()
				n.On("Create", mock.Anything, "u1", "Payment received", mock.Anything, models.NotificationSuccess).
					Return(&models.Notification{}, true, nil).Once()
			},
		},
		{
			name:    "free plan is not purchasable",
			plan:    models.PlanFree,
			setup:   func(_ *RepoMock, _ *HistoryMock, _ *NotifierMock) {},
			wantErr: ErrInvalidPlan,
		},
		{
			name:    "unknown plan",
			plan:    "enterprise",
			setup:   func(_ *RepoMock, _ *HistoryMock, _ *NotifierMock) {},
			wantErr: ErrInvalidPlan,
		},
		{
			name: "storage error",
			plan: models.PlanPro,
			setup: func(r *RepoMock, _ *HistoryMock, _ *NotifierMock) {
				r.On("ActivatePlan", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, h, n := new(RepoMock), new(HistoryMock), new(NotifierMock)
			tt.setup(r, h, n)
			svc := NewSubscriptionService(r, h, n, newNoopLogger())
			svc.now = func() time.Time { return now }

			res, err := svc.Checkout(context.Background(), "u1", tt.plan)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "p1", res.PaymentID)
			assert.Equal(t, models.PlanBusiness, res.Subscription.Plan)
			r.AssertExpectations(t)
			h.AssertExpectations(t)
			n.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_Cancel(t *testing.T) {
	t.Run("active paid plan", func(t *testing.T) {
		r, h, n := new(RepoMock), new(HistoryMock), new(NotifierMock)
		r.On("GetSubscription", mock.Anything, "u1").
			Return(&models.Subscription{UserID: "u1", Plan: models.PlanPro, Status: models.SubscriptionActive, Credits: 7}, nil).Once()
		r.On("SetSubscriptionStatus", mock.Anything, "u1", models.SubscriptionCanceled).Return(nil).Once()
		h.On("Record", mock.Anything, "u1", models.ActionSubscriptionCanceled, (*string)(nil), models.PlanPro).Return(nil).Once()
		n.On("Create", mock.Anything, "u1", "Subscription canceled", mock.Anything, models.NotificationInfo).
			Return(&models.Notification{}, true, nil).Once()

		info, err := NewSubscriptionService(r, h, n, newNoopLogger()).Cancel(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, models.SubscriptionCanceled, info.Status)
		assert.Equal(t, 7, info.Credits)
		r.AssertExpectations(t)
	})

	t.Run("free plan", func(t *testing.T) {
		r := new(RepoMock)
		r.On("GetSubscription", mock.Anything, "u1").
			Return(&models.Subscription{Plan: models.PlanFree, Status: models.SubscriptionTrial}, nil).Once()

		_, err := NewSubscriptionService(r, new(HistoryMock), new(NotifierMock), newNoopLogger()).Cancel(context.Background(), "u1")
		assert.ErrorIs(t, err, ErrNotCancelable)
	})
}

func TestSubscriptionService_ListPayments(t *testing.T) {
	r := new(RepoMock)
	r.On("ListPaymentsByUser", mock.Anything, "u1", 10, 0).Return([]*models.Payment{{ID: "p1"}}, 1, nil).Once()

	page, err := NewSubscriptionService(r, new(HistoryMock), new(NotifierMock), newNoopLogger()).
		ListPayments(context.Background(), "u1", paginate.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}
