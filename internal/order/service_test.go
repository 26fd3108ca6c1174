package order

import (
	"context"
	"testing"

	"petshop-be/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_GetOrderDetail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo)
	repo.On("GetByID", ctx, "o-1").Return(&Order{ID: "o-1", UserID: "u-1"}, nil)

	t.Run("Owner", func(t *testing.T) {
		o, err := svc.GetOrderDetail(ctx, auth.Session{UserID: "u-1", Role: auth.RoleUser}, "o-1")
		require.NoError(t, err)
		assert.Equal(t, "o-1", o.ID)
	})

	t.Run("Admin", func(t *testing.T) {
		_, err := svc.GetOrderDetail(ctx, auth.Session{UserID: "admin", Role: auth.RoleAdmin}, "o-1")
		assert.NoError(t, err)
	})

	t.Run("OtherUser", func(t *testing.T) {
		_, err := svc.GetOrderDetail(ctx, auth.Session{UserID: "u-2", Role: auth.RoleUser}, "o-1")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_ListMine(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.ListMine(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	repo.On("ListByUser", ctx, "u-1").Return([]*Order{{ID: "o-2"}, {ID: "o-1"}}, nil)
	orders, err := svc.ListMine(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("GetByID", ctx, "o-1").Return(&Order{ID: "o-1", Status: StatusPending}, nil)
		repo.On("UpdateStatus", ctx, "o-1", StatusPending, StatusConfirmed).Return(nil)

		o, err := svc.UpdateOrderStatus(ctx, "o-1", StatusConfirmed)

		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, o.Status)
		repo.AssertExpectations(t)
	})

	t.Run("InvalidTransition", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("GetByID", ctx, "o-1").Return(&Order{ID: "o-1", Status: StatusDelivered}, nil)

		_, err := svc.UpdateOrderStatus(ctx, "o-1", StatusCancelled)

		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Conflict", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("GetByID", ctx, "o-1").Return(&Order{ID: "o-1", Status: StatusConfirmed}, nil)
		repo.On("UpdateStatus", ctx, "o-1", StatusConfirmed, StatusShipped).Return(ErrStatusConflict)

		_, err := svc.UpdateOrderStatus(ctx, "o-1", StatusShipped)
		assert.ErrorIs(t, err, ErrStatusConflict)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("GetByID", ctx, "missing").Return(nil, ErrOrderNotFound)

		_, err := svc.UpdateOrderStatus(ctx, "missing", StatusShipped)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
