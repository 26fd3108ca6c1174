package graph

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"petshop-be/internal/auth"
	"petshop-be/internal/cart"
	"petshop-be/internal/graph/model"
	"petshop-be/internal/logger"
	"petshop-be/internal/order"
	"petshop-be/internal/product"
	"petshop-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorPresenter_Codes(t *testing.T) {
	t.Cleanup(logger.Replace(zap.NewNop()))

	tests := []struct {
		err  error
		code string
	}{
		{order.ErrEmptyCart, CodeBadUserInput},
		{fmt.Errorf("%w: expected YYYY-MM-DD", order.ErrInvalidDeliveryDate), CodeBadUserInput},
		{product.ErrInvalidQuantity, CodeBadUserInput},
		{cart.ErrInvalidQuantity, CodeBadUserInput},
		{user.ErrInvalidInput, CodeBadUserInput},
		{ErrUnauthenticated, CodeUnauthenticated},
		{user.ErrInvalidCredentials, CodeUnauthenticated},
		{order.ErrUnauthorized, CodeUnauthenticated},
		{ErrForbidden, CodeForbidden},
		{order.ErrOrderNotFound, CodeNotFound},
		{product.ErrProductNotFound, CodeNotFound},
		{order.ErrInsufficientStock, CodeConflict},
		{cart.ErrInsufficientStock, CodeConflict},
		{order.ErrInvalidStatusTransition, CodeConflict},
		{user.ErrEmailExists, CodeConflict},
		{ErrRateLimited, CodeRateLimited},
		{order.ErrOrderItemPersistence, CodeInternal},
		{errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := ErrorPresenter(context.Background(), tt.err)
			assert.Equal(t, tt.code, got.Extensions["code"])
		})
	}
}

func TestErrorPresenter_HidesCauses(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))

	t.Run("persistence failure reports the sentinel only", func(t *testing.T) {
		err := fmt.Errorf("%w: pq: duplicate key value violates unique constraint \"orders_pkey\"", order.ErrOrderPersistence)

		got := ErrorPresenter(context.Background(), err)

		assert.Equal(t, order.ErrOrderPersistence.Error(), got.Message)
		assert.NotContains(t, got.Message, "pq:")
		assert.Equal(t, CodeInternal, got.Extensions["code"])

		entries := logs.FilterMessage("resolver failed").TakeAll()
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].ContextMap()["error"], "orders_pkey")
	})

	t.Run("unknown errors are masked", func(t *testing.T) {
		got := ErrorPresenter(context.Background(), errors.New("pq: connection refused"))

		assert.Equal(t, internalMessage, got.Message)
		assert.Equal(t, 1, logs.FilterMessage("resolver failed").Len())
	})

	t.Run("domain errors keep their message", func(t *testing.T) {
		got := ErrorPresenter(context.Background(), order.ErrEmptyCart)

		assert.Equal(t, order.ErrEmptyCart.Error(), got.Message)
	})

	t.Run("validation errors pass through", func(t *testing.T) {
		in := gqlerror.Errorf("Cannot query field \"price\" on type \"Cart\".")

		got := ErrorPresenter(context.Background(), in)

		assert.Equal(t, in.Message, got.Message)
		assert.NotContains(t, got.Extensions, "code")
	})
}

func TestRecoverFunc(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))

	err := RecoverFunc(context.Background(), "nil map")

	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("resolver panic").Len())
	assert.Equal(t, internalMessage, ErrorPresenter(context.Background(), err).Message)
}

func TestAuthDirective(t *testing.T) {
	next := func(ctx context.Context) (interface{}, error) { return "ok", nil }
	admin := model.RoleAdmin

	userCtx := auth.WithSession(context.Background(), auth.Session{UserID: "u-1", Role: auth.RoleUser})
	adminCtx := auth.WithSession(context.Background(), auth.Session{UserID: "a-1", Role: auth.RoleAdmin})

	tests := []struct {
		name    string
		ctx     context.Context
		role    *model.Role
		wantErr error
	}{
		{"anonymous", context.Background(), nil, ErrUnauthenticated},
		{"anonymous admin field", context.Background(), &admin, ErrUnauthenticated},
		{"user", userCtx, nil, nil},
		{"user on admin field", userCtx, &admin, ErrForbidden},
		{"admin", adminCtx, &admin, nil},
		{"admin on user field", adminCtx, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := AuthDirective(tt.ctx, nil, next, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "ok", res)
		})
	}
}
