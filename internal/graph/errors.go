package graph

import (
	"context"
	"errors"
	"fmt"

	"petshop-be/internal/cart"
	"petshop-be/internal/logger"
	"petshop-be/internal/order"
	"petshop-be/internal/product"
	"petshop-be/internal/user"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

var (
	ErrUnauthenticated = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden: admin only")
	ErrRateLimited     = errors.New("too many requests")
)

// Error codes reported under extensions.code.
const (
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL"
)

const internalMessage = "internal server error"

// persistenceErrors are reported by their sentinel text alone. The wrapped
// driver error is logged, never returned.
var persistenceErrors = []error{
	order.ErrOrderPersistence,
	order.ErrOrderItemPersistence,
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrProductInactive),
		errors.Is(err, product.ErrInvalidCategory),
		errors.Is(err, product.ErrInvalidPriceRange),
		errors.Is(err, product.ErrInvalidSort),
		errors.Is(err, product.ErrInvalidQuantity),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidDeliveryDate),
		errors.Is(err, order.ErrInvalidCustomerInfo),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, user.ErrInvalidInput):
		return CodeBadUserInput
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, cart.ErrUserRequired),
		errors.Is(err, order.ErrUnauthorized),
		errors.Is(err, user.ErrInvalidCredentials):
		return CodeUnauthenticated
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, user.ErrProfileNotFound):
		return CodeNotFound
	case errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, order.ErrInvalidStatusTransition),
		errors.Is(err, order.ErrStatusConflict),
		errors.Is(err, user.ErrEmailExists):
		return CodeConflict
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	}
	return CodeInternal
}

// ErrorPresenter maps service sentinels to extension codes. Internal errors
// are logged in full and reported without their cause.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	gqlErr := graphql.DefaultErrorPresenter(ctx, err)

	// validation and parse errors carry no wrapped cause
	var gerr *gqlerror.Error
	if errors.As(err, &gerr) && gerr.Err == nil {
		return gqlErr
	}

	code := errorCode(err)
	if code == CodeInternal {
		log := logger.FromCtx(ctx)
		if path := graphql.GetPath(ctx); path != nil {
			log = log.With(zap.String("path", path.String()))
		}
		gqlErr.Message = internalMessage
		for _, sentinel := range persistenceErrors {
			if errors.Is(err, sentinel) {
				gqlErr.Message = sentinel.Error()
				break
			}
		}
		log.Error("resolver failed", zap.Error(err))
	}

	if gqlErr.Extensions == nil {
		gqlErr.Extensions = map[string]interface{}{}
	}
	gqlErr.Extensions["code"] = code
	return gqlErr
}

// RecoverFunc reports resolver panics as internal errors.
func RecoverFunc(ctx context.Context, p interface{}) error {
	logger.FromCtx(ctx).Error("resolver panic", zap.Any("panic", p), zap.Stack("stack"))
	return fmt.Errorf("panic: %v", p)
}
