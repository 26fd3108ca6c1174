package order

import "errors"

var (
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidDeliveryDate     = errors.New("delivery date must be after today")
	ErrInvalidCustomerInfo     = errors.New("invalid customer info")
	ErrOrderPersistence        = errors.New("failed to save order")
	ErrOrderItemPersistence    = errors.New("failed to save order items")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrOrderNotFound           = errors.New("order not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrStatusConflict          = errors.New("order status changed concurrently")
)
