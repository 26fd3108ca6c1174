package cart

import "errors"

var (
	// -- Validation & Input --
	ErrUserRequired    = errors.New("user ID is required")
	ErrInvalidQuantity = errors.New("invalid cart quantity")

	// -- Resource State --
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrProductInactive   = errors.New("product is not available")
	ErrInsufficientStock = errors.New("insufficient stock")

	// -- Database & Operation Failures --
	ErrFailedCreateCartItem = errors.New("failed to create cart item")
	ErrFailedUpdateCart     = errors.New("failed to update cart item")
	ErrFailedClearCart      = errors.New("failed to clear cart")
)
