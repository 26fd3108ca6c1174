package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidCategory   = errors.New("invalid product category")
	ErrInvalidPriceRange = errors.New("invalid price range")
	ErrInvalidSort       = errors.New("invalid sort option")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
)
