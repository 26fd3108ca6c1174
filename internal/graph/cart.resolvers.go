package graph

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.
// Code generated by github.com/99designs/gqlgen version v0.17.81

import (
	"context"

	"petshop-be/internal/cart"
	"petshop-be/internal/graph/model"
)

// AddToCart is the resolver for the addToCart field.
func (r *mutationResolver) AddToCart(ctx context.Context, productID string, quantity int) (*model.CartItem, error) {
	ledger, err := r.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := ledger.Add(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}
	return toGraphQLCartItem(entry), nil
}

// UpdateCartItem is the resolver for the updateCartItem field.
func (r *mutationResolver) UpdateCartItem(ctx context.Context, id string, quantity int) (*model.CartItem, error) {
	ledger, err := r.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := ledger.SetQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	return toGraphQLCartItem(entry), nil
}

// RemoveCartItem is the resolver for the removeCartItem field.
func (r *mutationResolver) RemoveCartItem(ctx context.Context, id string) (bool, error) {
	ledger, err := r.ledgerFor(ctx)
	if err != nil {
		return false, err
	}

	if err := ledger.Remove(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// Cart is the resolver for the cart field.
func (r *queryResolver) Cart(ctx context.Context) (*model.Cart, error) {
	ledger, err := r.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return toGraphQLCart(snap), nil
}

// ledgerFor builds the cart of the signed-in user.
func (r *Resolver) ledgerFor(ctx context.Context) (*cart.Ledger, error) {
	return cart.NewLedger(r.Carts, r.Catalog, sessionFrom(ctx).UserID, cart.WithStockCheck(r.EnforceStock))
}
