package memory

import (
	"context"
	"sort"

	"petshop-be/internal/cart"

	"github.com/google/uuid"
)

type CartRepository struct {
	s *Store
}

var _ cart.Repository = (*CartRepository)(nil)

// ListByUser returns the user's entries oldest first with current stock.
func (r *CartRepository) ListByUser(_ context.Context, userID string) ([]*cart.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*cart.Entry, 0)
	for _, e := range r.s.carts {
		if e.UserID != userID {
			continue
		}
		p, ok := r.s.products[e.ProductID]
		if !ok {
			continue
		}
		clone := cloneEntry(e)
		clone.Stock = p.Stock
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *CartRepository) GetByUserAndProduct(_ context.Context, userID, productID string) (*cart.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.carts {
		if e.UserID == userID && e.ProductID == productID {
			return cloneEntry(e), nil
		}
	}
	return nil, nil
}

func (r *CartRepository) Create(_ context.Context, params cart.CreateEntryParams) (*cart.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	e := &cart.Entry{
		ID:          uuid.NewString(),
		UserID:      params.UserID,
		ProductID:   params.ProductID,
		ProductName: params.ProductName,
		UnitPrice:   params.UnitPrice,
		Quantity:    params.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.carts[e.ID] = e
	return cloneEntry(e), nil
}

func (r *CartRepository) UpdateQuantity(_ context.Context, userID, entryID string, quantity int) (*cart.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.carts[entryID]
	if !ok || e.UserID != userID {
		return nil, cart.ErrCartItemNotFound
	}
	e.Quantity = quantity
	e.UpdatedAt = r.s.now()
	return cloneEntry(e), nil
}

func (r *CartRepository) Remove(_ context.Context, userID, entryID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.carts[entryID]
	if !ok || e.UserID != userID {
		return cart.ErrCartItemNotFound
	}
	delete(r.s.carts, entryID)
	return nil
}

func (r *CartRepository) ClearCart(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, e := range r.s.carts {
		if e.UserID == userID {
			delete(r.s.carts, id)
		}
	}
	return nil
}
