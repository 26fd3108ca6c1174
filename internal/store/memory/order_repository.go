package memory

import (
	"context"
	"fmt"
	"sort"

	"petshop-be/internal/order"
)

type OrderRepository struct {
	s *Store
}

var _ order.Repository = (*OrderRepository)(nil)

func (r *OrderRepository) CreateOrder(_ context.Context, o *order.Order) error {
	if o == nil || o.ID == "" {
		return fmt.Errorf("%w: id is required", order.ErrOrderPersistence)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.orders[o.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", order.ErrOrderPersistence, o.ID)
	}
	header := cloneOrder(o)
	header.Items = []order.OrderItem{}
	r.s.orders[o.ID] = header
	return nil
}

func (r *OrderRepository) CreateOrderItems(_ context.Context, items []order.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, it := range items {
		if _, ok := r.s.orders[it.OrderID]; !ok {
			return fmt.Errorf("%w: unknown order %s", order.ErrOrderItemPersistence, it.OrderID)
		}
	}
	for _, it := range items {
		o := r.s.orders[it.OrderID]
		o.Items = append(o.Items, it)
	}
	return nil
}

func (r *OrderRepository) DeleteOrder(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(r.s.orders, id)
	return nil
}

// CreateOrderTx checks every product before changing anything, so a
// rejected order leaves the store untouched.
func (r *OrderRepository) CreateOrderTx(_ context.Context, o *order.Order) error {
	if o == nil || o.ID == "" {
		return fmt.Errorf("%w: id is required", order.ErrOrderPersistence)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.orders[o.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", order.ErrOrderPersistence, o.ID)
	}

	need := make(map[string]int)
	for _, it := range o.Items {
		need[it.ProductID] += it.Quantity
	}
	ids := make([]string, 0, len(need))
	for id := range need {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p, ok := r.s.products[id]
		if !ok || p.Stock < need[id] {
			return fmt.Errorf("%w: product %s", order.ErrInsufficientStock, id)
		}
	}
	for _, id := range ids {
		if _, err := r.s.decrementLocked(id, need[id]); err != nil {
			return fmt.Errorf("%w: %v", order.ErrOrderPersistence, err)
		}
	}

	r.s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*order.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	return r.list(func(o *order.Order) bool { return o.UserID == userID }, 0, 0), nil
}

func (r *OrderRepository) ListAll(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	limit := 20
	page := 1
	if filter.Limit > 0 {
		limit = min(filter.Limit, 100)
	}
	if filter.Page > 0 {
		page = filter.Page
	}

	match := func(o *order.Order) bool {
		return filter.Status == nil || o.Status == *filter.Status
	}
	return r.list(match, limit, (page-1)*limit), nil
}

// list returns matching orders newest first. A zero limit means no paging.
func (r *OrderRepository) list(match func(*order.Order) bool, limit, offset int) []*order.Order {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*order.Order, 0)
	for _, o := range r.s.orders {
		if match(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if limit == 0 {
		return out
	}
	if offset >= len(out) {
		return []*order.Order{}
	}
	return out[offset:min(offset+limit, len(out))]
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id string, from, to order.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok || o.Status != from {
		return order.ErrStatusConflict
	}
	o.Status = to
	o.UpdatedAt = r.s.now()
	return nil
}
