package memory

import (
	"context"
	"sort"

	"petshop-be/internal/product"
)

type ProductRepository struct {
	s *Store
}

var _ product.Repository = (*ProductRepository)(nil)

func (r *ProductRepository) ListActive(_ context.Context) ([]*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*product.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if p.IsActive {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *ProductRepository) GetStock(ctx context.Context, id string) (int, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}

func (r *ProductRepository) SetStock(_ context.Context, id string, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return product.ErrProductNotFound
	}
	p.Stock = max(0, stock)
	p.UpdatedAt = r.s.now()
	return nil
}

func (r *ProductRepository) Restock(_ context.Context, id string, qty int) (*product.Product, error) {
	if qty < 1 {
		return nil, product.ErrInvalidQuantity
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	p.Stock += qty
	p.UpdatedAt = r.s.now()
	return cloneProduct(p), nil
}

// decrementLocked must be called with s.mu held for writing.
func (s *Store) decrementLocked(id string, qty int) (bool, error) {
	p, ok := s.products[id]
	if !ok {
		return false, product.ErrProductNotFound
	}
	if p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	p.UpdatedAt = s.now()
	return true, nil
}
