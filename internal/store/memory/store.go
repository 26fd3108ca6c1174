package memory

import (
	"sync"
	"time"

	"petshop-be/internal/cart"
	"petshop-be/internal/order"
	"petshop-be/internal/product"
	"petshop-be/internal/user"
)

// Store keeps every table of the shop in process memory behind one lock so
// multi-table writes are atomic. It backs demo mode and tests.
type Store struct {
	mu sync.RWMutex

	products map[string]*product.Product
	carts    map[string]*cart.Entry
	orders   map[string]*order.Order
	users    map[string]*user.User
	profiles map[string]*user.Profile

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		products: make(map[string]*product.Product),
		carts:    make(map[string]*cart.Entry),
		orders:   make(map[string]*order.Order),
		users:    make(map[string]*user.User),
		profiles: make(map[string]*user.Profile),
		now:      time.Now,
	}
}

// AddProduct inserts or replaces a catalog product.
func (s *Store) AddProduct(p *product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = cloneProduct(p)
}

func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }
func (s *Store) Carts() *CartRepository       { return &CartRepository{s: s} }
func (s *Store) Orders() *OrderRepository     { return &OrderRepository{s: s} }
func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }

func cloneProduct(p *product.Product) *product.Product {
	clone := *p
	if p.Age != nil {
		age := *p.Age
		clone.Age = &age
	}
	return &clone
}

func cloneEntry(e *cart.Entry) *cart.Entry {
	clone := *e
	return &clone
}

func cloneOrder(o *order.Order) *order.Order {
	clone := *o
	clone.Items = append([]order.OrderItem{}, o.Items...)
	if o.Notes != nil {
		notes := *o.Notes
		clone.Notes = &notes
	}
	return &clone
}

func cloneProfile(p *user.Profile) *user.Profile {
	clone := *p
	return &clone
}
