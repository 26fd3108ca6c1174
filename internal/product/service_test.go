package product

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListActive(ctx context.Context) ([]*Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetStock(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) SetStock(ctx context.Context, id string, stock int) error {
	return m.Called(ctx, id, stock).Error(0)
}

func (m *MockRepository) Restock(ctx context.Context, id string, qty int) (*Product, error) {
	args := m.Called(ctx, id, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func catalog() []*Product {
	return []*Product{
		{ID: "1", Name: "Persian Cat - Snow White", Description: "Long white fur", Category: CategoryCats, Price: 2500000, Stock: 2},
		{ID: "3", Name: "Canary Bird - Yellow", Description: "Bright singing canary", Category: CategoryBirds, Price: 350000, Stock: 5},
		{ID: "4", Name: "Goldfish - Orange", Description: "Classic goldfish", Category: CategoryFish, Price: 15000, Stock: 20},
		{ID: "5", Name: "Premium Cat Food - 5kg", Description: "Dry cat food", Category: CategoryFood, Price: 120000, Stock: 15},
		{ID: "6", Name: "Cat Collar - Leather", Description: "Adjustable strap and bell", Category: CategoryAccessories, Price: 45000, Stock: 8},
	}
}

func ids(ps []*Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		query Query
		want  []string
	}{
		{"default sorts by name", Query{}, []string{"3", "6", "4", "1", "5"}},
		{"search name and description", Query{Search: "CAT"}, []string{"6", "1", "5"}},
		{"search description only", Query{Search: "singing"}, []string{"3"}},
		{"category", Query{Category: CategoryFish}, []string{"4"}},
		{"under 500", Query{PriceRange: PriceUnder500}, []string{"6", "4"}},
		{"500 to 2000", Query{PriceRange: Price500To2000}, []string{"5"}},
		{"2000 to 10000", Query{PriceRange: Price2000To10k}, []string{"3"}},
		{"above 10000", Query{PriceRange: PriceAbove10000}, []string{"1"}},
		{"price low", Query{Sort: SortPriceLow}, []string{"4", "6", "5", "3", "1"}},
		{"price high", Query{Sort: SortPriceHigh}, []string{"1", "3", "5", "6", "4"}},
		{"stock", Query{Sort: SortStock}, []string{"4", "5", "6", "3", "1"}},
		{"combined", Query{Search: "cat", Category: CategoryCats, Sort: SortPriceLow}, []string{"1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("ListActive", ctx).Return(catalog(), nil)

			got, err := NewService(repo).List(ctx, tc.query)

			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestService_List_InvalidQuery(t *testing.T) {
	ctx := context.Background()
	svc := NewService(new(MockRepository))

	_, err := svc.List(ctx, Query{Category: "dogs"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = svc.List(ctx, Query{PriceRange: "cheap"})
	assert.ErrorIs(t, err, ErrInvalidPriceRange)

	_, err = svc.List(ctx, Query{Sort: "random"})
	assert.ErrorIs(t, err, ErrInvalidSort)
}

func TestService_List_RepoError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("ListActive", ctx).Return(nil, errors.New("db down"))

	_, err := NewService(repo).List(ctx, Query{})
	assert.Error(t, err)
}

func TestService_Restock(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidQuantity", func(t *testing.T) {
		_, err := NewService(new(MockRepository)).Restock(ctx, "1", 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Restock", ctx, "1", 3).Return(&Product{ID: "1", Stock: 5}, nil)

		p, err := NewService(repo).Restock(ctx, "1", 3)
		require.NoError(t, err)
		assert.Equal(t, 5, p.Stock)
		repo.AssertExpectations(t)
	})
}

func TestProduct_StockFlags(t *testing.T) {
	assert.True(t, (&Product{Stock: 4}).LowStock())
	assert.False(t, (&Product{Stock: 5}).LowStock())
	assert.False(t, (&Product{Stock: 0}).LowStock())
	assert.False(t, (&Product{Stock: 0}).InStock())
}
