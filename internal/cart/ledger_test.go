package cart

import (
	"context"
	"errors"
	"testing"

	"petshop-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string) ([]*Entry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Entry), args.Error(1)
}

func (m *MockRepository) GetByUserAndProduct(ctx context.Context, userID, productID string) (*Entry, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Entry), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, params CreateEntryParams) (*Entry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Entry), args.Error(1)
}

func (m *MockRepository) UpdateQuantity(ctx context.Context, userID, entryID string, quantity int) (*Entry, error) {
	args := m.Called(ctx, userID, entryID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Entry), args.Error(1)
}

func (m *MockRepository) Remove(ctx context.Context, userID, entryID string) error {
	return m.Called(ctx, userID, entryID).Error(0)
}

func (m *MockRepository) ClearCart(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) GetByID(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

var goldfish = &product.Product{ID: "4", Name: "Goldfish - Orange", Price: 15000, Stock: 20, IsActive: true}

func newLedger(t *testing.T, opts ...LedgerOption) (*Ledger, *MockRepository, *MockProductReader) {
	repo := new(MockRepository)
	products := new(MockProductReader)
	l, err := NewLedger(repo, products, "u-1", opts...)
	require.NoError(t, err)
	return l, repo, products
}

func TestNewLedger_RequiresUser(t *testing.T) {
	_, err := NewLedger(new(MockRepository), new(MockProductReader), "")
	assert.ErrorIs(t, err, ErrUserRequired)
}

func TestLedger_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesNewEntryWithPriceSnapshot", func(t *testing.T) {
		l, repo, products := newLedger(t)
		products.On("GetByID", ctx, "4").Return(goldfish, nil)
		repo.On("GetByUserAndProduct", ctx, "u-1", "4").Return(nil, nil)
		repo.On("Create", ctx, CreateEntryParams{
			UserID: "u-1", ProductID: "4", ProductName: "Goldfish - Orange", UnitPrice: 15000, Quantity: 2,
		}).Return(&Entry{ID: "c-1", ProductID: "4", UnitPrice: 15000, Quantity: 2}, nil)

		e, err := l.Add(ctx, "4", 2)

		require.NoError(t, err)
		assert.Equal(t, "c-1", e.ID)
		assert.Equal(t, 20, e.Stock)
		repo.AssertExpectations(t)
	})

	t.Run("MergesWithExistingEntry", func(t *testing.T) {
		l, repo, products := newLedger(t)
		products.On("GetByID", ctx, "4").Return(goldfish, nil)
		repo.On("GetByUserAndProduct", ctx, "u-1", "4").Return(&Entry{ID: "c-1", Quantity: 3}, nil)
		repo.On("UpdateQuantity", ctx, "u-1", "c-1", 5).Return(&Entry{ID: "c-1", Quantity: 5}, nil)

		e, err := l.Add(ctx, "4", 2)

		require.NoError(t, err)
		assert.Equal(t, 5, e.Quantity)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		l, _, _ := newLedger(t)
		_, err := l.Add(ctx, "4", 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("InactiveProduct", func(t *testing.T) {
		l, _, products := newLedger(t)
		products.On("GetByID", ctx, "9").Return(&product.Product{ID: "9", IsActive: false}, nil)

		_, err := l.Add(ctx, "9", 1)
		assert.ErrorIs(t, err, ErrProductInactive)
	})

	t.Run("OverStockAllowedByDefault", func(t *testing.T) {
		l, repo, products := newLedger(t)
		products.On("GetByID", ctx, "4").Return(goldfish, nil)
		repo.On("GetByUserAndProduct", ctx, "u-1", "4").Return(nil, nil)
		repo.On("Create", ctx, mock.AnythingOfType("CreateEntryParams")).Return(&Entry{ID: "c-1", Quantity: 50}, nil)

		_, err := l.Add(ctx, "4", 50)
		assert.NoError(t, err)
	})

	t.Run("OverStockRejectedWhenEnforced", func(t *testing.T) {
		l, repo, products := newLedger(t, WithStockCheck(true))
		products.On("GetByID", ctx, "4").Return(goldfish, nil)
		repo.On("GetByUserAndProduct", ctx, "u-1", "4").Return(&Entry{ID: "c-1", Quantity: 19}, nil)

		_, err := l.Add(ctx, "4", 2)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		repo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PersistenceFailure", func(t *testing.T) {
		l, repo, products := newLedger(t)
		products.On("GetByID", ctx, "4").Return(goldfish, nil)
		repo.On("GetByUserAndProduct", ctx, "u-1", "4").Return(nil, nil)
		repo.On("Create", ctx, mock.Anything).Return(nil, ErrFailedCreateCartItem)

		_, err := l.Add(ctx, "4", 1)
		assert.ErrorIs(t, err, ErrFailedCreateCartItem)
	})
}

func TestLedger_SetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Overwrites", func(t *testing.T) {
		l, repo, _ := newLedger(t)
		repo.On("UpdateQuantity", ctx, "u-1", "c-1", 7).Return(&Entry{ID: "c-1", Quantity: 7}, nil)

		e, err := l.SetQuantity(ctx, "c-1", 7)
		require.NoError(t, err)
		assert.Equal(t, 7, e.Quantity)
	})

	t.Run("ZeroRemoves", func(t *testing.T) {
		l, repo, _ := newLedger(t)
		repo.On("Remove", ctx, "u-1", "c-1").Return(nil)

		e, err := l.SetQuantity(ctx, "c-1", 0)
		assert.NoError(t, err)
		assert.Nil(t, e)
		repo.AssertCalled(t, "Remove", ctx, "u-1", "c-1")
	})

	t.Run("OverStockRejectedWhenEnforced", func(t *testing.T) {
		l, repo, products := newLedger(t, WithStockCheck(true))
		repo.On("ListByUser", ctx, "u-1").Return([]*Entry{{ID: "c-1", ProductID: "4", Quantity: 2}}, nil)
		products.On("GetByID", ctx, "4").Return(goldfish, nil)

		_, err := l.SetQuantity(ctx, "c-1", 21)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		repo.AssertNotCalled(t, "UpdateQuantity", ctx, "u-1", "c-1", 21)
	})

	t.Run("WithinStockWhenEnforced", func(t *testing.T) {
		l, repo, products := newLedger(t, WithStockCheck(true))
		repo.On("ListByUser", ctx, "u-1").Return([]*Entry{{ID: "c-1", ProductID: "4", Quantity: 2}}, nil)
		products.On("GetByID", ctx, "4").Return(goldfish, nil)
		repo.On("UpdateQuantity", ctx, "u-1", "c-1", 20).Return(&Entry{ID: "c-1", Quantity: 20}, nil)

		e, err := l.SetQuantity(ctx, "c-1", 20)
		require.NoError(t, err)
		assert.Equal(t, 20, e.Quantity)
	})

	t.Run("UnknownEntryWhenEnforced", func(t *testing.T) {
		l, repo, _ := newLedger(t, WithStockCheck(true))
		repo.On("ListByUser", ctx, "u-1").Return([]*Entry{}, nil)

		_, err := l.SetQuantity(ctx, "c-9", 3)
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})
}

func TestLedger_Remove_Idempotent(t *testing.T) {
	ctx := context.Background()
	l, repo, _ := newLedger(t)
	repo.On("Remove", ctx, "u-1", "c-1").Return(ErrCartItemNotFound)

	assert.NoError(t, l.Remove(ctx, "c-1"))

	l2, repo2, _ := newLedger(t)
	repo2.On("Remove", ctx, "u-1", "c-1").Return(errors.New("db down"))
	assert.Error(t, l2.Remove(ctx, "c-1"))
}

func TestLedger_TotalsUseStoredPrices(t *testing.T) {
	ctx := context.Background()
	l, repo, _ := newLedger(t)
	repo.On("ListByUser", ctx, "u-1").Return([]*Entry{
		{ID: "c-1", ProductID: "4", UnitPrice: 15000, Quantity: 3},
		{ID: "c-2", ProductID: "6", UnitPrice: 45000, Quantity: 2},
	}, nil)

	total, err := l.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(135000), total)

	count, err := l.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	snap, err := l.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", snap.UserID)
	assert.False(t, snap.Empty())
}

func TestLedger_Clear(t *testing.T) {
	ctx := context.Background()
	l, repo, _ := newLedger(t)
	repo.On("ClearCart", ctx, "u-1").Return(nil)

	assert.NoError(t, l.Clear(ctx))
	repo.AssertExpectations(t)
}

func TestSnapshot_EmptyTotals(t *testing.T) {
	var s Snapshot
	assert.True(t, s.Empty())
	assert.Equal(t, int64(0), s.Total())
	assert.Equal(t, 0, s.ItemCount())
}
