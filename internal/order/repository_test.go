package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{
	"id", "order_number", "user_id", "customer_name", "customer_email", "customer_phone",
	"delivery_address", "payment_method", "total_amount", "delivery_date", "status", "notes",
	"created_at", "updated_at",
}

var itemCols = []string{
	"id", "order_id", "product_id", "product_name", "product_price", "quantity", "subtotal", "created_at",
}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func sampleOrder() *Order {
	now := time.Date(2026, 3, 10, 4, 30, 0, 0, time.UTC)
	return &Order{
		ID:              "o-1",
		OrderNumber:     "ORD-20260310-043000-000-ABCD",
		UserID:          "u-1",
		CustomerName:    "Asha",
		CustomerEmail:   "a@x.com",
		CustomerPhone:   "9876543210",
		DeliveryAddress: "12 MG Road",
		PaymentMethod:   PaymentCOD,
		TotalAmount:     105000,
		DeliveryDate:    now.AddDate(0, 0, 1),
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items: []OrderItem{
			{ID: "i-1", OrderID: "o-1", ProductID: "6", ProductName: "Collar", ProductPrice: 45000, Quantity: 2, Subtotal: 90000, CreatedAt: now},
			{ID: "i-2", OrderID: "o-1", ProductID: "4", ProductName: "Goldfish", ProductPrice: 15000, Quantity: 1, Subtotal: 15000, CreatedAt: now},
		},
	}
}

func TestRepository_CreateOrder(t *testing.T) {
	repo, mock := newMockRepo(t)
	o := sampleOrder()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO orders").
			WithArgs(
				"o-1", o.OrderNumber, "u-1", "Asha", "a@x.com", "9876543210",
				"12 MG Road", "cod", int64(105000), o.DeliveryDate, "pending", nil,
				o.CreatedAt, o.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.CreateOrder(context.Background(), o))
	})

	t.Run("Failure", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO orders").WillReturnError(errors.New("duplicate key"))

		err := repo.CreateOrder(context.Background(), o)
		assert.ErrorIs(t, err, ErrOrderPersistence)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateOrderItems(t *testing.T) {
	repo, mock := newMockRepo(t)
	o := sampleOrder()

	t.Run("SingleBatch", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO order_items .* VALUES \(\$1.*\), \(\$9.*\$16\)`).
			WillReturnResult(sqlmock.NewResult(0, 2))

		assert.NoError(t, repo.CreateOrderItems(context.Background(), o.Items))
	})

	t.Run("Failure", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO order_items").WillReturnError(errors.New("fk violation"))

		err := repo.CreateOrderItems(context.Background(), o.Items)
		assert.ErrorIs(t, err, ErrOrderItemPersistence)
	})

	t.Run("NoItems", func(t *testing.T) {
		assert.NoError(t, repo.CreateOrderItems(context.Background(), nil))
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateOrderTx(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`UPDATE products SET stock = stock - \$1.* WHERE id = \$2 AND stock >= \$1`).
			WithArgs(1, "4").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE products`).
			WithArgs(2, "6").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.CreateOrderTx(context.Background(), sampleOrder()))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientStockRollsBack", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`UPDATE products`).
			WithArgs(1, "4").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.CreateOrderTx(context.Background(), sampleOrder())

		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Contains(t, err.Error(), "product 4")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ItemFailureRollsBack", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_items").WillReturnError(errors.New("fk violation"))
		mock.ExpectRollback()

		err := repo.CreateOrderTx(context.Background(), sampleOrder())

		assert.ErrorIs(t, err, ErrOrderItemPersistence)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("BeginFailure", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		err := repo.CreateOrderTx(context.Background(), sampleOrder())
		assert.ErrorIs(t, err, ErrOrderPersistence)
	})
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	t.Run("WithItems", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1`).
			WithArgs("o-1").
			WillReturnRows(sqlmock.NewRows(orderCols).AddRow(
				"o-1", "ORD-1", "u-1", "Asha", "a@x.com", "9876543210",
				"12 MG Road", "upi", 45000, now, "confirmed", "ring the bell",
				now, now,
			))
		mock.ExpectQuery(`SELECT .* FROM order_items WHERE order_id = ANY\(\$1\)`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(itemCols).
				AddRow("i-1", "o-1", "6", "Collar", 45000, 1, 45000, now))

		o, err := repo.GetByID(context.Background(), "o-1")

		require.NoError(t, err)
		assert.Equal(t, PaymentUPI, o.PaymentMethod)
		assert.Equal(t, StatusConfirmed, o.Status)
		require.NotNil(t, o.Notes)
		assert.Equal(t, "ring the bell", *o.Notes)
		require.Len(t, o.Items, 1)
		assert.Equal(t, int64(45000), o.Items[0].Subtotal)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(orderCols))

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_ListAll(t *testing.T) {
	repo, mock := newMockRepo(t)
	status := StatusPending

	mock.ExpectQuery(`SELECT .* FROM orders WHERE 1=1 AND status = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("pending", 100, 100).
		WillReturnRows(sqlmock.NewRows(orderCols))

	orders, err := repo.ListAll(context.Background(), ListFilter{Status: &status, Limit: 500, Page: 2})

	require.NoError(t, err)
	assert.Empty(t, orders)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM orders WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow("o-2", "ORD-2", "u-1", "Asha", "a@x.com", "9876543210", "12 MG Road", "cod", 150, now, "pending", nil, now, now).
			AddRow("o-1", "ORD-1", "u-1", "Asha", "a@x.com", "9876543210", "12 MG Road", "cod", 300, now, "pending", nil, now, now))
	mock.ExpectQuery(`FROM order_items`).
		WillReturnRows(sqlmock.NewRows(itemCols).
			AddRow("i-1", "o-1", "4", "Goldfish", 150, 2, 300, now).
			AddRow("i-2", "o-2", "4", "Goldfish", 150, 1, 150, now))

	orders, err := repo.ListByUser(context.Background(), "u-1")

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o-2", orders[0].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "i-2", orders[0].Items[0].ID)
	assert.Nil(t, orders[1].Notes)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
		WithArgs("confirmed", "o-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateStatus(context.Background(), "o-1", StatusPending, StatusConfirmed))

	mock.ExpectExec(`UPDATE orders`).
		WithArgs("confirmed", "o-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "o-1", StatusPending, StatusConfirmed), ErrStatusConflict)
}

func TestRepository_DeleteOrder(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
		WithArgs("o-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.DeleteOrder(context.Background(), "o-1"))

	mock.ExpectExec(`DELETE FROM orders`).
		WithArgs("o-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteOrder(context.Background(), "o-1"), ErrOrderNotFound)
}
