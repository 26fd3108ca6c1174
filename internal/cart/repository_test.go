package cart

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entryCols = []string{"id", "user_id", "product_id", "product_name", "unit_price", "quantity", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(append(entryCols, "stock")).
			AddRow("c-1", "u-1", "4", "Goldfish", 15000, 3, now, now, 20).
			AddRow("c-2", "u-1", "6", "Cat Collar", 45000, 1, now, now, 8)

		mock.ExpectQuery("SELECT .* FROM cart_items c JOIN products p ON p.id = c.product_id WHERE c.user_id = \\$1").
			WithArgs("u-1").
			WillReturnRows(rows)

		entries, err := repo.ListByUser(context.Background(), "u-1")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, int64(15000), entries[0].UnitPrice)
		assert.Equal(t, 20, entries[0].Stock)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM cart_items").WillReturnError(errors.New("db error"))

		_, err := repo.ListByUser(context.Background(), "u-1")
		assert.Error(t, err)
	})
}

func TestRepository_GetByUserAndProduct(t *testing.T) {
	repo, mock := newMockRepo(t)

	t.Run("NotFound returns nil", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM cart_items WHERE user_id = \\$1 AND product_id = \\$2").
			WithArgs("u-1", "4").
			WillReturnError(sql.ErrNoRows)

		e, err := repo.GetByUserAndProduct(context.Background(), "u-1", "4")
		assert.NoError(t, err)
		assert.Nil(t, e)
	})

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM cart_items").
			WithArgs("u-1", "4").
			WillReturnRows(sqlmock.NewRows(entryCols).AddRow("c-1", "u-1", "4", "Goldfish", 15000, 2, time.Now(), time.Now()))

		e, err := repo.GetByUserAndProduct(context.Background(), "u-1", "4")
		require.NoError(t, err)
		assert.Equal(t, "c-1", e.ID)
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	params := CreateEntryParams{UserID: "u-1", ProductID: "4", ProductName: "Goldfish", UnitPrice: 15000, Quantity: 2}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").
			WithArgs("u-1", "4", "Goldfish", int64(15000), 2).
			WillReturnRows(sqlmock.NewRows(entryCols).AddRow("c-1", "u-1", "4", "Goldfish", 15000, 2, time.Now(), time.Now()))

		e, err := repo.Create(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, "c-1", e.ID)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), params)
		assert.ErrorIs(t, err, ErrFailedCreateCartItem)
	})
}

func TestRepository_UpdateQuantity(t *testing.T) {
	repo, mock := newMockRepo(t)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("UPDATE cart_items SET quantity = \\$1").
			WithArgs(5, "c-1", "u-1").
			WillReturnRows(sqlmock.NewRows(entryCols).AddRow("c-1", "u-1", "4", "Goldfish", 15000, 5, time.Now(), time.Now()))

		e, err := repo.UpdateQuantity(context.Background(), "u-1", "c-1", 5)
		require.NoError(t, err)
		assert.Equal(t, 5, e.Quantity)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("UPDATE cart_items").
			WithArgs(5, "c-x", "u-1").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateQuantity(context.Background(), "u-1", "c-x", 5)
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})
}

func TestRepository_Remove(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM cart_items WHERE id = \\$1 AND user_id = \\$2").
		WithArgs("c-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Remove(context.Background(), "u-1", "c-1"))

	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs("c-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Remove(context.Background(), "u-1", "c-1"), ErrCartItemNotFound)
}

func TestRepository_ClearCart(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM cart_items WHERE user_id = \\$1").
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	assert.NoError(t, repo.ClearCart(context.Background(), "u-1"))

	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs("u-1").
		WillReturnError(errors.New("db error"))
	assert.ErrorIs(t, repo.ClearCart(context.Background(), "u-1"), ErrFailedClearCart)

	require.NoError(t, mock.ExpectationsWereMet())
}
