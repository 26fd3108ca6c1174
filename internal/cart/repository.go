package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"petshop-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*Entry, error)
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*Entry, error)
	Create(ctx context.Context, params CreateEntryParams) (*Entry, error)
	UpdateQuantity(ctx context.Context, userID, entryID string, quantity int) (*Entry, error)
	Remove(ctx context.Context, userID, entryID string) error
	ClearCart(ctx context.Context, userID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const entryReturning = `
	RETURNING id, user_id, product_id, product_name, unit_price, quantity, created_at, updated_at`

func scanEntry(row interface{ Scan(...any) error }) (*Entry, error) {
	var e Entry
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.ProductID,
		&e.ProductName,
		&e.UnitPrice,
		&e.Quantity,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByUser returns the user's entries with current product stock.
// Entries whose product no longer exists are skipped.
func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Entry, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByUser"),
		zap.String("user_id", userID),
	)
	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id,
			c.user_id,
			c.product_id,
			c.product_name,
			c.unit_price,
			c.quantity,
			c.created_at,
			c.updated_at,
			p.stock
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at ASC`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.ProductID,
			&e.ProductName,
			&e.UnitPrice,
			&e.Quantity,
			&e.CreatedAt,
			&e.UpdatedAt,
			&e.Stock,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(entries)),
		zap.Duration("duration", time.Since(start)),
	)
	return entries, nil
}

func (r *repository) GetByUserAndProduct(ctx context.Context, userID, productID string) (*Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, product_name, unit_price, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2`, userID, productID)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *repository) Create(ctx context.Context, params CreateEntryParams) (*Entry, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("user_id", params.UserID),
		zap.String("product_id", params.ProductID),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, product_name, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5)`+entryReturning,
		params.UserID,
		params.ProductID,
		params.ProductName,
		params.UnitPrice,
		params.Quantity,
	)

	e, err := scanEntry(row)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedCreateCartItem, err)
	}

	log.Info("success create cart item", zap.String("cart_item_id", e.ID))
	return e, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, userID, entryID string, quantity int) (*Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3`+entryReturning,
		quantity, entryID, userID,
	)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedUpdateCart, err)
	}
	return e, nil
}

func (r *repository) Remove(ctx context.Context, userID, entryID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE id = $1 AND user_id = $2`, entryID, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) ClearCart(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedClearCart, err)
	}
	return nil
}
