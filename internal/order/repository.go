package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"petshop-be/internal/logger"
	"petshop-be/internal/product"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrder writes the order header only.
	CreateOrder(ctx context.Context, o *Order) error
	// CreateOrderItems writes all items in a single statement.
	CreateOrderItems(ctx context.Context, items []OrderItem) error
	DeleteOrder(ctx context.Context, id string) error
	// CreateOrderTx writes header and items and takes stock for every
	// product in one transaction. A product without enough stock rolls the
	// whole order back with ErrInsufficientStock.
	CreateOrderTx(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	ListAll(ctx context.Context, filter ListFilter) ([]*Order, error)
	// UpdateStatus moves the order from one status to another and fails
	// with ErrStatusConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const orderColumns = `
	id, order_number, user_id, customer_name, customer_email, customer_phone,
	delivery_address, payment_method, total_amount, delivery_date, status, notes,
	created_at, updated_at`

func insertHeader(ctx context.Context, ex execer, o *Order) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		o.ID,
		o.OrderNumber,
		o.UserID,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		o.DeliveryAddress,
		o.PaymentMethod,
		o.TotalAmount,
		o.DeliveryDate,
		o.Status,
		o.Notes,
		o.CreatedAt,
		o.UpdatedAt,
	)
	return err
}

const itemColumnCount = 8

func insertItems(ctx context.Context, ex execer, items []OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(`INSERT INTO order_items (
		id, order_id, product_id, product_name, product_price, quantity, subtotal, created_at
	) VALUES `)

	args := make([]any, 0, len(items)*itemColumnCount)
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		n := i * itemColumnCount
		fmt.Fprintf(&b, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			n+1, n+2, n+3, n+4, n+5, n+6, n+7, n+8)
		args = append(args,
			it.ID,
			it.OrderID,
			it.ProductID,
			it.ProductName,
			it.ProductPrice,
			it.Quantity,
			it.Subtotal,
			it.CreatedAt,
		)
	}

	_, err := ex.ExecContext(ctx, b.String(), args...)
	return err
}

func (r *repository) CreateOrder(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_number", o.OrderNumber),
	)

	if err := insertHeader(ctx, r.db, o); err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}
	return nil
}

func (r *repository) CreateOrderItems(ctx context.Context, items []OrderItem) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderItems"),
		zap.Int("items", len(items)),
	)

	if err := insertItems(ctx, r.db, items); err != nil {
		log.Error("failed to insert order items", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrOrderItemPersistence, err)
	}
	return nil
}

func (r *repository) DeleteOrder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type productQty struct {
	productID string
	qty       int
}

// quantitiesByProduct folds items into one quantity per product, ordered by
// product id so concurrent transactions lock rows in the same order.
func quantitiesByProduct(items []OrderItem) []productQty {
	sums := make(map[string]int, len(items))
	for _, it := range items {
		sums[it.ProductID] += it.Quantity
	}

	out := make([]productQty, 0, len(sums))
	for id, q := range sums {
		out = append(out, productQty{productID: id, qty: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].productID < out[j].productID })
	return out
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_number", o.OrderNumber),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin tx", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}
	defer tx.Rollback()

	// 1. Insert order
	if err := insertHeader(ctx, tx, o); err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}

	// 2. Insert order items
	if err := insertItems(ctx, tx, o.Items); err != nil {
		log.Error("failed to insert order items", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrOrderItemPersistence, err)
	}

	// 3. Take stock
	for _, line := range quantitiesByProduct(o.Items) {
		ok, err := product.DecrementStock(ctx, tx, line.productID, line.qty)
		if err != nil {
			log.Error("failed to decrement stock", zap.String("product_id", line.productID), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrOrderPersistence, err)
		}
		if !ok {
			log.Warn("insufficient stock",
				zap.String("product_id", line.productID),
				zap.Int("quantity", line.qty),
			)
			return fmt.Errorf("%w: product %s", ErrInsufficientStock, line.productID)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*Order, error) {
	var o Order
	var notes sql.NullString
	if err := s.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.DeliveryAddress,
		&o.PaymentMethod,
		&o.TotalAmount,
		&o.DeliveryDate,
		&o.Status,
		&notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if notes.Valid {
		o.Notes = &notes.String
	}
	o.Items = []OrderItem{}
	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		WHERE id = $1`, id)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	return r.list(ctx, "ListByUser", `
		SELECT`+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
}

func (r *repository) ListAll(ctx context.Context, filter ListFilter) ([]*Order, error) {
	// ---------- PAGINATION ----------
	limit := 20
	page := 1
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	if filter.Page > 0 {
		page = filter.Page
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	query := `
		SELECT` + orderColumns + `
		FROM orders
		WHERE 1=1`

	args := []any{}
	argIndex := 1

	// ---------- FILTERING ----------
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	return r.list(ctx, "ListAll", query, args...)
}

func (r *repository) list(ctx context.Context, method, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)
	start := time.Now()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, err
	}

	log.Debug("get orders success",
		zap.Int("count", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)
	return orders, nil
}

func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	byID := make(map[string]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, product_price, quantity, subtotal, created_at
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY created_at, id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID,
			&it.OrderID,
			&it.ProductID,
			&it.ProductName,
			&it.ProductPrice,
			&it.Quantity,
			&it.Subtotal,
			&it.CreatedAt,
		); err != nil {
			return err
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStatusConflict
	}
	return nil
}
