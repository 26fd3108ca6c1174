package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"petshop-be/internal/cart"
	"petshop-be/internal/logger"
	"petshop-be/internal/metrics"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type StockPolicy string

const (
	// StockPolicyStrict stores the order and takes stock atomically and
	// refuses orders that would oversell.
	StockPolicyStrict StockPolicy = "strict"
	// StockPolicyClamp stores header and items separately, then lowers
	// stock to max(0, stock-qty) without locking. Concurrent orders can
	// oversell.
	StockPolicyClamp StockPolicy = "clamp"
)

// StockAdjuster reads and overwrites product stock.
type StockAdjuster interface {
	GetStock(ctx context.Context, productID string) (int, error)
	SetStock(ctx context.Context, productID string, stock int) error
}

type CartClearer interface {
	ClearCart(ctx context.Context, userID string) error
}

// Workflow turns a cart snapshot into a stored order.
type Workflow struct {
	repo      Repository
	stock     StockAdjuster
	carts     CartClearer
	policy    StockPolicy
	loc       *time.Location
	now       func() time.Time
	newNumber func(time.Time) (string, error)
	metrics   *metrics.Recorder
	tracer    trace.Tracer
}

type Option func(*Workflow)

func WithStockPolicy(p StockPolicy) Option {
	return func(w *Workflow) { w.policy = p }
}

// WithLocation sets the shop time zone used to judge delivery dates.
func WithLocation(loc *time.Location) Option {
	return func(w *Workflow) {
		if loc != nil {
			w.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

func WithMetrics(m *metrics.Recorder) Option {
	return func(w *Workflow) { w.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(w *Workflow) { w.tracer = t }
}

func withNumberGenerator(f func(time.Time) (string, error)) Option {
	return func(w *Workflow) { w.newNumber = f }
}

func NewWorkflow(repo Repository, stock StockAdjuster, carts CartClearer, opts ...Option) *Workflow {
	w := &Workflow{
		repo:      repo,
		stock:     stock,
		carts:     carts,
		policy:    StockPolicyStrict,
		loc:       time.UTC,
		now:       time.Now,
		newNumber: NewOrderNumber,
		tracer:    otel.Tracer("petshop-be/internal/order"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) Policy() StockPolicy { return w.policy }

// Submit validates the checkout, stores the order according to the stock
// policy and empties the cart. Calling it twice with the same cart creates
// two orders.
func (w *Workflow) Submit(ctx context.Context, info CustomerInfo, snap cart.Snapshot) (*Order, error) {
	timer := metrics.StartTimer()
	ctx, span := w.tracer.Start(ctx, "order.Submit", trace.WithAttributes(
		attribute.String("order.user_id", snap.UserID),
		attribute.String("order.stock_policy", string(w.policy)),
		attribute.Int("order.entries", len(snap.Entries)),
	))
	defer span.End()

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "workflow"),
		zap.String("method", "Submit"),
		zap.String("user_id", snap.UserID),
	)

	o, err := w.submit(ctx, log, info, snap)

	w.metrics.OrderSubmitted(outcome(err), timer.Duration())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome(err))
		log.Warn("order submission failed", zap.Error(err))
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.number", o.OrderNumber),
		attribute.Int64("order.total_amount", o.TotalAmount),
	)
	span.SetStatus(codes.Ok, "")
	log.Info("order submitted",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Int64("total_amount", o.TotalAmount),
		zap.Duration("duration", timer.Duration()),
	)
	return o, nil
}

func (w *Workflow) submit(ctx context.Context, log *zap.Logger, info CustomerInfo, snap cart.Snapshot) (*Order, error) {
	// 1. Validate
	if snap.Empty() {
		return nil, ErrEmptyCart
	}
	if snap.UserID == "" {
		return nil, ErrUnauthorized
	}
	now := w.now()
	if !DeliveryDateValid(info.DeliveryDate, now, w.loc) {
		return nil, ErrInvalidDeliveryDate
	}
	if err := ValidateCustomerInfo(info); err != nil {
		return nil, err
	}

	// 2. Build order from the snapshot prices
	number, err := w.newNumber(now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}
	o := newOrder(number, info, snap, now)
	log = log.With(zap.String("order_number", o.OrderNumber))

	// 3. Persist. From the first write on, the caller going away does not
	// stop the remaining writes, the compensation or the cart clear.
	ctx = context.WithoutCancel(ctx)
	switch w.policy {
	case StockPolicyClamp:
		if err := w.persistClamped(ctx, log, o); err != nil {
			return nil, err
		}
	default:
		if err := w.persistStrict(ctx, o); err != nil {
			return nil, err
		}
	}

	// 4. Empty the cart
	w.clearCart(ctx, log, o)
	return o, nil
}

func newOrder(number string, info CustomerInfo, snap cart.Snapshot, now time.Time) *Order {
	o := &Order{
		ID:              uuid.NewString(),
		OrderNumber:     number,
		UserID:          snap.UserID,
		CustomerName:    strings.TrimSpace(info.Name),
		CustomerEmail:   strings.TrimSpace(info.Email),
		CustomerPhone:   strings.TrimSpace(info.Phone),
		DeliveryAddress: strings.TrimSpace(info.Address),
		PaymentMethod:   info.PaymentMethod,
		DeliveryDate:    info.DeliveryDate,
		Status:          StatusPending,
		Notes:           info.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           make([]OrderItem, 0, len(snap.Entries)),
	}

	for _, e := range snap.Entries {
		o.Items = append(o.Items, OrderItem{
			ID:           uuid.NewString(),
			OrderID:      o.ID,
			ProductID:    e.ProductID,
			ProductName:  e.ProductName,
			ProductPrice: e.UnitPrice,
			Quantity:     e.Quantity,
			Subtotal:     e.Subtotal(),
			CreatedAt:    now,
		})
	}
	o.TotalAmount = o.ItemsTotal()
	return o
}

func (w *Workflow) persistStrict(ctx context.Context, o *Order) error {
	ctx, span := w.tracer.Start(ctx, "order.persist_tx")
	defer span.End()

	if err := w.repo.CreateOrderTx(ctx, o); err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrOrderItemPersistence) {
			return err
		}
		return wrapAs(err, ErrOrderPersistence)
	}
	return nil
}

func (w *Workflow) persistClamped(ctx context.Context, log *zap.Logger, o *Order) error {
	ctx, span := w.tracer.Start(ctx, "order.persist")
	defer span.End()

	if err := w.repo.CreateOrder(ctx, o); err != nil {
		span.RecordError(err)
		return wrapAs(err, ErrOrderPersistence)
	}

	if err := w.repo.CreateOrderItems(ctx, o.Items); err != nil {
		span.RecordError(err)
		w.compensate(ctx, log, o)
		return wrapAs(err, ErrOrderItemPersistence)
	}

	w.reconcileStock(ctx, log, o)
	return nil
}

// compensate removes a header whose items could not be stored. A failed
// delete leaves an orphaned header that is logged for manual cleanup.
func (w *Workflow) compensate(ctx context.Context, log *zap.Logger, o *Order) {
	if err := w.repo.DeleteOrder(ctx, o.ID); err != nil {
		w.metrics.Compensation(false)
		log.Error("orphaned order header",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
		return
	}
	w.metrics.Compensation(true)
	log.Info("order header removed after item failure", zap.String("order_id", o.ID))
}

// reconcileStock lowers stock for every ordered product concurrently and
// waits for all writes. Failures are logged and never fail the order.
func (w *Workflow) reconcileStock(ctx context.Context, log *zap.Logger, o *Order) {
	ctx, span := w.tracer.Start(ctx, "order.reconcile_stock")
	defer span.End()

	var wg sync.WaitGroup
	for _, line := range quantitiesByProduct(o.Items) {
		wg.Add(1)
		go func() {
			defer wg.Done()

			current, err := w.stock.GetStock(ctx, line.productID)
			if err == nil {
				err = w.stock.SetStock(ctx, line.productID, max(0, current-line.qty))
			}
			if err != nil {
				w.metrics.StockWarning()
				log.Warn("StockReconciliationWarning",
					zap.String("product_id", line.productID),
					zap.Int("quantity", line.qty),
					zap.Error(err),
				)
			}
		}()
	}
	wg.Wait()
}

func (w *Workflow) clearCart(ctx context.Context, log *zap.Logger, o *Order) {
	if err := w.carts.ClearCart(ctx, o.UserID); err != nil {
		w.metrics.CartClearWarning()
		log.Warn("CartClearWarning", zap.Error(err))
	}
}

func wrapAs(err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrInvalidDeliveryDate):
		return "invalid_delivery_date"
	case errors.Is(err, ErrInvalidCustomerInfo):
		return "invalid_customer_info"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrOrderItemPersistence):
		return "item_persistence_error"
	case errors.Is(err, ErrOrderPersistence):
		return "persistence_error"
	}
	return "error"
}
