package cart

import (
	"context"
	"errors"

	"petshop-be/internal/logger"
	"petshop-be/internal/product"

	"go.uber.org/zap"
)

// ProductReader is the slice of the catalog the cart needs.
type ProductReader interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
}

// Ledger is the cart of exactly one user.
type Ledger struct {
	repo         Repository
	products     ProductReader
	userID       string
	enforceStock bool
}

type LedgerOption func(*Ledger)

// WithStockCheck rejects adds and quantity changes that would exceed the
// product's current stock.
func WithStockCheck(enabled bool) LedgerOption {
	return func(l *Ledger) { l.enforceStock = enabled }
}

func NewLedger(repo Repository, products ProductReader, userID string, opts ...LedgerOption) (*Ledger, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	l := &Ledger{repo: repo, products: products, userID: userID}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *Ledger) UserID() string { return l.userID }

func (l *Ledger) log(ctx context.Context, method string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "cart"),
		zap.String("method", method),
		zap.String("user_id", l.userID),
	)
}

// Add puts quantity units of the product into the cart, merging with an
// existing entry for the same product.
func (l *Ledger) Add(ctx context.Context, productID string, quantity int) (*Entry, error) {
	log := l.log(ctx, "Add").With(zap.String("product_id", productID), zap.Int("quantity", quantity))

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := l.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrProductInactive
	}

	existing, err := l.repo.GetByUserAndProduct(ctx, l.userID, productID)
	if err != nil {
		log.Error("failed to load cart item", zap.Error(err))
		return nil, err
	}

	finalQty := quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if finalQty > p.Stock {
		if l.enforceStock {
			return nil, ErrInsufficientStock
		}
		log.Warn("cart quantity exceeds current stock",
			zap.Int("final_quantity", finalQty),
			zap.Int("stock", p.Stock),
		)
	}

	var entry *Entry
	if existing == nil {
		entry, err = l.repo.Create(ctx, CreateEntryParams{
			UserID:      l.userID,
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   p.Price,
			Quantity:    quantity,
		})
	} else {
		entry, err = l.repo.UpdateQuantity(ctx, l.userID, existing.ID, finalQty)
	}
	if err != nil {
		log.Error("failed to persist cart item", zap.Error(err))
		return nil, err
	}

	entry.Stock = p.Stock
	return entry, nil
}

// SetQuantity overwrites an entry's quantity; quantity <= 0 removes it and
// returns a nil entry. With the stock check on, the same bound as Add applies.
func (l *Ledger) SetQuantity(ctx context.Context, entryID string, quantity int) (*Entry, error) {
	if quantity <= 0 {
		return nil, l.Remove(ctx, entryID)
	}
	if l.enforceStock {
		if err := l.checkStock(ctx, entryID, quantity); err != nil {
			return nil, err
		}
	}
	return l.repo.UpdateQuantity(ctx, l.userID, entryID, quantity)
}

func (l *Ledger) checkStock(ctx context.Context, entryID string, quantity int) error {
	entries, err := l.repo.ListByUser(ctx, l.userID)
	if err != nil {
		l.log(ctx, "SetQuantity").Error("failed to load cart", zap.Error(err))
		return err
	}

	var entry *Entry
	for _, e := range entries {
		if e.ID == entryID {
			entry = e
			break
		}
	}
	if entry == nil {
		return ErrCartItemNotFound
	}

	p, err := l.products.GetByID(ctx, entry.ProductID)
	if err != nil {
		return err
	}
	if quantity > p.Stock {
		return ErrInsufficientStock
	}
	return nil
}

// Remove deletes an entry. Removing an entry that is not there is not an error.
func (l *Ledger) Remove(ctx context.Context, entryID string) error {
	err := l.repo.Remove(ctx, l.userID, entryID)
	if errors.Is(err, ErrCartItemNotFound) {
		l.log(ctx, "Remove").Debug("cart item already absent", zap.String("cart_item_id", entryID))
		return nil
	}
	return err
}

func (l *Ledger) Clear(ctx context.Context) error {
	return l.repo.ClearCart(ctx, l.userID)
}

func (l *Ledger) Entries(ctx context.Context) ([]*Entry, error) {
	return l.repo.ListByUser(ctx, l.userID)
}

// Snapshot copies the current entries for checkout.
func (l *Ledger) Snapshot(ctx context.Context) (Snapshot, error) {
	entries, err := l.Entries(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{UserID: l.userID, Entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		snap.Entries = append(snap.Entries, *e)
	}
	return snap, nil
}

func (l *Ledger) Total(ctx context.Context) (int64, error) {
	snap, err := l.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return snap.Total(), nil
}

func (l *Ledger) ItemCount(ctx context.Context) (int, error) {
	snap, err := l.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return snap.ItemCount(), nil
}
