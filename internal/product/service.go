package product

import (
	"context"
	"sort"
	"strings"
	"time"

	"petshop-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, q Query) ([]*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Restock(ctx context.Context, id string, qty int) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// List loads the active catalog and filters and sorts it in memory.
func (s *service) List(ctx context.Context, q Query) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)
	start := time.Now()

	if q.Category != "" && !q.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if _, _, err := priceBounds(q.PriceRange); err != nil {
		return nil, err
	}
	less, err := sortFunc(q.Sort)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.ListActive(ctx)
	if err != nil {
		log.Error("failed to fetch catalog", zap.Error(err))
		return nil, err
	}

	filtered := make([]*Product, 0, len(all))
	for _, p := range all {
		if Matches(p, q) {
			filtered = append(filtered, p)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return less(filtered[i], filtered[j]) })

	log.Debug("catalog listed",
		zap.Int("total", len(all)),
		zap.Int("matched", len(filtered)),
		zap.Duration("duration", time.Since(start)),
	)
	return filtered, nil
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Restock(ctx context.Context, id string, qty int) (*Product, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.repo.Restock(ctx, id, qty)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product restocked",
		zap.String("product_id", id),
		zap.Int("added", qty),
		zap.Int("stock", p.Stock),
	)
	return p, nil
}

// Matches reports whether p passes every filter of q.
func Matches(p *Product, q Query) bool {
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
	}

	if q.Category != "" && p.Category != q.Category {
		return false
	}

	lo, hi, err := priceBounds(q.PriceRange)
	if err != nil {
		return false
	}
	return p.Price >= lo && p.Price <= hi
}

const paisePerRupee = 100

// priceBounds returns the inclusive paise bounds of a range.
func priceBounds(r PriceRange) (int64, int64, error) {
	const maxPrice = int64(^uint64(0) >> 1)
	switch r {
	case "", PriceAll:
		return 0, maxPrice, nil
	case PriceUnder500:
		return 0, 500*paisePerRupee - 1, nil
	case Price500To2000:
		return 500 * paisePerRupee, 2000 * paisePerRupee, nil
	case Price2000To10k:
		return 2000 * paisePerRupee, 10000 * paisePerRupee, nil
	case PriceAbove10000:
		return 10000*paisePerRupee + 1, maxPrice, nil
	}
	return 0, 0, ErrInvalidPriceRange
}

func sortFunc(by SortBy) (func(a, b *Product) bool, error) {
	switch by {
	case "", SortName:
		return func(a, b *Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}, nil
	case SortPriceLow:
		return func(a, b *Product) bool { return a.Price < b.Price }, nil
	case SortPriceHigh:
		return func(a, b *Product) bool { return a.Price > b.Price }, nil
	case SortStock:
		return func(a, b *Product) bool { return a.Stock > b.Stock }, nil
	}
	return nil, ErrInvalidSort
}
