package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"petshop-be/internal/cart"
	"petshop-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func checkout(name string) order.CustomerInfo {
	return order.CustomerInfo{
		Name:          name,
		Email:         "a@x.com",
		Phone:         "9876543210",
		Address:       "12 MG Road",
		PaymentMethod: order.PaymentCOD,
		DeliveryDate:  time.Date(2026, 3, 11, 0, 0, 0, 0, ist),
	}
}

func newShopWorkflow(s *Store, policy order.StockPolicy, stock order.StockAdjuster, repo order.Repository) *order.Workflow {
	if stock == nil {
		stock = s.Products()
	}
	if repo == nil {
		repo = s.Orders()
	}
	return order.NewWorkflow(repo, stock, s.Carts(),
		order.WithStockPolicy(policy),
		order.WithLocation(ist),
		order.WithClock(func() time.Time { return time.Date(2026, 3, 10, 10, 0, 0, 0, ist) }),
	)
}

func fillCart(t *testing.T, s *Store, userID, productID string, qty int) cart.Snapshot {
	t.Helper()
	ctx := context.Background()

	ledger, err := cart.NewLedger(s.Carts(), s.Products(), userID)
	require.NoError(t, err)
	_, err = ledger.Add(ctx, productID, qty)
	require.NoError(t, err)

	snap, err := ledger.Snapshot(ctx)
	require.NoError(t, err)
	return snap
}

func TestSubmit_AshaScenario(t *testing.T) {
	for _, policy := range []order.StockPolicy{order.StockPolicyClamp, order.StockPolicyStrict} {
		t.Run(string(policy), func(t *testing.T) {
			s := NewDemoStore()
			ctx := context.Background()
			snap := fillCart(t, s, "u-asha", "4", 3)

			o, err := newShopWorkflow(s, policy, nil, nil).Submit(ctx, checkout("Asha"), snap)

			require.NoError(t, err)
			assert.Equal(t, int64(45000), o.TotalAmount)
			require.Len(t, o.Items, 1)
			assert.Equal(t, int64(45000), o.Items[0].Subtotal)
			assert.Equal(t, order.StatusPending, o.Status)

			stock, _ := s.Products().GetStock(ctx, "4")
			assert.Equal(t, 17, stock)

			stored, err := s.Orders().GetByID(ctx, o.ID)
			require.NoError(t, err)
			assert.Equal(t, o.TotalAmount, stored.ItemsTotal())

			left, _ := s.Carts().ListByUser(ctx, "u-asha")
			assert.Empty(t, left)
		})
	}
}

func TestSubmit_EmptyCartWritesNothing(t *testing.T) {
	s := NewDemoStore()
	ctx := context.Background()

	_, err := newShopWorkflow(s, order.StockPolicyClamp, nil, nil).
		Submit(ctx, checkout("Asha"), cart.Snapshot{UserID: "u-asha"})

	assert.ErrorIs(t, err, order.ErrEmptyCart)
	all, _ := s.Orders().ListAll(ctx, order.ListFilter{})
	assert.Empty(t, all)
}

func TestSubmit_Clamp_OverOrderClampsAtZero(t *testing.T) {
	s := NewDemoStore()
	ctx := context.Background()
	snap := fillCart(t, s, "u-1", "2", 4)

	_, err := newShopWorkflow(s, order.StockPolicyClamp, nil, nil).Submit(ctx, checkout("Ravi"), snap)

	require.NoError(t, err)
	stock, _ := s.Products().GetStock(ctx, "2")
	assert.Equal(t, 0, stock)
}

func TestSubmit_Strict_OverOrderIsRejected(t *testing.T) {
	s := NewDemoStore()
	ctx := context.Background()
	snap := fillCart(t, s, "u-1", "2", 4)

	_, err := newShopWorkflow(s, order.StockPolicyStrict, nil, nil).Submit(ctx, checkout("Ravi"), snap)

	assert.ErrorIs(t, err, order.ErrInsufficientStock)
	stock, _ := s.Products().GetStock(ctx, "2")
	assert.Equal(t, 1, stock)
	all, _ := s.Orders().ListAll(ctx, order.ListFilter{})
	assert.Empty(t, all)
	left, _ := s.Carts().ListByUser(ctx, "u-1")
	assert.Len(t, left, 1)
}

type failingItems struct {
	*OrderRepository
}

func (f failingItems) CreateOrderItems(context.Context, []order.OrderItem) error {
	return errors.New("items table unavailable")
}

func TestSubmit_Clamp_CompensatesHeader(t *testing.T) {
	s := NewDemoStore()
	ctx := context.Background()
	snap := fillCart(t, s, "u-1", "4", 2)

	w := newShopWorkflow(s, order.StockPolicyClamp, nil, failingItems{s.Orders()})
	_, err := w.Submit(ctx, checkout("Asha"), snap)

	assert.ErrorIs(t, err, order.ErrOrderItemPersistence)
	all, _ := s.Orders().ListAll(ctx, order.ListFilter{})
	assert.Empty(t, all)
	stock, _ := s.Products().GetStock(ctx, "4")
	assert.Equal(t, 20, stock)
}

// readBarrier holds every GetStock until n readers have read, forcing the
// read-then-write interleaving of two concurrent orders.
type readBarrier struct {
	*ProductRepository
	arrived *sync.WaitGroup
}

func (b readBarrier) GetStock(ctx context.Context, id string) (int, error) {
	n, err := b.ProductRepository.GetStock(ctx, id)
	b.arrived.Done()
	b.arrived.Wait()
	return n, err
}

func submitConcurrently(t *testing.T, s *Store, w *order.Workflow) []error {
	t.Helper()
	snaps := []cart.Snapshot{
		fillCart(t, s, "u-1", "2", 1),
		fillCart(t, s, "u-2", "2", 1),
	}

	errs := make([]error, len(snaps))
	var wg sync.WaitGroup
	for i, snap := range snaps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = w.Submit(context.Background(), checkout("Buyer"), snap)
		}()
	}
	wg.Wait()
	return errs
}

func TestSubmit_Clamp_ConcurrentOrdersOversell(t *testing.T) {
	s := NewDemoStore()
	var arrived sync.WaitGroup
	arrived.Add(2)
	w := newShopWorkflow(s, order.StockPolicyClamp, readBarrier{s.Products(), &arrived}, nil)

	errs := submitConcurrently(t, s, w)

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	all, _ := s.Orders().ListAll(context.Background(), order.ListFilter{})
	assert.Len(t, all, 2, "both orders for the last unit are accepted")
	stock, _ := s.Products().GetStock(context.Background(), "2")
	assert.Equal(t, 0, stock)
}

func TestSubmit_Strict_ConcurrentOrdersDoNotOversell(t *testing.T) {
	s := NewDemoStore()
	w := newShopWorkflow(s, order.StockPolicyStrict, nil, nil)

	errs := submitConcurrently(t, s, w)

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, order.ErrInsufficientStock):
			rejected++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)
	stock, _ := s.Products().GetStock(context.Background(), "2")
	assert.Equal(t, 0, stock)
}
