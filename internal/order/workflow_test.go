package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"petshop-be/internal/cart"
	"petshop-be/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	shopTZ   = mustLoad("Asia/Kolkata")
	fixedNow = time.Date(2026, 3, 10, 10, 0, 0, 0, shopTZ)
	tomorrow = time.Date(2026, 3, 11, 0, 0, 0, 0, shopTZ)
)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

func ashaInfo() CustomerInfo {
	return CustomerInfo{
		Name:          "Asha",
		Email:         "a@x.com",
		Phone:         "9876543210",
		Address:       "12 MG Road",
		PaymentMethod: PaymentCOD,
		DeliveryDate:  tomorrow,
	}
}

func goldfishSnapshot() cart.Snapshot {
	return cart.Snapshot{
		UserID: "u-1",
		Entries: []cart.Entry{
			{ID: "c-1", UserID: "u-1", ProductID: "4", ProductName: "Goldfish - Orange", UnitPrice: 150, Quantity: 3},
		},
	}
}

type fixture struct {
	repo  *MockRepository
	stock *MockStock
	carts *MockCarts
	logs  *observer.ObservedLogs
}

func newWorkflow(t *testing.T, policy StockPolicy) (*Workflow, *fixture) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))

	f := &fixture{repo: new(MockRepository), stock: new(MockStock), carts: new(MockCarts), logs: logs}
	w := NewWorkflow(f.repo, f.stock, f.carts,
		WithStockPolicy(policy),
		WithLocation(shopTZ),
		WithClock(func() time.Time { return fixedNow }),
		withNumberGenerator(func(time.Time) (string, error) { return "ORD-20260310-043000-000-TEST", nil }),
	)
	return w, f
}

func TestSubmit_Clamp_AshaScenario(t *testing.T) {
	w, f := newWorkflow(t, StockPolicyClamp)
	ctx := context.Background()

	f.repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	f.repo.On("CreateOrderItems", mock.Anything, mock.Anything).Return(nil)
	f.stock.On("GetStock", mock.Anything, "4").Return(20, nil)
	f.stock.On("SetStock", mock.Anything, "4", 17).Return(nil)
	f.carts.On("ClearCart", mock.Anything, "u-1").Return(nil)

	o, err := w.Submit(ctx, ashaInfo(), goldfishSnapshot())

	require.NoError(t, err)
	assert.Equal(t, int64(450), o.TotalAmount)
	require.Len(t, o.Items, 1)
	assert.Equal(t, int64(450), o.Items[0].Subtotal)
	assert.Equal(t, o.ID, o.Items[0].OrderID)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "ORD-20260310-043000-000-TEST", o.OrderNumber)
	assert.Equal(t, "Asha", o.CustomerName)
	assert.Equal(t, o.TotalAmount, o.ItemsTotal())

	f.repo.AssertExpectations(t)
	f.stock.AssertExpectations(t)
	f.carts.AssertExpectations(t)
	f.repo.AssertNotCalled(t, "CreateOrderTx", mock.Anything, mock.Anything)
}

func TestSubmit_Clamp_StockNeverNegative(t *testing.T) {
	w, f := newWorkflow(t, StockPolicyClamp)

	snap := cart.Snapshot{UserID: "u-1", Entries: []cart.Entry{
		{ProductID: "1", ProductName: "Persian Cat", UnitPrice: 2500000, Quantity: 5},
	}}

	f.repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("CreateOrderItems", mock.Anything, mock.Anything).Return(nil)
	f.stock.On("GetStock", mock.Anything, "1").Return(2, nil)
	f.stock.On("SetStock", mock.Anything, "1", 0).Return(nil)
	f.carts.On("ClearCart", mock.Anything, "u-1").Return(nil)

	_, err := w.Submit(context.Background(), ashaInfo(), snap)

	require.NoError(t, err)
	f.stock.AssertCalled(t, "SetStock", mock.Anything, "1", 0)
}

func TestSubmit_EmptyCart_NoWrites(t *testing.T) {
	for _, policy := range []StockPolicy{StockPolicyStrict, StockPolicyClamp} {
		t.Run(string(policy), func(t *testing.T) {
			w, f := newWorkflow(t, policy)

			o, err := w.Submit(context.Background(), ashaInfo(), cart.Snapshot{UserID: "u-1"})

			assert.Nil(t, o)
			assert.ErrorIs(t, err, ErrEmptyCart)
			f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
			f.repo.AssertNotCalled(t, "CreateOrderTx", mock.Anything, mock.Anything)
			f.carts.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_DeliveryDate(t *testing.T) {
	tests := []struct {
		name  string
		date  time.Time
		valid bool
	}{
		{"today", time.Date(2026, 3, 10, 23, 0, 0, 0, shopTZ), false},
		{"yesterday", time.Date(2026, 3, 9, 12, 0, 0, 0, shopTZ), false},
		{"tomorrow", tomorrow, true},
		// 2026-03-10 20:00 UTC is already 2026-03-11 in the shop
		{"tomorrow in shop zone", time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, f := newWorkflow(t, StockPolicyStrict)
			info := ashaInfo()
			info.DeliveryDate = tt.date

			if tt.valid {
				f.repo.On("CreateOrderTx", mock.Anything, mock.Anything).Return(nil)
				f.carts.On("ClearCart", mock.Anything, "u-1").Return(nil)
			}

			_, err := w.Submit(context.Background(), info, goldfishSnapshot())

			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidDeliveryDate)
			f.repo.AssertNotCalled(t, "CreateOrderTx", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_InvalidCustomerInfo(t *testing.T) {
	w, f := newWorkflow(t, StockPolicyStrict)
	info := ashaInfo()
	info.Phone = "12345"

	_, err := w.Submit(context.Background(), info, goldfishSnapshot())

	assert.ErrorIs(t, err, ErrInvalidCustomerInfo)
	f.repo.AssertNotCalled(t, "CreateOrderTx", mock.Anything, mock.Anything)
}

func TestSubmit_Clamp_HeaderFailure(t *testing.T) {
	w, f := newWorkflow(t, StockPolicyClamp)
	f.repo.On("CreateOrder", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := w.Submit(context.Background(), ashaInfo(), goldfishSnapshot())

	assert.ErrorIs(t, err, ErrOrderPersistence)
	f.repo.AssertNotCalled(t, "CreateOrderItems", mock.Anything, mock.Anything)
	f.stock.AssertNotCalled(t, "GetStock", mock.Anything, mock.Anything)
	f.carts.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
}

func TestSubmit_Clamp_ItemFailureCompensates(t *testing.T) {
	w, f := newWorkflow(t, StockPolicyClamp)

	var stored *Order
	f.repo.On("CreateOrder", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*Order) }).
		Return(nil)
	f.repo.On("CreateOrderItems", mock.Anything, mock.Anything).Return(ErrOrderItemPersistence)
	f.repo.On("DeleteOrder", mock.Anything, mock.Anything).Return(nil)

	_, err := w.Submit(context.Background(), ashaInfo(), goldfishSnapshot())

	assert.ErrorIs(t, err, ErrOrderItemPersistence)
	require.NotNil(t, stored)
	f.repo.AssertCalled(t, "DeleteOrder", mock.Anything, stored.ID)
	f.stock.AssertNotCalled(t, "GetStock", mock.Anything, mock.Anything)
	f.carts.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
}

func TestSubmit_Clamp_OrphanedHeaderIsLogged(t *testing.T) {
	w, f := newWorkflow(t, StockPolicyClamp)
	f.repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("CreateOrderItems", mock.Anything, mock.Anything).Return(errors.New("timeout"))
	f.repo.On("DeleteOrder", mock.Anything, mock.Anything).Return(errors.New("still down"))

	_, err := w.Submit(context.Background(), ashaInfo(), goldfishSnapshot())

	assert.ErrorIs(t, err, ErrOrderItemPersistence)
	assert.Equal(t, 1, f.logs.FilterMessage("orphaned order header").Len())
}

func TestSubmit_Clamp_StockFailureIsWarningOnly(t *testing.T) {
	w, f := newWorkflow(t, StockPolicyClamp)
	snap := cart.Snapshot{UserID: "u-1", Entries: []cart.Entry{
		{ProductID: "4", ProductName: "Goldfish", UnitPrice: 15000, Quantity: 1},
		{ProductID: "6", ProductName: "Collar", UnitPrice: 45000, Quantity: 2},
	}}

	f.repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("CreateOrderItems", mock.Anything, mock.Anything).Return(nil)
	f.stock.On("GetStock", mock.Anything, "4").Return(0, errors.New("read failed"))
	f.stock.On("GetStock", mock.Anything, "6").Return(8, nil)
	f.stock.On("SetStock", mock.Anything, "6", 6).Return(nil)
	f.carts.On("ClearCart", mock.Anything, "u-1").Return(nil)

	o, err := w.Submit(context.Background(), ashaInfo(), snap)

	require.NoError(t, err)
	assert.Equal(t, int64(105000), o.TotalAmount)
	assert.Equal(t, 1, f.logs.FilterMessage("StockReconciliationWarning").Len())
	f.stock.AssertNotCalled(t, "SetStock", mock.Anything, "4", mock.Anything)
	f.carts.AssertExpectations(t)
}

func TestSubmit_CartClearFailureIsWarningOnly(t *testing.T) {
	w, f := newWorkflow(t, StockPolicyStrict)
	f.repo.On("CreateOrderTx", mock.Anything, mock.Anything).Return(nil)
	f.carts.On("ClearCart", mock.Anything, "u-1").Return(errors.New("delete failed"))

	o, err := w.Submit(context.Background(), ashaInfo(), goldfishSnapshot())

	require.NoError(t, err)
	assert.NotNil(t, o)
	assert.Equal(t, 1, f.logs.FilterMessage("CartClearWarning").Len())
}

func TestSubmit_Strict(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		w, f := newWorkflow(t, StockPolicyStrict)
		f.repo.On("CreateOrderTx", mock.Anything, mock.MatchedBy(func(o *Order) bool {
			return o.TotalAmount == 450 && len(o.Items) == 1 && o.Status == StatusPending
		})).Return(nil)
		f.carts.On("ClearCart", mock.Anything, "u-1").Return(nil)

		o, err := w.Submit(context.Background(), ashaInfo(), goldfishSnapshot())

		require.NoError(t, err)
		assert.Equal(t, int64(450), o.TotalAmount)
		f.stock.AssertNotCalled(t, "SetStock", mock.Anything, mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		w, f := newWorkflow(t, StockPolicyStrict)
		f.repo.On("CreateOrderTx", mock.Anything, mock.Anything).
			Return(errors.Join(ErrInsufficientStock, errors.New("product 4")))

		_, err := w.Submit(context.Background(), ashaInfo(), goldfishSnapshot())

		assert.ErrorIs(t, err, ErrInsufficientStock)
		f.carts.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
	})

	t.Run("OtherFailureIsPersistenceError", func(t *testing.T) {
		w, f := newWorkflow(t, StockPolicyStrict)
		f.repo.On("CreateOrderTx", mock.Anything, mock.Anything).Return(errors.New("tx aborted"))

		_, err := w.Submit(context.Background(), ashaInfo(), goldfishSnapshot())

		assert.ErrorIs(t, err, ErrOrderPersistence)
	})
}

func TestSubmit_RequiresUser(t *testing.T) {
	w, _ := newWorkflow(t, StockPolicyStrict)
	snap := goldfishSnapshot()
	snap.UserID = ""

	_, err := w.Submit(context.Background(), ashaInfo(), snap)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNewWorkflow_DefaultsToStrict(t *testing.T) {
	w := NewWorkflow(new(MockRepository), new(MockStock), new(MockCarts))
	assert.Equal(t, StockPolicyStrict, w.Policy())
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", outcome(nil))
	assert.Equal(t, "empty_cart", outcome(ErrEmptyCart))
	assert.Equal(t, "insufficient_stock", outcome(wrapAs(errors.New("x"), ErrInsufficientStock)))
	assert.Equal(t, "item_persistence_error", outcome(ErrOrderItemPersistence))
	assert.Equal(t, "error", outcome(errors.New("x")))
}

// liveCtx matches contexts that have not been cancelled.
var liveCtx = mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })

func TestSubmit_CallerCancelsAfterFirstWrite(t *testing.T) {
	t.Run("clamp still compensates the header", func(t *testing.T) {
		w, f := newWorkflow(t, StockPolicyClamp)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		f.repo.On("CreateOrder", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(nil)
		f.repo.On("CreateOrderItems", liveCtx, mock.Anything).Return(errors.New("items rejected"))
		f.repo.On("DeleteOrder", liveCtx, mock.AnythingOfType("string")).Return(nil)

		_, err := w.Submit(ctx, ashaInfo(), goldfishSnapshot())

		require.ErrorIs(t, err, ErrOrderItemPersistence)
		f.repo.AssertExpectations(t)
		assert.Equal(t, 0, f.logs.FilterMessage("orphaned order header").Len())
	})

	t.Run("clamp finishes stock and cart", func(t *testing.T) {
		w, f := newWorkflow(t, StockPolicyClamp)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		f.repo.On("CreateOrder", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(nil)
		f.repo.On("CreateOrderItems", liveCtx, mock.Anything).Return(nil)
		f.stock.On("GetStock", liveCtx, "4").Return(20, nil)
		f.stock.On("SetStock", liveCtx, "4", 17).Return(nil)
		f.carts.On("ClearCart", liveCtx, "u-1").Return(nil)

		_, err := w.Submit(ctx, ashaInfo(), goldfishSnapshot())

		require.NoError(t, err)
		f.stock.AssertExpectations(t)
		f.carts.AssertExpectations(t)
	})

	t.Run("strict still clears the cart", func(t *testing.T) {
		w, f := newWorkflow(t, StockPolicyStrict)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		f.repo.On("CreateOrderTx", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(nil)
		f.carts.On("ClearCart", liveCtx, "u-1").Return(nil)

		o, err := w.Submit(ctx, ashaInfo(), goldfishSnapshot())

		require.NoError(t, err)
		require.NotNil(t, o)
		f.carts.AssertExpectations(t)
		assert.Equal(t, 0, f.logs.FilterMessage("CartClearWarning").Len())
	})
}
