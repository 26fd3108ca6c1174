package graph

import (
	"testing"
	"time"

	"petshop-be/internal/graph/model"
	"petshop-be/internal/notification"
	"petshop-be/internal/order"
	"petshop-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToProductQuery(t *testing.T) {
	assert.Equal(t, product.Query{}, toProductQuery(nil))

	search := "cat"
	cat := model.CategoryAccessories
	band := model.PriceRangeFrom500To2000
	sort := model.ProductSortPriceLow

	q := toProductQuery(&model.ProductFilter{Search: &search, Category: &cat, PriceRange: &band, SortBy: &sort})

	assert.Equal(t, product.Query{
		Search:     "cat",
		Category:   product.CategoryAccessories,
		PriceRange: product.Price500To2000,
		Sort:       product.SortPriceLow,
	}, q)
}

func TestEnumMappingsCoverSchema(t *testing.T) {
	for _, c := range model.AllCategory {
		pc := toProductQuery(&model.ProductFilter{Category: &c}).Category
		assert.True(t, pc.Valid(), c)
		assert.Equal(t, c, toGraphQLProduct(&product.Product{Category: pc}).Category)
	}
	for _, r := range model.AllPriceRange {
		assert.Contains(t, priceRanges, r)
	}
	for _, s := range model.AllProductSort {
		assert.Contains(t, productSorts, s)
	}
	for _, m := range model.AllPaymentMethod {
		info, err := (&Resolver{}).customerInfo(model.PlaceOrderInput{PaymentMethod: m, DeliveryDate: "2026-03-11"})
		require.NoError(t, err)
		assert.True(t, info.PaymentMethod.Valid(), m)
	}
	for _, s := range model.AllOrderStatus {
		_, err := order.ParseStatus(s.String())
		assert.NoError(t, err, s)
	}
}

func TestCustomerInfo_DeliveryDateInShopZone(t *testing.T) {
	r := &Resolver{Location: ist}

	info, err := r.customerInfo(model.PlaceOrderInput{PaymentMethod: model.PaymentMethodUpi, DeliveryDate: " 2026-03-11 "})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, ist), info.DeliveryDate)
	assert.Equal(t, order.PaymentUPI, info.PaymentMethod)

	_, err = r.customerInfo(model.PlaceOrderInput{DeliveryDate: "tomorrow"})
	assert.ErrorIs(t, err, order.ErrInvalidDeliveryDate)
}

func TestToGraphQLOrder(t *testing.T) {
	created := time.Date(2026, 3, 10, 4, 30, 0, 0, time.UTC)
	o := &order.Order{
		ID:            "o-1",
		OrderNumber:   "ORD-1",
		PaymentMethod: order.PaymentBankTransfer,
		TotalAmount:   45000,
		DeliveryDate:  time.Date(2026, 3, 11, 0, 0, 0, 0, ist),
		Status:        order.StatusShipped,
		CreatedAt:     created,
		UpdatedAt:     created,
		Items: []order.OrderItem{
			{ID: "i-1", ProductID: "4", ProductName: "Goldfish", ProductPrice: 15000, Quantity: 3, Subtotal: 45000},
		},
	}

	got := toGraphQLOrder(o)

	assert.Equal(t, model.PaymentMethodBankTransfer, got.PaymentMethod)
	assert.Equal(t, model.OrderStatusShipped, got.Status)
	assert.Equal(t, "2026-03-11", got.DeliveryDate)
	assert.Equal(t, "2026-03-10T04:30:00Z", got.CreatedAt)
	assert.Equal(t, 45000, got.TotalAmount)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 15000, got.Items[0].ProductPrice)
}

func TestToGraphQLNotifications(t *testing.T) {
	got := toGraphQLNotifications([]notification.Result{
		{Channel: "whatsapp", OK: true, Detail: "https://wa.me/91"},
		{Channel: "email", Error: "email provider rejected the message"},
	})

	require.Len(t, got, 2)
	require.NotNil(t, got[0].Detail)
	assert.Nil(t, got[0].Error)
	assert.Nil(t, got[1].Detail)
	require.NotNil(t, got[1].Error)
	assert.False(t, got[1].Ok)
}
