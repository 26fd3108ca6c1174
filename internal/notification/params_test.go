package notification

import (
	"testing"
	"time"

	"petshop-be/internal/order"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		paise int64
		want  string
	}{
		{0, "0"},
		{45000, "450"},
		{120000, "1,200"},
		{2500000, "25,000"},
		{3000000, "30,000"},
		{12345678, "1,23,456.78"},
		{1000000000, "1,00,00,000"},
		{15050, "150.50"},
		{-45000, "-450"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRupees(tt.paise))
		})
	}
}

func testOrder() *order.Order {
	ist := time.FixedZone("IST", 5*3600+1800)
	return &order.Order{
		ID:              "o-1",
		OrderNumber:     "ORD-20260310-043000-000-ABCD",
		UserID:          "u-1",
		CustomerName:    "Asha",
		CustomerEmail:   "a@x.com",
		CustomerPhone:   "9876543210",
		DeliveryAddress: "12 MG Road",
		PaymentMethod:   order.PaymentCOD,
		TotalAmount:     135000,
		DeliveryDate:    time.Date(2026, 3, 11, 0, 0, 0, 0, ist),
		Status:          order.StatusPending,
		CreatedAt:       time.Date(2026, 3, 10, 4, 30, 0, 0, time.UTC),
		Items: []order.OrderItem{
			{ProductName: "Goldfish - Orange", ProductPrice: 15000, Quantity: 3, Subtotal: 45000},
			{ProductName: "Cat Collar", ProductPrice: 45000, Quantity: 2, Subtotal: 90000},
		},
	}
}

func testShop() ShopInfo {
	return ShopInfo{
		Name:     "Catzo Pet Shop",
		Phone:    "8637498818",
		Email:    "shop@example.com",
		Location: time.FixedZone("IST", 5*3600+1800),
	}
}

func TestParams(t *testing.T) {
	p := Params(testOrder(), testShop())

	assert.Equal(t, "a@x.com", p["to_email"])
	assert.Equal(t, "Asha", p["to_name"])
	assert.Equal(t, "ORD-20260310-043000-000-ABCD", p["order_number"])
	assert.Equal(t, "• Goldfish - Orange - Qty: 3 - ₹450\n• Cat Collar - Qty: 2 - ₹900", p["order_items"])
	assert.Equal(t, "1,350", p["total_amount"])
	assert.Equal(t, "Cash on Delivery (COD)", p["payment_method"])
	assert.Contains(t, p["payment_instructions"], "Keep ₹1,350 ready in cash")
	assert.Equal(t, "10/3/2026", p["order_date"])
	assert.Equal(t, "11/3/2026", p["delivery_date"])
	assert.Equal(t, "8637498818", p["shop_phone"])
	assert.Equal(t, "shop@example.com", p["shop_email"])
	assert.Contains(t, p["message"], "#ORD-20260310-043000-000-ABCD")
	assert.Contains(t, p["message"], "11/3/2026")
}
