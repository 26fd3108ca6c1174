package order

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusConfirmed, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 678*int(time.Millisecond), time.UTC)

	num, err := NewOrderNumber(now)
	require.NoError(t, err)

	parts := strings.Split(num, "-")
	require.Len(t, parts, 5)
	assert.Equal(t, "ORD", parts[0])
	assert.Equal(t, "20260102", parts[1])
	assert.Equal(t, "030405", parts[2])
	assert.Equal(t, "678", parts[3])
	assert.Regexp(t, regexp.MustCompile(`^[A-Z2-9]{4}$`), parts[4])
}

func TestNewOrderNumber_UsesUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	num, err := NewOrderNumber(time.Date(2026, 1, 2, 1, 0, 0, 0, ist))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(num, "ORD-20260101-193000-000-"))
}

func TestValidateCustomerInfo(t *testing.T) {
	base := CustomerInfo{
		Name:          "Asha",
		Email:         "a@x.com",
		Phone:         "9876543210",
		Address:       "12 MG Road",
		PaymentMethod: PaymentUPI,
	}
	assert.NoError(t, ValidateCustomerInfo(base))

	withPrefix := base
	withPrefix.Phone = "+919876543210"
	assert.NoError(t, ValidateCustomerInfo(withPrefix))

	tests := []struct {
		name   string
		mutate func(*CustomerInfo)
	}{
		{"blank name", func(c *CustomerInfo) { c.Name = "  " }},
		{"bad email", func(c *CustomerInfo) { c.Email = "asha@" }},
		{"short phone", func(c *CustomerInfo) { c.Phone = "98765" }},
		{"phone starting with 5", func(c *CustomerInfo) { c.Phone = "5876543210" }},
		{"blank address", func(c *CustomerInfo) { c.Address = "" }},
		{"unknown payment", func(c *CustomerInfo) { c.PaymentMethod = "card" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := base
			tt.mutate(&info)
			assert.ErrorIs(t, ValidateCustomerInfo(info), ErrInvalidCustomerInfo)
		})
	}
}

func TestPaymentMethod_Label(t *testing.T) {
	assert.Equal(t, "Cash on Delivery (COD)", PaymentCOD.Label())
	assert.Equal(t, "UPI Payment", PaymentUPI.Label())
	assert.Equal(t, "Bank Transfer", PaymentBankTransfer.Label())
	assert.False(t, PaymentMethod("card").Valid())
}

func TestQuantitiesByProduct(t *testing.T) {
	got := quantitiesByProduct([]OrderItem{
		{ProductID: "6", Quantity: 1},
		{ProductID: "4", Quantity: 2},
		{ProductID: "6", Quantity: 3},
	})

	assert.Equal(t, []productQty{{productID: "4", qty: 2}, {productID: "6", qty: 4}}, got)
}
