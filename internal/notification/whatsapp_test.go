package notification

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhoneIN(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"9876543210", "919876543210", true},
		{"+91 98765 43210", "919876543210", true},
		{"09876543210", "919876543210", true},
		{"919876543210", "919876543210", true},
		{"12345", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizePhoneIN(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWhatsAppChannel_Send(t *testing.T) {
	ch := NewWhatsAppChannel(testShop())
	o := testOrder()

	link, err := ch.Send(context.Background(), o, Params(o, testShop()))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
	u, err := url.Parse(link)
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Contains(t, text, "Catzo Pet Shop - Order Confirmation")
	assert.Contains(t, text, "Dear Asha,")
	assert.Contains(t, text, "• Goldfish - Orange - Qty: 3 - ₹450")
	assert.Contains(t, text, "*Total Amount:* ₹1,350")
	assert.Contains(t, text, "Keep ₹1,350 ready in cash when your order arrives")
}

func TestWhatsAppChannel_SpacesAreNotPlusEncoded(t *testing.T) {
	ch := NewWhatsAppChannel(testShop())
	o := testOrder()
	o.DeliveryAddress = "Flat 3 & 4, A+B Towers, key=gate"

	link, err := ch.Send(context.Background(), o, Params(o, testShop()))
	require.NoError(t, err)

	raw := strings.TrimPrefix(link, "https://wa.me/919876543210?text=")
	assert.NotContains(t, raw, "+")
	assert.NotContains(t, raw, " ")
	assert.Contains(t, raw, "Dear%20Asha")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Len(t, u.Query(), 1)
	assert.Contains(t, u.Query().Get("text"), "Flat 3 & 4, A+B Towers, key=gate")
}

func TestWhatsAppChannel_NoPhone(t *testing.T) {
	ch := NewWhatsAppChannel(testShop())
	o := testOrder()
	o.CustomerPhone = "n/a"

	_, err := ch.Send(context.Background(), o, Params(o, testShop()))
	assert.ErrorIs(t, err, ErrNoPhone)
}
