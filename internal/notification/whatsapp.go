package notification

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"petshop-be/internal/order"
)

const whatsappBaseURL = "https://wa.me/"

// WhatsAppChannel produces a click-to-chat link carrying the order
// confirmation. Nothing is sent from the server.
type WhatsAppChannel struct {
	shop ShopInfo
}

func NewWhatsAppChannel(shop ShopInfo) *WhatsAppChannel {
	return &WhatsAppChannel{shop: shop}
}

func (c *WhatsAppChannel) Name() string { return "whatsapp" }

func (c *WhatsAppChannel) Send(_ context.Context, o *order.Order, params map[string]string) (string, error) {
	phone, ok := NormalizePhoneIN(o.CustomerPhone)
	if !ok {
		return "", ErrNoPhone
	}
	return whatsappBaseURL + phone + "?text=" + escapeText(c.message(o, params)), nil
}

// escapeText percent-encodes spaces as %20, which every WhatsApp client
// decodes. url.PathEscape alone would leave '&' and '=' from the address
// unescaped and cut the query short.
func escapeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (c *WhatsAppChannel) message(o *order.Order, params map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🐾 *%s - Order Confirmation*\n\n", c.shop.Name)
	fmt.Fprintf(&b, "Dear %s,\n\n", o.CustomerName)
	b.WriteString("Your order has been confirmed! 🎉\n\n")
	b.WriteString("📋 *Order Details:*\n")
	fmt.Fprintf(&b, "Order ID: %s\n", o.OrderNumber)
	fmt.Fprintf(&b, "Order Date: %s\n", params["order_date"])
	fmt.Fprintf(&b, "Delivery Date: %s\n\n", params["delivery_date"])
	b.WriteString("🛍️ *Items Ordered:*\n")
	b.WriteString(params["order_items"])
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "💰 *Total Amount:* ₹%s\n", params["total_amount"])
	fmt.Fprintf(&b, "💳 *Payment Method:* %s\n", params["payment_method"])
	if steps := params["payment_instructions"]; steps != "" {
		b.WriteString(steps)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "📍 *Delivery Address:*\n%s\n\n", o.DeliveryAddress)
	fmt.Fprintf(&b, "📞 *Contact:* %s\n\n", o.CustomerPhone)
	b.WriteString("For any queries, contact us:\n")
	fmt.Fprintf(&b, "📞 Phone: %s\n", c.shop.Phone)
	fmt.Fprintf(&b, "📧 Email: %s\n\n", c.shop.Email)
	fmt.Fprintf(&b, "Thank you for choosing %s!", c.shop.Name)
	return b.String()
}

// NormalizePhoneIN returns the number as 91XXXXXXXXXX digits. Numbers
// without a country code are assumed to be Indian.
func NormalizePhoneIN(phone string) (string, bool) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case len(d) == 10:
		d = "91" + d
	case len(d) == 11 && d[0] == '0':
		d = "91" + d[1:]
	case len(d) == 12 && strings.HasPrefix(d, "91"):
	default:
		return "", false
	}
	return d, true
}
