package notification

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"petshop-be/internal/order"
	"petshop-be/internal/payment"
)

// ShopInfo is the sender identity printed in every message.
type ShopInfo struct {
	Name     string
	Phone    string
	Email    string
	Location *time.Location
}

const dateLayout = "2/1/2006"

func (s ShopInfo) date(t time.Time) string {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dateLayout)
}

// Params flattens an order into the key/value set understood by the
// message templates. The order is only read.
func Params(o *order.Order, shop ShopInfo) map[string]string {
	deliveryDate := shop.date(o.DeliveryDate)
	total := FormatRupees(o.TotalAmount)

	instructions := strings.Join(payment.Render(string(o.PaymentMethod), payment.InstructionVars{
		"amount":       "₹" + total,
		"order_number": o.OrderNumber,
		"shop_phone":   shop.Phone,
	}), "\n")

	return map[string]string{
		"to_email":             o.CustomerEmail,
		"to_name":              o.CustomerName,
		"customer_name":        o.CustomerName,
		"customer_email":       o.CustomerEmail,
		"order_id":             o.OrderNumber,
		"order_number":         o.OrderNumber,
		"order_items":          ItemLines(o.Items),
		"total_amount":         total,
		"delivery_address":     o.DeliveryAddress,
		"customer_phone":       o.CustomerPhone,
		"payment_method":       o.PaymentMethod.Label(),
		"payment_instructions": instructions,
		"order_date":           shop.date(o.CreatedAt),
		"delivery_date":        deliveryDate,
		"shop_phone":           shop.Phone,
		"shop_email":           shop.Email,
		"message": fmt.Sprintf(
			"Thank you for your order! Your order #%s has been confirmed and will be delivered on %s.",
			o.OrderNumber, deliveryDate,
		),
	}
}

// ItemLines renders one "• name - Qty: n - ₹x" line per item.
func ItemLines(items []order.OrderItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("• %s - Qty: %d - ₹%s",
			it.ProductName, it.Quantity, FormatRupees(it.Subtotal)))
	}
	return strings.Join(lines, "\n")
}

// FormatRupees renders paise as rupees with Indian digit grouping
// (12,34,567.50). Whole rupee amounts have no decimals.
func FormatRupees(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}

	rupees := strconv.FormatInt(paise/100, 10)
	if len(rupees) > 3 {
		head, tail := rupees[:len(rupees)-3], rupees[len(rupees)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		groups = append([]string{head}, groups...)
		rupees = strings.Join(groups, ",") + "," + tail
	}

	if frac := paise % 100; frac != 0 {
		return fmt.Sprintf("%s%s.%02d", sign, rupees, frac)
	}
	return sign + rupees
}
