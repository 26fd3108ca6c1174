package order

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "cod"
	PaymentUPI          PaymentMethod = "upi"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentUPI, PaymentBankTransfer:
		return true
	}
	return false
}

// Label is the customer facing name of the payment method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCOD:
		return "Cash on Delivery (COD)"
	case PaymentUPI:
		return "UPI Payment"
	case PaymentBankTransfer:
		return "Bank Transfer"
	}
	return string(m)
}

// CustomerInfo is the contact snapshot copied onto the order at submission.
type CustomerInfo struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	PaymentMethod PaymentMethod
	DeliveryDate  time.Time
	Notes         *string
}

// Order amounts are integer paise and frozen at creation.
type Order struct {
	ID              string        `json:"id"`
	OrderNumber     string        `json:"orderNumber"`
	UserID          string        `json:"userId"`
	CustomerName    string        `json:"customerName"`
	CustomerEmail   string        `json:"customerEmail"`
	CustomerPhone   string        `json:"customerPhone"`
	DeliveryAddress string        `json:"deliveryAddress"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	TotalAmount     int64         `json:"totalAmount"`
	DeliveryDate    time.Time     `json:"deliveryDate"`
	Status          Status        `json:"status"`
	Notes           *string       `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	Items           []OrderItem   `json:"items"`
}

type OrderItem struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"orderId"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	ProductPrice int64     `json:"productPrice"`
	Quantity     int       `json:"quantity"`
	Subtotal     int64     `json:"subtotal"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ItemsTotal sums the item subtotals.
func (o *Order) ItemsTotal() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.Subtotal
	}
	return total
}

// ListFilter narrows the admin order listing.
type ListFilter struct {
	Status *Status
	Limit  int
	Page   int
}
