package cart

import "time"

// Entry is one product line of a user's cart. UnitPrice is captured when the
// product is first added and is what the customer is charged.
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	UnitPrice   int64     `json:"unitPrice"`
	Quantity    int       `json:"quantity"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (e *Entry) Subtotal() int64 {
	return e.UnitPrice * int64(e.Quantity)
}

// Snapshot is a point-in-time copy of a cart handed to checkout.
type Snapshot struct {
	UserID  string
	Entries []Entry
}

func (s Snapshot) Empty() bool {
	return len(s.Entries) == 0
}

// Total sums price times quantity over the stored entry prices.
func (s Snapshot) Total() int64 {
	var total int64
	for i := range s.Entries {
		total += s.Entries[i].Subtotal()
	}
	return total
}

func (s Snapshot) ItemCount() int {
	count := 0
	for _, e := range s.Entries {
		count += e.Quantity
	}
	return count
}

type CreateEntryParams struct {
	UserID      string
	ProductID   string
	ProductName string
	UnitPrice   int64
	Quantity    int
}
