package product

import "time"

type Category string

const (
	CategoryCats        Category = "cats"
	CategoryBirds       Category = "birds"
	CategoryFish        Category = "fish"
	CategoryFood        Category = "food"
	CategoryAccessories Category = "accessories"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryCats, CategoryBirds, CategoryFish, CategoryFood, CategoryAccessories:
		return true
	}
	return false
}

// LowStockThreshold marks products shown with a low stock badge.
const LowStockThreshold = 5

// Product prices are integer paise.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     Category  `json:"category"`
	Price        int64     `json:"price"`
	ImageURL     string    `json:"image"`
	Age          *string   `json:"age,omitempty"`
	Stock        int       `json:"stock"`
	DeliveryDays int       `json:"deliveryDays"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p *Product) InStock() bool  { return p.Stock > 0 }
func (p *Product) LowStock() bool { return p.Stock > 0 && p.Stock < LowStockThreshold }

type PriceRange string

const (
	PriceAll        PriceRange = "all"
	PriceUnder500   PriceRange = "under500"
	Price500To2000  PriceRange = "500-2000"
	Price2000To10k  PriceRange = "2000-10000"
	PriceAbove10000 PriceRange = "above10000"
)

type SortBy string

const (
	SortName      SortBy = "name"
	SortPriceLow  SortBy = "price-low"
	SortPriceHigh SortBy = "price-high"
	SortStock     SortBy = "stock"
)

// Query filters the active catalog. Zero values mean "no filter".
type Query struct {
	Search     string
	Category   Category
	PriceRange PriceRange
	Sort       SortBy
}
