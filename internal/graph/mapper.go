package graph

import (
	"strings"
	"time"

	"petshop-be/internal/cart"
	"petshop-be/internal/graph/model"
	"petshop-be/internal/notification"
	"petshop-be/internal/order"
	"petshop-be/internal/product"
	"petshop-be/internal/user"
)

const deliveryDateLayout = "2006-01-02"

var priceRanges = map[model.PriceRange]product.PriceRange{
	model.PriceRangeAll:             product.PriceAll,
	model.PriceRangeUnder500:        product.PriceUnder500,
	model.PriceRangeFrom500To2000:   product.Price500To2000,
	model.PriceRangeFrom2000To10000: product.Price2000To10k,
	model.PriceRangeAbove10000:      product.PriceAbove10000,
}

var productSorts = map[model.ProductSort]product.SortBy{
	model.ProductSortName:      product.SortName,
	model.ProductSortPriceLow:  product.SortPriceLow,
	model.ProductSortPriceHigh: product.SortPriceHigh,
	model.ProductSortStock:     product.SortStock,
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toProductQuery(f *model.ProductFilter) product.Query {
	var q product.Query
	if f == nil {
		return q
	}
	if f.Search != nil {
		q.Search = *f.Search
	}
	if f.Category != nil {
		q.Category = product.Category(strings.ToLower(f.Category.String()))
	}
	if f.PriceRange != nil {
		q.PriceRange = priceRanges[*f.PriceRange]
	}
	if f.SortBy != nil {
		q.Sort = productSorts[*f.SortBy]
	}
	return q
}

func toGraphQLProduct(p *product.Product) *model.Product {
	return &model.Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     model.Category(strings.ToUpper(string(p.Category))),
		Price:        int(p.Price),
		ImageURL:     p.ImageURL,
		Age:          p.Age,
		Stock:        p.Stock,
		DeliveryDays: p.DeliveryDays,
		InStock:      p.InStock(),
		LowStock:     p.LowStock(),
	}
}

func toGraphQLCartItem(e *cart.Entry) *model.CartItem {
	return &model.CartItem{
		ID:          e.ID,
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		UnitPrice:   int(e.UnitPrice),
		Quantity:    e.Quantity,
		Stock:       e.Stock,
		LineTotal:   int(e.Subtotal()),
	}
}

func toGraphQLCart(snap cart.Snapshot) *model.Cart {
	items := make([]*model.CartItem, 0, len(snap.Entries))
	for i := range snap.Entries {
		items = append(items, toGraphQLCartItem(&snap.Entries[i]))
	}
	return &model.Cart{
		Items:     items,
		Total:     int(snap.Total()),
		ItemCount: snap.ItemCount(),
	}
}

func toGraphQLOrder(o *order.Order) *model.Order {
	items := make([]*model.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, &model.OrderItem{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductPrice: int(it.ProductPrice),
			Quantity:     it.Quantity,
			Subtotal:     int(it.Subtotal),
		})
	}
	return &model.Order{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		DeliveryAddress: o.DeliveryAddress,
		PaymentMethod:   model.PaymentMethod(strings.ToUpper(string(o.PaymentMethod))),
		TotalAmount:     int(o.TotalAmount),
		DeliveryDate:    o.DeliveryDate.Format(deliveryDateLayout),
		Status:          model.OrderStatus(strings.ToUpper(string(o.Status))),
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       o.UpdatedAt.Format(time.RFC3339),
		Items:           items,
	}
}

func toGraphQLOrders(orders []*order.Order) []*model.Order {
	out := make([]*model.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toGraphQLOrder(o))
	}
	return out
}

func toGraphQLNotifications(results []notification.Result) []*model.NotificationResult {
	out := make([]*model.NotificationResult, 0, len(results))
	for _, r := range results {
		out = append(out, &model.NotificationResult{
			Channel: r.Channel,
			Ok:      r.OK,
			Detail:  strPtr(r.Detail),
			Error:   strPtr(r.Error),
		})
	}
	return out
}

func toGraphQLProfile(p *user.Profile) *model.Profile {
	return &model.Profile{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Phone:     p.Phone,
		Address:   p.Address,
		Role:      model.Role(p.Role),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}
