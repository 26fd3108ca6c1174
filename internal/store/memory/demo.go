package memory

import (
	"context"

	"petshop-be/internal/auth"
	"petshop-be/internal/product"
	"petshop-be/internal/user"
)

func strPtr(s string) *string { return &s }

// DemoProducts is the catalog shown when the shop runs without a database.
// Prices are paise.
func DemoProducts() []*product.Product {
	return []*product.Product{
		{
			ID:           "1",
			Name:         "Persian Cat - Snow White",
			Category:     product.CategoryCats,
			Price:        2500000,
			ImageURL:     "https://images.pexels.com/photos/617278/pexels-photo-617278.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description:  "Beautiful Persian cat with long white fur and blue eyes. Very friendly and well-trained.",
			Age:          strPtr("3 months"),
			Stock:        2,
			DeliveryDays: 3,
			IsActive:     true,
		},
		{
			ID:           "2",
			Name:         "British Shorthair - Grey",
			Category:     product.CategoryCats,
			Price:        3000000,
			ImageURL:     "https://images.pexels.com/photos/1741205/pexels-photo-1741205.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description:  "Adorable British Shorthair with thick grey coat. Perfect family companion.",
			Age:          strPtr("4 months"),
			Stock:        1,
			DeliveryDays: 2,
			IsActive:     true,
		},
		{
			ID:           "3",
			Name:         "Canary Bird - Yellow",
			Category:     product.CategoryBirds,
			Price:        350000,
			ImageURL:     "https://images.pexels.com/photos/1661179/pexels-photo-1661179.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description:  "Beautiful singing canary with bright yellow feathers. Great for beginners.",
			Age:          strPtr("6 months"),
			Stock:        5,
			DeliveryDays: 1,
			IsActive:     true,
		},
		{
			ID:           "4",
			Name:         "Goldfish - Orange",
			Category:     product.CategoryFish,
			Price:        15000,
			ImageURL:     "https://images.pexels.com/photos/1335971/pexels-photo-1335971.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description:  "Classic goldfish perfect for aquarium beginners. Easy to care for.",
			Stock:        20,
			DeliveryDays: 1,
			IsActive:     true,
		},
		{
			ID:           "5",
			Name:         "Premium Cat Food - 5kg",
			Category:     product.CategoryFood,
			Price:        120000,
			ImageURL:     "https://images.pexels.com/photos/1458925/pexels-photo-1458925.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description:  "High-quality dry cat food with essential nutrients for healthy growth.",
			Stock:        15,
			DeliveryDays: 1,
			IsActive:     true,
		},
		{
			ID:           "6",
			Name:         "Cat Collar - Leather",
			Category:     product.CategoryAccessories,
			Price:        45000,
			ImageURL:     "https://images.pexels.com/photos/1404819/pexels-photo-1404819.jpeg?auto=compress&cs=tinysrgb&w=400",
			Description:  "Stylish leather collar with adjustable strap and bell.",
			Stock:        8,
			DeliveryDays: 2,
			IsActive:     true,
		},
	}
}

// NewDemoStore returns a store seeded with the demo catalog.
func NewDemoStore() *Store {
	s := NewStore()
	now := s.now()
	for _, p := range DemoProducts() {
		p.CreatedAt = now
		p.UpdatedAt = now
		s.AddProduct(p)
	}
	return s
}

// SeedAdmin creates an admin account with a profile.
func (s *Store) SeedAdmin(ctx context.Context, email, password string) error {
	hash, err := user.HashPassword(password)
	if err != nil {
		return err
	}
	users := s.Users()
	u, err := users.Create(ctx, email, hash, auth.RoleAdmin)
	if err != nil {
		return err
	}
	_, err = users.CreateProfile(ctx, &user.Profile{ID: u.ID, Email: u.Email, Name: "Shop Admin"})
	return err
}
