package user

import (
	"time"

	"petshop-be/internal/auth"
)

type User struct {
	ID        string
	Email     string
	Password  string
	Role      auth.Role
	CreatedAt time.Time
}

// Profile holds the contact details used to prefill checkout. Its ID is
// the user's ID.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Role      auth.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateProfileParams leaves nil fields unchanged.
type UpdateProfileParams struct {
	UserID  string
	Name    *string
	Phone   *string
	Address *string
}
