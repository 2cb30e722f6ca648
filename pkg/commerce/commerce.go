// Package commerce implements the in-memory commerce domain: users, products
// and orders, the store that owns them, and the service and analytics layers
// on top.
package commerce

import "strings"

// User is a registered customer account.
type User struct {
	ID       int64             `json:"id"`
	Email    string            `json:"email"`
	Name     string            `json:"name"`
	Active   bool              `json:"active"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// DisplayName returns the user's name, or the local part of the email when
// the name is empty.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

// Product is a purchasable item. Prices are minor currency units (cents) to
// keep money out of floating point.
type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

// Order references one user and an ordered list of product ids. Duplicates
// are allowed and order is preserved. The total is derived, never stored.
type Order struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	ProductIDs []int64 `json:"product_ids"`
	Notes      string  `json:"notes"`
}
