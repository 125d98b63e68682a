package models

import "time"

// Customer is an end-user account on the public site, distinct from an
// admin account. Customers submit quote requests under their own identity.
type Customer struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Phone        string    `db:"phone" json:"phone"`
	Company      *string   `db:"company" json:"company,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`

	// Populated by the clients listing for the back office.
	QuoteCount int `db:"quote_count" json:"quoteCount,omitempty"`
}
