package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the single lifecycle shared by quote requests and
// orders. The negotiation phase (quote_requested, quote_sent, approved,
// rejected) and the fulfilment phase (pending, processing, shipped,
// delivered) share one status field so a single record carries a customer
// request from first contact to completion.
type OrderStatus string

const (
	StatusQuoteRequested OrderStatus = "quote_requested"
	StatusQuoteSent      OrderStatus = "quote_sent"
	StatusApproved       OrderStatus = "approved"
	StatusRejected       OrderStatus = "rejected"
	// StatusPending is the legacy direct-order entry point that bypasses
	// the quoting phase entirely.
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// orderTransitions is the legal forward edge set. Cancellation from any
// non-terminal status is handled by CanTransitionTo, not listed per-edge.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusQuoteRequested: {StatusQuoteSent, StatusRejected},
	StatusQuoteSent:      {StatusApproved, StatusRejected},
	StatusApproved:       {StatusProcessing},
	StatusPending:        {StatusProcessing},
	StatusProcessing:     {StatusShipped},
	StatusShipped:        {StatusDelivered},
	StatusDelivered:      {StatusCompleted},
}

// Valid reports whether s is a known lifecycle status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusQuoteRequested, StatusQuoteSent, StatusApproved, StatusRejected,
		StatusPending, StatusProcessing, StatusShipped, StatusDelivered,
		StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// CanTransitionTo reports whether next is reachable from s in one step
// under the strict graph. Any non-terminal status may be cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Order is one customer request over its whole life, from quote_requested
// (or the legacy pending entry) through fulfilment. The Contact* fields are
// a snapshot taken at submission and are never updated afterwards, so
// historical quotes stay accurate even if the customer edits their profile.
type Order struct {
	ID             int              `db:"id" json:"id"`
	ProductID      int              `db:"product_id" json:"productId"`
	CustomerID     *int             `db:"customer_id" json:"customerId,omitempty"`
	Quantity       int              `db:"quantity" json:"quantity"`
	ContactName    string           `db:"contact_name" json:"contactName"`
	ContactEmail   string           `db:"contact_email" json:"contactEmail"`
	ContactPhone   string           `db:"contact_phone" json:"contactPhone"`
	ContactCompany *string          `db:"contact_company" json:"contactCompany,omitempty"`
	ContactMessage *string          `db:"contact_message" json:"contactMessage,omitempty"`
	Status         OrderStatus      `db:"status" json:"status"`
	TotalAmount    decimal.Decimal  `db:"total_amount" json:"totalAmount"`
	QuotedPrice    *decimal.Decimal `db:"quoted_price" json:"quotedPrice,omitempty"`
	QuotedAt       *time.Time       `db:"quoted_at" json:"quotedAt,omitempty"`
	ExpiresAt      *time.Time       `db:"expires_at" json:"expiresAt,omitempty"`
	AdminNotes     *string          `db:"admin_notes" json:"adminNotes,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updatedAt"`

	// Joined from products for list/detail views.
	ProductName string `db:"product_name" json:"productName,omitempty"`
}
