package service

import (
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/utils"
)

// OrderStore is the persistence surface the lifecycle rules need.
type OrderStore interface {
	Create(o *models.Order) error
	GetByID(id int) (*models.Order, error)
	UpdateStatus(id int, status models.OrderStatus) (bool, error)
	AttachQuote(id int, price decimal.Decimal, notes *string, expiresAt *time.Time) (bool, error)
}

// ProductGetter resolves the product a request references.
type ProductGetter interface {
	GetByID(id int) (*models.Product, error)
}

// ActorResolver resolves an admin identity to its effective privileges.
type ActorResolver interface {
	ResolveAdminState(adminID int) (models.AdminState, error)
}

// ContactInfo is the requester snapshot captured at submission time. It is
// copied into the order verbatim and never updated afterwards.
type ContactInfo struct {
	Name    string
	Email   string
	Phone   string
	Company *string
	Message *string
}

// OrderService owns the quote/order lifecycle: submission, the status
// state machine, and quote attachment.
type OrderService struct {
	orders            OrderStore
	products          ProductGetter
	actors            ActorResolver
	strictTransitions bool
}

// NewOrderService creates a new OrderService. strictTransitions selects
// between graph enforcement and the historical free-form status overwrite.
func NewOrderService(orders OrderStore, products ProductGetter, actors ActorResolver, strictTransitions bool) *OrderService {
	return &OrderService{
		orders:            orders,
		products:          products,
		actors:            actors,
		strictTransitions: strictTransitions,
	}
}

// SubmitQuoteRequest validates and creates a new request in
// quote_requested with an estimated total of price x quantity.
//
// The anonymous surface passes customerID == nil and may omit the phone
// number; the authenticated surface attaches the customer identity and
// requires a phone number, since the profile exists to prefill it.
func (s *OrderService) SubmitQuoteRequest(productID, quantity int, contact ContactInfo, customerID *int) (*models.Order, error) {
	if quantity < 1 {
		return nil, utils.ErrInvalidQuantity
	}
	if strings.TrimSpace(contact.Name) == "" || strings.TrimSpace(contact.Email) == "" {
		return nil, utils.ErrMissingContact
	}
	if customerID != nil && strings.TrimSpace(contact.Phone) == "" {
		return nil, utils.ErrPhoneRequired
	}

	product, err := s.products.GetByID(productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}

	order := &models.Order{
		ProductID:      productID,
		CustomerID:     customerID,
		Quantity:       quantity,
		ContactName:    contact.Name,
		ContactEmail:   contact.Email,
		ContactPhone:   contact.Phone,
		ContactCompany: contact.Company,
		ContactMessage: contact.Message,
		Status:         models.StatusQuoteRequested,
		TotalAmount:    product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	log.Info().
		Int("order_id", order.ID).
		Int("product_id", productID).
		Int("quantity", quantity).
		Str("total", order.TotalAmount.String()).
		Msg("quote request submitted")
	return order, nil
}

// TransitionStatus moves an order to a new status on behalf of an admin.
// The actor must hold process_orders. In strict mode the move must follow
// the lifecycle graph; otherwise any status may overwrite any other, which
// is the historical back-office escape hatch.
func (s *OrderService) TransitionStatus(orderID int, next models.OrderStatus, actorID int) error {
	state, err := s.actors.ResolveAdminState(actorID)
	if err != nil {
		return err
	}
	if !state.Has(models.PrivilegeProcessOrders) {
		return utils.ErrNotAllowed
	}

	if !next.Valid() {
		return utils.ErrInvalidStatus
	}

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrOrderNotFound
		}
		return err
	}

	if s.strictTransitions && !order.Status.CanTransitionTo(next) {
		return utils.ErrInvalidTransition
	}

	updated, err := s.orders.UpdateStatus(orderID, next)
	if err != nil {
		return err
	}
	if !updated {
		return utils.ErrOrderNotFound
	}

	log.Info().
		Int("order_id", orderID).
		Str("from", string(order.Status)).
		Str("to", string(next)).
		Int("actor", actorID).
		Msg("order status changed")
	return nil
}

// AttachQuote records the quoted price, notes, and expiry on a request
// without changing its status; moving to quote_sent is a separate explicit
// transition.
func (s *OrderService) AttachQuote(orderID int, price decimal.Decimal, notes *string, expiresAt *time.Time, actorID int) error {
	state, err := s.actors.ResolveAdminState(actorID)
	if err != nil {
		return err
	}
	if !state.Has(models.PrivilegeProcessOrders) {
		return utils.ErrNotAllowed
	}
	if price.IsNegative() {
		return utils.ErrNegativePrice
	}

	updated, err := s.orders.AttachQuote(orderID, price, notes, expiresAt)
	if err != nil {
		return err
	}
	if !updated {
		return utils.ErrOrderNotFound
	}

	log.Info().Int("order_id", orderID).Str("quoted_price", price.String()).Int("actor", actorID).Msg("quote attached")
	return nil
}

// OrderLine is one priced line for total computation. PriceAtPurchase is
// the unit price captured when the line was created, not the live price.
type OrderLine struct {
	PriceAtPurchase decimal.Decimal
	Quantity        int64
}

// ComputeOrderTotal sums price x quantity per line using exact decimal
// arithmetic; repeated additions never accumulate float drift.
func ComputeOrderTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.PriceAtPurchase.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}
