package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/utils"
)

type fakeOrderStore struct {
	orders map[int]*models.Order
	nextID int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[int]*models.Order{}, nextID: 1}
}

func (f *fakeOrderStore) Create(o *models.Order) error {
	o.ID = f.nextID
	f.nextID++
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderStore) GetByID(id int) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) UpdateStatus(id int, status models.OrderStatus) (bool, error) {
	o, ok := f.orders[id]
	if !ok {
		return false, nil
	}
	o.Status = status
	return true, nil
}

func (f *fakeOrderStore) AttachQuote(id int, price decimal.Decimal, notes *string, expiresAt *time.Time) (bool, error) {
	o, ok := f.orders[id]
	if !ok {
		return false, nil
	}
	o.QuotedPrice = &price
	o.AdminNotes = notes
	o.ExpiresAt = expiresAt
	return true, nil
}

type fakeProductGetter struct {
	products map[int]*models.Product
}

func (f *fakeProductGetter) GetByID(id int) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

type fakeActorResolver struct {
	states map[int]models.AdminState
}

func (f *fakeActorResolver) ResolveAdminState(adminID int) (models.AdminState, error) {
	return f.states[adminID], nil
}

func orderFixture(strict bool) (*OrderService, *fakeOrderStore) {
	store := newFakeOrderStore()
	products := &fakeProductGetter{products: map[int]*models.Product{
		1: {ID: 1, Name: "Ultrasound Scanner", Price: decimal.RequireFromString("100.00")},
		2: {ID: 2, Name: "Stethoscope", Price: decimal.RequireFromString("19.99")},
	}}
	actors := &fakeActorResolver{states: map[int]models.AdminState{
		1: {Status: models.AdminStatusApproved, Privileges: models.PrivilegeGrants{ProcessOrders: true}},
		2: {Status: models.AdminStatusApproved, Privileges: models.PrivilegeGrants{ManageProducts: true}},
	}}
	return NewOrderService(store, products, actors, strict), store
}

func contact() ContactInfo {
	return ContactInfo{Name: "Dr. Ayu", Email: "ayu@clinic.example", Phone: "0812000111"}
}

func TestSubmitQuoteRequest(t *testing.T) {
	svc, _ := orderFixture(true)

	order, err := svc.SubmitQuoteRequest(1, 3, contact(), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.Status != models.StatusQuoteRequested {
		t.Fatalf("status = %q, want quote_requested", order.Status)
	}
	if order.TotalAmount.String() != "300" {
		t.Fatalf("total = %s, want 300", order.TotalAmount)
	}
	if order.CustomerID != nil {
		t.Fatal("anonymous submission must not carry a customer id")
	}
}

func TestSubmitQuoteRequestValidation(t *testing.T) {
	svc, _ := orderFixture(true)

	if _, err := svc.SubmitQuoteRequest(1, 0, contact(), nil); err != utils.ErrInvalidQuantity {
		t.Fatalf("zero quantity: got %v, want ErrInvalidQuantity", err)
	}
	if _, err := svc.SubmitQuoteRequest(1, -2, contact(), nil); err != utils.ErrInvalidQuantity {
		t.Fatalf("negative quantity: got %v, want ErrInvalidQuantity", err)
	}

	c := contact()
	c.Name = "  "
	if _, err := svc.SubmitQuoteRequest(1, 1, c, nil); err != utils.ErrMissingContact {
		t.Fatalf("blank name: got %v, want ErrMissingContact", err)
	}

	if _, err := svc.SubmitQuoteRequest(99, 1, contact(), nil); err != utils.ErrProductNotFound {
		t.Fatalf("unknown product: got %v, want ErrProductNotFound", err)
	}
}

func TestSubmitQuoteRequestPhoneRule(t *testing.T) {
	svc, _ := orderFixture(true)

	// Anonymous: phone optional.
	c := contact()
	c.Phone = ""
	if _, err := svc.SubmitQuoteRequest(1, 1, c, nil); err != nil {
		t.Fatalf("anonymous without phone: %v", err)
	}

	// Authenticated: phone required.
	customerID := 7
	if _, err := svc.SubmitQuoteRequest(1, 1, c, &customerID); err != utils.ErrPhoneRequired {
		t.Fatalf("authenticated without phone: got %v, want ErrPhoneRequired", err)
	}
	if order, err := svc.SubmitQuoteRequest(1, 1, contact(), &customerID); err != nil {
		t.Fatalf("authenticated with phone: %v", err)
	} else if order.CustomerID == nil || *order.CustomerID != customerID {
		t.Fatal("customer id not attached")
	}
}

func TestTransitionStatusStrict(t *testing.T) {
	svc, store := orderFixture(true)
	order, _ := svc.SubmitQuoteRequest(1, 1, contact(), nil)

	// Skipping quote_sent is not allowed in strict mode.
	if err := svc.TransitionStatus(order.ID, models.StatusApproved, 1); err != utils.ErrInvalidTransition {
		t.Fatalf("skip to approved: got %v, want ErrInvalidTransition", err)
	}

	for _, next := range []models.OrderStatus{
		models.StatusQuoteSent, models.StatusApproved, models.StatusProcessing,
		models.StatusShipped, models.StatusDelivered, models.StatusCompleted,
	} {
		if err := svc.TransitionStatus(order.ID, next, 1); err != nil {
			t.Fatalf("transition to %q: %v", next, err)
		}
	}

	// Completed is terminal.
	if err := svc.TransitionStatus(order.ID, models.StatusCancelled, 1); err != utils.ErrInvalidTransition {
		t.Fatalf("cancel completed: got %v, want ErrInvalidTransition", err)
	}

	stored, _ := store.GetByID(order.ID)
	if stored.Status != models.StatusCompleted {
		t.Fatalf("stored status = %q, want completed", stored.Status)
	}
}

func TestTransitionStatusFreeForm(t *testing.T) {
	svc, _ := orderFixture(false)
	order, _ := svc.SubmitQuoteRequest(1, 1, contact(), nil)

	// Free-form mode allows any known status from any other.
	if err := svc.TransitionStatus(order.ID, models.StatusDelivered, 1); err != nil {
		t.Fatalf("free-form jump: %v", err)
	}
	// Unknown statuses are still refused.
	if err := svc.TransitionStatus(order.ID, models.OrderStatus("archived"), 1); err != utils.ErrInvalidStatus {
		t.Fatalf("unknown status: got %v, want ErrInvalidStatus", err)
	}
}

func TestTransitionStatusRequiresPrivilege(t *testing.T) {
	svc, store := orderFixture(true)
	order, _ := svc.SubmitQuoteRequest(1, 1, contact(), nil)

	// Actor 2 has manage_products but not process_orders.
	if err := svc.TransitionStatus(order.ID, models.StatusQuoteSent, 2); err != utils.ErrNotAllowed {
		t.Fatalf("unprivileged transition: got %v, want ErrNotAllowed", err)
	}
	// Unknown actor resolves to no privileges.
	if err := svc.TransitionStatus(order.ID, models.StatusQuoteSent, 99); err != utils.ErrNotAllowed {
		t.Fatalf("unknown actor: got %v, want ErrNotAllowed", err)
	}

	stored, _ := store.GetByID(order.ID)
	if stored.Status != models.StatusQuoteRequested {
		t.Fatalf("denied transition mutated order: %q", stored.Status)
	}
}

func TestAttachQuote(t *testing.T) {
	svc, store := orderFixture(true)
	order, _ := svc.SubmitQuoteRequest(1, 2, contact(), nil)

	notes := "bulk discount applied"
	if err := svc.AttachQuote(order.ID, decimal.RequireFromString("180.00"), &notes, nil, 1); err != nil {
		t.Fatalf("attach quote: %v", err)
	}

	stored, _ := store.GetByID(order.ID)
	if stored.QuotedPrice == nil || stored.QuotedPrice.String() != "180" {
		t.Fatalf("quoted price = %v, want 180", stored.QuotedPrice)
	}
	if stored.Status != models.StatusQuoteRequested {
		t.Fatal("attaching a quote must not change the status")
	}

	if err := svc.AttachQuote(order.ID, decimal.RequireFromString("-1"), nil, nil, 1); err != utils.ErrNegativePrice {
		t.Fatalf("negative price: got %v, want ErrNegativePrice", err)
	}
	if err := svc.AttachQuote(order.ID, decimal.RequireFromString("10"), nil, nil, 2); err != utils.ErrNotAllowed {
		t.Fatalf("unprivileged attach: got %v, want ErrNotAllowed", err)
	}
	if err := svc.AttachQuote(999, decimal.RequireFromString("10"), nil, nil, 1); err != utils.ErrOrderNotFound {
		t.Fatalf("unknown order: got %v, want ErrOrderNotFound", err)
	}
}

func TestComputeOrderTotalExact(t *testing.T) {
	lines := []OrderLine{
		{PriceAtPurchase: decimal.RequireFromString("19.99"), Quantity: 2},
		{PriceAtPurchase: decimal.RequireFromString("5.00"), Quantity: 1},
	}
	if got := ComputeOrderTotal(lines).String(); got != "44.98" {
		t.Fatalf("total = %s, want 44.98", got)
	}

	// Repeated small additions must not drift the way binary floats do.
	var many []OrderLine
	for i := 0; i < 1000; i++ {
		many = append(many, OrderLine{PriceAtPurchase: decimal.RequireFromString("0.10"), Quantity: 1})
	}
	if got := ComputeOrderTotal(many).String(); got != "100" {
		t.Fatalf("total = %s, want 100", got)
	}

	if got := ComputeOrderTotal(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("empty total = %s, want 0", got)
	}
}
