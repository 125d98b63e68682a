package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/medgear/medgear_api/internal/models"
)

// OrderRepository handles data access for quote requests and orders.
// Both phases live in one table; see models.OrderStatus.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order row with its immutable contact snapshot.
func (r *OrderRepository) Create(o *models.Order) error {
	const q = `
		INSERT INTO orders (
			product_id, customer_id, quantity,
			contact_name, contact_email, contact_phone, contact_company, contact_message,
			status, total_amount
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRow(q,
		o.ProductID, o.CustomerID, o.Quantity,
		o.ContactName, o.ContactEmail, o.ContactPhone, o.ContactCompany, o.ContactMessage,
		o.Status, o.TotalAmount,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

// GetByID returns an order by id with its product name joined.
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	const q = `
		SELECT o.*, p.name AS product_name
		FROM orders o
		JOIN products p ON o.product_id = p.id
		WHERE o.id = $1 LIMIT 1`
	var o models.Order
	if err := r.db.Get(&o, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &o, nil
}

// UpdateStatus sets the order status in one statement. Entering quote_sent
// also stamps quoted_at the first time. Returns false when the id is unknown.
func (r *OrderRepository) UpdateStatus(id int, status models.OrderStatus) (bool, error) {
	const q = `
		UPDATE orders SET
			status = $2,
			quoted_at = CASE WHEN $2 = 'quote_sent' AND quoted_at IS NULL THEN NOW() ELSE quoted_at END,
			updated_at = NOW()
		WHERE id = $1`

	res, err := r.db.Exec(q, id, status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AttachQuote sets the quoted price, admin notes, and expiry in one
// statement without touching the status. Returns false when the id is unknown.
func (r *OrderRepository) AttachQuote(id int, price decimal.Decimal, notes *string, expiresAt *time.Time) (bool, error) {
	const q = `
		UPDATE orders SET
			quoted_price = $2,
			admin_notes = $3,
			expires_at = $4,
			updated_at = NOW()
		WHERE id = $1`

	res, err := r.db.Exec(q, id, price, notes, expiresAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetByCustomer returns a customer's own requests, newest first.
func (r *OrderRepository) GetByCustomer(customerID int) ([]models.Order, error) {
	const q = `
		SELECT o.*, p.name AS product_name
		FROM orders o
		JOIN products p ON o.product_id = p.id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC`
	var list []models.Order
	if err := r.db.Select(&list, q, customerID); err != nil {
		return nil, err
	}
	return list, nil
}

// OrderFilter holds filters for admin order queries.
type OrderFilter struct {
	Status    *string
	Search    *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

// OrderResult contains paginated order results.
type OrderResult struct {
	Orders     []models.Order
	TotalItems int
	TotalPages int
	Page       int
	Limit      int
}

// GetAllAdmin returns orders for the back office with filters and pagination.
func (r *OrderRepository) GetAllAdmin(filter *OrderFilter) (*OrderResult, error) {
	baseQ := `FROM orders o
	          JOIN products p ON o.product_id = p.id
	          WHERE 1=1`

	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		baseQ += fmt.Sprintf(" AND o.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseQ += fmt.Sprintf(" AND (o.contact_name ILIKE $%d OR o.contact_email ILIKE $%d OR p.name ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseQ += fmt.Sprintf(" AND o.created_at >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseQ += fmt.Sprintf(" AND o.created_at < ($%d::date + interval '1 day')", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQ := "SELECT COUNT(*) " + baseQ
	var total int
	if err := r.db.Get(&total, countQ, args...); err != nil {
		return nil, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	offset := (filter.Page - 1) * filter.Limit
	totalPages := (total + filter.Limit - 1) / filter.Limit

	selectQ := fmt.Sprintf(`
		SELECT o.*, p.name AS product_name
		%s
		ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`, baseQ, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	var orders []models.Order
	if err := r.db.Select(&orders, selectQ, args...); err != nil {
		return nil, err
	}

	return &OrderResult{
		Orders:     orders,
		TotalItems: total,
		TotalPages: totalPages,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// OrderStats contains per-status counts for the back office dashboard.
type OrderStats struct {
	TotalOrders    int             `db:"total_orders" json:"totalOrders"`
	QuoteRequested int             `db:"quote_requested" json:"quoteRequested"`
	QuoteSent      int             `db:"quote_sent" json:"quoteSent"`
	InFulfilment   int             `db:"in_fulfilment" json:"inFulfilment"`
	Completed      int             `db:"completed" json:"completed"`
	Cancelled      int             `db:"cancelled" json:"cancelled"`
	Rejected       int             `db:"rejected" json:"rejected"`
	QuotedValue    decimal.Decimal `db:"quoted_value" json:"quotedValue"`
}

// GetStats returns per-status counts and the total value of completed orders.
func (r *OrderRepository) GetStats() (*OrderStats, error) {
	const q = `
		SELECT
			COUNT(*) AS total_orders,
			COUNT(*) FILTER (WHERE status = 'quote_requested') AS quote_requested,
			COUNT(*) FILTER (WHERE status = 'quote_sent') AS quote_sent,
			COUNT(*) FILTER (WHERE status IN ('approved','pending','processing','shipped','delivered')) AS in_fulfilment,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected,
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'completed'), 0) AS quoted_value
		FROM orders`

	var stats OrderStats
	if err := r.db.Get(&stats, q); err != nil {
		return nil, err
	}
	return &stats, nil
}

// DailyOrderTrend is one day of order submissions.
type DailyOrderTrend struct {
	Date  string `db:"date" json:"date"`
	Total int    `db:"total" json:"total"`
}

// GetDailyTrend returns submissions per day for the last 30 days.
func (r *OrderRepository) GetDailyTrend() ([]DailyOrderTrend, error) {
	const q = `
		SELECT TO_CHAR(created_at, 'YYYY-MM-DD') AS date, COUNT(*) AS total
		FROM orders
		WHERE created_at >= NOW() - interval '30 days'
		GROUP BY 1 ORDER BY date DESC`

	var trends []DailyOrderTrend
	if err := r.db.Select(&trends, q); err != nil {
		return nil, err
	}
	return trends, nil
}
