package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/utils"
)

// CustomerRepository handles data access for end-user accounts.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetByEmail returns the customer with the given email.
func (r *CustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	var c models.Customer
	err := r.db.Get(&c, `SELECT id, email, password_hash, name, phone, company, created_at, updated_at FROM customers WHERE email = $1 LIMIT 1`, email)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID returns the customer with the given id.
func (r *CustomerRepository) GetByID(id int) (*models.Customer, error) {
	var c models.Customer
	err := r.db.Get(&c, `SELECT id, email, password_hash, name, phone, company, created_at, updated_at FROM customers WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new customer account.
func (r *CustomerRepository) Create(c *models.Customer) error {
	const q = `
		INSERT INTO customers (email, password_hash, name, phone, company)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(q, c.Email, c.PasswordHash, c.Name, c.Phone, c.Company).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return utils.ErrDuplicateCustomer
	}
	return err
}

// ListWithQuoteCounts returns all customers with the number of quote
// requests each has submitted; the back-office clients view.
func (r *CustomerRepository) ListWithQuoteCounts() ([]models.Customer, error) {
	const q = `
		SELECT c.id, c.email, c.name, c.phone, c.company, c.created_at, c.updated_at,
			COUNT(o.id) AS quote_count
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC`

	var list []models.Customer
	if err := r.db.Select(&list, q); err != nil {
		return nil, err
	}
	return list, nil
}
