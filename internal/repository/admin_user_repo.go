package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/utils"
)

// AdminUserRepository handles data access for admin accounts.
type AdminUserRepository struct {
	db *sqlx.DB
}

// NewAdminUserRepository creates a new AdminUserRepository.
func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetByEmail returns the admin account with the given email.
func (r *AdminUserRepository) GetByEmail(email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.Get(&user, `SELECT * FROM admin_users WHERE email = $1 LIMIT 1`, email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the admin account with the given id.
func (r *AdminUserRepository) GetByID(id int) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.Get(&user, `SELECT * FROM admin_users WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new pending admin account. Status, privileges and the
// super-admin flag are forced by column defaults; registration can never
// produce anything but a pending, unprivileged account.
func (r *AdminUserRepository) Create(user *models.AdminUser) error {
	const q = `
		INSERT INTO admin_users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, status, is_super_admin, created_at, updated_at
	`
	err := r.db.QueryRow(q, user.Email, user.PasswordHash, user.Name).
		Scan(&user.ID, &user.Status, &user.IsSuperAdmin, &user.CreatedAt, &user.UpdatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return utils.ErrDuplicateAdmin
	}
	return err
}

// Approve promotes a pending account to approved and replaces all four
// privilege flags in one statement, so the grant is atomic: either the full
// flag set and approval metadata land together or nothing changes. Returns
// false when the target does not exist or is not pending.
func (r *AdminUserRepository) Approve(targetID, approverID int, grants models.PrivilegeGrants) (bool, error) {
	const q = `
		UPDATE admin_users SET
			status = 'approved',
			manage_products = $2,
			process_orders = $3,
			access_clients = $4,
			view_statistics = $5,
			approved_at = NOW(),
			approved_by = $6,
			updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	res, err := r.db.Exec(q, targetID,
		grants.ManageProducts, grants.ProcessOrders, grants.AccessClients, grants.ViewStatistics,
		approverID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Reject marks a pending account rejected and clears the privilege flags
// for hygiene (they are already masked by status, but stored state should
// not suggest otherwise).
func (r *AdminUserRepository) Reject(targetID int) (bool, error) {
	const q = `
		UPDATE admin_users SET
			status = 'rejected',
			manage_products = false,
			process_orders = false,
			access_clients = false,
			view_statistics = false,
			updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	res, err := r.db.Exec(q, targetID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByStatus returns admin accounts, optionally filtered by status.
func (r *AdminUserRepository) ListByStatus(status models.AdminStatus) ([]models.AdminUser, error) {
	var list []models.AdminUser
	var err error
	if status == models.AdminStatusNone {
		err = r.db.Select(&list, `SELECT * FROM admin_users ORDER BY created_at DESC`)
	} else {
		err = r.db.Select(&list, `SELECT * FROM admin_users WHERE status = $1 ORDER BY created_at DESC`, status)
	}
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	return list, nil
}
