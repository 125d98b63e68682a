package models

import "time"

// AdminStatus is the approval state of an admin account.
type AdminStatus string

const (
	// AdminStatusNone marks an identity without any admin account.
	AdminStatusNone     AdminStatus = ""
	AdminStatusPending  AdminStatus = "pending"
	AdminStatusApproved AdminStatus = "approved"
	AdminStatusRejected AdminStatus = "rejected"
)

// Privilege names one of the four grantable admin capabilities.
type Privilege string

const (
	PrivilegeManageProducts Privilege = "manage_products"
	PrivilegeProcessOrders  Privilege = "process_orders"
	PrivilegeAccessClients  Privilege = "access_clients"
	PrivilegeViewStatistics Privilege = "view_statistics"
)

// AdminUser represents a back-office operator account. Accounts start
// pending with no privileges; a super admin approves them and sets flags.
type AdminUser struct {
	ID             int         `db:"id" json:"id"`
	Email          string      `db:"email" json:"email"`
	PasswordHash   string      `db:"password_hash" json:"-"`
	Name           string      `db:"name" json:"name"`
	Status         AdminStatus `db:"status" json:"status"`
	IsSuperAdmin   bool        `db:"is_super_admin" json:"isSuperAdmin"`
	ManageProducts bool        `db:"manage_products" json:"manageProducts"`
	ProcessOrders  bool        `db:"process_orders" json:"processOrders"`
	AccessClients  bool        `db:"access_clients" json:"accessClients"`
	ViewStatistics bool        `db:"view_statistics" json:"viewStatistics"`
	CreatedAt      time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updatedAt"`
	ApprovedAt     *time.Time  `db:"approved_at" json:"approvedAt,omitempty"`
	ApprovedBy     *int        `db:"approved_by" json:"approvedBy,omitempty"`
}

// PrivilegeGrants is the full set of flags applied on approval. Approval
// replaces all four flags at once; there is no merge with prior values.
type PrivilegeGrants struct {
	ManageProducts bool `json:"manageProducts"`
	ProcessOrders  bool `json:"processOrders"`
	AccessClients  bool `json:"accessClients"`
	ViewStatistics bool `json:"viewStatistics"`
}

// AdminState is the resolved, effective authorization state of an identity.
// Stored flags are masked to false unless the account is approved.
type AdminState struct {
	Status       AdminStatus     `json:"status"`
	IsSuperAdmin bool            `json:"isSuperAdmin"`
	Privileges   PrivilegeGrants `json:"privileges"`
}

// State returns the effective authorization state for the account.
// Pending and rejected accounts expose their status but never any
// privilege or the super-admin flag, regardless of stored values.
func (u *AdminUser) State() AdminState {
	if u == nil {
		return AdminState{Status: AdminStatusNone}
	}
	if u.Status != AdminStatusApproved {
		return AdminState{Status: u.Status}
	}
	return AdminState{
		Status:       AdminStatusApproved,
		IsSuperAdmin: u.IsSuperAdmin,
		Privileges: PrivilegeGrants{
			ManageProducts: u.ManageProducts,
			ProcessOrders:  u.ProcessOrders,
			AccessClients:  u.AccessClients,
			ViewStatistics: u.ViewStatistics,
		},
	}
}

// Has reports whether the state satisfies the named privilege. A super
// admin satisfies every privilege implicitly.
func (s AdminState) Has(p Privilege) bool {
	if s.Status != AdminStatusApproved {
		return false
	}
	if s.IsSuperAdmin {
		return true
	}
	switch p {
	case PrivilegeManageProducts:
		return s.Privileges.ManageProducts
	case PrivilegeProcessOrders:
		return s.Privileges.ProcessOrders
	case PrivilegeAccessClients:
		return s.Privileges.AccessClients
	case PrivilegeViewStatistics:
		return s.Privileges.ViewStatistics
	}
	return false
}
