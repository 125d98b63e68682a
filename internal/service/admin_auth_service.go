package service

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/utils"
)

// AdminStore is the persistence surface the authorization model needs.
type AdminStore interface {
	GetByID(id int) (*models.AdminUser, error)
	GetByEmail(email string) (*models.AdminUser, error)
	Create(user *models.AdminUser) error
	Approve(targetID, approverID int, grants models.PrivilegeGrants) (bool, error)
	Reject(targetID int) (bool, error)
	ListByStatus(status models.AdminStatus) ([]models.AdminUser, error)
}

// AdminAuthService owns the tiered admin authorization model: pending/
// approved/rejected accounts, the four privilege flags, and the super-admin
// override. It is the client-side mirror of the row-level rules and must
// fail closed.
type AdminAuthService struct {
	admins    AdminStore
	jwtSecret string
}

// NewAdminAuthService creates a new AdminAuthService.
func NewAdminAuthService(admins AdminStore, jwtSecret string) *AdminAuthService {
	return &AdminAuthService{admins: admins, jwtSecret: jwtSecret}
}

// Login verifies credentials and mints an admin session token. Pending and
// rejected accounts never receive a session: resolving their state would
// mask every privilege anyway, so the session is declined outright.
func (s *AdminAuthService) Login(email, password string) (string, error) {
	user, err := s.admins.GetByEmail(email)
	if err != nil {
		log.Debug().Str("email", email).Msg("admin login: account not found")
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("admin login: password verification failed")
		return "", errors.New("invalid credentials")
	}

	switch user.Status {
	case models.AdminStatusPending:
		log.Info().Str("email", email).Msg("admin login declined: account pending approval")
		return "", utils.ErrAccountPending
	case models.AdminStatusRejected:
		log.Info().Str("email", email).Msg("admin login declined: account rejected")
		return "", utils.ErrAccountRejected
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, utils.RoleAdmin, s.jwtSecret)
	if err != nil {
		return "", err
	}

	log.Info().Int("admin_id", user.ID).Str("email", email).Msg("admin login successful")
	return token, nil
}

// ResolveAdminState looks up the effective authorization state for an
// identity. A missing account is not an error: it resolves to the non-admin
// state. Stored privilege flags are masked unless the account is approved.
func (s *AdminAuthService) ResolveAdminState(adminID int) (models.AdminState, error) {
	user, err := s.admins.GetByID(adminID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.AdminState{Status: models.AdminStatusNone}, nil
		}
		return models.AdminState{}, err
	}
	return user.State(), nil
}

// CheckPrivilege reports whether the identity holds the named privilege.
// Lookups that fail resolve to false, never to an error: not being an admin
// is not actor misuse.
func (s *AdminAuthService) CheckPrivilege(adminID int, p models.Privilege) bool {
	state, err := s.ResolveAdminState(adminID)
	if err != nil {
		log.Error().Err(err).Int("admin_id", adminID).Msg("privilege check failed; denying")
		return false
	}
	return state.Has(p)
}

// RegisterAdmin creates a pending admin account. The account carries no
// privileges and is not super-admin until a super admin approves it.
func (s *AdminAuthService) RegisterAdmin(name, email, password string) (int, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
	}
	if err := s.admins.Create(user); err != nil {
		return 0, err
	}

	log.Info().Int("admin_id", user.ID).Str("email", email).Msg("admin registration submitted")
	return user.ID, nil
}

// ApproveAdmin promotes a pending account and sets its four privilege flags
// exactly as given. Only an approved super admin may approve. The underlying
// update is a single statement, so a failure leaves the target untouched.
func (s *AdminAuthService) ApproveAdmin(targetID, approverID int, grants models.PrivilegeGrants) error {
	approver, err := s.ResolveAdminState(approverID)
	if err != nil {
		return err
	}
	if approver.Status != models.AdminStatusApproved || !approver.IsSuperAdmin {
		return utils.ErrNotAllowed
	}

	updated, err := s.admins.Approve(targetID, approverID, grants)
	if err != nil {
		return err
	}
	if !updated {
		return utils.ErrAdminNotFound
	}

	log.Info().Int("admin_id", targetID).Int("approved_by", approverID).Msg("admin account approved")
	return nil
}

// RejectAdmin marks a pending account rejected. Gated on the same
// super-admin requirement as approval; rejected is terminal.
func (s *AdminAuthService) RejectAdmin(targetID, actorID int) error {
	actor, err := s.ResolveAdminState(actorID)
	if err != nil {
		return err
	}
	if actor.Status != models.AdminStatusApproved || !actor.IsSuperAdmin {
		return utils.ErrNotAllowed
	}

	updated, err := s.admins.Reject(targetID)
	if err != nil {
		return err
	}
	if !updated {
		return utils.ErrAdminNotFound
	}

	log.Info().Int("admin_id", targetID).Int("rejected_by", actorID).Msg("admin account rejected")
	return nil
}

// ListAdmins returns admin accounts, optionally filtered by status.
// Only a super admin may inspect the account list.
func (s *AdminAuthService) ListAdmins(actorID int, status models.AdminStatus) ([]models.AdminUser, error) {
	actor, err := s.ResolveAdminState(actorID)
	if err != nil {
		return nil, err
	}
	if actor.Status != models.AdminStatusApproved || !actor.IsSuperAdmin {
		return nil, utils.ErrNotAllowed
	}
	return s.admins.ListByStatus(status)
}
