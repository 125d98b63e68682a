package service

import (
	"database/sql"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/utils"
)

type fakeAdminStore struct {
	users  map[int]*models.AdminUser
	nextID int
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{users: map[int]*models.AdminUser{}, nextID: 1}
}

func (f *fakeAdminStore) GetByID(id int) (*models.AdminUser, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeAdminStore) GetByEmail(email string) (*models.AdminUser, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdminStore) Create(user *models.AdminUser) error {
	user.ID = f.nextID
	f.nextID++
	user.Status = models.AdminStatusPending
	f.users[user.ID] = user
	return nil
}

func (f *fakeAdminStore) Approve(targetID, approverID int, grants models.PrivilegeGrants) (bool, error) {
	u, ok := f.users[targetID]
	if !ok || u.Status != models.AdminStatusPending {
		return false, nil
	}
	u.Status = models.AdminStatusApproved
	u.ManageProducts = grants.ManageProducts
	u.ProcessOrders = grants.ProcessOrders
	u.AccessClients = grants.AccessClients
	u.ViewStatistics = grants.ViewStatistics
	u.ApprovedBy = &approverID
	return true, nil
}

func (f *fakeAdminStore) Reject(targetID int) (bool, error) {
	u, ok := f.users[targetID]
	if !ok || u.Status != models.AdminStatusPending {
		return false, nil
	}
	u.Status = models.AdminStatusRejected
	u.ManageProducts = false
	u.ProcessOrders = false
	u.AccessClients = false
	u.ViewStatistics = false
	return true, nil
}

func (f *fakeAdminStore) ListByStatus(status models.AdminStatus) ([]models.AdminUser, error) {
	var out []models.AdminUser
	for _, u := range f.users {
		if status == models.AdminStatusNone || u.Status == status {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeAdminStore) add(status models.AdminStatus, super bool) *models.AdminUser {
	u := &models.AdminUser{ID: f.nextID, Status: status, IsSuperAdmin: super}
	f.nextID++
	f.users[u.ID] = u
	return u
}

const testSecret = "test-secret"

func TestLoginDeclinesPendingAndRejected(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminAuthService(store, testSecret)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	pending := store.add(models.AdminStatusPending, false)
	pending.Email = "pending@example.com"
	pending.PasswordHash = string(hash)

	rejected := store.add(models.AdminStatusRejected, false)
	rejected.Email = "rejected@example.com"
	rejected.PasswordHash = string(hash)

	if _, err := svc.Login("pending@example.com", "hunter22"); err != utils.ErrAccountPending {
		t.Fatalf("pending login: got %v, want ErrAccountPending", err)
	}
	if _, err := svc.Login("rejected@example.com", "hunter22"); err != utils.ErrAccountRejected {
		t.Fatalf("rejected login: got %v, want ErrAccountRejected", err)
	}
	if _, err := svc.Login("pending@example.com", "wrong"); err == utils.ErrAccountPending {
		t.Fatal("bad password must fail before status is considered")
	}
}

func TestLoginApprovedMintsToken(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminAuthService(store, testSecret)

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	u := store.add(models.AdminStatusApproved, false)
	u.Email = "ops@example.com"
	u.PasswordHash = string(hash)

	token, err := svc.Login("ops@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := utils.ValidateJWT(token, testSecret)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != u.ID || claims.Role != utils.RoleAdmin {
		t.Fatalf("claims = %+v, want user %d role admin", claims, u.ID)
	}
}

func TestResolveAdminStateMissingAccount(t *testing.T) {
	svc := NewAdminAuthService(newFakeAdminStore(), testSecret)

	state, err := svc.ResolveAdminState(42)
	if err != nil {
		t.Fatalf("missing account must not be an error, got %v", err)
	}
	if state.Status != models.AdminStatusNone {
		t.Fatalf("status = %q, want none", state.Status)
	}
	if svc.CheckPrivilege(42, models.PrivilegeProcessOrders) {
		t.Fatal("missing account must hold no privileges")
	}
}

func TestRegisterThenPrivilegesDenied(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminAuthService(store, testSecret)

	id, err := svc.RegisterAdmin("New Operator", "new@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, p := range []models.Privilege{
		models.PrivilegeManageProducts, models.PrivilegeProcessOrders,
		models.PrivilegeAccessClients, models.PrivilegeViewStatistics,
	} {
		if svc.CheckPrivilege(id, p) {
			t.Fatalf("fresh registration must not hold %q", p)
		}
	}
}

func TestApproveRequiresSuperAdmin(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminAuthService(store, testSecret)

	target := store.add(models.AdminStatusPending, false)
	regular := store.add(models.AdminStatusApproved, false)
	regular.ProcessOrders = true

	err := svc.ApproveAdmin(target.ID, regular.ID, models.PrivilegeGrants{ProcessOrders: true})
	if err != utils.ErrNotAllowed {
		t.Fatalf("approve by non-super: got %v, want ErrNotAllowed", err)
	}
	if target.Status != models.AdminStatusPending {
		t.Fatalf("target mutated by denied approval: %q", target.Status)
	}
}

func TestApproveSetsGrantsExactly(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminAuthService(store, testSecret)

	super := store.add(models.AdminStatusApproved, true)
	target := store.add(models.AdminStatusPending, false)

	grants := models.PrivilegeGrants{ProcessOrders: true, ViewStatistics: true}
	if err := svc.ApproveAdmin(target.ID, super.ID, grants); err != nil {
		t.Fatalf("approve: %v", err)
	}

	state, _ := svc.ResolveAdminState(target.ID)
	if state.Status != models.AdminStatusApproved {
		t.Fatalf("status = %q, want approved", state.Status)
	}
	if !state.Has(models.PrivilegeProcessOrders) || !state.Has(models.PrivilegeViewStatistics) {
		t.Fatal("granted privileges missing after approval")
	}
	if state.Has(models.PrivilegeManageProducts) || state.Has(models.PrivilegeAccessClients) {
		t.Fatal("ungranted privileges present after approval")
	}
}

func TestApproveNonPendingFails(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminAuthService(store, testSecret)

	super := store.add(models.AdminStatusApproved, true)
	already := store.add(models.AdminStatusApproved, false)

	err := svc.ApproveAdmin(already.ID, super.ID, models.PrivilegeGrants{})
	if err != utils.ErrAdminNotFound {
		t.Fatalf("approve non-pending: got %v, want ErrAdminNotFound", err)
	}

	err = svc.ApproveAdmin(999, super.ID, models.PrivilegeGrants{})
	if err != utils.ErrAdminNotFound {
		t.Fatalf("approve unknown id: got %v, want ErrAdminNotFound", err)
	}
}

func TestRejectClearsAndDeniesReapproval(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminAuthService(store, testSecret)

	super := store.add(models.AdminStatusApproved, true)
	target := store.add(models.AdminStatusPending, false)

	if err := svc.RejectAdmin(target.ID, super.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if target.Status != models.AdminStatusRejected {
		t.Fatalf("status = %q, want rejected", target.Status)
	}

	// Rejected is terminal; a later approval attempt must not resurrect it.
	err := svc.ApproveAdmin(target.ID, super.ID, models.PrivilegeGrants{ProcessOrders: true})
	if err != utils.ErrAdminNotFound {
		t.Fatalf("approve after reject: got %v, want ErrAdminNotFound", err)
	}
}

func TestListAdminsRequiresSuperAdmin(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminAuthService(store, testSecret)

	regular := store.add(models.AdminStatusApproved, false)
	super := store.add(models.AdminStatusApproved, true)
	store.add(models.AdminStatusPending, false)

	if _, err := svc.ListAdmins(regular.ID, models.AdminStatusNone); err != utils.ErrNotAllowed {
		t.Fatalf("list by non-super: got %v, want ErrNotAllowed", err)
	}

	pending, err := svc.ListAdmins(super.ID, models.AdminStatusPending)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending count = %d, want 1", len(pending))
	}
}
