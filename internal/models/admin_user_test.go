package models

import "testing"

func TestStateMasksUnapprovedPrivileges(t *testing.T) {
	// Stored flags must never leak through a non-approved status.
	for _, status := range []AdminStatus{AdminStatusPending, AdminStatusRejected} {
		u := &AdminUser{
			Status:         status,
			IsSuperAdmin:   true,
			ManageProducts: true,
			ProcessOrders:  true,
			AccessClients:  true,
			ViewStatistics: true,
		}
		state := u.State()
		if state.Status != status {
			t.Fatalf("status %q: got %q", status, state.Status)
		}
		if state.IsSuperAdmin {
			t.Fatalf("status %q: super admin flag leaked", status)
		}
		for _, p := range []Privilege{PrivilegeManageProducts, PrivilegeProcessOrders, PrivilegeAccessClients, PrivilegeViewStatistics} {
			if state.Has(p) {
				t.Fatalf("status %q: privilege %q leaked", status, p)
			}
		}
	}
}

func TestStateApprovedExposesFlags(t *testing.T) {
	u := &AdminUser{
		Status:         AdminStatusApproved,
		ProcessOrders:  true,
		ViewStatistics: true,
	}
	state := u.State()

	if !state.Has(PrivilegeProcessOrders) {
		t.Fatal("expected process_orders to be granted")
	}
	if !state.Has(PrivilegeViewStatistics) {
		t.Fatal("expected view_statistics to be granted")
	}
	if state.Has(PrivilegeManageProducts) {
		t.Fatal("manage_products was not granted")
	}
	if state.Has(PrivilegeAccessClients) {
		t.Fatal("access_clients was not granted")
	}
}

func TestSuperAdminHasEveryPrivilege(t *testing.T) {
	u := &AdminUser{Status: AdminStatusApproved, IsSuperAdmin: true}
	state := u.State()

	for _, p := range []Privilege{PrivilegeManageProducts, PrivilegeProcessOrders, PrivilegeAccessClients, PrivilegeViewStatistics} {
		if !state.Has(p) {
			t.Fatalf("super admin missing %q", p)
		}
	}
}

func TestStateNilUser(t *testing.T) {
	var u *AdminUser
	state := u.State()
	if state.Status != AdminStatusNone {
		t.Fatalf("nil user status = %q, want none", state.Status)
	}
	if state.Has(PrivilegeProcessOrders) {
		t.Fatal("nil user must hold no privileges")
	}
}
