package policy

import (
	"testing"

	"github.com/kirnik55/building-app/models"
)

func TestCanAssign(t *testing.T) {
	cases := []struct {
		role models.Role
		want bool
	}{
		{models.RoleEngineer, false},
		{models.RoleManager, true},
		{models.RoleLead, true},
		{models.RoleAdmin, true},
		{models.Role("intruder"), false},
		{models.Role(""), false},
	}
	for _, tc := range cases {
		if got := CanAssign(tc.role); got != tc.want {
			t.Errorf("CanAssign(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestCanCreateUser(t *testing.T) {
	cases := []struct {
		role models.Role
		want bool
	}{
		{models.RoleEngineer, false},
		{models.RoleManager, true},
		{models.RoleLead, false},
		{models.RoleAdmin, true},
	}
	for _, tc := range cases {
		if got := CanCreateUser(tc.role); got != tc.want {
			t.Errorf("CanCreateUser(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestCanDeleteUser(t *testing.T) {
	if !CanDeleteUser(models.RoleAdmin) {
		t.Error("admin should be able to delete users")
	}
	for _, role := range []models.Role{models.RoleEngineer, models.RoleManager, models.RoleLead} {
		if CanDeleteUser(role) {
			t.Errorf("%s should not be able to delete users", role)
		}
	}
}

func TestSeesAllDefects(t *testing.T) {
	if SeesAllDefects(models.RoleEngineer) {
		t.Error("engineers only see their own defects")
	}
	for _, role := range []models.Role{models.RoleManager, models.RoleLead, models.RoleAdmin} {
		if !SeesAllDefects(role) {
			t.Errorf("%s should see all defects", role)
		}
	}
}

func TestCanAssignTarget(t *testing.T) {
	engineer := &models.User{Role: models.RoleEngineer, IsActive: true}
	if !CanAssignTarget(engineer) {
		t.Error("active engineer should be assignable")
	}

	inactive := &models.User{Role: models.RoleEngineer, IsActive: false}
	if CanAssignTarget(inactive) {
		t.Error("inactive engineer should not be assignable")
	}

	for _, role := range []models.Role{models.RoleManager, models.RoleLead, models.RoleAdmin} {
		u := &models.User{Role: role, IsActive: true}
		if CanAssignTarget(u) {
			t.Errorf("%s should never be the assignee", role)
		}
	}

	if CanAssignTarget(nil) {
		t.Error("nil user should not be assignable")
	}
}
