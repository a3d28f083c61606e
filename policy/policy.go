// Package policy is the single authorization authority. Every mutating
// handler asks here before touching the store; the functions are pure so
// the rules can be read (and tested) in one place.
package policy

import "github.com/kirnik55/building-app/models"

// CanAssign reports whether a user with the given role may assign or
// unassign the working engineer on a defect.
func CanAssign(role models.Role) bool {
	switch role {
	case models.RoleManager, models.RoleLead, models.RoleAdmin:
		return true
	}
	return false
}

// CanCreateUser reports whether the role may create new user accounts.
// Created accounts are always engineers, whatever role the request asks
// for; only an administrative action can mint anything higher.
func CanCreateUser(role models.Role) bool {
	return role == models.RoleManager || role == models.RoleAdmin
}

// CanDeleteUser reports whether the role may remove user accounts.
func CanDeleteUser(role models.Role) bool {
	return role == models.RoleAdmin
}

// SeesAllDefects reports whether the role views the full defect list.
// Engineers only see defects assigned to themselves; the scoping itself
// happens when the list query is built, not as a post-filter.
func SeesAllDefects(role models.Role) bool {
	switch role {
	case models.RoleManager, models.RoleLead, models.RoleAdmin:
		return true
	}
	return false
}

// CanAssignTarget reports whether the given user may be set as the
// working engineer on a defect. Only active engineers qualify; managers,
// leads and admins direct the work, they are never the assignee.
func CanAssignTarget(u *models.User) bool {
	return u != nil && u.IsActive && u.Role == models.RoleEngineer
}
