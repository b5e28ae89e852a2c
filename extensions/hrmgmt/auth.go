package hrmgmt

import (
	"strings"

	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/apperr"
)

// Roles known to the employee schema.
const (
	RoleAdmin  = "admin"
	RoleHR     = "hr"
	RoleMember = "member"

	// RoleAll is the visibility role used when a member views someone else.
	RoleAll = "all"
)

// Access check names accepted by employee_verify_access.
const (
	AccessAuthenticated = "is_authenticated"
	AccessCreate        = "employee_create"
	AccessUpdate        = "employee_update"
	AccessShow          = "employee_show"
	AccessDelete        = "employee_delete"
)

func requireAuthenticated(c *action.Context) error {
	if !c.IsAuthenticated() {
		return apperr.NotAuthorized("user", "You are not logged in to perform this action")
	}
	return nil
}

// canCreate allows superusers, admins and hr.
func canCreate(c *action.Context) bool {
	return c.IsSuperuser || c.HasRole(RoleAdmin, RoleHR)
}

// canUpdate allows superusers, admins and hr, and any user with a role
// updating their own record.
func canUpdate(c *action.Context, e Employee) bool {
	if c.IsSuperuser || c.HasRole(RoleAdmin, RoleHR) {
		return true
	}
	return c.Role != "" && isSelf(c, e)
}

func canShow(c *action.Context) bool {
	return c.IsAuthenticated()
}

func canDelete(c *action.Context) bool {
	return c.HasRole(RoleAdmin, RoleHR)
}

// isSelf reports whether e is the acting user's record, matched by record
// id or work email.
func isSelf(c *action.Context, e Employee) bool {
	if c.IsCurrentUser(e.ID) {
		return true
	}
	return c.IsAuthenticated() && c.User.Email != "" && strings.EqualFold(c.User.Email, e.WorkEmail())
}

// viewRole is the role used to filter what c may see of e. Members
// viewing another employee see only what is shown to everyone.
func viewRole(c *action.Context, e Employee) string {
	if c.Role == RoleMember && !isSelf(c, e) {
		return RoleAll
	}
	return c.Role
}
