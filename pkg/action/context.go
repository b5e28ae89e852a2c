package action

import (
	"context"
	"mime/multipart"
	"slices"
)

// Principal is the acting user of an action.
type Principal struct {
	ID            string `json:"id"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
	IsSuperuser   bool   `json:"is_superuser"`
	Authenticated bool   `json:"authenticated"`
}

// Context is the request-scoped context passed to every action.
// It implements context.Context by delegating to the wrapped context.
type Context struct {
	context.Context

	// Files holds uploaded multipart files keyed by form field.
	Files map[string][]*multipart.FileHeader

	ActionName string
	Type       string
	RequestID  string
	Role       string
	User       Principal

	IsSuperuser bool
}

// NewContext creates an action context for the named action.
// The role defaults to empty and superuser to false.
func NewContext(parent context.Context, actionName string) *Context {
	if parent == nil {
		parent = context.Background()
	}
	return &Context{
		Context:    parent,
		ActionName: actionName,
		Type:       "api",
		Files:      map[string][]*multipart.FileHeader{},
	}
}

// WithPrincipal sets the acting user, deriving role and superuser flag from it.
// Superusers always act with the admin role.
func (c *Context) WithPrincipal(p Principal) *Context {
	c.User = p
	c.IsSuperuser = p.IsSuperuser
	c.Role = p.Role
	if c.IsSuperuser {
		c.Role = "admin"
	}
	return c
}

// IsAuthenticated reports whether an authenticated user is attached.
func (c *Context) IsAuthenticated() bool {
	return c.User.Authenticated
}

// IsCurrentUser reports whether id belongs to the acting user.
func (c *Context) IsCurrentUser(id string) bool {
	return c.User.Authenticated && id != "" && c.User.ID == id
}

// HasRole reports whether the acting role is one of roles.
func (c *Context) HasRole(roles ...string) bool {
	return c.Role != "" && slices.Contains(roles, c.Role)
}

// Set stores an extension-specific value on the context.
func (c *Context) Set(key, value any) {
	c.Context = context.WithValue(c.Context, key, value)
}

// Get returns a value stored with Set, or nil.
func (c *Context) Get(key any) any {
	return c.Value(key)
}
