// Package models defines the persistent entities of listkeeper. The JSON
// field names match the public API surface.
package models

// User is an account identity. PasswordHash is never serialized; reads that
// need it must ask the repository for the password projection explicitly.
type User struct {
	ID           string  `json:"id"`
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	Roles        []Role  `json:"roles"`
	IsActive     bool    `json:"isActive"`
	UpdatedByID  *string `json:"updatedById,omitempty"`
}

// HasAnyRole reports whether the user holds at least one of the given roles.
// An empty argument list means "any authenticated user" and always passes.
func (u *User) HasAnyRole(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, required := range roles {
		for _, r := range u.Roles {
			if r == required {
				return true
			}
		}
	}
	return false
}
