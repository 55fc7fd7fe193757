package models

import (
	"fmt"

	"github.com/dmitrijs2005/listkeeper/internal/common"
)

// Role is a closed enumeration of account capabilities. New roles are added
// by declaring a new constant; values outside the enumeration are rejected
// by ParseRole.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleSuperUser Role = "superUser"
)

// DefaultRoles is the role set assigned on signup.
func DefaultRoles() []Role {
	return []Role{RoleUser}
}

// ParseRole validates a raw string against the enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleSuperUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", common.ErrValidation, s)
}

// ParseRoles validates every element of raw.
func ParseRoles(raw []string) ([]Role, error) {
	roles := make([]Role, 0, len(raw))
	for _, s := range raw {
		r, err := ParseRole(s)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// RoleStrings converts a role set to its raw string form, e.g. for storage.
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
