package enums

import (
	"fmt"
	"strings"
)

// Role is the fixed account type chosen at registration.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleDealer   Role = "DEALER"
	RoleAdmin    Role = "ADMIN"
)

var validRoles = []Role{
	RoleCustomer,
	RoleDealer,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// SelfService reports whether the role may be chosen through public registration.
func (r Role) SelfService() bool {
	return r == RoleCustomer || r == RoleDealer
}

// ParseRole converts raw input into a Role, ignoring case.
func ParseRole(value string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
