// Package models defines the client-side domain model of Goowi: accounts,
// role-specific profiles and waves, plus the option tables the forms offer.
package models

import (
	"fmt"
	"strings"
)

// Role is the account type. Exactly one profile variant exists per account.
type Role string

const (
	RolePerson  Role = "person"
	RoleCompany Role = "company"
	RoleCharity Role = "charity"
	RoleAdmin   Role = "admin"
)

// Roles lists every role in display order.
func Roles() []Role {
	return []Role{RolePerson, RoleCompany, RoleCharity, RoleAdmin}
}

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePerson, RoleCompany, RoleCharity, RoleAdmin:
		return true
	}
	return false
}

// IsOrganization is true for companies and charities, which carry industry,
// website, address and certifications.
func (r Role) IsOrganization() bool {
	return r == RoleCompany || r == RoleCharity
}

// Label is the human name used in titles ("Company", "Personal", ...).
func (r Role) Label() string {
	switch r {
	case RoleCompany:
		return "Company"
	case RoleCharity:
		return "Charity"
	case RoleAdmin:
		return "Admin"
	case RolePerson:
		return "Personal"
	}
	return ""
}
