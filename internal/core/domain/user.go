package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of user roles. The numeric values are part of the
// wire contract.
type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAdmin:
		return "Admin"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// User is a person who can manage projects. PasswordHash carries a
// version-tagged hash and must never leave the service layer.
type User struct {
	ID           uuid.UUID
	Name         string
	Login        string
	PasswordHash string
	Role         Role
}
