package ports

import (
	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
)

// CreateUserInput carries the plaintext password; it is hashed before storage.
type CreateUserInput struct {
	Name     string
	Login    string
	Password string
	Role     domain.Role
}

// UpdateUserInput carries an already hashed password that is stored verbatim.
// An empty PasswordHash keeps the current one.
type UpdateUserInput struct {
	Name         string
	Login        string
	PasswordHash string
	Role         domain.Role
}

// UserView never includes the password hash.
type UserView struct {
	ID    uuid.UUID
	Name  string
	Login string
	Role  domain.Role
}

type UserService interface {
	CRUDService[CreateUserInput, UpdateUserInput, UserView]
}
