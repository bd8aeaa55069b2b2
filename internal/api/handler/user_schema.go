package handler

import (
	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
)

// --- Request / Response types ---

// Roles travel as integers: 0 = User, 1 = Admin.

type createUserRequest struct {
	Name     string      `json:"name"     validate:"required,max=200"`
	Login    string      `json:"login"    validate:"required,max=100"`
	Password string      `json:"password" validate:"required"`
	Role     domain.Role `json:"role"     validate:"oneof=0 1" enums:"0,1"`
}

// updateUserRequest carries an already hashed password which is stored as
// given. Leave passwordHash empty to keep the current one.
type updateUserRequest struct {
	Name         string      `json:"name"         validate:"required,max=200"`
	Login        string      `json:"login"        validate:"required,max=100"`
	PasswordHash string      `json:"passwordHash"`
	Role         domain.Role `json:"role"         validate:"oneof=0 1" enums:"0,1"`
}

type userResponse struct {
	ID    uuid.UUID   `json:"id"    swaggertype:"string" format:"uuid"`
	Name  string      `json:"name"`
	Login string      `json:"login"`
	Role  domain.Role `json:"role"  enums:"0,1"`
}
