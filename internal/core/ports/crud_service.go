package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
)

// CRUDService is the use-case contract every entity service satisfies.
//
//   - Create returns the new identifier or a validation/conflict error.
//   - GetByID and Update return an error wrapping domain.ErrNotFound when the
//     identifier is unknown.
//   - Delete returns false with a nil error when the identifier is unknown, and
//     an error wrapping domain.ErrConflict when integrity rules forbid it.
type CRUDService[C, U, V any] interface {
	Create(ctx context.Context, in C) (uuid.UUID, error)
	GetAll(ctx context.Context, req domain.PageRequest) (domain.Page[V], error)
	GetByID(ctx context.Context, id uuid.UUID) (V, error)
	Update(ctx context.Context, id uuid.UUID, in U) (V, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
