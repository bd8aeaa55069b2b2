package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
)

// Repository is the persistence contract shared by every entity. List must
// order by identifier. Lookups and deletes of a missing identifier return
// domain.ErrNotFound.
type Repository[E any] interface {
	domain.Pageable[*E]
	FindByID(ctx context.Context, id uuid.UUID) (*E, error)
	Insert(ctx context.Context, e *E) error
	Update(ctx context.Context, e *E) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClientRepository interface {
	Repository[domain.Client]
}

type ProjectRepository interface {
	Repository[domain.Project]
	// DeleteByClient removes every project owned by clientID and reports how
	// many were removed.
	DeleteByClient(ctx context.Context, clientID uuid.UUID) (int64, error)
	// CountByManager counts projects whose manager is managerID.
	CountByManager(ctx context.Context, managerID uuid.UUID) (int64, error)
}

type UserRepository interface {
	Repository[domain.User]
	// ExistsByLogin reports whether a user other than exclude holds login.
	// Pass uuid.Nil to consider every user.
	ExistsByLogin(ctx context.Context, login string, exclude uuid.UUID) (bool, error)
}

// ReferenceLocker is implemented by repositories whose store does not detect a
// reference check racing a delete of the referenced record. LockForReference
// returns domain.ErrNotFound when id is absent; otherwise it writes to the
// record so that a concurrent unit of work deleting it fails to commit.
type ReferenceLocker interface {
	LockForReference(ctx context.Context, id uuid.UUID) error
}

// UnitOfWork exposes repositories bound to one open transaction.
type UnitOfWork interface {
	Clients() ClientRepository
	Projects() ProjectRepository
	Users() UserRepository
}

// Store is the durable backend. WithinTx commits when fn returns nil and rolls
// back otherwise, including when ctx is cancelled; the UnitOfWork must not be
// used after fn returns.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Name() string
}
