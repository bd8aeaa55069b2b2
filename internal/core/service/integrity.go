package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

// cascadeProjects removes every project owned by c. It runs in the same unit
// of work as the client delete, so either both disappear or neither does.
func cascadeProjects(ctx context.Context, uow ports.UnitOfWork, c *domain.Client) (int64, error) {
	n, err := uow.Projects().DeleteByClient(ctx, c.ID)
	if err != nil {
		return 0, fmt.Errorf("cascade projects: %w", err)
	}
	return n, nil
}

// restrictManagedProjects refuses to delete a user who still manages projects.
func restrictManagedProjects(ctx context.Context, uow ports.UnitOfWork, u *domain.User) (int64, error) {
	n, err := uow.Projects().CountByManager(ctx, u.ID)
	if err != nil {
		return 0, fmt.Errorf("count managed projects: %w", err)
	}
	if n > 0 {
		return 0, fmt.Errorf("%w (%d)", domain.ErrUserManagesProjects, n)
	}
	return 0, nil
}

// verifyProjectRefs checks that the owning client and the manager exist.
func verifyProjectRefs(ctx context.Context, uow ports.UnitOfWork, p *domain.Project) error {
	if err := referenceExists[domain.Client](ctx, uow.Clients(), p.ClientID, "clientId"); err != nil {
		return err
	}
	return referenceExists[domain.User](ctx, uow.Users(), p.ManagerID, "managerId")
}

// verifyUniqueLogin fails when another user already holds u.Login.
func verifyUniqueLogin(ctx context.Context, uow ports.UnitOfWork, u *domain.User) error {
	taken, err := uow.Users().ExistsByLogin(ctx, u.Login, u.ID)
	if err != nil {
		return fmt.Errorf("check login: %w", err)
	}
	if taken {
		return domain.ErrLoginTaken
	}
	return nil
}

func referenceExists[E any](ctx context.Context, repo ports.Repository[E], id uuid.UUID, field string) error {
	if id == uuid.Nil {
		return domain.Invalid(field, "is required")
	}
	var err error
	if l, ok := repo.(ports.ReferenceLocker); ok {
		err = l.LockForReference(ctx, id)
	} else {
		_, err = repo.FindByID(ctx, id)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Invalid(field, "does not exist")
	}
	if err != nil {
		return fmt.Errorf("look up %s: %w", field, err)
	}
	return nil
}
