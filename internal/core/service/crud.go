package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

// entityRules carries the entity-specific strategies plugged into crudService.
// E is the stored entity, C/U the create/update inputs and V the output view.
type entityRules[E, C, U, V any] struct {
	entity   string
	notFound error

	repo func(uow ports.UnitOfWork) ports.Repository[E]
	// build maps a create input to a new entity carrying id.
	build func(id uuid.UUID, in C) (*E, error)
	// apply copies the mutable fields of an update input onto e.
	apply func(e *E, in U)
	// validate checks the field-level invariants of e.
	validate func(e *E) error
	// verifyRefs checks invariants that need the store (references, uniqueness).
	verifyRefs func(ctx context.Context, uow ports.UnitOfWork, e *E) error
	// beforeDelete enforces the delete policy and reports dependents removed.
	beforeDelete func(ctx context.Context, uow ports.UnitOfWork, e *E) (int64, error)
	view         func(e *E) V
}

// crudService implements ports.CRUDService once for every entity type.
type crudService[E, C, U, V any] struct {
	store    ports.Store
	rules    entityRules[E, C, U, V]
	logger   zerolog.Logger
	observer Observer
	newID    func() uuid.UUID
}

func newCRUDService[E, C, U, V any](store ports.Store, rules entityRules[E, C, U, V], logger zerolog.Logger, opts []Option) *crudService[E, C, U, V] {
	o := buildOptions(opts)
	return &crudService[E, C, U, V]{
		store:    store,
		rules:    rules,
		logger:   logger.With().Str("entity", rules.entity).Logger(),
		observer: o.observer,
		newID:    o.newID,
	}
}

func (s *crudService[E, C, U, V]) Create(ctx context.Context, in C) (uuid.UUID, error) {
	id := s.newID()

	e, err := s.rules.build(id, in)
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.rules.validate(e); err != nil {
		return uuid.Nil, err
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, uow ports.UnitOfWork) error {
		if err := s.verifyRefs(ctx, uow, e); err != nil {
			return err
		}
		return s.rules.repo(uow).Insert(ctx, e)
	})
	if err != nil {
		s.recordConflict(err)
		return uuid.Nil, s.wrap("create", err)
	}

	s.observer.Created(s.rules.entity)
	s.logger.Info().Str("id", id.String()).Msg("record created")
	return id, nil
}

func (s *crudService[E, C, U, V]) GetAll(ctx context.Context, req domain.PageRequest) (domain.Page[V], error) {
	var page domain.Page[*E]
	err := s.store.WithinTx(ctx, func(ctx context.Context, uow ports.UnitOfWork) error {
		var err error
		page, err = domain.Paginate[*E](ctx, s.rules.repo(uow), req)
		return err
	})
	if err != nil {
		return domain.Page[V]{}, s.wrap("list", err)
	}
	return domain.MapPage(page, s.rules.view), nil
}

func (s *crudService[E, C, U, V]) GetByID(ctx context.Context, id uuid.UUID) (V, error) {
	var e *E
	err := s.store.WithinTx(ctx, func(ctx context.Context, uow ports.UnitOfWork) error {
		var err error
		e, err = s.rules.repo(uow).FindByID(ctx, id)
		return err
	})
	if err != nil {
		var zero V
		return zero, s.wrap("get", err)
	}
	return s.rules.view(e), nil
}

func (s *crudService[E, C, U, V]) Update(ctx context.Context, id uuid.UUID, in U) (V, error) {
	var e *E
	err := s.store.WithinTx(ctx, func(ctx context.Context, uow ports.UnitOfWork) error {
		repo := s.rules.repo(uow)

		var err error
		if e, err = repo.FindByID(ctx, id); err != nil {
			return err
		}
		s.rules.apply(e, in)
		if err := s.rules.validate(e); err != nil {
			return err
		}
		if err := s.verifyRefs(ctx, uow, e); err != nil {
			return err
		}
		return repo.Update(ctx, e)
	})
	if err != nil {
		var zero V
		s.recordConflict(err)
		return zero, s.wrap("update", err)
	}

	s.logger.Info().Str("id", id.String()).Msg("record updated")
	return s.rules.view(e), nil
}

func (s *crudService[E, C, U, V]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var dependents int64
	err := s.store.WithinTx(ctx, func(ctx context.Context, uow ports.UnitOfWork) error {
		repo := s.rules.repo(uow)

		e, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if s.rules.beforeDelete != nil {
			if dependents, err = s.rules.beforeDelete(ctx, uow, e); err != nil {
				return err
			}
		}
		return repo.Delete(ctx, id)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		s.recordConflict(err)
		return false, s.wrap("delete", err)
	}

	s.observer.Deleted(s.rules.entity, dependents)
	s.logger.Info().Str("id", id.String()).Int64("dependents_removed", dependents).Msg("record deleted")
	return true, nil
}

func (s *crudService[E, C, U, V]) verifyRefs(ctx context.Context, uow ports.UnitOfWork, e *E) error {
	if s.rules.verifyRefs == nil {
		return nil
	}
	return s.rules.verifyRefs(ctx, uow, e)
}

// wrap replaces a bare store not-found with the entity's own sentinel and
// leaves typed domain errors recognisable through errors.Is.
func (s *crudService[E, C, U, V]) wrap(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) && !errors.Is(err, s.rules.notFound) {
		return s.rules.notFound
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
		return err
	}
	return fmt.Errorf("%s %s: %w", op, s.rules.entity, err)
}

func (s *crudService[E, C, U, V]) recordConflict(err error) {
	if !errors.Is(err, domain.ErrConflict) {
		return
	}
	reason := "other"
	switch {
	case errors.Is(err, domain.ErrLoginTaken):
		reason = "login_taken"
	case errors.Is(err, domain.ErrUserManagesProjects):
		reason = "manages_projects"
	}
	s.observer.Conflict(s.rules.entity, reason)
	s.logger.Warn().Err(err).Str("reason", reason).Msg("integrity conflict")
}
