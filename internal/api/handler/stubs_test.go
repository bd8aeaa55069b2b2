package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// stubCRUD implements ports.CRUDService through optional function fields.
type stubCRUD[C, U, V any] struct {
	createFn  func(ctx context.Context, in C) (uuid.UUID, error)
	getAllFn  func(ctx context.Context, req domain.PageRequest) (domain.Page[V], error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (V, error)
	updateFn  func(ctx context.Context, id uuid.UUID, in U) (V, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (s *stubCRUD[C, U, V]) Create(ctx context.Context, in C) (uuid.UUID, error) {
	return s.createFn(ctx, in)
}

func (s *stubCRUD[C, U, V]) GetAll(ctx context.Context, req domain.PageRequest) (domain.Page[V], error) {
	return s.getAllFn(ctx, req)
}

func (s *stubCRUD[C, U, V]) GetByID(ctx context.Context, id uuid.UUID) (V, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubCRUD[C, U, V]) Update(ctx context.Context, id uuid.UUID, in U) (V, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubCRUD[C, U, V]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.deleteFn(ctx, id)
}

type (
	stubClientService  = stubCRUD[ports.CreateClientInput, ports.UpdateClientInput, ports.ClientView]
	stubProjectService = stubCRUD[ports.CreateProjectInput, ports.UpdateProjectInput, ports.ProjectView]
	stubUserService    = stubCRUD[ports.CreateUserInput, ports.UpdateUserInput, ports.UserView]
)

// stubKeys is an in-memory ports.IdempotencyStore.
type stubKeys struct {
	done     map[string]string
	pending  map[string]bool
	released []string
}

func newStubKeys() *stubKeys {
	return &stubKeys{done: map[string]string{}, pending: map[string]bool{}}
}

func (s *stubKeys) Reserve(_ context.Context, scope, key string) (string, bool, error) {
	k := scope + ":" + key
	if id, ok := s.done[k]; ok {
		return id, false, nil
	}
	if s.pending[k] {
		return "", false, domain.ErrRequestInProgress
	}
	s.pending[k] = true
	return "", true, nil
}

func (s *stubKeys) Complete(_ context.Context, scope, key, resourceID string) error {
	k := scope + ":" + key
	delete(s.pending, k)
	s.done[k] = resourceID
	return nil
}

func (s *stubKeys) Release(_ context.Context, scope, key string) error {
	k := scope + ":" + key
	delete(s.pending, k)
	s.released = append(s.released, k)
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newJSONContext builds a context for method/target with an optional JSON body
// and path id.
func newJSONContext(e *echo.Echo, method, target, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}
