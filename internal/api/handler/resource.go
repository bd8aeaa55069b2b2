package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sweem/sweem-api/internal/api/metrics"
	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry a create without duplicating it.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplayed is set on responses served from a stored key.
const HeaderIdempotentReplayed = "Idempotent-Replayed"

// idResponse is the body of create and delete responses.
type idResponse struct {
	ID uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
}

// pageResponse is the paginated list envelope shared by every collection.
type pageResponse[T any] struct {
	Items       []T   `json:"items"`
	Page        int   `json:"page"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	HasPrevious bool  `json:"hasPrevious"`
	HasNext     bool  `json:"hasNext"`
}

func toPageResponse[V, R any](p domain.Page[V], fn func(V) R) pageResponse[R] {
	items := make([]R, len(p.Items))
	for i, v := range p.Items {
		items[i] = fn(v)
	}
	return pageResponse[R]{
		Items:       items,
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalCount:  p.TotalCount,
		TotalPages:  p.TotalPages(),
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
	}
}

// pageQuery reads page and pageSize. Missing values take the defaults and
// out-of-range values are clamped; non-integers are rejected.
func pageQuery(c echo.Context) (domain.PageRequest, error) {
	page, size := 1, domain.DefaultPageSize
	err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("pageSize", &size).
		BindError()
	if err != nil {
		return domain.PageRequest{}, echo.NewHTTPError(http.StatusBadRequest, "page and pageSize must be integers")
	}
	return domain.NewPageRequest(page, size), nil
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "id must be a UUID")
	}
	return id, nil
}

func bindBody(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// creator runs create requests, honouring Idempotency-Key when a store is
// configured.
type creator struct {
	collection string
	keys       ports.IdempotencyStore
	log        zerolog.Logger
}

func newCreator(collection string, keys ports.IdempotencyStore, log zerolog.Logger) creator {
	return creator{collection: collection, keys: keys, log: log}
}

func (cr creator) create(c echo.Context, fn func(ctx context.Context) (uuid.UUID, error)) error {
	ctx := c.Request().Context()
	key := c.Request().Header.Get(HeaderIdempotencyKey)
	if key == "" || cr.keys == nil {
		id, err := fn(ctx)
		if err != nil {
			return err
		}
		return cr.created(c, id)
	}

	existing, reserved, err := cr.keys.Reserve(ctx, cr.collection, key)
	if err != nil {
		return err
	}
	if !reserved {
		id, err := uuid.Parse(existing)
		if err != nil {
			return err
		}
		metrics.IdempotentReplaysTotal.WithLabelValues(cr.collection).Inc()
		c.Response().Header().Set(HeaderIdempotentReplayed, "true")
		return cr.created(c, id)
	}

	id, err := fn(ctx)
	if err != nil {
		if relErr := cr.keys.Release(context.WithoutCancel(ctx), cr.collection, key); relErr != nil {
			cr.log.Warn().Err(relErr).Str("collection", cr.collection).Msg("release idempotency key")
		}
		return err
	}
	// The record exists at this point; a lost key only costs replay.
	if err := cr.keys.Complete(context.WithoutCancel(ctx), cr.collection, key, id.String()); err != nil {
		cr.log.Warn().Err(err).Str("collection", cr.collection).Str("id", id.String()).Msg("store idempotency key")
	}
	return cr.created(c, id)
}

func (cr creator) created(c echo.Context, id uuid.UUID) error {
	c.Response().Header().Set(echo.HeaderLocation, "/"+cr.collection+"/"+id.String())
	return c.JSON(http.StatusCreated, idResponse{ID: id})
}

// deleted maps the (found, err) result of a service delete to a response.
func deleted(c echo.Context, id uuid.UUID, found bool, err error, notFound error) error {
	if err != nil {
		return err
	}
	if !found {
		return notFound
	}
	return c.JSON(http.StatusOK, idResponse{ID: id})
}
