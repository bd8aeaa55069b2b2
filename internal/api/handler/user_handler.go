package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service ports.UserService
	creator creator
}

// NewUserHandler builds a UserHandler. keys may be nil to disable
// idempotent creates.
func NewUserHandler(service ports.UserService, keys ports.IdempotencyStore, log zerolog.Logger) *UserHandler {
	return &UserHandler{service: service, creator: newCreator("users", keys, log)}
}

// List handles GET /users.
//
// @Summary     List users
// @Tags        users
// @Produce     json
// @Param       page      query     int  false  "Page number (default 1)"
// @Param       pageSize  query     int  false  "Page size (default 10, max 100)"
// @Success     200       {object}  pageResponse[userResponse]
// @Failure     400       {object}  ProblemDetails
// @Failure     500       {object}  ProblemDetails
// @Router      /users [get]
func (h *UserHandler) List(c echo.Context) error {
	req, err := pageQuery(c)
	if err != nil {
		return err
	}
	page, err := h.service.GetAll(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toUserResponse))
}

// Get handles GET /users/:id.
//
// @Summary     Get a user
// @Tags        users
// @Produce     json
// @Param       id   path      string  true  "User ID (UUID)"
// @Success     200  {object}  userResponse
// @Failure     400  {object}  ProblemDetails
// @Failure     404  {object}  ProblemDetails
// @Router      /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	view, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(view))
}

// Create handles POST /users. The password is hashed before storage.
//
// @Summary     Create a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param       body             body      createUserRequest  true   "User"
// @Success     201              {object}  idResponse
// @Header      201              {string}  Location           "/users/{id}"
// @Failure     400              {object}  ProblemDetails
// @Failure     409              {object}  ProblemDetails
// @Router      /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return h.creator.create(c, func(ctx context.Context) (uuid.UUID, error) {
		return h.service.Create(ctx, toCreateUserInput(req))
	})
}

// Update handles PUT /users/:id. Unlike Create, which hashes the supplied
// password, Update stores passwordHash exactly as sent.
//
// @Summary     Update a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id    path      string             true  "User ID (UUID)"
// @Param       body  body      updateUserRequest  true  "User"
// @Success     200   {object}  userResponse
// @Failure     400   {object}  ProblemDetails
// @Failure     404   {object}  ProblemDetails
// @Failure     409   {object}  ProblemDetails
// @Router      /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	view, err := h.service.Update(c.Request().Context(), id, toUpdateUserInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(view))
}

// Delete handles DELETE /users/:id. Users that still manage projects cannot
// be deleted.
//
// @Summary     Delete a user
// @Tags        users
// @Produce     json
// @Param       id   path      string  true  "User ID (UUID)"
// @Success     200  {object}  idResponse
// @Failure     400  {object}  ProblemDetails
// @Failure     404  {object}  ProblemDetails
// @Failure     409  {object}  ProblemDetails
// @Router      /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	found, err := h.service.Delete(c.Request().Context(), id)
	return deleted(c, id, found, err, domain.ErrUserNotFound)
}
