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

// ClientHandler handles HTTP requests for client operations.
type ClientHandler struct {
	service ports.ClientService
	creator creator
}

// NewClientHandler builds a ClientHandler. keys may be nil to disable
// idempotent creates.
func NewClientHandler(service ports.ClientService, keys ports.IdempotencyStore, log zerolog.Logger) *ClientHandler {
	return &ClientHandler{service: service, creator: newCreator("clients", keys, log)}
}

// List handles GET /clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Param        page      query     int  false  "Page number (default 1)"
// @Param        pageSize  query     int  false  "Page size (default 10, max 100)"
// @Success      200       {object}  pageResponse[clientResponse]
// @Failure      400       {object}  ProblemDetails
// @Failure      500       {object}  ProblemDetails
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	req, err := pageQuery(c)
	if err != nil {
		return err
	}
	page, err := h.service.GetAll(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toClientResponse))
}

// Get handles GET /clients/:id.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client ID (UUID)"
// @Success      200  {object}  clientResponse
// @Failure      400  {object}  ProblemDetails
// @Failure      404  {object}  ProblemDetails
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	view, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(view))
}

// Create handles POST /clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string         false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      clientRequest  true   "Client"
// @Success      201              {object}  idResponse
// @Header       201              {string}  Location  "/clients/{id}"
// @Failure      400              {object}  ProblemDetails
// @Failure      409              {object}  ProblemDetails
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return h.creator.create(c, func(ctx context.Context) (uuid.UUID, error) {
		return h.service.Create(ctx, toCreateClientInput(req))
	})
}

// Update handles PUT /clients/:id.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Client ID (UUID)"
// @Param        body  body      clientRequest  true  "Client"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  ProblemDetails
// @Failure      404   {object}  ProblemDetails
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req clientRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	view, err := h.service.Update(c.Request().Context(), id, toUpdateClientInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(view))
}

// Delete handles DELETE /clients/:id. The client's projects are deleted with it.
//
// @Summary      Delete a client and its projects
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client ID (UUID)"
// @Success      200  {object}  idResponse
// @Failure      400  {object}  ProblemDetails
// @Failure      404  {object}  ProblemDetails
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	found, err := h.service.Delete(c.Request().Context(), id)
	return deleted(c, id, found, err, domain.ErrClientNotFound)
}
