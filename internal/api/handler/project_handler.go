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

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
	creator creator
}

// NewProjectHandler builds a ProjectHandler. keys may be nil to disable
// idempotent creates.
func NewProjectHandler(service ports.ProjectService, keys ports.IdempotencyStore, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{service: service, creator: newCreator("projects", keys, log)}
}

// List handles GET /projects.
//
// @Summary     List projects
// @Tags        projects
// @Produce     json
// @Param       page      query     int  false  "Page number (default 1)"
// @Param       pageSize  query     int  false  "Page size (default 10, max 100)"
// @Success     200       {object}  pageResponse[projectResponse]
// @Failure     400       {object}  ProblemDetails
// @Failure     500       {object}  ProblemDetails
// @Router      /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	req, err := pageQuery(c)
	if err != nil {
		return err
	}
	page, err := h.service.GetAll(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toProjectResponse))
}

// Get handles GET /projects/:id.
//
// @Summary     Get a project
// @Tags        projects
// @Produce     json
// @Param       id   path      string  true  "Project ID (UUID)"
// @Success     200  {object}  projectResponse
// @Failure     400  {object}  ProblemDetails
// @Failure     404  {object}  ProblemDetails
// @Router      /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	view, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(view))
}

// Create handles POST /projects.
//
// @Summary     Create a project
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param       body             body      createProjectRequest  true   "Project"
// @Success     201              {object}  idResponse
// @Header      201              {string}  Location              "/projects/{id}"
// @Failure     400              {object}  ProblemDetails
// @Failure     409              {object}  ProblemDetails
// @Router      /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return h.creator.create(c, func(ctx context.Context) (uuid.UUID, error) {
		return h.service.Create(ctx, toCreateProjectInput(req))
	})
}

// Update handles PUT /projects/:id.
//
// @Summary     Update a project
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       id    path      string                true  "Project ID (UUID)"
// @Param       body  body      updateProjectRequest  true  "Project"
// @Success     200   {object}  projectResponse
// @Failure     400   {object}  ProblemDetails
// @Failure     404   {object}  ProblemDetails
// @Router      /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req updateProjectRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	view, err := h.service.Update(c.Request().Context(), id, toUpdateProjectInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(view))
}

// Delete handles DELETE /projects/:id.
//
// @Summary     Delete a project
// @Tags        projects
// @Produce     json
// @Param       id   path      string  true  "Project ID (UUID)"
// @Success     200  {object}  idResponse
// @Failure     400  {object}  ProblemDetails
// @Failure     404  {object}  ProblemDetails
// @Router      /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	found, err := h.service.Delete(c.Request().Context(), id)
	return deleted(c, id, found, err, domain.ErrProjectNotFound)
}
