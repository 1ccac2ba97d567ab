package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tawitawi/provincial-portal/internal/api/middleware"
	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

// DirectoryHandler serves the office directory.
type DirectoryHandler struct {
	service ports.DirectoryService
}

func NewDirectoryHandler(service ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// List handles GET /api/directories.
//
// @Summary      List directory entries
// @Tags         directories
// @Produce      json
// @Param        category  query     string  false  "PROVINCIAL_OFFICE, NATIONAL_AGENCY, BARMM_MINISTRY, LGU or OTHER"
// @Success      200       {object}  map[string]any
// @Failure      400       {object}  map[string]any
// @Router       /api/directories [get]
func (h *DirectoryHandler) List(c echo.Context) error {
	filter := ports.DirectoryFilter{
		Category:   domain.DirectoryCategory(c.QueryParam("category")),
		ActiveOnly: !(c.QueryParam("includeInactive") == "true" && middleware.SessionFrom(c) != nil),
	}
	items, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "directories", items)
}

// Get handles GET /api/directories/:id.
//
// @Summary      Get a directory entry by id
// @Tags         directories
// @Produce      json
// @Param        id   path      string  true  "Directory id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/directories/{id} [get]
func (h *DirectoryHandler) Get(c echo.Context) error {
	d, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "directory", d)
}

// GetBySlug handles GET /api/directories/slug/:slug.
//
// @Summary      Get a directory entry by slug
// @Tags         directories
// @Produce      json
// @Param        slug  path      string  true  "Directory slug"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/directories/slug/{slug} [get]
func (h *DirectoryHandler) GetBySlug(c echo.Context) error {
	d, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "directory", d)
}

// Create handles POST /api/directories.
//
// @Summary      Create a directory entry
// @Tags         directories
// @Accept       json
// @Produce      json
// @Param        body  body      directoryRequest  true  "Directory entry"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /api/directories [post]
func (h *DirectoryHandler) Create(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req directoryRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	d, err := h.service.Create(c.Request().Context(), s, req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "directory", d)
}

// Update handles PUT /api/directories/:id.
//
// @Summary      Replace a directory entry
// @Tags         directories
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Directory id"
// @Param        body  body      directoryRequest  true  "Directory entry"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/directories/{id} [put]
func (h *DirectoryHandler) Update(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req directoryRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	d, err := h.service.Update(c.Request().Context(), s, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "directory", d)
}

// Patch handles PATCH /api/directories/:id.
//
// @Summary      Toggle or reorder a directory entry
// @Tags         directories
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Directory id"
// @Param        body  body      directoryPatchRequest  true  "Fields to change"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/directories/{id} [patch]
func (h *DirectoryHandler) Patch(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req directoryPatchRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	d, err := h.service.Patch(c.Request().Context(), s, c.Param("id"), ports.DirectoryPatch{IsActive: req.IsActive, Order: req.Order})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "directory", d)
}

// Delete handles DELETE /api/directories/:id.
//
// @Summary      Delete a directory entry
// @Tags         directories
// @Produce      json
// @Param        id   path      string  true  "Directory id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/directories/{id} [delete]
func (h *DirectoryHandler) Delete(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), s, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", nil)
}
