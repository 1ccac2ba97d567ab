package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tawitawi/provincial-portal/internal/api/middleware"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

type MunicipalityHandler struct {
	service ports.MunicipalityService
}

func NewMunicipalityHandler(service ports.MunicipalityService) *MunicipalityHandler {
	return &MunicipalityHandler{service: service}
}

// List handles GET /api/municipalities.
//
// @Summary      List municipalities
// @Tags         municipalities
// @Produce      json
// @Param        includeInactive  query     bool  false  "Include inactive municipalities (session required)"
// @Success      200              {object}  map[string]any
// @Router       /api/municipalities [get]
func (h *MunicipalityHandler) List(c echo.Context) error {
	includeInactive := c.QueryParam("includeInactive") == "true" && middleware.SessionFrom(c) != nil
	items, err := h.service.List(c.Request().Context(), includeInactive)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "municipalities", items)
}

// Get handles GET /api/municipalities/:id.
//
// @Summary      Get a municipality by id
// @Tags         municipalities
// @Produce      json
// @Param        id   path      string  true  "Municipality id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/municipalities/{id} [get]
func (h *MunicipalityHandler) Get(c echo.Context) error {
	m, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "municipality", m)
}

// GetBySlug handles GET /api/municipalities/slug/:slug.
//
// @Summary      Get a municipality by slug
// @Tags         municipalities
// @Produce      json
// @Param        slug  path      string  true  "Municipality slug"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/municipalities/slug/{slug} [get]
func (h *MunicipalityHandler) GetBySlug(c echo.Context) error {
	m, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "municipality", m)
}

// Create handles POST /api/municipalities.
//
// @Summary      Create a municipality
// @Tags         municipalities
// @Accept       json
// @Produce      json
// @Param        body  body      municipalityRequest  true  "Municipality"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/municipalities [post]
func (h *MunicipalityHandler) Create(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req municipalityRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	m, err := h.service.Create(c.Request().Context(), s, req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "municipality", m)
}

// Update handles PUT /api/municipalities/:id.
//
// @Summary      Replace a municipality
// @Tags         municipalities
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Municipality id"
// @Param        body  body      municipalityRequest  true  "Municipality"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/municipalities/{id} [put]
func (h *MunicipalityHandler) Update(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req municipalityRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	m, err := h.service.Update(c.Request().Context(), s, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "municipality", m)
}

// Patch handles PATCH /api/municipalities/:id.
//
// @Summary      Toggle a municipality or change its site settings
// @Tags         municipalities
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Municipality id"
// @Param        body  body      municipalityPatchRequest  true  "Fields to change"
// @Success      200   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/municipalities/{id} [patch]
func (h *MunicipalityHandler) Patch(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req municipalityPatchRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	patch := ports.MunicipalityPatch{IsActive: req.IsActive}
	if req.Settings != nil {
		settings := toSettings(*req.Settings)
		patch.Settings = &settings
	}
	m, err := h.service.Patch(c.Request().Context(), s, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "municipality", m)
}

// Delete handles DELETE /api/municipalities/:id.
//
// @Summary      Delete a municipality
// @Tags         municipalities
// @Produce      json
// @Param        id   path      string  true  "Municipality id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/municipalities/{id} [delete]
func (h *MunicipalityHandler) Delete(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), s, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", nil)
}
