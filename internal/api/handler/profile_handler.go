package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tawitawi/provincial-portal/internal/api/middleware"
	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

// ProfileHandler serves official profiles and the officials pages.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// List handles GET /api/profiles. Signed-in callers may pass
// includeInactive=true to see every profile.
//
// @Summary      List profiles
// @Tags         profiles
// @Produce      json
// @Param        includeInactive  query     bool  false  "Include inactive profiles (session required)"
// @Success      200              {object}  map[string]any
// @Failure      500              {object}  map[string]any
// @Router       /api/profiles [get]
func (h *ProfileHandler) List(c echo.Context) error {
	includeInactive := c.QueryParam("includeInactive") == "true" && middleware.SessionFrom(c) != nil
	profiles, err := h.service.List(c.Request().Context(), includeInactive)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profiles", profiles)
}

// Get handles GET /api/profiles/:id.
//
// @Summary      Get a profile by id
// @Tags         profiles
// @Produce      json
// @Param        id   path      string  true  "Profile id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/profiles/{id} [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile", p)
}

// GetBySlug handles GET /api/profiles/slug/:slug.
//
// @Summary      Get a profile by slug
// @Tags         profiles
// @Produce      json
// @Param        slug  path      string  true  "Profile slug"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/profiles/slug/{slug} [get]
func (h *ProfileHandler) GetBySlug(c echo.Context) error {
	p, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile", p)
}

// Officials handles GET /api/officials.
//
// @Summary      Provincial officials grouped by office
// @Tags         officials
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/officials [get]
func (h *ProfileHandler) Officials(c echo.Context) error {
	officials, err := h.service.ProvincialOfficials(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "officials", officials)
}

// ByPosition handles GET /api/officials/:position.
//
// @Summary      Active profiles holding a position
// @Tags         officials
// @Produce      json
// @Param        position  path      string  true  "Position URL slug, e.g. board-member"
// @Success      200       {object}  map[string]any
// @Failure      400       {object}  map[string]any
// @Router       /api/officials/{position} [get]
func (h *ProfileHandler) ByPosition(c echo.Context) error {
	profiles, err := h.service.ListByPosition(c.Request().Context(), c.Param("position"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profiles", profiles)
}

// GetByPosition handles GET /api/officials/:position/:slug.
//
// @Summary      Get an official by position and slug
// @Tags         officials
// @Produce      json
// @Param        position  path      string  true  "Position URL slug"
// @Param        slug      path      string  true  "Profile slug"
// @Success      200       {object}  map[string]any
// @Failure      404       {object}  map[string]any
// @Router       /api/officials/{position}/{slug} [get]
func (h *ProfileHandler) GetByPosition(c echo.Context) error {
	p, err := h.service.GetByPosition(c.Request().Context(), c.Param("position"), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile", p)
}

// Stats handles GET /api/profiles/:id/stats. Anonymous callers only see
// enabled cards that have data.
//
// @Summary      Profile stat cards
// @Tags         profiles
// @Produce      json
// @Param        id   path      string  true  "Profile id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/profiles/{id}/stats [get]
func (h *ProfileHandler) Stats(c echo.Context) error {
	publicOnly := middleware.SessionFrom(c) == nil
	stats, err := h.service.Stats(c.Request().Context(), c.Param("id"), publicOnly)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "stats", stats)
}

// CheckPosition handles GET /api/profiles/check-position. The editor uses
// it to warn before a singleton office is assigned twice.
//
// @Summary      Check whether a singleton position is taken
// @Tags         profiles
// @Produce      json
// @Param        category   query     string  true   "Position category"
// @Param        excludeId  query     string  false  "Profile to ignore"
// @Success      200        {object}  map[string]any
// @Failure      400        {object}  map[string]any
// @Failure      401        {object}  map[string]any
// @Router       /api/profiles/check-position [get]
func (h *ProfileHandler) CheckPosition(c echo.Context) error {
	category := domain.PositionCategory(c.QueryParam("category"))
	if !category.Valid() {
		return domain.NewValidationError("category", "unknown position category %q", category)
	}
	exists, err := h.service.CheckUniquePositionExists(c.Request().Context(), category, c.QueryParam("excludeId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "exists", exists)
}

// Create handles POST /api/profiles.
//
// @Summary      Create a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Profile"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/profiles [post]
func (h *ProfileHandler) Create(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := h.service.Create(c.Request().Context(), s, req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "profile", p)
}

// Update handles PUT /api/profiles/:id.
//
// @Summary      Replace a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Profile id"
// @Param        body  body      profileRequest  true  "Profile"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/profiles/{id} [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := h.service.Update(c.Request().Context(), s, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile", p)
}

// Patch handles PATCH /api/profiles/:id.
//
// @Summary      Toggle profile flags
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Profile id"
// @Param        body  body      profilePatchRequest  true  "Fields to change"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/profiles/{id} [patch]
func (h *ProfileHandler) Patch(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req profilePatchRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	patch := ports.ProfilePatch{IsActive: req.IsActive, PositionOrder: req.PositionOrder}
	if req.Show != nil {
		patch.Show = &ports.ShowFlagsPatch{
			YearsInService: req.Show.YearsInService,
			Projects:       req.Show.Projects,
			Awards:         req.Show.Awards,
			Legislation:    req.Show.Legislation,
			Programs:       req.Show.Programs,
			Education:      req.Show.Education,
		}
	}
	p, err := h.service.Patch(c.Request().Context(), s, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile", p)
}

// Delete handles DELETE /api/profiles/:id. Sub-collections go with it.
//
// @Summary      Delete a profile
// @Tags         profiles
// @Produce      json
// @Param        id   path      string  true  "Profile id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/profiles/{id} [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), s, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", nil)
}
