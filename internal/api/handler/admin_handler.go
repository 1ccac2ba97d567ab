package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

// AdminHandler serves the super admin console: municipal admin accounts
// and the activity log.
type AdminHandler struct {
	users    ports.UserService
	activity ports.ActivityService
}

func NewAdminHandler(users ports.UserService, activity ports.ActivityService) *AdminHandler {
	return &AdminHandler{users: users, activity: activity}
}

// Activity handles GET /api/activity.
//
// @Summary      Recent admin activity
// @Tags         activity
// @Produce      json
// @Param        limit  query     int  false  "Entries to return (default 10, max 100)"
// @Success      200    {object}  map[string]any
// @Failure      401    {object}  map[string]any
// @Router       /api/activity [get]
func (h *AdminHandler) Activity(c echo.Context) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil {
			return domain.NewValidationError("limit", "limit must be a number")
		}
		limit = n
	}
	entries, err := h.activity.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "activities", entries)
}

// ListMunicipalAdmins handles GET /api/municipal-admins.
//
// @Summary      List municipal admins
// @Tags         municipal-admins
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /api/municipal-admins [get]
func (h *AdminHandler) ListMunicipalAdmins(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	users, err := h.users.ListMunicipalAdmins(c.Request().Context(), s)
	if err != nil {
		return err
	}
	out := make([]municipalAdminResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toMunicipalAdminResponse(u))
	}
	return respond(c, http.StatusOK, "admins", out)
}

// CreateMunicipalAdmin handles POST /api/municipal-admins.
//
// @Summary      Create a municipal admin
// @Tags         municipal-admins
// @Accept       json
// @Produce      json
// @Param        body  body      municipalAdminRequest  true  "Account"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/municipal-admins [post]
func (h *AdminHandler) CreateMunicipalAdmin(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req municipalAdminRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	u, err := h.users.CreateMunicipalAdmin(c.Request().Context(), s, ports.CreateMunicipalAdminInput{
		MunicipalityID: req.MunicipalityID,
		Username:       req.Username,
		Password:       req.Password,
		Email:          req.Email,
		Name:           req.Name,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "admin", toMunicipalAdminResponse(u))
}

// SetMunicipalAdminActive handles PATCH /api/municipal-admins/:id.
//
// @Summary      Enable or disable a municipal admin
// @Tags         municipal-admins
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "User id"
// @Param        body  body      municipalAdminPatchRequest  true  "isActive"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/municipal-admins/{id} [patch]
func (h *AdminHandler) SetMunicipalAdminActive(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req municipalAdminPatchRequest
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := h.users.SetMunicipalAdminActive(c.Request().Context(), s, c.Param("id"), *req.IsActive); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", nil)
}

// DeleteMunicipalAdmin handles DELETE /api/municipal-admins/:id.
//
// @Summary      Delete a municipal admin
// @Tags         municipal-admins
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/municipal-admins/{id} [delete]
func (h *AdminHandler) DeleteMunicipalAdmin(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	if err := h.users.DeleteMunicipalAdmin(c.Request().Context(), s, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", nil)
}
