package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

// GazetteHandler serves ordinances and resolutions.
type GazetteHandler struct {
	service ports.GazetteService
}

func NewGazetteHandler(service ports.GazetteService) *GazetteHandler {
	return &GazetteHandler{service: service}
}

// List handles GET /api/gazette.
//
// @Summary      List gazette entries
// @Tags         gazette
// @Produce      json
// @Param        type  query     string  false  "ORDINANCE or RESOLUTION"
// @Param        year  query     int     false  "Year"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /api/gazette [get]
func (h *GazetteHandler) List(c echo.Context) error {
	filter := ports.GazetteFilter{Type: domain.GazetteType(c.QueryParam("type"))}
	if y := c.QueryParam("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || year <= 0 {
			return domain.NewValidationError("year", "year must be a positive number")
		}
		filter.Year = year
	}
	items, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "gazette", items)
}

// Years handles GET /api/gazette/years.
//
// @Summary      Years with gazette entries
// @Tags         gazette
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/gazette/years [get]
func (h *GazetteHandler) Years(c echo.Context) error {
	years, err := h.service.Years(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "years", years)
}

// Create handles POST /api/gazette.
//
// @Summary      Add a gazette entry
// @Tags         gazette
// @Accept       json
// @Produce      json
// @Param        body  body      gazetteRequest  true  "Gazette entry"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/gazette [post]
func (h *GazetteHandler) Create(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req gazetteRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	g, err := h.service.Create(c.Request().Context(), s, req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "gazette", g)
}

// Delete handles DELETE /api/gazette/:id.
//
// @Summary      Delete a gazette entry
// @Tags         gazette
// @Produce      json
// @Param        id   path      string  true  "Gazette id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/gazette/{id} [delete]
func (h *GazetteHandler) Delete(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), s, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", nil)
}
