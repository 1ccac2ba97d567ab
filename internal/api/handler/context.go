package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tawitawi/provincial-portal/internal/api/middleware"
	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

// envelope is the success body shared by every endpoint.
type envelope map[string]any

// respond renders {"success": true, key: value}.
func respond(c echo.Context, code int, key string, value any) error {
	body := envelope{"success": true}
	if key != "" {
		body[key] = value
	}
	return c.JSON(code, body)
}

// requireSession returns the caller's session or a 401 when there is none.
// Routes are gated by middleware as well; this keeps handlers safe when
// mounted without it.
func requireSession(c echo.Context) (*domain.Session, error) {
	s := middleware.SessionFrom(c)
	if s == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return s, nil
}

// bindValid decodes the request body into req and validates it.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request").SetInternal(err)
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(req); err != nil {
			return err
		}
	}
	return nil
}
