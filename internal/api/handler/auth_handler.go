package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tawitawi/provincial-portal/internal/api/middleware"
	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	tokenService ports.DelegatedTokenService
	cookie       middleware.CookieConfig
}

func NewAuthHandler(authService ports.AuthService, tokenService ports.DelegatedTokenService, cookie middleware.CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, tokenService: tokenService, cookie: cookie}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Success bool               `json:"success"`
	User    domain.SessionUser `json:"user"`
	Expires time.Time          `json:"expires"`
}

type issueTokenRequest struct {
	MunicipalityID string `json:"municipalityId" validate:"required"`
}

type issueTokenResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type delegatedLoginRequest struct {
	Token string `json:"token" query:"token"`
}

// Login authenticates an administrator and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request").SetInternal(err)
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return domain.NewValidationError("username", "username and password are required")
	}

	session, token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, h.cookie, token)
	return c.JSON(http.StatusOK, sessionResponse{Success: true, User: session.User, Expires: session.Expires})
}

// Logout clears the session cookie. It succeeds without a session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c, h.cookie)
	return respond(c, http.StatusOK, "", nil)
}

// Session returns the current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Success: true, User: s.User, Expires: s.Expires})
}

// IssueToken creates a one-time delegated login token for a municipality.
//
// @Summary      Issue a delegated login token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      issueTokenRequest  true  "Target municipality"
// @Success      200   {object}  issueTokenResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/super-admin-token [post]
func (h *AuthHandler) IssueToken(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req issueTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request").SetInternal(err)
	}

	issued, err := h.tokenService.Issue(c.Request().Context(), s, req.MunicipalityID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issueTokenResponse{Success: true, Token: issued.Token, ExpiresAt: issued.ExpiresAt})
}

// DelegatedLogin redeems a delegated login token and opens a municipal
// admin session for the bound municipality.
//
// @Summary      Redeem a delegated login token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  query     string                 false  "Token, when not sent in the body"
// @Param        body   body      delegatedLoginRequest  false  "Token"
// @Success      200    {object}  map[string]any
// @Failure      401    {object}  map[string]any
// @Router       /api/auth/delegated-login [post]
func (h *AuthHandler) DelegatedLogin(c echo.Context) error {
	var req delegatedLoginRequest
	queryToken := c.QueryParam("token")
	// A query token stands on its own, so a bad body only matters without one.
	if err := c.Bind(&req); err != nil && queryToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request").SetInternal(err)
	}
	if req.Token == "" {
		req.Token = queryToken
	}

	session, token, err := h.tokenService.DelegatedSession(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, h.cookie, token)
	return respond(c, http.StatusOK, "municipalityId", session.User.MunicipalityID)
}
