package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tawitawi/provincial-portal/internal/api/middleware"
	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

// --- stubs ---

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (*domain.Session, string, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.Session, string, error) {
	return s.loginFn(ctx, username, password)
}

type stubTokenService struct {
	issueFn   func(ctx context.Context, requester *domain.Session, municipalityID string) (*domain.IssuedToken, error)
	sessionFn func(ctx context.Context, token string) (*domain.Session, string, error)
}

func (s *stubTokenService) Issue(ctx context.Context, requester *domain.Session, municipalityID string) (*domain.IssuedToken, error) {
	return s.issueFn(ctx, requester, municipalityID)
}

func (s *stubTokenService) Consume(context.Context, string) (*domain.DelegatedGrant, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTokenService) DelegatedSession(ctx context.Context, token string) (*domain.Session, string, error) {
	return s.sessionFn(ctx, token)
}

var testCookie = middleware.CookieConfig{Name: "tawi-tawi-session", MaxAge: time.Hour}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == testCookie.Name {
			return ck
		}
	}
	return nil
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	expires := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	svc := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*domain.Session, string, error) {
			if username != "admin" || password != "secret" {
				t.Fatalf("unexpected credentials %q/%q", username, password)
			}
			return &domain.Session{
				User:    domain.SessionUser{ID: "u1", Username: "admin", Role: domain.RoleSuperAdmin, IsActive: true},
				Expires: expires,
			}, "signed-token", nil
		},
	}
	h := NewAuthHandler(svc, &stubTokenService{}, testCookie)

	e := echo.New()
	body := `{"username":"admin","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.User.ID != "u1" || !resp.Expires.Equal(expires) {
		t.Fatalf("unexpected body %+v", resp)
	}

	ck := sessionCookie(rec)
	if ck == nil || ck.Value != "signed-token" || !ck.HttpOnly {
		t.Fatalf("expected HttpOnly session cookie, got %+v", ck)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.Session, string, error) {
			t.Fatalf("service must not be called")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(svc, &stubTokenService{}, testCookie)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"admin"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Login(c)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.Session, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc, &stubTokenService{}, testCookie)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"x","password":"y"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("no cookie must be set on failure")
	}
}

// --- Logout / Session ---

func TestLogout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubTokenService{}, testCookie)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ck := sessionCookie(rec); ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", ck)
	}
}

func TestSession_Anonymous(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubTokenService{}, testCookie)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/session", nil), httptest.NewRecorder())

	var he *echo.HTTPError
	if err := h.Session(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

// --- Delegated login ---

func TestIssueToken_RequiresSession(t *testing.T) {
	tokens := &stubTokenService{
		issueFn: func(context.Context, *domain.Session, string) (*domain.IssuedToken, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(&stubAuthService{}, tokens, testCookie)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/super-admin-token", strings.NewReader(`{"municipalityId":"m1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var he *echo.HTTPError
	if err := h.IssueToken(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestIssueToken_Success(t *testing.T) {
	expires := time.Now().Add(5 * time.Minute).UTC().Truncate(time.Second)
	tokens := &stubTokenService{
		issueFn: func(_ context.Context, requester *domain.Session, municipalityID string) (*domain.IssuedToken, error) {
			if requester.User.ID != "sa" || municipalityID != "m1" {
				t.Fatalf("unexpected call: %+v %q", requester.User, municipalityID)
			}
			return &domain.IssuedToken{Token: "abc", ExpiresAt: expires}, nil
		},
	}
	h := NewAuthHandler(&stubAuthService{}, tokens, testCookie)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/super-admin-token", strings.NewReader(`{"municipalityId":"m1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session", &domain.Session{User: domain.SessionUser{ID: "sa", Role: domain.RoleSuperAdmin}})

	if err := h.IssueToken(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp issueTokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Token != "abc" || !resp.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected body %+v", resp)
	}
}

func TestDelegatedLogin_QueryToken(t *testing.T) {
	tokens := &stubTokenService{
		sessionFn: func(_ context.Context, token string) (*domain.Session, string, error) {
			if token != "handoff" {
				t.Fatalf("expected token from query, got %q", token)
			}
			return &domain.Session{User: domain.SessionUser{
				ID: "sa", Role: domain.RoleMunicipalAdmin, MunicipalityID: "m1", DelegatedBy: "sa",
			}}, "session-token", nil
		},
	}
	h := NewAuthHandler(&stubAuthService{}, tokens, testCookie)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/delegated-login?token=handoff", nil), rec)

	if err := h.DelegatedLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["success"] != true || resp["municipalityId"] != "m1" {
		t.Fatalf("unexpected body %v", resp)
	}
	if ck := sessionCookie(rec); ck == nil || ck.Value != "session-token" {
		t.Fatalf("expected session cookie, got %+v", ck)
	}
}

func TestDelegatedLogin_RejectedToken(t *testing.T) {
	tokens := &stubTokenService{
		sessionFn: func(context.Context, string) (*domain.Session, string, error) {
			return nil, "", domain.ErrInvalidToken
		},
	}
	h := NewAuthHandler(&stubAuthService{}, tokens, testCookie)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/delegated-login", strings.NewReader(`{"token":"used"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.DelegatedLogin(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("no cookie must be set on failure")
	}
}

func TestDelegatedLogin_MalformedBody(t *testing.T) {
	tokens := &stubTokenService{
		sessionFn: func(context.Context, string) (*domain.Session, string, error) {
			t.Fatalf("token service must not be called for a malformed body")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(&stubAuthService{}, tokens, testCookie)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/delegated-login", strings.NewReader(`{"token":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.DelegatedLogin(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestDelegatedLogin_QueryTokenWinsOverBadBody(t *testing.T) {
	var got string
	tokens := &stubTokenService{
		sessionFn: func(_ context.Context, token string) (*domain.Session, string, error) {
			got = token
			return &domain.Session{User: domain.SessionUser{ID: "sa", Role: domain.RoleMunicipalAdmin, MunicipalityID: "m1"}}, "session-token", nil
		},
	}
	h := NewAuthHandler(&stubAuthService{}, tokens, testCookie)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/delegated-login?token=handoff", strings.NewReader(`not json`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := h.DelegatedLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != "handoff" {
		t.Fatalf("expected query token, got %q", got)
	}
}
