package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

const testCookie = "tawi-tawi-session"

type stubCodec struct {
	parseFn func(token string) (*domain.Session, error)
}

func (s *stubCodec) Issue(domain.SessionUser) (string, *domain.Session, error) {
	return "", nil, errors.New("not implemented")
}

func (s *stubCodec) Parse(token string) (*domain.Session, error) { return s.parseFn(token) }

func acceptOnly(valid string) *stubCodec {
	return &stubCodec{parseFn: func(token string) (*domain.Session, error) {
		if token != valid {
			return nil, domain.ErrUnauthorized
		}
		return &domain.Session{User: domain.SessionUser{ID: "u1", Role: domain.RoleSuperAdmin}}, nil
	}}
}

// runSession passes req through Session and returns the session seen by the
// next handler.
func runSession(t *testing.T, codec *stubCodec, req *http.Request) *domain.Session {
	t.Helper()
	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *domain.Session
	handler := Session(codec, testCookie)(func(c echo.Context) error {
		seen = SessionFrom(c)
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("Session must never fail the request, got %v", err)
	}
	return seen
}

func TestSession_Cookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "good"})

	s := runSession(t, acceptOnly("good"), req)
	if s == nil || s.User.ID != "u1" {
		t.Fatalf("expected session from cookie, got %+v", s)
	}
}

func TestSession_BearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")

	if s := runSession(t, acceptOnly("good"), req); s == nil {
		t.Fatalf("expected session from bearer header")
	}
}

func TestSession_InvalidTokenLeavesRequestAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "forged"})

	if s := runSession(t, acceptOnly("good"), req); s != nil {
		t.Fatalf("expected no session, got %+v", s)
	}
}

func TestSession_NoCredentials(t *testing.T) {
	codec := &stubCodec{parseFn: func(string) (*domain.Session, error) {
		t.Fatalf("codec must not be called without a token")
		return nil, nil
	}}
	if s := runSession(t, codec, httptest.NewRequest(http.MethodGet, "/", nil)); s != nil {
		t.Fatalf("expected no session")
	}
}

func TestRequireAuth(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")
	handler := RequireAuth()(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if code := httpCode(t, handler(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}

	c, rec := newContext(http.MethodGet, "/")
	withRole(c, domain.RoleViewer)
	handler = RequireAuth()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got err=%v code=%d", err, rec.Code)
	}
}

func TestSessionCookie_Attributes(t *testing.T) {
	c, rec := newContext(http.MethodPost, "/api/auth/login")
	SetSessionCookie(c, CookieConfig{Name: testCookie, Secure: true, MaxAge: 7 * 24 * time.Hour}, "tok")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != testCookie || ck.Value != "tok" {
		t.Fatalf("unexpected cookie %s=%s", ck.Name, ck.Value)
	}
	if !ck.HttpOnly || !ck.Secure || ck.SameSite != http.SameSiteLaxMode || ck.Path != "/" {
		t.Fatalf("unexpected attributes: %+v", ck)
	}
	if ck.MaxAge != 7*24*60*60 {
		t.Fatalf("expected max-age of 7 days, got %d", ck.MaxAge)
	}
}

func TestClearSessionCookie(t *testing.T) {
	c, rec := newContext(http.MethodPost, "/api/auth/logout")
	ClearSessionCookie(c, CookieConfig{Name: testCookie})

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expired cookie, got %+v", cookies)
	}
}
