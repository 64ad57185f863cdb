package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAuthMiddlewareRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("u1")
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := AuthMiddleware(func(c echo.Context) error {
		called = true
		if id := UserIDFromContext(c); id != "u1" {
			t.Errorf("user id from context %q, want u1", id)
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if !called {
		t.Fatal("handler not invoked for a valid token")
	}
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "signing-secret")
	token, err := GenerateJWT("u1")
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	// Tokens signed under one secret must not verify under another.
	t.Setenv("JWT_SECRET", "different-secret")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := AuthMiddleware(func(c echo.Context) error {
		t.Fatal("handler invoked despite invalid token")
		return nil
	})
	err = handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("middleware error = %v, want 401 HTTPError", err)
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := AuthMiddleware(func(c echo.Context) error { return nil })
	err := handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("middleware error = %v, want 401 HTTPError", err)
	}
}
