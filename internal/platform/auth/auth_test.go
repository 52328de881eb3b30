package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer([]byte("test-secret"), time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := testIssuer()
	want := Identity{Username: "nephro1", FullName: "Dr. N. Ephro", Role: RoleDoctor}

	token, err := issuer.Issue(want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := testIssuer().Issue(Identity{Username: "admin", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewTokenIssuer([]byte("another-secret"), time.Hour)
	if _, err := other.Parse(token); err == nil {
		t.Error("expected error for token signed with different secret")
	}
}

func TestParse_Expired(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), -time.Minute)
	token, err := issuer.Issue(Identity{Username: "admin", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestMiddleware_SetsIdentity(t *testing.T) {
	issuer := testIssuer()
	token, _ := issuer.Issue(Identity{Username: "staff1", FullName: "Front Desk", Role: RoleStaff})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Middleware(issuer, nil)(func(c echo.Context) error {
		id, ok := IdentityFromContext(c.Request().Context())
		if !ok {
			t.Fatal("expected identity on context")
		}
		if id.Username != "staff1" || id.Role != RoleStaff {
			t.Errorf("unexpected identity: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Middleware(testIssuer(), nil)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddleware_SkipsPublicPaths(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	skipper := PublicPathSkipper("/api/v1/login")
	handler := Middleware(testIssuer(), skipper)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("expected public path to skip auth, got %v", err)
	}
}

func requireRoleTest(t *testing.T, identity *Identity, required string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if identity != nil {
		req = req.WithContext(WithIdentity(req.Context(), *identity))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRole(required)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRequireRole(t *testing.T) {
	if err := requireRoleTest(t, &Identity{Username: "s", Role: RoleStaff}, RoleStaff); err != nil {
		t.Errorf("staff accessing staff route: unexpected error %v", err)
	}

	// Admin passes every gate.
	if err := requireRoleTest(t, &Identity{Username: "a", Role: RoleAdmin}, RoleStaff); err != nil {
		t.Errorf("admin accessing staff route: unexpected error %v", err)
	}

	err := requireRoleTest(t, &Identity{Username: "d", Role: RoleDoctor}, RoleStaff)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("doctor accessing staff route: expected 403, got %v", err)
	}

	err = requireRoleTest(t, nil, RoleStaff)
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %v", err)
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleDoctor, RoleStaff} {
		if !ValidRole(role) {
			t.Errorf("expected %s to be valid", role)
		}
	}
	if ValidRole("Superuser") {
		t.Error("expected Superuser to be invalid")
	}
}
