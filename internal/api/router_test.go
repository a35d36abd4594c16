package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/frontdesk/visitor-pass/internal/api/handler"
	"github.com/frontdesk/visitor-pass/internal/authz"
	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const testSecret = "router-secret"

type routerVisitors struct {
	ports.VisitorService
	preRegistered int
}

func (s *routerVisitors) List(ctx context.Context, p domain.Principal, f ports.VisitorFilter) ([]*domain.Visitor, error) {
	return []*domain.Visitor{{ID: "v1", FullName: "Alice", Status: domain.VisitorApproved}}, nil
}

func (s *routerVisitors) Get(ctx context.Context, p domain.Principal, id string) (*domain.Visitor, error) {
	if id == "boom" {
		return nil, context.DeadlineExceeded
	}
	return nil, domain.ErrVisitorNotFound
}

func (s *routerVisitors) PreRegister(ctx context.Context, in ports.PreRegisterInput) (*ports.PreRegistration, error) {
	s.preRegistered++
	return &ports.PreRegistration{Visitor: &domain.Visitor{ID: "v2", Status: domain.VisitorPending}}, nil
}

type routerUsers struct{ ports.UserService }

func (routerUsers) List(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	return []*domain.User{{ID: "u1", Role: domain.RoleAdmin}}, nil
}

func newTestRouter(t *testing.T, visitors *routerVisitors, rateLimit float64) http.Handler {
	t.Helper()
	enforcer, err := authz.NewEnforcer("")
	if err != nil {
		t.Fatalf("enforcer: %v", err)
	}
	return NewRouter(Deps{
		Log:             zerolog.Nop(),
		JWTSecret:       testSecret,
		Authorizer:      enforcer,
		Visitors:        visitors,
		Users:           routerUsers{},
		HealthChecks:    map[string]handler.CheckFunc{},
		PublicRateLimit: rateLimit,
		Metrics:         prometheus.NewRegistry(),
	})
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u-" + role,
		"role":  role,
		"email": role + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + s
}

func serve(h http.Handler, method, target, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	req.RemoteAddr = "10.0.0.1:4000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return resp.Error
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t, &routerVisitors{}, 0)

	if rec := serve(h, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/metrics", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}

func TestRouter_RequiresToken(t *testing.T) {
	h := newTestRouter(t, &routerVisitors{}, 0)

	rec := serve(h, http.MethodGet, "/api/visitors", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "missing authorization header" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRouter_ListVisitors(t *testing.T) {
	h := newTestRouter(t, &routerVisitors{}, 0)

	rec := serve(h, http.MethodGet, "/api/visitors", bearer(t, domain.RoleEmployee), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var visitors []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &visitors); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(visitors) != 1 || visitors[0]["full_name"] != "Alice" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_DomainErrors(t *testing.T) {
	h := newTestRouter(t, &routerVisitors{}, 0)

	rec := serve(h, http.MethodGet, "/api/visitors/missing", bearer(t, domain.RoleSecurity), "")
	if rec.Code != http.StatusNotFound || errorMessage(t, rec) != "visitor not found" {
		t.Fatalf("expected 404 visitor not found, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(h, http.MethodGet, "/api/visitors/boom", bearer(t, domain.RoleSecurity), "")
	if rec.Code != http.StatusInternalServerError || errorMessage(t, rec) != "internal server error" {
		t.Fatalf("expected opaque 500, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_UsersAdminOnly(t *testing.T) {
	h := newTestRouter(t, &routerVisitors{}, 0)

	for _, role := range []string{domain.RoleEmployee, domain.RoleSecurity} {
		if rec := serve(h, http.MethodGet, "/api/users", bearer(t, role), ""); rec.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", role, rec.Code)
		}
	}
	if rec := serve(h, http.MethodGet, "/api/users", bearer(t, domain.RoleAdmin), ""); rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", rec.Code)
	}
}

func TestRouter_PreRegisterRateLimited(t *testing.T) {
	visitors := &routerVisitors{}
	h := newTestRouter(t, visitors, 1)

	body := `{"full_name":"Alice","email":"alice@example.com","phone":"+15550101","host":"Bob","purpose":"Interview"}`
	if rec := serve(h, http.MethodPost, "/api/visitors/pre-register", "", body); rec.Code != http.StatusCreated {
		t.Fatalf("first: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec := serve(h, http.MethodPost, "/api/visitors/pre-register", "", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second: expected 429, got %d", rec.Code)
	}
	if visitors.preRegistered != 1 {
		t.Fatalf("expected the limited request not to reach the service, got %d calls", visitors.preRegistered)
	}
}
