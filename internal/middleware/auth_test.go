package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inza-store/internal/config"
	"inza-store/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newTestAdminService(t *testing.T) service.AdminService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)
	require.NoError(t, err)

	return service.NewAdminService(config.AdminConfig{
		PasswordHash:  string(hash),
		JWTSecret:     testJWTSecret,
		SessionExpiry: 60,
	})
}

func newProtectedHandler(t *testing.T) (http.Handler, service.AdminService) {
	t.Helper()

	admin := newTestAdminService(t)
	handler := AuthMiddleware(admin, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := GetAdminRole(r.Context())
		if !ok || role != "admin" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	return handler, admin
}

func TestAuth_ValidSessionTokenAllowsRequest(t *testing.T) {
	handler, admin := newProtectedHandler(t)

	token, err := admin.Login("test-password")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_MissingHeaderIsRejected(t *testing.T) {
	handler, _ := newProtectedHandler(t)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredTokenIsRejected(t *testing.T) {
	handler, _ := newProtectedHandler(t)

	claims := &service.AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProperty_MalformedAuthorizationIsRejected(t *testing.T) {
	handler, _ := newProtectedHandler(t)

	properties := gopter.NewProperties(nil)

	properties.Property("anything but a valid Bearer token yields 401", prop.ForAll(
		func(header string) bool {
			req := httptest.NewRequest("GET", "/api/admin/orders", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.OneGenOf(
			gen.AnyString(),
			gen.AnyString().Map(func(s string) string { return "Bearer " + s }),
			gen.AnyString().Map(func(s string) string { return "Basic " + s }),
		),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRequireAdmin_RejectsMissingRole(t *testing.T) {
	handler := RequireAdmin(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
