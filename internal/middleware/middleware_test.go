package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zidalco/zidalco-backend/internal/auth"
	"github.com/zidalco/zidalco-backend/internal/models"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSAllowsKnownOrigin(t *testing.T) {
	h := CORS([]string{"https://www.zidalco.com"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/contents", nil)
	req.Header.Set("Origin", "https://WWW.zidalco.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://WWW.zidalco.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSIgnoresUnknownOrigin(t *testing.T) {
	h := CORS([]string{"https://www.zidalco.com"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/contents", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightAlwaysOK(t *testing.T) {
	h := CORS(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/feedback", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHostCheck(t *testing.T) {
	h := HostCheck("api.zidalco.com")(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Host = "api.zidalco.com:443"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Host = "other.example.com"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")
	registry := auth.NewRegistry(nil)
	require.NoError(t, registry.Register("admin@zidalco.com", "Admin", "admin", "test password"))
	identity, ok := registry.Lookup("admin@zidalco.com")
	require.True(t, ok)
	token, err := tokens.Issue(identity)
	require.NoError(t, err)

	var seen models.Identity
	h := RequireAuth(tokens, registry)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/feedback", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, identity, seen)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/feedback", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/feedback", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsUnknownAccount(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")
	registry := auth.NewRegistry(nil)
	require.NoError(t, registry.Register("admin@zidalco.com", "Admin", "admin", "test password"))

	// a well-formed token survives a registry reseed only if its account does
	ghost, err := tokens.Issue(models.Identity{
		ID: uuid.New(), Name: "Ghost", Email: "ghost@example.com", Role: "admin",
	})
	require.NoError(t, err)

	h := RequireAuth(tokens, registry)(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/feedback", nil)
	req.Header.Set("Authorization", "Bearer "+ghost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	registry := auth.NewRegistry([]string{"owner@zidalco.com"})
	require.NoError(t, registry.Register("owner@zidalco.com", "Owner", "viewer", "test password"))
	require.NoError(t, registry.Register("other@zidalco.com", "Other", "viewer", "test password"))
	h := RequireAdmin(registry)(okHandler)

	serve := func(identity models.Identity) int {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/feedback", nil)
		rec := httptest.NewRecorder()
		tokens := auth.NewTokenManager("test-secret")
		token, err := tokens.Issue(identity)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		RequireAuth(tokens, registry)(h).ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(models.Identity{ID: uuid.New(), Email: "owner@zidalco.com", Role: "viewer"}))
	assert.Equal(t, http.StatusOK, serve(models.Identity{ID: uuid.New(), Email: "other@zidalco.com", Role: "admin"}))
	assert.Equal(t, http.StatusForbidden, serve(models.Identity{ID: uuid.New(), Email: "other@zidalco.com", Role: "viewer"}))
}
