package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zidalco/zidalco-backend/internal/auth"
	"github.com/zidalco/zidalco-backend/internal/config"
	"github.com/zidalco/zidalco-backend/internal/handlers"
	"github.com/zidalco/zidalco-backend/internal/models"
	"github.com/zidalco/zidalco-backend/internal/routes"
	"github.com/zidalco/zidalco-backend/internal/services"
	"github.com/zidalco/zidalco-backend/internal/store"
)

type testServer struct {
	srv    *httptest.Server
	tokens *auth.TokenManager
	admins *auth.Registry
}

const (
	testAdminEmail    = "admin@zidalco.com"
	testAdminPassword = "test password"
)

func newTestServer(t *testing.T, opts ...func(*config.Config)) *testServer {
	t.Helper()

	cfg := &config.Config{
		Environment:    "test",
		JWTSecret:      "test-secret",
		AdminEmail:     testAdminEmail,
		AdminName:      "Admin",
		AdminAllowlist: []string{testAdminEmail},
		MailAdminTo:    testAdminEmail,
		FrontendURL:    "http://localhost:3000",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	backend, err := store.OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	admins := auth.NewRegistry(cfg.AdminAllowlist)
	require.NoError(t, admins.Register(testAdminEmail, "Admin", "admin", testAdminPassword))
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	limiter := auth.NewLoginLimiter()
	mailer := services.NewMailer("", "", "", "", "", cfg.MailAdminTo)

	h := handlers.New(cfg, store.NewDispatcher(backend), admins, tokens, limiter, mailer, nil)

	r := chi.NewRouter()
	routes.SetupRoutes(r, h, nil)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, tokens: tokens, admins: admins}
}

type envelope struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Token    string           `json:"token"`
	Data     json.RawMessage  `json:"data"`
	Feedback json.RawMessage  `json:"feedback"`
	Email    json.RawMessage  `json:"email"`
	Emails   json.RawMessage  `json:"emails"`
	Contents json.RawMessage  `json:"contents"`
	Count    int              `json:"count"`
	URL      string           `json:"url"`
	Admin    *models.Identity `json:"admin"`
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	resp, env := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, env.Token)
	return env.Token
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	resp, env := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Token)
	require.NotNil(t, env.Admin)
	assert.Equal(t, testAdminEmail, env.Admin.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	resp, env := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestLoginLockout(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"email": testAdminEmail, "password": "wrong"}
	for i := 0; i < 5; i++ {
		resp, _ := ts.do(t, http.MethodPost, "/api/auth/login", "", body)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	// locked out now, even with the right password
	resp, _ := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestLoginLockoutAcrossEmails(t *testing.T) {
	ts := newTestServer(t)

	// the lockout is keyed by client, so rotating emails does not reset it
	for i := 0; i < 5; i++ {
		resp, _ := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    fmt.Sprintf("guess%d@example.com", i),
			"password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp, _ := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestSignupDisabled(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "New", "email": "new@zidalco.com", "password": "pw12345678",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSignupRestrictedToAllowlist(t *testing.T) {
	ts := newTestServer(t, func(cfg *config.Config) {
		cfg.SignupEnabled = true
		cfg.AdminAllowlist = []string{testAdminEmail, "second@zidalco.com"}
	})

	resp, _ := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Crasher", "email": "stranger@example.com", "password": "pw12345678",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Second", "email": "second@zidalco.com", "password": "pw12345678",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, http.MethodGet, "/api/admin/feedback", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// a valid token whose account is gone from the registry gets 401
	ghost, err := ts.tokens.Issue(models.Identity{
		ID: uuid.New(), Name: "Ghost", Email: "ghost@example.com", Role: "admin",
	})
	require.NoError(t, err)
	resp, _ = ts.do(t, http.MethodGet, "/api/admin/feedback", ghost, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// a valid token for a registered non-admin identity gets 403
	require.NoError(t, ts.admins.Register("viewer@example.com", "Viewer", "viewer", "test password"))
	viewerIdentity, ok := ts.admins.Lookup("viewer@example.com")
	require.True(t, ok)
	viewer, err := ts.tokens.Issue(viewerIdentity)
	require.NoError(t, err)
	resp, _ = ts.do(t, http.MethodGet, "/api/admin/feedback", viewer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestFeedbackLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	// public submission
	resp, env := ts.do(t, http.MethodPost, "/api/feedback/submit", "", map[string]string{
		"name": "Visitor", "email": "visitor@example.com", "message": "Great service", "type": "praise",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Feedback
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusNew, created.Status)

	// appears in the admin listing
	resp, env = ts.do(t, http.MethodGet, "/api/admin/feedback", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []models.Feedback
	require.NoError(t, json.Unmarshal(env.Feedback, &list))
	require.Len(t, list, 1)
	assert.Equal(t, 1, env.Count)

	// mark read
	resp, _ = ts.do(t, http.MethodPatch, "/api/feedback/"+created.ID+"/read", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// reply moves it to replied
	resp, _ = ts.do(t, http.MethodPost, "/api/feedback/"+created.ID+"/reply", token, map[string]string{
		"reply_message": "Thank you!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env = ts.do(t, http.MethodGet, "/api/feedback/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched struct {
		models.Feedback
		Replies []models.FeedbackReply `json:"replies"`
	}
	require.NoError(t, json.Unmarshal(env.Feedback, &fetched))
	assert.Equal(t, models.StatusReplied, fetched.Status)
	assert.True(t, fetched.IsRead)
	require.Len(t, fetched.Replies, 1)
	assert.Equal(t, "Thank you!", fetched.Replies[0].ReplyMessage)

	// replied -> new is not a legal move
	resp, _ = ts.do(t, http.MethodPatch, "/api/feedback/"+created.ID+"/status", token, map[string]string{
		"status": "new",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// delete is physical
	resp, _ = ts.do(t, http.MethodDelete, "/api/admin/feedback/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodGet, "/api/feedback/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmailCountQuery(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	for i := 0; i < 3; i++ {
		resp, _ := ts.do(t, http.MethodPost, "/api/emails/send", "", map[string]string{
			"sender_name": "Visitor", "sender_email": "v@example.com", "message": fmt.Sprintf("msg %d", i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, env := ts.do(t, http.MethodGet, "/api/admin/emails?select=count", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var counts []map[string]int
	require.NoError(t, json.Unmarshal(env.Data, &counts))
	require.Len(t, counts, 1)
	assert.Equal(t, 3, counts[0]["count"])
}

func TestPublicContentsOnlyPublished(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/admin/contents", token, map[string]any{
		"location": "homepage", "slot": "hero", "title": "Visible", "is_published": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodPost, "/api/admin/contents", token, map[string]any{
		"location": "homepage", "slot": "draft", "title": "Hidden", "is_published": false,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// public view shows only the published entry
	resp, env := ts.do(t, http.MethodGet, "/api/contents", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var public []models.Content
	require.NoError(t, json.Unmarshal(env.Contents, &public))
	require.Len(t, public, 1)
	assert.Equal(t, "Visible", public[0].Title)

	// admin view shows both
	resp, env = ts.do(t, http.MethodGet, "/api/admin/contents", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []models.Content
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 2)
}

func TestContentSoftDeleteHidesEverywhere(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	resp, env := ts.do(t, http.MethodPost, "/api/admin/contents", token, map[string]any{
		"location": "homepage", "slot": "hero", "title": "Gone soon", "is_published": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Content
	require.NoError(t, json.Unmarshal(env.Data, &created))

	resp, _ = ts.do(t, http.MethodDelete, "/api/admin/contents/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = ts.do(t, http.MethodGet, "/api/contents", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var public []models.Content
	require.NoError(t, json.Unmarshal(env.Contents, &public))
	assert.Empty(t, public)

	resp, env = ts.do(t, http.MethodGet, "/api/admin/contents", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var admin []models.Content
	require.NoError(t, json.Unmarshal(env.Data, &admin))
	assert.Empty(t, admin)
}

func TestNotificationsAndMarkAllRead(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/feedback/submit", "", map[string]string{
		"name": "Visitor", "email": "v@example.com", "message": "hello",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodPost, "/api/emails/send", "", map[string]string{
		"sender_name": "Visitor", "sender_email": "v@example.com", "message": "hi there",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := ts.do(t, http.MethodGet, "/api/admin/notifications", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var notifications []models.Notification
	require.NoError(t, json.Unmarshal(env.Data, &notifications))
	assert.Len(t, notifications, 2)

	resp, _ = ts.do(t, http.MethodPost, "/api/admin/mark-all-read", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = ts.do(t, http.MethodGet, "/api/admin/notifications", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &notifications))
	assert.Empty(t, notifications)
}

func TestDashboardStats(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/feedback/submit", "", map[string]string{
		"name": "Visitor", "email": "v@example.com", "message": "hello",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := ts.do(t, http.MethodGet, "/api/admin/dashboard-stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats map[string]int
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats["total_feedback"])
	assert.Equal(t, 1, stats["new_feedback"])
	assert.Equal(t, 1, stats["unread_feedback"])
	assert.Equal(t, 0, stats["total_emails"])
}

func TestUploadUnavailableWithoutCloudinary(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/admin/upload", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestChangePassword(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/auth/change-password", token, map[string]string{
		"current_password": "wrong",
		"new_password":     "another password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/api/auth/change-password", token, map[string]string{
		"current_password": testAdminPassword,
		"new_password":     "another password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": testAdminEmail, "password": "another password",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
