package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bersekolah/gateway/internal/cache"
	"bersekolah/gateway/internal/config"
	"bersekolah/gateway/internal/documents"
	"bersekolah/gateway/internal/prefs"
	"bersekolah/gateway/internal/session"
	"bersekolah/gateway/internal/social"
	"bersekolah/gateway/internal/upstream"
)

// coreMux fakes the upstream core API. Login hands out a role based on the
// email local part so tests can mint sessions for any role.
func coreMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := decodeJSONBody(r, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		role := strings.SplitN(req.Email, "@", 2)[0]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"token":"core-token","user":{"id":"u-` + role + `","name":"Tester","email":"` + req.Email + `","role":"` + role + `"}}}`))
	})
	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := decodeJSONBody(r, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		role := strings.SplitN(req.Email, "@", 2)[0]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"token":"core-token","user":{"id":"u-` + role + `","name":"Tester","email":"` + req.Email + `","role":"` + role + `"}}}`))
	})
	mux.HandleFunc("/application-status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"status":"pending","finalized_at":""}}`))
	})
	return mux
}

func decodeJSONBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func newTestGateway(t *testing.T, upstreamHandler http.Handler) (*gin.Engine, HandlerSet) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstreamHandler)
	t.Cleanup(srv.Close)

	log := zerolog.Nop()
	cfg := &config.AppConfig{
		Environment: "test",
		Upstream: config.UpstreamConfig{
			BaseURL:        srv.URL,
			RequestTimeout: 5 * time.Second,
			RetryAttempts:  1,
			RetryDelay:     time.Millisecond,
		},
		Security: config.SecurityConfig{
			CookieSecret: "test-secret",
			CookieName:   "bersekolah_session",
		},
		Social: config.SocialConfig{CacheTTL: time.Minute},
	}

	kv := cache.NewMemoryKV()
	api := upstream.NewClient(cfg.Upstream, log)
	h := HandlerSet{
		log:       log,
		cfg:       cfg,
		sessions:  session.NewStore(kv, log),
		api:       api,
		documents: documents.NewCoordinator(api, kv, log),
		sidebar:   prefs.NewSidebar(kv, log),
		social:    social.NewCache(api, kv, cfg.Social.CacheTTL, log),
	}

	router := gin.New()
	h.Register(router.Group(""))
	return router, h
}

func login(t *testing.T, router *gin.Engine, email string) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"email":"`+email+`","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "bersekolah_session" && cookie.Value != "" {
			return rec, cookie
		}
	}
	return rec, nil
}

func TestLogin_ApplicantLandsOnRegistrationForm(t *testing.T) {
	router, _ := newTestGateway(t, coreMux())

	rec, cookie := login(t, router, "user@x.id")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Contains(t, rec.Body.String(), `"redirect":"/form-pendaftaran"`)
}

func TestSignUp_EstablishesSessionAndRedirectsByRole(t *testing.T) {
	router, _ := newTestGateway(t, coreMux())

	body := `{"name":"Tester","email":"user@x.id","password":"rahasia123","password_confirmation":"rahasia123"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect":"/form-pendaftaran"`)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "bersekolah_session" && c.Value != "" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	req = httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"user@x.id"`)
}

func TestLogin_AdminLandsOnDashboard(t *testing.T) {
	router, _ := newTestGateway(t, coreMux())

	rec, cookie := login(t, router, "admin@x.id")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cookie)
	assert.Contains(t, rec.Body.String(), `"redirect":"/dashboard"`)
}

func TestGuardedRoute_WithoutSessionRedirectsToLogin(t *testing.T) {
	router, _ := newTestGateway(t, coreMux())

	req := httptest.NewRequest(http.MethodGet, "/v1/application/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/masuk?redirect="))
}

func TestGuardedRoute_AdminOnApplicantAreaRedirectsToDashboard(t *testing.T) {
	router, _ := newTestGateway(t, coreMux())

	_, cookie := login(t, router, "admin@x.id")
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/v1/application/status", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestGuardedRoute_ApplicantOnAdminAreaIsForbidden(t *testing.T) {
	router, _ := newTestGateway(t, coreMux())

	_, cookie := login(t, router, "user@x.id")
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/v1/export", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")
}

func TestMe_RoundTripsSessionUser(t *testing.T) {
	router, _ := newTestGateway(t, coreMux())

	_, cookie := login(t, router, "beswan@x.id")
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"beswan@x.id"`)
}

func TestLogout_ClearsSession(t *testing.T) {
	router, _ := newTestGateway(t, coreMux())

	_, cookie := login(t, router, "user@x.id")
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The old cookie still parses but the stored session is gone.
	req = httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApplicationStatus_ResolvesPendingToWaiting(t *testing.T) {
	router, _ := newTestGateway(t, coreMux())

	_, cookie := login(t, router, "user@x.id")
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/v1/application/status", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"phase":"waiting"`)
}

func TestUpstreamAuthFailure_ClearsSessionAndPointsAtLogin(t *testing.T) {
	mux := coreMux()
	mux.HandleFunc("/my-documents", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
	})
	router, _ := newTestGateway(t, mux)

	_, cookie := login(t, router, "user@x.id")
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect":"/masuk"`)

	// The stale session was cleared, so the cookie no longer resolves.
	req = httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_ValidationErrorsPassThrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid","errors":{"email":["akun tidak ditemukan"]}}`))
	})
	router, _ := newTestGateway(t, mux)

	rec, _ := login(t, router, "user@x.id")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "akun tidak ditemukan")
}

func TestSidebar_ToggleOverHTTP(t *testing.T) {
	router, _ := newTestGateway(t, coreMux())

	_, cookie := login(t, router, "user@x.id")
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/v1/prefs/sidebar", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_open":true`)

	req = httptest.NewRequest(http.MethodPost, "/v1/prefs/sidebar/toggle", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_open":false`)

	req = httptest.NewRequest(http.MethodGet, "/v1/prefs/sidebar", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `"is_open":false`)
}
