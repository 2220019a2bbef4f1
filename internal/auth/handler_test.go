package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-pos/meridian-pos/internal/auth"
)

func newAuthRouter(t *testing.T) chi.Router {
	t.Helper()
	svc, _ := newTestService(t)
	handler := auth.NewHandler(nil, svc)
	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r
}

func login(t *testing.T, router chi.Router, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestLoginEndpointIssuesBearerToken(t *testing.T) {
	router := newAuthRouter(t)

	res := login(t, router, `{"username":"operator","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, res.Code)

	var body auth.TokenResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, "bearer", body.TokenType)
	assert.Equal(t, int64(3600), body.ExpiresIn)
}

func TestLoginEndpointRejectsBadCredentials(t *testing.T) {
	router := newAuthRouter(t)

	res := login(t, router, `{"username":"operator","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestLoginEndpointRejectsMissingFields(t *testing.T) {
	router := newAuthRouter(t)

	res := login(t, router, `{"username":"operator"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestMeEndpointReturnsPrincipal(t *testing.T) {
	router := newAuthRouter(t)

	res := login(t, router, `{"username":"operator","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, res.Code)
	var body auth.TokenResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.AccessToken)
	me := httptest.NewRecorder()
	router.ServeHTTP(me, req)

	require.Equal(t, http.StatusOK, me.Code)
	var principal auth.Principal
	require.NoError(t, json.Unmarshal(me.Body.Bytes(), &principal))
	assert.Equal(t, "operator", principal.Username)
}

func TestMeEndpointRejectsMissingToken(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
