// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package account_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipvault/snipvault/internal/platform/middleware"
	"github.com/snipvault/snipvault/internal/platform/sec"
	"github.com/snipvault/snipvault/internal/users/account"
	"github.com/snipvault/snipvault/internal/users/auth"
)

func newTestRouter(t *testing.T, user *auth.User) (http.Handler, string) {
	t.Helper()

	tokenService, err := sec.NewTokenService([]byte("test-secret"), "snipvault.io")
	require.NoError(t, err)

	service, _ := newTestService(user, nil)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService))
	router.Mount("/", account.NewHandler(service).Routes())

	token := ""
	if user != nil {
		token, err = tokenService.GenerateAccessToken(user.ID, time.Hour)
		require.NoError(t, err)
	}

	return router, token
}

func doRequest(handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHTTP_RequiresAuth verifies every account endpoint rejects anonymous
callers with MISSING_TOKEN.
*/
func TestHTTP_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t, &auth.User{ID: "user-1"})

	for _, endpoint := range []struct{ method, path string }{
		{http.MethodGet, "/me"},
		{http.MethodPut, "/profile"},
		{http.MethodGet, "/dashboard"},
	} {
		recorder := doRequest(router, endpoint.method, endpoint.path, "", "{}")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, endpoint.path)
		assert.Contains(t, recorder.Body.String(), "MISSING_TOKEN", endpoint.path)
	}
}

/*
TestHTTP_UpdateProfile verifies the happy path and the per-field limits.
*/
func TestHTTP_UpdateProfile(t *testing.T) {
	user := &auth.User{ID: "user-1", Username: "gopher"}
	router, token := newTestRouter(t, user)

	ok := doRequest(router, http.MethodPut, "/profile", token,
		`{"name":"Gopher Dev","favoriteLanguage":"Go","website":"https://snipvault.io"}`)
	require.Equal(t, http.StatusOK, ok.Code, ok.Body.String())
	assert.Contains(t, ok.Body.String(), "Gopher Dev")

	tooLongBio := doRequest(router, http.MethodPut, "/profile", token,
		`{"bio":"`+strings.Repeat("a", 501)+`"}`)
	assert.Equal(t, http.StatusBadRequest, tooLongBio.Code)

	badWebsite := doRequest(router, http.MethodPut, "/profile", token,
		`{"website":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, badWebsite.Code)
}

/*
TestHTTP_GetDashboard verifies the dashboard envelope carries the profile
and collection for the authenticated caller.
*/
func TestHTTP_GetDashboard(t *testing.T) {
	user := &auth.User{ID: "user-1", Username: "gopher"}
	router, token := newTestRouter(t, user)

	recorder := doRequest(router, http.MethodGet, "/dashboard", token, "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"user"`)
	assert.Contains(t, recorder.Body.String(), `"snippets"`)
	assert.Contains(t, recorder.Body.String(), "gopher")
}
