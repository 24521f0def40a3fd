// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipvault/snipvault/internal/platform/middleware"
	"github.com/snipvault/snipvault/internal/platform/sec"
)

// fakeVerifier lets each test script the verification outcome.
type fakeVerifier struct {
	claims *sec.AuthClaims
	err    error
}

func (verifier fakeVerifier) VerifyToken(string) (*sec.AuthClaims, error) {
	return verifier.claims, verifier.err
}

// echoIdentity records whether the inner handler ran and with which caller.
func echoIdentity(ran *bool, userID *string) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*ran = true
		if claims := middleware.GetUser(request.Context()); claims != nil {
			*userID = claims.UserID
		}
		writer.WriteHeader(http.StatusOK)
	})
}

func runAuthenticate(verifier middleware.TokenVerifier, authHeader string) (*httptest.ResponseRecorder, bool, string) {
	var ran bool
	var userID string

	handler := middleware.Authenticate(verifier)(echoIdentity(&ran, &userID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		request.Header.Set("Authorization", authHeader)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder, ran, userID
}

/*
TestAuthenticate_NoHeader verifies requests without an Authorization header
pass through as anonymous.
*/
func TestAuthenticate_NoHeader(t *testing.T) {
	recorder, ran, userID := runAuthenticate(fakeVerifier{}, "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, ran)
	assert.Empty(t, userID, "no identity should be injected")
}

/*
TestAuthenticate_Malformed verifies non-Bearer schemes and empty tokens are
rejected with MALFORMED_TOKEN before any verification happens.
*/
func TestAuthenticate_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"wrong_scheme", "Basic dXNlcjpwYXNz"},
		{"lowercase_bearer", "bearer sometoken"},
		{"no_space", "Bearersometoken"},
		{"empty_token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, ran, _ := runAuthenticate(fakeVerifier{}, tt.header)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "MALFORMED_TOKEN")
			assert.False(t, ran)
		})
	}
}

/*
TestAuthenticate_Invalid verifies verification failures map to INVALID_TOKEN
without echoing the underlying reason.
*/
func TestAuthenticate_Invalid(t *testing.T) {
	verifier := fakeVerifier{err: assert.AnError}

	recorder, ran, _ := runAuthenticate(verifier, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INVALID_TOKEN")
	assert.NotContains(t, recorder.Body.String(), assert.AnError.Error())
	assert.False(t, ran)
}

/*
TestAuthenticate_MissingIdentityClaim verifies a structurally valid token
whose payload lacks the user id is treated as invalid.
*/
func TestAuthenticate_MissingIdentityClaim(t *testing.T) {
	verifier := fakeVerifier{claims: &sec.AuthClaims{}}

	recorder, ran, _ := runAuthenticate(verifier, "Bearer no-identity")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INVALID_TOKEN")
	assert.False(t, ran)
}

/*
TestAuthenticate_Misconfigured verifies a missing signing secret surfaces as
a server-side configuration error, not a client token error.
*/
func TestAuthenticate_Misconfigured(t *testing.T) {
	verifier := fakeVerifier{err: sec.ErrNoSecret}

	recorder, ran, _ := runAuthenticate(verifier, "Bearer any-token")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "CONFIGURATION_ERROR")
	assert.False(t, ran)
}

/*
TestAuthenticate_Valid verifies a good token injects the caller identity.
*/
func TestAuthenticate_Valid(t *testing.T) {
	verifier := fakeVerifier{claims: &sec.AuthClaims{UserID: "user-123"}}

	recorder, ran, userID := runAuthenticate(verifier, "Bearer good-token")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, ran)
	assert.Equal(t, "user-123", userID)
}

/*
TestRequireAuth verifies the gate rejects anonymous requests with
MISSING_TOKEN and lets authenticated ones through.
*/
func TestRequireAuth(t *testing.T) {
	var ran bool
	var userID string
	gated := middleware.RequireAuth(echoIdentity(&ran, &userID))

	// Anonymous request.
	recorder := httptest.NewRecorder()
	gated.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "MISSING_TOKEN")
	assert.False(t, ran)

	// Authenticated request: run Authenticate first so the identity is in context.
	verifier := fakeVerifier{claims: &sec.AuthClaims{UserID: "user-123"}}
	chained := middleware.Authenticate(verifier)(gated)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder = httptest.NewRecorder()
	chained.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, ran)
	assert.Equal(t, "user-123", userID)
}
