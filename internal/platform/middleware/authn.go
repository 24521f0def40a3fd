// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/snipvault/snipvault/internal/platform/apperr"
	"github.com/snipvault/snipvault/internal/platform/constants"
	"github.com/snipvault/snipvault/internal/platform/ctxutil"
	"github.com/snipvault/snipvault/internal/platform/respond"
	"github.com/snipvault/snipvault/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the [sec.TokenService]
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//
// Each request walks the verification pipeline in order, short-circuiting to
// a rejection carrying the specific error kind on the first failure:
//
//  1. No Authorization header → request proceeds as anonymous (protected
//     routes reject later via [RequireAuth]).
//  2. Header present but not 'Bearer <token>' (literal prefix, non-empty
//     remainder) → MALFORMED_TOKEN.
//  3. Signing secret unset → CONFIGURATION_ERROR (server-side fault).
//  4. Bad signature or expired → INVALID_TOKEN. The underlying reason is
//     logged but never echoed to the client.
//  5. Payload without the identity claim → INVALID_TOKEN.
//  6. Otherwise the decoded identity is injected into the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Scheme Validation ──────────────────────────────────────────
			if !strings.HasPrefix(authHeader, constants.BearerScheme) {
				respond.Error(writer, request, apperr.MalformedToken())
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, constants.BearerScheme)
			if tokenStr == "" {
				respond.Error(writer, request, apperr.MalformedToken())
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				if errors.Is(err, sec.ErrNoSecret) {
					respond.Error(writer, request, apperr.Configuration("Server configuration error: signing secret not set"))
					return
				}

				// Log the precise verification failure server-side only.
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(),
					"token_verification_failed", slog.String("reason", err.Error()))
				respond.Error(writer, request, apperr.InvalidToken(err))
				return
			}

			// ── 4. Claims Validation ──────────────────────────────────────────
			if claims.UserID == "" {
				respond.Error(writer, request, apperr.InvalidToken(errors.New("token payload missing user identity")))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.AuthClaims] exists in context.
//  2. If missing, abort with MISSING_TOKEN — distinct from the malformed and
//     invalid cases so clients can tell the difference.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := GetUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.MissingToken())
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// GetUser retrieves the [*sec.AuthClaims] from the [context.Context].
//
// # Returns
//   - A pointer to [*sec.AuthClaims] if the user is authenticated.
//   - nil if the user is anonymous.
func GetUser(ctx context.Context) *sec.AuthClaims {
	return ctxutil.GetAuthUser(ctx)
}
