// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret is returned when a token operation is attempted without a
// configured signing secret. Startup treats this as fatal; the middleware
// maps it to a server-side configuration error as a defensive backstop.
var ErrNoSecret = errors.New("sec: signing secret is not configured")

// AuthClaims represents the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// By embedding the UserID directly inside the JWT, the authentication
// middleware can reconstruct the caller's identity WITHOUT querying the
// database on every single API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// UserID identifies the account the token was issued to.
	UserID string `json:"id"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// The signing secret is process-wide and immutable after construction; every
// issuance and verification reads it without further synchronization.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService signing with the given secret.
// It fails fast if the secret is empty so a misconfigured deployment never
// silently issues unverifiable tokens.
func NewTokenService(secret []byte, issuer string) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}

	return &TokenService{secret: secret, issuer: issuer}, nil
}

// GenerateAccessToken creates a new signed JWT for a user, expiring exactly
// timeToLive after issuance.
func (service *TokenService) GenerateAccessToken(userID string, timeToLive time.Duration) (string, error) {
	if len(service.secret) == 0 {
		return "", ErrNoSecret
	}

	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and expiry of a JWT string.
//
// Any verification failure (tampered payload, wrong signature, expired token)
// is reported as an error; callers must treat all of them uniformly and never
// echo the underlying reason to the client.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	if len(service.secret) == 0 {
		return nil, ErrNoSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}
