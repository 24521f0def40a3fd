// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/snipvault/snipvault/internal/platform/apperr"
	"github.com/snipvault/snipvault/internal/platform/constants"
	"github.com/snipvault/snipvault/internal/platform/sec"
	"github.com/snipvault/snipvault/pkg/uuidv7"
)

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user,
	// expiring timeToLive after issuance.
	GenerateAccessToken(userID string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	hasher         sec.PasswordHasher
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider, hasher sec.PasswordHasher) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		hasher:         hasher,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthSession is the result of a successful registration or login: the
// identity plus a freshly minted bearer token.
type AuthSession struct {
	Token string
	User  *User
}

// Register validates, hashes, and persists a brand new user account.
//
// # Business Rules
//   - Usernames and emails must be globally unique; the pre-check names the
//     colliding field, and the storage unique constraint closes the
//     check-then-insert race.
//   - Passwords are bcrypt-hashed before persistence; the plaintext never
//     leaves this method.
//
// # Returns
//   - An [*AuthSession] carrying the created user and a 1-hour token.
//   - [apperr.Conflict] if email or username already exists.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*AuthSession, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// ── 1. Uniqueness Checks ──────────────────────────────────────────────

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperr.Conflict("Email already in use")
	}

	// Verify username uniqueness. Return a client-safe Conflict error.
	_, err = service.userRepository.FindByUsername(ctx, username)
	if err == nil {
		return nil, apperr.Conflict("Username already in use")
	}

	// ── 2. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. The cost factor comes from
	// configuration so tests can use a cheap one.
	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 3. Entity Construction ────────────────────────────────────────────

	user := &User{
		ID:           uuidv7.New(), // Time-sortable ID to prevent PG index fragmentation.
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	// The repository maps a unique-constraint violation to Conflict, so two
	// concurrent registrations with the same identity cannot both win.
	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	// ── 5. Token Issuance ─────────────────────────────────────────────────

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthSession{Token: token, User: user}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// Login validates user credentials and issues a bearer token.
//
// # Flow
//  1. Lookup user by email.
//  2. Verify password hash using bcrypt's constant-time comparison.
//  3. Generate a 1-hour JWT access token.
//
// # Returns
//   - An [*AuthSession] containing the token.
//   - [apperr.Unauthorized] with a generic message if credentials do not
//     match — "no such user" and "wrong password" are deliberately
//     indistinguishable to prevent user enumeration.
//   - The wrapped storage error when the lookup itself fails, so an outage
//     surfaces as a server error instead of a credential rejection.
func (service *Service) Login(ctx context.Context, input LoginInput) (*AuthSession, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// ── 1. Fetch User ─────────────────────────────────────────────────────

	user, err := service.userRepository.FindByEmail(ctx, email)
	if err != nil {
		// Only a definitive miss counts as bad credentials.
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// ── 2. Security Verification ──────────────────────────────────────────

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthSession{Token: token, User: user}, nil
}
