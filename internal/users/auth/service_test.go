// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/snipvault/snipvault/internal/platform/apperr"
	"github.com/snipvault/snipvault/internal/platform/sec"
	"github.com/snipvault/snipvault/internal/users/auth"
)

// # Test Doubles

// memoryUserRepository is an in-memory UserRepository used across the auth
// and account test suites.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*auth.User // keyed by ID
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*auth.User)}
}

func (repo *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, existing := range repo.users {
		if existing.Email == user.Email {
			return apperr.Conflict("Email already in use")
		}
		if existing.Username == user.Username {
			return apperr.Conflict("Username already in use")
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *memoryUserRepository) UpdateProfile(_ context.Context, userID string, profile auth.Profile) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Profile = profile
	user.UpdatedAt = time.Now()
	return nil
}

// brokenUserRepository fails every lookup with a fixed storage error,
// simulating a database outage.
type brokenUserRepository struct {
	err error
}

func (repo brokenUserRepository) FindByID(context.Context, string) (*auth.User, error) {
	return nil, repo.err
}

func (repo brokenUserRepository) FindByEmail(context.Context, string) (*auth.User, error) {
	return nil, repo.err
}

func (repo brokenUserRepository) FindByUsername(context.Context, string) (*auth.User, error) {
	return nil, repo.err
}

func (repo brokenUserRepository) Create(context.Context, *auth.User) error { return repo.err }

func (repo brokenUserRepository) UpdateProfile(context.Context, string, auth.Profile) error {
	return repo.err
}

// stubTokenProvider returns a fixed token without signing anything.
type stubTokenProvider struct {
	token string
	err   error
}

func (provider stubTokenProvider) GenerateAccessToken(string, time.Duration) (string, error) {
	return provider.token, provider.err
}

func newTestService(repo *memoryUserRepository) *auth.Service {
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)
	return auth.NewService(repo, stubTokenProvider{token: "stub-token"}, hasher)
}

// # Registration

/*
TestService_Register_Success verifies the happy path: the account is
persisted with a hashed password and a token is issued immediately.
*/
func TestService_Register_Success(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo)

	session, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "gopher",
		Email:    "Gopher@Example.COM",
		Password: "secret123",
	})

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "stub-token", session.Token)
	assert.Equal(t, "gopher", session.User.Username)

	// Email is canonicalized to lowercase.
	assert.Equal(t, "gopher@example.com", session.User.Email)

	// The plaintext never reaches storage.
	stored, err := repo.FindByEmail(context.Background(), "gopher@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("secret123", stored.PasswordHash))
}

/*
TestService_Register_DuplicateEmail verifies that a second registration with
the same email is rejected with a Conflict naming the email field.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "first", Email: "dup@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "second", Email: "dup@example.com", Password: "secret123",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, "Email already in use", ae.Message)
}

/*
TestService_Register_DuplicateUsername verifies the username uniqueness rule
when the email differs.
*/
func TestService_Register_DuplicateUsername(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "gopher", Email: "one@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "gopher", Email: "two@example.com", Password: "secret123",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, "Username already in use", ae.Message)
}

/*
TestService_Register_TrimsAndLowercases verifies identity normalization:
surrounding whitespace is dropped and emails are compared case-insensitively.
*/
func TestService_Register_TrimsAndLowercases(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo)

	session, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "  gopher  ",
		Email:    "  MIXED@Case.IO  ",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "gopher", session.User.Username)
	assert.Equal(t, "mixed@case.io", session.User.Email)
}

// # Authentication

/*
TestService_Login_Success verifies that a registered user can authenticate
with their original credentials and receives a token.
*/
func TestService_Login_Success(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "gopher", Email: "gopher@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email: "gopher@example.com", Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "stub-token", session.Token)
	assert.Equal(t, "gopher", session.User.Username)
}

/*
TestService_Login_Failures verifies that a wrong password and an unknown
email produce byte-identical error responses, preventing user enumeration.
*/
func TestService_Login_Failures(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "gopher", Email: "gopher@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, wrongPassErr := service.Login(context.Background(), auth.LoginInput{
		Email: "gopher@example.com", Password: "wrong-password",
	})
	_, unknownEmailErr := service.Login(context.Background(), auth.LoginInput{
		Email: "nobody@example.com", Password: "secret123",
	})

	require.Error(t, wrongPassErr)
	require.Error(t, unknownEmailErr)

	wrongPass := apperr.As(wrongPassErr)
	unknownEmail := apperr.As(unknownEmailErr)
	require.NotNil(t, wrongPass)
	require.NotNil(t, unknownEmail)

	// The two failure modes must be indistinguishable.
	assert.Equal(t, wrongPass.Code, unknownEmail.Code)
	assert.Equal(t, wrongPass.Message, unknownEmail.Message)
	assert.Equal(t, "UNAUTHORIZED", wrongPass.Code)
	assert.Equal(t, "Invalid credentials", wrongPass.Message)
}

/*
TestService_Login_StorageFailure verifies a broken user lookup propagates as a
server-side error. A database outage must never tell the caller their
credentials are wrong.
*/
func TestService_Login_StorageFailure(t *testing.T) {
	storageErr := errors.New("connection refused")
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)
	service := auth.NewService(brokenUserRepository{err: storageErr}, stubTokenProvider{token: "stub-token"}, hasher)

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email: "gopher@example.com", Password: "secret123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, storageErr, "the storage cause stays in the chain for logging")
	assert.Nil(t, apperr.As(err), "a storage fault must not be translated into a credential error")
}
