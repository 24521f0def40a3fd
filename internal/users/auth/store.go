// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package auth

import "context"

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a brand-new user account. A unique-constraint
	// violation surfaces as a Conflict error.
	Create(ctx context.Context, user *User) error

	// UpdateProfile replaces the account's profile fields.
	UpdateProfile(ctx context.Context, userID string, profile Profile) error
}
