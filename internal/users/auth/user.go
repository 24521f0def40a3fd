// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

// Package auth implements the core identity system: registration, login,
// and the User entity shared by the rest of the platform.
//
// # Architecture
//
// The Service orchestrates validation-adjacent business rules (uniqueness,
// hashing, token issuance) and talks to storage through the [UserRepository]
// interface. It knows nothing about HTTP or SQL.
package auth

import (
	"time"
)

// Profile holds the free-text presentation fields of an account.
// None of these are security-relevant.
type Profile struct {
	Name             string `json:"name"`
	FavoriteLanguage string `json:"favoriteLanguage"`
	Bio              string `json:"bio"`
	Location         string `json:"location"`
	Website          string `json:"website"`
	GitHub           string `json:"github"`
	Twitter          string `json:"twitter"`
	LinkedIn         string `json:"linkedin"`
}

// User represents a registered member of SnipVault.
//
// # Rules
//   - Username is unique, trimmed, at least 3 characters.
//   - Email is unique, trimmed, lowercased, and pattern-validated.
//   - PasswordHash is derived via bcrypt exclusively by the auth [Service];
//     it is recomputed whenever the plaintext password is replaced and is
//     never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
