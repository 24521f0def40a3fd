// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the adaptive hashing cost used when none is configured.
const DefaultBcryptCost = 10

// PasswordHasher hashes plain-text passwords with a configurable bcrypt cost.
//
// The cost is injected from configuration so tests can use bcrypt.MinCost
// while production keeps an expensive factor.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher constructs a hasher, clamping out-of-range costs to the default.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return PasswordHasher{cost: cost}
}

// Hash derives a salted bcrypt hash from a plain-text password.
func (hasher PasswordHasher) Hash(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
