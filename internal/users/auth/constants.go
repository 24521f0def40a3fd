// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package auth

// # Registration Constraints

const (
	// MinUsernameLength is the minimum accepted username length.
	MinUsernameLength = 3

	// MinPasswordLength is the minimum accepted password length at
	// registration. Login deliberately applies no length rule: a too-short
	// password can never match a stored hash anyway, and rejecting it
	// differently would leak information about the account.
	MinPasswordLength = 6
)

// # JSON Field Identifiers

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)
