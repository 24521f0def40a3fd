// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

// Package account implements self-service account management: viewing and
// editing the authenticated user's profile, and the dashboard aggregate.
//
// # Architecture
//
// The package builds on the [auth.User] entity and reaches the snippet domain
// only through the narrow [SnippetLister] port, keeping the dependency
// direction one-way.
package account

import (
	"context"

	"github.com/snipvault/snipvault/internal/snippet"
	"github.com/snipvault/snipvault/internal/users/auth"
)

// # Ports

// SnippetLister is the subset of the snippet domain the dashboard needs.
type SnippetLister interface {
	// ListByOwner returns every snippet owned by the given user, public and
	// private alike, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]snippet.Snippet, error)
}

// # Aggregates

// Dashboard is the private landing-page aggregate: the caller's identity
// plus their full snippet collection.
type Dashboard struct {
	User     *auth.User        `json:"user"`
	Snippets []snippet.Snippet `json:"snippets"`
}

// # Field Limits

// Upper bounds for the free-text profile fields. They guard storage, not
// correctness: none of these fields are security-relevant.
const (
	MaxNameLength     = 50
	MaxLanguageLength = 50
	MaxBioLength      = 500
	MaxLocationLength = 100
	MaxHandleLength   = 100
)
