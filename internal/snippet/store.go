// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package snippet

import (
	"context"

	"github.com/snipvault/snipvault/pkg/pagination"
)

// Repository defines the data access contract for snippets.
type Repository interface {
	// Create persists a new snippet.
	Create(ctx context.Context, snippet *Snippet) error

	// FindByID returns the snippet with the given ID regardless of
	// visibility; access decisions belong to the service layer.
	FindByID(ctx context.Context, id string) (*Snippet, error)

	// Update persists the snippet's mutable fields.
	Update(ctx context.Context, snippet *Snippet) error

	// Delete permanently removes the snippet.
	Delete(ctx context.Context, id string) error

	// ListByOwner returns every snippet owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]Snippet, error)

	// ListPublic returns a page of public snippets, newest first, with the
	// total public count for pagination metadata.
	ListPublic(ctx context.Context, params pagination.Params) ([]Snippet, int, error)

	// SearchByOwnerAndTags returns ownerID's snippets carrying at least one
	// of the given tags, newest first. Tags must be pre-normalized.
	SearchByOwnerAndTags(ctx context.Context, ownerID string, tags []string) ([]Snippet, error)

	// SearchPublicByTags returns public snippets carrying at least one of
	// the given tags, newest first. Tags must be pre-normalized.
	SearchPublicByTags(ctx context.Context, tags []string) ([]Snippet, error)
}

// ListCache caches pages of the public snippet listing.
//
// Implementations are best-effort: a cache that cannot be reached behaves as
// a permanent miss and callers fall through to the repository.
type ListCache interface {
	// GetPublicPage returns a cached page, or ok=false on a miss.
	GetPublicPage(ctx context.Context, params pagination.Params) ([]Snippet, int, bool)

	// SetPublicPage stores a page with its total count.
	SetPublicPage(ctx context.Context, params pagination.Params, snippets []Snippet, total int)

	// InvalidateAll drops every cached page. Called after any snippet write.
	InvalidateAll(ctx context.Context)
}
