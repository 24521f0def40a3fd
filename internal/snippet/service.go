// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package snippet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/snipvault/snipvault/internal/platform/apperr"
	"github.com/snipvault/snipvault/pkg/pagination"
	"github.com/snipvault/snipvault/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates snippet business logic: ownership checks, visibility
// resolution, tag normalization, and cache maintenance.
//
// Inputs arriving here have already passed transport-level validation; the
// service enforces the rules that need entity state (who owns what, what is
// visible to whom).
type Service struct {
	repository Repository
	cache      ListCache
	logger     *slog.Logger
}

// NewService constructs a new snippet [Service] with its dependencies.
func NewService(repository Repository, cache ListCache, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		cache:      cache,
		logger:     logger,
	}
}

// # Write Operations

// CreateInput holds the data required to create a snippet.
type CreateInput struct {
	OwnerID     string
	Title       string
	Description string
	Code        string
	Language    string
	Tags        []string
	IsPublic    bool
}

/*
Create persists a new snippet owned by the caller.

Description: Normalizes tags to their canonical slug form, assigns a
time-sortable ID, persists, and invalidates the public listing cache.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Snippet: The created snippet
  - error: Storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Snippet, error) {
	snippet := &Snippet{
		ID:          uuidv7.New(),
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		Code:        input.Code,
		Language:    input.Language,
		Tags:        NormalizeTags(input.Tags),
		IsPublic:    input.IsPublic,
	}

	if err := service.repository.Create(context, snippet); err != nil {
		return nil, fmt.Errorf("snippet_service_create_failed: %w", err)
	}

	service.cache.InvalidateAll(context)
	service.logger.Info("snippet_created",
		slog.String("snippet_id", snippet.ID),
		slog.String("owner_id", snippet.OwnerID),
		slog.Bool("is_public", snippet.IsPublic),
	)

	return snippet, nil
}

// UpdateInput defines the mutable subset of snippet fields.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Title       *string
	Description *string
	Code        *string
	Language    *string
	Tags        *[]string
	IsPublic    *bool
}

/*
Update applies a partial set of changes to a snippet the caller owns.

Description: Loads the snippet, resolves write access (owner only), overlays
the provided fields, persists, and invalidates the public listing cache.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated user)
  - snippetID: string
  - input: UpdateInput

Returns:
  - *Snippet: The updated snippet
  - error: apperr.NotFound for absent or foreign snippets, or storage failures
*/
func (service *Service) Update(context context.Context, callerID, snippetID string, input UpdateInput) (*Snippet, error) {
	snippet, err := service.findForWrite(context, callerID, snippetID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Title != nil {
		snippet.Title = *input.Title
	}
	if input.Description != nil {
		snippet.Description = *input.Description
	}
	if input.Code != nil {
		snippet.Code = *input.Code
	}
	if input.Language != nil {
		snippet.Language = *input.Language
	}
	if input.Tags != nil {
		snippet.Tags = NormalizeTags(*input.Tags)
	}
	if input.IsPublic != nil {
		snippet.IsPublic = *input.IsPublic
	}

	if err := service.repository.Update(context, snippet); err != nil {
		return nil, fmt.Errorf("snippet_service_update_failed: %w", err)
	}

	service.cache.InvalidateAll(context)
	service.logger.Info("snippet_updated", slog.String("snippet_id", snippet.ID))

	return snippet, nil
}

/*
Delete permanently removes a snippet the caller owns.

Parameters:
  - context: context.Context
  - callerID: string
  - snippetID: string

Returns:
  - error: apperr.NotFound for absent or foreign snippets, or storage failures
*/
func (service *Service) Delete(context context.Context, callerID, snippetID string) error {
	snippet, err := service.findForWrite(context, callerID, snippetID)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, snippet.ID); err != nil {
		return fmt.Errorf("snippet_service_delete_failed: %w", err)
	}

	service.cache.InvalidateAll(context)
	service.logger.Info("snippet_deleted", slog.String("snippet_id", snippet.ID))

	return nil
}

// findForWrite loads a snippet and resolves write access. A snippet owned by
// someone else is reported exactly like a missing one.
func (service *Service) findForWrite(context context.Context, callerID, snippetID string) (*Snippet, error) {
	snippet, err := service.repository.FindByID(context, snippetID)
	if err != nil {
		return nil, err
	}

	if ResolveWriteAccess(snippet, callerID) != AccessAllowed {
		return nil, apperr.NotFound("Snippet")
	}

	return snippet, nil
}

// # Read Operations

/*
GetByID retrieves a single snippet, subject to visibility.

Description: Public snippets are returned to anyone; private snippets only
to their owner. callerID is empty for anonymous callers. Denied access and
genuine absence produce the same NotFound.

Parameters:
  - context: context.Context
  - callerID: string (Empty for anonymous)
  - snippetID: string

Returns:
  - *Snippet: The snippet, if visible
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) GetByID(context context.Context, callerID, snippetID string) (*Snippet, error) {
	snippet, err := service.repository.FindByID(context, snippetID)
	if err != nil {
		return nil, err
	}

	if ResolveReadAccess(snippet, callerID) != AccessAllowed {
		return nil, apperr.NotFound("Snippet")
	}

	return snippet, nil
}

/*
ListByOwner retrieves the full collection owned by a user, newest first.

Description: Backs the authenticated "my snippets" listing and the account
dashboard. Callers must have already established the owner's identity.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - []Snippet: Owned snippets, public and private
  - error: Retrieval failures
*/
func (service *Service) ListByOwner(context context.Context, ownerID string) ([]Snippet, error) {
	snippets, err := service.repository.ListByOwner(context, ownerID)
	if err != nil {
		return nil, fmt.Errorf("snippet_service_list_by_owner_failed: %w", err)
	}
	return snippets, nil
}

/*
ListPublic retrieves a page of the public snippet feed.

Description: Cache-aside over Redis with a short TTL. A cache miss or a
failing cache falls through to the database transparently.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Snippet: One page, newest first
  - int: Total public snippet count
  - error: Retrieval failures
*/
func (service *Service) ListPublic(context context.Context, params pagination.Params) ([]Snippet, int, error) {
	if snippets, total, ok := service.cache.GetPublicPage(context, params); ok {
		return snippets, total, nil
	}

	snippets, total, err := service.repository.ListPublic(context, params)
	if err != nil {
		return nil, 0, fmt.Errorf("snippet_service_list_public_failed: %w", err)
	}

	service.cache.SetPublicPage(context, params, snippets, total)

	return snippets, total, nil
}

/*
SearchByTags retrieves snippets matching any of the given tags.

Description: Scope depends on the caller. Authenticated callers search their
own collection, private snippets included; anonymous callers search the
public feed. Tags are normalized before matching, so a query for "Go" finds
snippets tagged "go".

Parameters:
  - context: context.Context
  - callerID: string (Empty for anonymous)
  - tags: []string (Raw, as received from the client)

Returns:
  - []Snippet: Matching snippets, newest first
  - error: apperr.ValidationError when no usable tags remain, or retrieval failures
*/
func (service *Service) SearchByTags(context context.Context, callerID string, tags []string) ([]Snippet, error) {
	normalized := NormalizeTags(tags)
	if len(normalized) == 0 {
		return nil, apperr.ValidationError("At least one tag is required")
	}

	if callerID != "" {
		snippets, err := service.repository.SearchByOwnerAndTags(context, callerID, normalized)
		if err != nil {
			return nil, fmt.Errorf("snippet_service_search_own_failed: %w", err)
		}
		return snippets, nil
	}

	snippets, err := service.repository.SearchPublicByTags(context, normalized)
	if err != nil {
		return nil, fmt.Errorf("snippet_service_search_public_failed: %w", err)
	}
	return snippets, nil
}
