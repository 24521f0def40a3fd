// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/snipvault/snipvault/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for account self-service.
type Service struct {
	userRepository auth.UserRepository
	snippetLister  SnippetLister
	logger         *slog.Logger
}

// NewService constructs a new account [Service] with its dependencies.
func NewService(userRepo auth.UserRepository, snippets SnippetLister, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		snippetLister:  snippets,
		logger:         logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
// Nil pointers mean "leave unchanged"; pointers to empty strings clear the field.
type UpdateProfileInput struct {
	Name             *string
	FavoriteLanguage *string
	Bio              *string
	Location         *string
	Website          *string
	GitHub           *string
	Twitter          *string
	LinkedIn         *string
}

/*
UpdateProfile applies a partial set of changes to a user's profile.

Description: Fetches the existing profile, overlays the provided fields, and
persists the merged document. Identity fields (username, email, password) are
out of scope here; only presentation fields can change.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Not found, update, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.Name != nil {
		user.Profile.Name = *input.Name
	}
	if input.FavoriteLanguage != nil {
		user.Profile.FavoriteLanguage = *input.FavoriteLanguage
	}
	if input.Bio != nil {
		user.Profile.Bio = *input.Bio
	}
	if input.Location != nil {
		user.Profile.Location = *input.Location
	}
	if input.Website != nil {
		user.Profile.Website = *input.Website
	}
	if input.GitHub != nil {
		user.Profile.GitHub = *input.GitHub
	}
	if input.Twitter != nil {
		user.Profile.Twitter = *input.Twitter
	}
	if input.LinkedIn != nil {
		user.Profile.LinkedIn = *input.LinkedIn
	}

	// Persist changes
	if err := service.userRepository.UpdateProfile(context, userID, user.Profile); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// # Dashboard

/*
GetDashboard assembles the private landing-page aggregate for a user.

Description: Combines the caller's profile with their complete snippet
collection (public and private) in a single round-trip for the frontend.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Dashboard: Profile plus owned snippets, newest first
  - error: Not found or retrieval failures
*/
func (service *Service) GetDashboard(context context.Context, userID string) (*Dashboard, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_dashboard_lookup_failed: %w", err)
	}

	snippets, err := service.snippetLister.ListByOwner(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_dashboard_snippets_failed: %w", err)
	}

	return &Dashboard{User: user, Snippets: snippets}, nil
}
