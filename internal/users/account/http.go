// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

/*
HTTP delivery layer for profile and dashboard management.

# Security

All endpoints in this package require an active authentication session
provided by the RequireAuth middleware; the router mounts them inside an
authenticated group.
*/

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snipvault/snipvault/internal/platform/middleware"
	requestutil "github.com/snipvault/snipvault/internal/platform/request"
	"github.com/snipvault/snipvault/internal/platform/respond"
	"github.com/snipvault/snipvault/internal/platform/validate"
)

// Handler implements the HTTP layer for account self-service.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/me", handler.getMe)
	router.Put("/profile", handler.updateProfile)
	router.Get("/dashboard", handler.getDashboard)

	return router
}

// # Profile Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateProfileRequest defines the expected JSON payload for profile updates.
// Absent fields stay untouched; empty strings clear the field.
type updateProfileRequest struct {
	Name             *string `json:"name"`
	FavoriteLanguage *string `json:"favoriteLanguage"`
	Bio              *string `json:"bio"`
	Location         *string `json:"location"`
	Website          *string `json:"website"`
	GitHub           *string `json:"github"`
	Twitter          *string `json:"twitter"`
	LinkedIn         *string `json:"linkedin"`
}

/*
PUT /api/v1/users/profile.

Description: Applies partial updates to the authenticated user's profile.

Request:
  - body: updateProfileRequest (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.MaxLen("name", *input.Name, MaxNameLength)
	}
	if input.FavoriteLanguage != nil {
		v.MaxLen("favoriteLanguage", *input.FavoriteLanguage, MaxLanguageLength)
	}
	if input.Bio != nil {
		v.MaxLen("bio", *input.Bio, MaxBioLength)
	}
	if input.Location != nil {
		v.MaxLen("location", *input.Location, MaxLocationLength)
	}
	if input.Website != nil && *input.Website != "" {
		v.URL("website", *input.Website)
	}
	if input.GitHub != nil {
		v.MaxLen("github", *input.GitHub, MaxHandleLength)
	}
	if input.Twitter != nil {
		v.MaxLen("twitter", *input.Twitter, MaxHandleLength)
	}
	if input.LinkedIn != nil {
		v.MaxLen("linkedin", *input.LinkedIn, MaxHandleLength)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Name:             input.Name,
		FavoriteLanguage: input.FavoriteLanguage,
		Bio:              input.Bio,
		Location:         input.Location,
		Website:          input.Website,
		GitHub:           input.GitHub,
		Twitter:          input.Twitter,
		LinkedIn:         input.LinkedIn,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Dashboard Endpoint

/*
GET /api/v1/users/dashboard.

Description: Returns the caller's profile together with every snippet they
own, public and private, in a single payload.

Response:
  - 200: Dashboard: User profile and owned snippets
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getDashboard(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	dashboard, err := handler.accountService.GetDashboard(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, dashboard)
}
