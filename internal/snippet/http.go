// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

/*
HTTP delivery layer for the snippet domain.

# Endpoints

Public (anonymous allowed):
  - GET /        : Paginated feed of public snippets.
  - GET /search  : Tag search; scope depends on authentication.
  - GET /{id}    : Single snippet, subject to visibility.

Authenticated:
  - POST /       : Create a snippet.
  - GET /mine    : The caller's full collection.
  - PUT /{id}    : Update an owned snippet.
  - DELETE /{id} : Delete an owned snippet.

The optional-auth endpoints rely on the authentication middleware running
for the whole API: a valid token injects the caller's identity, no token
leaves the request anonymous.
*/

package snippet

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/snipvault/snipvault/internal/platform/middleware"
	requestutil "github.com/snipvault/snipvault/internal/platform/request"
	"github.com/snipvault/snipvault/internal/platform/respond"
	"github.com/snipvault/snipvault/internal/platform/validate"
	"github.com/snipvault/snipvault/pkg/pagination"
)

// Handler implements snippet-related HTTP endpoints.
type Handler struct {
	snippetService *Service
}

// NewHandler constructs a new snippet [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{snippetService: service}
}

// Routes returns a [chi.Router] configured with the snippet domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public and optional-auth endpoints
	router.Get("/", handler.listPublic)
	router.Get("/search", handler.search)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Get("/mine", handler.listMine)
	})

	// /{id} last so "/search" and "/mine" never shadow into it
	router.Get("/{id}", handler.getByID)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Language    string   `json:"language"`
	Tags        []string `json:"tags"`
	IsPublic    bool     `json:"is_public"`
}

type updateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Code        *string   `json:"code"`
	Language    *string   `json:"language"`
	Tags        *[]string `json:"tags"`
	IsPublic    *bool     `json:"is_public"`
}

// # Write Endpoints

/*
Create stores a new snippet for the authenticated user.

POST /api/v1/snippets

Request:
  - Body: createRequest (Title, Code, Language required)

Response:
  - 201: Snippet: The created snippet with its generated ID
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("title", input.Title).
		MaxLen("title", input.Title, MaxTitleLength).
		Required("code", input.Code).
		Required("language", input.Language).
		MaxLen("description", input.Description, MaxDescriptionLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	snippet, err := handler.snippetService.Create(request.Context(), CreateInput{
		OwnerID:     userID,
		Title:       input.Title,
		Description: input.Description,
		Code:        input.Code,
		Language:    input.Language,
		Tags:        input.Tags,
		IsPublic:    input.IsPublic,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, snippet)
}

/*
Update applies partial changes to a snippet owned by the caller.

PUT /api/v1/snippets/{id}

Description: Absent fields stay untouched. Title, code, and language cannot
be cleared; description and tags can.

Request:
  - id: string (Snippet UUID)
  - Body: updateRequest (Partial JSON)

Response:
  - 200: Snippet: The updated snippet
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Snippet absent or owned by someone else
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Title != nil {
		v.Required("title", *input.Title).MaxLen("title", *input.Title, MaxTitleLength)
	}
	if input.Code != nil {
		v.Required("code", *input.Code)
	}
	if input.Language != nil {
		v.Required("language", *input.Language)
	}
	if input.Description != nil {
		v.MaxLen("description", *input.Description, MaxDescriptionLength)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	snippet, err := handler.snippetService.Update(request.Context(), userID, requestutil.ID(request, "id"), UpdateInput{
		Title:       input.Title,
		Description: input.Description,
		Code:        input.Code,
		Language:    input.Language,
		Tags:        input.Tags,
		IsPublic:    input.IsPublic,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, snippet)
}

/*
Delete permanently removes a snippet owned by the caller.

DELETE /api/v1/snippets/{id}

Response:
  - 204: No Content: Snippet deleted
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Snippet absent or owned by someone else
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.snippetService.Delete(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Read Endpoints

/*
GetByID retrieves a single snippet, subject to visibility.

GET /api/v1/snippets/{id}

Description: Works with or without a token. Private snippets are visible
only to their owner; everyone else receives the same 404 as for a snippet
that does not exist.

Response:
  - 200: Snippet: The snippet
  - 404: ErrNotFound: Absent or not visible to the caller
*/
func (handler *Handler) getByID(writer http.ResponseWriter, request *http.Request) {
	callerID := requestutil.CallerID(request)

	snippet, err := handler.snippetService.GetByID(request.Context(), callerID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, snippet)
}

/*
ListMine returns the authenticated caller's full snippet collection.

GET /api/v1/snippets/mine

Response:
  - 200: []Snippet: Owned snippets, newest first
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snippets, err := handler.snippetService.ListByOwner(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, snippets)
}

/*
ListPublic returns a paginated page of the public snippet feed.

GET /api/v1/snippets?page=1&limit=20

Response:
  - 200: []Snippet + Meta: One page, newest first, with pagination metadata
*/
func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	snippets, total, err := handler.snippetService.ListPublic(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, snippets, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Search returns snippets matching any of the requested tags.

GET /api/v1/snippets/search?tags=go,generics

Description: Authenticated callers search their own collection, anonymous
callers search the public feed. Tags are comma-separated; blanks are
dropped, and an effectively empty list is a validation error.

Response:
  - 200: []Snippet: Matching snippets, newest first
  - 400: ErrValidation: No usable tags provided
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	rawTags := request.URL.Query().Get("tags")
	if strings.TrimSpace(rawTags) == "" {
		respond.Error(writer, request, validate.RequiredError("tags", "is required"))
		return
	}

	callerID := requestutil.CallerID(request)

	snippets, err := handler.snippetService.SearchByTags(request.Context(), callerID, strings.Split(rawTags, ","))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, snippets)
}
