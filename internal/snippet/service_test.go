// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package snippet_test

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipvault/snipvault/internal/platform/apperr"
	"github.com/snipvault/snipvault/internal/snippet"
	"github.com/snipvault/snipvault/pkg/pagination"
)

// # Test Doubles

// memoryRepository is an in-memory snippet.Repository.
type memoryRepository struct {
	mu       sync.Mutex
	snippets map[string]*snippet.Snippet
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{snippets: make(map[string]*snippet.Snippet)}
}

func (repo *memoryRepository) Create(_ context.Context, s *snippet.Snippet) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	copied := *s
	repo.snippets[s.ID] = &copied
	return nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*snippet.Snippet, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if s, ok := repo.snippets[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, apperr.NotFound("Snippet")
}

func (repo *memoryRepository) Update(_ context.Context, s *snippet.Snippet) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.snippets[s.ID]; !ok {
		return apperr.NotFound("Snippet")
	}
	copied := *s
	repo.snippets[s.ID] = &copied
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.snippets[id]; !ok {
		return apperr.NotFound("Snippet")
	}
	delete(repo.snippets, id)
	return nil
}

// newestFirst sorts by ID descending; UUIDv7 IDs are time-ordered so this
// approximates creation order without tracking timestamps in the fake.
func newestFirst(snippets []snippet.Snippet) {
	sort.Slice(snippets, func(i, j int) bool { return snippets[i].ID > snippets[j].ID })
}

func (repo *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]snippet.Snippet, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	result := make([]snippet.Snippet, 0)
	for _, s := range repo.snippets {
		if s.OwnerID == ownerID {
			result = append(result, *s)
		}
	}
	newestFirst(result)
	return result, nil
}

func (repo *memoryRepository) ListPublic(_ context.Context, params pagination.Params) ([]snippet.Snippet, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	all := make([]snippet.Snippet, 0)
	for _, s := range repo.snippets {
		if s.IsPublic {
			all = append(all, *s)
		}
	}
	newestFirst(all)

	total := len(all)
	offset := params.Offset()
	if offset >= total {
		return []snippet.Snippet{}, total, nil
	}
	end := offset + params.Limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (repo *memoryRepository) SearchByOwnerAndTags(_ context.Context, ownerID string, tags []string) ([]snippet.Snippet, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	result := make([]snippet.Snippet, 0)
	for _, s := range repo.snippets {
		if s.OwnerID == ownerID && overlaps(s.Tags, tags) {
			result = append(result, *s)
		}
	}
	newestFirst(result)
	return result, nil
}

func (repo *memoryRepository) SearchPublicByTags(_ context.Context, tags []string) ([]snippet.Snippet, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	result := make([]snippet.Snippet, 0)
	for _, s := range repo.snippets {
		if s.IsPublic && overlaps(s.Tags, tags) {
			result = append(result, *s)
		}
	}
	newestFirst(result)
	return result, nil
}

func overlaps(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, tag := range a {
		set[tag] = struct{}{}
	}
	for _, tag := range b {
		if _, ok := set[tag]; ok {
			return true
		}
	}
	return false
}

// spyCache counts invalidations and never serves a hit.
type spyCache struct {
	mu            sync.Mutex
	invalidations int
	sets          int
}

func (cache *spyCache) GetPublicPage(context.Context, pagination.Params) ([]snippet.Snippet, int, bool) {
	return nil, 0, false
}

func (cache *spyCache) SetPublicPage(context.Context, pagination.Params, []snippet.Snippet, int) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.sets++
}

func (cache *spyCache) InvalidateAll(context.Context) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.invalidations++
}

func newTestService() (*snippet.Service, *memoryRepository, *spyCache) {
	repo := newMemoryRepository()
	cache := &spyCache{}
	logger := slog.New(slog.DiscardHandler)
	return snippet.NewService(repo, cache, logger), repo, cache
}

func mustCreate(t *testing.T, service *snippet.Service, input snippet.CreateInput) *snippet.Snippet {
	t.Helper()
	created, err := service.Create(context.Background(), input)
	require.NoError(t, err)
	return created
}

// # Create

/*
TestService_Create verifies ID assignment, tag normalization, and cache
invalidation on the write path.
*/
func TestService_Create(t *testing.T) {
	service, _, cache := newTestService()

	created := mustCreate(t, service, snippet.CreateInput{
		OwnerID:  "owner-1",
		Title:    "Binary search",
		Code:     "func Search() {}",
		Language: "go",
		Tags:     []string{"Algorithms", "  go "},
		IsPublic: true,
	})

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "owner-1", created.OwnerID)
	assert.Equal(t, []string{"algorithms", "go"}, created.Tags)
	assert.Equal(t, 1, cache.invalidations)
}

// # GetByID

/*
TestService_GetByID_Visibility walks the read-access matrix end to end
through the service: the denied cases return the same NotFound as a missing
snippet.
*/
func TestService_GetByID_Visibility(t *testing.T) {
	service, _, _ := newTestService()

	private := mustCreate(t, service, snippet.CreateInput{
		OwnerID: "owner-1", Title: "Private", Code: "x", Language: "go", IsPublic: false,
	})
	public := mustCreate(t, service, snippet.CreateInput{
		OwnerID: "owner-1", Title: "Public", Code: "x", Language: "go", IsPublic: true,
	})

	tests := []struct {
		name      string
		callerID  string
		snippetID string
		wantFound bool
	}{
		{"public_anonymous", "", public.ID, true},
		{"public_stranger", "user-2", public.ID, true},
		{"private_owner", "owner-1", private.ID, true},
		{"private_anonymous", "", private.ID, false},
		{"private_stranger", "user-2", private.ID, false},
		{"missing_id", "owner-1", "no-such-id", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.GetByID(context.Background(), tt.callerID, tt.snippetID)

			if tt.wantFound {
				require.NoError(t, err)
				assert.Equal(t, tt.snippetID, got.ID)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "NOT_FOUND", ae.Code)
			assert.Equal(t, "Snippet not found", ae.Message)
		})
	}
}

// # Update / Delete

/*
TestService_Update verifies pointer-merge semantics: only provided fields
change, tags are re-normalized, and the cache is invalidated.
*/
func TestService_Update(t *testing.T) {
	service, _, cache := newTestService()

	created := mustCreate(t, service, snippet.CreateInput{
		OwnerID:     "owner-1",
		Title:       "Original",
		Description: "desc",
		Code:        "old code",
		Language:    "go",
		Tags:        []string{"go"},
		IsPublic:    false,
	})

	newTitle := "Renamed"
	newTags := []string{"Go", "Generics"}
	visible := true
	updated, err := service.Update(context.Background(), "owner-1", created.ID, snippet.UpdateInput{
		Title:    &newTitle,
		Tags:     &newTags,
		IsPublic: &visible,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "old code", updated.Code, "unspecified fields stay untouched")
	assert.Equal(t, "desc", updated.Description)
	assert.Equal(t, []string{"go", "generics"}, updated.Tags)
	assert.True(t, updated.IsPublic)
	assert.Equal(t, 2, cache.invalidations, "create + update")
}

/*
TestService_Update_NotOwner verifies a foreign snippet is reported as
missing, not forbidden.
*/
func TestService_Update_NotOwner(t *testing.T) {
	service, _, _ := newTestService()

	created := mustCreate(t, service, snippet.CreateInput{
		OwnerID: "owner-1", Title: "Mine", Code: "x", Language: "go", IsPublic: true,
	})

	newTitle := "Hijacked"
	_, err := service.Update(context.Background(), "user-2", created.ID, snippet.UpdateInput{Title: &newTitle})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_Delete verifies owner-only deletion with the same 404 conflation
and cache invalidation.
*/
func TestService_Delete(t *testing.T) {
	service, repo, cache := newTestService()

	created := mustCreate(t, service, snippet.CreateInput{
		OwnerID: "owner-1", Title: "Mine", Code: "x", Language: "go", IsPublic: true,
	})

	// A stranger's delete is a 404 and leaves the snippet in place.
	err := service.Delete(context.Background(), "user-2", created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	_, err = repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)

	// The owner's delete succeeds.
	require.NoError(t, service.Delete(context.Background(), "owner-1", created.ID))
	_, err = repo.FindByID(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, 2, cache.invalidations, "create + delete")
}

// # Listings

/*
TestService_ListPublic verifies pagination over the public feed and that
pages get written to the cache.
*/
func TestService_ListPublic(t *testing.T) {
	service, _, cache := newTestService()

	for i := 0; i < 3; i++ {
		mustCreate(t, service, snippet.CreateInput{
			OwnerID: "owner-1", Title: "Public", Code: "x", Language: "go", IsPublic: true,
		})
	}
	mustCreate(t, service, snippet.CreateInput{
		OwnerID: "owner-1", Title: "Private", Code: "x", Language: "go", IsPublic: false,
	})

	page, total, err := service.ListPublic(context.Background(), pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total, "private snippets never count")
	assert.Len(t, page, 2)

	page2, _, err := service.ListPublic(context.Background(), pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)

	assert.Equal(t, 2, cache.sets, "each miss populates the cache")
}

/*
TestService_ListByOwner verifies the owner's listing includes private
snippets and excludes everyone else's.
*/
func TestService_ListByOwner(t *testing.T) {
	service, _, _ := newTestService()

	mustCreate(t, service, snippet.CreateInput{
		OwnerID: "owner-1", Title: "Mine public", Code: "x", Language: "go", IsPublic: true,
	})
	mustCreate(t, service, snippet.CreateInput{
		OwnerID: "owner-1", Title: "Mine private", Code: "x", Language: "go", IsPublic: false,
	})
	mustCreate(t, service, snippet.CreateInput{
		OwnerID: "owner-2", Title: "Theirs", Code: "x", Language: "go", IsPublic: true,
	})

	snippets, err := service.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Len(t, snippets, 2)
	for _, s := range snippets {
		assert.Equal(t, "owner-1", s.OwnerID)
	}
}

// # Search

/*
TestService_SearchByTags verifies scope switching (own collection vs public
feed), tag normalization on the query side, and the empty-tags rejection.
*/
func TestService_SearchByTags(t *testing.T) {
	service, _, _ := newTestService()

	mine := mustCreate(t, service, snippet.CreateInput{
		OwnerID: "owner-1", Title: "Mine private", Code: "x", Language: "go",
		Tags: []string{"algorithms"}, IsPublic: false,
	})
	other := mustCreate(t, service, snippet.CreateInput{
		OwnerID: "owner-2", Title: "Theirs public", Code: "x", Language: "go",
		Tags: []string{"algorithms"}, IsPublic: true,
	})

	// Authenticated: own snippets only, private included; query tag is
	// normalized before matching.
	results, err := service.SearchByTags(context.Background(), "owner-1", []string{" Algorithms "})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, mine.ID, results[0].ID)

	// Anonymous: public snippets only.
	results, err = service.SearchByTags(context.Background(), "", []string{"algorithms"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, other.ID, results[0].ID)

	// Tags that normalize away entirely are a validation error.
	_, err = service.SearchByTags(context.Background(), "owner-1", []string{"  ", "!!!"})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}
