// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

// # Storage Implementation
//
// PostgreSQL repository for snippets. Tags are stored as a native TEXT[]
// column; tag search uses the array-overlap operator (&&) backed by a GIN
// index, which matches "any tag in common" semantics exactly.

package snippet

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/snipvault/snipvault/internal/platform/apperr"
	"github.com/snipvault/snipvault/internal/platform/dberr"
	"github.com/snipvault/snipvault/pkg/pagination"
)

const snippetColumns = "id, ownerid, title, description, code, language, tags, ispublic, createdat, updatedat"

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new snippet record into the core.snippet table.

Parameters:
  - context: context.Context
  - snippet: *Snippet (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, snippet *Snippet) error {
	const query = `
		INSERT INTO core.snippet (
			id, ownerid, title, description, code, language, tags, ispublic, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if snippet.CreatedAt.IsZero() {
		snippet.CreatedAt = now
	}
	snippet.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		snippet.ID,
		snippet.OwnerID,
		snippet.Title,
		snippet.Description,
		snippet.Code,
		snippet.Language,
		snippet.Tags,
		snippet.IsPublic,
		snippet.CreatedAt,
		snippet.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_snippet_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a snippet record by its unique ID.

Description: Primary key resolution. Visibility is NOT applied here; the
service decides what the caller may see.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Snippet: Hydrated snippet entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Snippet, error) {
	const query = `
		SELECT ` + snippetColumns + `
		FROM core.snippet
		WHERE id = $1`

	snippet := &Snippet{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&snippet.ID,
		&snippet.OwnerID,
		&snippet.Title,
		&snippet.Description,
		&snippet.Code,
		&snippet.Language,
		&snippet.Tags,
		&snippet.IsPublic,
		&snippet.CreatedAt,
		&snippet.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Snippet")
	}

	return snippet, nil
}

/*
Update persists changes to a snippet's mutable fields.

Description: Synchronizes the in-memory snippet state with the database,
refreshing the updatedat timestamp.

Parameters:
  - context: context.Context
  - snippet: *Snippet

Returns:
  - error: apperr.NotFound if the row vanished, or update failures
*/
func (repository *PostgresRepository) Update(context context.Context, snippet *Snippet) error {
	const query = `
		UPDATE core.snippet
		SET title = $2, description = $3, code = $4, language = $5, tags = $6, ispublic = $7, updatedat = $8
		WHERE id = $1`

	snippet.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		snippet.ID,
		snippet.Title,
		snippet.Description,
		snippet.Code,
		snippet.Language,
		snippet.Tags,
		snippet.IsPublic,
		snippet.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_snippet_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Snippet")
	}

	return nil
}

/*
Delete permanently removes a snippet by its ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound if no row matched, or execution errors
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM core.snippet WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_snippet_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Snippet")
	}

	return nil
}

/*
ListByOwner retrieves all snippets owned by a user, newest first.

Description: Returns the owner's full collection regardless of visibility;
this query backs both the "my snippets" listing and the dashboard.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - []Snippet: Owned snippets, newest first
  - error: Execution errors
*/
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string) ([]Snippet, error) {
	const query = `
		SELECT ` + snippetColumns + `
		FROM core.snippet
		WHERE ownerid = $1
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_snippet_repo_list_by_owner_failed: %w", err)
	}
	defer rows.Close()

	return scanSnippets(rows)
}

/*
ListPublic retrieves a page of public snippets with the total count.

Description: Two queries under the same visibility predicate; the count
drives the pagination metadata envelope.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Snippet: One page of public snippets, newest first
  - int: Total number of public snippets
  - error: Execution errors
*/
func (repository *PostgresRepository) ListPublic(context context.Context, params pagination.Params) ([]Snippet, int, error) {
	const countQuery = "SELECT COUNT(*) FROM core.snippet WHERE ispublic = TRUE"

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_snippet_repo_count_public_failed: %w", err)
	}

	const query = `
		SELECT ` + snippetColumns + `
		FROM core.snippet
		WHERE ispublic = TRUE
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_snippet_repo_list_public_failed: %w", err)
	}
	defer rows.Close()

	snippets, err := scanSnippets(rows)
	if err != nil {
		return nil, 0, err
	}

	return snippets, total, nil
}

/*
SearchByOwnerAndTags retrieves an owner's snippets matching any of the tags.

Description: Array-overlap search (&&) scoped to the owner's collection,
including private snippets.

Parameters:
  - context: context.Context
  - ownerID: string
  - tags: []string (Pre-normalized)

Returns:
  - []Snippet: Matching snippets, newest first
  - error: Execution errors
*/
func (repository *PostgresRepository) SearchByOwnerAndTags(context context.Context, ownerID string, tags []string) ([]Snippet, error) {
	const query = `
		SELECT ` + snippetColumns + `
		FROM core.snippet
		WHERE ownerid = $1 AND tags && $2
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, ownerID, tags)
	if err != nil {
		return nil, fmt.Errorf("postgres_snippet_repo_search_by_owner_failed: %w", err)
	}
	defer rows.Close()

	return scanSnippets(rows)
}

/*
SearchPublicByTags retrieves public snippets matching any of the tags.

Parameters:
  - context: context.Context
  - tags: []string (Pre-normalized)

Returns:
  - []Snippet: Matching public snippets, newest first
  - error: Execution errors
*/
func (repository *PostgresRepository) SearchPublicByTags(context context.Context, tags []string) ([]Snippet, error) {
	const query = `
		SELECT ` + snippetColumns + `
		FROM core.snippet
		WHERE ispublic = TRUE AND tags && $1
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, tags)
	if err != nil {
		return nil, fmt.Errorf("postgres_snippet_repo_search_public_failed: %w", err)
	}
	defer rows.Close()

	return scanSnippets(rows)
}

// scanSnippets drains a result set into a slice, always returning a non-nil
// slice so empty results serialize as [] rather than null.
func scanSnippets(rows pgx.Rows) ([]Snippet, error) {
	snippets := make([]Snippet, 0)

	for rows.Next() {
		var snippet Snippet
		err := rows.Scan(
			&snippet.ID,
			&snippet.OwnerID,
			&snippet.Title,
			&snippet.Description,
			&snippet.Code,
			&snippet.Language,
			&snippet.Tags,
			&snippet.IsPublic,
			&snippet.CreatedAt,
			&snippet.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_snippet_repo_scan_failed: %w", err)
		}
		snippets = append(snippets, snippet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_snippet_repo_rows_failed: %w", err)
	}

	return snippets, nil
}
