// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/snipvault/snipvault/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. A value that cannot be cast to the key's type (SQLSTATE 22P02,
	// e.g. a non-UUID id from a path parameter) cannot match any row.
	// Treat it as absence rather than a server fault.
	if isPgCode(err, pgerrcode.InvalidTextRepresentation) {
		return apperr.NotFound(resource)
	}

	// 3. Unique constraint violations become client-safe Conflicts. This is
	// the backstop for the check-then-insert race during registration: the
	// constraint, not the pre-check, is authoritative.
	if constraint, ok := UniqueConstraint(err); ok {
		return apperr.Conflict(resource + " already exists (" + constraint + ")")
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// UniqueConstraint reports whether err is a Postgres unique-violation
// (SQLSTATE 23505) and returns the violated constraint name.
func UniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// isPgCode reports whether err carries the given SQLSTATE code.
func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
