// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package snippet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snipvault/snipvault/internal/snippet"
)

/*
TestResolveReadAccess exercises the visibility matrix: public snippets are
readable by everyone, private ones only by their owner.
*/
func TestResolveReadAccess(t *testing.T) {
	tests := []struct {
		name     string
		isPublic bool
		ownerID  string
		callerID string
		want     snippet.Access
	}{
		{"public_anonymous", true, "owner-1", "", snippet.AccessAllowed},
		{"public_other_user", true, "owner-1", "user-2", snippet.AccessAllowed},
		{"public_owner", true, "owner-1", "owner-1", snippet.AccessAllowed},
		{"private_anonymous", false, "owner-1", "", snippet.AccessNotFound},
		{"private_other_user", false, "owner-1", "user-2", snippet.AccessNotFound},
		{"private_owner", false, "owner-1", "owner-1", snippet.AccessAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &snippet.Snippet{OwnerID: tt.ownerID, IsPublic: tt.isPublic}
			assert.Equal(t, tt.want, snippet.ResolveReadAccess(s, tt.callerID))
		})
	}
}

/*
TestResolveWriteAccess verifies only the owner may write, regardless of
visibility, and that an empty caller never matches an empty owner.
*/
func TestResolveWriteAccess(t *testing.T) {
	tests := []struct {
		name     string
		isPublic bool
		ownerID  string
		callerID string
		want     snippet.Access
	}{
		{"owner_private", false, "owner-1", "owner-1", snippet.AccessAllowed},
		{"owner_public", true, "owner-1", "owner-1", snippet.AccessAllowed},
		{"other_user_public", true, "owner-1", "user-2", snippet.AccessNotFound},
		{"anonymous_public", true, "owner-1", "", snippet.AccessNotFound},
		{"empty_caller_empty_owner", false, "", "", snippet.AccessNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &snippet.Snippet{OwnerID: tt.ownerID, IsPublic: tt.isPublic}
			assert.Equal(t, tt.want, snippet.ResolveWriteAccess(s, tt.callerID))
		})
	}
}

/*
TestNormalizeTags verifies slugification, empty-entry dropping, and
order-preserving deduplication.
*/
func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"lowercases", []string{"Go", "SQL"}, []string{"go", "sql"}},
		{"trims_and_hyphenates", []string{"  error handling "}, []string{"error-handling"}},
		{"drops_empties", []string{"go", "", "  ", "sql"}, []string{"go", "sql"}},
		{"dedupes_preserving_order", []string{"Go", "sql", "go"}, []string{"go", "sql"}},
		{"deaccents", []string{"café"}, []string{"cafe"}},
		{"all_empty", []string{"", "  "}, []string{}},
		{"nil_input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, snippet.NormalizeTags(tt.in))
		})
	}
}
