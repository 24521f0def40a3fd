// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

// Package snippet implements the core domain of SnipVault: code snippets
// with ownership and visibility rules.
//
// # Visibility Model
//
// Every snippet is either public or private. Public snippets are readable by
// anyone, including anonymous callers. Private snippets are readable and
// writable only by their owner, and to everyone else they do not exist:
// access denial is deliberately indistinguishable from absence.
package snippet

import (
	"time"

	"github.com/snipvault/snipvault/pkg/slice"
	"github.com/snipvault/snipvault/pkg/slug"
)

// # Entity

// Snippet represents a stored piece of code with its metadata.
type Snippet struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	Language    string    `json:"language"`
	Tags        []string  `json:"tags"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Field Limits

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// # Access Resolution

// Access is the outcome of an authorization decision for a snippet.
type Access int

const (
	// AccessAllowed means the caller may perform the operation.
	AccessAllowed Access = iota

	// AccessNotFound means the snippet must be presented as nonexistent,
	// whether it is actually absent or merely hidden from the caller.
	AccessNotFound
)

// ResolveReadAccess decides whether callerID may read the snippet.
//
// Public snippets are readable by anyone; callerID is empty for anonymous
// callers. Private snippets are readable only by their owner.
func ResolveReadAccess(s *Snippet, callerID string) Access {
	if s.IsPublic {
		return AccessAllowed
	}
	if callerID != "" && callerID == s.OwnerID {
		return AccessAllowed
	}
	return AccessNotFound
}

// ResolveWriteAccess decides whether callerID may modify or delete the
// snippet. Only the owner may write, regardless of visibility.
func ResolveWriteAccess(s *Snippet, callerID string) Access {
	if callerID != "" && callerID == s.OwnerID {
		return AccessAllowed
	}
	return AccessNotFound
}

// # Tag Normalization

// NormalizeTags canonicalizes a raw tag list: each tag is slugified
// (lowercased, deaccented, hyphenated), empties are dropped, and duplicates
// collapse while preserving first-seen order. Storage and search both
// operate on this canonical form so matching is exact.
func NormalizeTags(raw []string) []string {
	normalized := slice.Map(raw, slug.From)

	seen := make(map[string]struct{}, len(normalized))
	unique := slice.Filter(normalized, func(tag string) bool {
		if tag == "" {
			return false
		}
		if _, dup := seen[tag]; dup {
			return false
		}
		seen[tag] = struct{}{}
		return true
	})

	// Never nil, so an untagged snippet serializes as [] instead of null.
	if unique == nil {
		return []string{}
	}
	return unique
}
