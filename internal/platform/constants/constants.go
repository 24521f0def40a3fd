// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, token lifetimes, and cross-cutting keys that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Authentication: Token TTL and header scheme.
  - Caching: Redis key taxonomy.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "snipvault-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "snipvault.io"

	// AccessTokenTTL is the fixed lifetime of an access token. There is no
	// refresh mechanism: after expiry the client must authenticate again.
	AccessTokenTTL = 1 * time.Hour

	// HeaderAuthorization is the header carrying the bearer token.
	HeaderAuthorization = "Authorization"

	// BearerScheme is the literal prefix required before the token.
	BearerScheme = "Bearer "
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldToken   = "token"
	FieldUser    = "user"
)

// # Database Schemas

const (
	SchemaCore  = "core"
	SchemaUsers = "users"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixPublicSnippets namespaces the cached public snippet listing.
	RedisPrefixPublicSnippets = "snippet:public:"

	// RedisKeyPublicListGeneration is the counter bumped on every snippet
	// write to invalidate all cached listing pages at once.
	RedisKeyPublicListGeneration = "snippet:public:generation"

	// PublicListCacheTTL bounds staleness of cached listing pages even when
	// invalidation is missed.
	PublicListCacheTTL = 60 * time.Second
)
