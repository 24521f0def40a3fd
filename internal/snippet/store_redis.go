// Copyright (c) 2026 SnipVault. All rights reserved.
// Author: dev@snipvault.io

package snippet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/snipvault/snipvault/internal/platform/constants"
	"github.com/snipvault/snipvault/pkg/pagination"
)

// RedisListCache implements ListCache with a generation-counter scheme.
//
// # Invalidation
//
// Every cached page key embeds the current value of a generation counter.
// Invalidation is a single INCR: old keys become unreachable instantly and
// expire on their own TTL. This avoids SCAN/DEL sweeps and is safe under
// concurrent writers.
//
// # Degradation
//
// All failures are logged and treated as cache misses. A dead Redis slows
// the public listing down; it never breaks it.
type RedisListCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisListCache creates a Redis-backed public listing cache.
func NewRedisListCache(client *redis.Client, logger *slog.Logger) *RedisListCache {
	return &RedisListCache{client: client, logger: logger}
}

// cachedPage is the serialized form of one public listing page.
type cachedPage struct {
	Snippets []Snippet `json:"snippets"`
	Total    int       `json:"total"`
}

// GetPublicPage returns a cached page of the public listing, or ok=false on
// any miss or failure.
func (cache *RedisListCache) GetPublicPage(context context.Context, params pagination.Params) ([]Snippet, int, bool) {
	key, err := cache.pageKey(context, params)
	if err != nil {
		cache.logger.Warn("snippet_cache_generation_read_failed", slog.Any("error", err))
		return nil, 0, false
	}

	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			cache.logger.Warn("snippet_cache_get_failed", slog.Any("error", err))
		}
		return nil, 0, false
	}

	var page cachedPage
	if err := json.Unmarshal(payload, &page); err != nil {
		cache.logger.Warn("snippet_cache_decode_failed", slog.Any("error", err))
		return nil, 0, false
	}

	return page.Snippets, page.Total, true
}

// SetPublicPage stores a page of the public listing under the current
// generation with a short TTL.
func (cache *RedisListCache) SetPublicPage(context context.Context, params pagination.Params, snippets []Snippet, total int) {
	key, err := cache.pageKey(context, params)
	if err != nil {
		cache.logger.Warn("snippet_cache_generation_read_failed", slog.Any("error", err))
		return
	}

	payload, err := json.Marshal(cachedPage{Snippets: snippets, Total: total})
	if err != nil {
		cache.logger.Warn("snippet_cache_encode_failed", slog.Any("error", err))
		return
	}

	if err := cache.client.Set(context, key, payload, constants.PublicListCacheTTL).Err(); err != nil {
		cache.logger.Warn("snippet_cache_set_failed", slog.Any("error", err))
	}
}

// InvalidateAll bumps the generation counter, orphaning every cached page.
func (cache *RedisListCache) InvalidateAll(context context.Context) {
	if err := cache.client.Incr(context, constants.RedisKeyPublicListGeneration).Err(); err != nil {
		cache.logger.Warn("snippet_cache_invalidate_failed", slog.Any("error", err))
	}
}

// pageKey builds the cache key for a page under the current generation.
func (cache *RedisListCache) pageKey(context context.Context, params pagination.Params) (string, error) {
	generation, err := cache.client.Get(context, constants.RedisKeyPublicListGeneration).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}

	return fmt.Sprintf("%sg%d:p%d:l%d", constants.RedisPrefixPublicSnippets, generation, params.Page, params.Limit), nil
}
