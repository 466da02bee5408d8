// Copyright (c) 2026 Plume Media SRL <contact@plume.media>
// All rights reserved. See LICENSE for details.

// tree.go provides a Valkey-backed cache of the assembled category tree.
// The tree changes rarely and is read on every public listing, so the
// JSON-serialized tree is kept in Valkey and dropped on any category
// mutation.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"plume/internal/models"
)

const (
	// treeKey is the Valkey key holding the serialized tree.
	treeKey = "taxonomy:tree"

	// DefaultTreeTTL is how long a cached tree survives without
	// invalidation.
	DefaultTreeTTL = 10 * time.Minute
)

// TreeCache caches the category tree in Valkey.
type TreeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTreeCache creates a tree cache backed by the given Valkey client.
func NewTreeCache(client *redis.Client, ttl time.Duration) *TreeCache {
	if ttl == 0 {
		ttl = DefaultTreeTTL
	}
	return &TreeCache{client: client, ttl: ttl}
}

// GetTree retrieves the cached tree. Reports false on miss or any error;
// cache trouble never fails a read.
func (tc *TreeCache) GetTree(ctx context.Context) ([]*models.Category, bool) {
	val, err := tc.client.Get(ctx, treeKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("tree cache get error", "error", err)
		return nil, false
	}

	var tree []*models.Category
	if err := json.Unmarshal(val, &tree); err != nil {
		slog.Warn("tree cache decode error", "error", err)
		return nil, false
	}
	slog.Debug("tree cache hit")
	return tree, true
}

// SetTree stores the assembled tree with the configured TTL.
func (tc *TreeCache) SetTree(ctx context.Context, tree []*models.Category) {
	val, err := json.Marshal(tree)
	if err != nil {
		slog.Warn("tree cache encode error", "error", err)
		return
	}
	if err := tc.client.Set(ctx, treeKey, val, tc.ttl).Err(); err != nil {
		slog.Warn("tree cache set error", "error", err)
	}
}

// Invalidate drops the cached tree after a category mutation.
func (tc *TreeCache) Invalidate(ctx context.Context) {
	if err := tc.client.Del(ctx, treeKey).Err(); err != nil {
		slog.Warn("tree cache invalidate error", "error", err)
	}
	slog.Debug("tree cache invalidated")
}
