package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix = "post:%d"
	postsListKey  = "posts:list"
)

const (
	// PostTTL bounds staleness of a cached post between invalidations.
	PostTTL = 30 * time.Minute
	// ListTTL is short because the list is also explicitly invalidated on writes.
	ListTTL = 2 * time.Minute
)

// PostKey returns the cache key for a single post.
func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// PostsListKey returns the cache key for the full post listing.
func PostsListKey() string {
	return postsListKey
}

// Invalidate removes a key from the cache. No-op when Redis is unavailable.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost removes a post's cache entry.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidatePostsList removes the cached post listing.
func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, postsListKey)
}
