package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-assets/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const statusCacheKeyPrefix = "go-assets::status_cache::v1"

// statusCacheLookup carries the found flag through the cache layer so a
// confirmed miss in the backing store is cached too.
type statusCacheLookup struct {
	Entry core.StatusEntry
	Found bool
}

// CachedStatusCacheStore fronts a StatusCacheStore with a shared cache so
// repeated editability checks avoid hitting the database.
type CachedStatusCacheStore struct {
	base  core.StatusCacheStore
	cache repositorycache.CacheService
}

func NewCachedStatusCacheStore(
	base core.StatusCacheStore,
	cacheService repositorycache.CacheService,
) (*CachedStatusCacheStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base status cache store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: status cache service is required")
	}
	return &CachedStatusCacheStore{base: base, cache: cacheService}, nil
}

// StatusCacheKey returns the deterministic cache key contract for status
// reads: go-assets::status_cache::v1::<path> with the path URL-path escaped.
func StatusCacheKey(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("sqlstore: path is required")
	}
	return strings.Join([]string{statusCacheKeyPrefix, url.PathEscape(path)}, "::"), nil
}

func (s *CachedStatusCacheStore) Get(ctx context.Context, path string) (core.StatusEntry, bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.StatusEntry{}, false, fmt.Errorf("sqlstore: cached status cache store is not configured")
	}
	cacheKey, err := StatusCacheKey(path)
	if err != nil {
		return core.StatusEntry{}, false, err
	}

	lookup, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (statusCacheLookup, error) {
		entry, found, fetchErr := s.base.Get(ctx, path)
		if fetchErr != nil {
			return statusCacheLookup{}, fetchErr
		}
		return statusCacheLookup{Entry: entry, Found: found}, nil
	})
	if err != nil {
		return core.StatusEntry{}, false, err
	}
	return lookup.Entry, lookup.Found, nil
}

func (s *CachedStatusCacheStore) Upsert(ctx context.Context, entry core.StatusEntry) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached status cache store is not configured")
	}
	if err := s.base.Upsert(ctx, entry); err != nil {
		return err
	}
	cacheKey, err := StatusCacheKey(entry.Path)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

// DeleteStale drops aged rows from the backing store. Cache entries for the
// dropped paths are left to expire through the cache's own TTL.
func (s *CachedStatusCacheStore) DeleteStale(ctx context.Context, olderThan time.Time) error {
	if s == nil || s.base == nil {
		return fmt.Errorf("sqlstore: cached status cache store is not configured")
	}
	return s.base.DeleteStale(ctx, olderThan)
}

var _ core.StatusCacheStore = (*CachedStatusCacheStore)(nil)
