package core

import (
	"context"
	"strings"
	"time"
)

// IsOpenForEdit resolves whether a single path may currently be modified.
// Ordering is fixed: empty paths are editable with no side effects, read-only
// locations reject before any collaborator is touched, the version-control
// answer is consulted next, and validated edit guards run last in registry
// order with the first false verdict winning and carrying its reason.
func (s *Service) IsOpenForEdit(ctx context.Context, path string, options StatusQueryOptions) (bool, string, error) {
	if s == nil {
		return true, "", nil
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return true, "", nil
	}
	if s.isReadOnlyLocation(path) {
		return false, readOnlyLocationReason, nil
	}

	editable, reason, err := s.versionControlStatus(ctx, path, options)
	if err != nil {
		return false, "", s.mapError(err)
	}
	if !editable {
		return false, reason, nil
	}

	return s.runEditGuards(path)
}

// FilterNotEditable is the batch form. It returns a fresh non-editable list,
// skipping empty entries entirely, and answers the version-control portion
// with a single batched query instead of one round-trip per path. The result
// is read-only rejections, then backend rejections, then guard rejections,
// each partition in input order and free of duplicates.
func (s *Service) FilterNotEditable(ctx context.Context, paths []string, options StatusQueryOptions) ([]string, error) {
	notEditable := []string{}
	if s == nil {
		return notEditable, nil
	}

	needsQuery := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		if s.isReadOnlyLocation(path) {
			notEditable = append(notEditable, path)
			continue
		}
		needsQuery = append(needsQuery, path)
	}
	if len(needsQuery) == 0 {
		return notEditable, nil
	}

	rejected := map[string]struct{}{}
	if s.versionControl != nil && s.versionControl.Enabled() {
		vcRejected, err := s.versionControl.FilterNotEditable(ctx, needsQuery, options)
		if err != nil {
			return nil, s.mapError(err)
		}
		for _, path := range vcRejected {
			if _, dup := rejected[path]; dup {
				continue
			}
			rejected[path] = struct{}{}
			notEditable = append(notEditable, path)
		}
	}

	for _, path := range needsQuery {
		if _, already := rejected[path]; already {
			continue
		}
		editable, _, err := s.runEditGuards(path)
		if err != nil {
			return nil, err
		}
		if !editable {
			notEditable = append(notEditable, path)
		}
	}
	return notEditable, nil
}

const readOnlyLocationReason = "path is in a read-only location"

func (s *Service) isReadOnlyLocation(path string) bool {
	if s == nil {
		return false
	}
	normalized := strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "./")
	for _, root := range s.config.Paths.ReadOnlyRoots {
		root = strings.TrimSuffix(strings.TrimSpace(root), "/")
		if root == "" {
			continue
		}
		if normalized == root || strings.HasPrefix(normalized, root+"/") {
			return true
		}
	}
	return false
}

// versionControlStatus answers one path's status, honoring the cached store
// when the caller allows it and refreshing the cache after a live query.
func (s *Service) versionControlStatus(ctx context.Context, path string, options StatusQueryOptions) (bool, string, error) {
	if s.versionControl == nil || !s.versionControl.Enabled() {
		return true, "", nil
	}

	ttl := time.Duration(s.config.Status.CacheTTLSeconds) * time.Second
	if options == StatusUseCached && s.statusCacheStore != nil && ttl > 0 {
		entry, found, err := s.statusCacheStore.Get(ctx, path)
		if err != nil {
			s.logError(ctx, "status cache read failed", map[string]any{
				"path":  path,
				"error": err.Error(),
			})
		} else if found && time.Since(entry.CheckedAt) < ttl {
			return entry.Editable, entry.Reason, nil
		}
	}

	editable, reason, err := s.versionControl.IsOpenForEdit(ctx, path, options)
	if err != nil {
		return false, "", err
	}
	if s.statusCacheStore != nil && ttl > 0 {
		entry := StatusEntry{
			Path:      path,
			Editable:  editable,
			Reason:    reason,
			CheckedAt: time.Now().UTC(),
		}
		if cacheErr := s.statusCacheStore.Upsert(ctx, entry); cacheErr != nil {
			s.logError(ctx, "status cache write failed", map[string]any{
				"path":  path,
				"error": cacheErr.Error(),
			})
		}
	}
	return editable, reason, nil
}

// runEditGuards fans the path out to validated guards in registry order.
// An unlicensed process skips guard fan-out and keeps the neutral editable
// verdict, since the guard contract carries no license semantics.
func (s *Service) runEditGuards(path string) (bool, string, error) {
	guards := s.registry.EditGuards()
	if len(guards) == 0 {
		return true, "", nil
	}
	if s.licenseChecker != nil && !s.licenseChecker.HasTeamLicense() {
		s.logWithLevel(nil, "warn", "skipping edit guards without a team license", map[string]any{
			"path": path,
		})
		return true, "", nil
	}
	for _, guard := range guards {
		editable, reason := guard.Fn(path)
		if !editable {
			return false, reason, nil
		}
	}
	return true, "", nil
}
