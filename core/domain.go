package core

import (
	"path"
	"strings"
	"time"
)

// MoveResult is a combinable flag set describing the outcome of a move
// dispatch. The zero value means no handler (and no backend) claimed the move.
type MoveResult uint8

const (
	MoveDidNotMove MoveResult = 0
	MoveFailed     MoveResult = 1 << 0
	MoveDidMove    MoveResult = 1 << 1
)

// Combine unions two results. Union is associative and commutative, so the
// order handlers report in never changes the final value, and a flag set by
// one handler cannot be cleared by a later one.
func (r MoveResult) Combine(other MoveResult) MoveResult {
	return r | other
}

func (r MoveResult) Has(flag MoveResult) bool {
	if flag == MoveDidNotMove {
		return r == MoveDidNotMove
	}
	return r&flag == flag
}

func (r MoveResult) String() string {
	if r == MoveDidNotMove {
		return "did_not_move"
	}
	parts := make([]string, 0, 2)
	if r.Has(MoveFailed) {
		parts = append(parts, "failed_move")
	}
	if r.Has(MoveDidMove) {
		parts = append(parts, "did_move")
	}
	return strings.Join(parts, "|")
}

// DeleteResult is the delete counterpart of MoveResult.
type DeleteResult uint8

const (
	DeleteDidNotDelete  DeleteResult = 0
	DeleteFailed        DeleteResult = 1 << 0
	DeleteDidDelete     DeleteResult = 1 << 1
	DeleteChangedAssets DeleteResult = 1 << 2
)

func (r DeleteResult) Combine(other DeleteResult) DeleteResult {
	return r | other
}

func (r DeleteResult) Has(flag DeleteResult) bool {
	if flag == DeleteDidNotDelete {
		return r == DeleteDidNotDelete
	}
	return r&flag == flag
}

func (r DeleteResult) String() string {
	if r == DeleteDidNotDelete {
		return "did_not_delete"
	}
	parts := make([]string, 0, 3)
	if r.Has(DeleteFailed) {
		parts = append(parts, "failed_delete")
	}
	if r.Has(DeleteDidDelete) {
		parts = append(parts, "did_delete")
	}
	if r.Has(DeleteChangedAssets) {
		parts = append(parts, "deleted_assets_changed")
	}
	return strings.Join(parts, "|")
}

// RemoveOptions mirrors the host's delete intent for delete handlers and the
// version-control delete hook.
type RemoveOptions int

const (
	RemoveMoveToTrash RemoveOptions = iota
	RemoveDeleteOutright
)

// StatusQueryOptions selects how fresh a version-control status answer has to
// be. Cached is the batch default; forced queries bypass and refresh the cache.
type StatusQueryOptions int

const (
	StatusUseCached StatusQueryOptions = iota
	StatusForceUpdate
)

// FileMode is the file-mode hint passed to the version-control backend when
// the overwrite-failed-checkout preference forces a local write.
type FileMode int

const (
	FileModeBinary FileMode = iota
	FileModeText
)

// SaveOutcome partitions a save request after confirmation, handler fan-out,
// and checkout. Saved and Reverted are disjoint subsets of the input set.
type SaveOutcome struct {
	Saved    []string
	Reverted []string
}

// EditabilityVerdict is the per-path answer of the editability resolver.
type EditabilityVerdict struct {
	Path     string
	Editable bool
	Reason   string
}

// StatusEntry is one cached version-control status answer.
type StatusEntry struct {
	Path      string
	Editable  bool
	Reason    string
	CheckedAt time.Time
}

type ActivityStatus string

const (
	ActivityStatusSuccess ActivityStatus = "success"
	ActivityStatusFailure ActivityStatus = "failure"
)

// AssetActivityEntry is one audit record of a dispatch through the pipeline.
type AssetActivityEntry struct {
	ID         string
	Event      string
	Paths      []string
	Outcome    string
	Status     ActivityStatus
	Error      string
	DurationMS int64
	Metadata   map[string]any
	CreatedAt  time.Time
}

type AssetActivityFilter struct {
	Event   string
	Status  ActivityStatus
	From    *time.Time
	To      *time.Time
	Page    int
	PerPage int
}

type AssetActivityPage struct {
	Items      []AssetActivityEntry
	Page       int
	PerPage    int
	Total      int
	HasNext    bool
	NextCursor string
}

var sceneExtensions = map[string]struct{}{
	".unity":  {},
	".prefab": {},
}

// isSceneOrPrefab reports whether path holds serialized scene state, which
// the save pipeline never narrows through user confirmation when the host
// explicitly asked for that single asset.
func isSceneOrPrefab(assetPath string) bool {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(assetPath)))
	_, ok := sceneExtensions[ext]
	return ok
}

// intersectPaths keeps the members of candidates that appear in allowed,
// preserving candidate order and dropping duplicates.
func intersectPaths(candidates []string, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, p := range allowed {
		allowedSet[p] = struct{}{}
	}
	out := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, p := range candidates {
		if _, ok := allowedSet[p]; !ok {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// subtractPaths returns the members of input not present in removed,
// preserving input order.
func subtractPaths(input []string, removed []string) []string {
	removedSet := make(map[string]struct{}, len(removed))
	for _, p := range removed {
		removedSet[p] = struct{}{}
	}
	out := make([]string, 0, len(input))
	for _, p := range input {
		if _, ok := removedSet[p]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

func copyPaths(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	return append([]string(nil), in...)
}
