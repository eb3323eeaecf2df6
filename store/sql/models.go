package sqlstore

import (
	"strings"
	"time"

	"github.com/goliatone/go-assets/core"
	"github.com/uptrace/bun"
)

type statusCacheRecord struct {
	bun.BaseModel `bun:"table:asset_status_cache,alias:asc"`

	ID        string    `bun:"id,pk"`
	Path      string    `bun:"path,notnull"`
	Editable  bool      `bun:"editable,notnull"`
	Reason    string    `bun:"reason"`
	CheckedAt time.Time `bun:"checked_at,nullzero,notnull,default:current_timestamp"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (r *statusCacheRecord) toDomain() core.StatusEntry {
	if r == nil {
		return core.StatusEntry{}
	}
	return core.StatusEntry{
		Path:      r.Path,
		Editable:  r.Editable,
		Reason:    r.Reason,
		CheckedAt: r.CheckedAt,
	}
}

type assetActivityRecord struct {
	bun.BaseModel `bun:"table:asset_activity,alias:aa"`

	ID         string         `bun:"id,pk"`
	Event      string         `bun:"event,notnull"`
	Paths      []string       `bun:"paths,type:jsonb,notnull"`
	Outcome    string         `bun:"outcome"`
	Status     string         `bun:"status,notnull"`
	Error      string         `bun:"error"`
	DurationMS int64          `bun:"duration_ms,notnull"`
	Metadata   map[string]any `bun:"metadata,type:jsonb,notnull"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func newAssetActivityRecord(entry core.AssetActivityEntry) *assetActivityRecord {
	return &assetActivityRecord{
		ID:         strings.TrimSpace(entry.ID),
		Event:      strings.TrimSpace(entry.Event),
		Paths:      copyStringSlice(entry.Paths),
		Outcome:    entry.Outcome,
		Status:     string(entry.Status),
		Error:      entry.Error,
		DurationMS: entry.DurationMS,
		Metadata:   copyAnyMap(entry.Metadata),
		CreatedAt:  entry.CreatedAt,
	}
}

func (r *assetActivityRecord) toDomain() core.AssetActivityEntry {
	if r == nil {
		return core.AssetActivityEntry{}
	}
	return core.AssetActivityEntry{
		ID:         r.ID,
		Event:      r.Event,
		Paths:      copyStringSlice(r.Paths),
		Outcome:    r.Outcome,
		Status:     core.ActivityStatus(r.Status),
		Error:      r.Error,
		DurationMS: r.DurationMS,
		Metadata:   copyAnyMap(r.Metadata),
		CreatedAt:  r.CreatedAt,
	}
}

func copyStringSlice(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyAnyMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
