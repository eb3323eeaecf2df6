package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

// HandlerModule is an externally supplied code unit that may expose one or
// more event callbacks, either through the typed capability interfaces below
// or through CallbackExporter. Modules are referenced, never owned.
type HandlerModule interface {
	Name() string
}

// CreateHandler observes asset creation. A returned error is treated as a
// fault in the handler itself and aborts the dispatch.
type CreateHandler interface {
	OnWillCreateAsset(path string) error
}

// SaveHandler may replace the pending save set wholesale. A nil return keeps
// the previous set; handlers run sequentially and each sees the previous
// handler's output.
type SaveHandler interface {
	OnWillSaveAssets(paths []string) ([]string, error)
}

type MoveHandler interface {
	OnWillMoveAsset(from, to string) (MoveResult, error)
}

type DeleteHandler interface {
	OnWillDeleteAsset(path string, options RemoveOptions) (DeleteResult, error)
}

type StatusHandler interface {
	OnStatusUpdated()
}

// EditGuard vetoes editability for paths the version-control backend would
// otherwise allow. The first guard returning false wins and its reason is
// carried to the caller.
type EditGuard interface {
	IsOpenForEdit(path string) (bool, string)
}

// CallbackExporter lets a module expose loosely typed callbacks keyed by
// event name. Each candidate is shape-checked by the signature validator
// before it can enter a dispatch list.
type CallbackExporter interface {
	Callbacks() map[string]any
}

// Discoverer is the convention-based lookup primitive handing modules to the
// registry. Implementations must be idempotent and side-effect free.
type Discoverer interface {
	Modules() []HandlerModule
}

// VersionControl is the external backend contract. All methods are blocking;
// retry policy belongs to the implementation, not the pipeline.
type VersionControl interface {
	Enabled() bool
	// MakeEditable attempts checkout. When allSucceeded is false, editable
	// reports the per-path result aligned with paths, or nil when the backend
	// cannot attribute the failure (every path is then treated as failed).
	MakeEditable(ctx context.Context, paths []string) (allSucceeded bool, editable []bool, err error)
	SetFileMode(ctx context.Context, paths []string, mode FileMode) error
	IsOpenForEdit(ctx context.Context, path string, options StatusQueryOptions) (bool, string, error)
	// FilterNotEditable answers one batched status query, returning the
	// non-editable subset of paths in input order.
	FilterNotEditable(ctx context.Context, paths []string, options StatusQueryOptions) ([]string, error)
	OnWillMoveAsset(ctx context.Context, from, to string) (MoveResult, error)
	OnWillDeleteAsset(ctx context.Context, path string, options RemoveOptions) (DeleteResult, error)
}

// SaveConfirmer narrows a save set through user confirmation. The returned
// slice must be a subset of paths; a pass-through implementation is valid.
type SaveConfirmer interface {
	Confirm(ctx context.Context, paths []string) ([]string, error)
}

// LicenseChecker reports the process license tier. Read-only to the pipeline.
type LicenseChecker interface {
	HasTeamLicense() bool
}

// PendingChangesNotifier is poked before status-updated fan-out so a host UI
// can refresh its pending-changes view.
type PendingChangesNotifier interface {
	NotifyStatusChanged(ctx context.Context) error
}

// Preferences are the two host toggles the pipeline consumes, read-only.
type Preferences interface {
	PromptBeforeSaving() bool
	OverwriteFailedCheckout() bool
}

// StatusCacheStore persists version-control status answers so cached status
// queries survive the process.
type StatusCacheStore interface {
	Get(ctx context.Context, path string) (StatusEntry, bool, error)
	Upsert(ctx context.Context, entry StatusEntry) error
	DeleteStale(ctx context.Context, olderThan time.Time) error
}

// ActivityStore records and lists the dispatch audit trail.
type ActivityStore interface {
	Record(ctx context.Context, entry AssetActivityEntry) error
	List(ctx context.Context, filter AssetActivityFilter) (AssetActivityPage, error)
}

// StoreProvider hands built stores back to the service during setup.
type StoreProvider interface {
	StatusCacheStore() StatusCacheStore
	ActivityStore() ActivityStore
}

// RepositoryStoreFactory builds stores from a persistence client during
// service construction.
type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}
