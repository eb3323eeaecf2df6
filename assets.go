package assets

import "github.com/goliatone/go-assets/core"

type Config = core.Config

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies

type HandlerModule = core.HandlerModule

type Discoverer = core.Discoverer

type HandlerRegistry = core.HandlerRegistry

type VersionControl = core.VersionControl
type SaveConfirmer = core.SaveConfirmer
type LicenseChecker = core.LicenseChecker
type PendingChangesNotifier = core.PendingChangesNotifier
type Preferences = core.Preferences
type StatusCacheStore = core.StatusCacheStore
type ActivityStore = core.ActivityStore

type MoveResult = core.MoveResult
type DeleteResult = core.DeleteResult
type RemoveOptions = core.RemoveOptions
type StatusQueryOptions = core.StatusQueryOptions
type FileMode = core.FileMode
type SaveOutcome = core.SaveOutcome
type EditabilityVerdict = core.EditabilityVerdict
type AssetActivityEntry = core.AssetActivityEntry
type AssetActivityFilter = core.AssetActivityFilter
type AssetActivityPage = core.AssetActivityPage

var (
	WithLogger                 = core.WithLogger
	WithLoggerProvider         = core.WithLoggerProvider
	WithMetricsRecorder        = core.WithMetricsRecorder
	WithErrorFactory           = core.WithErrorFactory
	WithErrorMapper            = core.WithErrorMapper
	WithPersistenceClient      = core.WithPersistenceClient
	WithRepositoryFactory      = core.WithRepositoryFactory
	WithConfigProvider         = core.WithConfigProvider
	WithOptionsResolver        = core.WithOptionsResolver
	WithHandlerRegistry        = core.WithHandlerRegistry
	WithDiscoverer             = core.WithDiscoverer
	WithVersionControl         = core.WithVersionControl
	WithSaveConfirmer          = core.WithSaveConfirmer
	WithLicenseChecker         = core.WithLicenseChecker
	WithPendingChangesNotifier = core.WithPendingChangesNotifier
	WithPreferences            = core.WithPreferences
	WithStatusCacheStore       = core.WithStatusCacheStore
	WithActivityStore          = core.WithActivityStore
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return core.Setup(cfg, opts...)
}
