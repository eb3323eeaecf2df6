package core

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Service is the asset-change authorization pipeline: it routes lifecycle
// events through discovered handler modules and the version-control backend,
// combining their verdicts before the host performs the file operation.
type Service struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper

	persistenceClient any
	repositoryFactory any
	configProvider    ConfigProvider
	optionsResolver   OptionsResolver

	registry       *HandlerRegistry
	versionControl VersionControl
	saveConfirmer  SaveConfirmer
	licenseChecker LicenseChecker
	notifier       PendingChangesNotifier
	preferences    Preferences

	statusCacheStore StatusCacheStore
	activityStore    ActivityStore
}

type ServiceDependencies struct {
	Logger            Logger
	LoggerProvider    LoggerProvider
	MetricsRecorder   MetricsRecorder
	ErrorFactory      ErrorFactory
	ErrorMapper       ErrorMapper
	PersistenceClient any
	RepositoryFactory any
	ConfigProvider    ConfigProvider
	OptionsResolver   OptionsResolver
	Registry          *HandlerRegistry
	VersionControl    VersionControl
	SaveConfirmer     SaveConfirmer
	LicenseChecker    LicenseChecker
	Notifier          PendingChangesNotifier
	Preferences       Preferences
	StatusCacheStore  StatusCacheStore
	ActivityStore     ActivityStore
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("assets", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("assets"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.registry == nil {
		builder.registry = NewHandlerRegistry(logger, builder.discoverers...)
	} else {
		for _, discoverer := range builder.discoverers {
			builder.registry.AddDiscoverer(discoverer)
		}
	}
	if builder.licenseChecker == nil {
		builder.licenseChecker = StaticLicenseChecker{Licensed: true}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if (builder.statusCacheStore == nil || builder.activityStore == nil) && builder.repositoryFactory != nil {
		if storeFactory, ok := builder.repositoryFactory.(RepositoryStoreFactory); ok {
			storeProvider, buildErr := storeFactory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			if storeProvider != nil {
				if builder.statusCacheStore == nil {
					builder.statusCacheStore = storeProvider.StatusCacheStore()
				}
				if builder.activityStore == nil {
					builder.activityStore = storeProvider.ActivityStore()
				}
			}
		}
	}

	service := &Service{
		config:            finalConfig,
		logger:            logger,
		loggerProvider:    provider,
		metricsRecorder:   builder.metricsRecorder,
		errorFactory:      builder.errorFactory,
		errorMapper:       builder.errorMapper,
		persistenceClient: builder.persistenceClient,
		repositoryFactory: builder.repositoryFactory,
		configProvider:    builder.configProvider,
		optionsResolver:   builder.optionsResolver,
		registry:          builder.registry,
		versionControl:    builder.versionControl,
		saveConfirmer:     builder.saveConfirmer,
		licenseChecker:    builder.licenseChecker,
		notifier:          builder.notifier,
		preferences:       builder.preferences,
		statusCacheStore:  builder.statusCacheStore,
		activityStore:     builder.activityStore,
	}
	if service.preferences == nil {
		service.preferences = configPreferences{cfg: finalConfig}
	}
	return service, nil
}

// Setup is the one-call constructor hosts use when they have no extra wiring
// beyond options.
func Setup(cfg Config, options ...Option) (*Service, error) {
	return NewService(cfg, options...)
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Registry() *HandlerRegistry {
	if s == nil {
		return nil
	}
	return s.registry
}

// ResetHandlerCache drops the discovery cache, forcing re-discovery on the
// next dispatch. Hosts call this on their process-wide cache reset.
func (s *Service) ResetHandlerCache() {
	if s == nil {
		return
	}
	s.registry.Reset()
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:            s.logger,
		LoggerProvider:    s.loggerProvider,
		MetricsRecorder:   s.metricsRecorder,
		ErrorFactory:      s.errorFactory,
		ErrorMapper:       s.errorMapper,
		PersistenceClient: s.persistenceClient,
		RepositoryFactory: s.repositoryFactory,
		ConfigProvider:    s.configProvider,
		OptionsResolver:   s.optionsResolver,
		Registry:          s.registry,
		VersionControl:    s.versionControl,
		SaveConfirmer:     s.saveConfirmer,
		LicenseChecker:    s.licenseChecker,
		Notifier:          s.notifier,
		Preferences:       s.preferences,
		StatusCacheStore:  s.statusCacheStore,
		ActivityStore:     s.activityStore,
	}
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	if mapped := s.errorMapper(err); mapped != nil {
		return mapped
	}
	return err
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper != nil {
		if mapped := mapper(err); mapped != nil {
			return mapped
		}
	}
	return err
}

// configPreferences exposes the resolved config snapshot through the
// Preferences contract when the host does not supply a live source.
type configPreferences struct {
	cfg Config
}

func (p configPreferences) PromptBeforeSaving() bool {
	return p.cfg.Save.PromptBeforeSaving
}

func (p configPreferences) OverwriteFailedCheckout() bool {
	return p.cfg.Save.OverwriteFailedCheckout
}

// StaticLicenseChecker answers every query from a fixed value. The default
// service wiring assumes a licensed process.
type StaticLicenseChecker struct {
	Licensed bool
}

func (c StaticLicenseChecker) HasTeamLicense() bool {
	return c.Licensed
}

func (s *Service) recordActivity(ctx context.Context, startedAt time.Time, event string, paths []string, outcome string, err error) {
	if s == nil || s.activityStore == nil {
		return
	}
	status := ActivityStatusSuccess
	message := ""
	if err != nil {
		status = ActivityStatusFailure
		message = err.Error()
	}
	entry := AssetActivityEntry{
		Event:      event,
		Paths:      copyPaths(paths),
		Outcome:    strings.TrimSpace(outcome),
		Status:     status,
		Error:      message,
		DurationMS: time.Since(startedAt).Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if recordErr := s.activityStore.Record(ctx, entry); recordErr != nil {
		s.logError(ctx, "activity record failed", map[string]any{
			"event": event,
			"error": recordErr.Error(),
		})
	}
}
