package core

import (
	"strings"
	"sync"
)

type CreateBinding struct {
	Module string
	Fn     func(path string) error
}

type SaveBinding struct {
	Module string
	Fn     func(paths []string) ([]string, error)
}

type MoveBinding struct {
	Module string
	Fn     func(from, to string) (MoveResult, error)
}

type DeleteBinding struct {
	Module string
	Fn     func(path string, options RemoveOptions) (DeleteResult, error)
}

type StatusBinding struct {
	Module string
	Fn     func()
}

type GuardBinding struct {
	Module string
	Fn     func(path string) (bool, string)
}

// HandlerRegistry discovers handler modules exactly once and caches a
// per-event list of validated bindings. Discovery order is the discoverer
// registration order, then module slice order, so repeated resolutions return
// the identical sequence. The first build is guarded so concurrent callers
// only ever observe a completed cache, never a partial one.
type HandlerRegistry struct {
	mu          sync.Mutex
	logger      Logger
	discoverers []Discoverer
	built       bool

	create []CreateBinding
	save   []SaveBinding
	move   []MoveBinding
	del    []DeleteBinding
	status []StatusBinding
	guards []GuardBinding
}

func NewHandlerRegistry(logger Logger, discoverers ...Discoverer) *HandlerRegistry {
	registry := &HandlerRegistry{logger: logger}
	for _, discoverer := range discoverers {
		if discoverer == nil {
			continue
		}
		registry.discoverers = append(registry.discoverers, discoverer)
	}
	return registry
}

// AddDiscoverer registers another module source. Adding after the first
// resolution has no effect until Reset.
func (r *HandlerRegistry) AddDiscoverer(discoverer Discoverer) {
	if r == nil || discoverer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discoverers = append(r.discoverers, discoverer)
}

// Reset drops the binding cache so the next resolution re-discovers. This is
// the process-wide cache invalidation entry point.
func (r *HandlerRegistry) Reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.built = false
	r.create = nil
	r.save = nil
	r.move = nil
	r.del = nil
	r.status = nil
	r.guards = nil
}

func (r *HandlerRegistry) CreateHandlers() []CreateBinding {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureBuilt()
	return r.create
}

func (r *HandlerRegistry) SaveHandlers() []SaveBinding {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureBuilt()
	return r.save
}

func (r *HandlerRegistry) MoveHandlers() []MoveBinding {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureBuilt()
	return r.move
}

func (r *HandlerRegistry) DeleteHandlers() []DeleteBinding {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureBuilt()
	return r.del
}

func (r *HandlerRegistry) StatusHandlers() []StatusBinding {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureBuilt()
	return r.status
}

func (r *HandlerRegistry) EditGuards() []GuardBinding {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureBuilt()
	return r.guards
}

// HasHandlers reports whether any binding exists for the event. Used by the
// license gate's fast path: events with no handlers never pay the check.
func (r *HandlerRegistry) HasHandlers(event string) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureBuilt()
	switch event {
	case EventWillCreateAsset:
		return len(r.create) > 0
	case EventWillSaveAssets:
		return len(r.save) > 0
	case EventWillMoveAsset:
		return len(r.move) > 0
	case EventWillDeleteAsset:
		return len(r.del) > 0
	case EventStatusUpdated:
		return len(r.status) > 0
	case EventIsOpenForEdit:
		return len(r.guards) > 0
	default:
		return false
	}
}

// ensureBuilt runs discovery at most once per cache generation. Callers hold
// r.mu.
func (r *HandlerRegistry) ensureBuilt() {
	if r.built {
		return
	}
	for _, discoverer := range r.discoverers {
		for _, module := range discoverer.Modules() {
			if module == nil {
				continue
			}
			r.bindModule(module)
		}
	}
	r.built = true
}

// bindModule collects one binding per (module, event). Typed capability
// interfaces win over exported callbacks for the same event; a module lacking
// a callback is silently skipped, one failing validation is skipped with a
// logged warning and never aborts discovery for other modules.
func (r *HandlerRegistry) bindModule(module HandlerModule) {
	name := moduleName(module)
	bound := map[string]struct{}{}

	if handler, ok := module.(CreateHandler); ok {
		r.create = append(r.create, CreateBinding{Module: name, Fn: handler.OnWillCreateAsset})
		bound[EventWillCreateAsset] = struct{}{}
	}
	if handler, ok := module.(SaveHandler); ok {
		r.save = append(r.save, SaveBinding{Module: name, Fn: handler.OnWillSaveAssets})
		bound[EventWillSaveAssets] = struct{}{}
	}
	if handler, ok := module.(MoveHandler); ok {
		r.move = append(r.move, MoveBinding{Module: name, Fn: handler.OnWillMoveAsset})
		bound[EventWillMoveAsset] = struct{}{}
	}
	if handler, ok := module.(DeleteHandler); ok {
		r.del = append(r.del, DeleteBinding{Module: name, Fn: handler.OnWillDeleteAsset})
		bound[EventWillDeleteAsset] = struct{}{}
	}
	if handler, ok := module.(StatusHandler); ok {
		r.status = append(r.status, StatusBinding{Module: name, Fn: handler.OnStatusUpdated})
		bound[EventStatusUpdated] = struct{}{}
	}
	if guard, ok := module.(EditGuard); ok {
		r.guards = append(r.guards, GuardBinding{Module: name, Fn: guard.IsOpenForEdit})
		bound[EventIsOpenForEdit] = struct{}{}
	}

	exporter, ok := module.(CallbackExporter)
	if !ok {
		return
	}
	callbacks := exporter.Callbacks()
	for _, event := range orderedEvents {
		candidate, exposed := callbacks[event]
		if !exposed {
			continue
		}
		if _, already := bound[event]; already {
			continue
		}
		spec := eventSpecs[event]
		if err := ValidateCallback(spec, name, candidate); err != nil {
			r.warn("core: skipping callback with invalid signature",
				"module", name, "event", event, "error", err.Error())
			continue
		}
		r.bindCallback(name, event, candidate)
	}
}

// orderedEvents fixes the event scan order so discovery stays deterministic
// regardless of callback map iteration.
var orderedEvents = []string{
	EventWillCreateAsset,
	EventWillSaveAssets,
	EventWillMoveAsset,
	EventWillDeleteAsset,
	EventStatusUpdated,
	EventIsOpenForEdit,
}

// bindCallback assumes candidate already passed validation, so the type
// assertions below cannot fail.
func (r *HandlerRegistry) bindCallback(module string, event string, candidate any) {
	switch event {
	case EventWillCreateAsset:
		r.create = append(r.create, CreateBinding{Module: module, Fn: candidate.(func(string) error)})
	case EventWillSaveAssets:
		r.save = append(r.save, SaveBinding{Module: module, Fn: candidate.(func([]string) ([]string, error))})
	case EventWillMoveAsset:
		r.move = append(r.move, MoveBinding{Module: module, Fn: candidate.(func(string, string) (MoveResult, error))})
	case EventWillDeleteAsset:
		r.del = append(r.del, DeleteBinding{Module: module, Fn: candidate.(func(string, RemoveOptions) (DeleteResult, error))})
	case EventStatusUpdated:
		r.status = append(r.status, StatusBinding{Module: module, Fn: candidate.(func())})
	case EventIsOpenForEdit:
		r.guards = append(r.guards, GuardBinding{Module: module, Fn: candidate.(func(string) (bool, string))})
	}
}

func (r *HandlerRegistry) warn(message string, args ...any) {
	if r == nil || r.logger == nil {
		return
	}
	r.logger.Warn(message, args...)
}

func moduleName(module HandlerModule) string {
	if module == nil {
		return "unknown"
	}
	name := strings.TrimSpace(module.Name())
	if name == "" {
		return "unnamed"
	}
	return name
}

// StaticDiscoverer hands a fixed module slice to the registry, for hosts
// that know their modules at startup.
type StaticDiscoverer struct {
	modules []HandlerModule
}

func NewStaticDiscoverer(modules ...HandlerModule) *StaticDiscoverer {
	return &StaticDiscoverer{modules: append([]HandlerModule(nil), modules...)}
}

func (d *StaticDiscoverer) Modules() []HandlerModule {
	if d == nil {
		return nil
	}
	return append([]HandlerModule(nil), d.modules...)
}
