package assets

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-assets/core"
)

// HandlerPack is a named batch of handler modules an extension contributes to
// the pipeline.
type HandlerPack struct {
	Name    string
	Modules []core.HandlerModule
}

type CommandQueryBundleFactory func(service CommandQueryService) (any, error)

// ExtensionHooks is the registration surface host plugins use before the
// service is wired: handler packs feed discovery, bundles let extensions hang
// their own command/query sets off the facade.
type ExtensionHooks struct {
	mu sync.RWMutex

	handlerPacks map[string]HandlerPack
	bundles      map[string]CommandQueryBundleFactory
}

func NewExtensionHooks() *ExtensionHooks {
	return &ExtensionHooks{
		handlerPacks: map[string]HandlerPack{},
		bundles:      map[string]CommandQueryBundleFactory{},
	}
}

func (h *ExtensionHooks) RegisterHandlerPack(pack HandlerPack) error {
	if h == nil {
		return fmt.Errorf("assets: extension hooks are nil")
	}
	name := strings.TrimSpace(pack.Name)
	if name == "" {
		return fmt.Errorf("assets: handler pack name is required")
	}
	if len(pack.Modules) == 0 {
		return fmt.Errorf("assets: handler pack %q has no modules", name)
	}
	for _, module := range pack.Modules {
		if module == nil {
			return fmt.Errorf("assets: handler pack %q contains nil module", name)
		}
	}

	normalized := HandlerPack{
		Name:    name,
		Modules: append([]core.HandlerModule(nil), pack.Modules...),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.handlerPacks[name]; exists {
		return fmt.Errorf("assets: handler pack %q already registered", name)
	}
	h.handlerPacks[name] = normalized
	return nil
}

func (h *ExtensionHooks) RegisterCommandQueryBundle(
	name string,
	factory CommandQueryBundleFactory,
) error {
	if h == nil {
		return fmt.Errorf("assets: extension hooks are nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("assets: command/query bundle name is required")
	}
	if factory == nil {
		return fmt.Errorf("assets: command/query bundle %q factory is required", name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.bundles[name]; exists {
		return fmt.Errorf("assets: command/query bundle %q already registered", name)
	}
	h.bundles[name] = factory
	return nil
}

// HandlerPacks returns the registered packs in name order.
func (h *ExtensionHooks) HandlerPacks() []HandlerPack {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.handlerPacks))
	for name := range h.handlerPacks {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HandlerPack, 0, len(names))
	for _, name := range names {
		pack := h.handlerPacks[name]
		out = append(out, HandlerPack{
			Name:    pack.Name,
			Modules: append([]core.HandlerModule(nil), pack.Modules...),
		})
	}
	return out
}

// Discoverer adapts the registered packs to the registry's discovery
// contract. Modules surface in pack-name order, then pack slice order, so the
// registry's binding order stays stable across processes.
func (h *ExtensionHooks) Discoverer() core.Discoverer {
	return hooksDiscoverer{hooks: h}
}

type hooksDiscoverer struct {
	hooks *ExtensionHooks
}

func (d hooksDiscoverer) Modules() []core.HandlerModule {
	if d.hooks == nil {
		return nil
	}
	packs := d.hooks.HandlerPacks()
	out := []core.HandlerModule{}
	for _, pack := range packs {
		out = append(out, pack.Modules...)
	}
	return out
}

func (h *ExtensionHooks) BuildCommandQueryBundles(
	service CommandQueryService,
) (map[string]any, error) {
	if h == nil {
		return map[string]any{}, nil
	}
	if service == nil {
		return nil, fmt.Errorf("assets: command/query service is required")
	}

	h.mu.RLock()
	names := make([]string, 0, len(h.bundles))
	for name := range h.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	factories := make(map[string]CommandQueryBundleFactory, len(h.bundles))
	for name, factory := range h.bundles {
		factories[name] = factory
	}
	h.mu.RUnlock()

	result := make(map[string]any, len(names))
	for _, name := range names {
		bundle, err := factories[name](service)
		if err != nil {
			return nil, err
		}
		result[name] = bundle
	}
	return result, nil
}

func (h *ExtensionHooks) BundleNames() []string {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.bundles))
	for name := range h.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
