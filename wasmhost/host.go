package wasmhost

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/embedkit/hostbind/errors"
	"github.com/embedkit/hostbind/instances"
)

// ModuleName is the import namespace guests use for registry functions.
const ModuleName = "hostbind"

// Factory constructs a native object for a guest-requested type.
type Factory func() any

// Host exposes an instance registry to WebAssembly guests. Guests refer to
// instances by name; the set of guest-visible names shrinks automatically
// when the registry deletes an instance (Host implements hostbind.Binder).
type Host struct {
	reg       *instances.Registry
	mu        sync.RWMutex
	factories map[string]Factory
	exported  map[string]struct{}
	log       *zap.Logger
}

// Config holds configuration for host creation
type Config struct {
	// Logger receives debug-level guest boundary events. Nil means no logging.
	Logger *zap.Logger
}

// New creates a host with no logging.
func New() *Host {
	return NewWithConfig(nil)
}

// NewWithConfig creates a host with custom configuration.
func NewWithConfig(cfg *Config) *Host {
	log := zap.NewNop()
	if cfg != nil && cfg.Logger != nil {
		log = cfg.Logger
	}

	h := &Host{
		factories: make(map[string]Factory),
		exported:  make(map[string]struct{}),
		log:       log,
	}
	h.reg = instances.NewWithConfig(&instances.Config{
		Binder: h,
		Logger: log,
	})
	return h
}

// Registry returns the host's instance registry.
func (h *Host) Registry() *instances.Registry {
	return h.reg
}

// RegisterFactory installs a constructor and destruction function for a type
// guests may instantiate.
func (h *Host) RegisterFactory(typeName string, newFn Factory, delFn instances.DeleteFunc) error {
	if typeName == "" {
		return errors.InvalidInput(errors.PhaseGuest, "type name cannot be empty")
	}
	if newFn == nil || delFn == nil {
		return errors.InvalidInput(errors.PhaseGuest, "factory needs both a constructor and a destruction function")
	}

	h.mu.Lock()
	h.factories[typeName] = newFn
	h.mu.Unlock()

	h.reg.RegisterDeleteFunction(typeName, delFn)
	return nil
}

// Bind makes name visible to guests. The instance must already be
// registered; host-side code uses this to expose objects it constructed
// itself.
func (h *Host) Bind(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.exported[name] = struct{}{}
}

// Unbind removes name from the guest-visible set. It implements
// hostbind.Binder: the registry calls it when the instance is deleted.
func (h *Host) Unbind(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.exported, name)
}

// Exported returns the guest-visible names in sorted order.
func (h *Host) Exported() []string {
	h.mu.RLock()
	names := make([]string, 0, len(h.exported))
	for name := range h.exported {
		names = append(names, name)
	}
	h.mu.RUnlock()

	sort.Strings(names)
	return names
}

// createInstance constructs a temporary of typeName, registers it, and
// exposes the generated name to guests.
func (h *Host) createInstance(typeName string) (string, uint32) {
	h.mu.RLock()
	factory, ok := h.factories[typeName]
	h.mu.RUnlock()
	if !ok {
		return "", ErrnoUnknownType
	}

	name, err := h.reg.CreateTemporary(factory(), instances.QualifiedType{Name: typeName})
	if err != nil {
		return "", errnoFor(err)
	}
	h.Bind(name)

	h.log.Debug("guest created instance",
		zap.String("name", name),
		zap.String("type", typeName))
	return name, ErrnoOK
}

// deleteInstance deletes a guest-visible instance by name.
func (h *Host) deleteInstance(name string) uint32 {
	if !h.visible(name) {
		return ErrnoUndefinedName
	}
	return errnoFor(h.reg.DeleteObject(name))
}

// deleteIfTemporary sweeps a guest-visible instance when its name is
// temporary; owned names are a no-op like on the host side.
func (h *Host) deleteIfTemporary(name string) uint32 {
	if !h.visible(name) {
		return ErrnoUndefinedName
	}
	return errnoFor(h.reg.DeleteIfTemporary(name))
}

// typeOf returns the rendered qualified type of a guest-visible instance.
func (h *Host) typeOf(name string) (string, uint32) {
	if !h.visible(name) {
		return "", ErrnoUndefinedName
	}
	qt, err := h.reg.GetType(name)
	if err != nil {
		return "", errnoFor(err)
	}
	return qt.String(), ErrnoOK
}

func (h *Host) visible(name string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.exported[name]
	return ok
}
