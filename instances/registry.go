package instances

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/embedkit/hostbind"
	"github.com/embedkit/hostbind/errors"
)

// Registry tracks native objects under string handles. It maintains three
// co-mutated structures under a single lock: the instance map (name to
// object and type), the address index (object to name), and the
// delete-function table (base type name to destruction callback).
//
// A name is present iff an object is alive under it, and the address index
// is the exact inverse of the instance map at all times.
type Registry struct {
	mu        sync.Mutex
	instances map[string]Reference
	addresses map[any]string
	deleters  map[string]DeleteFunc
	tempSeq   uint64

	binder hostbind.Binder
	log    *zap.Logger

	observers []Observer
	obsMu     sync.RWMutex
}

// Config holds configuration for registry creation
type Config struct {
	// Binder is the embedding command layer whose per-name bindings are
	// removed on instance deletion. Nil means no command layer.
	Binder hostbind.Binder

	// Logger receives debug-level lifecycle events. Nil means no logging.
	Logger *zap.Logger
}

// New creates a registry with no command layer and no logging.
func New() *Registry {
	return NewWithConfig(nil)
}

// NewWithConfig creates a registry with custom configuration.
func NewWithConfig(cfg *Config) *Registry {
	r := &Registry{
		instances: make(map[string]Reference),
		addresses: make(map[any]string),
		deleters:  make(map[string]DeleteFunc),
		binder:    hostbind.NopBinder{},
		log:       zap.NewNop(),
	}
	if cfg != nil {
		if cfg.Binder != nil {
			r.binder = cfg.Binder
		}
		if cfg.Logger != nil {
			r.log = cfg.Logger
		}
	}
	return r
}

// SetObject registers object under name with the given qualified type. If
// name already denotes a live object, that prior object is fully deleted
// first; nothing is installed when the prior deletion fails. The prior
// removal and the install happen in one critical section, so concurrent
// SetObject calls for the same name cannot leave a stale address entry.
func (r *Registry) SetObject(name string, object any, qtype QualifiedType) error {
	var (
		prior    Reference
		priorDel DeleteFunc
		replaced bool
	)

	r.mu.Lock()
	if _, ok := r.instances[name]; ok {
		ref, del, err := r.deleteLocked(name)
		if err != nil {
			r.mu.Unlock()
			return err
		}
		prior, priorDel, replaced = ref, del, true
	}
	r.instances[name] = Reference{Object: object, Type: qtype}
	r.addresses[object] = name
	r.mu.Unlock()

	if replaced {
		r.finishDelete(name, prior, priorDel)
	}

	r.log.Debug("instance registered",
		zap.String("name", name),
		zap.String("type", qtype.String()))

	r.notify(Event{Kind: EventRegistered, Name: name, Object: object, Type: qtype})
	return nil
}

// GetObject returns the object registered under name.
func (r *Registry) GetObject(name string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, ok := r.instances[name]
	if !ok {
		return nil, errors.UndefinedName(errors.PhaseRegistry, name)
	}
	return ref.Object, nil
}

// GetType returns the qualified type of the object registered under name.
func (r *Registry) GetType(name string) (QualifiedType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, ok := r.instances[name]
	if !ok {
		return QualifiedType{}, errors.UndefinedName(errors.PhaseRegistry, name)
	}
	return ref.Type, nil
}

// Exists reports whether an object is registered under name.
func (r *Registry) Exists(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.instances[name]
	return ok
}

// DeleteObject deletes the object registered under name: the address index
// entry and the instance entry are removed, the type's destruction function
// is invoked on the object, and the embedder's command binding for name is
// removed. The type check happens before any mutation, so a failure leaves
// the registry unchanged.
//
// Bookkeeping is removed before the destruction function runs: an object
// whose teardown re-enters DeleteCallBack sees a consistent table.
func (r *Registry) DeleteObject(name string) error {
	r.mu.Lock()
	ref, del, err := r.deleteLocked(name)
	r.mu.Unlock()
	if err != nil {
		return err
	}

	r.finishDelete(name, ref, del)
	return nil
}

// deleteLocked removes name's bookkeeping. The type check precedes both map
// mutations, so a failure leaves the registry unchanged. Callers hold r.mu
// and run finishDelete after releasing it.
func (r *Registry) deleteLocked(name string) (Reference, DeleteFunc, error) {
	ref, ok := r.instances[name]
	if !ok {
		return Reference{}, nil, errors.UndefinedName(errors.PhaseRegistry, name)
	}

	del, ok := r.deleters[ref.Type.Name]
	if !ok {
		return Reference{}, nil, errors.UndefinedType(errors.PhaseRegistry, name, ref.Type.Name)
	}

	delete(r.addresses, ref.Object)
	delete(r.instances, name)
	return ref, del, nil
}

// finishDelete runs a deletion's post-lock effects: the destruction
// function, the embedder's command unbinding, and observer notification.
func (r *Registry) finishDelete(name string, ref Reference, del DeleteFunc) {
	del(ref.Object)
	r.binder.Unbind(name)

	r.log.Debug("instance deleted",
		zap.String("name", name),
		zap.String("type", ref.Type.String()))

	r.notify(Event{Kind: EventDeleted, Name: name, Object: ref.Object, Type: ref.Type})
}

// RegisterDeleteFunction installs the destruction callback for a base type
// name. Last write wins. A type's instances cannot be deleted until its
// callback is registered.
func (r *Registry) RegisterDeleteFunction(typeName string, fn DeleteFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleters[typeName] = fn
}

// CreateTemporary registers object under a fresh auto-generated name and
// returns it. Generated names carry TempPrefix followed by a hex counter
// unique for the registry's lifetime.
func (r *Registry) CreateTemporary(object any, qtype QualifiedType) (string, error) {
	r.mu.Lock()
	name := fmt.Sprintf("%s%x", TempPrefix, r.tempSeq)
	r.tempSeq++
	r.mu.Unlock()

	if err := r.SetObject(name, object, qtype); err != nil {
		return "", err
	}
	return name, nil
}

// DeleteIfTemporary deletes the object registered under name if the name
// was generated by CreateTemporary. Caller-owned names are a no-op, so
// callers need not know whether a handle is ephemeral. An absent name is an
// error either way.
func (r *Registry) DeleteIfTemporary(name string) error {
	if IsTemporary(name) {
		return r.DeleteObject(name)
	}
	if !r.Exists(name) {
		return errors.UndefinedName(errors.PhaseRegistry, name)
	}
	return nil
}

// DeleteCallBack is the hook a native object invokes when it begins
// self-destruction, so stale bookkeeping is purged before the command-layer
// binding dangles. An unknown address means nothing to clean up and is
// silently ignored.
func (r *Registry) DeleteCallBack(object any) {
	r.mu.Lock()
	name, ok := r.addresses[object]
	if !ok {
		r.mu.Unlock()
		return
	}
	ref, del, err := r.deleteLocked(name)
	r.mu.Unlock()

	if err != nil {
		r.log.Debug("self-deletion without destruction function",
			zap.String("name", name), zap.Error(err))
		return
	}
	r.finishDelete(name, ref, del)
}

// Len returns the number of live instances.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// Names returns the live instance names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	names := make([]string, 0, len(r.instances))
	for name := range r.instances {
		names = append(names, name)
	}
	r.mu.Unlock()

	sort.Strings(names)
	return names
}

// Each iterates over a snapshot of the live instances.
func (r *Registry) Each(fn func(name string, ref Reference) bool) {
	r.mu.Lock()
	snapshot := make(map[string]Reference, len(r.instances))
	for name, ref := range r.instances {
		snapshot[name] = ref
	}
	r.mu.Unlock()

	for name, ref := range snapshot {
		if !fn(name, ref) {
			break
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnInstanceEvent(e)
	}
}
