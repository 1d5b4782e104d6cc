package resolver

import (
	"fmt"
	"sync"

	"github.com/layeredconf/oconf/node"
)

// Context carries the two optional contextual parameters a resolver
// callable may declare: the parent of the anchor node doing the
// resolving, and the root of its tree. The evaluator decides which shape
// a registered function wants by its Go type, per §9's "inspect the
// callable's formal parameter spec at registration" design note.
type Context struct {
	Parent node.Node
	Root   node.Node
}

// PlainFunc is a resolver that does not need tree context.
type PlainFunc func(args []any) (any, error)

// ContextFunc is a resolver that wants the anchor's parent and root.
type ContextFunc func(ctx Context, args []any) (any, error)

type cacheResult struct {
	value any
	err   error
}

type entry struct {
	name     string
	fn       any
	useCache bool

	mu    sync.Mutex
	cache map[string]cacheResult
}

func (e *entry) invoke(ctx Context, args []any) (any, error) {
	switch fn := e.fn.(type) {
	case PlainFunc:
		return fn(args)
	case ContextFunc:
		return fn(ctx, args)
	default:
		return nil, fmt.Errorf("%w: resolver %q has fn of type %T", ErrInvalidFunc, e.name, e.fn)
	}
}

// Registry is the process-wide name -> callable table. The zero value is
// not usable; build one with New or NewWithBuiltins.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// New returns an empty registry with no built-ins registered.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// NewWithBuiltins returns a registry with the §4.3 built-in resolvers
// already registered under the "oc." namespace.
func NewWithBuiltins() *Registry {
	r := New()
	registerBuiltins(r)

	return r
}

// Register adds name -> fn. fn must be a PlainFunc or ContextFunc. If name
// is already registered, Register fails unless replace is true. useCache
// opts this resolver into memoization; see Snapshot.Call.
func (r *Registry) Register(name string, fn any, replace bool, useCache bool) error {
	switch fn.(type) {
	case PlainFunc, ContextFunc:
	default:
		return fmt.Errorf("%w: got %T", ErrInvalidFunc, fn)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists && !replace {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, name)
	}

	r.entries[name] = &entry{name: name, fn: fn, useCache: useCache}

	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[name]

	return ok
}

// Clear removes name, reporting whether it was present.
func (r *Registry) Clear(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.entries[name]
	delete(r.entries, name)

	return ok
}

// ClearAll removes every registered resolver, including built-ins.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]*entry)
}

// Snapshot is an immutable, copy-on-write view of the registry taken at
// the start of an evaluation, per §5: the set of registered resolvers is
// stable across that evaluation even if another goroutine registers or
// clears resolvers concurrently. Per-resolver caches are still shared
// (caching is a performance concern, not part of the visible resolver
// set) and are safe for concurrent use.
type Snapshot struct {
	entries map[string]*entry
}

// Snapshot captures the current set of registered resolvers.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cp := make(map[string]*entry, len(r.entries))
	for k, v := range r.entries {
		cp[k] = v
	}

	return &Snapshot{entries: cp}
}

// Call invokes the resolver registered under name with args, honoring its
// cache policy. cacheKey is the normalized *textual* argument list (see
// §4.3); the evaluator computes it from the parsed grammar.Element
// arguments before they are evaluated to Go values, since the cache is
// keyed on source text, not result values. Callers that do not care about
// caching may pass an empty cacheKey; it is only consulted when the
// resolver was registered with useCache.
func (s *Snapshot) Call(ctx Context, name string, args []any, cacheKey string) (any, error) {
	e, ok := s.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResolver, name)
	}

	if !e.useCache {
		return e.invoke(ctx, args)
	}

	e.mu.Lock()
	if e.cache == nil {
		e.cache = make(map[string]cacheResult)
	}

	if cached, ok := e.cache[cacheKey]; ok {
		e.mu.Unlock()

		return cached.value, cached.err
	}
	e.mu.Unlock()

	v, err := e.invoke(ctx, args)

	e.mu.Lock()
	e.cache[cacheKey] = cacheResult{value: v, err: err}
	e.mu.Unlock()

	return v, err
}

// Has reports whether name is present in this snapshot.
func (s *Snapshot) Has(name string) bool {
	_, ok := s.entries[name]

	return ok
}
