package store

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Scope names the process a store belongs to.
type Scope string

const (
	ScopeBuilder         Scope = "builder"
	ScopeExecutor        Scope = "executor"
	ScopeTrainer         Scope = "trainer"
	ScopeParameterServer Scope = "parameter_server"
)

// Base is embedded by every store. It carries the run identity and the
// typed-key values exchanged between components.
type Base struct {
	RunID uuid.UUID
	Scope Scope

	values sync.Map // Key: key name, Value: any
}

// Scoped is satisfied by every store through its embedded Base.
type Scoped interface {
	base() *Base
}

func (b *Base) base() *Base { return b }

func (b *Base) init(runID uuid.UUID, scope Scope) {
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	b.RunID = runID
	b.Scope = scope
}

// Keys returns the names of all typed-key values currently set, sorted.
func (b *Base) Keys() []string {
	var keys []string
	b.values.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}

// Key addresses a value of type T inside a store.
type Key[T any] struct {
	name string
}

// NewKey creates a key. Keys are compared by name, so two packages that
// need to share a value must share the Key variable.
func NewKey[T any](name string) Key[T] {
	if name == "" {
		panic("store: key name must not be empty")
	}
	return Key[T]{name: name}
}

// Name returns the key's name.
func (k Key[T]) Name() string { return k.name }

// Set stores v under k.
func Set[T any](s Scoped, k Key[T], v T) {
	s.base().values.Store(k.name, v)
}

// Get returns the value stored under k. The boolean is false when nothing
// is stored or the stored value has a different type.
func Get[T any](s Scoped, k Key[T]) (T, bool) {
	var zero T
	raw, ok := s.base().values.Load(k.name)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// MustGet is like Get but panics when the value is missing.
func MustGet[T any](s Scoped, k Key[T]) T {
	v, ok := Get(s, k)
	if !ok {
		panic("store: missing value for key " + k.name)
	}
	return v
}

// Delete removes the value stored under k.
func Delete[T any](s Scoped, k Key[T]) {
	s.base().values.Delete(k.name)
}
