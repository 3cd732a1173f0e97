package hamt

import (
	"github.com/npillmayer/persistent"
	"github.com/npillmayer/persistent/maybe"
)

// Transient is a temporary, mutable view over a persistent map, used to
// batch many updates without allocating intermediate versions. It follows
// the same single-owner discipline as vector.Transient: nodes shared with
// the originating map are copied and stamped on first touch, then mutated
// in place; Persist freezes the transient and invalidates it.
//
// A transient is not safe for concurrent use.
type Transient[K, V any] struct {
	owner    uint64
	props    mprops[K, V]
	root     *hnode[K, V]
	consumed bool
}

// Transient spawns a mutable view over the map.
func (m Map[K, V]) Transient() *Transient[K, V] {
	return &Transient[K, V]{
		owner: persistent.NewOwner(),
		props: m.props.init(),
		root:  m.root,
	}
}

// WithTransient runs f on a transient spawned from m and persists f's
// result.
func (m Map[K, V]) WithTransient(f func(*Transient[K, V]) *Transient[K, V]) Map[K, V] {
	return f(m.Transient()).Persist()
}

func (t *Transient[K, V]) ensureActive() {
	if t.consumed {
		panic(persistent.TransientError{})
	}
}

// Len returns the number of entries.
func (t *Transient[K, V]) Len() int {
	t.ensureActive()
	if t.root == nil {
		return 0
	}
	return int(t.root.count)
}

// Has reports whether the map holds an entry for k.
func (t *Transient[K, V]) Has(k K) bool {
	return t.At(k).IsJust()
}

// At returns the value for k, or Nothing for an absent key.
func (t *Transient[K, V]) At(k K) maybe.Maybe[V] {
	t.ensureActive()
	if t.root == nil {
		return maybe.Nothing[V]()
	}
	if v, ok := t.root.find(0, t.props.hash(k), k, t.props.eq); ok {
		return maybe.Just(v)
	}
	return maybe.Nothing[V]()
}

// Get returns the value for k, with the same absent-key behaviour as
// Map.Get.
func (t *Transient[K, V]) Get(k K) V {
	if v, ok := t.At(k).Unwrap(); ok {
		return v
	}
	if t.props.def != nil {
		return t.props.def(k)
	}
	panic(persistent.KeyError{Key: k})
}

// Set associates k with v in place and returns the transient.
func (t *Transient[K, V]) Set(k K, v V) *Transient[K, V] {
	t.ensureActive()
	root := t.root
	if root == nil {
		root = &hnode[K, V]{owner: t.owner}
	}
	t.root, _ = root.assoc(0, t.props.hash(k), k, v, t.props.eq, t.owner)
	return t
}

// Delete removes the entry for k in place and returns the transient. It
// panics with persistent.KeyError if k is absent.
func (t *Transient[K, V]) Delete(k K) *Transient[K, V] {
	t.ensureActive()
	if t.root == nil {
		panic(persistent.KeyError{Key: k})
	}
	newRoot, removed := t.root.without(0, t.props.hash(k), k, t.props.eq, t.owner)
	if !removed {
		panic(persistent.KeyError{Key: k})
	}
	t.root = newRoot
	return t
}

// Persist freezes the transient into a persistent map and consumes it.
func (t *Transient[K, V]) Persist() Map[K, V] {
	t.ensureActive()
	tracer().Debugf("persisting transient map, %d entries", t.Len())
	t.consumed = true
	if t.root != nil && t.root.owner == t.owner {
		t.root.owner = persistent.NoOwner
	}
	return Map[K, V]{props: t.props, root: t.root}
}
