package hamt

import (
	"github.com/npillmayer/persistent"
	"github.com/npillmayer/persistent/hash"
	"github.com/npillmayer/persistent/maybe"
)

// Map is an immutable persistent mapping from keys of type K to values of
// type V. The zero value is a valid empty map hashing its keys with
// hash.Of and comparing them with hash.Eq; see Hashing for custom key
// types. All "modifying" operations return a new map sharing structure
// with the receiver, which stays unchanged.
type Map[K, V any] struct {
	props mprops[K, V]
	root  *hnode[K, V] // nil means empty
}

type mprops[K, V any] struct {
	hash func(K) uint32
	eq   func(K, K) bool
	def  func(K) V // Get's fallback for absent keys; nil if unset
}

func (p mprops[K, V]) init() mprops[K, V] {
	if p.hash == nil {
		p.hash = func(k K) uint32 { return hash.Of(k) }
	}
	if p.eq == nil {
		p.eq = func(a, b K) bool { return hash.Eq(a, b) }
	}
	return p
}

// Immutable creates an empty map.
func Immutable[K, V any](opts ...Option[K, V]) Map[K, V] {
	m := Map[K, V]{}
	for _, option := range opts {
		m.props = option.config(m.props)
	}
	return m
}

// Option is a type to help initializing maps at creation time.
type Option[K, V any] struct {
	config func(mprops[K, V]) mprops[K, V]
}

// Hashing is an option to set the hash and equality functions for keys.
// The defaults consult hash.Of and hash.Eq, which cover the builtin
// scalar types and Hasher/Equaler implementations.
//
// Use it like this:
//
//	m := hamt.Immutable[point, rune](hamt.Hashing[point, rune](hashPt, eqPt))
func Hashing[K, V any](h func(K) uint32, eq func(K, K) bool) Option[K, V] {
	return Option[K, V]{config: func(p mprops[K, V]) mprops[K, V] {
		p.hash = h
		p.eq = eq
		return p
	}}
}

// Default is an option to set a fallback callback, invoked by Get for
// absent keys instead of panicking. The callback's result is returned to
// the caller but not inserted into the map.
func Default[K, V any](fn func(K) V) Option[K, V] {
	return Option[K, V]{config: func(p mprops[K, V]) mprops[K, V] {
		p.def = fn
		return p
	}}
}

// From creates a map holding the given key/value pairs. Later pairs win
// over earlier ones with equal keys.
func From[K, V any](pairs []persistent.Pair[K, V], opts ...Option[K, V]) Map[K, V] {
	t := Immutable[K, V](opts...).Transient()
	for _, p := range pairs {
		t.Set(p.Key, p.Value)
	}
	return t.Persist()
}

// FromMap creates a map holding the entries of a native Go map.
func FromMap[K comparable, V any](native map[K]V, opts ...Option[K, V]) Map[K, V] {
	t := Immutable[K, V](opts...).Transient()
	for k, v := range native {
		t.Set(k, v)
	}
	return t.Persist()
}

// --- API -------------------------------------------------------------------

// Len returns the number of entries.
func (m Map[K, V]) Len() int {
	if m.root == nil {
		return 0
	}
	return int(m.root.count)
}

// IsEmpty reports whether the map holds no entries.
func (m Map[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

// Has reports whether the map holds an entry for k.
func (m Map[K, V]) Has(k K) bool {
	return m.At(k).IsJust()
}

// At returns the value for k, or Nothing for an absent key. The map's
// Default callback is not consulted.
func (m Map[K, V]) At(k K) maybe.Maybe[V] {
	if m.root == nil {
		return maybe.Nothing[V]()
	}
	m.props = m.props.init()
	if v, ok := m.root.find(0, m.props.hash(k), k, m.props.eq); ok {
		return maybe.Just(v)
	}
	return maybe.Nothing[V]()
}

// Get returns the value for k. For an absent key it returns the result of
// the Default callback when one is configured, and otherwise panics with
// persistent.KeyError.
func (m Map[K, V]) Get(k K) V {
	if v, ok := m.At(k).Unwrap(); ok {
		return v
	}
	if m.props.def != nil {
		return m.props.def(k)
	}
	panic(persistent.KeyError{Key: k})
}

// Fetch returns the value for k, or fallback for an absent key. An
// explicit fallback wins over the map's Default callback.
func (m Map[K, V]) Fetch(k K, fallback V) V {
	return m.At(k).WithDefault(fallback)
}

// FetchBy returns the value for k, or the result of calling fn for an
// absent key. fn wins over the map's Default callback.
func (m Map[K, V]) FetchBy(k K, fn func(K) V) V {
	if v, ok := m.At(k).Unwrap(); ok {
		return v
	}
	return fn(k)
}

// Set returns a map with k associated to v.
func (m Map[K, V]) Set(k K, v V) Map[K, V] {
	m.props = m.props.init()
	root := m.root
	if root == nil {
		root = &hnode[K, V]{}
	}
	newRoot, _ := root.assoc(0, m.props.hash(k), k, v, m.props.eq, persistent.NoOwner)
	return Map[K, V]{props: m.props, root: newRoot}
}

// Delete returns a map with the entry for k removed. It panics with
// persistent.KeyError if k is absent.
func (m Map[K, V]) Delete(k K) Map[K, V] {
	m.props = m.props.init()
	if m.root == nil {
		panic(persistent.KeyError{Key: k})
	}
	newRoot, removed := m.root.without(0, m.props.hash(k), k, m.props.eq, persistent.NoOwner)
	if !removed {
		panic(persistent.KeyError{Key: k})
	}
	return Map[K, V]{props: m.props, root: newRoot}
}

// Merge returns the right-biased union of m and other: entries of other
// win on key collision. The result keeps m's hashing and Default
// configuration.
func (m Map[K, V]) Merge(other Map[K, V]) Map[K, V] {
	t := m.Transient()
	other.Each(func(k K, v V) bool {
		t.Set(k, v)
		return true
	})
	return t.Persist()
}

// MergeMap merges the entries of a native Go map into m, the native
// entries winning on key collision.
func MergeMap[K comparable, V any](m Map[K, V], native map[K]V) Map[K, V] {
	t := m.Transient()
	for k, v := range native {
		t.Set(k, v)
	}
	return t.Persist()
}

// Each calls f for every entry until f returns false. The order is
// unspecified, but stable for a given map value.
func (m Map[K, V]) Each(f func(K, V) bool) {
	if m.root != nil {
		m.root.each(f)
	}
}

// EachKey calls f for every key until f returns false.
func (m Map[K, V]) EachKey(f func(K) bool) {
	m.Each(func(k K, _ V) bool { return f(k) })
}

// EachValue calls f for every value until f returns false.
func (m Map[K, V]) EachValue(f func(V) bool) {
	m.Each(func(_ K, v V) bool { return f(v) })
}

// Keys returns the keys as a native slice, in iteration order.
func (m Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	m.EachKey(func(k K) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns the values as a native slice, in iteration order.
func (m Map[K, V]) Values() []V {
	values := make([]V, 0, m.Len())
	m.EachValue(func(v V) bool {
		values = append(values, v)
		return true
	})
	return values
}

// Native returns the entries as a native Go map.
func Native[K comparable, V any](m Map[K, V]) map[K]V {
	native := make(map[K]V, m.Len())
	m.Each(func(k K, v V) bool {
		native[k] = v
		return true
	})
	return native
}

// Equal reports whether m and other hold equal entries: the same size, and
// for every key of m an entry in other with an equal value under hash.Eq.
func (m Map[K, V]) Equal(other Map[K, V]) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m.root == other.root {
		return true
	}
	equal := true
	m.Each(func(k K, v V) bool {
		if ov, ok := other.At(k).Unwrap(); !ok || !hash.Eq(v, ov) {
			equal = false
		}
		return equal
	})
	return equal
}

// Hash returns a 32-bit hash code over the entries. It is insensitive to
// iteration order, so equal maps have equal hash codes.
func (m Map[K, V]) Hash() uint32 {
	m.props = m.props.init()
	var h uint32
	m.Each(func(k K, v V) bool {
		h += hash.Seq(m.props.hash(k), hash.Of(v))
		return true
	})
	return h
}
