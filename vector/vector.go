package vector

import (
	"github.com/npillmayer/persistent"
	"github.com/npillmayer/persistent/bitpart"
	"github.com/npillmayer/persistent/hash"
	"github.com/npillmayer/persistent/maybe"
)

// Vector is an immutable persistent sequence of elements of type T. The
// zero value is a valid empty vector. All "modifying" operations return a
// new vector sharing structure with the receiver, which stays unchanged.
type Vector[T any] struct {
	props  props[T]
	length uint32
	root   *vnode[T] // nil while all elements fit into the tail
	tail   []T       // the last, partially filled block; 0…31 elements
}

type props[T any] struct {
	eq   func(a, b T) bool
	hash func(T) uint32
}

func (p props[T]) init() props[T] {
	if p.eq == nil {
		p.eq = func(a, b T) bool { return hash.Eq(a, b) }
	}
	if p.hash == nil {
		p.hash = func(x T) uint32 { return hash.Of(x) }
	}
	return p
}

// Immutable creates an empty vector.
func Immutable[T any](opts ...Option[T]) Vector[T] {
	v := Vector[T]{}
	for _, option := range opts {
		v.props = option.config(v.props)
	}
	return v
}

// Option is a type to help initializing vectors at creation time.
type Option[T any] struct {
	config func(props[T]) props[T]
}

// EqualsWith is an option to set the element equality used by Equal and
// the set operations. The default consults hash.Eq, i.e. Equaler
// implementations and ==. Compare does not consult it; it orders by the
// comparison function passed to it.
//
// Use it like this:
//
//	vec := vector.Immutable[int](vector.EqualsWith(func(a, b int) bool { … }))
func EqualsWith[T any](eq func(a, b T) bool) Option[T] {
	return Option[T]{config: func(p props[T]) props[T] {
		p.eq = eq
		return p
	}}
}

// HashWith is an option to set the element hash function used by Hash and
// the set operations. The default is hash.Of.
func HashWith[T any](h func(T) uint32) Option[T] {
	return Option[T]{config: func(p props[T]) props[T] {
		p.hash = h
		return p
	}}
}

// From creates a vector holding the elements of a slice. The slice is
// copied block-wise; later changes to it do not show through.
func From[T any](seq []T, opts ...Option[T]) Vector[T] {
	v := Immutable[T](opts...)
	owner := persistent.NewOwner()
	i := 0
	for ; i+bitpart.NodeCap <= len(seq); i += bitpart.NodeCap {
		v.root = pushFullLeaf(v.root, newLeaf(seq[i:i+bitpart.NodeCap], owner), owner)
	}
	if v.root != nil {
		v.root.owner = persistent.NoOwner
	}
	v.tail = append([]T(nil), seq[i:]...)
	v.length = uint32(len(seq))
	return v
}

// Of creates a vector of the given elements.
func Of[T any](elems ...T) Vector[T] {
	return From(elems)
}

// --- API -------------------------------------------------------------------

// Len returns the number of elements.
func (v Vector[T]) Len() int {
	return int(v.length)
}

// IsEmpty reports whether the vector holds no elements.
func (v Vector[T]) IsEmpty() bool {
	return v.length == 0
}

// Any reports whether some element satisfies pred. A nil pred reports
// whether the vector is non-empty.
func (v Vector[T]) Any(pred func(T) bool) bool {
	if pred == nil {
		return v.length > 0
	}
	found := false
	v.Each(func(x T) bool {
		found = pred(x)
		return !found
	})
	return found
}

// First returns the first element, or Nothing for an empty vector.
func (v Vector[T]) First() maybe.Maybe[T] {
	if v.length == 0 {
		return maybe.Nothing[T]()
	}
	return maybe.Just(v.Get(0))
}

// Last returns the last element, or Nothing for an empty vector.
func (v Vector[T]) Last() maybe.Maybe[T] {
	if len(v.tail) > 0 {
		return maybe.Just(v.tail[len(v.tail)-1])
	}
	if v.root == nil {
		return maybe.Nothing[T]()
	}
	leaf := lastLeaf(v.root)
	return maybe.Just(leaf[len(leaf)-1])
}

// Get returns the element at index i. It panics with persistent.RangeError
// if i is out of range; At and AtOr are the non-panicking variants.
func (v Vector[T]) Get(i int) T {
	if i < 0 || uint32(i) >= v.length {
		panic(persistent.RangeError{Index: i, Len: v.Len()})
	}
	if uint32(i) >= v.treeSize() {
		return v.tail[uint32(i)&bitpart.ChunkMask]
	}
	return v.root.getAt(uint32(i))
}

// At returns the element at index i, or Nothing if i is out of range.
func (v Vector[T]) At(i int) maybe.Maybe[T] {
	if i < 0 || uint32(i) >= v.length {
		return maybe.Nothing[T]()
	}
	return maybe.Just(v.Get(i))
}

// AtOr returns the element at index i, or fallback if i is out of range.
func (v Vector[T]) AtOr(i int, fallback T) T {
	return v.At(i).WithDefault(fallback)
}

// Set returns a vector with the element at index i replaced by value. It
// panics with persistent.RangeError if i is out of range.
func (v Vector[T]) Set(i int, value T) Vector[T] {
	if i < 0 || uint32(i) >= v.length {
		panic(persistent.RangeError{Index: i, Len: v.Len()})
	}
	if uint32(i) >= v.treeSize() {
		newTail := append([]T(nil), v.tail...)
		newTail[uint32(i)&bitpart.ChunkMask] = value
		return Vector[T]{props: v.props, length: v.length, root: v.root, tail: newTail}
	}
	newRoot := v.root.withAt(uint32(i), value, persistent.NoOwner)
	return Vector[T]{props: v.props, length: v.length, root: newRoot, tail: v.tail}
}

// Push returns a vector with value appended.
func (v Vector[T]) Push(value T) Vector[T] {
	newTail := make([]T, len(v.tail)+1)
	copy(newTail, v.tail)
	newTail[len(v.tail)] = value
	w := Vector[T]{props: v.props, length: v.length + 1, root: v.root, tail: newTail}
	if len(newTail) == bitpart.NodeCap { // tail full ⇒ move it into the trie
		tracer().Debugf("tail is full, pushing leaf into trie")
		w.root = pushFullLeaf(w.root, adoptLeaf(newTail, persistent.NoOwner), persistent.NoOwner)
		w.tail = nil
	}
	return w
}

// Pop returns the last element and a vector with that element removed. It
// panics with persistent.RangeError on an empty vector; PopM is the
// non-panicking variant.
func (v Vector[T]) Pop() (T, Vector[T]) {
	if v.length == 0 {
		panic(persistent.RangeError{Index: -1, Len: 0})
	}
	if len(v.tail) > 0 {
		last := v.tail[len(v.tail)-1]
		newTail := append([]T(nil), v.tail[:len(v.tail)-1]...)
		return last, Vector[T]{props: v.props, length: v.length - 1, root: v.root, tail: newTail}
	}
	// tail is empty ⇒ trie is not; its last leaf becomes the new tail
	newRoot, leaf := popLeaf(v.root, persistent.NoOwner)
	last := leaf[len(leaf)-1]
	newTail := append([]T(nil), leaf[:len(leaf)-1]...)
	return last, Vector[T]{props: v.props, length: v.length - 1, root: newRoot, tail: newTail}
}

// PopM is like Pop, but yields Nothing and an empty vector instead of
// panicking when the receiver is empty.
func (v Vector[T]) PopM() (maybe.Maybe[T], Vector[T]) {
	if v.length == 0 {
		return maybe.Nothing[T](), v
	}
	last, w := v.Pop()
	return maybe.Just(last), w
}

// Each calls f for every element in index order until f returns false.
func (v Vector[T]) Each(f func(T) bool) {
	if v.root != nil {
		if !v.root.each(f) {
			return
		}
	}
	for _, x := range v.tail {
		if !f(x) {
			return
		}
	}
}

// ToSlice returns the elements as a native slice.
func (v Vector[T]) ToSlice() []T {
	s := make([]T, 0, v.length)
	v.Each(func(x T) bool {
		s = append(s, x)
		return true
	})
	return s
}

// treeSize is the number of elements stored in the trie, as opposed to the
// tail. It is always a multiple of 32.
func (v Vector[T]) treeSize() uint32 {
	if v.root == nil {
		return 0
	}
	return v.root.count
}

// pushFullLeaf guards the trie-level append: only complete leaves enter a
// trie whose size is a multiple of the node capacity.
func pushFullLeaf[T any](root, leaf *vnode[T], owner uint64) *vnode[T] {
	if leaf.count != bitpart.NodeCap {
		panic(persistent.ArgumentError{Reason: "pushed leaf must hold exactly 32 elements"})
	}
	if root != nil && root.count%bitpart.NodeCap != 0 {
		panic(persistent.ArgumentError{Reason: "trie size must be a multiple of 32"})
	}
	return pushLeaf(root, leaf, owner)
}
