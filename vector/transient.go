package vector

import (
	"github.com/npillmayer/persistent"
	"github.com/npillmayer/persistent/bitpart"
)

// Transient is a temporary, mutable view over a persistent vector, used to
// batch many updates without allocating intermediate versions. A transient
// has a single owner and is not safe for concurrent use: create it, mutate
// it and persist it within one goroutine.
//
// Nodes reached from the originating vector are shared read-only; the first
// mutation of such a node copies it and stamps the copy with the
// transient's owner tag, after which further mutations happen in place.
//
// Persist freezes the transient back into a persistent vector and
// invalidates it: any later operation panics with persistent.TransientError.
type Transient[T any] struct {
	owner    uint64
	props    props[T]
	length   uint32
	root     *vnode[T]
	tail     []T
	consumed bool
}

// Transient spawns a mutable view over the vector.
func (v Vector[T]) Transient() *Transient[T] {
	tail := make([]T, len(v.tail), bitpart.NodeCap)
	copy(tail, v.tail)
	return &Transient[T]{
		owner:  persistent.NewOwner(),
		props:  v.props,
		length: v.length,
		root:   v.root,
		tail:   tail,
	}
}

// WithTransient runs f on a transient spawned from v and persists f's
// result. Operations on the transient return the transient itself, so f
// will typically mutate and return its argument.
func (v Vector[T]) WithTransient(f func(*Transient[T]) *Transient[T]) Vector[T] {
	return f(v.Transient()).Persist()
}

func (t *Transient[T]) ensureActive() {
	if t.consumed {
		panic(persistent.TransientError{})
	}
}

// Len returns the number of elements.
func (t *Transient[T]) Len() int {
	t.ensureActive()
	return int(t.length)
}

// Get returns the element at index i, panicking with persistent.RangeError
// when i is out of range.
func (t *Transient[T]) Get(i int) T {
	t.ensureActive()
	if i < 0 || uint32(i) >= t.length {
		panic(persistent.RangeError{Index: i, Len: int(t.length)})
	}
	if uint32(i) >= t.treeSize() {
		return t.tail[uint32(i)&bitpart.ChunkMask]
	}
	return t.root.getAt(uint32(i))
}

// Set replaces the element at index i in place and returns the transient.
func (t *Transient[T]) Set(i int, value T) *Transient[T] {
	t.ensureActive()
	if i < 0 || uint32(i) >= t.length {
		panic(persistent.RangeError{Index: i, Len: int(t.length)})
	}
	if uint32(i) >= t.treeSize() {
		t.tail[uint32(i)&bitpart.ChunkMask] = value
		return t
	}
	t.root = t.root.withAt(uint32(i), value, t.owner)
	return t
}

// Push appends value and returns the transient.
func (t *Transient[T]) Push(value T) *Transient[T] {
	t.ensureActive()
	t.tail = append(t.tail, value)
	t.length++
	if len(t.tail) == bitpart.NodeCap { // tail full ⇒ move it into the trie
		t.root = pushLeaf(t.root, adoptLeaf(t.tail, t.owner), t.owner)
		t.tail = make([]T, 0, bitpart.NodeCap)
	}
	return t
}

// Pop removes the last element and returns it. It panics with
// persistent.RangeError when the transient is empty.
func (t *Transient[T]) Pop() T {
	t.ensureActive()
	if t.length == 0 {
		panic(persistent.RangeError{Index: -1, Len: 0})
	}
	if len(t.tail) > 0 {
		last := t.tail[len(t.tail)-1]
		t.tail = t.tail[:len(t.tail)-1]
		t.length--
		return last
	}
	var leaf []T
	t.root, leaf = popLeaf(t.root, t.owner)
	// The leaf may still be shared with a persistent snapshot; the tail
	// buffer has to be an owned copy.
	t.tail = t.tail[:0]
	t.tail = append(t.tail, leaf[:len(leaf)-1]...)
	t.length--
	return leaf[len(leaf)-1]
}

// Persist freezes the transient into a persistent vector and consumes it.
func (t *Transient[T]) Persist() Vector[T] {
	t.ensureActive()
	t.consumed = true
	if t.root != nil && t.root.owner == t.owner {
		t.root.owner = persistent.NoOwner
	}
	tail := append([]T(nil), t.tail...)
	return Vector[T]{props: t.props, length: t.length, root: t.root, tail: tail}
}

func (t *Transient[T]) treeSize() uint32 {
	if t.root == nil {
		return 0
	}
	return t.root.count
}
