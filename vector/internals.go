package vector

import (
	"fmt"
	"strings"

	"github.com/npillmayer/persistent"
	"github.com/npillmayer/persistent/bitpart"
)

// vnode represents a node in the trie a vector is made of. A node is either
// a branch, holding up to 32 children, or a leaf (level 0), holding up to 32
// elements. Branches cache the total element count of their subtree.
//
// owner is the tag of the transient owning this node, or persistent.NoOwner
// for nodes belonging to persistent snapshots. Nodes with a foreign owner
// tag must never be mutated.
type vnode[T any] struct {
	owner    uint64
	level    uint32
	count    uint32
	children []*vnode[T]
	leafs    []T
}

// newLeaf creates a leaf node from a copy of the given elements.
func newLeaf[T any](elems []T, owner uint64) *vnode[T] {
	l := make([]T, len(elems))
	copy(l, elems)
	return &vnode[T]{owner: owner, count: uint32(len(elems)), leafs: l}
}

// adoptLeaf creates a leaf node taking ownership of the given slice.
func adoptLeaf[T any](elems []T, owner uint64) *vnode[T] {
	return &vnode[T]{owner: owner, count: uint32(len(elems)), leafs: elems}
}

// mutable returns a node safe to mutate on behalf of owner: the node itself
// if the owner tags match, a stamped clone otherwise. Persistent operations
// pass persistent.NoOwner and therefore always clone.
func (n *vnode[T]) mutable(owner uint64) *vnode[T] {
	if owner != persistent.NoOwner && n.owner == owner {
		return n
	}
	m := &vnode[T]{owner: owner, level: n.level, count: n.count}
	if n.level == 0 {
		m.leafs = make([]T, len(n.leafs))
		copy(m.leafs, n.leafs)
	} else {
		m.children = make([]*vnode[T], len(n.children), bitpart.NodeCap)
		copy(m.children, n.children)
	}
	return m
}

// newPath wraps leaf into a left-branching chain of branches up to the
// given level.
func newPath[T any](level uint32, leaf *vnode[T], owner uint64) *vnode[T] {
	n := leaf
	for l := uint32(1); l <= level; l++ {
		n = &vnode[T]{
			owner:    owner,
			level:    l,
			count:    n.count,
			children: append(make([]*vnode[T], 0, bitpart.NodeCap), n),
		}
	}
	return n
}

// getAt returns the element at index i. i must be within the subtree.
func (n *vnode[T]) getAt(i uint32) T {
	for n.level > 0 {
		n = n.children[bitpart.Chunk(n.level*bitpart.ChunkBits, i)]
	}
	return n.leafs[i&bitpart.ChunkMask]
}

// withAt returns a subtree with the element at index i replaced. Nodes along
// the path are cloned (or mutated in place when owned); siblings are shared.
func (n *vnode[T]) withAt(i uint32, value T, owner uint64) *vnode[T] {
	m := n.mutable(owner)
	if m.level == 0 {
		m.leafs[i&bitpart.ChunkMask] = value
		return m
	}
	slot := bitpart.Chunk(m.level*bitpart.ChunkBits, i)
	m.children[slot] = m.children[slot].withAt(i, value, owner)
	return m
}

// pushLeaf appends a full leaf at the lowest available slot of the trie,
// introducing a new root if the trie is full at its current level. A nil
// root denotes the empty trie.
func pushLeaf[T any](root, leaf *vnode[T], owner uint64) *vnode[T] {
	if root == nil {
		return leaf
	}
	if root.count == bitpart.Capacity(root.level) {
		tracer().Debugf("trie full at level %d, raising height", root.level)
		nr := &vnode[T]{
			owner: owner,
			level: root.level + 1,
			count: root.count + leaf.count,
		}
		nr.children = append(make([]*vnode[T], 0, bitpart.NodeCap),
			root, newPath(root.level, leaf, owner))
		return nr
	}
	return root.pushLeaf(leaf, owner)
}

func (n *vnode[T]) pushLeaf(leaf *vnode[T], owner uint64) *vnode[T] {
	m := n.mutable(owner)
	m.count += leaf.count
	if m.level == 1 {
		m.children = append(m.children, leaf)
		return m
	}
	last := len(m.children) - 1
	if c := m.children[last]; c.count < bitpart.Capacity(c.level) {
		m.children[last] = c.pushLeaf(leaf, owner)
	} else {
		m.children = append(m.children, newPath(m.level-1, leaf, owner))
	}
	return m
}

// popLeaf removes the rightmost leaf of the trie and returns the remaining
// trie (nil when drained) together with the removed leaf's elements.
// Branches drained by the removal are dropped; a root left with a single
// child collapses into that child.
func popLeaf[T any](root *vnode[T], owner uint64) (*vnode[T], []T) {
	if root.level == 0 {
		return nil, root.leafs
	}
	m, leaf := root.popLeaf(owner)
	if m != nil && m.level > 0 && len(m.children) == 1 {
		m = m.children[0]
	}
	return m, leaf
}

func (n *vnode[T]) popLeaf(owner uint64) (*vnode[T], []T) {
	last := len(n.children) - 1
	var sub *vnode[T]
	var leaf []T
	if c := n.children[last]; c.level == 0 {
		sub, leaf = nil, c.leafs
	} else {
		sub, leaf = c.popLeaf(owner)
	}
	if sub == nil && last == 0 {
		return nil, leaf
	}
	m := n.mutable(owner)
	m.count -= uint32(len(leaf))
	if sub == nil {
		m.children[last] = nil
		m.children = m.children[:last]
	} else {
		m.children[last] = sub
	}
	return m, leaf
}

// lastLeaf returns the elements of the rightmost leaf.
func lastLeaf[T any](n *vnode[T]) []T {
	for n.level > 0 {
		n = n.children[len(n.children)-1]
	}
	return n.leafs
}

// each walks the subtree in index order, calling f for every element until
// f returns false. It reports whether the walk ran to completion.
func (n *vnode[T]) each(f func(T) bool) bool {
	if n.level == 0 {
		for _, x := range n.leafs {
			if !f(x) {
				return false
			}
		}
		return true
	}
	for _, c := range n.children {
		if !c.each(f) {
			return false
		}
	}
	return true
}

func (n *vnode[T]) String() string {
	b := strings.Builder{}
	b.WriteByte('[')
	if n.level == 0 {
		for i, l := range n.leafs {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(fmt.Sprintf("%v", l))
		}
	} else {
		for i, c := range n.children {
			if i > 0 {
				b.WriteByte(',')
			}
			if c == nil {
				b.WriteByte('_')
			} else {
				b.WriteString("▪︎")
			}
		}
	}
	b.WriteByte(']')
	return b.String()
}

// --- Helpers ---------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("vector: "+msg, msgargs...)
		panic(msg)
	}
}
