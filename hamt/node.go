package hamt

import (
	"github.com/npillmayer/persistent"
	"github.com/npillmayer/persistent/bitpart"
)

// hnode is a node of the hash trie. bitmap records which of the 32 logical
// child slots are occupied; children holds exactly popcount(bitmap) nodes,
// packed in slot order. values is the bucket of entries whose hash code is
// fully consumed at this node's depth; in the deepest nodes these are the
// hash-collision entries. count caches the total number of entries in the
// subtree.
//
// owner follows the same discipline as in the vector trie: NoOwner for
// persistent nodes, a transient's tag for nodes it may mutate in place.
type hnode[K, V any] struct {
	owner    uint64
	bitmap   uint32
	children []*hnode[K, V]
	values   []persistent.Pair[K, V]
	count    uint32
}

// mutable returns a node safe to mutate on behalf of owner, cloning and
// stamping unless the tags match.
func (n *hnode[K, V]) mutable(owner uint64) *hnode[K, V] {
	if owner != persistent.NoOwner && n.owner == owner {
		return n
	}
	m := &hnode[K, V]{owner: owner, bitmap: n.bitmap, count: n.count}
	if n.children != nil {
		m.children = append([]*hnode[K, V](nil), n.children...)
	}
	if n.values != nil {
		m.values = append([]persistent.Pair[K, V](nil), n.values...)
	}
	return m
}

// consumed reports whether a hash code has no bits left above shift, i.e.
// whether its key belongs into the bucket at this depth.
func consumed(shift, hash uint32) bool {
	return shift >= 32 || hash>>shift == 0
}

// find looks up k in the subtree, with shift bits of its hash already
// consumed by the path to this node.
func (n *hnode[K, V]) find(shift, h uint32, k K, eq func(K, K) bool) (V, bool) {
	if consumed(shift, h) {
		for _, e := range n.values {
			if eq(e.Key, k) {
				return e.Value, true
			}
		}
		var none V
		return none, false
	}
	bit := bitpart.Bitpos(shift, h)
	if n.bitmap&bit == 0 {
		var none V
		return none, false
	}
	child := n.children[bitpart.Index(n.bitmap, bit)]
	return child.find(shift+bitpart.ChunkBits, h, k, eq)
}

// assoc adds or replaces the entry for k. It returns the new (or in-place
// mutated) node and whether the key did not exist before.
func (n *hnode[K, V]) assoc(shift, h uint32, k K, v V, eq func(K, K) bool, owner uint64) (*hnode[K, V], bool) {
	if consumed(shift, h) {
		for i, e := range n.values {
			if eq(e.Key, k) {
				m := n.mutable(owner)
				m.values[i] = persistent.Pair[K, V]{Key: k, Value: v}
				return m, false
			}
		}
		m := n.mutable(owner)
		m.values = append(m.values, persistent.Pair[K, V]{Key: k, Value: v})
		m.count++
		return m, true
	}
	bit := bitpart.Bitpos(shift, h)
	idx := bitpart.Index(n.bitmap, bit)
	if n.bitmap&bit == 0 {
		// Slot is free: grow a child one level deeper and insert there.
		child, _ := (&hnode[K, V]{owner: owner}).assoc(shift+bitpart.ChunkBits, h, k, v, eq, owner)
		m := n.mutable(owner)
		m.bitmap |= bit
		m.children = insertAt(m.children, idx, child)
		m.count++
		return m, true
	}
	newChild, added := n.children[idx].assoc(shift+bitpart.ChunkBits, h, k, v, eq, owner)
	m := n.mutable(owner)
	m.children[idx] = newChild
	if added {
		m.count++
	}
	return m, added
}

// without removes the entry for k. It returns the new node (nil if the
// subtree drained) and whether the key existed. Children drained by the
// removal are dropped and their bitmap bit cleared.
func (n *hnode[K, V]) without(shift, h uint32, k K, eq func(K, K) bool, owner uint64) (*hnode[K, V], bool) {
	if consumed(shift, h) {
		at := -1
		for i, e := range n.values {
			if eq(e.Key, k) {
				at = i
				break
			}
		}
		if at < 0 {
			return n, false
		}
		if n.count == 1 {
			return nil, true
		}
		m := n.mutable(owner)
		m.values = removeAt(m.values, at)
		m.count--
		return m, true
	}
	bit := bitpart.Bitpos(shift, h)
	if n.bitmap&bit == 0 {
		return n, false
	}
	idx := bitpart.Index(n.bitmap, bit)
	newChild, removed := n.children[idx].without(shift+bitpart.ChunkBits, h, k, eq, owner)
	if !removed {
		return n, false
	}
	if newChild == nil && n.count == 1 {
		return nil, true
	}
	m := n.mutable(owner)
	m.count--
	if newChild == nil {
		m.bitmap &^= bit
		m.children = removeAt(m.children, int(idx))
	} else {
		m.children[idx] = newChild
	}
	return m, true
}

// each walks the subtree, calling f for every entry until f returns false.
// It reports whether the walk ran to completion.
func (n *hnode[K, V]) each(f func(K, V) bool) bool {
	for _, e := range n.values {
		if !f(e.Key, e.Value) {
			return false
		}
	}
	for _, c := range n.children {
		if !c.each(f) {
			return false
		}
	}
	return true
}

// --- Helpers ---------------------------------------------------------------

func insertAt[E any](s []E, i uint32, e E) []E {
	s = append(s, e)
	copy(s[i+1:], s[i:])
	s[i] = e
	return s
}

func removeAt[E any](s []E, i int) []E {
	r := make([]E, len(s)-1)
	copy(r[:i], s[:i])
	copy(r[i:], s[i+1:])
	return r
}
