/*
Package hamt implements an immutable persistent map, backed by a
hash-array-mapped trie.

A hash-array-mapped trie consumes the 32-bit hash code of a key in groups
of 5 bits, lowest group first; each group selects a child slot among 32.
Nodes store only the children actually present, packed under a bitmap, with
a present slot's physical position given by a popcount of the lower-ordered
bits. A key comes to rest in the bucket of the node at whose depth its
remaining hash bits are zero; keys with fully equal hash codes therefore
share a bucket and are told apart by key equality alone.

Like the vectors of the sibling package, maps have copy-on-write
behaviour: every “modification” returns a new map which shares all but a
hash-path's worth of nodes with the original. Persistent maps are
inherently concurrency-safe; for batch updates a map can be opened into a
single-owner Transient and frozen again, see Map.Transient.

Iteration order is unspecified, but deterministic for a given map value.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package hamt

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'persistent.hamt'.
func tracer() tracing.Trace {
	return tracing.Select("persistent.hamt")
}
