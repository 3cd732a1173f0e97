/*
Package vector implements an immutable persistent vector, designed for
use-cases similar to Go slices.

An immutable persistent vector has copy-on-write behaviour: Each
“modification” of the vector (insertion, replacement or deletion) creates a
copy, leaving the original unmodified. Under the hood, copy-on-write retains
most of the memory held by the original, and creates a new incarnation of
parts of the structure only. Thus, most of the structure/memory is shared
between original and copy, transparently to clients.

The backing structure is a bit-partitioned trie of degree 32, with the
last partially filled block of elements held in a small tail buffer outside
the trie. 31 out of 32 appends and removals touch only the tail and are
O(1); the remaining ones touch O(log₃₂ n) trie nodes.

Immutable vectors are inherently concurrency-safe. For batching many
updates without allocating intermediate versions, a vector can be turned
into a single-owner mutable Transient and frozen again afterwards; see
Vector.Transient.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vector

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'persistent.vector'.
func tracer() tracing.Trace {
	return tracing.Select("persistent.vector")
}
