/*
Package persistent provides immutable persistent data structures.

Immutable persistent data structures are data structures which can be copied
and modified efficiently, leaving the original unchanged. Functional
programming languages like Lisp have long relied on using them.
This module offers a bit-partitioned vector trie (package vector) and a
hash-array-mapped trie (package hamt) with similar properties.

Immutable data structures in many cases offer benefits over mutable data
structures in terms of concurrent access and functional reasoning.
*Persistent* immutable data-structures offer structural sharing, which means
that if two data structures are mostly copies of each other, most of the
memory they take up will be shared between them. This implies that making
copies of an immutable data structure is relatively cheap in terms of
space- and time-complexity.

The root package holds the pieces shared by both tries: key/value pairs,
owner tags for transients, and the error kinds with which failing
operations panic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package persistent

import "sync/atomic"

// Pair is a key/value pair, as consumed by map constructors and used for
// the entries stored in map nodes.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// P is a shorthand constructor for a Pair.
func P[K, V any](k K, v V) Pair[K, V] {
	return Pair[K, V]{Key: k, Value: v}
}

// --- Owner tags ------------------------------------------------------------

var ownerSerial uint64

// NewOwner draws a fresh owner tag for a transient. Tag 0 is reserved for
// persistent nodes, i.e. nodes not owned by any transient.
func NewOwner() uint64 {
	return atomic.AddUint64(&ownerSerial, 1)
}

// NoOwner is the owner tag of persistent nodes.
const NoOwner uint64 = 0
