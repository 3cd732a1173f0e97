/*
Package bitpart implements the bit-partition arithmetic shared by the trie
implementations of this module.

Both tries branch with degree 32 and consume an index or a hash code in
groups of 5 bits, lowest group first. Child tables of HAMT nodes are packed:
a 32-bit bitmap records which logical slots are present, and a present
slot's physical position is the popcount of the lower-ordered bits.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bitpart

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'persistent.bitpart'.
func tracer() tracing.Trace {
	return tracing.Select("persistent.bitpart")
}
