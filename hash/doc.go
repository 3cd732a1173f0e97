/*
Package hash provides 32-bit hash codes and a generic notion of equality for
the keys and elements stored in the collections of this module.

The hashing scheme is Bernstein's DJB combinator. Clients holding types the
package does not know about implement Hasher and Equaler, or configure
their collections with explicit hash/equality functions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package hash

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'persistent.hash'.
func tracer() tracing.Trace {
	return tracing.Select("persistent.hash")
}
