package hash

import "math"

// Init is the DJB hash accumulator seed.
const Init uint32 = 5381

// Combine folds h into the accumulator acc.
func Combine(acc, h uint32) uint32 {
	return mul33(acc) + h
}

// Seq combines a sequence of hash codes into one.
func Seq(hs ...uint32) uint32 {
	acc := Init
	for _, h := range hs {
		acc = Combine(acc, h)
	}
	return acc
}

// UInt32 hashes a 32-bit integer (identity).
func UInt32(u uint32) uint32 {
	return u
}

// UInt64 folds a 64-bit integer into 32 bits.
func UInt64(u uint64) uint32 {
	return mul33(uint32(u>>32)) + uint32(u&0xffffffff)
}

// String hashes a string DJB-style.
func String(s string) uint32 {
	h := Init
	for i := 0; i < len(s); i++ {
		h = Combine(h, uint32(s[i]))
	}
	return h
}

func mul33(u uint32) uint32 {
	return u<<5 + u
}

// Hasher is implemented by values which know their own hash code.
type Hasher interface {
	// Hash computes the hash code of the receiver.
	Hash() uint32
}

// Equaler is implemented by values which carry their own notion of
// equality, overriding ==.
type Equaler interface {
	// Equal reports whether the receiver equals other.
	Equal(other any) bool
}

// Of returns the 32-bit hash of a value. It is implemented for the builtin
// types bool, string, the integer and float types, and for types satisfying
// Hasher. For other values it returns 0, which is correct but degrades a
// hash trie into a collision bucket.
func Of(v any) uint32 {
	switch v := v.(type) {
	case bool:
		if v {
			return 1
		}
		return 0
	case int:
		return UInt64(uint64(v))
	case int8:
		return UInt32(uint32(v))
	case int16:
		return UInt32(uint32(v))
	case int32:
		return UInt32(uint32(v))
	case int64:
		return UInt64(uint64(v))
	case uint:
		return UInt64(uint64(v))
	case uint8:
		return UInt32(uint32(v))
	case uint16:
		return UInt32(uint32(v))
	case uint32:
		return UInt32(v)
	case uint64:
		return UInt64(v)
	case float32:
		return UInt32(math.Float32bits(v))
	case float64:
		return UInt64(math.Float64bits(v))
	case string:
		return String(v)
	case Hasher:
		return v.Hash()
	}
	tracer().Debugf("no hash code for value of type %T, returning 0", v)
	return 0
}

// Eq reports whether two values are equal, consulting Equaler first and
// falling back to ==. Eq panics for uncomparable values which do not
// implement Equaler, just like == does.
func Eq(a, b any) bool {
	if ae, ok := a.(Equaler); ok {
		return ae.Equal(b)
	}
	return a == b
}
