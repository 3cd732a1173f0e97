package vector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/npillmayer/persistent/hamt"
	"github.com/npillmayer/persistent/hash"
)

// EqualsBy reports whether v and other have the same length and pairwise
// equal elements under pred.
func (v Vector[T]) EqualsBy(other Vector[T], pred func(a, b T) bool) bool {
	if v.length != other.length {
		return false
	}
	if v.root == other.root {
		// Identical backing tries; only the tails can differ.
		for i := range v.tail {
			if !pred(v.tail[i], other.tail[i]) {
				return false
			}
		}
		return true
	}
	it1, it2 := v.Iterator(), other.Iterator()
	for it1.HasElem() {
		if !pred(it1.Elem(), it2.Elem()) {
			return false
		}
		it1.Next()
		it2.Next()
	}
	return true
}

// Equal reports whether v and other have equal elements, using the
// vector's configured element equality (see EqualsWith).
func (v Vector[T]) Equal(other Vector[T]) bool {
	v.props = v.props.init()
	return v.EqualsBy(other, v.props.eq)
}

// Compare orders v and other lexicographically over their elements under
// cmp. On a common prefix, the shorter vector is less.
func (v Vector[T]) Compare(other Vector[T], cmp func(a, b T) int) int {
	it1, it2 := v.Iterator(), other.Iterator()
	for it1.HasElem() && it2.HasElem() {
		if c := cmp(it1.Elem(), it2.Elem()); c != 0 {
			return c
		}
		it1.Next()
		it2.Next()
	}
	switch {
	case it1.HasElem():
		return 1
	case it2.HasElem():
		return -1
	}
	return 0
}

// Hash returns a 32-bit hash code over the elements, in order. Equal
// vectors have equal hash codes.
func (v Vector[T]) Hash() uint32 {
	v.props = v.props.init()
	h := hash.Init
	v.Each(func(x T) bool {
		h = hash.Combine(h, v.props.hash(x))
		return true
	})
	return h
}

// --- Set operations --------------------------------------------------------

// The set operations key their lookaside sets by the vector's configured
// element hash and equality, stored in a HAMT built through its transient.

func elementSet[T any](v Vector[T], p props[T]) hamt.Map[T, struct{}] {
	m := hamt.Immutable[T, struct{}](hamt.Hashing[T, struct{}](p.hash, p.eq))
	t := m.Transient()
	v.Each(func(x T) bool {
		t.Set(x, struct{}{})
		return true
	})
	return t.Persist()
}

// Concat returns a vector holding the elements of v followed by the
// elements of other.
func (v Vector[T]) Concat(other Vector[T]) Vector[T] {
	t := v.Transient()
	other.Each(func(x T) bool {
		t.Push(x)
		return true
	})
	return t.Persist()
}

// Minus returns a vector holding the elements of v which do not occur in
// other, preserving their order.
func (v Vector[T]) Minus(other Vector[T]) Vector[T] {
	v.props = v.props.init()
	drop := elementSet(other, v.props)
	t := Vector[T]{props: v.props}.Transient()
	v.Each(func(x T) bool {
		if !drop.Has(x) {
			t.Push(x)
		}
		return true
	})
	return t.Persist()
}

// Intersect returns a vector holding the elements of v which also occur in
// other, preserving their order in v and dropping duplicates.
func (v Vector[T]) Intersect(other Vector[T]) Vector[T] {
	v.props = v.props.init()
	keep := elementSet(other, v.props)
	seen := hamt.Immutable[T, struct{}](hamt.Hashing[T, struct{}](v.props.hash, v.props.eq)).Transient()
	t := Vector[T]{props: v.props}.Transient()
	v.Each(func(x T) bool {
		if keep.Has(x) && !seen.Has(x) {
			seen.Set(x, struct{}{})
			t.Push(x)
		}
		return true
	})
	return t.Persist()
}

// Union returns a vector holding the elements of v followed by those
// elements of other not occurring in v, each element once, preserving the
// order of first occurrence.
func (v Vector[T]) Union(other Vector[T]) Vector[T] {
	v.props = v.props.init()
	seen := hamt.Immutable[T, struct{}](hamt.Hashing[T, struct{}](v.props.hash, v.props.eq)).Transient()
	t := Vector[T]{props: v.props}.Transient()
	push := func(x T) bool {
		if !seen.Has(x) {
			seen.Set(x, struct{}{})
			t.Push(x)
		}
		return true
	}
	v.Each(push)
	other.Each(push)
	return t.Persist()
}

// Uniq returns a vector with duplicate elements removed, preserving the
// first occurrence of each.
func (v Vector[T]) Uniq() Vector[T] {
	v.props = v.props.init()
	seen := hamt.Immutable[T, struct{}](hamt.Hashing[T, struct{}](v.props.hash, v.props.eq)).Transient()
	t := Vector[T]{props: v.props}.Transient()
	v.Each(func(x T) bool {
		if !seen.Has(x) {
			seen.Set(x, struct{}{})
			t.Push(x)
		}
		return true
	})
	return t.Persist()
}

// --- Rendering -------------------------------------------------------------

// String renders the vector as a type-tagged element list, e.g.
// "Vector [1, 2, 3]".
func (v Vector[T]) String() string {
	b := strings.Builder{}
	b.WriteString("Vector [")
	first := true
	v.Each(func(x T) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v", x)
		return true
	})
	b.WriteByte(']')
	return b.String()
}

// MarshalJSON renders the vector as a JSON array.
func (v Vector[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	index := 0
	for it := v.Iterator(); it.HasElem(); it.Next() {
		if index > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := json.Marshal(it.Elem())
		if err != nil {
			return nil, &marshalError{index, err}
		}
		buf.Write(elemBytes)
		index++
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

type marshalError struct {
	index int
	cause error
}

func (err *marshalError) Error() string {
	return fmt.Sprintf("element %d: %s", err.index, err.cause)
}
