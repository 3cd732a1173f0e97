package vector

import (
	"testing"

	"github.com/npillmayer/persistent"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func intRange(n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	return seq
}

func TestFromAndGet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := From(intRange(100))
	if v.Len() != 100 {
		t.Fatalf("expected length 100, is %d", v.Len())
	}
	if v.Get(0) != 0 {
		t.Errorf("expected v[0] to be 0, is %d", v.Get(0))
	}
	if v.Get(99) != 99 {
		t.Errorf("expected v[99] to be 99, is %d", v.Get(99))
	}
}

func TestPushLeavesOriginalUnchanged(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := From(intRange(100))
	w := v.Push(100)
	if w.Len() != 101 {
		t.Errorf("expected pushed vector to have length 101, is %d", w.Len())
	}
	if v.Len() != 100 {
		t.Errorf("expected original to still have length 100, is %d", v.Len())
	}
	if w.Get(100) != 100 {
		t.Errorf("expected pushed element at index 100, is %d", w.Get(100))
	}
}

func TestBulkPushEqualsFrom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := Immutable[int]()
	for i := 0; i < 1100; i++ {
		v = v.Push(i)
	}
	w := From(intRange(1100))
	if !v.Equal(w) {
		t.Error("expected 1100 pushes to equal From of the same range")
	}
	i := 0
	v.Each(func(x int) bool {
		if x != i {
			t.Fatalf("expected element %d during iteration, is %d", i, x)
		}
		i++
		return true
	})
	if i != 1100 {
		t.Errorf("expected iteration to yield 1100 elements, yielded %d", i)
	}
}

func TestSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := From(intRange(100))
	w := v.Set(40, 4711)
	if w.Get(40) != 4711 {
		t.Errorf("expected updated element at 40 to be 4711, is %d", w.Get(40))
	}
	if v.Get(40) != 40 {
		t.Errorf("expected original element at 40 to be 40, is %d", v.Get(40))
	}
	for j := 0; j < 100; j++ {
		if j == 40 {
			continue
		}
		if w.Get(j) != j {
			t.Fatalf("expected element %d to be untouched, is %d", j, w.Get(j))
		}
	}
}

func TestSetInTail(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := From(intRange(40))
	w := v.Set(35, -1)
	if w.Get(35) != -1 {
		t.Errorf("expected tail element at 35 to be -1, is %d", w.Get(35))
	}
	if v.Get(35) != 35 {
		t.Errorf("expected original tail element at 35 to be 35, is %d", v.Get(35))
	}
}

func TestPop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := From([]int{1, 2, 3, 4})
	last, w := v.Pop()
	if last != 4 {
		t.Errorf("expected popped element to be 4, is %d", last)
	}
	if !w.Equal(From([]int{1, 2, 3})) {
		t.Errorf("expected remainder to be [1, 2, 3], is %s", w)
	}
	if v.Len() != 4 {
		t.Error("expected original to be unchanged by pop")
	}
}

func TestPushPopRoundtrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := From(intRange(64)) // trie only, empty tail
	last, w := v.Push(4711).Pop()
	if last != 4711 {
		t.Errorf("expected pop∘push to yield 4711, is %d", last)
	}
	if !w.Equal(v) {
		t.Error("expected pop∘push to restore the original value")
	}
}

func TestPopAcrossLeafBoundary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := From(intRange(96)) // three full leaves, empty tail
	for i := 95; i >= 0; i-- {
		var last int
		last, v = v.Pop()
		if last != i {
			t.Fatalf("expected pop to yield %d, is %d", i, last)
		}
		if v.Len() != i {
			t.Fatalf("expected length %d after pop, is %d", i, v.Len())
		}
	}
	if !v.IsEmpty() {
		t.Error("expected vector to be drained")
	}
}

func TestPopEmptyPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	defer func() {
		r := recover()
		if _, ok := r.(persistent.RangeError); !ok {
			t.Errorf("expected pop of empty vector to panic with RangeError, got %v", r)
		}
	}()
	Immutable[int]().Pop()
}

func TestPopMOfEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	m, w := Immutable[int]().PopM()
	if m.IsJust() {
		t.Error("expected PopM of empty vector to yield Nothing")
	}
	if !w.IsEmpty() {
		t.Error("expected PopM of empty vector to yield an empty vector")
	}
}

func TestGetOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := From(intRange(10))
	defer func() {
		r := recover()
		if _, ok := r.(persistent.RangeError); !ok {
			t.Errorf("expected out-of-range access to panic with RangeError, got %v", r)
		}
	}()
	v.Get(10)
}

func TestAtVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := From(intRange(10))
	if x, ok := v.At(3).Unwrap(); !ok || x != 3 {
		t.Errorf("expected At(3) to be Just(3), is (%d, %v)", x, ok)
	}
	if v.At(-1).IsJust() {
		t.Error("expected At(-1) to be Nothing")
	}
	if v.AtOr(99, -7) != -7 {
		t.Errorf("expected AtOr fallback for index 99, is %d", v.AtOr(99, -7))
	}
}

func TestFirstLast(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := From(intRange(40))
	if x, ok := v.First().Unwrap(); !ok || x != 0 {
		t.Error("expected First to be Just(0)")
	}
	if x, ok := v.Last().Unwrap(); !ok || x != 39 {
		t.Error("expected Last to be Just(39)")
	}
	w := From(intRange(64)) // empty tail; Last comes from the trie
	if x, ok := w.Last().Unwrap(); !ok || x != 63 {
		t.Error("expected Last of trie-only vector to be Just(63)")
	}
	e := Immutable[int]()
	if e.First().IsJust() || e.Last().IsJust() {
		t.Error("expected First/Last of empty vector to be Nothing")
	}
}

func TestIterator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := From(intRange(1100))
	i := 0
	for it := v.Iterator(); it.HasElem(); it.Next() {
		if it.Elem() != i {
			t.Fatalf("expected iterator element %d, is %d", i, it.Elem())
		}
		i++
	}
	if i != 1100 {
		t.Errorf("expected iterator to yield 1100 elements, yielded %d", i)
	}
}

func TestAny(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := From(intRange(10))
	if !v.Any(nil) {
		t.Error("expected Any(nil) of non-empty vector to be true")
	}
	if !v.Any(func(x int) bool { return x == 7 }) {
		t.Error("expected an element equal to 7")
	}
	if v.Any(func(x int) bool { return x > 100 }) {
		t.Error("expected no element greater than 100")
	}
	if Immutable[int]().Any(nil) {
		t.Error("expected Any(nil) of empty vector to be false")
	}
}
