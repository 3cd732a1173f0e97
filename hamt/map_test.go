package hamt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/persistent"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m := Immutable[string, int]().Set("foo", 1).Set("bar", 2).Set("foo", 3)
	require.Equal(t, 2, m.Len(), "replacing a key must not grow the map")
	require.Equal(t, 3, m.Get("foo"))
	require.Equal(t, 2, m.Get("bar"))

	m2 := m.Delete("bar")
	require.Equal(t, 1, m2.Len())
	require.False(t, m2.Has("bar"))
	require.True(t, m.Has("bar"), "delete must leave the original unchanged")

	require.PanicsWithValue(t, persistent.KeyError{Key: "bar"}, func() {
		m2.Delete("bar")
	})
}

func TestGetAbsentPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m := Immutable[string, int]()
	require.PanicsWithValue(t, persistent.KeyError{Key: "nope"}, func() {
		m.Get("nope")
	})
}

func TestDefaultCallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m := Immutable[string, int](Default[string, int](func(k string) int {
		return len(k)
	}))
	m = m.Set("foo", 1)
	require.Equal(t, 1, m.Get("foo"))
	require.Equal(t, 7, m.Get("absent!"), "expected the default callback for an absent key")
	require.Equal(t, 1, m.Len(), "the default callback must not insert")
}

func TestFetch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m := Immutable[string, int]().Set("foo", 1)
	require.Equal(t, 1, m.Fetch("foo", -1))
	require.Equal(t, -1, m.Fetch("bar", -1))
	require.Equal(t, 3, m.FetchBy("bar", func(k string) int { return len(k) }))
}

func TestSetManyAndEnumerate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m := Immutable[int, int]()
	for i := 0; i < 1000; i++ {
		m = m.Set(i, i*i)
	}
	require.Equal(t, 1000, m.Len())
	for i := 0; i < 1000; i++ {
		require.Equal(t, i*i, m.Get(i))
	}
	seen := map[int]bool{}
	m.Each(func(k, v int) bool {
		require.Equal(t, k*k, v)
		require.False(t, seen[k], "no key may be enumerated twice")
		seen[k] = true
		return true
	})
	require.Equal(t, 1000, len(seen))
}

func TestDeleteMany(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m := Immutable[int, int]()
	for i := 0; i < 300; i++ {
		m = m.Set(i, i)
	}
	for i := 0; i < 300; i++ {
		m = m.Delete(i)
		require.Equal(t, 300-i-1, m.Len())
		require.False(t, m.Has(i))
	}
	require.True(t, m.IsEmpty())
}

func TestCollisions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	// All keys share one hash code, forcing them into a single bucket.
	clash := Hashing[string, int](
		func(string) uint32 { return 0xdeadbeef },
		func(a, b string) bool { return a == b },
	)
	m := Immutable[string, int](clash)
	keys := []string{"a", "b", "c", "d", "e"}
	for i, k := range keys {
		m = m.Set(k, i)
	}
	require.Equal(t, len(keys), m.Len())
	for i, k := range keys {
		require.Equal(t, i, m.Get(k))
	}
	m = m.Delete("c")
	require.Equal(t, len(keys)-1, m.Len())
	require.False(t, m.Has("c"))
	require.True(t, m.Has("d"))
}

func TestZeroHashKeysLiveAtRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	zero := Hashing[int, string](
		func(int) uint32 { return 0 },
		func(a, b int) bool { return a == b },
	)
	m := Immutable[int, string](zero).Set(1, "one").Set(2, "two")
	require.Equal(t, 2, m.Len())
	require.Equal(t, "one", m.Get(1))
	require.Equal(t, "two", m.Get(2))
}

func TestMerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	left := From([]persistent.Pair[string, int]{
		{Key: "foo", Value: 1},
		{Key: "bar", Value: 2},
	})
	right := From([]persistent.Pair[string, int]{
		{Key: "foo", Value: 100},
		{Key: "qux", Value: 5},
	})
	merged := left.Merge(right)
	want := From([]persistent.Pair[string, int]{
		{Key: "foo", Value: 100},
		{Key: "bar", Value: 2},
		{Key: "qux", Value: 5},
	})
	require.True(t, merged.Equal(want), "expected right-biased union, is %s", merged)
	require.Equal(t, 1, left.Get("foo"), "merge must leave the left operand unchanged")
	require.Equal(t, 2, right.Len(), "merge must leave the right operand unchanged")
}

func TestRoundtripThroughNativeMap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	native := map[string]int{"a": 1, "b": 2, "c": 3}
	m := FromMap(native)
	if diff := cmp.Diff(native, Native(m)); diff != "" {
		t.Errorf("native round-trip mismatch (-want +got):\n%s", diff)
	}
	require.True(t, FromMap(Native(m)).Equal(m))
}

func TestEqualAndHash(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m1 := FromMap(map[string]int{"a": 1, "b": 2})
	m2 := Immutable[string, int]().Set("b", 2).Set("a", 1)
	require.True(t, m1.Equal(m2))
	require.Equal(t, m1.Hash(), m2.Hash(), "equal maps must have equal hash codes")
	require.False(t, m1.Equal(m2.Set("c", 3)))
	require.False(t, m1.Equal(m2.Set("a", -1)))
}

func TestIterationIsStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m := Immutable[int, int]()
	for i := 0; i < 100; i++ {
		m = m.Set(i, i)
	}
	first := m.Keys()
	second := m.Keys()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("expected stable iteration order (-first +second):\n%s", diff)
	}
}

func TestKeysAndValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m := FromMap(map[string]int{"a": 1, "b": 2})
	require.ElementsMatch(t, []string{"a", "b"}, m.Keys())
	require.ElementsMatch(t, []int{1, 2}, m.Values())
	count := 0
	m.EachKey(func(string) bool { count++; return true })
	m.EachValue(func(int) bool { count++; return true })
	require.Equal(t, 4, count)
}

func TestIterator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m := Immutable[int, int]()
	for i := 0; i < 500; i++ {
		m = m.Set(i, -i)
	}
	seen := 0
	for it := m.Iterator(); it.HasElem(); it.Next() {
		k, v := it.Elem()
		require.Equal(t, -k, v)
		seen++
	}
	require.Equal(t, 500, seen)
}

func TestStringAndJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m := Immutable[string, int]().Set("foo", 1)
	require.Equal(t, "Map {foo: 1}", m.String())
	data, err := m.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"foo": 1}`, string(data))
}

func TestDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m := FromMap(map[string]int{"a": 1, "b": 2, "c": 3})
	dump := m.Dump()
	if dump == "" {
		t.Error("expected non-empty dump")
	}
	t.Logf("%s", dump)
}

func TestSetIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.hamt")
	defer teardown()
	//
	m := FromMap(map[string]int{"a": 1, "b": 2})
	require.True(t, m.Set("a", m.Get("a")).Equal(m), "re-setting a present entry must yield an equal map")
}
