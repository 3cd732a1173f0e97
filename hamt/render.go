package hamt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	tp "github.com/xlab/treeprint"
)

// String renders the map as a type-tagged entry list, e.g.
// "Map {foo: 1, bar: 2}". Entries appear in iteration order.
func (m Map[K, V]) String() string {
	b := strings.Builder{}
	b.WriteString("Map {")
	first := true
	m.Each(func(k K, v V) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %v", k, v)
		return true
	})
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON renders the map as a JSON object. Non-string keys are
// rendered with their native formatting.
func (m Map[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	index := 0
	var err error
	m.Each(func(k K, v V) bool {
		if index > 0 {
			buf.WriteByte(',')
		}
		keyBytes, kerr := json.Marshal(fmt.Sprint(k))
		if kerr != nil {
			err = &marshalError{index, kerr}
			return false
		}
		valBytes, verr := json.Marshal(v)
		if verr != nil {
			err = &marshalError{index, verr}
			return false
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		buf.Write(valBytes)
		index++
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type marshalError struct {
	index int
	cause error
}

func (err *marshalError) Error() string {
	return fmt.Sprintf("entry %d: %s", err.index, err.cause)
}

// Dump renders the trie shape of the map for debugging, with each node
// annotated by its bitmap and cached entry count.
func (m Map[K, V]) Dump() string {
	header := fmt.Sprintf("Map(len=%d)\n", m.Len())
	printer := tp.New()
	dumpNode(printer, m.root)
	return header + printer.String() + "\n"
}

func dumpNode[K, V any](printer tp.Tree, node *hnode[K, V]) {
	if node == nil {
		return
	}
	label := fmt.Sprintf("bitmap=%#08x #%d", node.bitmap, node.count)
	if len(node.values) > 0 {
		b := strings.Builder{}
		for i, e := range node.values {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%v:%v", e.Key, e.Value)
		}
		label += " {" + b.String() + "}"
	}
	if len(node.children) == 0 {
		printer.AddNode(label)
		return
	}
	branch := printer.AddBranch(label)
	for _, ch := range node.children {
		dumpNode(branch, ch)
	}
}
