package vector

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Dump renders the trie shape of the vector for debugging, one line per
// node, with each branch annotated by its level and cached element count.
func (v Vector[T]) Dump() string {
	header := fmt.Sprintf("Vector(len=%d, tree=%d, tail=%d)\n",
		v.Len(), v.treeSize(), len(v.tail))
	printer := tp.New()
	dumpNode(printer, v.root)
	printer.AddNode(fmt.Sprintf("tail %v", v.tail))
	return header + printer.String() + "\n"
}

func dumpNode[T any](printer tp.Tree, node *vnode[T]) {
	if node == nil {
		return
	}
	if node.level == 0 {
		printer.AddNode(node.String())
		return
	}
	branch := printer.AddBranch(fmt.Sprintf("level=%d #%d", node.level, node.count))
	for _, ch := range node.children {
		dumpNode(branch, ch)
	}
}
