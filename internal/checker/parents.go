package checker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// parentTable maps node identity to the node's immediate parent. It is built
// once per analysis run, before classification starts, and never mutated
// afterwards. Keeping the links in a side table leaves the externally owned
// tree untouched, so independent trees can be annotated concurrently.
type parentTable map[uintptr]*sitter.Node

func buildParents(root *sitter.Node) parentTable {
	parents := make(parentTable)

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for i := uint(0); i < n.ChildCount(); i++ {
			child := n.Child(i)
			parents[child.Id()] = n
			walk(child)
		}
	}
	walk(root)

	return parents
}

// inClassBody reports whether n sits directly in a class body. The grammar
// wraps statements in expression_statement and bodies in block, and puts
// decorated definitions inside decorated_definition, so those are skipped
// before checking for the enclosing class_definition. Enclosing assignment
// nodes are skipped too: in `a = b = 1` the inner assignment hangs off the
// outer one, yet both targets share the statement's context.
func (p parentTable) inClassBody(n *sitter.Node) bool {
	parent := p[n.Id()]
	for parent != nil {
		kind := parent.Kind()
		if kind != "expression_statement" && kind != "decorated_definition" && kind != "assignment" {
			break
		}
		parent = p[parent.Id()]
	}
	if parent == nil || parent.Kind() != "block" {
		return false
	}

	grand := p[parent.Id()]
	return grand != nil && grand.Kind() == "class_definition"
}
