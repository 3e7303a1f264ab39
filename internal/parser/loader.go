package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// GrammarLoader owns the tree-sitter language handles. The Python grammar is
// compiled in; loading happens once per process.
type GrammarLoader struct {
	python *sitter.Language
}

func NewGrammarLoader() *GrammarLoader {
	return &GrammarLoader{
		python: sitter.NewLanguage(tree_sitter_python.Language()),
	}
}

// Python returns the loaded Python grammar. The checker probes it for
// optional node kinds at construction.
func (gl *GrammarLoader) Python() *sitter.Language {
	return gl.python
}
