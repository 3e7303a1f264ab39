package checker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// KindSets groups the node kinds the checker treats as equivalent. The
// synchronous kind is always present; the asynchronous variant is added only
// when the loaded grammar actually defines it. Classifier dispatch goes
// through these sets, never through a single hardcoded kind, so a grammar
// without async constructs simply never matches them.
type KindSets struct {
	Function map[string]bool
	For      map[string]bool
	With     map[string]bool
}

// ProbeKinds inspects the grammar once at checker construction.
// IdForNodeKind returns 0 for kinds the grammar does not know.
func ProbeKinds(lang *sitter.Language) KindSets {
	ks := KindSets{
		Function: map[string]bool{"function_definition": true},
		For:      map[string]bool{"for_statement": true},
		With:     map[string]bool{"with_statement": true},
	}

	if lang.IdForNodeKind("async_function_definition", true) != 0 {
		ks.Function["async_function_definition"] = true
	}
	if lang.IdForNodeKind("async_for_statement", true) != 0 {
		ks.For["async_for_statement"] = true
	}
	if lang.IdForNodeKind("async_with_statement", true) != 0 {
		ks.With["async_with_statement"] = true
	}

	return ks
}
