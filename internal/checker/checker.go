// Package checker flags program-defined names that shadow Python builtins.
// It walks a tree-sitter syntax tree once and inspects every construct that
// introduces a name binding: assignments, function and class definitions,
// parameters, loop targets, context-manager aliases, exception-handler
// aliases, comprehension targets and import aliases. References are never
// reported, only bindings.
package checker

import (
	"iter"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Checker is stateless across runs; it carries only the kind sets probed
// from the grammar at construction. A single Checker is safe to share across
// concurrent analyses of different files.
type Checker struct {
	kinds KindSets
}

func New(lang *sitter.Language) *Checker {
	return &Checker{kinds: ProbeKinds(lang)}
}

// Run yields findings lazily in discovery order. The consumer may stop early
// without side effects; a fresh call restarts the analysis from scratch.
func (c *Checker) Run(root *sitter.Node, source []byte) iter.Seq[Finding] {
	return func(yield func(Finding) bool) {
		parents := buildParents(root)
		c.walk(root, source, parents, yield)
	}
}

// Analyze collects the full run into a slice.
func (c *Checker) Analyze(root *sitter.Node, source []byte) []Finding {
	var findings []Finding
	for f := range c.Run(root, source) {
		findings = append(findings, f)
	}
	return findings
}

func (c *Checker) walk(n *sitter.Node, source []byte, parents parentTable, yield func(Finding) bool) bool {
	if !c.dispatch(n, source, parents, yield) {
		return false
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if !c.walk(n.Child(i), source, parents, yield) {
			return false
		}
	}
	return true
}

// dispatch routes a node to its classifier. Kinds outside the allow-list are
// skipped on purpose; only binding-introducing constructs are inspected.
func (c *Checker) dispatch(n *sitter.Node, source []byte, parents parentTable, yield func(Finding) bool) bool {
	kind := n.Kind()
	switch {
	case kind == "assignment":
		return c.checkAssignment(n, source, parents, yield)
	case c.kinds.Function[kind]:
		return c.checkFunction(n, source, parents, yield)
	case c.kinds.For[kind]:
		return c.checkFor(n, source, yield)
	case c.kinds.With[kind]:
		return c.checkWith(n, source, yield)
	case kind == "except_clause":
		return c.checkExcept(n, source, yield)
	case kind == "list_comprehension", kind == "set_comprehension",
		kind == "dictionary_comprehension", kind == "generator_expression":
		return c.checkComprehension(n, source, yield)
	case kind == "import_statement", kind == "import_from_statement":
		return c.checkImport(n, source, yield)
	case kind == "class_definition":
		return c.checkClass(n, source, yield)
	}
	return true
}

// checkAssignment inspects simple-name targets. Attribute and subscript
// targets never introduce a new name and are ignored. Chained assignments
// need no special handling here: the right side of `a = b = 1` is itself an
// assignment node and gets dispatched on its own visit.
func (c *Checker) checkAssignment(n *sitter.Node, source []byte, parents parentTable, yield func(Finding) bool) bool {
	left := n.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return true
	}

	name := nodeText(left, source)
	if !IsReserved(name) {
		return true
	}

	code, template := CodeVariable, msgVariable
	if parents.inClassBody(n) {
		code, template = CodeClassAttribute, msgClassAttribute
	}
	return yield(newFinding(left, code, template, name))
}

// checkFunction inspects the function's own name and each positional
// parameter. Methods use the class-attribute wording for the name; shadowed
// parameters always report independently with the argument message.
func (c *Checker) checkFunction(n *sitter.Node, source []byte, parents parentTable, yield func(Finding) bool) bool {
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		name := nodeText(nameNode, source)
		if IsReserved(name) {
			code, template := CodeVariable, msgVariable
			if parents.inClassBody(n) {
				code, template = CodeClassAttribute, msgClassAttribute
			}
			if !yield(newFinding(n, code, template, name)) {
				return false
			}
		}
	}

	params := n.ChildByFieldName("parameters")
	if params == nil {
		return true
	}
	for i := uint(0); i < params.NamedChildCount(); i++ {
		param := params.NamedChild(i)
		// Everything past a bare `*` or `*args` is keyword-only, which is
		// outside the positional arguments this classifier covers.
		if kind := param.Kind(); kind == "keyword_separator" || kind == "list_splat_pattern" {
			break
		}
		ident := parameterName(param)
		if ident == nil {
			continue
		}
		name := nodeText(ident, source)
		if !IsReserved(name) {
			continue
		}
		if !yield(newFinding(param, CodeArgument, msgArgument, name)) {
			return false
		}
	}
	return true
}

// parameterName extracts the bound identifier from a parameter node, or nil
// for forms that do not bind a plain name (*args, **kwargs, separators).
func parameterName(param *sitter.Node) *sitter.Node {
	switch param.Kind() {
	case "identifier":
		return param
	case "default_parameter", "typed_default_parameter":
		name := param.ChildByFieldName("name")
		if name != nil && name.Kind() == "identifier" {
			return name
		}
	case "typed_parameter":
		if first := param.NamedChild(0); first != nil && first.Kind() == "identifier" {
			return first
		}
	}
	return nil
}

// checkFor flattens the loop target through arbitrarily nested tuple and
// list patterns. An attribute target contributes its attribute name. Every
// finding is anchored at the for statement itself, not the destructured
// sub-node.
func (c *Checker) checkFor(n *sitter.Node, source []byte, yield func(Finding) bool) bool {
	left := n.ChildByFieldName("left")
	if left == nil {
		return true
	}

	stack := []*sitter.Node{left}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch item.Kind() {
		case "pattern_list", "tuple_pattern", "list_pattern", "tuple", "list":
			for i := uint(0); i < item.NamedChildCount(); i++ {
				stack = append(stack, item.NamedChild(i))
			}
		case "attribute":
			attr := item.ChildByFieldName("attribute")
			if attr == nil {
				continue
			}
			name := nodeText(attr, source)
			if IsReserved(name) && !yield(newFinding(n, CodeVariable, msgVariable, name)) {
				return false
			}
		case "identifier":
			name := nodeText(item, source)
			if IsReserved(name) && !yield(newFinding(n, CodeVariable, msgVariable, name)) {
				return false
			}
		}
	}
	return true
}

// checkWith inspects every context item's `as` alias, which may bind a
// single name or a tuple of names. Findings are anchored at the with
// statement.
func (c *Checker) checkWith(n *sitter.Node, source []byte, yield func(Finding) bool) bool {
	clause := namedChildOfKind(n, "with_clause")
	if clause == nil {
		return true
	}

	for i := uint(0); i < clause.NamedChildCount(); i++ {
		item := clause.NamedChild(i)
		if item.Kind() != "with_item" {
			continue
		}
		value := item.ChildByFieldName("value")
		if value == nil || value.Kind() != "as_pattern" {
			continue
		}
		target := aliasTarget(value)
		if target == nil {
			continue
		}

		switch target.Kind() {
		case "identifier":
			name := nodeText(target, source)
			if IsReserved(name) && !yield(newFinding(n, CodeVariable, msgVariable, name)) {
				return false
			}
		case "tuple_pattern", "pattern_list", "tuple":
			for j := uint(0); j < target.NamedChildCount(); j++ {
				element := target.NamedChild(j)
				if element.Kind() != "identifier" {
					continue
				}
				name := nodeText(element, source)
				if IsReserved(name) && !yield(newFinding(n, CodeVariable, msgVariable, name)) {
					return false
				}
			}
		}
	}
	return true
}

// checkExcept inspects the handler's bound alias. The alias representation
// differs across grammar versions (bare identifier vs wrapped target), so it
// is normalized to a string before the registry lookup.
func (c *Checker) checkExcept(n *sitter.Node, source []byte, yield func(Finding) bool) bool {
	pattern := namedChildOfKind(n, "as_pattern")
	if pattern == nil {
		return true
	}
	target := aliasTarget(pattern)
	if target == nil || target.Kind() != "identifier" {
		return true
	}

	name := nodeText(target, source)
	if IsReserved(name) {
		return yield(newFinding(n, CodeVariable, msgVariable, name))
	}
	return true
}

// checkComprehension inspects every generator clause's target, destructuring
// tuples one level. Findings anchor at the comprehension expression.
func (c *Checker) checkComprehension(n *sitter.Node, source []byte, yield func(Finding) bool) bool {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		clause := n.NamedChild(i)
		if clause.Kind() != "for_in_clause" {
			continue
		}
		left := clause.ChildByFieldName("left")
		if left == nil {
			continue
		}

		switch left.Kind() {
		case "identifier":
			name := nodeText(left, source)
			if IsReserved(name) && !yield(newFinding(n, CodeVariable, msgVariable, name)) {
				return false
			}
		case "pattern_list", "tuple_pattern", "tuple":
			for j := uint(0); j < left.NamedChildCount(); j++ {
				element := left.NamedChild(j)
				if element.Kind() != "identifier" {
					continue
				}
				name := nodeText(element, source)
				if IsReserved(name) && !yield(newFinding(n, CodeVariable, msgVariable, name)) {
					return false
				}
			}
		}
	}
	return true
}

// checkImport inspects only the alias portion of imported names. Unaliased
// imports are left alone: `import os` keeps the module's own name, only
// `import os as dir` introduces a fresh binding worth checking.
func (c *Checker) checkImport(n *sitter.Node, source []byte, yield func(Finding) bool) bool {
	var aliased []*sitter.Node
	collectKind(n, "aliased_import", &aliased)

	for _, imp := range aliased {
		alias := imp.ChildByFieldName("alias")
		if alias == nil {
			continue
		}
		name := nodeText(alias, source)
		if IsReserved(name) && !yield(newFinding(n, CodeVariable, msgVariable, name)) {
			return false
		}
	}
	return true
}

// checkClass inspects the class's own name. The class-attribute wording is
// reserved for members of the class, never for the class identifier itself.
func (c *Checker) checkClass(n *sitter.Node, source []byte, yield func(Finding) bool) bool {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return true
	}
	name := nodeText(nameNode, source)
	if IsReserved(name) {
		return yield(newFinding(n, CodeVariable, msgVariable, name))
	}
	return true
}

// aliasTarget unwraps an as_pattern's alias. Depending on the grammar
// version the alias is either the target node directly or an
// as_pattern_target wrapper around it.
func aliasTarget(pattern *sitter.Node) *sitter.Node {
	alias := pattern.ChildByFieldName("alias")
	if alias == nil {
		return nil
	}
	if alias.Kind() == "as_pattern_target" {
		return alias.NamedChild(0)
	}
	return alias
}

func namedChildOfKind(n *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

func collectKind(n *sitter.Node, kind string, out *[]*sitter.Node) {
	if n.Kind() == kind {
		*out = append(*out, n)
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		collectKind(n.Child(i), kind, out)
	}
}

func nodeText(n *sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}
