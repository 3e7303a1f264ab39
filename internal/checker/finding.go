package checker

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// CheckerName identifies this checker as the producer of its findings.
const CheckerName = "shadowscan"

// Stable code prefixes so downstream tooling can filter or suppress by
// category.
const (
	CodeVariable       = "A001"
	CodeArgument       = "A002"
	CodeClassAttribute = "A003"
)

// Message catalog. The literal text is part of the compatibility contract
// with existing suppression rules and must not drift.
const (
	msgVariable       = `A001 "%s" shadows a reserved identifier, consider renaming the variable`
	msgArgument       = `A002 "%s" is used as an argument and shadows a reserved identifier, consider renaming the argument`
	msgClassAttribute = `A003 "%s" is a reserved identifier, consider renaming the class attribute`
)

// Finding is one reported shadowing occurrence. Line and Column are 1-based.
type Finding struct {
	Line     int
	Column   int
	Code     string
	Message  string
	Producer string
}

// newFinding assembles a Finding anchored at the given node. A negative
// position means the parser handed us a malformed node; that is a programming
// error, not a reportable finding.
func newFinding(anchor *sitter.Node, code, template, name string) Finding {
	pos := anchor.StartPosition()
	line := int(pos.Row) + 1
	column := int(pos.Column) + 1
	if line < 1 || column < 1 {
		panic(fmt.Sprintf("checker: malformed node position %d:%d for %q", line, column, name))
	}

	return Finding{
		Line:     line,
		Column:   column,
		Code:     code,
		Message:  fmt.Sprintf(template, name),
		Producer: CheckerName,
	}
}
