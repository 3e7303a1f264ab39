package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

func pythonLanguage() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_python.Language())
}

func analyzeSource(t *testing.T, source string) []Finding {
	t.Helper()

	lang := pythonLanguage()
	p := sitter.NewParser()
	defer p.Close()
	require.NoError(t, p.SetLanguage(lang))

	tree := p.Parse([]byte(source), nil)
	require.NotNil(t, tree)
	defer tree.Close()

	return New(lang).Analyze(tree.RootNode(), []byte(source))
}

func TestAssignmentShadowsBuiltin(t *testing.T) {
	findings := analyzeSource(t, "print = 42\n")

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, CodeVariable, f.Code)
	assert.Equal(t, `A001 "print" shadows a reserved identifier, consider renaming the variable`, f.Message)
	assert.Equal(t, 1, f.Line)
	assert.Equal(t, 1, f.Column)
	assert.Equal(t, CheckerName, f.Producer)
}

func TestAssignmentChainedTargets(t *testing.T) {
	findings := analyzeSource(t, "list = dict = 1\n")

	require.Len(t, findings, 2)
	assert.Contains(t, findings[0].Message, `"list"`)
	assert.Contains(t, findings[1].Message, `"dict"`)
	for _, f := range findings {
		assert.Equal(t, CodeVariable, f.Code)
	}
}

func TestAssignmentNonNameTargetsIgnored(t *testing.T) {
	code := `
obj.list = 1
d["dict"] = 2
`
	findings := analyzeSource(t, code)
	assert.Empty(t, findings)
}

func TestAssignmentInClassBodyUsesClassAttributeMessage(t *testing.T) {
	code := `
class Foo:
    list = []
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, CodeClassAttribute, f.Code)
	assert.Equal(t, `A003 "list" is a reserved identifier, consider renaming the class attribute`, f.Message)
	assert.Equal(t, 3, f.Line)
	assert.Equal(t, 5, f.Column)
}

func TestChainedAssignmentInClassBody(t *testing.T) {
	code := `
class Foo:
    list = dict = 1
`
	findings := analyzeSource(t, code)

	// Both targets of the chain sit in the class body, so both use the
	// class-attribute wording.
	require.Len(t, findings, 2)
	assert.Equal(t, CodeClassAttribute, findings[0].Code)
	assert.Contains(t, findings[0].Message, `"list"`)
	assert.Equal(t, CodeClassAttribute, findings[1].Code)
	assert.Equal(t, `A003 "dict" is a reserved identifier, consider renaming the class attribute`, findings[1].Message)
}

func TestAssignmentInFunctionBodyUsesVariableMessage(t *testing.T) {
	code := `
def work():
    list = []
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 1)
	assert.Equal(t, CodeVariable, findings[0].Code)
}

func TestFunctionNameAndArguments(t *testing.T) {
	code := `
def list(id, max):
    pass
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 3)

	assert.Equal(t, CodeVariable, findings[0].Code)
	assert.Contains(t, findings[0].Message, `"list"`)
	assert.Equal(t, 2, findings[0].Line)

	// Each shadowed argument reports independently of the function name.
	assert.Equal(t, CodeArgument, findings[1].Code)
	assert.Equal(t, `A002 "id" is used as an argument and shadows a reserved identifier, consider renaming the argument`, findings[1].Message)
	assert.Equal(t, CodeArgument, findings[2].Code)
	assert.Contains(t, findings[2].Message, `"max"`)
}

func TestArgumentsWithDefaultsAndAnnotations(t *testing.T) {
	code := `
def work(type=None, id: int = 0, filter: str = ""):
    pass
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 3)
	for _, f := range findings {
		assert.Equal(t, CodeArgument, f.Code)
	}
}

func TestSplatParametersNotChecked(t *testing.T) {
	code := `
def work(*list, **dict):
    pass
`
	findings := analyzeSource(t, code)
	assert.Empty(t, findings)
}

func TestKeywordOnlyParametersNotChecked(t *testing.T) {
	cases := []struct {
		name string
		code string
	}{
		{"bare star", "def work(*, list):\n    pass\n"},
		{"after args splat", "def work(*args, list):\n    pass\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, analyzeSource(t, tc.code))
		})
	}

	// Positional parameters before the separator still report.
	findings := analyzeSource(t, "def work(id, *, list):\n    pass\n")
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, `"id"`)
}

func TestMethodUsesClassAttributeMessage(t *testing.T) {
	code := `
class Foo:
    def type(self):
        pass
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 1)
	assert.Equal(t, CodeClassAttribute, findings[0].Code)
	assert.Contains(t, findings[0].Message, `"type"`)
}

func TestDecoratedMethodUsesClassAttributeMessage(t *testing.T) {
	code := `
class Foo:
    @staticmethod
    def type():
        pass
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 1)
	assert.Equal(t, CodeClassAttribute, findings[0].Code)
}

func TestForLoopDestructuredTarget(t *testing.T) {
	code := `
for (a, (list, b)) in x:
    pass
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Contains(t, f.Message, `"list"`)
	// Anchored at the for statement, not the inner tuple node.
	assert.Equal(t, 2, f.Line)
	assert.Equal(t, 1, f.Column)
}

func TestForLoopAttributeTarget(t *testing.T) {
	code := `
for obj.list in x:
    pass
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, `"list"`)
}

func TestAsyncForLoop(t *testing.T) {
	code := `
async def work(items):
    async for list in items:
        pass
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, `"list"`)
}

func TestWithStatement(t *testing.T) {
	code := `
with open(f) as type:
    pass
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, CodeVariable, f.Code)
	assert.Contains(t, f.Message, `"type"`)
	assert.Equal(t, 2, f.Line)
	assert.Equal(t, 1, f.Column)
}

func TestWithStatementTupleAlias(t *testing.T) {
	code := `
with ctx as (list, x):
    pass
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, `"list"`)
}

func TestWithStatementMultipleItems(t *testing.T) {
	code := `
with open(a) as dict, open(b) as safe:
    pass
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, `"dict"`)
}

func TestExceptHandler(t *testing.T) {
	code := `
try:
    pass
except Exception as filter:
    pass
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Contains(t, f.Message, `"filter"`)
	assert.Equal(t, 4, f.Line)
}

func TestExceptHandlerWithoutAlias(t *testing.T) {
	code := `
try:
    pass
except Exception:
    pass
`
	findings := analyzeSource(t, code)
	assert.Empty(t, findings)
}

func TestComprehensions(t *testing.T) {
	cases := []struct {
		name string
		code string
		want int
	}{
		{"list", "nums = [id for id in range(3)]\n", 1},
		{"set", "nums = {id for id in range(3)}\n", 1},
		{"dict", "nums = {id: 1 for id in range(3)}\n", 1},
		{"generator", "nums = sum(id for id in range(3))\n", 1},
		{"tuple target", "pairs = [x for (list, x) in items]\n", 1},
		{"clean", "nums = [n for n in range(3)]\n", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			findings := analyzeSource(t, tc.code)
			assert.Len(t, findings, tc.want)
		})
	}
}

func TestImportAliasOnly(t *testing.T) {
	assert.Empty(t, analyzeSource(t, "import list\n"))

	findings := analyzeSource(t, "import os as list\n")
	require.Len(t, findings, 1)
	assert.Equal(t, CodeVariable, findings[0].Code)
	assert.Contains(t, findings[0].Message, `"list"`)
}

func TestImportFromAlias(t *testing.T) {
	assert.Empty(t, analyzeSource(t, "from os import path\n"))

	findings := analyzeSource(t, "from os import path as dir\n")
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, `"dir"`)
}

func TestClassNameUsesVariableMessage(t *testing.T) {
	code := `
class list:
    dict = 1
`
	findings := analyzeSource(t, code)

	require.Len(t, findings, 2)

	// The class's own name gets the plain wording, not the class-attribute
	// variant; that one is reserved for members.
	assert.Equal(t, CodeVariable, findings[0].Code)
	assert.Equal(t, `A001 "list" shadows a reserved identifier, consider renaming the variable`, findings[0].Message)
	assert.Equal(t, 2, findings[0].Line)

	assert.Equal(t, CodeClassAttribute, findings[1].Code)
	assert.Contains(t, findings[1].Message, `"dict"`)
}

func TestWhitelistedNamesNeverReport(t *testing.T) {
	code := `
_ = compute()
__name__ = "main"
__doc__ = "docs"
credits = ["alice"]
`
	findings := analyzeSource(t, code)
	assert.Empty(t, findings)
}

func TestIdempotence(t *testing.T) {
	source := []byte(`
print = 1
def list(id):
    pass
`)
	lang := pythonLanguage()
	p := sitter.NewParser()
	defer p.Close()
	require.NoError(t, p.SetLanguage(lang))

	tree := p.Parse(source, nil)
	require.NotNil(t, tree)
	defer tree.Close()

	c := New(lang)
	first := c.Analyze(tree.RootNode(), source)
	second := c.Analyze(tree.RootNode(), source)
	assert.Equal(t, first, second)
}

func TestRunStopsEarly(t *testing.T) {
	source := []byte("print = 1\nlist = 2\ndict = 3\n")

	lang := pythonLanguage()
	p := sitter.NewParser()
	defer p.Close()
	require.NoError(t, p.SetLanguage(lang))

	tree := p.Parse(source, nil)
	require.NotNil(t, tree)
	defer tree.Close()

	c := New(lang)
	var got []Finding
	for f := range c.Run(tree.RootNode(), source) {
		got = append(got, f)
		if len(got) == 1 {
			break
		}
	}

	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, `"print"`)
}

func TestReferencesAreNotFindings(t *testing.T) {
	code := `
values = list(range(3))
print(values)
`
	findings := analyzeSource(t, code)
	assert.Empty(t, findings)
}
