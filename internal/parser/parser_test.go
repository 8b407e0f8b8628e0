package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulloak-go/bulloak/internal/ast"
	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/lexer"
	"github.com/bulloak-go/bulloak/internal/parser"
	"github.com/bulloak-go/bulloak/internal/source"
)

func parse(t *testing.T, content string) ([]*ast.Root, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddFile("t.tree", []byte(content))
	file := fs.Get(id)
	toks, lexDiags := lexer.New(file).Tokenize()
	require.Empty(t, lexDiags)
	return parser.Parse(file, toks)
}

func TestParseSingleConditionWithNestedAction(t *testing.T) {
	roots, diags := parse(t, "FooTest\n└── When stuff is called\n    └── It should revert.\n        └── Because we shouldn't allow it.\n")
	require.Empty(t, diags)
	require.Len(t, roots, 1)

	root := roots[0]
	assert.Equal(t, "FooTest", root.Contract)
	require.Len(t, root.Children, 1)

	cond := root.Children[0]
	assert.True(t, cond.IsCondition())
	assert.Equal(t, "stuff is called", cond.Title)
	require.Len(t, cond.Children, 1)

	action := cond.Children[0]
	assert.True(t, action.IsAction())
	assert.Equal(t, "should revert.", action.Title)
	require.Len(t, action.Children, 1)

	desc := action.Children[0]
	assert.Equal(t, ast.KindActionDescription, desc.Kind)
	assert.Equal(t, "Because we shouldn't allow it.", desc.Text)
}

func TestParseSiblingConditionsAndTopLevelAction(t *testing.T) {
	src := "HashPairTest\n" +
		"├── It should never revert.\n" +
		"├── When first arg is smaller than second arg\n" +
		"│   └── It should match the result of keccak256(a,b).\n" +
		"└── When first arg is bigger than second arg\n" +
		"    └── It should match the result of keccak256(b,a).\n"
	roots, diags := parse(t, src)
	require.Empty(t, diags)
	require.Len(t, roots, 1)

	root := roots[0]
	require.Len(t, root.Children, 3)
	assert.True(t, root.Children[0].IsAction())
	assert.True(t, root.Children[1].IsCondition())
	assert.True(t, root.Children[2].IsCondition())
	require.Len(t, root.Children[1].Children, 1)
	require.Len(t, root.Children[2].Children, 1)
}

func TestParseMultipleRootsSameFile(t *testing.T) {
	src := "Utils::min\n├── It returns the smaller value.\n\n\nUtils::max\n├── It returns the larger value.\n"
	roots, diags := parse(t, src)
	require.Empty(t, diags)
	require.Len(t, roots, 2)
	assert.Equal(t, "Utils", roots[0].Contract)
	assert.Equal(t, "min", roots[0].Function)
	assert.Equal(t, "Utils", roots[1].Contract)
	assert.Equal(t, "max", roots[1].Function)
}

func TestParseUnexpectedKeywordAtRoot(t *testing.T) {
	_, diags := parse(t, "└── when stuff happens\n")
	require.NotEmpty(t, diags)
	assert.Equal(t, diag.SynUnexpectedKeyword, diags[0].Code)
}

func TestParseMissingFunctionIdentifier(t *testing.T) {
	roots, diags := parse(t, "Utils::\n├── It works.\n")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SynMissingFunctionIdent, diags[0].Code)
	require.Len(t, roots, 1)
	assert.Equal(t, "", roots[0].Function)
}

func TestParseActionWithConditionChildIsFlagged(t *testing.T) {
	src := "FooTest\n├── It should revert.\n│   └── When something\n"
	_, diags := parse(t, src)
	require.NotEmpty(t, diags)
	assert.Equal(t, diag.SynActionHasConditions, diags[0].Code)
}

func TestParseAmbiguousIndentation(t *testing.T) {
	// "It c" dedents below "It b" but lands short of "When a"'s established
	// child indent (5), so it neither continues as "It b"'s child nor
	// cleanly resumes as "When a"'s next sibling.
	src := "FooTest\n├── When a\n    └── It b\n  └── It c\n"
	_, diags := parse(t, src)
	require.NotEmpty(t, diags)
	var sawAmbiguous bool
	for _, d := range diags {
		if d.Code == diag.SynAmbiguousIndent {
			sawAmbiguous = true
		}
	}
	assert.True(t, sawAmbiguous)
}

func TestParseEmptyInputProducesNoRoots(t *testing.T) {
	roots, diags := parse(t, "")
	assert.Empty(t, diags)
	assert.Empty(t, roots)
}
