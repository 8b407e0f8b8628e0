package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/lexer"
	"github.com/bulloak-go/bulloak/internal/parser"
	"github.com/bulloak-go/bulloak/internal/sema"
	"github.com/bulloak-go/bulloak/internal/source"
)

func check(t *testing.T, content string) []diag.Diagnostic {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddFile("t.tree", []byte(content))
	file := fs.Get(id)
	toks, lexDiags := lexer.New(file).Tokenize()
	require.Empty(t, lexDiags)
	rs, parseDiags := parser.Parse(file, toks)
	require.Empty(t, parseDiags)
	return sema.Check(rs)
}

func TestDuplicateTopLevelActionIsRejected(t *testing.T) {
	diags := check(t, "HashPairTest\n├── It should never revert.\n└── It should never revert.\n")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SemDuplicateTopLevel, diags[0].Code)
}

func TestMultipleRootsRequireConsistentContract(t *testing.T) {
	diags := check(t, "Utils::min\n├── It a\n\n\nHelpers::max\n├── It b\n")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SemInconsistentContract, diags[0].Code)
}

func TestMultipleRootsRequireFunctionPart(t *testing.T) {
	diags := check(t, "Utils::min\n├── It a\n\n\nUtils\n├── It b\n")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SemInconsistentContract, diags[0].Code)
}

func TestEmptyTreeIsRejected(t *testing.T) {
	diags := check(t, "FooTest\n")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SemEmptyTree, diags[0].Code)
}

func TestInvalidConditionIdentifierIsRejected(t *testing.T) {
	diags := check(t, "FooTest\n└── when !!! ???\n    └── it works\n")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SemInvalidConditionIdent, diags[0].Code)
}

func TestDuplicateConditionTitlesAreAllowed(t *testing.T) {
	src := "FooTest\n" +
		"├── When a thing happens\n" +
		"│   └── It works.\n" +
		"└── When a thing happens\n" +
		"    └── It also works.\n"
	diags := check(t, src)
	assert.Empty(t, diags)
}

func TestCleanTreeHasNoDiagnostics(t *testing.T) {
	diags := check(t, "FooTest\n└── When stuff is called\n    └── It should revert.\n")
	assert.Empty(t, diags)
}
