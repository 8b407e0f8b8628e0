package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulloak-go/bulloak/internal/emit"
	"github.com/bulloak-go/bulloak/internal/hir"
	"github.com/bulloak-go/bulloak/internal/lexer"
	"github.com/bulloak-go/bulloak/internal/parser"
	"github.com/bulloak-go/bulloak/internal/sema"
	"github.com/bulloak-go/bulloak/internal/source"
)

func contractFrom(t *testing.T, content string, cfg hir.Config) *hir.ContractDefinition {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddFile("t.tree", []byte(content))
	file := fs.Get(id)
	toks, lexDiags := lexer.New(file).Tokenize()
	require.Empty(t, lexDiags)
	roots, parseDiags := parser.Parse(file, toks)
	require.Empty(t, parseDiags)
	require.Empty(t, sema.Check(roots))
	contract, diags := hir.Combine(roots, cfg)
	require.Empty(t, diags)
	return contract
}

func TestEmitBasicRevertWhen(t *testing.T) {
	contract := contractFrom(t, "FooTest\n└── When stuff is called\n    └── It should revert.\n",
		hir.Config{SolVersion: "0.8.0"})

	got := emit.Emit(contract)
	want := "// SPDX-License-Identifier: UNLICENSED\n" +
		"pragma solidity 0.8.0;\n\n" +
		"contract FooTest {\n" +
		"    modifier whenStuffIsCalled() { _; }\n" +
		"\n" +
		"    function test_RevertWhen_StuffIsCalled() external whenStuffIsCalled {\n" +
		"    }\n" +
		"}\n"
	assert.Equal(t, want, got)
}

func TestEmitVmSkipAddsImportAndMarker(t *testing.T) {
	contract := contractFrom(t, "FooTest\n└── It does a thing.\n", hir.Config{SolVersion: "0.8.20", VmSkip: true})

	got := emit.Emit(contract)
	want := "// SPDX-License-Identifier: UNLICENSED\n" +
		"pragma solidity 0.8.20;\n\n" +
		"import {Test} from \"forge-std/Test.sol\";\n\n" +
		"contract FooTest is Test {\n" +
		"    function test_DoesAThing() external {\n" +
		"        vm.skip(true);\n" +
		"    }\n" +
		"}\n"
	assert.Equal(t, want, got)
}

func TestEmitActionDescriptionBecomesComment(t *testing.T) {
	src := "FooTest\n" +
		"└── It should revert when called.\n" +
		"    └── Because the caller lacks permission.\n"
	contract := contractFrom(t, src, hir.Config{SolVersion: "0.8.0"})

	got := emit.Emit(contract)
	assert.Contains(t, got, "// Because the caller lacks permission.\n")
}

func TestEmitSkipModifiersOmitsDeclarationsKeepsNames(t *testing.T) {
	contract := contractFrom(t, "FooTest\n└── When stuff is called\n    └── It should revert.\n",
		hir.Config{SolVersion: "0.8.0", SkipModifiers: true})

	got := emit.Emit(contract)
	assert.NotContains(t, got, "modifier whenStuffIsCalled")
	assert.Contains(t, got, "function test_RevertWhen_StuffIsCalled() external whenStuffIsCalled {")
}
