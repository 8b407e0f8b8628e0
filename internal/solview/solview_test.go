package solview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulloak-go/bulloak/internal/solview"
	"github.com/bulloak-go/bulloak/internal/source"
)

func parse(t *testing.T, content string) (*solview.PartsView, []string) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddFile("t.t.sol", []byte(content))
	view, diags := solview.Parse(fs.Get(id))
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, d.Message)
	}
	return view, msgs
}

func TestParseFindsModifierAndFunctionInOrder(t *testing.T) {
	src := `// SPDX-License-Identifier: UNLICENSED
pragma solidity 0.8.0;

contract FooTest {
    modifier whenStuffIsCalled() { _; }

    function test_RevertWhen_StuffIsCalled() external whenStuffIsCalled {
        vm.skip(true);
    }
}
`
	view, diags := parse(t, src)
	require.Empty(t, diags)
	assert.Equal(t, "FooTest", view.Contract)
	require.Len(t, view.Items, 2)
	assert.Equal(t, solview.KindModifier, view.Items[0].Kind)
	assert.Equal(t, "whenStuffIsCalled", view.Items[0].Name)
	assert.Equal(t, solview.KindFunction, view.Items[1].Kind)
	assert.Equal(t, "test_RevertWhen_StuffIsCalled", view.Items[1].Name)
	assert.Equal(t, []string{"whenStuffIsCalled"}, view.Items[1].Modifiers)
}

func TestParseIgnoresStateVariablesAsOther(t *testing.T) {
	src := `contract FooTest {
    uint256 public counter;
    event Thing(uint256 x);

    function test_A() external {
    }
}
`
	view, diags := parse(t, src)
	require.Empty(t, diags)
	require.Len(t, view.Items, 3)
	assert.Equal(t, solview.KindOther, view.Items[0].Kind)
	assert.Equal(t, solview.KindOther, view.Items[1].Kind)
	assert.Equal(t, solview.KindFunction, view.Items[2].Kind)
}

func TestParseSkipsBracesInsideStringsAndComments(t *testing.T) {
	src := `contract FooTest {
    // a comment with a brace } that must not confuse scanning
    string public note = "{not a brace}";

    function test_A() external view {
    }
}
`
	view, diags := parse(t, src)
	require.Empty(t, diags)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "test_A", view.Items[1].Name)
	assert.Empty(t, view.Items[1].Modifiers)
}

func TestParseMultipleModifiersOnOneFunction(t *testing.T) {
	src := `contract FooTest {
    function test_A() external onlyOwner whenNotPaused {
    }
}
`
	view, _ := parse(t, src)
	require.Len(t, view.Items, 1)
	assert.Equal(t, []string{"onlyOwner", "whenNotPaused"}, view.Items[0].Modifiers)
}

func TestParseNoContractReportsDiagnostic(t *testing.T) {
	_, diags := parse(t, "pragma solidity 0.8.0;\n")
	require.Len(t, diags, 1)
}

func TestFormatIsIdempotent(t *testing.T) {
	src := "contract FooTest {  \n\n\n\n    function a() external {}\n\n\n}\n\n\n"
	once := solview.Format(src)
	twice := solview.Format(once)
	assert.Equal(t, once, twice)
	assert.NotContains(t, once, "   \n")
}

func TestFormatCollapsesBlankLines(t *testing.T) {
	got := solview.Format("a\n\n\n\nb\n")
	assert.Equal(t, "a\n\nb\n", got)
}
