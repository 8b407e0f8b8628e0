package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/lexer"
	"github.com/bulloak-go/bulloak/internal/source"
	"github.com/bulloak-go/bulloak/internal/token"
)

func tokenize(t *testing.T, content string) ([]token.Token, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddFile("t.tree", []byte(content))
	toks, diags := lexer.New(fs.Get(id)).Tokenize()
	return toks, diags
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeRootOnly(t *testing.T) {
	toks, diags := tokenize(t, "FooTest\n")
	require.Empty(t, diags)
	assert.Equal(t, []token.Kind{token.Word, token.EOF}, kinds(toks))
	assert.Equal(t, "FooTest", toks[0].Text)
}

func TestTokenizeRootWithFunction(t *testing.T) {
	toks, diags := tokenize(t, "Utils::min\n")
	require.Empty(t, diags)
	assert.Equal(t, []token.Kind{token.Word, token.DoubleColon, token.Word, token.EOF}, kinds(toks))
	assert.Equal(t, "Utils", toks[0].Text)
	assert.Equal(t, "min", toks[2].Text)
}

func TestTokenizeBranchWithKeywordAndTitle(t *testing.T) {
	toks, diags := tokenize(t, "FooTest\n└── when something happens\n")
	require.Empty(t, diags)
	require.Len(t, toks, 6)
	assert.Equal(t, token.Word, toks[0].Kind)
	assert.Equal(t, token.Break, toks[1].Kind)
	assert.Equal(t, token.Corner, toks[2].Kind)
	assert.Equal(t, token.When, toks[3].Kind)
	assert.Equal(t, token.String, toks[4].Kind)
	assert.Equal(t, "something happens", toks[4].Text)
}

func TestTokenizeItBranch(t *testing.T) {
	toks, diags := tokenize(t, "FooTest\n├── it should revert\n")
	require.Empty(t, diags)
	assert.Equal(t, []token.Kind{token.Word, token.Break, token.Tee, token.It, token.String, token.EOF}, kinds(toks))
}

func TestTokenizeStripsInlineComment(t *testing.T) {
	toks, _ := tokenize(t, "FooTest\n├── it should revert // because reasons\n")
	require.Len(t, toks, 6)
	assert.Equal(t, "should revert", toks[4].Text)
}

func TestTokenizeTwoBlankLinesSeparateTrees(t *testing.T) {
	toks, diags := tokenize(t, "FooTest\n├── it a\n\n\nBarTest\n├── it b\n")
	require.Empty(t, diags)

	var breakSpans []int
	for _, tok := range toks {
		if tok.Kind == token.Break {
			breakSpans = append(breakSpans, int(tok.Span.End-tok.Span.Start))
		}
	}
	require.Len(t, breakSpans, 3)
	// The separator between the two trees crosses two blank lines, so it
	// covers more source bytes than the plain single-newline breaks.
	assert.Greater(t, breakSpans[1], breakSpans[0])
	assert.Greater(t, breakSpans[1], breakSpans[2])
}

func TestTokenizeCommentOnlyLineIgnored(t *testing.T) {
	toks, diags := tokenize(t, "FooTest\n// a comment line\n├── it a\n")
	require.Empty(t, diags)
	assert.Equal(t, []token.Kind{token.Word, token.Break, token.Tee, token.It, token.String, token.EOF}, kinds(toks))
}

func TestTokenizeKeywordWithoutTitleIsDiagnosed(t *testing.T) {
	_, diags := tokenize(t, "FooTest\n└── when\n")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.LexKeywordWithoutTitle, diags[0].Code)
}

func TestTokenizeControlCharacterIsDiagnosed(t *testing.T) {
	_, diags := tokenize(t, "FooTest\n\x01bad\n")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.LexControlChar, diags[0].Code)
}

func TestTokenizeBadGlyphPositionIsDiagnosed(t *testing.T) {
	_, diags := tokenize(t, "FooTest\n├├ when x\n")
	require.NotEmpty(t, diags)
	assert.Equal(t, diag.LexBadGlyphPosition, diags[0].Code)
}

func TestTokenizeUnicodeIdentifier(t *testing.T) {
	toks, diags := tokenize(t, "Fóo\n")
	require.Empty(t, diags)
	assert.Equal(t, "Fóo", toks[0].Text)
}

func TestTokenizeNonKeywordBranchWordStillProducesTitle(t *testing.T) {
	toks, diags := tokenize(t, "FooTest\n├── whenever something\n")
	require.Empty(t, diags)
	assert.Equal(t, token.Word, toks[3].Kind)
	assert.Equal(t, "whenever", toks[3].Text)
	assert.Equal(t, token.String, toks[4].Kind)
	assert.Equal(t, "something", toks[4].Text)
}

func TestTokenizeNestedBranchSkipsVerticalGuide(t *testing.T) {
	toks, diags := tokenize(t, "FooTest\n├── when a\n│   └── it b\n")
	require.Empty(t, diags)
	assert.Equal(t, []token.Kind{
		token.Word, token.Break, token.Tee, token.When, token.String,
		token.Break, token.Corner, token.It, token.String, token.EOF,
	}, kinds(toks))
}

func TestTokenizeEOFAlwaysTerminal(t *testing.T) {
	toks, _ := tokenize(t, "")
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Kind)
}
