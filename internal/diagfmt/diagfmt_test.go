package diagfmt_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/diagfmt"
	"github.com/bulloak-go/bulloak/internal/source"
)

func TestPrettyRendersLocationAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddFile("foo.tree", []byte("FooTest\nBadLine\n"))

	b := diag.NewBag(0)
	b.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 8, End: 15}, "unexpected token"))
	b.Sort()

	var buf bytes.Buffer
	require.NoError(t, diagfmt.Pretty(&buf, fs, b, diagfmt.PrettyOptions{Color: false}))

	out := buf.String()
	assert.Contains(t, out, "foo.tree:2:1")
	assert.Contains(t, out, "unexpected token")
	assert.Contains(t, out, "BadLine")
	assert.Contains(t, out, "^^^^^^^")
}

func TestPrettyIncludesFixHint(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddFile("a.tree", []byte("X\n"))
	d := diag.NewError(diag.ViolationMissingItem, source.Span{File: id, Start: 0, End: 1}, "missing").
		WithFix("insert modifier", diag.TextEdit{Span: source.Span{File: id, Start: 0, End: 0}, NewText: "x"})
	b := diag.NewBag(0)
	b.Add(d)

	var buf bytes.Buffer
	require.NoError(t, diagfmt.Pretty(&buf, fs, b, diagfmt.PrettyOptions{Color: false}))
	assert.Contains(t, buf.String(), "--fix")
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, diagfmt.Summary(&buf, 0, 0, diagfmt.PrettyOptions{}))
	assert.Contains(t, buf.String(), "no violations")

	buf.Reset()
	require.NoError(t, diagfmt.Summary(&buf, 3, 2, diagfmt.PrettyOptions{}))
	assert.Contains(t, buf.String(), "3 violation(s), 2 fix(es)")
}

func TestJSONRoundShape(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddFile("a.tree", []byte("X\n"))
	b := diag.NewBag(0)
	b.Add(diag.NewError(diag.LexControlChar, source.Span{File: id, Start: 0, End: 1}, "bad char"))

	var buf bytes.Buffer
	require.NoError(t, diagfmt.JSON(&buf, fs, b))
	assert.Contains(t, buf.String(), `"message": "bad char"`)
	assert.Contains(t, buf.String(), `"file": "a.tree"`)
}
