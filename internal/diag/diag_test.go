package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/source"
)

func TestBagAddRespectsCapacity(t *testing.T) {
	b := diag.NewBag(2)
	assert.True(t, b.Add(diag.NewError(diag.LexControlChar, source.Span{}, "a")))
	assert.True(t, b.Add(diag.NewError(diag.LexControlChar, source.Span{}, "b")))
	assert.False(t, b.Add(diag.NewError(diag.LexControlChar, source.Span{}, "c")))
	assert.Equal(t, 2, b.Len())
}

func TestBagHasErrors(t *testing.T) {
	b := diag.NewBag(0)
	assert.False(t, b.HasErrors())
	b.Add(diag.New(diag.SevWarning, diag.UnknownCode, source.Span{}, "warn"))
	assert.False(t, b.HasErrors())
	b.Add(diag.NewError(diag.UnknownCode, source.Span{}, "err"))
	assert.True(t, b.HasErrors())
}

func TestBagSortDeterministic(t *testing.T) {
	b := diag.NewBag(0)
	b.Add(diag.New(diag.SevWarning, diag.SynUnexpectedToken, source.Span{File: 0, Start: 10, End: 12}, "w"))
	b.Add(diag.NewError(diag.SynEmptyRoot, source.Span{File: 0, Start: 1, End: 2}, "e1"))
	b.Add(diag.NewError(diag.LexControlChar, source.Span{File: 0, Start: 1, End: 2}, "e2"))
	b.Sort()
	items := b.Items()
	assert.Equal(t, uint32(1), items[0].Primary.Start)
	assert.Equal(t, uint32(1), items[1].Primary.Start)
	// same span, error beats error by code ascending
	assert.True(t, items[0].Code < items[1].Code)
	assert.Equal(t, uint32(10), items[2].Primary.Start)
}

func TestBagDedupKeepsFirstOccurrence(t *testing.T) {
	b := diag.NewBag(0)
	span := source.Span{File: 0, Start: 1, End: 2}
	first := diag.NewError(diag.SynEmptyRoot, span, "dup")
	b.Add(first)
	b.Add(diag.NewError(diag.SynEmptyRoot, span, "dup"))
	b.Add(diag.NewError(diag.SynEmptyRoot, span, "dup").WithNote(span, "not considered"))
	b.Add(diag.NewError(diag.LexControlChar, span, "dup"))

	b.Dedup()

	items := b.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, diag.SynEmptyRoot, items[0].Code)
	assert.Equal(t, diag.LexControlChar, items[1].Code)
}

func TestDiagnosticWithNoteAndFixImmutable(t *testing.T) {
	base := diag.NewError(diag.ViolationMissingItem, source.Span{}, "missing")
	withNote := base.WithNote(source.Span{Start: 1}, "see here")
	assert.Empty(t, base.Notes)
	assert.Len(t, withNote.Notes, 1)

	withFix := base.WithFix("insert modifier", diag.TextEdit{Span: source.Span{}, NewText: "x"})
	assert.Empty(t, base.Fixes)
	assert.Len(t, withFix.Fixes, 1)
}

func TestDiagnosticError(t *testing.T) {
	d := diag.NewError(diag.LexControlChar, source.Span{}, "bad char")
	assert.Contains(t, d.Error(), "bad char")
	assert.Contains(t, d.Error(), "error")
}
