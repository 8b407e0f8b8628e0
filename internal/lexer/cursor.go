package lexer

import (
	"unicode/utf8"

	"github.com/bulloak-go/bulloak/internal/source"
)

// cursor is a byte-position cursor over a single source.File's content,
// with helpers for marking and slicing spans.
type cursor struct {
	file *source.File
	off  uint32
}

func newCursor(f *source.File) cursor {
	return cursor{file: f}
}

func (c *cursor) eof() bool {
	return int(c.off) >= len(c.file.Content)
}

// peek returns the byte at the cursor, or 0 at EOF.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.file.Content[c.off]
}

// peekAt returns the byte n bytes ahead of the cursor, or 0 past EOF.
func (c *cursor) peekAt(n int) byte {
	idx := int(c.off) + n
	if idx < 0 || idx >= len(c.file.Content) {
		return 0
	}
	return c.file.Content[idx]
}

// peekRune decodes the rune at the cursor without consuming it. sz is 0
// at EOF.
func (c *cursor) peekRune() (rune, int) {
	if c.eof() {
		return 0, 0
	}
	r, sz := utf8.DecodeRune(c.file.Content[c.off:])
	return r, sz
}

func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.file.Content[c.off]
	c.off++
	return b
}

func (c *cursor) bumpRune() rune {
	r, sz := c.peekRune()
	if sz == 0 {
		return 0
	}
	c.off += uint32(sz)
	return r
}

type mark uint32

func (c *cursor) mark() mark {
	return mark(c.off)
}

func (c *cursor) spanFrom(m mark) source.Span {
	return source.Span{File: c.file.ID, Start: uint32(m), End: c.off}
}
