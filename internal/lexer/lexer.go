// Package lexer implements the .tree tokenizer (spec.md §4.2): a
// context-sensitive two-mode scanner that turns raw source bytes into a
// flat token.Token stream, never panicking on malformed input.
package lexer

import (
	"strings"
	"unicode"

	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/source"
	"github.com/bulloak-go/bulloak/internal/token"
)

// Lexer tokenizes a single source.File.
type Lexer struct {
	c     cursor
	file  *source.File
	diags []diag.Diagnostic
}

// New returns a Lexer over file.
func New(file *source.File) *Lexer {
	return &Lexer{c: newCursor(file), file: file}
}

// Tokenize scans the whole file and returns its token stream (always
// terminated by a single token.EOF) plus any diagnostics raised along
// the way. It never panics.
func (lx *Lexer) Tokenize() ([]token.Token, []diag.Diagnostic) {
	lx.scanControlChars()

	var toks []token.Token
	sawContent := false

	for {
		breakTok, hadBreak := lx.skipToContent()
		if lx.c.eof() {
			break
		}
		if hadBreak && sawContent {
			toks = append(toks, breakTok)
		}
		sawContent = true
		toks = append(toks, lx.scanLine()...)
	}

	toks = append(toks, token.Token{Kind: token.EOF, Span: lx.c.spanFrom(lx.c.mark())})
	return toks, lx.diags
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	lx.diags = append(lx.diags, diag.NewError(code, sp, msg))
}

// scanControlChars flags any disallowed control byte in the file. It
// does not alter scanning; the byte remains part of whatever token it
// falls inside so later stages still see a complete, non-panicking run.
func (lx *Lexer) scanControlChars() {
	for i, b := range lx.file.Content {
		if isDisallowedControl(b) {
			sp := source.Span{File: lx.file.ID, Start: uint32(i), End: uint32(i) + 1}
			lx.report(diag.LexControlChar, sp, "source contains a disallowed control character")
		}
	}
}

func isDisallowedControl(b byte) bool {
	if b == '\n' || b == '\t' || b == '\r' {
		return false
	}
	return b < 0x20 || b == 0x7F
}

// skipToContent advances past indentation, vertical guide glyphs ('│'),
// blank lines, and comment-only lines, returning a Break token covering
// everything skipped if at least one newline was crossed.
func (lx *Lexer) skipToContent() (token.Token, bool) {
	start := lx.c.mark()
	sawNewline := false

	for {
		for {
			r, sz := lx.c.peekRune()
			if sz == 0 || !isLineGuideRune(r) {
				break
			}
			lx.c.bumpRune()
		}
		switch {
		case lx.c.peek() == '\n':
			lx.c.bump()
			sawNewline = true
			continue
		case lx.c.peek() == '/' && lx.c.peekAt(1) == '/':
			for !lx.c.eof() && lx.c.peek() != '\n' {
				lx.c.bump()
			}
			continue
		}
		break
	}

	if !sawNewline {
		return token.Token{}, false
	}
	sp := lx.c.spanFrom(start)
	return token.Token{Kind: token.Break, Span: sp, Text: lx.file.Text(sp)}, true
}

// isLineGuideRune reports whether r is decorative indentation: plain
// whitespace or the vertical tree-guide glyph used under nested branches.
func isLineGuideRune(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '│':
		return true
	}
	return false
}

// scanLine scans exactly one logical content line: either a branch line
// (bullet, keyword, title) or a root line (Word, optional ::Word).
func (lx *Lexer) scanLine() []token.Token {
	if r, _ := lx.c.peekRune(); r == '├' || r == '└' {
		return lx.scanBranchLine()
	}
	return lx.scanRootLine()
}

func (lx *Lexer) scanBranchLine() []token.Token {
	var toks []token.Token

	bulletStart := lx.c.mark()
	r := lx.c.bumpRune()
	kind := token.Tee
	if r == '└' {
		kind = token.Corner
	}
	toks = append(toks, token.Token{Kind: kind, Span: lx.c.spanFrom(bulletStart), Text: string(r)})

	lx.skipBranchSeparator()

	if r2, _ := lx.c.peekRune(); r2 == '├' || r2 == '└' {
		sp := source.Span{File: lx.file.ID, Start: lx.c.off, End: lx.c.off + 1}
		lx.report(diag.LexBadGlyphPosition, sp, "tree-draw glyph in an invalid branch position")
	}

	wordTok, ok := lx.scanWord()
	if !ok {
		return toks
	}

	kw, isKeyword := token.LookupKeyword(wordTok.Text)
	if isKeyword {
		wordTok.Kind = kw
	}
	toks = append(toks, wordTok)

	titleTok, hasTitle := lx.scanTitle()
	if !hasTitle {
		if isKeyword {
			lx.report(diag.LexKeywordWithoutTitle, wordTok.Span, "keyword is not followed by any title text")
		}
		return toks
	}
	toks = append(toks, titleTok)
	return toks
}

// skipBranchSeparator consumes the decorative '──' run and surrounding
// whitespace between a bullet and its keyword.
func (lx *Lexer) skipBranchSeparator() {
	for {
		r, sz := lx.c.peekRune()
		if sz == 0 {
			return
		}
		if r == '─' || r == ' ' || r == '\t' {
			lx.c.bumpRune()
			continue
		}
		return
	}
}

func (lx *Lexer) scanRootLine() []token.Token {
	var toks []token.Token

	wordTok, ok := lx.scanWord()
	if !ok {
		// Not an identifier start and not a bullet: skip one rune to avoid
		// looping forever on stray glyphs, and let the parser's missing-root
		// diagnostics surface downstream.
		lx.c.bumpRune()
		return toks
	}
	toks = append(toks, wordTok)

	lx.skipInlineSpaces()
	if lx.c.peek() == ':' && lx.c.peekAt(1) == ':' {
		start := lx.c.mark()
		lx.c.bump()
		lx.c.bump()
		toks = append(toks, token.Token{Kind: token.DoubleColon, Span: lx.c.spanFrom(start), Text: "::"})
		lx.skipInlineSpaces()
		if fnTok, ok := lx.scanWord(); ok {
			toks = append(toks, fnTok)
		}
	}

	// Drop any trailing garbage up to the newline; the parser reports
	// structural problems, the lexer only needs to stay synchronized.
	for !lx.c.eof() && lx.c.peek() != '\n' {
		lx.c.bump()
	}
	return toks
}

func (lx *Lexer) skipInlineSpaces() {
	for lx.c.peek() == ' ' || lx.c.peek() == '\t' {
		lx.c.bump()
	}
}

// scanWord scans a maximal run of identifier characters (Unicode
// letters/digits plus underscore) starting at the cursor.
func (lx *Lexer) scanWord() (token.Token, bool) {
	start := lx.c.mark()
	r, sz := lx.c.peekRune()
	if sz == 0 || !isWordStart(r) {
		return token.Token{}, false
	}
	lx.c.bumpRune()
	for {
		r, sz = lx.c.peekRune()
		if sz == 0 || !isWordContinue(r) {
			break
		}
		lx.c.bumpRune()
	}
	sp := lx.c.spanFrom(start)
	return token.Token{Kind: token.Word, Span: sp, Text: lx.file.Text(sp)}, true
}

func isWordStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isWordContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanTitle consumes the remainder of the current line as a String
// token: it strips a trailing "//" comment, trims surrounding
// whitespace, and reports no token at all if nothing remains.
func (lx *Lexer) scanTitle() (token.Token, bool) {
	lx.skipInlineSpaces()
	lineStart := lx.c.mark()
	for !lx.c.eof() && lx.c.peek() != '\n' {
		if lx.c.peek() == '/' && lx.c.peekAt(1) == '/' {
			break
		}
		lx.c.bump()
	}
	contentEnd := lx.c.off
	// Consume (but discard) a trailing inline comment.
	for !lx.c.eof() && lx.c.peek() != '\n' {
		lx.c.bump()
	}

	raw := lx.file.Text(source.Span{File: lx.file.ID, Start: uint32(lineStart), End: contentEnd})
	trimmed := strings.TrimRightFunc(raw, unicode.IsSpace)
	trimmed = strings.TrimLeftFunc(trimmed, unicode.IsSpace)
	if trimmed == "" {
		return token.Token{}, false
	}

	leadTrim := strings.IndexFunc(raw, func(r rune) bool { return !unicode.IsSpace(r) })
	if leadTrim < 0 {
		leadTrim = 0
	}
	start := uint32(lineStart) + uint32(leadTrim)
	end := start + uint32(len(trimmed))
	return token.Token{Kind: token.String, Span: source.Span{File: lx.file.ID, Start: start, End: end}, Text: trimmed}, true
}
