package solview

// scanner is a minimal byte-position cursor over Solidity source, aware
// enough of comments and string literals not to be confused by braces or
// keywords that appear inside them.
type scanner struct {
	src []byte
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekAt(off int) byte {
	i := s.pos + off
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func (s *scanner) skipTrivia() {
	for !s.eof() {
		switch {
		case isSpace(s.peek()):
			s.pos++
		case s.peek() == '/' && s.peekAt(1) == '/':
			for !s.eof() && s.peek() != '\n' {
				s.pos++
			}
		case s.peek() == '/' && s.peekAt(1) == '*':
			s.pos += 2
			for !s.eof() && !(s.peek() == '*' && s.peekAt(1) == '/') {
				s.pos++
			}
			if !s.eof() {
				s.pos += 2
			}
		default:
			return
		}
	}
}

func (s *scanner) readIdent() string {
	if !isIdentStart(s.peek()) {
		return ""
	}
	start := s.pos
	s.pos++
	for isIdentPart(s.peek()) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) skipString() {
	quote := s.peek()
	s.pos++
	for !s.eof() {
		b := s.peek()
		if b == '\\' {
			s.pos += 2
			continue
		}
		if b == quote {
			s.pos++
			return
		}
		s.pos++
	}
}

// skipBalanced consumes a balanced open/close run starting at the
// current position (which must be at open), respecting nested strings
// and comments.
func (s *scanner) skipBalanced(open, close byte) {
	if s.peek() != open {
		return
	}
	depth := 0
	for !s.eof() {
		s.skipTrivia()
		if s.eof() {
			return
		}
		switch s.peek() {
		case '"', '\'':
			s.skipString()
		case open:
			depth++
			s.pos++
		case close:
			depth--
			s.pos++
			if depth == 0 {
				return
			}
		default:
			s.pos++
		}
	}
}

// findContract locates the first "contract <Name> ... {" header in src
// and returns the offset just past its opening brace.
func findContract(src []byte) (name string, bodyStart int, ok bool) {
	s := &scanner{src: src}
	for !s.eof() {
		s.skipTrivia()
		if s.eof() {
			break
		}
		switch {
		case isIdentStart(s.peek()):
			word := s.readIdent()
			if word != "contract" {
				continue
			}
			s.skipTrivia()
			name = s.readIdent()
			for !s.eof() && s.peek() != '{' {
				if s.peek() == '(' {
					s.skipBalanced('(', ')')
					continue
				}
				s.pos++
			}
			if s.peek() != '{' {
				return "", 0, false
			}
			s.pos++
			return name, s.pos, true
		case s.peek() == '"' || s.peek() == '\'':
			s.skipString()
		default:
			s.pos++
		}
	}
	return "", 0, false
}

type itemRaw struct {
	kind             Kind
	name             string
	modifiers        []string
	start, end       int
	modStart, modEnd int
}

// scanItems walks a contract body starting just inside its opening
// brace, returning one itemRaw per top-level declaration and the offset
// of the contract's closing brace.
func scanItems(src []byte, bodyStart int) ([]itemRaw, int) {
	s := &scanner{src: src, pos: bodyStart}
	var items []itemRaw
	depth := 1

	for !s.eof() && depth > 0 {
		s.skipTrivia()
		if s.eof() {
			break
		}
		if s.peek() == '}' {
			depth--
			s.pos++
			if depth == 0 {
				return items, s.pos - 1
			}
			continue
		}

		declStart := s.pos
		kind := KindOther
		name := ""
		var mods []string
		modStart, modEnd := 0, 0

		if isIdentStart(s.peek()) {
			savedPos := s.pos
			word := s.readIdent()
			switch word {
			case "modifier":
				s.skipTrivia()
				name = s.readIdent()
				kind = KindModifier
			case "function":
				s.skipTrivia()
				name = s.readIdent()
				kind = KindFunction
				s.skipTrivia()
				if s.peek() == '(' {
					s.skipBalanced('(', ')')
				}
				modStart = s.pos
				mods = collectModifierInvocations(s)
				modEnd = s.pos
			default:
				s.pos = savedPos
			}
		}

		end := consumeDeclaration(s)
		items = append(items, itemRaw{
			kind: kind, name: name, modifiers: mods, start: declStart, end: end,
			modStart: modStart, modEnd: modEnd,
		})
	}
	return items, s.pos
}

var nonModifierKeywords = map[string]bool{
	"external": true, "internal": true, "public": true, "private": true,
	"view": true, "pure": true, "payable": true, "virtual": true,
}

// collectModifierInvocations reads the tokens between a function's
// parameter list and its body/terminator, returning the bare identifiers
// that are not visibility/mutability/override keywords: Solidity's own
// modifier-invocation syntax. It stops without consuming the terminating
// '{' or ';'.
func collectModifierInvocations(s *scanner) []string {
	var mods []string
	for !s.eof() {
		s.skipTrivia()
		if s.eof() {
			return mods
		}
		switch {
		case s.peek() == '{' || s.peek() == ';':
			return mods
		case s.peek() == '(':
			s.skipBalanced('(', ')')
		case isIdentStart(s.peek()):
			word := s.readIdent()
			switch word {
			case "override":
				s.skipTrivia()
				if s.peek() == '(' {
					s.skipBalanced('(', ')')
				}
			case "returns":
				s.skipTrivia()
				if s.peek() == '(' {
					s.skipBalanced('(', ')')
				}
			default:
				if !nonModifierKeywords[word] {
					mods = append(mods, word)
				}
			}
		default:
			s.pos++
		}
	}
	return mods
}

// consumeDeclaration advances past the remainder of the declaration
// starting at the scanner's current position, stopping just after the
// first top-level ';' or the matching '}' of the first top-level '{'.
func consumeDeclaration(s *scanner) int {
	depth := 0
	for !s.eof() {
		s.skipTrivia()
		if s.eof() {
			break
		}
		switch s.peek() {
		case '"', '\'':
			s.skipString()
		case '(', '[':
			depth++
			s.pos++
		case ')', ']':
			if depth > 0 {
				depth--
			}
			s.pos++
		case '{':
			if depth == 0 {
				s.skipBalanced('{', '}')
				return s.pos
			}
			depth++
			s.pos++
		case '}':
			if depth > 0 {
				depth--
				s.pos++
				continue
			}
			return s.pos
		case ';':
			s.pos++
			if depth == 0 {
				return s.pos
			}
		default:
			s.pos++
		}
	}
	return s.pos
}
