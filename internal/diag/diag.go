// Package diag defines the diagnostic model shared by every compiler
// stage: a severity-tagged, code-tagged message anchored to a source
// span, optionally carrying notes and a machine-applicable fix.
package diag

import (
	"fmt"
	"sort"

	"github.com/bulloak-go/bulloak/internal/source"
)

// Severity is the importance of a diagnostic.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}

// Code is a stable numeric identifier for a diagnostic's kind, grouped by
// the stage that raises it: 1xxx tokenizer, 2xxx parser, 3xxx semantics,
// 4xxx combiner (should never surface), 5xxx structural matcher, 6xxx
// Solidity view parse/format collaborator.
type Code uint16

const (
	UnknownCode Code = 0

	// Tokenizer (§4.2).
	LexBadGlyphPosition    Code = 1001
	LexKeywordWithoutTitle Code = 1002
	LexControlChar         Code = 1003

	// Parser (§4.3).
	SynUnexpectedKeyword    Code = 2001
	SynAmbiguousIndent      Code = 2002
	SynActionHasConditions  Code = 2003
	SynMissingFunctionIdent Code = 2004
	SynUnexpectedToken      Code = 2005
	SynEmptyRoot            Code = 2006

	// Semantic analysis (§4.4).
	SemInconsistentContract  Code = 3001
	SemDuplicateTopLevel     Code = 3002
	SemInvalidConditionIdent Code = 3003
	SemEmptyTree             Code = 3004

	// Combiner (§4.5) — should never surface; reaching this is a bug.
	CombinerInvariantViolation Code = 4001

	// Structural matcher (§4.8).
	ViolationContractMissing      Code = 5001
	ViolationMissingItem          Code = 5002
	ViolationOrderMismatch        Code = 5003
	ViolationModifierListMismatch Code = 5004

	// Solidity view parse/format collaborator (§4.7/§6.4).
	SolMalformedSource Code = 6001

	// Driver-level I/O (out of scope per spec.md §1, modeled only so the
	// pipeline has something to return for unreadable files/malformed trees).
	IoError Code = 9001

	// PanicRecovered marks a diagnostic synthesized by the top-level
	// driver's recover() after an unexpected panic in a pipeline stage
	// (spec.md §5: "a panic in any pipeline stage must be converted to
	// an error by the top-level driver"), e.g. a fortio.org/safecast
	// overflow in internal/source on a pathologically large file.
	PanicRecovered Code = 9002
)

// Note is supplementary context attached to a Diagnostic, e.g. pointing
// at the first occurrence of a name that a second occurrence collides with.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces the byte range Span with NewText.
type TextEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a named, machine-applicable set of edits that resolves a
// Diagnostic. A Diagnostic may carry zero, one, or (rarely) more fixes.
type Fix struct {
	Title string
	Edits []TextEdit
}

// Diagnostic is a single structured compiler message.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// Error implements the error interface so a Diagnostic can be returned
// directly from functions that otherwise return plain errors (useful at
// package boundaries that predate diagnostic-aware callers).
func (d Diagnostic) Error() string {
	return fmt.Sprintf("[%s %d] %s", d.Severity, d.Code, d.Message)
}

// New builds a Diagnostic with no notes or fixes.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// NewError builds an SevError Diagnostic.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns a copy of d with a note appended.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(append([]Note{}, d.Notes...), Note{Span: sp, Msg: msg})
	return d
}

// WithFix returns a copy of d with a fix appended.
func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(append([]Fix{}, d.Fixes...), Fix{Title: title, Edits: edits})
	return d
}

// Bag is an ordered, capacity-bounded collection of diagnostics.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag returns an empty Bag that accepts at most max diagnostics
// (0 means unlimited).
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add appends d, unless the bag is at capacity, in which case it reports
// false and drops d.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Merge appends every diagnostic from other into b.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// Items returns the diagnostics currently held. Callers must not mutate
// the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Len reports how many diagnostics are held.
func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether any diagnostic has SevError or higher.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by file, start offset, end offset, severity
// (descending), then code (ascending) for deterministic output (§5).
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		a, c := b.items[i], b.items[j]
		if a.Primary.File != c.Primary.File {
			return a.Primary.File < c.Primary.File
		}
		if a.Primary.Start != c.Primary.Start {
			return a.Primary.Start < c.Primary.Start
		}
		if a.Primary.End != c.Primary.End {
			return a.Primary.End < c.Primary.End
		}
		if a.Severity != c.Severity {
			return a.Severity > c.Severity
		}
		return a.Code < c.Code
	})
}

// dedupKey identifies diagnostics that report the same problem twice,
// e.g. after Merge combines bags from sibling stages that both noticed
// the same malformed span.
type dedupKey struct {
	code    Code
	primary source.Span
	message string
}

// Dedup removes diagnostics that repeat an earlier one's Code, Primary
// span, and Message, keeping the first occurrence (and its Notes/Fixes)
// and preserving relative order of what remains.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]bool, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		key := dedupKey{d.Code, d.Primary, d.Message}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}
