// Package solview implements the Solidity "parts view" collaborator: a
// minimal but real line/brace-aware reader that turns an existing .t.sol
// file into an ordered list of contract-scope items (internal/match
// compares this against internal/hir), plus a whitespace-only formatter.
// It never panics; malformed input is reported as diagnostics.
package solview

import (
	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/source"
)

// Kind tags a contract-scope item.
type Kind uint8

const (
	// KindOther covers state variables, events, structs, constructors,
	// and anything else the matcher ignores.
	KindOther Kind = iota
	KindModifier
	KindFunction
)

// Item is one contract-scope declaration, in source order.
type Item struct {
	Kind Kind
	Name string
	// Modifiers lists the modifier-invocation identifiers on a Function,
	// in source order. Empty for every other Kind.
	Modifiers []string
	Span      source.Span
	// ModifierSpan covers the modifier-invocation list itself (the bytes
	// between a function's parameter list and its body/terminator), so a
	// fixer can rewrite just that range in place. Zero value for every
	// Kind but Function.
	ModifierSpan source.Span
}

// PartsView is the whole parsed file, filtered to contract scope.
type PartsView struct {
	Contract  string
	BodyStart uint32 // offset just inside the contract's opening '{'
	BodyEnd   uint32 // offset of the contract's closing '}'
	Items     []Item
}

// Parse scans file for its first contract declaration and the
// declarations at its top level. It never panics: a file with no
// contract declaration yields an empty PartsView and a diagnostic rather
// than an error return, matching the "never panics, diagnostics instead
// of exceptions" collaborator contract.
func Parse(file *source.File) (*PartsView, []diag.Diagnostic) {
	src := file.Content
	name, bodyStart, ok := findContract(src)
	if !ok {
		end := len(src)
		return &PartsView{}, []diag.Diagnostic{
			diag.NewError(diag.SolMalformedSource, source.Span{File: file.ID, Start: 0, End: uint32(end)},
				"no contract declaration found in Solidity source"),
		}
	}

	raws, bodyEnd := scanItems(src, bodyStart)
	view := &PartsView{Contract: name, BodyStart: uint32(bodyStart), BodyEnd: uint32(bodyEnd)}
	for _, r := range raws {
		view.Items = append(view.Items, Item{
			Kind:         r.kind,
			Name:         r.name,
			Modifiers:    r.modifiers,
			Span:         source.Span{File: file.ID, Start: uint32(r.start), End: uint32(r.end)},
			ModifierSpan: source.Span{File: file.ID, Start: uint32(r.modStart), End: uint32(r.modEnd)},
		})
	}
	return view, nil
}
