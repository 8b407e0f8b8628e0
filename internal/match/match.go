// Package match implements the structural matcher (spec.md §4.8): it
// diffs a combined internal/hir.ContractDefinition against an
// internal/solview.PartsView parsed from an existing .t.sol file and
// reports every structural discrepancy as a Violation.
package match

import (
	"fmt"

	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/hir"
	"github.com/bulloak-go/bulloak/internal/solview"
	"github.com/bulloak-go/bulloak/internal/source"
)

// Kind tags a Violation variant.
type Kind uint8

const (
	ContractMissing Kind = iota
	MissingItem
	OrderMismatch
	ModifierListMismatch
)

// ItemKind mirrors hir.ItemKind for the item a Violation concerns.
type ItemKind = hir.ItemKind

// Violation is a single structural discrepancy between HIR and a parts
// view, with everything internal/fix needs to repair it.
type Violation struct {
	Kind     Kind
	ItemKind ItemKind
	Name     string

	// InsertAfter names the item a MissingItem should be spliced after,
	// or "" for "at contract start".
	InsertAfter string

	// ExpectedAfter/ActualAfter name the item that should/does precede
	// an OrderMismatch item, or "" for "should be/is first".
	ExpectedAfter string
	ActualAfter   string

	Fixable bool
	Span    source.Span
	Message string
}

// ToDiagnostic renders v as a diag.Diagnostic for reporting, with a fix
// hint when v.Fixable.
func (v Violation) ToDiagnostic() diag.Diagnostic {
	d := diag.NewError(v.code(), v.Span, v.Message)
	if v.Fixable {
		d = d.WithFix("run with --fix")
	}
	return d
}

func (v Violation) code() diag.Code {
	switch v.Kind {
	case ContractMissing:
		return diag.ViolationContractMissing
	case MissingItem:
		return diag.ViolationMissingItem
	case OrderMismatch:
		return diag.ViolationOrderMismatch
	case ModifierListMismatch:
		return diag.ViolationModifierListMismatch
	default:
		return diag.UnknownCode
	}
}

// Check diffs contract against view and returns every violation found,
// in deterministic order (missing items, then order mismatches, then
// modifier-list mismatches, each group in HIR order). skipModifiers suppresses
// MissingItem{Modifier} (spec.md §4.8.6) and, per SPEC_FULL.md §12,
// ModifierListMismatch on functions the view shows with zero modifier
// invocations at all.
func Check(contract *hir.ContractDefinition, view *solview.PartsView, fileSpan source.Span, skipModifiers bool) []Violation {
	if view.Contract == "" || view.Contract != contract.Name {
		return []Violation{{
			Kind:    ContractMissing,
			Name:    contract.Name,
			Span:    fileSpan,
			Message: fmt.Sprintf("contract %q not found in Solidity source", contract.Name),
		}}
	}

	expected := expectedNames(contract, skipModifiers)
	byName := indexByName(view.Items)

	var out []Violation
	out = append(out, missingItems(contract, expected, byName, view)...)
	out = append(out, orderMismatches(expected, byName, view)...)
	out = append(out, modifierMismatches(contract, byName, skipModifiers)...)
	return out
}

type expectedItem struct {
	kind ItemKind
	name string
}

// expectedNames returns contract's items in HIR order, honoring
// skipModifiers the same way internal/emit does (modifiers are never
// expected to exist as standalone declarations when the mode is set).
func expectedNames(contract *hir.ContractDefinition, skipModifiers bool) []expectedItem {
	var out []expectedItem
	for _, item := range contract.Items {
		if item.Kind == hir.KindModifier {
			if skipModifiers {
				continue
			}
			out = append(out, expectedItem{kind: hir.KindModifier, name: item.Modifier.Name})
			continue
		}
		out = append(out, expectedItem{kind: hir.KindFunction, name: item.Function.Name})
	}
	return out
}

func indexByName(items []solview.Item) map[string]solview.Item {
	m := make(map[string]solview.Item, len(items))
	for _, it := range items {
		if it.Kind == solview.KindOther {
			continue
		}
		m[it.Name] = it
	}
	return m
}

func missingItems(contract *hir.ContractDefinition, expected []expectedItem, byName map[string]solview.Item, view *solview.PartsView) []Violation {
	var out []Violation
	prev := ""
	for _, e := range expected {
		if _, ok := byName[e.name]; !ok {
			out = append(out, Violation{
				Kind:        MissingItem,
				ItemKind:    e.kind,
				Name:        e.name,
				InsertAfter: prev,
				Fixable:     true,
				Span:        spanAt(view, e.name, prev, byName),
				Message:     fmt.Sprintf("missing %s %q", kindLabel(e.kind), e.name),
			})
		}
		prev = e.name
	}
	return out
}

func kindLabel(k ItemKind) string {
	if k == hir.KindModifier {
		return "modifier"
	}
	return "function"
}

// spanAt picks the span to underline for a violation with no existing
// span of its own: the predecessor's span if it exists in the view, else
// the first item's span, else an empty span at the contract body start.
func spanAt(view *solview.PartsView, name, prev string, byName map[string]solview.Item) source.Span {
	if prev != "" {
		if it, ok := byName[prev]; ok {
			return it.Span
		}
	}
	for _, it := range view.Items {
		return it.Span
	}
	return source.Span{File: fileOf(view), Start: view.BodyStart, End: view.BodyStart}
}

func fileOf(view *solview.PartsView) source.FileID {
	for _, it := range view.Items {
		return it.Span.File
	}
	return 0
}

// orderMismatches aligns the subsequence of expected names that exist in
// the view against the order they actually occur in, via an LCS: names
// in the longest common subsequence are correctly placed; everything
// else is reported as out of order. Ties in the LCS are broken toward
// keeping the earliest-appearing name in HIR order (spec.md §4.8.4).
func orderMismatches(expected []expectedItem, byName map[string]solview.Item, view *solview.PartsView) []Violation {
	var expNames []string
	for _, e := range expected {
		if _, ok := byName[e.name]; ok {
			expNames = append(expNames, e.name)
		}
	}

	var actNames []string
	for _, it := range view.Items {
		if it.Kind == solview.KindOther {
			continue
		}
		if _, want := indexOf(expNames, it.Name); want {
			actNames = append(actNames, it.Name)
		}
	}

	kept := lcsNames(expNames, actNames)
	keptSet := make(map[string]bool, len(kept))
	for _, n := range kept {
		keptSet[n] = true
	}

	var out []Violation
	expPrev := ""
	for _, n := range expNames {
		if !keptSet[n] {
			out = append(out, Violation{
				Kind:          OrderMismatch,
				ItemKind:      kindOfView(byName[n]),
				Name:          n,
				ExpectedAfter: expPrev,
				ActualAfter:   actualPredecessor(actNames, n),
				Fixable:       true,
				Span:          byName[n].Span,
				Message:       fmt.Sprintf("%q is out of order", n),
			})
		}
		expPrev = n
	}
	return out
}

func kindOfView(it solview.Item) ItemKind {
	if it.Kind == solview.KindModifier {
		return hir.KindModifier
	}
	return hir.KindFunction
}

func indexOf(xs []string, target string) (int, bool) {
	for i, x := range xs {
		if x == target {
			return i, true
		}
	}
	return -1, false
}

func actualPredecessor(actNames []string, name string) string {
	i, ok := indexOf(actNames, name)
	if !ok || i == 0 {
		return ""
	}
	return actNames[i-1]
}

// lcsNames returns the longest common subsequence of a and b, preferring
// (on ties) to keep elements of a that appear earliest.
func lcsNames(a, b []string) []string {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	var out []string
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case dp[i+1][j] > dp[i][j+1]:
			i++
		default:
			j++
		}
	}
	return out
}

// modifierMismatches walks contract.Items in HIR (document) order, which
// is already deterministic, so no further sorting is needed here.
func modifierMismatches(contract *hir.ContractDefinition, byName map[string]solview.Item, skipModifiers bool) []Violation {
	var out []Violation
	for _, item := range contract.Items {
		if item.Kind != hir.KindFunction {
			continue
		}
		fn := item.Function
		view, ok := byName[fn.Name]
		if !ok {
			continue // reported as MissingItem already
		}
		if skipModifiers && len(view.Modifiers) == 0 {
			continue
		}
		if sameModifiers(fn.Modifiers, view.Modifiers) {
			continue
		}
		out = append(out, Violation{
			Kind:     ModifierListMismatch,
			ItemKind: hir.KindFunction,
			Name:     fn.Name,
			Fixable:  true,
			Span:     view.ModifierSpan,
			Message:  fmt.Sprintf("function %q has a different modifier list than expected", fn.Name),
		})
	}
	return out
}

func sameModifiers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
