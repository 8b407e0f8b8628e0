// Package fix applies match.Violation results to an existing .t.sol
// source text, producing the minimal edited file that makes it match a
// combined internal/hir.ContractDefinition (spec.md §4.9). It never
// mutates the caller's source; Apply returns a new string.
package fix

import (
	"sort"
	"strings"

	"github.com/bulloak-go/bulloak/internal/emit"
	"github.com/bulloak-go/bulloak/internal/hir"
	"github.com/bulloak-go/bulloak/internal/match"
	"github.com/bulloak-go/bulloak/internal/solview"
	"github.com/bulloak-go/bulloak/internal/source"
)

// edit is a single byte-range replacement against the original text.
// Start == End marks a pure insertion at that offset.
type edit struct {
	start, end uint32
	text       string
}

// Result is the outcome of applying a set of violations.
type Result struct {
	// Source is the fixed file content. When at least one edit was made
	// it has been passed through internal/solview.Format for whitespace
	// normalization; otherwise it is the original content unchanged.
	Source string
	// Applied lists the violations that were actually fixed.
	Applied []match.Violation
	// Skipped lists non-fixable violations left untouched, in the same
	// order they were given.
	Skipped []match.Violation
}

// Apply computes and applies the edits needed to resolve violations.
// Running Apply again on Result.Source against the same contract
// (re-matched) yields zero further violations: idempotence falls out of
// solview.Format's own idempotence plus the fact that a violation which
// has been fixed no longer appears in a fresh match.Check.
func Apply(file *source.File, view *solview.PartsView, contract *hir.ContractDefinition, violations []match.Violation) Result {
	res := Result{Source: string(file.Content)}

	byName := make(map[string]solview.Item, len(view.Items))
	for _, it := range view.Items {
		byName[it.Name] = it
	}
	hirFuncByName := make(map[string]*hir.Function)
	hirItemByName := make(map[string]hir.HirItem)
	for _, item := range contract.Items {
		switch item.Kind {
		case hir.KindModifier:
			hirItemByName[item.Modifier.Name] = item
		case hir.KindFunction:
			hirItemByName[item.Function.Name] = item
			hirFuncByName[item.Function.Name] = item.Function
		}
	}

	var edits []edit
	for _, v := range violations {
		switch v.Kind {
		case match.ContractMissing:
			res.Skipped = append(res.Skipped, v)
			continue
		case match.MissingItem:
			item, ok := hirItemByName[v.Name]
			if !ok {
				res.Skipped = append(res.Skipped, v)
				continue
			}
			anchor := resolveAnchor(v.InsertAfter, byName, view)
			edits = append(edits, edit{start: anchor, end: anchor, text: "\n" + emit.EmitItem(item)})
			res.Applied = append(res.Applied, v)
		case match.OrderMismatch:
			cur, ok := byName[v.Name]
			if !ok {
				res.Skipped = append(res.Skipped, v)
				continue
			}
			text := file.Text(cur.Span)
			edits = append(edits, edit{start: cur.Span.Start, end: cur.Span.End, text: ""})
			anchor := resolveAnchor(v.ExpectedAfter, byName, view)
			edits = append(edits, edit{start: anchor, end: anchor, text: "\n" + text})
			res.Applied = append(res.Applied, v)
		case match.ModifierListMismatch:
			fn, ok := hirFuncByName[v.Name]
			cur, curOk := byName[v.Name]
			if !ok || !curOk {
				res.Skipped = append(res.Skipped, v)
				continue
			}
			// Keep visibility/mutability words; swap only the invocations.
			stale := make(map[string]bool, len(cur.Modifiers))
			for _, m := range cur.Modifiers {
				stale[m] = true
			}
			var parts []string
			for _, w := range strings.Fields(file.Text(cur.ModifierSpan)) {
				if !stale[w] {
					parts = append(parts, w)
				}
			}
			parts = append(parts, fn.Modifiers...)
			replacement := " "
			if len(parts) > 0 {
				replacement = " " + strings.Join(parts, " ") + " "
			}
			edits = append(edits, edit{start: cur.ModifierSpan.Start, end: cur.ModifierSpan.End, text: replacement})
			res.Applied = append(res.Applied, v)
		default:
			res.Skipped = append(res.Skipped, v)
		}
	}

	if len(edits) > 0 {
		res.Source = solview.Format(applyEdits(file.Content, edits))
	}
	return res
}

// resolveAnchor finds the original end-offset to insert after: the named
// item's span end if it still exists in the original view, otherwise the
// contract body start. Anchors that themselves point at another missing
// item fall back to body start, a known simplification for deeply
// cascading insertions (rare in practice: most files are missing at most
// a handful of items at a time).
func resolveAnchor(name string, byName map[string]solview.Item, view *solview.PartsView) uint32 {
	if name == "" {
		return view.BodyStart
	}
	if it, ok := byName[name]; ok {
		return it.Span.End
	}
	return view.BodyStart
}

// applyEdits walks src once, skipping cut ranges and splicing in
// insertion/replacement text, assuming edits is a set of non-overlapping
// ranges each expressed in original-source offsets.
func applyEdits(src []byte, edits []edit) string {
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var sb strings.Builder
	cursor := uint32(0)
	for _, e := range edits {
		if e.start < cursor {
			continue // overlapping edit, keep the earlier one
		}
		sb.Write(src[cursor:e.start])
		sb.WriteString(e.text)
		cursor = e.end
	}
	sb.Write(src[cursor:])
	return sb.String()
}
