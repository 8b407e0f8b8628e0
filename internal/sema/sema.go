// Package sema validates a file's full list of parsed trees against the
// invariants that only make sense across tree boundaries: consistent
// root identifiers, unique top-level action titles, and well-formed
// condition identifiers.
package sema

import (
	"fmt"

	"github.com/bulloak-go/bulloak/internal/ast"
	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/ident"
)

// Check validates roots and returns every violation found; it never
// stops at the first one.
func Check(roots []*ast.Root) []diag.Diagnostic {
	var diags []diag.Diagnostic

	diags = append(diags, checkContractConsistency(roots)...)
	diags = append(diags, checkUniqueTopLevelActions(roots)...)
	diags = append(diags, checkConditionIdentifiers(roots)...)
	diags = append(diags, checkNonEmptyRoots(roots)...)

	return diags
}

func checkContractConsistency(roots []*ast.Root) []diag.Diagnostic {
	if len(roots) < 2 {
		return nil
	}

	var diags []diag.Diagnostic
	contract := roots[0].Contract
	for _, r := range roots {
		if !r.HasFunction() {
			diags = append(diags, diag.NewError(diag.SemInconsistentContract, r.ContractSpan,
				"a file with multiple trees must use the Contract::function root form"))
			continue
		}
		if r.Contract != contract {
			diags = append(diags, diag.NewError(diag.SemInconsistentContract, r.ContractSpan,
				fmt.Sprintf("root contract %q does not match the file's contract %q", r.Contract, contract)).
				WithNote(roots[0].ContractSpan, "first contract identifier introduced here"))
		}
	}
	return diags
}

func checkUniqueTopLevelActions(roots []*ast.Root) []diag.Diagnostic {
	var diags []diag.Diagnostic
	seen := make(map[string]*ast.Node)

	for _, r := range roots {
		for _, child := range r.Children {
			if !child.IsAction() {
				continue
			}
			if first, ok := seen[child.Title]; ok {
				diags = append(diags, diag.NewError(diag.SemDuplicateTopLevel, child.Span,
					fmt.Sprintf("duplicate top-level action title %q", child.Title)).
					WithNote(first.Span, "first occurrence here"))
				continue
			}
			seen[child.Title] = child
		}
	}
	return diags
}

func checkConditionIdentifiers(roots []*ast.Root) []diag.Diagnostic {
	var diags []diag.Diagnostic
	for _, r := range roots {
		for _, child := range r.Children {
			ast.Walk(child, func(n *ast.Node) {
				if !n.IsCondition() {
					return
				}
				if _, ok := ident.Pascalize(n.Title); !ok {
					diags = append(diags, diag.NewError(diag.SemInvalidConditionIdent, n.Span,
						fmt.Sprintf("condition title %q does not yield a usable identifier", n.Title)))
				}
			})
		}
	}
	return diags
}

func checkNonEmptyRoots(roots []*ast.Root) []diag.Diagnostic {
	var diags []diag.Diagnostic
	for _, r := range roots {
		if len(r.Children) == 0 {
			diags = append(diags, diag.NewError(diag.SemEmptyTree, r.Span,
				fmt.Sprintf("tree %q has no conditions or actions", r.Contract)))
		}
	}
	return diags
}
