// Package hir defines the high-level IR that models one emitted test
// contract, and the combiner that builds it from a file's parsed trees.
package hir

import "github.com/bulloak-go/bulloak/internal/token"

// FunctionKind tags how a Function's body relates to reverting.
type FunctionKind uint8

const (
	// Regular is a plain test function, no revert expectation implied by
	// its name.
	Regular FunctionKind = iota
	// RevertWhen names a function generated from an "It should revert"
	// action nested under a When condition.
	RevertWhen
	// RevertGiven is the Given-keyword counterpart of RevertWhen.
	RevertGiven
)

// ItemKind tags a HirItem variant.
type ItemKind uint8

const (
	KindModifier ItemKind = iota
	KindFunction
)

// HirItem is a single contract-scope declaration. Exactly one of
// Modifier or Function is meaningful, selected by Kind.
type HirItem struct {
	Kind     ItemKind
	Modifier *Modifier
	Function *Function
}

// Modifier is one deduplicated condition modifier declaration.
type Modifier struct {
	Name string
	// Keyword records whether the condition that produced this modifier
	// used When or Given, purely for readability; it has no effect on
	// emission.
	Keyword token.Kind
}

// BodyItem is a single statement inside a Function's body.
type BodyItem struct {
	// Comment holds the text of a "// <text>" line; empty for a marker.
	Comment string
	// IsSkipMarker marks a "vm.skip(true);" statement instead of a comment.
	IsSkipMarker bool
}

// Function is one generated test function.
type Function struct {
	Name      string
	Kind      FunctionKind
	Modifiers []string // modifier names (when/given + PascalCase title), root-to-leaf order
	Body      []BodyItem
}

// ContractDefinition is the root of the HIR: one emitted test contract.
type ContractDefinition struct {
	Name          string
	SolVersion    string
	VmSkip        bool
	SkipModifiers bool
	Items         []HirItem
}
