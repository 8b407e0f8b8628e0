// Package ast defines the AST produced by internal/parser: one Root per
// tree in a .tree source file, with Condition/Action/ActionDescription
// children.
package ast

import (
	"github.com/bulloak-go/bulloak/internal/source"
	"github.com/bulloak-go/bulloak/internal/token"
)

// NodeKind tags the variant of a Node.
type NodeKind uint8

const (
	// KindCondition is a 'when'/'given' branch.
	KindCondition NodeKind = iota
	// KindAction is an 'it' branch.
	KindAction
	// KindActionDescription is a free-text child of an Action.
	KindActionDescription
)

func (k NodeKind) String() string {
	switch k {
	case KindCondition:
		return "Condition"
	case KindAction:
		return "Action"
	case KindActionDescription:
		return "ActionDescription"
	default:
		return "Unknown"
	}
}

// Node is a single AST node. Which fields are meaningful depends on Kind:
//
//   - KindCondition: Keyword (When|Given), Title, Children (Condition|Action).
//   - KindAction: Title, Children (ActionDescription only).
//   - KindActionDescription: Text.
type Node struct {
	Kind     NodeKind
	Keyword  token.Kind // When or Given, only set for KindCondition
	Title    string     // condition/action title, raw (unsanitized) text
	Text     string     // only set for KindActionDescription
	Children []*Node
	Span     source.Span
}

// IsCondition reports whether n is a Condition node.
func (n *Node) IsCondition() bool { return n.Kind == KindCondition }

// IsAction reports whether n is an Action node.
func (n *Node) IsAction() bool { return n.Kind == KindAction }

// Root is one parsed tree: a root identifier plus its children.
type Root struct {
	// Contract is the root's contract identifier, e.g. "FooTest" in
	// "FooTest" or "Utils" in "Utils::min".
	Contract string
	// Function is the root's function identifier after "::", or "" if the
	// root has no function part.
	Function string

	ContractSpan source.Span
	FunctionSpan source.Span // zero value if Function == ""

	Children []*Node
	Span     source.Span
}

// HasFunction reports whether the root used the "Contract::function" form.
func (r *Root) HasFunction() bool {
	return r.Function != ""
}

// Walk calls visit for n and every descendant, depth-first, pre-order.
func Walk(n *Node, visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		Walk(c, visit)
	}
}
