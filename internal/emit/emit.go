// Package emit turns a combined internal/hir.ContractDefinition into
// Solidity source text: a single pre-order walk over the contract's
// items, indifferent to final whitespace (internal/solview.Format owns
// that) and only responsible for syntactic correctness of its output.
package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/bulloak-go/bulloak/internal/hir"
)

// Emit renders contract to a complete .t.sol file body.
func Emit(contract *hir.ContractDefinition) string {
	var sb strings.Builder
	p := &printer{w: &sb}
	p.contract(contract)
	return sb.String()
}

// EmitItem renders a single HirItem as a standalone, contract-body-
// indented fragment. internal/fix uses this to splice a missing modifier
// or function into an existing .t.sol file without re-emitting the whole
// contract.
func EmitItem(item hir.HirItem) string {
	var sb strings.Builder
	p := &printer{w: &sb, indent: 1}
	switch item.Kind {
	case hir.KindModifier:
		p.modifier(item.Modifier)
	case hir.KindFunction:
		p.function(item.Function)
	}
	return sb.String()
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) printIndent() {
	for i := 0; i < p.indent; i++ {
		p.printf("    ")
	}
}

func (p *printer) contract(c *hir.ContractDefinition) {
	p.printf("// SPDX-License-Identifier: UNLICENSED\n")
	p.printf("pragma solidity %s;\n\n", c.SolVersion)

	if c.VmSkip {
		p.printf("import {Test} from \"forge-std/Test.sol\";\n\n")
	}

	p.printf("contract %s", c.Name)
	if c.VmSkip {
		p.printf(" is Test")
	}
	p.printf(" {\n")

	p.indent++
	first := true
	for _, item := range c.Items {
		if item.Kind == hir.KindModifier && c.SkipModifiers {
			continue
		}
		if !first {
			p.printf("\n")
		}
		first = false

		switch item.Kind {
		case hir.KindModifier:
			p.modifier(item.Modifier)
		case hir.KindFunction:
			p.function(item.Function)
		}
	}
	p.indent--
	p.printf("}\n")
}

func (p *printer) modifier(m *hir.Modifier) {
	p.printIndent()
	p.printf("modifier %s() { _; }\n", m.Name)
}

func (p *printer) function(f *hir.Function) {
	p.printIndent()
	p.printf("function %s() external", f.Name)
	for _, mod := range f.Modifiers {
		p.printf(" %s", mod)
	}
	p.printf(" {\n")

	p.indent++
	for _, item := range f.Body {
		p.printIndent()
		if item.IsSkipMarker {
			p.printf("vm.skip(true);\n")
		} else {
			p.printf("// %s\n", item.Comment)
		}
	}
	p.indent--

	p.printIndent()
	p.printf("}\n")
}
