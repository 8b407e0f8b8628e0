package hir

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bulloak-go/bulloak/internal/assertx"
	"github.com/bulloak-go/bulloak/internal/ast"
	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/ident"
	"github.com/bulloak-go/bulloak/internal/token"
)

// Config carries the per-run options that shape the combined HIR.
type Config struct {
	SolVersion    string
	VmSkip        bool
	SkipModifiers bool
}

// chainEntry is one ancestor condition on the path from a root to an
// action, in root-to-leaf order.
type chainEntry struct {
	pascal  string
	keyword token.Kind
}

type funcBuilder struct {
	action       *ast.Node
	chain        []chainEntry
	rootFnPrefix string
	coreBase     string
	isRevert     bool
	extraDepth   int
	name         string
}

type combiner struct {
	cfg       Config
	modOrder  []string
	modSet    map[string]*Modifier
	functions []*funcBuilder
	diags     []diag.Diagnostic
}

// Combine merges a file's validated trees into one contract-shaped HIR.
// Given the same roots and Config it always produces byte-identical
// results: modifier order follows first occurrence, function order
// follows document order, and name disambiguation is a deterministic
// function of the tree shape alone.
func Combine(roots []*ast.Root, cfg Config) (*ContractDefinition, []diag.Diagnostic) {
	c := &combiner{cfg: cfg, modSet: make(map[string]*Modifier)}

	multiRoot := len(roots) > 1
	for _, r := range roots {
		prefix := ""
		if multiRoot {
			if p, ok := ident.Pascalize(r.Function); ok {
				prefix = p
			}
		}
		for _, child := range r.Children {
			c.walk(child, nil, prefix)
		}
	}

	c.disambiguate()

	contract := &ContractDefinition{
		Name:          roots[0].Contract,
		SolVersion:    cfg.SolVersion,
		VmSkip:        cfg.VmSkip,
		SkipModifiers: cfg.SkipModifiers,
	}
	for _, name := range c.modOrder {
		contract.Items = append(contract.Items, HirItem{Kind: KindModifier, Modifier: c.modSet[name]})
	}
	for _, fb := range c.functions {
		contract.Items = append(contract.Items, HirItem{Kind: KindFunction, Function: buildFunction(fb, cfg)})
	}
	return contract, c.diags
}

func (c *combiner) walk(n *ast.Node, chain []chainEntry, rootFnPrefix string) {
	switch {
	case n.IsCondition():
		pascal, ok := ident.Pascalize(n.Title)
		if !ok {
			// Semantic analysis rejects this before combining ever runs;
			// skip defensively rather than emit a malformed modifier.
			return
		}
		c.addModifier(strings.ToLower(n.Keyword.String())+pascal, n.Keyword)

		nextChain := make([]chainEntry, len(chain)+1)
		copy(nextChain, chain)
		nextChain[len(chain)] = chainEntry{pascal: pascal, keyword: n.Keyword}
		for _, child := range n.Children {
			c.walk(child, nextChain, rootFnPrefix)
		}
	case n.IsAction():
		fb := &funcBuilder{action: n, chain: append([]chainEntry{}, chain...), rootFnPrefix: rootFnPrefix}
		fb.coreBase, fb.isRevert = coreBaseName(n.Title, chain)
		c.functions = append(c.functions, fb)
	}
}

func (c *combiner) addModifier(name string, kw token.Kind) {
	if _, exists := c.modSet[name]; exists {
		return
	}
	c.modSet[name] = &Modifier{Name: name, Keyword: kw}
	c.modOrder = append(c.modOrder, name)
}

// coreBaseName implements the function-name scheme of spec.md §4.5: a
// revert-shaped action under a condition names itself after that
// condition with a Revert prefix, any other action under a condition
// names itself with a plain When/Given prefix, and a top-level action
// names itself after its own sanitized title.
func coreBaseName(title string, chain []chainEntry) (base string, isRevert bool) {
	if len(chain) == 0 {
		pascal, ok := ident.Pascalize(title)
		if !ok {
			pascal = "Action"
		}
		return pascal, false
	}

	last := chain[len(chain)-1]
	kw := "When"
	if last.keyword == token.Given {
		kw = "Given"
	}
	if isRevertTitle(title) {
		return "Revert" + kw + "_" + last.pascal, true
	}
	return kw + last.pascal, false
}

func isRevertTitle(title string) bool {
	t := strings.ToLower(strings.TrimRight(title, ". "))
	return t == "should revert"
}

// nameFor assembles the full "test_..." name from a funcBuilder's current
// disambiguation depth: [rootFnPrefix] [extra ancestors, root-to-leaf] coreBase.
func nameFor(fb *funcBuilder) string {
	var parts []string
	if fb.rootFnPrefix != "" {
		parts = append(parts, fb.rootFnPrefix)
	}
	if fb.extraDepth > 0 {
		start := len(fb.chain) - 1 - fb.extraDepth
		if start < 0 {
			start = 0
		}
		for _, ce := range fb.chain[start : len(fb.chain)-1] {
			parts = append(parts, ce.pascal)
		}
	}
	parts = append(parts, fb.coreBase)
	return "test_" + strings.Join(parts, "_")
}

// disambiguate resolves name collisions deterministically: first by
// prepending ancestor conditions one level at a time (root.md §4.5 "Name
// disambiguation"), then by a numeric suffix in document order for
// whatever still collides.
func (c *combiner) disambiguate() {
	for _, fb := range c.functions {
		fb.name = nameFor(fb)
	}

	for {
		changed := false
		for _, name := range c.sortedNames() {
			idxs := c.groupByName()[name]
			if len(idxs) < 2 {
				continue
			}
			for _, i := range idxs {
				fb := c.functions[i]
				if len(fb.chain)-1-fb.extraDepth <= 0 {
					continue
				}
				fb.extraDepth++
				fb.name = nameFor(fb)
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for _, name := range c.sortedNames() {
		idxs := c.groupByName()[name]
		if len(idxs) < 2 {
			continue
		}
		for _, i := range idxs {
			if d, failed := assertx.Check(len(c.functions[i].chain) != 0, diag.CombinerInvariantViolation,
				c.functions[i].action.Span,
				"top-level actions collided after semantic analysis should have rejected duplicates"); failed {
				c.diags = append(c.diags, d)
			}
		}
		for n, i := range idxs {
			if n == 0 {
				continue
			}
			c.functions[i].name = fmt.Sprintf("%s%d", c.functions[i].name, n)
		}
	}
}

func (c *combiner) groupByName() map[string][]int {
	groups := make(map[string][]int)
	for i, fb := range c.functions {
		groups[fb.name] = append(groups[fb.name], i)
	}
	return groups
}

func (c *combiner) sortedNames() []string {
	groups := c.groupByName()
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func buildFunction(fb *funcBuilder, cfg Config) *Function {
	fn := &Function{Name: fb.name, Kind: Regular}
	if fb.isRevert {
		fn.Kind = RevertWhen
		if len(fb.chain) > 0 && fb.chain[len(fb.chain)-1].keyword == token.Given {
			fn.Kind = RevertGiven
		}
	}
	for _, ce := range fb.chain {
		fn.Modifiers = append(fn.Modifiers, strings.ToLower(ce.keyword.String())+ce.pascal)
	}
	for _, child := range fb.action.Children {
		if child.Kind == ast.KindActionDescription {
			fn.Body = append(fn.Body, BodyItem{Comment: child.Text})
		}
	}
	if cfg.VmSkip {
		fn.Body = append(fn.Body, BodyItem{IsSkipMarker: true})
	}
	return fn
}
