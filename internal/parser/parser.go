// Package parser builds one internal/ast.Root per tree from the token
// stream produced by internal/lexer, using indentation (not bullet kind)
// to determine containment.
package parser

import (
	"github.com/bulloak-go/bulloak/internal/ast"
	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/source"
	"github.com/bulloak-go/bulloak/internal/token"
)

type parser struct {
	file  *source.File
	toks  []token.Token
	pos   int
	diags []diag.Diagnostic
}

// Parse consumes the full token stream and returns every root tree found
// in it, plus any diagnostics raised along the way.
func Parse(file *source.File, toks []token.Token) ([]*ast.Root, []diag.Diagnostic) {
	p := &parser{file: file, toks: toks}
	var roots []*ast.Root
	for {
		for p.cur().Kind == token.Break {
			p.advance()
		}
		if p.cur().Kind == token.EOF {
			break
		}
		if root := p.parseRoot(); root != nil {
			roots = append(roots, root)
		}
	}
	return roots, p.diags
}

func (p *parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) report(code diag.Code, sp source.Span, msg string) {
	p.diags = append(p.diags, diag.NewError(code, sp, msg))
}

func (p *parser) column(offset uint32) uint32 {
	return p.file.Resolve(offset).Column
}

func (p *parser) parseRoot() *ast.Root {
	start := p.cur()
	if start.Kind != token.Word {
		if start.Kind == token.Tee || start.Kind == token.Corner || start.Kind.IsCondition() || start.Kind == token.It {
			p.report(diag.SynUnexpectedKeyword, start.Span, "branch syntax where a root identifier was expected")
		} else {
			p.report(diag.SynUnexpectedToken, start.Span, "unexpected token where a root identifier was expected")
		}
		p.recoverToNextRoot()
		return nil
	}

	contractTok := p.advance()
	root := &ast.Root{Contract: contractTok.Text, ContractSpan: contractTok.Span, Span: contractTok.Span}

	if p.cur().Kind == token.DoubleColon {
		p.advance()
		if p.cur().Kind == token.Word {
			fnTok := p.advance()
			root.Function = fnTok.Text
			root.FunctionSpan = fnTok.Span
			root.Span = source.Span{File: root.Span.File, Start: root.Span.Start, End: fnTok.Span.End}
		} else {
			p.report(diag.SynMissingFunctionIdent, contractTok.Span, "'::' is not followed by a function identifier")
		}
	}

	if p.cur().Kind == token.Break {
		p.advance()
	}

	root.Children = p.parseChildren()
	if n := len(root.Children); n > 0 {
		root.Span = source.Span{File: root.Span.File, Start: root.Span.Start, End: root.Children[n-1].Span.End}
	}
	return root
}

// recoverToNextRoot skips tokens until a clean resync point: a
// tree-separating Break, a Word token (next root line), or EOF.
func (p *parser) recoverToNextRoot() {
	for {
		switch p.cur().Kind {
		case token.EOF, token.Word:
			return
		case token.Break:
			br := p.advance()
			if br.BlankLines() >= 2 {
				return
			}
		default:
			p.advance()
		}
	}
}

// frame tracks one open branch (or the synthetic root frame, node == nil)
// while scanning children by indentation.
type frame struct {
	node        *ast.Node
	indent      int
	childIndent int // 0 means "not yet established"
}

func (p *parser) parseChildren() []*ast.Node {
	var rootChildren []*ast.Node
	stack := []frame{{node: nil, indent: -1}}

	for {
		switch p.cur().Kind {
		case token.EOF, token.Word:
			return rootChildren
		case token.Break:
			br := p.advance()
			if br.BlankLines() >= 2 {
				return rootChildren
			}
		case token.Tee, token.Corner:
			node := p.parseBranchNode()
			if node == nil {
				continue
			}
			indent := int(p.column(node.Span.Start))

			for len(stack) > 1 && indent <= stack[len(stack)-1].indent {
				stack = stack[:len(stack)-1]
			}
			top := &stack[len(stack)-1]

			switch {
			case top.childIndent == 0:
				top.childIndent = indent
			case indent != top.childIndent:
				p.report(diag.SynAmbiguousIndent, node.Span, "branch indentation does not match its sibling level")
			}

			if top.node != nil && top.node.Kind == ast.KindAction && node.Kind != ast.KindActionDescription {
				p.report(diag.SynActionHasConditions, node.Span, "an action's children must be description text, not a condition or action")
			}
			if top.node != nil && top.node.Kind == ast.KindCondition && node.Kind == ast.KindActionDescription {
				p.report(diag.SynUnexpectedToken, node.Span, "a condition's children must be conditions or actions")
			}

			if top.node == nil {
				rootChildren = append(rootChildren, node)
			} else {
				top.node.Children = append(top.node.Children, node)
			}
			stack = append(stack, frame{node: node, indent: indent})
		default:
			p.report(diag.SynUnexpectedToken, p.cur().Span, "unexpected token")
			p.advance()
		}
	}
}

func (p *parser) parseBranchNode() *ast.Node {
	bulletTok := p.advance()

	switch p.cur().Kind {
	case token.When, token.Given:
		kwTok := p.advance()
		title, span := p.consumeTitle(bulletTok, kwTok)
		return &ast.Node{Kind: ast.KindCondition, Keyword: kwTok.Kind, Title: title, Span: span}
	case token.It:
		kwTok := p.advance()
		title, span := p.consumeTitle(bulletTok, kwTok)
		return &ast.Node{Kind: ast.KindAction, Title: title, Span: span}
	case token.Word:
		wordTok := p.advance()
		text := wordTok.Text
		end := wordTok.Span
		if p.cur().Kind == token.String {
			strTok := p.advance()
			text = text + " " + strTok.Text
			end = strTok.Span
		}
		return &ast.Node{
			Kind: ast.KindActionDescription,
			Text: text,
			Span: source.Span{File: bulletTok.Span.File, Start: bulletTok.Span.Start, End: end.End},
		}
	default:
		p.report(diag.SynUnexpectedToken, bulletTok.Span, "branch bullet is not followed by a keyword or text")
		return nil
	}
}

func (p *parser) consumeTitle(bulletTok, kwTok token.Token) (string, source.Span) {
	end := kwTok.Span
	var title string
	if p.cur().Kind == token.String {
		strTok := p.advance()
		title = strTok.Text
		end = strTok.Span
	}
	return title, source.Span{File: bulletTok.Span.File, Start: bulletTok.Span.Start, End: end.End}
}
