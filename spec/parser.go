package spec

import (
	"io"

	verr "github.com/nihei9/earlook/error"
)

type RootNode struct {
	Directives  []*DirectiveNode
	Productions []*ProductionNode
}

type DirectiveNode struct {
	Name       string
	Parameters []*ParameterNode
	Pos        Position
}

type ParameterNode struct {
	ID  string
	Pos Position
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Pos Position
}

// AlternativeNode is one body of a production. Symbols is the concatenation of all symbol runs of the body, so
// white spaces between symbols carry no meaning. An empty Symbols means the empty body (ε).
type AlternativeNode struct {
	Symbols string
	Pos     Position
}

func raiseSyntaxError(synErr *SyntaxError, pos Position) {
	panic(&verr.SpecError{
		Cause: synErr,
		Row:   pos.Row,
		Col:   pos.Col,
	})
}

func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			e, ok := err.(error)
			if !ok {
				panic(err)
			}
			retErr = e
		}
	}()
	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *RootNode {
	root := &RootNode{}
	for {
		p.skipNewlines()
		if p.consume(tokenKindEOF) {
			break
		}

		if dir := p.parseDirective(); dir != nil {
			root.Directives = append(root.Directives, dir)
			continue
		}

		root.Productions = append(root.Productions, p.parseProduction())
	}
	if len(root.Productions) == 0 {
		raiseSyntaxError(synErrNoProduction, Position{})
	}
	return root
}

func (p *parser) parseDirective() *DirectiveNode {
	if !p.consume(tokenKindDirective) {
		return nil
	}
	dir := &DirectiveNode{
		Name: p.lastTok.text,
		Pos:  p.lastTok.pos,
	}
	for p.consume(tokenKindSymbols) {
		dir.Parameters = append(dir.Parameters, &ParameterNode{
			ID:  p.lastTok.text,
			Pos: p.lastTok.pos,
		})
	}
	if p.consume(tokenKindNewline) {
		return dir
	}
	if tok := p.peek(); tok.kind == tokenKindEOF {
		return dir
	}
	raiseSyntaxError(synErrDirectiveNoNewline, p.peek().pos)
	return nil
}

func (p *parser) parseProduction() *ProductionNode {
	if !p.consume(tokenKindSymbols) {
		raiseSyntaxError(synErrNoProductionName, p.peek().pos)
	}
	lhs := p.lastTok.text
	lhsPos := p.lastTok.pos

	p.skipNewlines()
	if !p.consume(tokenKindColon) {
		raiseSyntaxError(synErrNoColon, p.peek().pos)
	}
	alt := p.parseAlternative(p.lastTok.pos)
	rhs := []*AlternativeNode{alt}
	for {
		p.skipNewlines()
		if !p.consume(tokenKindOr) {
			break
		}
		alt := p.parseAlternative(p.lastTok.pos)
		rhs = append(rhs, alt)
	}
	if !p.consume(tokenKindSemicolon) {
		raiseSyntaxError(synErrNoSemicolon, p.peek().pos)
	}
	return &ProductionNode{
		LHS: lhs,
		RHS: rhs,
		Pos: lhsPos,
	}
}

// parseAlternative parses symbol runs until a delimiter. delimPos is the position of the delimiter preceding the
// alternative and becomes the position of an empty alternative.
func (p *parser) parseAlternative(delimPos Position) *AlternativeNode {
	alt := &AlternativeNode{
		Pos: delimPos,
	}
	first := true
	for {
		p.skipNewlines()
		if !p.consume(tokenKindSymbols) {
			break
		}
		if first {
			alt.Pos = p.lastTok.pos
			first = false
		}
		alt.Symbols += p.lastTok.text
	}
	return alt
}

func (p *parser) skipNewlines() {
	for p.consume(tokenKindNewline) {
	}
}

func (p *parser) peek() *token {
	if p.peekedTok != nil {
		return p.peekedTok
	}
	tok, err := p.lex.next()
	if err != nil {
		panic(err)
	}
	if tok.kind == tokenKindInvalid {
		panic(&verr.SpecError{
			Cause:  synErrInvalidToken,
			Detail: tok.text,
			Row:    tok.pos.Row,
			Col:    tok.pos.Col,
		})
	}
	p.peekedTok = tok
	return tok
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.peek()
	if tok.kind != expected {
		return false
	}
	p.peekedTok = nil
	p.lastTok = tok
	return true
}
