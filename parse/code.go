package parse

import (
	"fmt"

	"github.com/signadot/splice/debug"
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/token"
)

type parser struct {
	toks []token.Token
	i    int
	opts *parseOpts
}

func newParser(src []byte, opts []ParseOption) (*parser, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	toks, err := token.Tokenize(nil, src, pOpts.TokenizeOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &parser{toks: toks, opts: pOpts}, nil
}

// Parse parses src as a program of the code grammar.
func Parse(src []byte, opts ...ParseOption) (*ir.Node, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, err
	}
	body, err := p.statements()
	if err != nil {
		return nil, err
	}
	res := &ir.Node{
		Kind:     ir.ProgramKind,
		Range:    ir.Range{Start: p.opts.base, End: p.opts.base + len(src)},
		Children: body,
	}
	ir.SetParents(res)
	if debug.Parse() {
		debug.Logf("parsed program of %d statements at %s\n", len(body), res.Range)
	}
	return res, nil
}

// ParseExpression parses src as a single expression.
func ParseExpression(src []byte, opts ...ParseOption) (*ir.Node, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, err
	}
	res, err := p.assign()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != token.TEOF {
		return nil, unexpected(tok)
	}
	ir.SetParents(res)
	return res, nil
}

// ParseStatements parses src as a list of statements.
func ParseStatements(src []byte, opts ...ParseOption) ([]*ir.Node, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, err
	}
	res, err := p.statements()
	if err != nil {
		return nil, err
	}
	for _, stmt := range res {
		ir.SetParents(stmt)
	}
	return res, nil
}

func (p *parser) peek() *token.Token {
	return &p.toks[p.i]
}

func (p *parser) peekAt(n int) *token.Token {
	if p.i+n >= len(p.toks) {
		return &p.toks[len(p.toks)-1]
	}
	return &p.toks[p.i+n]
}

func (p *parser) next() *token.Token {
	res := &p.toks[p.i]
	if res.Type != token.TEOF {
		p.i++
	}
	return res
}

func (p *parser) is(s string) bool {
	return p.peek().Is(s)
}

func (p *parser) expect(s string) (*token.Token, error) {
	tok := p.peek()
	if !tok.Is(s) {
		return nil, unexpected(tok)
	}
	return p.next(), nil
}

func (p *parser) ident() (*ir.Node, error) {
	tok := p.peek()
	if tok.Type != token.TIdent {
		return nil, unexpected(tok)
	}
	p.next()
	return tokNode(tok, ir.IdentifierKind), nil
}

func tokNode(tok *token.Token, k ir.Kind) *ir.Node {
	return &ir.Node{
		Kind:  k,
		Name:  string(tok.Bytes),
		Range: ir.Range{Start: tok.Start(), End: tok.End()},
	}
}

// rangeFrom is the range from token index start to the last consumed token.
func (p *parser) rangeFrom(start int) ir.Range {
	end := p.i - 1
	if end < start {
		end = start
	}
	return ir.Range{Start: p.toks[start].Start(), End: p.toks[end].End()}
}

func (p *parser) statements() ([]*ir.Node, error) {
	var res []*ir.Node
	for p.peek().Type != token.TEOF {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		res = append(res, stmt)
	}
	return res, nil
}

func (p *parser) statement() (*ir.Node, error) {
	start := p.i
	tok := p.peek()
	var (
		res *ir.Node
		err error
	)
	switch {
	case tok.Is("import") && !p.peekAt(1).Is("(") && !p.peekAt(1).Is("."):
		res, err = p.importDecl()
	case tok.Is("const"), tok.Is("let"), tok.Is("var"):
		res, err = p.varDecl()
	case tok.Is("export"):
		p.next()
		if !p.is("default") {
			return nil, errAt(tok.Pos, "only export default is supported")
		}
		p.next()
		var decl *ir.Node
		decl, err = p.assign()
		res = &ir.Node{Kind: ir.ExportDefaultKind, Val: decl}
	default:
		var expr *ir.Node
		expr, err = p.assign()
		res = &ir.Node{Kind: ir.ExprStmtKind, Val: expr}
	}
	if err != nil {
		return nil, err
	}
	if p.is(";") {
		p.next()
		res.Flag = true
	} else if tok := p.peek(); !(tok.NL || tok.Is("}") || tok.Type == token.TEOF) {
		return nil, unexpected(tok)
	}
	res.Range = p.rangeFrom(start)
	return res, nil
}

func (p *parser) varDecl() (*ir.Node, error) {
	kw := p.next()
	if tok := p.peek(); tok.Is("{") || tok.Is("[") {
		return nil, errAt(tok.Pos, "destructuring declarations are not supported")
	}
	id, err := p.ident()
	if err != nil {
		return nil, err
	}
	res := &ir.Node{Kind: ir.VarDeclKind, Op: string(kw.Bytes), Key: id}
	if p.is("=") {
		p.next()
		init, err := p.assign()
		if err != nil {
			return nil, err
		}
		res.Val = init
	}
	if tok := p.peek(); tok.Is(",") {
		return nil, errAt(tok.Pos, "multiple declarators are not supported")
	}
	return res, nil
}

func (p *parser) importDecl() (*ir.Node, error) {
	p.next()
	res := &ir.Node{Kind: ir.ImportKind}
	if p.peek().Type == token.TString {
		src, err := p.primary()
		if err != nil {
			return nil, err
		}
		res.Val = src
		return res, nil
	}
	more := true
	if tok := p.peek(); tok.Type == token.TIdent {
		local, _ := p.ident()
		res.Children = append(res.Children, &ir.Node{
			Kind:  ir.ImportSpecifierKind,
			Op:    "default",
			Val:   local,
			Range: local.Range,
		})
		more = p.is(",")
		if more {
			p.next()
		}
	}
	switch {
	case !more:
	case p.is("*"):
		start := p.i
		p.next()
		if _, err := p.expect("as"); err != nil {
			return nil, err
		}
		local, err := p.ident()
		if err != nil {
			return nil, err
		}
		res.Children = append(res.Children, &ir.Node{
			Kind:  ir.ImportSpecifierKind,
			Op:    "namespace",
			Val:   local,
			Range: p.rangeFrom(start),
		})
	case p.is("{"):
		p.next()
		for !p.is("}") {
			start := p.i
			imported, err := p.ident()
			if err != nil {
				return nil, err
			}
			local := imported.Clone()
			if p.is("as") {
				p.next()
				if local, err = p.ident(); err != nil {
					return nil, err
				}
			}
			res.Children = append(res.Children, &ir.Node{
				Kind:  ir.ImportSpecifierKind,
				Op:    "named",
				Key:   imported,
				Val:   local,
				Range: p.rangeFrom(start),
			})
			if !p.is(",") {
				break
			}
			p.next()
		}
		if _, err := p.expect("}"); err != nil {
			return nil, err
		}
	default:
		return nil, unexpected(p.peek())
	}
	if _, err := p.expect("from"); err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != token.TString {
		return nil, unexpected(tok)
	}
	src, err := p.primary()
	if err != nil {
		return nil, err
	}
	res.Val = src
	return res, nil
}

func (p *parser) assign() (*ir.Node, error) {
	start := p.i
	left, err := p.conditional()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Type != token.TPunct || !token.IsAssignOp(string(tok.Bytes)) {
		return left, nil
	}
	if left.Kind != ir.IdentifierKind && left.Kind != ir.MemberKind {
		return nil, errAt(tok.Pos, "invalid assignment target")
	}
	p.next()
	right, err := p.assign()
	if err != nil {
		return nil, err
	}
	return &ir.Node{
		Kind:  ir.AssignKind,
		Op:    string(tok.Bytes),
		Left:  left,
		Right: right,
		Range: p.rangeFrom(start),
	}, nil
}

func (p *parser) conditional() (*ir.Node, error) {
	start := p.i
	test, err := p.binary(token.PrecNullish)
	if err != nil {
		return nil, err
	}
	if !p.is("?") {
		return test, nil
	}
	p.next()
	then, err := p.assign()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	els, err := p.assign()
	if err != nil {
		return nil, err
	}
	return &ir.Node{
		Kind:  ir.ConditionalKind,
		Test:  test,
		Then:  then,
		Else:  els,
		Range: p.rangeFrom(start),
	}, nil
}

func (p *parser) binaryOp() (string, int) {
	tok := p.peek()
	switch tok.Type {
	case token.TPunct:
	case token.TIdent:
		if !tok.Is("in") && !tok.Is("instanceof") {
			return "", 0
		}
	default:
		return "", 0
	}
	op := string(tok.Bytes)
	return op, token.BinaryPrec(op)
}

func (p *parser) binary(min int) (*ir.Node, error) {
	start := p.i
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, prec := p.binaryOp()
		if prec == 0 || prec < min {
			return left, nil
		}
		p.next()
		next := prec + 1
		if op == "**" {
			next = prec
		}
		right, err := p.binary(next)
		if err != nil {
			return nil, err
		}
		left = &ir.Node{
			Kind:  ir.BinaryKind,
			Op:    op,
			Left:  left,
			Right: right,
			Range: p.rangeFrom(start),
		}
	}
}

func (p *parser) unary() (*ir.Node, error) {
	start := p.i
	tok := p.peek()
	switch {
	case tok.Is("!"), tok.Is("-"), tok.Is("+"), tok.Is("~"),
		tok.Is("typeof"), tok.Is("void"), tok.Is("delete"):
		p.next()
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ir.Node{Kind: ir.UnaryKind, Op: string(tok.Bytes), Arg: arg, Range: p.rangeFrom(start)}, nil
	case tok.Is("++"), tok.Is("--"):
		p.next()
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ir.Node{Kind: ir.UpdateKind, Op: string(tok.Bytes), Arg: arg, Flag: true, Range: p.rangeFrom(start)}, nil
	}
	res, err := p.callMember()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); (tok.Is("++") || tok.Is("--")) && !tok.NL {
		p.next()
		res = &ir.Node{Kind: ir.UpdateKind, Op: string(tok.Bytes), Arg: res, Range: p.rangeFrom(start)}
	}
	return res, nil
}

func (p *parser) callMember() (*ir.Node, error) {
	start := p.i
	res, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch {
		case tok.Is("."):
			p.next()
			nt := p.peek()
			if nt.Type != token.TIdent {
				return nil, unexpected(nt)
			}
			p.next()
			res = &ir.Node{
				Kind:  ir.MemberKind,
				Left:  res,
				Right: tokNode(nt, ir.IdentifierKind),
				Range: p.rangeFrom(start),
			}
		case tok.Is("["):
			p.next()
			prop, err := p.assign()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect("]"); err != nil {
				return nil, err
			}
			res = &ir.Node{
				Kind:  ir.MemberKind,
				Left:  res,
				Right: prop,
				Flag:  true,
				Range: p.rangeFrom(start),
			}
		case tok.Is("("):
			p.next()
			args, err := p.list(")")
			if err != nil {
				return nil, err
			}
			res = &ir.Node{
				Kind:     ir.CallKind,
				Left:     res,
				Children: args,
				Range:    p.rangeFrom(start),
			}
		case tok.Is("?."):
			return nil, errAt(tok.Pos, "optional chaining is not supported")
		default:
			return res, nil
		}
	}
}

// list parses comma separated expressions up to and including close.
func (p *parser) list(close string) ([]*ir.Node, error) {
	res := []*ir.Node{}
	for !p.is(close) {
		if tok := p.peek(); tok.Is(",") {
			return nil, errAt(tok.Pos, "elisions are not supported")
		}
		e, err := p.assign()
		if err != nil {
			return nil, err
		}
		res = append(res, e)
		if !p.is(",") {
			break
		}
		p.next()
	}
	if _, err := p.expect(close); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *parser) primary() (*ir.Node, error) {
	start := p.i
	tok := p.next()
	rng := ir.Range{Start: tok.Start(), End: tok.End()}
	switch tok.Type {
	case token.TIdent:
		if p.is("=>") {
			return nil, errAt(tok.Pos, "arrow functions are not supported")
		}
		switch string(tok.Bytes) {
		case "true", "false":
			return &ir.Node{Kind: ir.BoolKind, Flag: tok.Is("true"), Range: rng}, nil
		case "null":
			return &ir.Node{Kind: ir.NullKind, Range: rng}, nil
		case "function", "class", "new", "async", "await", "yield":
			return nil, errAt(tok.Pos, "%s is not supported", tok.Bytes)
		}
		return tokNode(tok, ir.IdentifierKind), nil
	case token.TNumber:
		return &ir.Node{Kind: ir.NumberKind, Value: string(tok.Bytes), Range: rng}, nil
	case token.TString:
		v, err := token.Unquote(tok.Bytes)
		if err != nil {
			return nil, errAt(tok.Pos, "%v", err)
		}
		return &ir.Node{Kind: ir.StringKind, Value: v, Range: rng}, nil
	case token.TPunct:
		switch {
		case tok.Is("("):
			res, err := p.assign()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
			if t := p.peek(); t.Is("=>") {
				return nil, errAt(t.Pos, "arrow functions are not supported")
			}
			return res, nil
		case tok.Is("["):
			elts, err := p.list("]")
			if err != nil {
				return nil, err
			}
			return &ir.Node{Kind: ir.ArrayKind, Children: elts, Range: p.rangeFrom(start)}, nil
		case tok.Is("{"):
			return p.object(start)
		}
	}
	return nil, unexpected(tok)
}

func (p *parser) object(start int) (*ir.Node, error) {
	res := &ir.Node{Kind: ir.ObjectKind, Children: []*ir.Node{}}
	for !p.is("}") {
		prop, err := p.property()
		if err != nil {
			return nil, err
		}
		res.Children = append(res.Children, prop)
		if !p.is(",") {
			break
		}
		p.next()
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	res.Range = p.rangeFrom(start)
	return res, nil
}

func (p *parser) property() (*ir.Node, error) {
	start := p.i
	tok := p.peek()
	var key *ir.Node
	switch {
	case tok.Type == token.TIdent:
		p.next()
		key = tokNode(tok, ir.IdentifierKind)
	case tok.Type == token.TString, tok.Type == token.TNumber:
		k, err := p.primary()
		if err != nil {
			return nil, err
		}
		key = k
	case tok.Is("["):
		return nil, errAt(tok.Pos, "computed keys are not supported")
	default:
		return nil, unexpected(tok)
	}
	res := &ir.Node{Kind: ir.PropertyKind, Key: key}
	switch {
	case p.is(":"):
		p.next()
		v, err := p.assign()
		if err != nil {
			return nil, err
		}
		res.Val = v
	case key.Kind == ir.IdentifierKind && (p.is(",") || p.is("}")):
		res.Val = key.Clone()
		res.Flag = true
	case p.is("("):
		return nil, errAt(p.peek().Pos, "methods are not supported")
	default:
		return nil, unexpected(p.peek())
	}
	res.Range = p.rangeFrom(start)
	return res, nil
}
