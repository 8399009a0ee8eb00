package parse

import (
	"bytes"
	"strings"

	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/token"
)

func isDirective(name string) bool {
	if len(name) < 2 {
		return false
	}
	switch name[0] {
	case ':', '@', '#':
		return true
	}
	return strings.HasPrefix(name, "v-") && len(name) > 2
}

var shorthands = map[byte]string{
	':': "bind",
	'@': "on",
	'#': "slot",
}

// directiveKey splits an attribute name such as v-on:click.stop or :src
// into a DirectiveKey. The range of the name identifier covers the prefix.
func directiveKey(name string, base int) *ir.Node {
	res := &ir.Node{
		Kind:     ir.DirectiveKeyKind,
		Range:    ir.Range{Start: base, End: base + len(name)},
		Children: []*ir.Node{},
	}
	var dname string
	nameEnd, argStart := 0, -1
	if sh, ok := shorthands[name[0]]; ok {
		dname, nameEnd, argStart = sh, 1, 1
	} else {
		body := name[2:]
		k := strings.IndexAny(body, ":.")
		if k < 0 {
			k = len(body)
		}
		dname, nameEnd = body[:k], 2+k
		if nameEnd < len(name) && name[nameEnd] == ':' {
			argStart = nameEnd + 1
		}
	}
	res.Key = &ir.Node{Kind: ir.IdentifierKind, Name: dname, Range: ir.Range{Start: base, End: base + nameEnd}}
	modStart := nameEnd
	if argStart >= 0 {
		depth := 0
		ae := argStart
	arg:
		for ae < len(name) {
			switch name[ae] {
			case '[':
				depth++
			case ']':
				depth--
			case '.':
				if depth == 0 {
					break arg
				}
			}
			ae++
		}
		if ae > argStart {
			res.Arg = &ir.Node{Kind: ir.IdentifierKind, Name: name[argStart:ae], Range: ir.Range{Start: base + argStart, End: base + ae}}
		}
		modStart = ae
	}
	for modStart < len(name) && name[modStart] == '.' {
		ms := modStart + 1
		me := ms
		for me < len(name) && name[me] != '.' {
			me++
		}
		res.Children = append(res.Children, &ir.Node{Kind: ir.IdentifierKind, Name: name[ms:me], Range: ir.Range{Start: base + ms, End: base + me}})
		modStart = me
	}
	return res
}

func (cp *componentParser) directive(name string, ns, ne, qs, qe, vs, ve int, hasValue bool) (*ir.Node, error) {
	key := directiveKey(name, ns)
	res := &ir.Node{Kind: ir.DirectiveKind, Key: key, Range: ir.Range{Start: ns, End: ne}}
	if !hasValue {
		return res, nil
	}
	res.Range.End = qe
	cont := &ir.Node{Kind: ir.ExpressionContainerKind, Range: ir.Range{Start: qs, End: qe}}
	res.Val = cont
	inner := cp.src[vs:ve]
	if len(bytes.TrimSpace(inner)) == 0 {
		return res, nil
	}
	opts := []ParseOption{Base(vs), Doc(cp.doc)}
	var (
		e   *ir.Node
		err error
	)
	switch key.Key.Name {
	case "for":
		e, err = parseFor(inner, opts)
	case "on":
		e, err = parseHandler(inner, opts)
	default:
		e, err = ParseExpression(inner, opts...)
	}
	if err != nil {
		return nil, err
	}
	cont.Val = e
	return res, nil
}

// parseFor parses the value of a v-for directive: item in items, or
// (item, index) of items.
func parseFor(src []byte, opts []ParseOption) (*ir.Node, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, err
	}
	res := &ir.Node{Kind: ir.ForExpressionKind, Children: []*ir.Node{}}
	start := p.i
	if p.is("(") {
		p.next()
		for !p.is(")") {
			id, err := p.ident()
			if err != nil {
				return nil, err
			}
			res.Children = append(res.Children, id)
			if !p.is(",") {
				break
			}
			p.next()
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
	} else {
		id, err := p.ident()
		if err != nil {
			return nil, err
		}
		res.Children = append(res.Children, id)
	}
	if len(res.Children) == 0 {
		return nil, errAt(p.peek().Pos, "empty v-for alias")
	}
	tok := p.peek()
	if !tok.Is("in") && !tok.Is("of") {
		return nil, unexpected(tok)
	}
	p.next()
	res.Op = string(tok.Bytes)
	right, err := p.assign()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != token.TEOF {
		return nil, unexpected(tok)
	}
	res.Right = right
	res.Range = p.rangeFrom(start)
	ir.SetParents(res)
	return res, nil
}

// parseHandler parses the value of a v-on directive. A handler reference, an
// identifier or member path, is kept as is; anything else is a list of
// inline statements.
func parseHandler(src []byte, opts []ParseOption) (*ir.Node, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, err
	}
	start := p.i
	body, err := p.statements()
	if err != nil {
		return nil, err
	}
	if len(body) == 1 && body[0].Kind == ir.ExprStmtKind && !body[0].Flag {
		switch e := body[0].Val; e.Kind {
		case ir.IdentifierKind, ir.MemberKind:
			ir.SetParents(e)
			return e, nil
		}
	}
	res := &ir.Node{Kind: ir.OnExpressionKind, Children: body, Range: p.rangeFrom(start)}
	ir.SetParents(res)
	return res, nil
}
