package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/splice/debug"
	"github.com/signadot/splice/encode"
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/token"

	"golang.org/x/net/html"
)

type componentParser struct {
	src   []byte
	doc   *token.PosDoc
	root  *ir.Node
	stack []*ir.Node
}

// ParseComponent parses a markup component. It returns the Document and,
// for each host returned by Hosts, the host's embedded text padded with
// leading newlines so that line numbers within it match those of src.
func ParseComponent(src []byte) (*ir.Node, []string, error) {
	cp := &componentParser{
		src:  src,
		doc:  token.NewPosDoc(src, 0),
		root: &ir.Node{Kind: ir.DocumentKind, Range: ir.Range{End: len(src)}, Children: []*ir.Node{}},
	}
	z := html.NewTokenizer(bytes.NewReader(src))
	off := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("%w: %w", ErrParse, z.Err())
		}
		start, end := off, off+len(z.Raw())
		off = end
		var err error
		switch tt {
		case html.TextToken:
			err = cp.text(start, end)
		case html.StartTagToken, html.SelfClosingTagToken:
			var el *ir.Node
			el, err = cp.startTag(start, end, tt == html.SelfClosingTagToken)
			if err == nil && tt == html.SelfClosingTagToken && isRawText(el.Name) {
				z.NextIsNotRawText()
			}
		case html.EndTagToken:
			err = cp.endTag(start, end)
		case html.CommentToken:
			cp.comment(start, end)
		case html.DoctypeToken:
			cp.add(&ir.Node{Kind: ir.TextKind, Value: string(src[start:end]), Range: ir.Range{Start: start, End: end}})
		}
		if err != nil {
			return nil, nil, err
		}
	}
	if off != len(src) {
		return nil, nil, errAt(cp.doc.Pos(off), "unterminated markup")
	}
	if n := len(cp.stack); n > 0 {
		open := cp.stack[n-1]
		return nil, nil, errAt(cp.doc.Pos(open.Range.Start), "unclosed element <%s>", open.Name)
	}
	ir.SetParents(cp.root)
	hosts := Hosts(cp.root)
	texts := make([]string, len(hosts))
	for i, host := range hosts {
		texts[i] = cp.embedded(host)
	}
	if debug.Parse() {
		debug.Logf("parsed component: %d top level nodes, %d hosts\n", len(cp.root.Children), len(hosts))
	}
	return cp.root, texts, nil
}

func (cp *componentParser) top() *ir.Node {
	if n := len(cp.stack); n > 0 {
		return cp.stack[n-1]
	}
	return cp.root
}

func (cp *componentParser) add(n *ir.Node) {
	top := cp.top()
	top.Children = append(top.Children, n)
}

func (cp *componentParser) text(start, end int) error {
	if top := cp.top(); top.Kind == ir.ElementKind && isRawText(top.Name) {
		cp.add(&ir.Node{Kind: ir.TextKind, Value: string(cp.src[start:end]), Range: ir.Range{Start: start, End: end}})
		return nil
	}
	t := cp.src[start:end]
	i := 0
	for {
		k := bytes.Index(t[i:], []byte("{{"))
		if k < 0 {
			break
		}
		k += i
		c := bytes.Index(t[k+2:], []byte("}}"))
		if c < 0 {
			break
		}
		c += k + 2
		if k > i {
			cp.add(&ir.Node{Kind: ir.TextKind, Value: string(t[i:k]), Range: ir.Range{Start: start + i, End: start + k}})
		}
		cont := &ir.Node{Kind: ir.ExpressionContainerKind, Range: ir.Range{Start: start + k, End: start + c + 2}}
		if inner := t[k+2 : c]; len(bytes.TrimSpace(inner)) != 0 {
			e, err := ParseExpression(inner, Base(start+k+2), Doc(cp.doc))
			if err != nil {
				return err
			}
			cont.Val = e
		}
		cp.add(cont)
		i = c + 2
	}
	if i < len(t) {
		cp.add(&ir.Node{Kind: ir.TextKind, Value: string(t[i:]), Range: ir.Range{Start: start + i, End: end}})
	}
	return nil
}

func (cp *componentParser) comment(start, end int) {
	raw := string(cp.src[start:end])
	rng := ir.Range{Start: start, End: end}
	if len(raw) >= 7 && strings.HasPrefix(raw, "<!--") && strings.HasSuffix(raw, "-->") {
		cp.add(&ir.Node{Kind: ir.CommentKind, Value: raw[4 : len(raw)-3], Range: rng})
		return
	}
	cp.add(&ir.Node{Kind: ir.TextKind, Value: raw, Range: rng})
}

func (cp *componentParser) startTag(start, end int, selfClosing bool) (*ir.Node, error) {
	r := cp.src[start:end]
	i := 1
	for i < len(r) && !isSpace(r[i]) && r[i] != '/' && r[i] != '>' {
		i++
	}
	rng := ir.Range{Start: start, End: end}
	el := &ir.Node{
		Kind:     ir.ElementKind,
		Name:     string(r[1:i]),
		Range:    rng,
		StartTag: &ir.Node{Kind: ir.StartTagKind, Range: rng, Flag: selfClosing, Children: []*ir.Node{}},
	}
	for {
		for i < len(r) && isSpace(r[i]) {
			i++
		}
		if i >= len(r) || r[i] == '>' {
			break
		}
		if r[i] == '/' {
			i++
			continue
		}
		ns := i
		i++
		for i < len(r) && !isSpace(r[i]) && r[i] != '/' && r[i] != '>' && r[i] != '=' {
			i++
		}
		ne := i
		j := i
		for j < len(r) && isSpace(r[j]) {
			j++
		}
		vs, ve, qs, qe := -1, -1, -1, -1
		if j < len(r) && r[j] == '=' {
			j++
			for j < len(r) && isSpace(r[j]) {
				j++
			}
			switch {
			case j < len(r) && (r[j] == '"' || r[j] == '\''):
				k := bytes.IndexByte(r[j+1:], r[j])
				if k < 0 {
					return nil, errAt(cp.doc.Pos(start+j), "unterminated attribute value")
				}
				qs, qe = j, j+k+2
				vs, ve = j+1, j+1+k
			default:
				k := j
				for k < len(r) && !isSpace(r[k]) && r[k] != '>' {
					k++
				}
				qs, qe, vs, ve = j, k, j, k
			}
			i = qe
		}
		attr, err := cp.attribute(string(r[ns:ne]), start+ns, start+ne, start+qs, start+qe, start+vs, start+ve, vs >= 0)
		if err != nil {
			return nil, err
		}
		el.StartTag.Children = append(el.StartTag.Children, attr)
	}
	cp.add(el)
	if !selfClosing && !encode.IsVoid(el.Name) {
		cp.stack = append(cp.stack, el)
	}
	return el, nil
}

func (cp *componentParser) attribute(name string, ns, ne, qs, qe, vs, ve int, hasValue bool) (*ir.Node, error) {
	end := ne
	if hasValue {
		end = qe
	}
	if isDirective(name) {
		return cp.directive(name, ns, ne, qs, qe, vs, ve, hasValue)
	}
	res := &ir.Node{
		Kind:  ir.AttributeKind,
		Key:   &ir.Node{Kind: ir.IdentifierKind, Name: name, Range: ir.Range{Start: ns, End: ne}},
		Range: ir.Range{Start: ns, End: end},
	}
	if hasValue {
		res.Val = &ir.Node{Kind: ir.LiteralKind, Value: string(cp.src[vs:ve]), Range: ir.Range{Start: qs, End: qe}}
	}
	return res, nil
}

func (cp *componentParser) endTag(start, end int) error {
	r := cp.src[start:end]
	i := 2
	for i < len(r) && !isSpace(r[i]) && r[i] != '>' && r[i] != '/' {
		i++
	}
	name := string(r[2:i])
	n := len(cp.stack)
	if n == 0 {
		return errAt(cp.doc.Pos(start), "unexpected end tag </%s>", name)
	}
	el := cp.stack[n-1]
	if !strings.EqualFold(el.Name, name) {
		return errAt(cp.doc.Pos(start), "end tag </%s> does not match <%s>", name, el.Name)
	}
	el.EndTag = &ir.Node{Kind: ir.EndTagKind, Range: ir.Range{Start: start, End: end}}
	el.Range.End = end
	cp.stack = cp.stack[:n-1]
	return nil
}

func (cp *componentParser) embedded(host *ir.Node) string {
	for _, c := range host.Children {
		if c.Kind == ir.TextKind {
			return strings.Repeat("\n", cp.doc.Line(c.Range.Start)) + c.Value
		}
	}
	return strings.Repeat("\n", cp.doc.Line(host.StartTag.Range.End))
}

// Hosts returns the top-level script elements of doc holding code, in
// document order. Script elements nested in other markup are left as raw
// text.
func Hosts(doc *ir.Node) []*ir.Node {
	var res []*ir.Node
	for _, n := range doc.Children {
		if n.Kind == ir.ElementKind && strings.EqualFold(n.Name, "script") && isCodeScript(n) {
			res = append(res, n)
		}
	}
	return res
}

func isCodeScript(el *ir.Node) bool {
	if el.StartTag == nil {
		return true
	}
	for _, attr := range el.StartTag.Children {
		if attr.Kind != ir.AttributeKind || attr.Val == nil {
			continue
		}
		v := strings.ToLower(attr.Val.Value)
		switch strings.ToLower(attr.Key.Name) {
		case "lang":
			switch v {
			case "", "js", "javascript", "mjs":
			default:
				return false
			}
		case "type":
			switch v {
			case "", "module", "text/javascript", "application/javascript":
			default:
				return false
			}
		}
	}
	return true
}

func isRawText(name string) bool {
	switch strings.ToLower(name) {
	case "script", "style", "textarea", "title", "iframe", "noembed", "noframes", "noscript", "plaintext", "xmp":
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
