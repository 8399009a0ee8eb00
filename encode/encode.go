package encode

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/splice/ir"

	"golang.org/x/net/html/atom"
)

// ErrIncomplete is returned for a node missing a property its kind cannot
// be rendered without.
var ErrIncomplete = errors.New("incomplete node")

type EncState struct {
	depth, indent int
	width         int
	quote         byte
	attrQuote     byte
	trailingComma bool

	// flat forces single line objects and arrays while measuring.
	flat bool

	Color func(ir.Kind, ColorAttr, string) string
}

// Encode renders node as source text. Rendering is whole-subtree and
// deterministic: equal trees render to equal text.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent:        2,
		width:         80,
		quote:         '\'',
		attrQuote:     '"',
		trailingComma: true,
	}
	for _, opt := range opts {
		opt(es)
	}
	s, err := encode(node, es)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func encode(node *ir.Node, es *EncState) (string, error) {
	if node == nil {
		return "", fmt.Errorf("%w: nil node", ErrIncomplete)
	}
	if node.Kind.IsMarkup() {
		return encodeMarkup(node, es)
	}
	if node.Kind.IsStatement() || node.Kind == ir.ProgramKind {
		return encodeStatement(node, es)
	}
	return encodeExpr(node, es)
}

func encodeMarkup(node *ir.Node, es *EncState) (string, error) {
	switch node.Kind {
	case ir.DocumentKind:
		return encodeList(node.Children, "", es)
	case ir.ElementKind:
		return encodeElement(node, es)
	case ir.StartTagKind:
		if node.Parent == nil || node.Parent.Kind != ir.ElementKind {
			return "", fmt.Errorf("%w: start tag outside element", ErrIncomplete)
		}
		return encodeStartTag(node.Parent.Name, node, es)
	case ir.EndTagKind:
		if node.Parent == nil || node.Parent.Kind != ir.ElementKind {
			return "", fmt.Errorf("%w: end tag outside element", ErrIncomplete)
		}
		return "</" + applyColor(es, ir.ElementKind, TagColor, node.Parent.Name) + ">", nil
	case ir.AttributeKind:
		if node.Key == nil {
			return "", fmt.Errorf("%w: attribute without key", ErrIncomplete)
		}
		res := applyColor(es, ir.AttributeKind, FieldColor, node.Key.Name)
		if node.Val == nil {
			return res, nil
		}
		v, err := encode(node.Val, es)
		if err != nil {
			return "", err
		}
		return res + "=" + v, nil
	case ir.DirectiveKind:
		if node.Key == nil {
			return "", fmt.Errorf("%w: directive without key", ErrIncomplete)
		}
		res, err := encode(node.Key, es)
		if err != nil {
			return "", err
		}
		if node.Val == nil {
			return res, nil
		}
		v, err := encode(node.Val, es)
		if err != nil {
			return "", err
		}
		return res + "=" + v, nil
	case ir.DirectiveKeyKind:
		return encodeDirectiveKey(node, es)
	case ir.IdentifierKind:
		return node.Name, nil
	case ir.LiteralKind:
		return applyColor(es, ir.LiteralKind, ValueColor, quoteAttr(node.Value, es)), nil
	case ir.TextKind:
		return node.Value, nil
	case ir.CommentKind:
		return applyColor(es, ir.CommentKind, CommentColor, "<!--"+node.Value+"-->"), nil
	case ir.ExpressionContainerKind:
		inner := ""
		if node.Val != nil {
			v, err := encode(node.Val, es)
			if err != nil {
				return "", err
			}
			inner = v
		}
		if node.Parent != nil && node.Parent.Kind == ir.DirectiveKind {
			q := string(es.attrQuote)
			return q + inner + q, nil
		}
		return "{{ " + inner + " }}", nil
	case ir.ForExpressionKind:
		return encodeFor(node, es)
	case ir.OnExpressionKind:
		var b strings.Builder
		for i, stmt := range node.Children {
			s, err := encode(stmt, es)
			if err != nil {
				return "", err
			}
			if i > 0 {
				if strings.HasSuffix(b.String(), ";") {
					b.WriteByte(' ')
				} else {
					b.WriteString("; ")
				}
			}
			b.WriteString(s)
		}
		return b.String(), nil
	}
	return "", fmt.Errorf("%w: unknown kind %s", ErrIncomplete, node.Kind)
}

func encodeList(nodes []*ir.Node, sep string, es *EncState) (string, error) {
	var b strings.Builder
	for i, c := range nodes {
		s, err := encode(c, es)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func encodeElement(node *ir.Node, es *EncState) (string, error) {
	if node.Name == "" {
		return "", fmt.Errorf("%w: element without name", ErrIncomplete)
	}
	start := node.StartTag
	if start == nil {
		start = &ir.Node{Kind: ir.StartTagKind}
	}
	res, err := encodeStartTag(node.Name, start, es)
	if err != nil {
		return "", err
	}
	if start.Flag {
		return res, nil
	}
	children, err := encodeList(node.Children, "", es)
	if err != nil {
		return "", err
	}
	res += children
	if node.EndTag != nil && !IsVoid(node.Name) {
		res += "</" + applyColor(es, ir.ElementKind, TagColor, node.Name) + ">"
	}
	return res, nil
}

func encodeStartTag(name string, start *ir.Node, es *EncState) (string, error) {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(applyColor(es, ir.ElementKind, TagColor, name))
	for _, attr := range start.Children {
		s, err := encode(attr, es)
		if err != nil {
			return "", err
		}
		b.WriteByte(' ')
		b.WriteString(s)
	}
	if start.Flag {
		b.WriteString(" />")
	} else {
		b.WriteByte('>')
	}
	return b.String(), nil
}

func encodeDirectiveKey(node *ir.Node, es *EncState) (string, error) {
	if node.Key == nil {
		return "", fmt.Errorf("%w: directive key without name", ErrIncomplete)
	}
	name := node.Key.Name
	arg := ""
	if node.Arg != nil {
		arg = node.Arg.Name
	}
	var res string
	switch {
	case name == "bind" && arg != "":
		res = ":" + arg
	case name == "on" && arg != "":
		res = "@" + arg
	case name == "slot" && arg != "":
		res = "#" + arg
	case arg != "":
		res = "v-" + name + ":" + arg
	default:
		res = "v-" + name
	}
	for _, m := range node.Children {
		res += "." + m.Name
	}
	return applyColor(es, ir.DirectiveKeyKind, FieldColor, res), nil
}

func encodeFor(node *ir.Node, es *EncState) (string, error) {
	if node.Right == nil || len(node.Children) == 0 {
		return "", fmt.Errorf("%w: for expression", ErrIncomplete)
	}
	left, err := encodeList(node.Children, ", ", es)
	if err != nil {
		return "", err
	}
	if len(node.Children) > 1 {
		left = "(" + left + ")"
	}
	right, err := encode(node.Right, es)
	if err != nil {
		return "", err
	}
	op := node.Op
	if op == "" {
		op = "in"
	}
	return left + " " + op + " " + right, nil
}

func quoteAttr(v string, es *EncState) string {
	q := string(es.attrQuote)
	ent := "&quot;"
	if es.attrQuote == '\'' {
		ent = "&#39;"
	}
	return q + strings.ReplaceAll(v, q, ent) + q
}

// IsVoid reports whether an HTML element never has an end tag.
func IsVoid(name string) bool {
	switch atom.Lookup([]byte(strings.ToLower(name))) {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr,
		atom.Img, atom.Input, atom.Keygen, atom.Link, atom.Meta, atom.Param,
		atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}

func applyColor(es *EncState, k ir.Kind, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(k, attr, v)
}
