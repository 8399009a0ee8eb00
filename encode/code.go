package encode

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/token"
)

func encodeStatement(node *ir.Node, es *EncState) (string, error) {
	var res string
	switch node.Kind {
	case ir.ProgramKind:
		return encodeList(node.Children, "\n", es)
	case ir.ImportKind:
		s, err := encodeImport(node, es)
		if err != nil {
			return "", err
		}
		res = s
	case ir.VarDeclKind:
		if node.Key == nil {
			return "", fmt.Errorf("%w: declaration without id", ErrIncomplete)
		}
		kw := node.Op
		if kw == "" {
			kw = "const"
		}
		id, err := encode(node.Key, es)
		if err != nil {
			return "", err
		}
		res = applyColor(es, ir.VarDeclKind, KeywordColor, kw) + " " + id
		if node.Val != nil {
			v, err := encodeOperand(node.Val, token.PrecAssign, es)
			if err != nil {
				return "", err
			}
			res += " = " + v
		}
	case ir.ExportDefaultKind:
		if node.Val == nil {
			return "", fmt.Errorf("%w: export without declaration", ErrIncomplete)
		}
		v, err := encodeOperand(node.Val, token.PrecAssign, es)
		if err != nil {
			return "", err
		}
		res = applyColor(es, ir.ExportDefaultKind, KeywordColor, "export default") + " " + v
	case ir.ExprStmtKind:
		if node.Val == nil {
			return "", fmt.Errorf("%w: empty expression statement", ErrIncomplete)
		}
		v, err := encodeOperand(node.Val, token.PrecAssign, es)
		if err != nil {
			return "", err
		}
		if startsAmbiguous(node.Val) {
			v = "(" + v + ")"
		}
		res = v
	default:
		return "", fmt.Errorf("%w: %s is not a statement", ErrIncomplete, node.Kind)
	}
	if node.Flag {
		res += ";"
	}
	return res, nil
}

// startsAmbiguous reports whether an expression statement would begin with
// a brace and read as a block.
func startsAmbiguous(n *ir.Node) bool {
	for n != nil {
		switch n.Kind {
		case ir.ObjectKind:
			return true
		case ir.MemberKind, ir.CallKind, ir.BinaryKind, ir.AssignKind:
			n = n.Left
		case ir.ConditionalKind:
			n = n.Test
		case ir.UpdateKind:
			if n.Flag {
				return false
			}
			n = n.Arg
		default:
			return false
		}
	}
	return false
}

func encodeImport(node *ir.Node, es *EncState) (string, error) {
	if node.Val == nil {
		return "", fmt.Errorf("%w: import without source", ErrIncomplete)
	}
	src, err := encode(node.Val, es)
	if err != nil {
		return "", err
	}
	kw := applyColor(es, ir.ImportKind, KeywordColor, "import")
	if len(node.Children) == 0 {
		return kw + " " + src, nil
	}
	var parts, named []string
	for _, spec := range node.Children {
		s, err := encodeSpecifier(spec, es)
		if err != nil {
			return "", err
		}
		if spec.Op == "named" {
			named = append(named, s)
			continue
		}
		parts = append(parts, s)
	}
	if len(named) > 0 {
		parts = append(parts, "{ "+strings.Join(named, ", ")+" }")
	}
	return kw + " " + strings.Join(parts, ", ") + " from " + src, nil
}

func encodeSpecifier(node *ir.Node, es *EncState) (string, error) {
	if node.Kind != ir.ImportSpecifierKind || node.Val == nil {
		return "", fmt.Errorf("%w: import specifier", ErrIncomplete)
	}
	local := node.Val.Name
	switch node.Op {
	case "default":
		return local, nil
	case "namespace":
		return "* as " + local, nil
	}
	if node.Key == nil || node.Key.Name == local {
		return local, nil
	}
	return node.Key.Name + " as " + local, nil
}

func precOf(n *ir.Node) int {
	switch n.Kind {
	case ir.AssignKind:
		return token.PrecAssign
	case ir.ConditionalKind:
		return token.PrecCond
	case ir.BinaryKind:
		if p := token.BinaryPrec(n.Op); p != 0 {
			return p
		}
		return token.PrecNullish
	case ir.UnaryKind:
		return token.PrecUnary
	case ir.UpdateKind:
		return token.PrecUpdate
	case ir.CallKind, ir.MemberKind:
		return token.PrecCall
	}
	return token.PrecPrimary
}

// binaryMins returns the lowest precedences the left and right operands of
// op may have unparenthesised. The left operand of ** cannot be a unary
// expression.
func binaryMins(op string, prec int) (int, int) {
	if op == "**" {
		return token.PrecUpdate, prec
	}
	return prec, prec + 1
}

// mixesNullish reports whether operand is a || or && expression directly
// under ??, which must be parenthesised whatever the precedence.
func mixesNullish(op string, operand *ir.Node) bool {
	if op != "??" || operand == nil || operand.Kind != ir.BinaryKind {
		return false
	}
	return operand.Op == "||" || operand.Op == "&&"
}

// encodeOperand renders n, parenthesised when it binds looser than min.
func encodeOperand(n *ir.Node, min int, es *EncState) (string, error) {
	if n == nil {
		return "", fmt.Errorf("%w: missing operand", ErrIncomplete)
	}
	s, err := encode(n, es)
	if err != nil {
		return "", err
	}
	if precOf(n) < min {
		return "(" + s + ")", nil
	}
	return s, nil
}

func encodeExpr(node *ir.Node, es *EncState) (string, error) {
	switch node.Kind {
	case ir.IdentifierKind:
		return node.Name, nil
	case ir.StringKind:
		return applyColor(es, ir.StringKind, ValueColor, QuoteString(node.Value, es.quote)), nil
	case ir.NumberKind:
		return applyColor(es, ir.NumberKind, ValueColor, node.Value), nil
	case ir.BoolKind:
		v := "false"
		if node.Flag {
			v = "true"
		}
		return applyColor(es, ir.BoolKind, ValueColor, v), nil
	case ir.NullKind:
		return applyColor(es, ir.NullKind, ValueColor, "null"), nil
	case ir.ObjectKind:
		return encodeBracketed(node, "{", "}", es)
	case ir.ArrayKind:
		return encodeBracketed(node, "[", "]", es)
	case ir.PropertyKind:
		return encodeProperty(node, es)
	case ir.ImportSpecifierKind:
		return encodeSpecifier(node, es)
	case ir.MemberKind:
		obj, err := encodeOperand(node.Left, token.PrecCall, es)
		if err != nil {
			return "", err
		}
		if node.Left.Kind == ir.NumberKind && !strings.ContainsAny(obj, ".eExX") {
			obj = "(" + obj + ")"
		}
		if node.Right == nil {
			return "", fmt.Errorf("%w: member without property", ErrIncomplete)
		}
		if node.Flag {
			prop, err := encodeOperand(node.Right, token.PrecAssign, es)
			if err != nil {
				return "", err
			}
			return obj + "[" + prop + "]", nil
		}
		return obj + "." + node.Right.Name, nil
	case ir.CallKind:
		callee, err := encodeOperand(node.Left, token.PrecCall, es)
		if err != nil {
			return "", err
		}
		args := make([]string, len(node.Children))
		for i, a := range node.Children {
			s, err := encodeOperand(a, token.PrecAssign, es)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return callee + "(" + strings.Join(args, ", ") + ")", nil
	case ir.UnaryKind:
		arg, err := encodeOperand(node.Arg, token.PrecUnary, es)
		if err != nil {
			return "", err
		}
		op := node.Op
		if isWordOp(op) || (op != "" && strings.HasPrefix(arg, op[:1]) && (op == "-" || op == "+")) {
			return op + " " + arg, nil
		}
		return op + arg, nil
	case ir.UpdateKind:
		arg, err := encodeOperand(node.Arg, token.PrecCall, es)
		if err != nil {
			return "", err
		}
		if node.Flag {
			return node.Op + arg, nil
		}
		return arg + node.Op, nil
	case ir.BinaryKind:
		lmin, rmin := binaryMins(node.Op, precOf(node))
		left, err := encodeOperand(node.Left, lmin, es)
		if err != nil {
			return "", err
		}
		if mixesNullish(node.Op, node.Left) {
			left = "(" + left + ")"
		}
		right, err := encodeOperand(node.Right, rmin, es)
		if err != nil {
			return "", err
		}
		if mixesNullish(node.Op, node.Right) {
			right = "(" + right + ")"
		}
		return left + " " + node.Op + " " + right, nil
	case ir.AssignKind:
		left, err := encodeOperand(node.Left, token.PrecCall, es)
		if err != nil {
			return "", err
		}
		right, err := encodeOperand(node.Right, token.PrecAssign, es)
		if err != nil {
			return "", err
		}
		op := node.Op
		if op == "" {
			op = "="
		}
		return left + " " + op + " " + right, nil
	case ir.ConditionalKind:
		test, err := encodeOperand(node.Test, token.PrecNullish, es)
		if err != nil {
			return "", err
		}
		then, err := encodeOperand(node.Then, token.PrecAssign, es)
		if err != nil {
			return "", err
		}
		els, err := encodeOperand(node.Else, token.PrecAssign, es)
		if err != nil {
			return "", err
		}
		return test + " ? " + then + " : " + els, nil
	}
	return "", fmt.Errorf("%w: unknown kind %s", ErrIncomplete, node.Kind)
}

func isWordOp(op string) bool {
	switch op {
	case "typeof", "void", "delete":
		return true
	}
	return false
}

func encodeProperty(node *ir.Node, es *EncState) (string, error) {
	if node.Key == nil {
		return "", fmt.Errorf("%w: property without key", ErrIncomplete)
	}
	var key string
	switch node.Key.Kind {
	case ir.IdentifierKind:
		key = node.Key.Name
	case ir.StringKind, ir.NumberKind:
		k, err := encode(node.Key, es)
		if err != nil {
			return "", err
		}
		key = k
	default:
		k, err := encodeOperand(node.Key, token.PrecAssign, es)
		if err != nil {
			return "", err
		}
		key = "[" + k + "]"
	}
	key = applyColor(es, ir.PropertyKind, FieldColor, key)
	if node.Val == nil {
		return key, nil
	}
	if node.Flag && node.Key.Kind == ir.IdentifierKind &&
		node.Val.Kind == ir.IdentifierKind && node.Val.Name == node.Key.Name {
		return key, nil
	}
	v, err := encodeOperand(node.Val, token.PrecAssign, es)
	if err != nil {
		return "", err
	}
	return key + ": " + v, nil
}

// encodeBracketed renders an object or array on one line when it fits the
// width, otherwise one item per line.
func encodeBracketed(node *ir.Node, open, close string, es *EncState) (string, error) {
	if len(node.Children) == 0 {
		return open + close, nil
	}
	items, err := encodeItems(node, es, true)
	if err != nil {
		return "", err
	}
	pad := ""
	if open == "{" {
		pad = " "
	}
	flat := open + pad + strings.Join(items, ", ") + pad + close
	if es.flat || es.width <= 0 || es.depth*es.indent+visibleLen(flat) <= es.width {
		return flat, nil
	}
	es.depth++
	items, err = encodeItems(node, es, false)
	es.depth--
	if err != nil {
		return "", err
	}
	inner := strings.Repeat(" ", (es.depth+1)*es.indent)
	var b strings.Builder
	b.WriteString(open)
	b.WriteByte('\n')
	for i, it := range items {
		b.WriteString(inner)
		b.WriteString(it)
		if i < len(items)-1 || es.trailingComma {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", es.depth*es.indent))
	b.WriteString(close)
	return b.String(), nil
}

func encodeItems(node *ir.Node, es *EncState, flat bool) ([]string, error) {
	saved := es.flat
	es.flat = saved || flat
	defer func() { es.flat = saved }()
	items := make([]string, len(node.Children))
	for i, c := range node.Children {
		s, err := encodeOperand(c, token.PrecAssign, es)
		if err != nil {
			return nil, err
		}
		items[i] = s
	}
	return items, nil
}

// QuoteString renders v as a code string literal delimited by q.
func QuoteString(v string, q byte) string {
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range v {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}

// visibleLen counts runes outside ANSI escape sequences.
func visibleLen(s string) int {
	n := 0
	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			j := strings.IndexByte(s[i:], 'm')
			if j < 0 {
				break
			}
			i += j + 1
			continue
		}
		_, sz := utf8.DecodeRuneInString(s[i:])
		i += sz
		n++
	}
	return n
}

// NeedsParens reports whether n, rendered on its own, must be
// parenthesised to keep its meaning in the slot it occupies under its
// parent. This includes an expression beginning an expression statement
// whose rendering would start with a brace.
func NeedsParens(n *ir.Node) bool {
	p := n.Parent
	if p == nil || !n.Kind.IsExpression() {
		return false
	}
	if startsStatement(n) && startsAmbiguous(n) {
		return true
	}
	min := token.PrecAssign
	switch p.Kind {
	case ir.BinaryKind:
		if mixesNullish(p.Op, n) {
			return true
		}
		lmin, rmin := binaryMins(p.Op, precOf(p))
		if n == p.Left {
			min = lmin
		} else {
			min = rmin
		}
	case ir.UnaryKind:
		min = token.PrecUnary
	case ir.UpdateKind:
		min = token.PrecCall
	case ir.MemberKind, ir.CallKind, ir.AssignKind:
		if n == p.Left {
			min = token.PrecCall
		}
	case ir.ConditionalKind:
		if n == p.Test {
			min = token.PrecNullish
		}
	}
	return precOf(n) < min
}

// startsStatement reports whether the text of n is the first text of an
// expression statement.
func startsStatement(n *ir.Node) bool {
	for p := n.Parent; p != nil; n, p = p, p.Parent {
		switch p.Kind {
		case ir.ExprStmtKind:
			return p.Val == n
		case ir.MemberKind, ir.CallKind, ir.BinaryKind, ir.AssignKind:
			if p.Left != n {
				return false
			}
		case ir.ConditionalKind:
			if p.Test != n {
				return false
			}
		case ir.UpdateKind:
			if p.Flag || p.Arg != n {
				return false
			}
		default:
			return false
		}
	}
	return false
}
