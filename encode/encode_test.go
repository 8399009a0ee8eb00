package encode

import (
	"errors"
	"testing"

	"github.com/signadot/splice/ir"
)

func directive(name, arg, expr string, mods ...string) *ir.Node {
	key := &ir.Node{Kind: ir.DirectiveKeyKind, Key: ir.NewIdentifier(name)}
	if arg != "" {
		key.Arg = ir.NewIdentifier(arg)
	}
	for _, m := range mods {
		key.Children = append(key.Children, ir.NewIdentifier(m))
	}
	res := &ir.Node{Kind: ir.DirectiveKind, Key: key}
	if expr != "" {
		res.Val = &ir.Node{Kind: ir.ExpressionContainerKind, Val: ir.NewIdentifier(expr)}
	}
	return res
}

func TestEncodeMarkup(t *testing.T) {
	selfClosing := ir.NewElement("MyComp", []*ir.Node{ir.NewAttribute("a", "1")})
	selfClosing.StartTag.Flag = true
	selfClosing.EndTag = nil

	tests := []struct {
		name string
		in   *ir.Node
		want string
	}{
		{
			name: "element",
			in: ir.NewElement("div",
				[]*ir.Node{ir.NewAttribute("class", "box"), ir.NewAttribute("hidden", "")},
				ir.NewText("hi")),
			want: `<div class="box" hidden>hi</div>`,
		},
		{
			name: "void",
			in:   ir.NewElement("br", nil),
			want: `<br>`,
		},
		{
			name: "self closing",
			in:   selfClosing,
			want: `<MyComp a="1" />`,
		},
		{
			name: "quote in literal",
			in:   ir.NewAttribute("title", `say "hi"`),
			want: `title="say &quot;hi&quot;"`,
		},
		{
			name: "bind shorthand",
			in:   directive("bind", "src", "url"),
			want: `:src="url"`,
		},
		{
			name: "on shorthand with modifiers",
			in:   directive("on", "click", "go", "stop", "prevent"),
			want: `@click.stop.prevent="go"`,
		},
		{
			name: "slot shorthand",
			in:   directive("slot", "header", ""),
			want: `#header`,
		},
		{
			name: "plain directive",
			in:   directive("if", "", "ok"),
			want: `v-if="ok"`,
		},
		{
			name: "custom directive with argument",
			in:   directive("focus", "x", ""),
			want: `v-focus:x`,
		},
		{
			name: "mustache",
			in:   &ir.Node{Kind: ir.ExpressionContainerKind, Val: ir.NewIdentifier("msg")},
			want: `{{ msg }}`,
		},
		{
			name: "comment",
			in:   &ir.Node{Kind: ir.CommentKind, Value: " note "},
			want: `<!-- note -->`,
		},
		{
			name: "for",
			in: &ir.Node{
				Kind:     ir.ForExpressionKind,
				Children: []*ir.Node{ir.NewIdentifier("item"), ir.NewIdentifier("i")},
				Op:       "in",
				Right:    ir.NewIdentifier("items"),
			},
			want: `(item, i) in items`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ir.SetParents(tt.in)
			got, err := String(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeTagsNeedElement(t *testing.T) {
	el := ir.NewElement("p", nil)
	ir.SetParents(el)
	if got := MustString(el.EndTag); got != "</p>" {
		t.Errorf("end tag: %s", got)
	}
	if got := MustString(el.StartTag); got != "<p>" {
		t.Errorf("start tag: %s", got)
	}
	if _, err := String(&ir.Node{Kind: ir.EndTagKind}); !errors.Is(err, ErrIncomplete) {
		t.Errorf("expected ErrIncomplete, got %v", err)
	}
}

func bin(op string, l, r *ir.Node) *ir.Node {
	return &ir.Node{Kind: ir.BinaryKind, Op: op, Left: l, Right: r}
}

func id(s string) *ir.Node { return ir.NewIdentifier(s) }

func TestEncodeCode(t *testing.T) {
	tests := []struct {
		name string
		in   *ir.Node
		opts []EncodeOption
		want string
	}{
		{
			name: "precedence left",
			in:   bin("*", bin("+", id("a"), id("b")), id("c")),
			want: "(a + b) * c",
		},
		{
			name: "precedence right",
			in:   bin("-", id("a"), bin("-", id("b"), id("c"))),
			want: "a - (b - c)",
		},
		{
			name: "no parens needed",
			in:   bin("+", id("a"), bin("*", id("b"), id("c"))),
			want: "a + b * c",
		},
		{
			name: "unary",
			in:   &ir.Node{Kind: ir.UnaryKind, Op: "!", Arg: bin("&&", id("a"), id("b"))},
			want: "!(a && b)",
		},
		{
			name: "unary exponent base",
			in:   bin("**", &ir.Node{Kind: ir.UnaryKind, Op: "-", Arg: id("y")}, id("n")),
			want: "(-y) ** n",
		},
		{
			name: "update exponent base",
			in:   bin("**", &ir.Node{Kind: ir.UpdateKind, Op: "++", Arg: id("y")}, id("n")),
			want: "y++ ** n",
		},
		{
			name: "nullish with or",
			in:   bin("??", id("a"), bin("||", id("b"), id("c"))),
			want: "a ?? (b || c)",
		},
		{
			name: "and with nullish",
			in:   bin("??", bin("&&", id("a"), id("b")), id("c")),
			want: "(a && b) ?? c",
		},
		{
			name: "typeof",
			in:   &ir.Node{Kind: ir.UnaryKind, Op: "typeof", Arg: id("x")},
			want: "typeof x",
		},
		{
			name: "string quote",
			in:   ir.NewString("it's\n"),
			want: `'it\'s\n'`,
		},
		{
			name: "string double quote",
			in:   ir.NewString("it's"),
			opts: []EncodeOption{Quote('"')},
			want: `"it's"`,
		},
		{
			name: "call and member",
			in: &ir.Node{Kind: ir.CallKind,
				Left:     &ir.Node{Kind: ir.MemberKind, Left: id("console"), Right: id("log")},
				Children: []*ir.Node{ir.NewInt(1), ir.NewString("x")}},
			want: "console.log(1, 'x')",
		},
		{
			name: "computed member",
			in:   &ir.Node{Kind: ir.MemberKind, Left: id("a"), Right: ir.NewString("b"), Flag: true},
			want: "a['b']",
		},
		{
			name: "conditional",
			in:   &ir.Node{Kind: ir.ConditionalKind, Test: id("ok"), Then: ir.NewInt(1), Else: ir.NewNull()},
			want: "ok ? 1 : null",
		},
		{
			name: "object",
			in:   ir.NewObject(ir.NewProperty("a", ir.NewInt(1)), ir.NewProperty("b", ir.NewBool(true))),
			want: "{ a: 1, b: true }",
		},
		{
			name: "empty object",
			in:   ir.NewObject(),
			want: "{}",
		},
		{
			name: "shorthand property",
			in:   ir.NewObject(&ir.Node{Kind: ir.PropertyKind, Key: id("a"), Val: id("a"), Flag: true}),
			want: "{ a }",
		},
		{
			name: "array",
			in:   ir.NewArray(ir.NewInt(1), ir.NewInt(2)),
			want: "[1, 2]",
		},
		{
			name: "multiline object",
			in: ir.NewObject(
				ir.NewProperty("alpha", ir.NewString("aaaa")),
				ir.NewProperty("beta", ir.NewArray(ir.NewInt(1))),
			),
			opts: []EncodeOption{Width(20)},
			want: "{\n  alpha: 'aaaa',\n  beta: [1],\n}",
		},
		{
			name: "multiline without trailing comma",
			in: ir.NewObject(
				ir.NewProperty("alpha", ir.NewString("aaaa")),
				ir.NewProperty("beta", ir.NewArray(ir.NewInt(1))),
			),
			opts: []EncodeOption{Width(20), TrailingComma(false), Indent(4)},
			want: "{\n    alpha: 'aaaa',\n    beta: [1]\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := String(tt.in, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeStatements(t *testing.T) {
	prog := &ir.Node{Kind: ir.ProgramKind, Children: []*ir.Node{
		{Kind: ir.ImportKind, Flag: true, Val: ir.NewString("vue"), Children: []*ir.Node{
			{Kind: ir.ImportSpecifierKind, Op: "default", Val: id("Vue")},
			{Kind: ir.ImportSpecifierKind, Op: "named", Key: id("ref"), Val: id("ref")},
			{Kind: ir.ImportSpecifierKind, Op: "named", Key: id("computed"), Val: id("c")},
		}},
		{Kind: ir.VarDeclKind, Op: "let", Key: id("x"), Val: ir.NewInt(1)},
		{Kind: ir.ExprStmtKind, Flag: true, Val: &ir.Node{Kind: ir.AssignKind, Op: "+=", Left: id("x"), Right: ir.NewInt(2)}},
		{Kind: ir.ExportDefaultKind, Val: ir.NewObject(ir.NewProperty("name", ir.NewString("App")))},
	}}
	want := "import Vue, { ref, computed as c } from 'vue';\n" +
		"let x = 1\n" +
		"x += 2;\n" +
		"export default { name: 'App' }"
	got, err := String(prog)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeIncomplete(t *testing.T) {
	for _, n := range []*ir.Node{
		{Kind: ir.BinaryKind, Op: "+", Left: id("a")},
		{Kind: ir.AttributeKind},
		{Kind: ir.VarDeclKind, Op: "const"},
	} {
		if _, err := String(n); !errors.Is(err, ErrIncomplete) {
			t.Errorf("%s: expected ErrIncomplete, got %v", n.Kind, err)
		}
	}
}

func TestIsVoid(t *testing.T) {
	for _, name := range []string{"br", "img", "input", "IMG"} {
		if !IsVoid(name) {
			t.Errorf("%s should be void", name)
		}
	}
	for _, name := range []string{"div", "script", "my-comp"} {
		if IsVoid(name) {
			t.Errorf("%s should not be void", name)
		}
	}
}

func TestNeedsParens(t *testing.T) {
	sum := bin("+", id("b"), id("c"))
	prod := bin("*", id("a"), sum)
	ir.SetParents(prod)
	if !NeedsParens(sum) {
		t.Errorf("sum under product should need parens")
	}
	if NeedsParens(prod.Left) {
		t.Errorf("identifier never needs parens")
	}
	call := &ir.Node{Kind: ir.CallKind, Left: id("f"), Children: []*ir.Node{bin("+", id("a"), id("b"))}}
	ir.SetParents(call)
	if NeedsParens(call.Children[0]) {
		t.Errorf("call argument should not need parens")
	}
	if NeedsParens(prod) {
		t.Errorf("root never needs parens")
	}

	neg := &ir.Node{Kind: ir.UnaryKind, Op: "-", Arg: id("y")}
	pow := bin("**", neg, id("n"))
	ir.SetParents(pow)
	if !NeedsParens(neg) {
		t.Errorf("unary base of ** should need parens")
	}

	or := bin("||", id("b"), id("c"))
	nullish := bin("??", id("a"), or)
	ir.SetParents(nullish)
	if !NeedsParens(or) {
		t.Errorf("|| under ?? should need parens")
	}

	obj := ir.NewObject(ir.NewProperty("a", ir.NewInt(1)))
	member := &ir.Node{Kind: ir.MemberKind, Left: obj, Right: id("a")}
	stmt := &ir.Node{Kind: ir.ExprStmtKind, Val: member}
	ir.SetParents(stmt)
	if !NeedsParens(obj) {
		t.Errorf("object starting a statement should need parens")
	}
	obj2 := ir.NewObject()
	assign := &ir.Node{Kind: ir.AssignKind, Op: "=", Left: id("x"), Right: obj2}
	ir.SetParents(&ir.Node{Kind: ir.ExprStmtKind, Val: assign})
	if NeedsParens(obj2) {
		t.Errorf("object on the right of an assignment should not need parens")
	}
}
