package patch

import (
	"testing"

	"github.com/signadot/splice/changeset"
	"github.com/signadot/splice/encode"
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/libdiff"
	"github.com/signadot/splice/parse"
)

func TestBuffer(t *testing.T) {
	b := New([]byte("0123456789"))
	b.Overwrite(7, 9, "xyz")
	b.Overwrite(1, 3, "")
	b.Overwrite(5, 5, "++")
	if got, want := b.String(), "034++56xyz9"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if b.Len() != 3 {
		t.Errorf("len %d", b.Len())
	}
	if got := New([]byte("abc")).String(); got != "abc" {
		t.Errorf("untouched buffer %q", got)
	}
}

type applyTest struct {
	name   string
	src    string
	mutate func(prog *ir.Node)
	opts   []encode.EncodeOption
	want   string
}

var applyTests = []applyTest{
	{
		name:   "identity",
		src:    "// keep\nconst total = a  +  b*c // tail\n",
		mutate: func(*ir.Node) {},
		want:   "// keep\nconst total = a  +  b*c // tail\n",
	},
	{
		name: "leaf",
		src:  "// keep\nconst total = a  +  b*c // tail\n",
		mutate: func(prog *ir.Node) {
			prog.Children[0].Val.Right.Left.Name = "beta"
		},
		want: "// keep\nconst total = a  +  beta*c // tail\n",
	},
	{
		name: "two regions",
		src:  "f( a,b )\ng(  c  )\n",
		mutate: func(prog *ir.Node) {
			prog.Children[0].Val.Children[1] = ir.NewString("it's")
			prog.Children[1].Val.Children[0].Name = "d"
		},
		want: "f( a,'it\\'s' )\ng(  d  )\n",
	},
	{
		name: "parens",
		src:  "x = a * b",
		mutate: func(prog *ir.Node) {
			mul := prog.Children[0].Val.Right
			mul.Right = &ir.Node{Kind: ir.BinaryKind, Op: "+", Left: ir.NewIdentifier("c"), Right: ir.NewIdentifier("d")}
		},
		want: "x = a * (c + d)",
	},
	{
		name: "existing parens",
		src:  "x = a * ( b )",
		mutate: func(prog *ir.Node) {
			mul := prog.Children[0].Val.Right
			mul.Right = &ir.Node{Kind: ir.BinaryKind, Op: "+", Left: ir.NewIdentifier("c"), Right: ir.NewIdentifier("d")}
		},
		want: "x = a * ( c + d )",
	},
	{
		name: "exponent base",
		src:  "x = c ** 2\n",
		mutate: func(prog *ir.Node) {
			prog.Children[0].Val.Right.Left = &ir.Node{Kind: ir.UnaryKind, Op: "-", Arg: ir.NewIdentifier("y")}
		},
		want: "x = (-y) ** 2\n",
	},
	{
		name: "nullish mixed with or",
		src:  "x = a ?? c\n",
		mutate: func(prog *ir.Node) {
			prog.Children[0].Val.Right.Right = &ir.Node{Kind: ir.BinaryKind, Op: "||", Left: ir.NewIdentifier("y"), Right: ir.NewIdentifier("z")}
		},
		want: "x = a ?? (y || z)\n",
	},
	{
		name: "object starting a statement",
		src:  "c\nd.x\n",
		mutate: func(prog *ir.Node) {
			prog.Children[0].Val = ir.NewObject(ir.NewProperty("a", ir.NewInt(1)))
			prog.Children[1].Val.Left = ir.NewObject(ir.NewProperty("b", ir.NewInt(2)))
		},
		want: "({ a: 1 })\n({ b: 2 }).x\n",
	},
	{
		name: "object inside a statement",
		src:  "x = c\n",
		mutate: func(prog *ir.Node) {
			prog.Children[0].Val.Right = ir.NewObject(ir.NewProperty("a", ir.NewInt(1)))
		},
		want: "x = { a: 1 }\n",
	},
	{
		name: "reindent",
		src:  "x = {\n  a: 1,\n  list: [1]\n}\n",
		mutate: func(prog *ir.Node) {
			arr := prog.Children[0].Val.Right.Children[1].Val
			arr.Children = []*ir.Node{ir.NewString("aaaaaaaa"), ir.NewString("bbbbbbbb")}
		},
		opts: []encode.EncodeOption{encode.Width(20)},
		want: "x = {\n  a: 1,\n  list: [\n    'aaaaaaaa',\n    'bbbbbbbb',\n  ]\n}\n",
	},
	{
		name: "root",
		src:  "a( )\n\n\nb( )\n",
		mutate: func(prog *ir.Node) {
			prog.Children = prog.Children[:1]
		},
		want: "a()",
	},
}

func TestApply(t *testing.T) {
	for _, tt := range applyTests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parse.Parse([]byte(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			snap := prog.Clone()
			tt.mutate(prog)
			ir.SetParents(prog)
			set, err := changeset.Reduce(libdiff.Diff(snap, prog), snap, prog)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Apply([]byte(tt.src), set, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestLeadOf(t *testing.T) {
	src := []byte("a\n  \tb c\n")
	if got := leadOf(src, 6); got != "  \t" {
		t.Errorf("lead %q", got)
	}
	if got := leadOf(src, 0); got != "" {
		t.Errorf("lead %q", got)
	}
}
