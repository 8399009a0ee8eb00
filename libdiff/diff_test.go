package libdiff

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

type diffTest struct {
	name   string
	src    string
	mutate func(prog *ir.Node)
	opts   []DiffOption
	want   []string
}

var diffTests = []diffTest{
	{
		name:   "identity",
		src:    "const a = b + c",
		mutate: func(*ir.Node) {},
	},
	{
		name: "rename",
		src:  "const a = b + c",
		mutate: func(prog *ir.Node) {
			prog.Children[0].Val.Left.Name = "x"
		},
		want: []string{`edit body[0].init.left.name: "b" -> "x"`},
	},
	{
		name: "kind",
		src:  "const a = b + c",
		mutate: func(prog *ir.Node) {
			prog.Children[0].Val.Right = ir.NewInt(1)
		},
		want: []string{`edit body[0].init.right.kind: c -> 1`},
	},
	{
		name: "append",
		src:  "f(a)",
		mutate: func(prog *ir.Node) {
			call := prog.Children[0].Val
			call.Children = append(call.Children, ir.NewIdentifier("b"))
		},
		want: []string{`new body[0].expression.arguments[1]: b`},
	},
	{
		name: "delete middle",
		src:  "x = [1, 2, 3]",
		mutate: func(prog *ir.Node) {
			arr := prog.Children[0].Val.Right
			arr.Children = append(arr.Children[:1], arr.Children[2:]...)
		},
		want: []string{
			`edit body[0].expression.right.elements[1].value: "2" -> "3"`,
			`delete body[0].expression.right.elements[2]: 3`,
		},
	},
	{
		name: "truncate",
		src:  "x = [1, 2, 3]",
		mutate: func(prog *ir.Node) {
			arr := prog.Children[0].Val.Right
			arr.Children = arr.Children[:1]
		},
		want: []string{
			`delete body[0].expression.right.elements[1]: 2`,
			`delete body[0].expression.right.elements[2]: 3`,
		},
	},
	{
		name: "slot",
		src:  "let a = 1\nlet b",
		mutate: func(prog *ir.Node) {
			prog.Children[1].Val = prog.Children[0].Val
			prog.Children[0].Val = nil
		},
		want: []string{
			`delete body[0].init: 1`,
			`new body[1].init: 1`,
		},
	},
	{
		name: "flag",
		src:  "a;",
		mutate: func(prog *ir.Node) {
			prog.Children[0].Flag = false
		},
		want: []string{`edit body[0].semicolon: true -> false`},
	},
	{
		name: "ignore",
		src:  "a;",
		mutate: func(prog *ir.Node) {
			prog.Children[0].Flag = false
		},
		opts: []DiffOption{Ignore("semicolon")},
	},
	{
		name: "ranges",
		src:  "a + b",
		mutate: func(prog *ir.Node) {
			prog.Children[0].Val.Range = ir.Range{}
			prog.Children[0].Val.Parent = nil
		},
	},
}

func TestDiff(t *testing.T) {
	for _, tt := range diffTests {
		t.Run(tt.name, func(t *testing.T) {
			from, err := parse.Parse([]byte(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			to := from.Clone()
			tt.mutate(to)
			var got []string
			for _, c := range Diff(from, to, tt.opts...) {
				got = append(got, c.String())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("changes (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffPathsEndWithKeys(t *testing.T) {
	for _, tt := range diffTests {
		from, err := parse.Parse([]byte(tt.src))
		if err != nil {
			t.Fatal(err)
		}
		to := from.Clone()
		tt.mutate(to)
		for _, c := range Diff(from, to) {
			if len(c.Path) == 0 || c.Path[len(c.Path)-1].IsIndex() {
				t.Errorf("%s: change path %s", tt.name, c.Path)
			}
		}
	}
}

func TestJSONPatch(t *testing.T) {
	for _, tt := range diffTests {
		if tt.opts != nil {
			continue
		}
		t.Run(tt.name, func(t *testing.T) {
			from, err := parse.Parse([]byte(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			to := from.Clone()
			tt.mutate(to)
			patch, err := JSONPatch(Diff(from, to))
			if err != nil {
				t.Fatal(err)
			}
			fromJSON, err := json.Marshal(from)
			if err != nil {
				t.Fatal(err)
			}
			toJSON, err := json.Marshal(to)
			if err != nil {
				t.Fatal(err)
			}
			got, err := patch.Apply(fromJSON)
			if err != nil {
				t.Fatal(err)
			}
			if !jsonpatch.Equal(got, toJSON) {
				t.Errorf("patched\n%s\nwant\n%s", got, toJSON)
			}
		})
	}
}

func TestJSONPatchRoot(t *testing.T) {
	changes := Diff(ir.NewIdentifier("a"), ir.NewInt(1))
	if _, err := JSONPatch(changes); err != ErrRootReplace {
		t.Errorf("expected ErrRootReplace, got %v", err)
	}
}
