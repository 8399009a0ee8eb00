package changeset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/libdiff"
	"github.com/signadot/splice/parse"
)

type reduceTest struct {
	name      string
	src       string
	component bool
	mutate    func(root *ir.Node)
	root      bool
	// want lists the expected records as path and original text.
	want [][2]string
}

var reduceTests = []reduceTest{
	{
		name:   "identity",
		src:    "const total = a + b * c",
		mutate: func(*ir.Node) {},
	},
	{
		name: "leaf",
		src:  "const total = a + b * c",
		mutate: func(root *ir.Node) {
			root.Children[0].Val.Right.Left.Name = "beta"
		},
		want: [][2]string{{"body[0].init.right.left", "b"}},
	},
	{
		name: "siblings",
		src:  "const total = a + b * c",
		mutate: func(root *ir.Node) {
			bin := root.Children[0].Val
			bin.Left.Name = "x"
			bin.Right.Right.Name = "y"
		},
		want: [][2]string{
			{"body[0].init.left", "a"},
			{"body[0].init.right.right", "c"},
		},
	},
	{
		name: "ancestor",
		src:  "const total = a + b * c",
		mutate: func(root *ir.Node) {
			mul := root.Children[0].Val.Right
			mul.Left.Name = "beta"
			mul.Op = "/"
		},
		want: [][2]string{{"body[0].init.right", "b * c"}},
	},
	{
		name: "shallow insert",
		src:  "a()\nb()",
		mutate: func(root *ir.Node) {
			root.Children = append(root.Children, root.Children[0].Clone())
		},
		root: true,
	},
	{
		name: "three records",
		src:  "export default [{ id: 1 }, { id: 2 }, { id: 3 }]",
		mutate: func(root *ir.Node) {
			arr := root.Children[0].Val
			arr.Children = append(arr.Children[:1], arr.Children[2:]...)
		},
		root: true,
	},
	{
		name: "deep insert",
		src:  "x = f(a, { k: [1] })",
		mutate: func(root *ir.Node) {
			arr := root.Children[0].Val.Right.Children[1].Children[0].Val
			arr.Children = append(arr.Children, ir.NewInt(2))
		},
		want: [][2]string{{"body[0].expression.right.arguments[1].properties[0].value", "[1]"}},
	},
	{
		name: "import specifier",
		src:  "import { ref } from 'vue'",
		mutate: func(root *ir.Node) {
			root.Children[0].Children[0].Val.Name = "r"
		},
		want: [][2]string{{"body[0].specifiers[0]", "ref"}},
	},
	{
		name: "shorthand",
		src:  "x = { ok, n: 1 }",
		mutate: func(root *ir.Node) {
			root.Children[0].Val.Right.Children[0].Val.Name = "done"
		},
		want: [][2]string{{"body[0].expression.right.properties[0]", "ok"}},
	},
	{
		name:      "start tag",
		src:       `<div><p class="a">x</p></div>`,
		component: true,
		mutate: func(root *ir.Node) {
			p := root.Children[0].Children[0]
			p.StartTag.Children = append(p.StartTag.Children, ir.NewAttribute("id", "b"))
		},
		want: [][2]string{{"children[0].children[0]", `<p class="a">x</p>`}},
	},
	{
		name:      "directive name",
		src:       `<div><p :class="c">x</p></div>`,
		component: true,
		mutate: func(root *ir.Node) {
			root.Children[0].Children[0].StartTag.Children[0].Key.Key.Name = "show"
		},
		want: [][2]string{{"children[0].children[0].startTag.attributes[0].key", ":class"}},
	},
	{
		name:      "directive argument",
		src:       `<div><p :class="c">x</p></div>`,
		component: true,
		mutate: func(root *ir.Node) {
			root.Children[0].Children[0].StartTag.Children[0].Key.Arg.Name = "style"
		},
		want: [][2]string{{"children[0].children[0].startTag.attributes[0].key.argument", "class"}},
	},
	{
		name:      "mustache",
		src:       "<div>\n  <p>{{ msg }}</p>\n</div>",
		component: true,
		mutate: func(root *ir.Node) {
			root.Children[0].Children[1].Children[0].Val.Name = "text"
		},
		want: [][2]string{{"children[0].children[1].children[0].expression", "msg"}},
	},
}

func TestReduce(t *testing.T) {
	for _, tt := range reduceTests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				root *ir.Node
				err  error
			)
			if tt.component {
				root, _, err = parse.ParseComponent([]byte(tt.src))
			} else {
				root, err = parse.Parse([]byte(tt.src))
			}
			if err != nil {
				t.Fatal(err)
			}
			snap := root.Clone()
			tt.mutate(root)
			ir.SetParents(root)
			set, err := Reduce(libdiff.Diff(snap, root), snap, root)
			if err != nil {
				t.Fatal(err)
			}
			if set.RootChanged != tt.root {
				t.Fatalf("root changed %v", set.RootChanged)
			}
			if tt.root {
				if set.Root.Start != 0 || set.Root.End != len(tt.src) || set.Root.Node != root || len(set.Records) != 0 {
					t.Errorf("root record %s", set.Root)
				}
				return
			}
			var got [][2]string
			for _, r := range set.Records {
				got = append(got, [2]string{r.Path.String(), tt.src[r.Start:r.End]})
				n, err := root.At(r.Path)
				if err != nil || n != r.Node {
					t.Errorf("record %s does not hold the mutated node", r)
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("records (-want +got):\n%s", diff)
			}
			if set.Empty() != (len(tt.want) == 0) {
				t.Errorf("empty %v", set.Empty())
			}
		})
	}
}

func TestReduceInconsistent(t *testing.T) {
	root, err := parse.Parse([]byte("a + b"))
	if err != nil {
		t.Fatal(err)
	}
	p, err := ir.ParsePath("body[3].expression.name")
	if err != nil {
		t.Fatal(err)
	}
	changes := []libdiff.Change{{Path: p, Kind: libdiff.Edit, Index: -1}}
	if _, err := Reduce(changes, root, root.Clone()); !errors.Is(err, ErrDiffInconsistency) {
		t.Errorf("expected ErrDiffInconsistency, got %v", err)
	}
	changes[0].Path = ir.Path{ir.KeyStep("body"), ir.IndexStep(0)}
	if _, err := Reduce(changes, root, root.Clone()); !errors.Is(err, ErrDiffInconsistency) {
		t.Errorf("expected ErrDiffInconsistency for index path, got %v", err)
	}
}

func TestCollapse(t *testing.T) {
	var paths []ir.Path
	for _, s := range []string{"children[1]", "children[1].children[0]", "children[10]", "children[0].startTag"} {
		p, err := ir.ParsePath(s)
		if err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	var got []string
	for _, p := range collapse(paths) {
		got = append(got, p.String())
	}
	if diff := cmp.Diff([]string{"children[1]", "children[10]", "children[0].startTag"}, got); diff != "" {
		t.Errorf("collapse (-want +got):\n%s", diff)
	}
}
