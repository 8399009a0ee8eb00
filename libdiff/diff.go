package libdiff

import (
	"fmt"

	"github.com/signadot/splice/debug"
	"github.com/signadot/splice/encode"
	"github.com/signadot/splice/ir"
)

// Change is one difference between two trees.
//
// Path always ends with a property key. For scalar properties Old and New
// hold the values, a string or a bool. When the kinds of the nodes at some
// position differ, the change is an Edit at that position's "kind" key and
// Old and New hold the two nodes. New and Delete entries carry the added or
// removed node; on list properties Index is the element index, otherwise
// it is -1.
type Change struct {
	Path  ir.Path
	Kind  ChangeKind
	Index int
	Old   any
	New   any
}

func (c Change) String() string {
	switch c.Kind {
	case New:
		return fmt.Sprintf("%s %s%s: %s", c.Kind, c.Path, c.at(), show(c.New))
	case Delete:
		return fmt.Sprintf("%s %s%s: %s", c.Kind, c.Path, c.at(), show(c.Old))
	}
	return fmt.Sprintf("%s %s: %s -> %s", c.Kind, c.Path, show(c.Old), show(c.New))
}

func (c Change) at() string {
	if c.Index < 0 {
		return ""
	}
	return fmt.Sprintf("[%d]", c.Index)
}

func show(v any) string {
	switch x := v.(type) {
	case *ir.Node:
		if x == nil {
			return "<nil>"
		}
		s, err := encode.String(x, encode.Width(0))
		if err != nil {
			return "<" + x.Kind.String() + ">"
		}
		return s
	case string:
		return fmt.Sprintf("%q", x)
	}
	return fmt.Sprintf("%v", v)
}

type diffOpts struct {
	ignore map[string]bool
}

type DiffOption func(*diffOpts)

// Ignore excludes the properties named by keys from comparison, at every
// depth. The pseudo key "kind" disables kind comparison.
func Ignore(keys ...string) DiffOption {
	return func(o *diffOpts) {
		for _, k := range keys {
			o.ignore[k] = true
		}
	}
}

type differ struct {
	diffOpts
	changes []Change
}

// Diff compares from, typically a snapshot, with to and returns the
// changes in document order. Diff never fails: trees of unrelated shape
// simply produce more changes.
func Diff(from, to *ir.Node, opts ...DiffOption) []Change {
	d := &differ{diffOpts: diffOpts{ignore: map[string]bool{}}}
	for _, o := range opts {
		o(&d.diffOpts)
	}
	d.node(nil, from, to)
	if debug.Diff() {
		debug.Logf("diff: %d changes\n", len(d.changes))
		for _, c := range d.changes {
			debug.Logf("  %s\n", c)
		}
	}
	return d.changes
}

func (d *differ) add(c Change) {
	d.changes = append(d.changes, c)
}

func (d *differ) node(p ir.Path, from, to *ir.Node) {
	if from.Kind != to.Kind {
		if !d.ignore["kind"] {
			d.add(Change{Path: p.Key("kind"), Kind: Edit, Index: -1, Old: from, New: to})
		}
		return
	}
	for _, prop := range ir.Schema(from.Kind) {
		if d.ignore[prop.Key] {
			continue
		}
		pp := p.Key(prop.Key)
		switch prop.Type {
		case ir.ScalarProp:
			a, b := from.Scalar(prop), to.Scalar(prop)
			if a != b {
				d.add(Change{Path: pp, Kind: Edit, Index: -1, Old: a, New: b})
			}
		case ir.NodeProp:
			a, b := from.Child(prop), to.Child(prop)
			switch {
			case a == nil && b == nil:
			case a == nil:
				d.add(Change{Path: pp, Kind: New, Index: -1, New: b})
			case b == nil:
				d.add(Change{Path: pp, Kind: Delete, Index: -1, Old: a})
			default:
				d.node(pp, a, b)
			}
		case ir.ListProp:
			d.list(pp, from.List(prop), to.List(prop))
		}
	}
}

func (d *differ) list(p ir.Path, from, to []*ir.Node) {
	n := min(len(from), len(to))
	for i := 0; i < n; i++ {
		d.node(p.Idx(i), from[i], to[i])
	}
	for i := n; i < len(to); i++ {
		d.add(Change{Path: p, Kind: New, Index: i, New: to[i]})
	}
	for i := n; i < len(from); i++ {
		d.add(Change{Path: p, Kind: Delete, Index: i, Old: from[i]})
	}
}
