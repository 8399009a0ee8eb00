package plugin

import (
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/parse"
)

// Utils gathers the helpers offered to plugins.
type Utils struct{}

func (Utils) Traverse(root *ir.Node, v ir.Visitor) { ir.Traverse(root, v) }

func (Utils) Find(root *ir.Node, f func(*ir.Node) bool) *ir.Node {
	return ir.Find(root, f)
}

func (Utils) FindAll(root *ir.Node, f func(*ir.Node) bool) []*ir.Node {
	return ir.FindAll(root, f)
}

// ParseExpression parses a code expression into fresh nodes.
func (Utils) ParseExpression(src string) (*ir.Node, error) {
	return parse.ParseExpression([]byte(src))
}

// ParseStatements parses code statements into fresh nodes.
func (Utils) ParseStatements(src string) ([]*ir.Node, error) {
	return parse.ParseStatements([]byte(src))
}

func (Utils) Identifier(name string) *ir.Node { return ir.NewIdentifier(name) }
func (Utils) String(v string) *ir.Node        { return ir.NewString(v) }
func (Utils) Number(raw string) *ir.Node      { return ir.NewNumber(raw) }
func (Utils) Bool(v bool) *ir.Node            { return ir.NewBool(v) }
func (Utils) Null() *ir.Node                  { return ir.NewNull() }
func (Utils) Text(v string) *ir.Node          { return ir.NewText(v) }

func (Utils) Attribute(name, value string) *ir.Node {
	return ir.NewAttribute(name, value)
}

func (Utils) Element(name string, attrs []*ir.Node, children ...*ir.Node) *ir.Node {
	return ir.NewElement(name, attrs, children...)
}

// Remove detaches n from its parent. It reports false if n has no parent
// or its parent no longer holds it.
func (Utils) Remove(n *ir.Node) bool {
	p := n.Parent
	if p == nil {
		return false
	}
	found := false
	p.Each(func(key string, index int, c *ir.Node) bool {
		if c != n {
			return true
		}
		found = true
		if index >= 0 {
			p.Children = append(p.Children[:index:index], p.Children[index+1:]...)
			return false
		}
		prop, _ := ir.SchemaProp(p.Kind, key)
		p.SetChild(prop, nil)
		return false
	})
	if found {
		n.Parent = nil
	}
	return found
}

// Replace puts repl where old is. It reports false if old has no parent
// or its parent no longer holds it.
func (Utils) Replace(old, repl *ir.Node) bool {
	p := old.Parent
	if p == nil {
		return false
	}
	found := false
	p.Each(func(key string, index int, c *ir.Node) bool {
		if c != old {
			return true
		}
		found = true
		if index >= 0 {
			p.Children[index] = repl
			return false
		}
		prop, _ := ir.SchemaProp(p.Kind, key)
		p.SetChild(prop, repl)
		return false
	})
	if found {
		repl.Parent = p
		old.Parent = nil
	}
	return found
}

// InsertAfter inserts n into the list holding ref, right after it.
func (Utils) InsertAfter(ref, n *ir.Node) bool {
	p := ref.Parent
	if p == nil {
		return false
	}
	i := ref.Index()
	if i < 0 {
		return false
	}
	p.Children = append(p.Children[:i+1:i+1], append([]*ir.Node{n}, p.Children[i+1:]...)...)
	n.Parent = p
	return true
}
