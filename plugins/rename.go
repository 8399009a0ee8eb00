package plugins

import (
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/plugin"
	"github.com/signadot/splice/token"
)

// RenameIdentifier renames references to a variable in code, including the
// code held by component directives and interpolations. Object keys,
// member property names and imported names are left alone.
//
// Options: from, to.
func RenameIdentifier(opts map[string]any) (plugin.Plugin, error) {
	from, err := optString(opts, "from", true)
	if err != nil {
		return nil, err
	}
	to, err := optString(opts, "to", true)
	if err != nil {
		return nil, err
	}
	if !token.IsIdent(to) {
		return nil, errOption("to", to, "not an identifier")
	}
	return plugin.Func("rename-identifier", func(ctx *plugin.Context) (int, error) {
		n := 0
		for _, t := range ctx.Trees() {
			ctx.Utils.Traverse(t, ir.Visitor{
				Enter: func(node, parent *ir.Node) bool {
					if node.Kind != ir.IdentifierKind || node.Name != from || !isReference(node, parent) {
						return true
					}
					node.Name = to
					n++
					return true
				},
			})
		}
		return n, nil
	}), nil
}

// isReference reports whether the identifier id names a variable.
func isReference(id, parent *ir.Node) bool {
	if parent == nil {
		return true
	}
	switch parent.Kind {
	case ir.AttributeKind, ir.DirectiveKeyKind:
		return false
	case ir.MemberKind:
		return id != parent.Right || parent.Flag
	case ir.PropertyKind:
		return id != parent.Key
	case ir.ImportSpecifierKind:
		return id == parent.Val
	}
	return true
}

// RenameTag renames markup elements.
//
// Options: from, to.
func RenameTag(opts map[string]any) (plugin.Plugin, error) {
	from, err := optString(opts, "from", true)
	if err != nil {
		return nil, err
	}
	to, err := optString(opts, "to", true)
	if err != nil {
		return nil, err
	}
	return plugin.Func("rename-tag", func(ctx *plugin.Context) (int, error) {
		if ctx.Document == nil {
			return 0, nil
		}
		n := 0
		for _, el := range ctx.Utils.FindAll(ctx.Document, ir.OfKind(ir.ElementKind)) {
			if el.Name == from {
				el.Name = to
				n++
			}
		}
		return n, nil
	}), nil
}
