package plugins

import (
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/plugin"
)

// attrName returns the name an attribute sets: the key of a plain
// attribute or the argument of a v-bind directive.
func attrName(attr *ir.Node) string {
	switch attr.Kind {
	case ir.AttributeKind:
		return attr.Key.Name
	case ir.DirectiveKind:
		if k := attr.Key; k.Key.Name == "bind" && k.Arg != nil {
			return k.Arg.Name
		}
	}
	return ""
}

// RemoveAttribute drops attributes, plain or bound, from elements.
//
// Options: name, and optionally tag to restrict to one element name.
func RemoveAttribute(opts map[string]any) (plugin.Plugin, error) {
	name, err := optString(opts, "name", true)
	if err != nil {
		return nil, err
	}
	tag, err := optString(opts, "tag", false)
	if err != nil {
		return nil, err
	}
	return plugin.Func("remove-attribute", func(ctx *plugin.Context) (int, error) {
		if ctx.Document == nil {
			return 0, nil
		}
		n := 0
		for _, el := range ctx.Utils.FindAll(ctx.Document, ir.OfKind(ir.ElementKind)) {
			if tag != "" && el.Name != tag {
				continue
			}
			kept := el.StartTag.Children[:0:0]
			for _, attr := range el.StartTag.Children {
				if attrName(attr) == name {
					n++
					continue
				}
				kept = append(kept, attr)
			}
			el.StartTag.Children = kept
		}
		return n, nil
	}), nil
}

// SetAttribute gives elements a plain attribute value, adding the
// attribute where it is missing.
//
// Options: tag, name, value.
func SetAttribute(opts map[string]any) (plugin.Plugin, error) {
	tag, err := optString(opts, "tag", true)
	if err != nil {
		return nil, err
	}
	name, err := optString(opts, "name", true)
	if err != nil {
		return nil, err
	}
	value, err := optString(opts, "value", false)
	if err != nil {
		return nil, err
	}
	return plugin.Func("set-attribute", func(ctx *plugin.Context) (int, error) {
		if ctx.Document == nil {
			return 0, nil
		}
		n := 0
		for _, el := range ctx.Utils.FindAll(ctx.Document, ir.OfKind(ir.ElementKind)) {
			if el.Name != tag {
				continue
			}
			if setAttribute(el, name, value) {
				n++
			}
		}
		return n, nil
	}), nil
}

func setAttribute(el *ir.Node, name, value string) bool {
	for _, attr := range el.StartTag.Children {
		if attr.Kind != ir.AttributeKind || attr.Key.Name != name {
			continue
		}
		switch {
		case value == "" && attr.Val == nil:
			return false
		case value == "":
			attr.Val = nil
		case attr.Val != nil && attr.Val.Value == value:
			return false
		default:
			attr.Val = &ir.Node{Kind: ir.LiteralKind, Value: value}
		}
		return true
	}
	el.StartTag.Children = append(el.StartTag.Children, ir.NewAttribute(name, value))
	return true
}
