package plugin

import (
	"fmt"

	"github.com/signadot/splice/ir"
)

// Plugin mutates trees in place. Transform returns the number of
// mutations it made.
type Plugin interface {
	Name() string
	Transform(ctx *Context) (int, error)
}

type funcPlugin struct {
	name string
	fn   func(*Context) (int, error)
}

func (f *funcPlugin) Name() string                        { return f.name }
func (f *funcPlugin) Transform(ctx *Context) (int, error) { return f.fn(ctx) }

// Func adapts fn to a Plugin named name.
func Func(name string, fn func(*Context) (int, error)) Plugin {
	return &funcPlugin{name: name, fn: fn}
}

// Context is what a plugin sees of one document.
type Context struct {
	// Scripts holds the code trees: the whole document for flat code, one
	// tree per script element of a component.
	Scripts []*ir.Node
	// Document is the markup tree of a component, nil for flat code.
	Document *ir.Node
	Filename string
	Utils    Utils
	// Options is the plugin configuration mapping.
	Options map[string]any
}

// Trees returns the document, if any, followed by the scripts.
func (c *Context) Trees() []*ir.Node {
	res := make([]*ir.Node, 0, len(c.Scripts)+1)
	if c.Document != nil {
		res = append(res, c.Document)
	}
	return append(res, c.Scripts...)
}

// String returns the string option key, or def when unset.
func (c *Context) String(key, def string) (string, error) {
	v, ok := c.Options[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("option %q: expected a string, got %T", key, v)
	}
	return s, nil
}

// Bool returns the boolean option key, or def when unset.
func (c *Context) Bool(key string, def bool) (bool, error) {
	v, ok := c.Options[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("option %q: expected a bool, got %T", key, v)
	}
	return b, nil
}
