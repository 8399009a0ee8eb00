package luaplugin

import (
	"fmt"

	"github.com/signadot/splice/encode"
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/plugin"

	lua "github.com/yuin/gopher-lua"
)

const nodeType = "splice.node"

// bridge exposes trees to one Lua state. Each node maps to a single
// userdata so that Lua equality works on nodes.
type bridge struct {
	L     *lua.LState
	utils plugin.Utils
	nodes map[*ir.Node]*lua.LUserData
}

func newBridge(L *lua.LState, utils plugin.Utils) *bridge {
	b := &bridge{L: L, utils: utils, nodes: map[*ir.Node]*lua.LUserData{}}
	mt := L.NewTypeMetatable(nodeType)
	L.SetField(mt, "__index", L.NewFunction(b.index))
	L.SetField(mt, "__newindex", L.NewFunction(b.newIndex))
	L.SetField(mt, "__tostring", L.NewFunction(b.render))
	L.RegisterModule("splice", map[string]lua.LGFunction{
		"find_all":         b.findAll,
		"traverse":         b.traverse,
		"parse_expression": b.parseExpression,
		"parse_statements": b.parseStatements,
		"remove":           b.remove,
		"replace":          b.replace,
		"insert_after":     b.insertAfter,
		"render":           b.render,
		"clone":            b.clone,
		"identifier":       func(L *lua.LState) int { return b.ret(b.utils.Identifier(L.CheckString(1))) },
		"string":           func(L *lua.LState) int { return b.ret(b.utils.String(L.CheckString(1))) },
		"number":           func(L *lua.LState) int { return b.ret(b.utils.Number(L.CheckString(1))) },
		"text":             func(L *lua.LState) int { return b.ret(b.utils.Text(L.CheckString(1))) },
		"attribute": func(L *lua.LState) int {
			return b.ret(b.utils.Attribute(L.CheckString(1), L.OptString(2, "")))
		},
		"element": func(L *lua.LState) int {
			return b.ret(b.utils.Element(L.CheckString(1), []*ir.Node{}))
		},
	})
	return b
}

func (b *bridge) value(n *ir.Node) lua.LValue {
	if n == nil {
		return lua.LNil
	}
	if ud, ok := b.nodes[n]; ok {
		return ud
	}
	ud := b.L.NewUserData()
	ud.Value = n
	b.L.SetMetatable(ud, b.L.GetTypeMetatable(nodeType))
	b.nodes[n] = ud
	return ud
}

func (b *bridge) ret(n *ir.Node) int {
	b.L.Push(b.value(n))
	return 1
}

func (b *bridge) list(ns []*ir.Node) *lua.LTable {
	t := b.L.NewTable()
	for i, n := range ns {
		t.RawSetInt(i+1, b.value(n))
	}
	return t
}

func (b *bridge) check(L *lua.LState, i int) *ir.Node {
	n, ok := L.CheckUserData(i).Value.(*ir.Node)
	if !ok {
		L.ArgError(i, "node expected")
	}
	return n
}

func (b *bridge) opt(L *lua.LState, v lua.LValue, i int) *ir.Node {
	switch x := v.(type) {
	case *lua.LNilType:
		return nil
	case *lua.LUserData:
		if n, ok := x.Value.(*ir.Node); ok {
			return n
		}
	}
	L.ArgError(i, "node or nil expected")
	return nil
}

func (b *bridge) context(ctx *plugin.Context, opts map[string]any) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("scripts", b.list(ctx.Scripts))
	t.RawSetString("document", b.value(ctx.Document))
	t.RawSetString("filename", lua.LString(ctx.Filename))
	merged := map[string]any{}
	for k, v := range ctx.Options {
		merged[k] = v
	}
	for k, v := range opts {
		merged[k] = v
	}
	t.RawSetString("options", toLua(b.L, merged))
	return t
}

func (b *bridge) index(L *lua.LState) int {
	n := b.check(L, 1)
	key := L.CheckString(2)
	switch key {
	case "kind":
		L.Push(lua.LString(n.Kind.String()))
		return 1
	case "parent":
		return b.ret(n.Parent)
	case "path":
		L.Push(lua.LString(n.PathOf().String()))
		return 1
	}
	prop, ok := ir.SchemaProp(n.Kind, key)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	switch prop.Type {
	case ir.ScalarProp:
		switch v := n.Scalar(prop).(type) {
		case bool:
			L.Push(lua.LBool(v))
		case string:
			L.Push(lua.LString(v))
		default:
			L.Push(lua.LNil)
		}
	case ir.NodeProp:
		return b.ret(n.Child(prop))
	default:
		L.Push(b.list(n.List(prop)))
	}
	return 1
}

func (b *bridge) newIndex(L *lua.LState) int {
	n := b.check(L, 1)
	key := L.CheckString(2)
	v := L.Get(3)
	prop, ok := ir.SchemaProp(n.Kind, key)
	if !ok {
		L.ArgError(2, fmt.Sprintf("%s has no property %q", n.Kind, key))
		return 0
	}
	switch prop.Type {
	case ir.ScalarProp:
		var gv any
		switch x := v.(type) {
		case lua.LBool:
			gv = bool(x)
		case lua.LString:
			gv = string(x)
		case lua.LNumber:
			gv = x.String()
		}
		if gv == nil || !n.SetScalar(prop, gv) {
			L.ArgError(3, fmt.Sprintf("bad value for %s.%s", n.Kind, key))
		}
	case ir.NodeProp:
		c := b.opt(L, v, 3)
		n.SetChild(prop, c)
		if c != nil {
			c.Parent = n
		}
	default:
		t, ok := v.(*lua.LTable)
		if !ok {
			L.ArgError(3, "table of nodes expected")
			return 0
		}
		cs := make([]*ir.Node, 0, t.Len())
		for i := 1; i <= t.Len(); i++ {
			c := b.opt(L, t.RawGetInt(i), 3)
			if c == nil {
				L.ArgError(3, "nil list element")
			}
			c.Parent = n
			cs = append(cs, c)
		}
		n.Children = cs
	}
	return 0
}

func (b *bridge) findAll(L *lua.LState) int {
	root := b.check(L, 1)
	kind := L.OptString(2, "")
	f := func(*ir.Node) bool { return true }
	if kind != "" {
		var k ir.Kind
		if err := k.UnmarshalText([]byte(kind)); err != nil {
			L.ArgError(2, err.Error())
		}
		f = ir.OfKind(k)
	}
	L.Push(b.list(b.utils.FindAll(root, f)))
	return 1
}

// traverse calls fn(node, parent) on every node below root in document
// order. fn returning false skips the node's children.
func (b *bridge) traverse(L *lua.LState) int {
	root := b.check(L, 1)
	fn := L.CheckFunction(2)
	b.utils.Traverse(root, ir.Visitor{
		Enter: func(n, parent *ir.Node) bool {
			if err := L.CallByParam(lua.P{Fn: fn, NRet: 1}, b.value(n), b.value(parent)); err != nil {
				L.RaiseError("%s", err.Error())
			}
			ret := L.Get(-1)
			L.Pop(1)
			return ret != lua.LFalse
		},
	})
	return 0
}

func (b *bridge) parseExpression(L *lua.LState) int {
	n, err := b.utils.ParseExpression(L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return b.ret(n)
}

func (b *bridge) parseStatements(L *lua.LState) int {
	ns, err := b.utils.ParseStatements(L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(b.list(ns))
	return 1
}

func (b *bridge) remove(L *lua.LState) int {
	L.Push(lua.LBool(b.utils.Remove(b.check(L, 1))))
	return 1
}

func (b *bridge) replace(L *lua.LState) int {
	L.Push(lua.LBool(b.utils.Replace(b.check(L, 1), b.check(L, 2))))
	return 1
}

func (b *bridge) insertAfter(L *lua.LState) int {
	L.Push(lua.LBool(b.utils.InsertAfter(b.check(L, 1), b.check(L, 2))))
	return 1
}

func (b *bridge) render(L *lua.LState) int {
	s, err := encode.String(b.check(L, 1), encode.Width(0))
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LString(s))
	return 1
}

func (b *bridge) clone(L *lua.LState) int {
	return b.ret(b.check(L, 1).Clone())
}
