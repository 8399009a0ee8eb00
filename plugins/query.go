package plugins

import (
	"fmt"
	"reflect"

	"github.com/signadot/splice/encode"
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/parse"
	"github.com/signadot/splice/plugin"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// queryEnv is what a query expression sees of a node.
type queryEnv struct {
	Kind   string `expr:"kind"`
	Name   string `expr:"name"`
	Value  string `expr:"value"`
	Op     string `expr:"op"`
	Flag   bool   `expr:"flag"`
	Path   string `expr:"path"`
	Parent string `expr:"parent"`
	Depth  int    `expr:"depth"`

	Text func() (string, error) `expr:"text"`
}

func envOf(n *ir.Node) queryEnv {
	p := n.PathOf()
	res := queryEnv{
		Kind:  n.Kind.String(),
		Name:  n.Name,
		Value: n.Value,
		Op:    n.Op,
		Flag:  n.Flag,
		Path:  p.String(),
		Depth: len(p),
		Text: func() (string, error) {
			return encode.String(n, encode.Width(0))
		},
	}
	if n.Parent != nil {
		res.Parent = n.Parent.Kind.String()
	}
	return res
}

type query struct {
	in      string
	where   *vm.Program
	name    *vm.Program
	value   *vm.Program
	replace *ir.Node
	remove  bool
}

// Query rewrites the nodes selected by an expr-lang expression.
//
// Options:
//   - where: boolean expression over kind, name, value, op, flag, path,
//     parent and depth; text() renders the node.
//   - in: "scripts", "document" or "all" (the default).
//   - name, value: string expressions computing a new name or value.
//   - replace: a code expression replacing each selected node.
//   - remove: remove each selected node.
func Query(opts map[string]any) (plugin.Plugin, error) {
	q := &query{}
	where, err := optString(opts, "where", true)
	if err != nil {
		return nil, err
	}
	if q.in, err = optString(opts, "in", false); err != nil {
		return nil, err
	}
	switch q.in {
	case "":
		q.in = "all"
	case "all", "scripts", "document":
	default:
		return nil, errOption("in", q.in, `expected "scripts", "document" or "all"`)
	}
	if q.where, err = q.compile(where, expr.AsBool()); err != nil {
		return nil, fmt.Errorf("%w: where: %w", ErrOption, err)
	}
	actions := 0
	for _, x := range []struct {
		key string
		dst **vm.Program
	}{{"name", &q.name}, {"value", &q.value}} {
		src, err := optString(opts, x.key, false)
		if err != nil {
			return nil, err
		}
		if src == "" {
			continue
		}
		if *x.dst, err = q.compile(src, expr.AsKind(reflect.String)); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrOption, x.key, err)
		}
		actions++
	}
	replace, err := optString(opts, "replace", false)
	if err != nil {
		return nil, err
	}
	if replace != "" {
		if q.replace, err = parse.ParseExpression([]byte(replace)); err != nil {
			return nil, fmt.Errorf("%w: replace: %w", ErrOption, err)
		}
		actions++
	}
	if q.remove, err = optBool(opts, "remove"); err != nil {
		return nil, err
	}
	if q.remove {
		actions++
	}
	if actions == 0 {
		return nil, fmt.Errorf("%w: query needs one of name, value, replace or remove", ErrOption)
	}
	return plugin.Func("query", q.transform), nil
}

func (q *query) compile(src string, as expr.Option) (*vm.Program, error) {
	return expr.Compile(src, expr.Env(queryEnv{}), as)
}

func (q *query) trees(ctx *plugin.Context) []*ir.Node {
	switch q.in {
	case "scripts":
		return ctx.Scripts
	case "document":
		if ctx.Document == nil {
			return nil
		}
		return []*ir.Node{ctx.Document}
	}
	return ctx.Trees()
}

func (q *query) transform(ctx *plugin.Context) (int, error) {
	var matches []*ir.Node
	for _, t := range q.trees(ctx) {
		var err error
		ctx.Utils.Traverse(t, ir.Visitor{
			Enter: func(n, _ *ir.Node) bool {
				if err != nil {
					return false
				}
				var v any
				v, err = expr.Run(q.where, envOf(n))
				if err == nil && v.(bool) {
					matches = append(matches, n)
				}
				return err == nil
			},
		})
		if err != nil {
			return 0, fmt.Errorf("where: %w", err)
		}
	}
	count := 0
	for _, n := range matches {
		if q.name != nil {
			v, err := expr.Run(q.name, envOf(n))
			if err != nil {
				return count, fmt.Errorf("name: %w", err)
			}
			if s := v.(string); s != n.Name {
				n.Name = s
				count++
			}
		}
		if q.value != nil {
			v, err := expr.Run(q.value, envOf(n))
			if err != nil {
				return count, fmt.Errorf("value: %w", err)
			}
			if s := v.(string); s != n.Value {
				n.Value = s
				count++
			}
		}
		if q.replace != nil && !ir.Equal(n, q.replace) && ctx.Utils.Replace(n, q.replace.Clone()) {
			count++
		}
		if q.remove && ctx.Utils.Remove(n) {
			count++
		}
	}
	return count, nil
}
