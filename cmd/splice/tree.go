package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/splice/format"
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/parse"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func tree(cfg *TreeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tree.Parse(cc, args)
	if err != nil {
		cfg.Tree.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: tree requires 1 file, got %v", cli.ErrUsage, args)
	}
	var at ir.Path
	if cfg.At != "" {
		at, err = ir.ParsePath(cfg.At)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	f := format.CodeFormat
	if cfg.Format != nil {
		f = *cfg.Format
	} else if f, err = format.FromFilename(args[0]); err != nil {
		return err
	}
	src, err := readArg(cc, args[0])
	if err != nil {
		return err
	}
	dump := &treeDumper{w: cc.Out, ranges: cfg.Ranges, kind: fmt.Sprint}
	if cfg.colors(cc.Out) {
		dump.kind = paint(color.FgCyan)
	}
	if f.IsCode() {
		prog, err := parse.Parse(src)
		if err != nil {
			return err
		}
		if len(at) != 0 {
			if prog, err = prog.At(at); err != nil {
				return fmt.Errorf("code: %w", err)
			}
		}
		dump.dump("code", prog)
		return nil
	}
	doc, texts, err := parse.ParseComponent(src)
	if err != nil {
		return err
	}
	layers := []treeLayer{{name: "document", root: doc}}
	for i, text := range texts {
		prog, err := parse.Parse([]byte(text))
		if err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
		layers = append(layers, treeLayer{name: fmt.Sprintf("script[%d]", i), root: prog})
	}
	return dump.layers(layers, at)
}

type treeLayer struct {
	name string
	root *ir.Node
}

type treeDumper struct {
	w      io.Writer
	ranges bool
	kind   func(...any) string
}

// layers dumps each layer of a component. With a path, only the layers in
// which it resolves are dumped.
func (d *treeDumper) layers(ls []treeLayer, at ir.Path) error {
	found := 0
	for _, l := range ls {
		root := l.root
		if len(at) != 0 {
			n, err := root.At(at)
			if errors.Is(err, ir.ErrPath) {
				continue
			}
			if err != nil {
				return fmt.Errorf("%s: %w", l.name, err)
			}
			root = n
		}
		d.dump(l.name, root)
		found++
	}
	if found == 0 {
		return fmt.Errorf("%w: %s resolves in no layer", ir.ErrPath, at)
	}
	return nil
}

func (d *treeDumper) dump(name string, root *ir.Node) {
	fmt.Fprintf(d.w, "# %s\n", name)
	d.node(root, "", 0)
}

func (d *treeDumper) node(n *ir.Node, label string, depth int) {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		b.WriteString(label + ": ")
	}
	b.WriteString(d.kind(n.Kind.String()))
	for _, p := range ir.Schema(n.Kind) {
		if p.Type != ir.ScalarProp {
			continue
		}
		switch v := n.Scalar(p).(type) {
		case string:
			if v != "" {
				fmt.Fprintf(&b, " %s=%q", p.Key, v)
			}
		case bool:
			if v {
				fmt.Fprintf(&b, " %s", p.Key)
			}
		}
	}
	if d.ranges {
		b.WriteString(" " + n.Range.String())
	}
	fmt.Fprintln(d.w, b.String())
	n.Each(func(key string, index int, c *ir.Node) bool {
		l := key
		if index >= 0 {
			l = fmt.Sprintf("%s[%d]", key, index)
		}
		d.node(c, l, depth+1)
		return true
	})
}
