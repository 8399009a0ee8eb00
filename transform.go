package splice

import (
	"fmt"
	"strings"

	"github.com/signadot/splice/changeset"
	"github.com/signadot/splice/debug"
	"github.com/signadot/splice/format"
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/libdiff"
	"github.com/signadot/splice/parse"
	"github.com/signadot/splice/patch"
	"github.com/signadot/splice/plugin"
)

// Transform runs plugins over the document code read from filename and
// returns the rewritten text. Either the whole pass succeeds or no text is
// returned.
func Transform(code []byte, filename string, plugins []plugin.Plugin, opts *Options) (*Result, error) {
	ins, err := Changes(code, filename, plugins, opts)
	if err != nil {
		return nil, err
	}
	return &ins.Result, nil
}

// Changes is Transform, also returning the changes found in every tree.
func Changes(code []byte, filename string, plugins []plugin.Plugin, opts *Options) (*Inspection, error) {
	if opts == nil {
		opts = &Options{}
	}
	f, err := formatOf(filename, opts)
	if err != nil {
		return nil, err
	}
	p := &pass{src: code, filename: filename, opts: opts}
	switch f {
	case format.ComponentFormat:
		err = p.parseComponent()
	default:
		err = p.parseCode()
	}
	if err != nil {
		return nil, err
	}
	stats, err := p.runPlugins(plugins)
	if err != nil {
		return nil, err
	}
	ins := &Inspection{Result: Result{Stats: stats}}
	if p.doc == nil {
		out, layer, err := p.patchTree("code", p.src, p.scripts[0].tree)
		if err != nil {
			return nil, err
		}
		ins.Code = out
		ins.Layers = append(ins.Layers, layer)
		return ins, nil
	}
	for i, s := range p.scripts {
		layer, err := p.writeBack(i, s)
		if err != nil {
			return nil, err
		}
		ins.Layers = append(ins.Layers, layer)
	}
	out, layer, err := p.patchTree("document", p.src, p.doc)
	if err != nil {
		return nil, err
	}
	ins.Code = out
	ins.Layers = append([]Layer{layer}, ins.Layers...)
	return ins, nil
}

func formatOf(filename string, opts *Options) (format.Format, error) {
	if opts.Format != nil {
		return *opts.Format, nil
	}
	return format.FromFilename(filename)
}

// tree is a parsed tree along with its snapshot.
type tree struct {
	root *ir.Node
	snap *ir.Node
}

func newTree(root *ir.Node) *tree {
	return &tree{root: root, snap: root.Clone()}
}

// script is the code layer of one script element.
type script struct {
	*tree
	host *ir.Node
	// text is the element's text padded with line feeds; pad is the
	// length of the padding.
	text string
	pad  int
}

type pass struct {
	src      []byte
	filename string
	opts     *Options

	doc     *tree
	scripts []*script
}

func (p *pass) parseCode() error {
	prog, err := parse.Parse(p.src)
	if err != nil {
		return err
	}
	p.scripts = []*script{{tree: newTree(prog)}}
	return nil
}

func (p *pass) parseComponent() error {
	doc, texts, err := parse.ParseComponent(p.src)
	if err != nil {
		return err
	}
	p.doc = newTree(doc)
	for i, host := range parse.Hosts(doc) {
		text := texts[i]
		pad := len(text)
		if t := hostText(host); t != nil {
			pad -= len(t.Value)
		}
		prog, err := parse.Parse([]byte(text))
		if err != nil {
			return err
		}
		// the padding is not part of the program.
		prog.Range.Start = pad
		p.scripts = append(p.scripts, &script{tree: newTree(prog), host: host, text: text, pad: pad})
	}
	return nil
}

func (p *pass) context() *plugin.Context {
	ctx := &plugin.Context{
		Filename: p.filename,
		Options:  p.opts.Config,
	}
	if p.doc != nil {
		ctx.Document = p.doc.root
	}
	for _, s := range p.scripts {
		ctx.Scripts = append(ctx.Scripts, s.root)
	}
	return ctx
}

func (p *pass) setParents() {
	if p.doc != nil {
		ir.SetParents(p.doc.root)
	}
	for _, s := range p.scripts {
		ir.SetParents(s.root)
	}
}

func (p *pass) runPlugins(plugins []plugin.Plugin) ([]Stat, error) {
	ctx := p.context()
	stats := make([]Stat, 0, len(plugins))
	for _, pl := range plugins {
		p.setParents()
		n, err := pl.Transform(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPlugin, pl.Name(), err)
		}
		if debug.Plugins() {
			debug.Logf("plugin %s: %d mutations in %s\n", pl.Name(), n, p.filename)
		}
		stats = append(stats, Stat{Plugin: pl.Name(), Count: n})
	}
	p.setParents()
	return stats, nil
}

// patchTree diffs t against its snapshot and patches src accordingly.
func (p *pass) patchTree(name string, src []byte, t *tree) (string, Layer, error) {
	changes := libdiff.Diff(t.snap, t.root)
	layer := Layer{Name: name, Changes: changes}
	set, err := changeset.Reduce(changes, t.snap, t.root)
	if err != nil {
		return "", layer, err
	}
	layer.Set = set
	out, err := patch.Apply(src, set, p.opts.Encode...)
	if err != nil {
		return "", layer, err
	}
	return out, layer, nil
}

// writeBack patches the i'th script against its own text and stores the
// result in its host element.
func (p *pass) writeBack(i int, s *script) (Layer, error) {
	name := fmt.Sprintf("script[%d]", i)
	out, layer, err := p.patchTree(name, []byte(s.text), s.tree)
	if err != nil {
		return layer, err
	}
	if layer.Set.Empty() {
		return layer, nil
	}
	body := normalize(out[s.pad:])
	t := hostText(s.host)
	if t == nil {
		t = ir.NewText("")
		s.host.Children = append(s.host.Children, t)
		t.Parent = s.host
	}
	t.Value = body
	if debug.Patch() {
		debug.Logf("script %d of %s rewritten\n", i, p.filename)
	}
	return layer, nil
}

// hostText returns the text child of a script element.
func hostText(host *ir.Node) *ir.Node {
	for _, c := range host.Children {
		if c.Kind == ir.TextKind {
			return c
		}
	}
	return nil
}

// normalize gives code a leading and a single trailing line feed.
func normalize(code string) string {
	code = strings.TrimRight(code, " \t\r\n")
	if !strings.HasPrefix(code, "\n") {
		code = "\n" + code
	}
	return code + "\n"
}
