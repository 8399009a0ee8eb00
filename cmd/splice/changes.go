package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/signadot/splice"
	"github.com/signadot/splice/encode"
	"github.com/signadot/splice/libdiff"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func changes(cfg *ChangesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Changes.Parse(cc, args)
	if err != nil {
		cfg.Changes.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: changes requires 1 file, got %v", cli.ErrUsage, args)
	}
	plugins, opts, err := cfg.load()
	if err != nil {
		return err
	}
	src, err := readArg(cc, args[0])
	if err != nil {
		return err
	}
	ins, err := splice.Changes(src, args[0], plugins, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	w := cc.Out
	colored := cfg.colors(w)
	kindColors := map[libdiff.ChangeKind]func(...any) string{
		libdiff.Edit:   fmt.Sprint,
		libdiff.New:    fmt.Sprint,
		libdiff.Delete: fmt.Sprint,
	}
	if colored {
		kindColors[libdiff.Edit] = paint(color.FgYellow)
		kindColors[libdiff.New] = paint(color.FgGreen)
		kindColors[libdiff.Delete] = paint(color.FgRed)
	}
	encOpts := append(append([]encode.EncodeOption{}, opts.Encode...), cfg.encOpts(w)...)
	for _, s := range ins.Stats {
		fmt.Fprintf(w, "# plugin %s: %d\n", s.Plugin, s.Count)
	}
	for _, layer := range ins.Layers {
		fmt.Fprintf(w, "# %s\n", layer.Name)
		if cfg.JSONPatch {
			p, err := libdiff.JSONPatch(layer.Changes)
			if err != nil {
				return fmt.Errorf("%s: %w", layer.Name, err)
			}
			d, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\n", d)
			continue
		}
		for _, c := range layer.Changes {
			fmt.Fprintln(w, kindColors[c.Kind](c.String()))
		}
		switch {
		case layer.Set == nil || layer.Set.Empty():
		case layer.Set.RootChanged:
			fmt.Fprintf(w, "repaint root [%d,%d)\n", layer.Set.Root.Start, layer.Set.Root.End)
		default:
			for _, r := range layer.Set.Records {
				text, err := encode.String(r.Node, encOpts...)
				if err != nil {
					return fmt.Errorf("%s: %w", r.Path, err)
				}
				fmt.Fprintf(w, "repaint %s\n%s\n", r, indent(text))
			}
		}
	}
	return nil
}

func indent(s string) string {
	return "    " + strings.ReplaceAll(s, "\n", "\n    ")
}
