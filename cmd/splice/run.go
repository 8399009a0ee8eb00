package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/signadot/splice"

	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"
)

type fileResult struct {
	name string
	src  []byte
	res  *splice.Result
}

func (f *fileResult) changed() bool {
	return f.res.Code != string(f.src)
}

func run(cfg *RunConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Run.Parse(cc, args)
	if err != nil {
		cfg.Run.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: run requires at least one file", cli.ErrUsage)
	}
	if count(cfg.Write, cfg.Diff, cfg.List) > 1 {
		return fmt.Errorf("%w: must specify at most one of -w -d -l", cli.ErrUsage)
	}
	plugins, opts, err := cfg.load()
	if err != nil {
		return err
	}
	log := cfg.logger(cc)
	results := make([]*fileResult, len(args))
	g := new(errgroup.Group)
	if cfg.Jobs > 0 {
		g.SetLimit(cfg.Jobs)
	}
	for i, arg := range args {
		g.Go(func() error {
			src, err := readArg(cc, arg)
			if err != nil {
				return err
			}
			res, err := splice.Transform(src, arg, plugins, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", arg, err)
			}
			results[i] = &fileResult{name: arg, src: src, res: res}
			log.Debug("spliced", "file", arg, "changed", results[i].changed())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, fr := range results {
		if err := report(cfg, log, cc.Out, fr, len(results) > 1); err != nil {
			return err
		}
	}
	return nil
}

func report(cfg *RunConfig, log *slog.Logger, w io.Writer, fr *fileResult, many bool) error {
	switch {
	case cfg.List:
		if fr.changed() {
			_, err := fmt.Fprintln(w, fr.name)
			return err
		}
		return nil
	case cfg.Diff:
		if !fr.changed() {
			return nil
		}
		return writeDiff(w, fr.name, string(fr.src), fr.res.Code, cfg.colors(w))
	case cfg.Write:
		if !fr.changed() || fr.name == "-" {
			return nil
		}
		st, err := os.Stat(fr.name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(fr.name, []byte(fr.res.Code), st.Mode().Perm()); err != nil {
			return err
		}
		for _, s := range fr.res.Stats {
			log.Info("wrote", "file", fr.name, "plugin", s.Plugin, "count", s.Count)
		}
		return nil
	}
	if many {
		if _, err := fmt.Fprintf(w, "==> %s <==\n", fr.name); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, fr.res.Code)
	return err
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}
