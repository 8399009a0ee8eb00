package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/splice"
	"github.com/signadot/splice/config"
	"github.com/signadot/splice/encode"
	"github.com/signadot/splice/format"
	"github.com/signadot/splice/plugin"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Config  string `cli:"name=c aliases=config desc='configuration file (default ./.splice.yaml if present)'"`
	Color   bool   `cli:"name=color desc='output with color'"`
	Gops    bool   `cli:"name=gops desc='start a gops agent'"`
	Verbose bool   `cli:"name=v desc='log each file processed'"`

	Format      *format.Format
	PluginNames []string
	Options     map[string]any

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Format = &f
		return f, nil
	})
}

func (cfg *MainConfig) pluginFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		cfg.PluginNames = append(cfg.PluginNames, v)
		return v, nil
	})
}

func (cfg *MainConfig) optFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
		if err := setOpt(cfg.Options, a); err != nil {
			return nil, err
		}
		return 0, nil
	})
}

// setOpt sets a dotted key in opts from a key=val argument, val being
// decoded as YAML.
func setOpt(opts map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok || key == "" {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return fmt.Errorf("%w: value of %s: %w", cli.ErrUsage, key, err)
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	cur := opts
	for i, part := range parts {
		if i == n-1 {
			cur[part] = v
			break
		}
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[part] = next
		}
		cur = next
	}
	return nil
}

// load resolves the plugins and options of a run from the configuration
// file and the command line. Plugins named with -p run after the
// configured ones.
func (cfg *MainConfig) load() ([]plugin.Plugin, *splice.Options, error) {
	path := cfg.Config
	if path == "" {
		if _, err := os.Stat(config.DefaultName); err == nil {
			path = config.DefaultName
		}
	}
	c := &config.Config{Root: "."}
	if path != "" {
		var err error
		c, err = config.Load(path)
		if err != nil {
			return nil, nil, err
		}
	}
	if err := c.Merge(cfg.Options); err != nil {
		return nil, nil, err
	}
	for _, name := range cfg.PluginNames {
		c.Plugins = append(c.Plugins, config.Plugin{Name: name, Options: c.Options})
	}
	if len(c.Plugins) == 0 {
		return nil, nil, fmt.Errorf("%w: no plugins configured, use -c or -p", cli.ErrUsage)
	}
	ps, err := c.Build()
	if err != nil {
		return nil, nil, err
	}
	opts := c.SpliceOptions()
	if cfg.Format != nil {
		opts.Format = cfg.Format
	}
	return ps, opts, nil
}

func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	if !cfg.colors(w) {
		return nil
	}
	return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
}

type RunConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write results back to the files'"`
	Diff  bool `cli:"name=d desc='show a line diff instead of the result'"`
	List  bool `cli:"name=l desc='list the files a plugin changed'"`
	Jobs  int  `cli:"name=j desc='number of files processed at once'"`

	Run *cli.Command
}

type ChangesConfig struct {
	*MainConfig
	JSONPatch bool `cli:"name=json-patch desc='print changes as RFC 6902 JSON patches'"`

	Changes *cli.Command
}

type TreeConfig struct {
	*MainConfig
	Ranges bool   `cli:"name=r desc='show byte ranges'"`
	At     string `cli:"name=at desc='show only the subtree at a path'"`

	Tree *cli.Command
}

type PluginsConfig struct {
	*MainConfig
	Plugins *cli.Command
}
