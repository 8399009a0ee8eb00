package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Options: map[string]any{}}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "p",
			Aliases:     []string{"plugin"},
			Description: "run a built-in plugin, after the configured ones",
			Type:        cli.NamedFuncOpt(cfg.pluginFunc(), "(name)"),
		},
		&cli.Opt{
			Name:        "o",
			Description: "set a plugin option",
			Type:        cli.NamedFuncOpt(cfg.optFunc(), "(key=val)"),
		},
		&cli.Opt{
			Name:        "f",
			Aliases:     []string{"format"},
			Description: "document format: code/js, component/vue (default by file suffix)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "splice").
		WithSynopsis("splice [opts] command [opts]").
		WithDescription("splice rewrites source files with plugins, changing only the text the plugins touched.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return spliceMain(cfg, cc, args)
		}).
		WithSubs(
			RunCommand(cfg),
			ChangesCommand(cfg),
			TreeCommand(cfg),
			PluginsCommand(cfg))
}

func RunCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RunConfig{MainConfig: mainCfg, Jobs: 4}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Run, "run").
		WithAliases("r").
		WithSynopsis("run [-w] [-d] [-l] [-j n] files").
		WithDescription("run the configured plugins over files, - for stdin").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

func ChangesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ChangesConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Changes, "changes").
		WithAliases("ch").
		WithSynopsis("changes [-json-patch] file").
		WithDescription("show the tree changes and repaint regions the plugins produce for a file").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return changes(cfg, cc, args)
		})
}

func TreeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TreeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Tree, "tree").
		WithAliases("t").
		WithSynopsis("tree [-r] [-at path] file").
		WithDescription("dump the syntax tree of a file with node paths").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tree(cfg, cc, args)
		})
}

func PluginsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PluginsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Plugins, "plugins").
		WithAliases("ls").
		WithSynopsis("plugins").
		WithDescription("list the built-in plugins").
		WithRun(func(cc *cli.Context, args []string) error {
			return listPlugins(cfg, cc, args)
		})
}
