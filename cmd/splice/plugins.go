package main

import (
	"fmt"

	"github.com/signadot/splice/plugins"

	"github.com/scott-cotton/cli"
)

func listPlugins(cfg *PluginsConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Plugins.Parse(cc, args); err != nil {
		cfg.Plugins.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, name := range plugins.Names() {
		if _, err := fmt.Fprintln(cc.Out, name); err != nil {
			return err
		}
	}
	return nil
}
