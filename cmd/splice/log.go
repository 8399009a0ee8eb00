package main

import (
	"io"
	"log/slog"

	"github.com/signadot/splice/debug"

	"github.com/scott-cotton/cli"
)

// newLog returns a logger writing to w without timestamps. Info records
// carry no level. Debug records are kept when verbose is set or plugin
// debugging is enabled in the environment.
func newLog(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose || debug.Plugins() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: trimAttr,
	}))
}

func trimAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) != 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.Attr{}
	case slog.LevelKey:
		if lv, ok := a.Value.Any().(slog.Level); ok && lv == slog.LevelInfo {
			return slog.Attr{}
		}
	}
	return a
}

func (cfg *MainConfig) logger(cc *cli.Context) *slog.Logger {
	return newLog(cc.Err, cfg.Verbose)
}
