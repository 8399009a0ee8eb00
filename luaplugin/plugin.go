package luaplugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/signadot/splice/debug"
	"github.com/signadot/splice/plugin"

	lua "github.com/yuin/gopher-lua"
)

// ErrScript is wrapped by errors raised while loading or running a Lua
// plugin.
var ErrScript = errors.New("lua plugin")

// Plugin is a plugin backed by a Lua script.
type Plugin struct {
	name    string
	src     string
	opts    map[string]any
	timeout time.Duration
}

// Option configures a Plugin.
type Option func(*Plugin)

// Timeout bounds one transform call. The default is DefaultTimeout.
func Timeout(d time.Duration) Option {
	return func(p *Plugin) { p.timeout = d }
}

// Load reads a plugin from a file. Without a global name the plugin is
// named after the file.
func Load(path string, opts map[string]any, options ...Option) (*Plugin, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(name, string(d), opts, options...)
}

// New creates a plugin from source. The script is run once to check that
// it defines transform and to read its name.
func New(name, src string, opts map[string]any, options ...Option) (*Plugin, error) {
	p := &Plugin{name: name, src: src, opts: opts, timeout: DefaultTimeout}
	for _, o := range options {
		o(p)
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	L := newState(ctx)
	defer L.Close()
	newBridge(L, plugin.Utils{})
	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrScript, name, err)
	}
	if L.GetGlobal("transform").Type() != lua.LTFunction {
		return nil, fmt.Errorf("%w: %s: no global function transform", ErrScript, name)
	}
	if s, ok := L.GetGlobal("name").(lua.LString); ok && s != "" {
		p.name = string(s)
	}
	return p, nil
}

func (p *Plugin) Name() string { return p.name }

// Transform runs the script's transform function in a fresh state.
func (p *Plugin) Transform(pc *plugin.Context) (n int, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	L := newState(ctx)
	defer L.Close()
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: %s: panic: %v", ErrScript, p.name, r)
		}
	}()
	b := newBridge(L, pc.Utils)
	if err := L.DoString(p.src); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrScript, p.name, err)
	}
	fn := L.GetGlobal("transform")
	if fn.Type() != lua.LTFunction {
		return 0, fmt.Errorf("%w: %s: no global function transform", ErrScript, p.name)
	}
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, b.context(pc, p.opts)); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrScript, p.name, err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	switch x := ret.(type) {
	case lua.LNumber:
		n = int(x)
	case *lua.LNilType:
	default:
		return 0, fmt.Errorf("%w: %s: transform returned %s, not a number", ErrScript, p.name, ret.Type())
	}
	if debug.Plugins() {
		debug.Logf("lua plugin %s: %d mutations\n", p.name, n)
	}
	return n, nil
}
