// Package config reads splice configuration files.
//
// A configuration names the plugins to run, in order, together with the
// plugin configuration mapping handed to every plugin and the style of
// generated text:
//
//	format: component
//	options:
//	  quote: '"'
//	encode:
//	  quote: '"'
//	  indent: 4
//	plugins:
//	- name: rename-identifier
//	  options: {from: busy, to: loading}
//	- lua: plugins/strip.lua
//
// Lua plugin paths are relative to the directory holding the file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/splice"
	"github.com/signadot/splice/debug"
	"github.com/signadot/splice/encode"
	"github.com/signadot/splice/format"
	"github.com/signadot/splice/luaplugin"
	"github.com/signadot/splice/plugin"
	"github.com/signadot/splice/plugins"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

var ErrConfig = errors.New("bad config")

// DefaultName is the file looked up when no configuration is given.
const DefaultName = ".splice.yaml"

type Config struct {
	Root    string         `yaml:"-"`
	Format  string         `yaml:"format,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`
	Encode  encode.Options `yaml:"encode,omitempty"`
	Plugins []Plugin       `yaml:"plugins"`
}

// Plugin selects a built-in plugin by Name or a Lua script by path.
type Plugin struct {
	Name    string         `yaml:"name,omitempty"`
	Lua     string         `yaml:"lua,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`
}

func (p *Plugin) String() string {
	if p.Lua != "" {
		return "lua:" + p.Lua
	}
	return p.Name
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	c, err := Parse(d, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a configuration. root is the directory Lua paths are
// relative to.
func Parse(d []byte, root string) (*Config, error) {
	c := &Config{Root: root}
	if err := yaml.UnmarshalWithOptions(d, c, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfig, yaml.FormatError(err, false, true))
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if debug.Plugins() {
		debug.Logf("loaded config with %d plugins\n", len(c.Plugins))
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Format != "" {
		if _, err := format.ParseFormat(c.Format); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}
	if err := validateEncode(&c.Encode); err != nil {
		return err
	}
	for i := range c.Plugins {
		p := &c.Plugins[i]
		switch {
		case p.Name == "" && p.Lua == "":
			return fmt.Errorf("%w: plugin %d: one of name or lua is required", ErrConfig, i)
		case p.Name != "" && p.Lua != "":
			return fmt.Errorf("%w: plugin %d: name and lua are exclusive", ErrConfig, i)
		}
	}
	return nil
}

// Merge merges overrides into the plugin configuration mapping, as a JSON
// merge patch: nested mappings merge and null removes a key.
func (c *Config) Merge(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	doc, err := json.Marshal(c.Options)
	if err != nil {
		return err
	}
	if c.Options == nil {
		doc = []byte("{}")
	}
	p, err := json.Marshal(overrides)
	if err != nil {
		return err
	}
	merged, err := jsonpatch.MergePatch(doc, p)
	if err != nil {
		return fmt.Errorf("%w: merging options: %w", ErrConfig, err)
	}
	opts := map[string]any{}
	if err := json.Unmarshal(merged, &opts); err != nil {
		return err
	}
	c.Options = opts
	return nil
}

// Build instantiates the configured plugins in order.
func (c *Config) Build() ([]plugin.Plugin, error) {
	res := make([]plugin.Plugin, 0, len(c.Plugins))
	for i := range c.Plugins {
		pc := &c.Plugins[i]
		var (
			p   plugin.Plugin
			err error
		)
		if pc.Lua != "" {
			path := pc.Lua
			if !filepath.IsAbs(path) {
				path = filepath.Join(c.Root, path)
			}
			p, err = luaplugin.Load(path, pc.Options)
		} else {
			p, err = plugins.New(pc.Name, pc.Options)
		}
		if err != nil {
			return nil, fmt.Errorf("plugin %d (%s): %w", i, pc, err)
		}
		res = append(res, p)
	}
	return res, nil
}

// SpliceOptions returns the transform options the configuration selects.
func (c *Config) SpliceOptions() *splice.Options {
	opts := &splice.Options{
		Config: c.Options,
		Encode: c.Encode.EncodeOptions(),
	}
	if c.Format != "" {
		f, _ := format.ParseFormat(c.Format)
		opts.Format = &f
	}
	return opts
}
