package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/splice"
	"github.com/signadot/splice/format"
)

const sample = `
format: component
options:
  quote: "'"
  nested:
    a: 1
    b: 2
encode:
  quote: '"'
  indent: 4
plugins:
- name: rename-identifier
  options:
    from: busy
    to: loading
- lua: lua/noop.lua
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "lua"), 0o755); err != nil {
		t.Fatal(err)
	}
	script := "name = 'noop'\nfunction transform(ctx) return 0 end\n"
	if err := os.WriteFile(filepath.Join(dir, "lua", "noop.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, DefaultName)
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Root != dir || c.Encode.Indent != 4 || c.Encode.Quote != `"` {
		t.Errorf("config %+v", c)
	}
	ps, err := c.Build()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, p := range ps {
		names = append(names, p.Name())
	}
	if diff := cmp.Diff([]string{"rename-identifier", "noop"}, names); diff != "" {
		t.Errorf("plugins (-want +got):\n%s", diff)
	}
	opts := c.SpliceOptions()
	if opts.Format == nil || *opts.Format != format.ComponentFormat || len(opts.Encode) != 2 {
		t.Errorf("options %+v", opts)
	}

	res, err := splice.Transform([]byte("<script>\nlet busy = 1\n</script>\n"), "x.txt", ps, opts)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<script>\nlet loading = 1\n</script>\n"; res.Code != want {
		t.Errorf("got %q want %q", res.Code, want)
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"plugins: [{}]",
		"plugins: [{name: a, lua: b.lua}]",
		"format: xml",
		"encode: {quote: x}",
		"encode: {width: -1}",
		"unknown: 1",
		"plugins: 3",
	} {
		if _, err := Parse([]byte(src), "."); !errors.Is(err, ErrConfig) {
			t.Errorf("%q: expected ErrConfig, got %v", src, err)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	c, err := Parse([]byte("plugins: [{name: nope}]"), ".")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Build(); err == nil {
		t.Error("expected unknown plugin error")
	}
	c, err = Parse([]byte("plugins: [{lua: missing.lua}]"), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Build(); err == nil {
		t.Error("expected missing script error")
	}
}

func TestMerge(t *testing.T) {
	c, err := Parse([]byte(sample), ".")
	if err != nil {
		t.Fatal(err)
	}
	err = c.Merge(map[string]any{
		"quote":  nil,
		"nested": map[string]any{"b": 3},
		"extra":  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"nested": map[string]any{"a": 1.0, "b": 3.0},
		"extra":  true,
	}
	if diff := cmp.Diff(want, c.Options); diff != "" {
		t.Errorf("merged options (-want +got):\n%s", diff)
	}

	empty := &Config{}
	if err := empty.Merge(map[string]any{"k": "v"}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"k": "v"}, empty.Options); diff != "" {
		t.Errorf("merged into empty (-want +got):\n%s", diff)
	}
}
