package plugins

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/splice"
	"github.com/signadot/splice/plugin"
)

type pluginTest struct {
	name   string
	plugin string
	opts   map[string]any
	file   string
	src    string
	want   string
	count  int
}

var pluginTests = []pluginTest{
	{
		name:   "rename identifier",
		plugin: "rename-identifier",
		opts:   map[string]any{"from": "busy", "to": "loading"},
		file:   "Button.vue",
		src: `<template>
  <button :disabled="busy" @click="save(busy)">{{ busy ? 'wait' : label }}</button>
</template>
<script>
import { busy } from './state'
export default { busy, other: obj.busy }
</script>
`,
		want: `<template>
  <button :disabled="loading" @click="save(loading)">{{ loading ? 'wait' : label }}</button>
</template>
<script>
import { busy as loading } from './state'
export default { busy: loading, other: obj.busy }
</script>
`,
		count: 5,
	},
	{
		name:   "rename tag",
		plugin: "rename-tag",
		opts:   map[string]any{"from": "my-comp", "to": "other-comp"},
		file:   "A.vue",
		src:    "<div>\n  <my-comp a=\"1\">x</my-comp><br>\n</div>\n",
		want:   "<div>\n  <other-comp a=\"1\">x</other-comp><br>\n</div>\n",
		count:  1,
	},
	{
		name:   "remove bound attribute",
		plugin: "remove-attribute",
		opts:   map[string]any{"name": "alt"},
		file:   "A.vue",
		src:    "<div>\n  <img src=\"a.png\"  :alt=\"t\" class=\"x\">\n</div>\n",
		want:   "<div>\n  <img src=\"a.png\" class=\"x\">\n</div>\n",
		count:  1,
	},
	{
		name:   "set attribute",
		plugin: "set-attribute",
		opts:   map[string]any{"tag": "img", "name": "loading", "value": "lazy"},
		file:   "A.vue",
		src:    "<div>\n  <img src=\"a.png\">\n</div>\n",
		want:   "<div>\n  <img src=\"a.png\" loading=\"lazy\">\n</div>\n",
		count:  1,
	},
	{
		name:   "set attribute value",
		plugin: "set-attribute",
		opts:   map[string]any{"tag": "img", "name": "src", "value": "b.png"},
		file:   "A.vue",
		src:    "<div>\n  <img  src='a.png' >\n</div>\n",
		want:   "<div>\n  <img  src=\"b.png\" >\n</div>\n",
		count:  1,
	},
	{
		name:   "query name",
		plugin: "query",
		opts: map[string]any{
			"where": `kind == "Identifier" && name startsWith "old" && parent != "Member"`,
			"name":  `"new" + name[3:]`,
		},
		file:  "a.js",
		src:   "oldA(x.oldB)\nconst oldC = 1 // c\n",
		want:  "newA(x.oldB)\nconst newC = 1 // c\n",
		count: 2,
	},
	{
		name:   "query replace",
		plugin: "query",
		opts: map[string]any{
			"where":   `kind == "Number" && value == "1"`,
			"in":      "scripts",
			"replace": "one",
		},
		file:  "a.js",
		src:   "const a = 1  +  2\n",
		want:  "const a = one  +  2\n",
		count: 1,
	},
	{
		name:   "query remove",
		plugin: "query",
		opts: map[string]any{
			"where":  `kind == "Attribute" && text() == 'class="x"'`,
			"in":     "document",
			"remove": true,
		},
		file:  "A.vue",
		src:   "<div>\n  <p class=\"x\" id=\"y\">t</p>\n</div>\n",
		want:  "<div>\n  <p id=\"y\">t</p>\n</div>\n",
		count: 1,
	},
}

func TestPlugins(t *testing.T) {
	for _, tt := range pluginTests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.plugin, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			res, err := splice.Transform([]byte(tt.src), tt.file, []plugin.Plugin{p}, nil)
			if err != nil {
				t.Fatal(err)
			}
			if res.Code != tt.want {
				t.Errorf("output (-want +got):\n%s", cmp.Diff(tt.want, res.Code))
			}
			if res.Stats[0].Count != tt.count {
				t.Errorf("count %d, want %d", res.Stats[0].Count, tt.count)
			}
			again, err := splice.Transform([]byte(res.Code), tt.file, []plugin.Plugin{p}, nil)
			if err != nil {
				t.Fatal(err)
			}
			if again.Code != res.Code {
				t.Errorf("second pass changed the output:\n%s", cmp.Diff(res.Code, again.Code))
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	want := []string{"query", "remove-attribute", "rename-identifier", "rename-tag", "set-attribute"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if _, err := New("nope", nil); !errors.Is(err, ErrUnknown) {
		t.Errorf("unknown: %v", err)
	}
	for _, tt := range []struct {
		name string
		opts map[string]any
	}{
		{"rename-identifier", map[string]any{"from": "a"}},
		{"rename-identifier", map[string]any{"from": "a", "to": "b c"}},
		{"rename-tag", map[string]any{"from": 1, "to": "b"}},
		{"set-attribute", map[string]any{"name": "a"}},
		{"query", map[string]any{"where": "true"}},
		{"query", map[string]any{"where": "kind ==", "remove": true}},
		{"query", map[string]any{"where": "1 + 1", "remove": true}},
		{"query", map[string]any{"where": "true", "in": "nowhere", "remove": true}},
		{"query", map[string]any{"where": "true", "replace": "a b"}},
	} {
		if _, err := New(tt.name, tt.opts); !errors.Is(err, ErrOption) {
			t.Errorf("%s %v: expected ErrOption, got %v", tt.name, tt.opts, err)
		}
	}
}
