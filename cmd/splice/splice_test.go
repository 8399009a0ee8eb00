package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/splice/debug"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"
)

func TestSetOpt(t *testing.T) {
	opts := map[string]any{}
	for _, a := range []string{"from=busy", "nested.n=3", "nested.list=[a, b]", "flag=true"} {
		if err := setOpt(opts, a); err != nil {
			t.Fatal(err)
		}
	}
	want := map[string]any{
		"from": "busy",
		"flag": true,
		"nested": map[string]any{
			"n":    uint64(3),
			"list": []any{"a", "b"},
		},
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("options (-want +got):\n%s", diff)
	}
	if err := setOpt(opts, "novalue"); err == nil {
		t.Error("expected usage error")
	}
}

func TestWriteDiff(t *testing.T) {
	var buf bytes.Buffer
	a := "one\ntwo\nthree\nfour\n"
	b := "one\n2\nthree\nfour\nfive\n"
	if err := writeDiff(&buf, "f.js", a, b, false); err != nil {
		t.Fatal(err)
	}
	want := "--- f.js\n+++ f.js\n@@ 2 @@\n-two\n+2\n@@ 5 @@\n+five\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

type bufCloser struct {
	bytes.Buffer
}

func (*bufCloser) Close() error { return nil }

// runMain runs the splice command the way cli.MainContext does, returning
// what it wrote and its exit status.
func runMain(stdin string, args ...string) (string, string, int) {
	cmd := MainCommand()
	out, errOut := &bufCloser{}, &bufCloser{}
	cc := &cli.Context{
		In:  io.NopCloser(strings.NewReader(stdin)),
		Out: out,
		Err: errOut,
		Go:  context.Background(),
	}
	err := cmd.Run(cc, args)
	if errors.Is(err, cli.ErrUsage) {
		cmd.Usage(cc, err)
	}
	code := cmd.Exit(cc, err)
	return out.String(), errOut.String(), code
}

const renameYAML = `plugins:
  - name: rename-identifier
    options:
      from: a
      to: b
`

var rename = []string{"-p", "rename-identifier", "-o", "from=a", "-o", "to=b"}

func flags(args ...string) []string {
	return append(append([]string{}, rename...), args...)
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		stdin   string
		args    []string
		out     string
		inOut   []string
		inErr   []string
		notIn   string
		code    int
		written map[string]string
	}{
		{
			name:    "run prints",
			files:   map[string]string{"a.js": "a(1)\n"},
			args:    flags("run", "a.js"),
			out:     "b(1)\n",
			written: map[string]string{"a.js": "a(1)\n"},
		},
		{
			name:  "run many files",
			files: map[string]string{"a.js": "a(1)\n", "c.js": "c(a)\n", "d.js": "d()\n"},
			args:  flags("run", "-j", "2", "a.js", "c.js", "d.js"),
			out:   "==> a.js <==\nb(1)\n==> c.js <==\nc(b)\n==> d.js <==\nd()\n",
		},
		{
			name:  "run list",
			files: map[string]string{"a.js": "a(1)\n", "c.js": "c()\n", "e.js": "e(a)\n"},
			args:  flags("run", "-l", "a.js", "c.js", "e.js"),
			out:   "a.js\ne.js\n",
		},
		{
			name:  "run diff",
			files: map[string]string{"a.js": "x()\na(1)\n", "c.js": "c()\n"},
			args:  flags("run", "-d", "a.js", "c.js"),
			out:   "--- a.js\n+++ a.js\n@@ 2 @@\n-a(1)\n+b(1)\n",
		},
		{
			name:    "run write",
			files:   map[string]string{"a.js": "a(1)\n", "c.js": "c()\n"},
			args:    flags("-v", "run", "-w", "a.js", "c.js"),
			inErr:   []string{"msg=wrote file=a.js plugin=rename-identifier count=1", "level=DEBUG msg=spliced file=c.js changed=false"},
			written: map[string]string{"a.js": "b(1)\n", "c.js": "c()\n"},
		},
		{
			name:  "run stdin",
			stdin: "a\n",
			args:  flags("-f", "js", "run", "-"),
			out:   "b\n",
		},
		{
			name:    "run component",
			files:   map[string]string{"A.vue": "<p>{{ a }}</p>\n<script>\na()\n</script>\n"},
			args:    flags("run", "-w", "A.vue"),
			written: map[string]string{"A.vue": "<p>{{ b }}</p>\n<script>\nb()\n</script>\n"},
		},
		{
			name:  "config flag",
			files: map[string]string{"conf.yaml": renameYAML, "a.js": "a(1)\n"},
			args:  []string{"-c", "conf.yaml", "run", "a.js"},
			out:   "b(1)\n",
		},
		{
			name:  "default config",
			files: map[string]string{".splice.yaml": renameYAML, "a.js": "a(1)\n"},
			args:  []string{"run", "a.js"},
			out:   "b(1)\n",
		},
		{
			name:  "bad config",
			files: map[string]string{".splice.yaml": "plugins:\n  - {}\n", "a.js": "a(1)\n"},
			args:  []string{"run", "a.js"},
			inErr: []string{"one of name or lua is required"},
			code:  1,
		},
		{
			name:  "no plugins",
			files: map[string]string{"a.js": "a(1)\n"},
			args:  []string{"run", "a.js"},
			inErr: []string{"no plugins configured"},
			code:  1,
		},
		{
			name:  "exclusive modes",
			files: map[string]string{"a.js": "a(1)\n"},
			args:  flags("run", "-w", "-l", "a.js"),
			inErr: []string{"at most one of -w -d -l"},
			code:  1,
		},
		{
			name:  "missing file",
			args:  flags("run", "nope.js"),
			inErr: []string{"nope.js"},
			code:  1,
		},
		{
			name:  "unknown command",
			args:  []string{"nope"},
			inErr: []string{"no such command"},
			code:  1,
		},
		{
			name:  "changes",
			files: map[string]string{"a.js": "a(1)\n"},
			args:  flags("changes", "a.js"),
			inOut: []string{
				"# plugin rename-identifier: 1\n# code\n",
				"edit body[0].expression.callee.name: \"a\" -> \"b\"\n",
				"repaint body[0].expression.callee",
			},
		},
		{
			name:  "changes json patch",
			files: map[string]string{"a.js": "a(1)\n"},
			args:  flags("changes", "-json-patch", "a.js"),
			inOut: []string{"# code\n", `"op": "replace"`, `"value": "b"`},
		},
		{
			name:  "tree",
			files: map[string]string{"x.js": "x\n"},
			args:  []string{"tree", "x.js"},
			out:   "# code\nProgram\n  body[0]: ExprStmt\n    expression: Identifier name=\"x\"\n",
		},
		{
			name:  "tree at script path",
			files: map[string]string{"A.vue": "<p>{{ x }}</p>\n<script>\ny\n</script>\n"},
			args:  []string{"tree", "-at", "body[0]", "A.vue"},
			out:   "# script[0]\nExprStmt\n  expression: Identifier name=\"y\"\n",
		},
		{
			name:  "tree at document path",
			files: map[string]string{"A.vue": "<p>{{ x }}</p>\n<script>\ny\n</script>\n"},
			args:  []string{"tree", "-at", "children[0]", "A.vue"},
			inOut: []string{"# document\nElement name=\"p\"\n"},
			notIn: "# script",
		},
		{
			name:  "tree at nowhere",
			files: map[string]string{"A.vue": "<p>{{ x }}</p>\n<script>\ny\n</script>\n"},
			args:  []string{"tree", "-at", "body[3]", "A.vue"},
			inErr: []string{"resolves in no layer"},
			code:  1,
		},
		{
			name: "plugins",
			args: []string{"plugins"},
			out:  "query\nremove-attribute\nrename-identifier\nrename-tag\nset-attribute\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, src := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			t.Chdir(dir)
			out, errOut, code := runMain(tt.stdin, tt.args...)
			if code != tt.code {
				t.Errorf("exit %d, want %d; stderr:\n%s", code, tt.code, errOut)
			}
			if tt.inOut == nil {
				if diff := cmp.Diff(tt.out, out); diff != "" {
					t.Errorf("stdout (-want +got):\n%s", diff)
				}
			}
			for _, s := range tt.inOut {
				if !strings.Contains(out, s) {
					t.Errorf("stdout lacks %q:\n%s", s, out)
				}
			}
			if tt.notIn != "" && strings.Contains(out, tt.notIn) {
				t.Errorf("stdout has %q:\n%s", tt.notIn, out)
			}
			for _, s := range tt.inErr {
				if !strings.Contains(errOut, s) {
					t.Errorf("stderr lacks %q:\n%s", s, errOut)
				}
			}
			for name, want := range tt.written {
				got, err := os.ReadFile(filepath.Join(dir, name))
				if err != nil {
					t.Fatal(err)
				}
				if diff := cmp.Diff(want, string(got)); diff != "" {
					t.Errorf("%s (-want +got):\n%s", name, diff)
				}
			}
		})
	}
}

func TestNewLog(t *testing.T) {
	if debug.Plugins() {
		t.Skip("plugin debugging forces debug records")
	}
	tests := []struct {
		verbose bool
		want    string
	}{
		{false, "msg=kept k=v\nlevel=WARN msg=warned\n"},
		{true, "level=DEBUG msg=detail\nmsg=kept k=v\nlevel=WARN msg=warned\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		log := newLog(&buf, tt.verbose)
		log.Debug("detail")
		log.Info("kept", "k", "v")
		log.Warn("warned")
		if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
			t.Errorf("verbose %t (-want +got):\n%s", tt.verbose, diff)
		}
	}
}
