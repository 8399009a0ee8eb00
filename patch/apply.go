package patch

import (
	"fmt"
	"strings"

	"github.com/signadot/splice/changeset"
	"github.com/signadot/splice/debug"
	"github.com/signadot/splice/encode"
)

// Apply repaints the regions of set in src. Each region is replaced by the
// rendering of its current node; text outside the regions is kept as is.
func Apply(src []byte, set *changeset.Set, opts ...encode.EncodeOption) (string, error) {
	if set.Empty() {
		return string(src), nil
	}
	buf := New(src)
	if set.RootChanged {
		text, err := encode.String(set.Root.Node, opts...)
		if err != nil {
			return "", fmt.Errorf("rendering root: %w", err)
		}
		if debug.Patch() {
			debug.Logf("patch: reprinting root [%d,%d)\n", set.Root.Start, set.Root.End)
		}
		buf.Overwrite(set.Root.Start, set.Root.End, text)
		return buf.String(), nil
	}
	for _, r := range set.Records {
		text, err := encode.String(r.Node, opts...)
		if err != nil {
			return "", fmt.Errorf("rendering %s: %w", r.Path, err)
		}
		if !r.Node.Kind.IsMarkup() {
			text = reindent(text, leadOf(src, r.Start))
			if encode.NeedsParens(r.Node) && !parenthesized(src, r.Start, r.End) {
				text = "(" + text + ")"
			}
		}
		if debug.Patch() {
			debug.Logf("patch: %s [%d,%d) %q -> %q\n", r.Path, r.Start, r.End, src[r.Start:r.End], text)
		}
		buf.Overwrite(r.Start, r.End, text)
	}
	return buf.String(), nil
}

// leadOf returns the indentation of the line holding offset off.
func leadOf(src []byte, off int) string {
	ls := off
	for ls > 0 && src[ls-1] != '\n' {
		ls--
	}
	le := ls
	for le < off && (src[le] == ' ' || src[le] == '\t') {
		le++
	}
	return string(src[ls:le])
}

func reindent(text, lead string) string {
	if lead == "" || !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = lead + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// parenthesized reports whether [start, end) is directly enclosed in
// parentheses in src.
func parenthesized(src []byte, start, end int) bool {
	i := start - 1
	for i >= 0 && isSpace(src[i]) {
		i--
	}
	j := end
	for j < len(src) && isSpace(src[j]) {
		j++
	}
	return i >= 0 && j < len(src) && src[i] == '(' && src[j] == ')'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
