package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// writeDiff writes a line diff of a and b, without context lines.
func writeDiff(w io.Writer, name, a, b string, colored bool) error {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	del, ins, hdr := fmt.Sprint, fmt.Sprint, fmt.Sprint
	if colored {
		del, ins, hdr = paint(color.FgRed), paint(color.FgGreen), paint(color.Bold)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n", hdr("--- "+name), hdr("+++ "+name)); err != nil {
		return err
	}
	line, hunk := 1, false
	for _, d := range diffs {
		ls := splitLines(d.Text)
		if d.Type == diffpatch.DiffEqual {
			line += len(ls)
			hunk = false
			continue
		}
		if !hunk {
			if _, err := fmt.Fprintf(w, "@@ %d @@\n", line); err != nil {
				return err
			}
			hunk = true
		}
		mark, paint := "+", ins
		if d.Type == diffpatch.DiffDelete {
			mark, paint = "-", del
			line += len(ls)
		}
		for _, l := range ls {
			if _, err := fmt.Fprintln(w, paint(mark+l)); err != nil {
				return err
			}
		}
	}
	return nil
}

func paint(a color.Attribute) func(...any) string {
	c := color.New(a)
	c.EnableColor()
	return c.Sprint
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
