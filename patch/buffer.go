package patch

import (
	"bytes"
	"sort"
)

type replacement struct {
	start, end int
	text       string
}

// Buffer accumulates replacements of spans of an original text. All
// offsets refer to the original text regardless of replacements already
// made. Replacements must not overlap.
type Buffer struct {
	src  []byte
	reps []replacement
}

func New(src []byte) *Buffer {
	return &Buffer{src: src}
}

// Overwrite replaces [start, end) of the original text with text. An empty
// span inserts.
func (b *Buffer) Overwrite(start, end int, text string) {
	b.reps = append(b.reps, replacement{start: start, end: end, text: text})
}

// Len returns the number of replacements made.
func (b *Buffer) Len() int { return len(b.reps) }

func (b *Buffer) Bytes() []byte {
	reps := make([]replacement, len(b.reps))
	copy(reps, b.reps)
	sort.SliceStable(reps, func(i, j int) bool {
		return reps[i].start < reps[j].start
	})
	buf := bytes.NewBuffer(make([]byte, 0, len(b.src)))
	cur := 0
	for _, r := range reps {
		buf.Write(b.src[cur:r.start])
		buf.WriteString(r.text)
		cur = r.end
	}
	buf.Write(b.src[cur:])
	return buf.Bytes()
}

func (b *Buffer) String() string {
	return string(b.Bytes())
}
