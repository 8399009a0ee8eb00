package token

import (
	"fmt"
	"sort"
	"strconv"
)

// PosDoc maps byte offsets of a document to line and column. Offsets are
// absolute: a document parsed at a base offset keeps that base.
type PosDoc struct {
	d    []byte
	base int
	n    []int
}

// NewPosDoc indexes the newlines of d, whose first byte is at offset base.
func NewPosDoc(d []byte, base int) *PosDoc {
	res := &PosDoc{d: d, base: base}
	for i, c := range d {
		if c == '\n' {
			res.n = append(res.n, base+i)
		}
	}
	return res
}

// LineCol returns the zero based line and column of off.
func (p *PosDoc) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	if di == 0 {
		return 0, off - p.base
	}
	return di, off - p.n[di-1] - 1
}

// Line returns the zero based line of off.
func (p *PosDoc) Line(off int) int {
	l, _ := p.LineCol(off)
	return l
}

func (p *PosDoc) Pos(i int) *Pos {
	return &Pos{
		I: i,
		D: p,
	}
}

type Pos struct {
	I int
	D *PosDoc
}

func (p *Pos) LineCol() (int, int) {
	return p.D.LineCol(p.I)
}

func (p *Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

func (p *Pos) Col() int {
	_, c := p.LineCol()
	return c
}

// String gives the one based line:col of p followed by a sample of the
// surrounding text.
func (p Pos) String() string {
	if p.D == nil {
		return "offset " + strconv.Itoa(p.I)
	}
	rel := p.I - p.D.base
	sample := string(p.D.d[max(0, rel-5):max(0, min(rel+5, len(p.D.d)))])
	sample = strconv.Quote(sample)
	sample = sample[1 : len(sample)-1]
	l, c := p.LineCol()
	return fmt.Sprintf("%d:%d (`...%s...`)", l+1, c+1, sample)
}
