package parse

import (
	"github.com/signadot/splice/token"
)

type parseOpts struct {
	base int
	doc  *token.PosDoc
}

func (o *parseOpts) TokenizeOpts() []token.TokenOpt {
	res := []token.TokenOpt{token.TokenBase(o.base)}
	if o.doc != nil {
		res = append(res, token.TokenDoc(o.doc))
	}
	return res
}

type ParseOption func(*parseOpts)

// Base sets the offset of the first byte of the input. Node ranges are
// shifted by it.
func Base(n int) ParseOption {
	return func(o *parseOpts) { o.base = n }
}

// Doc makes error positions refer to lines of an enclosing document.
func Doc(d *token.PosDoc) ParseOption {
	return func(o *parseOpts) { o.doc = d }
}
