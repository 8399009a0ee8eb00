package token

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// punctuators, longest first within each leading byte
var puncts = []string{
	">>>=", "...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
	"{", "}", "(", ")", "[", "]", ";", ",", "<", ">", "+", "-", "*", "/",
	"%", "&", "|", "^", "!", "~", "?", ":", "=", ".",
}

type TokenOpt func(*tkOpts)

type tkOpts struct {
	base int
	doc  *PosDoc
}

// TokenBase sets the absolute offset of the first byte of the input.
func TokenBase(n int) TokenOpt {
	return func(o *tkOpts) { o.base = n }
}

// TokenDoc makes positions resolve line and column against an enclosing
// document instead of the input alone.
func TokenDoc(d *PosDoc) TokenOpt {
	return func(o *tkOpts) { o.doc = d }
}

// Tokenize splits src into tokens of the code grammar, appending to dst. The
// result always ends with a TEOF token. Comments and whitespace are
// dropped, recorded only through Token.NL.
func Tokenize(dst []Token, src []byte, opts ...TokenOpt) ([]Token, error) {
	o := &tkOpts{}
	for _, f := range opts {
		f(o)
	}
	posDoc := o.doc
	if posDoc == nil {
		posDoc = NewPosDoc(src, o.base)
	}
	n := len(src)
	i := 0
	nl := false
	for {
		skip, sawNL, err := skipTrivia(src[i:])
		if err != nil {
			return nil, NewTokenizeErr(err, posDoc.Pos(o.base+i))
		}
		nl = nl || sawNL
		i += skip
		if i >= n {
			break
		}
		start := i
		c := src[i]
		var tt TokenType
		switch {
		case c == '\'' || c == '"':
			m, err := quoted(src[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, posDoc.Pos(o.base+i))
			}
			i += m
			tt = TString
		case asciiDigit(c) || (c == '.' && i+1 < n && asciiDigit(src[i+1])):
			m, err := number(src[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, posDoc.Pos(o.base+i))
			}
			i += m
			tt = TNumber
		case c == '`':
			e := fmt.Errorf("%w: template literal", ErrUnsupported)
			return nil, NewTokenizeErr(e, posDoc.Pos(o.base+i))
		default:
			if m := identLen(src[i:]); m > 0 {
				i += m
				tt = TIdent
				break
			}
			m := punctLen(src[i:])
			if m == 0 {
				return nil, NewTokenizeErr(ErrUnexpected, posDoc.Pos(o.base+i))
			}
			i += m
			tt = TPunct
		}
		dst = append(dst, Token{
			Type:  tt,
			Pos:   posDoc.Pos(o.base + start),
			Bytes: src[start:i],
			NL:    nl,
		})
		nl = false
	}
	dst = append(dst, Token{Type: TEOF, Pos: posDoc.Pos(o.base + n), NL: nl})
	return dst, nil
}

func skipTrivia(d []byte) (int, bool, error) {
	i := 0
	nl := false
	for i < len(d) {
		switch c := d[i]; {
		case c == '\n':
			nl = true
			i++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			i++
		case c == '/' && i+1 < len(d) && d[i+1] == '/':
			for i < len(d) && d[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(d) && d[i+1] == '*':
			j := i + 2
			for {
				if j+1 >= len(d) {
					return i, nl, fmt.Errorf("%w comment", ErrUnterminated)
				}
				if d[j] == '*' && d[j+1] == '/' {
					break
				}
				if d[j] == '\n' {
					nl = true
				}
				j++
			}
			i = j + 2
		case c >= utf8.RuneSelf:
			r, sz := utf8.DecodeRune(d[i:])
			if !unicode.IsSpace(r) && r != '\uFEFF' {
				return i, nl, nil
			}
			if r == '\u2028' || r == '\u2029' {
				nl = true
			}
			i += sz
		default:
			return i, nl, nil
		}
	}
	return i, nl, nil
}

func identLen(d []byte) int {
	i := 0
	for i < len(d) {
		r, sz := utf8.DecodeRune(d[i:])
		if !isIdentRune(r, i == 0) {
			break
		}
		i += sz
	}
	return i
}

func isIdentRune(r rune, first bool) bool {
	switch {
	case r == '$' || r == '_':
		return true
	case r == utf8.RuneError:
		return false
	case unicode.IsLetter(r):
		return true
	case !first && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)):
		return true
	}
	return false
}

// IsIdent reports whether s is a valid identifier name.
func IsIdent(s string) bool {
	return s != "" && identLen([]byte(s)) == len(s)
}

func punctLen(d []byte) int {
	for _, p := range puncts {
		if len(d) < len(p) || string(d[:len(p)]) != p {
			continue
		}
		if p == "?." && len(d) > 2 && asciiDigit(d[2]) {
			continue
		}
		return len(p)
	}
	return 0
}
