package token

import (
	"fmt"
)

type TokenType int

const (
	TEOF TokenType = iota
	TIdent
	TNumber
	TString
	TPunct
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TEOF:    "TEOF",
		TIdent:  "TIdent",
		TNumber: "TNumber",
		TString: "TString",
		TPunct:  "TPunct",
	}[t]
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
	// NL is set when a line break separates the token from the previous
	// one, comments included.
	NL bool
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %q %s", t.Type, t.Bytes, t.Pos.String())
}

// Start and End give the byte range of the token.
func (t *Token) Start() int { return t.Pos.I }
func (t *Token) End() int   { return t.Pos.I + len(t.Bytes) }

// Is reports whether t is the punctuator or identifier s.
func (t *Token) Is(s string) bool {
	return (t.Type == TPunct || t.Type == TIdent) && string(t.Bytes) == s
}

func (t *Token) String() string {
	switch t.Type {
	case TString:
		s, err := Unquote(t.Bytes)
		if err != nil {
			return string(t.Bytes)
		}
		return s
	case TEOF:
		return "EOF"
	}
	return string(t.Bytes)
}
