package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/splice/token"
)

var ErrParse = errors.New("parse error")

func unexpected(tok *token.Token) error {
	if tok.Type == token.TEOF {
		return fmt.Errorf("%w: unexpected end of input at %s", ErrParse, tok.Pos)
	}
	return fmt.Errorf("%w: unexpected %q at %s", ErrParse, tok.Bytes, tok.Pos)
}

func errAt(pos *token.Pos, msg string, args ...any) error {
	return fmt.Errorf("%w: %s at %s", ErrParse, fmt.Sprintf(msg, args...), pos)
}
