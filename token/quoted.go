package token

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// quoted returns the length of the string literal at the start of d,
// quotes included.
func quoted(d []byte) (int, error) {
	q := d[0]
	escaped := false
	i := 1
	for i < len(d) {
		r, sz := utf8.DecodeRune(d[i:])
		if r == utf8.RuneError && sz == 1 {
			return 0, ErrBadUTF8
		}
		i += sz
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == rune(q):
			return i, nil
		case r == '\n':
			return 0, ErrUnterminated
		}
	}
	return 0, ErrUnterminated
}

// Unquote decodes a quoted string literal.
func Unquote(d []byte) (string, error) {
	if len(d) < 2 || d[len(d)-1] != d[0] {
		return "", ErrUnterminated
	}
	body := d[1 : len(d)-1]
	if !strings.ContainsRune(string(body), '\\') {
		return string(body), nil
	}
	b := &strings.Builder{}
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(body) {
			return "", ErrBadEscape
		}
		c = body[i]
		i++
		switch c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case 'x':
			if i+2 > len(body) {
				return "", ErrBadEscape
			}
			v, err := strconv.ParseUint(string(body[i:i+2]), 16, 8)
			if err != nil {
				return "", ErrBadEscape
			}
			b.WriteRune(rune(v))
			i += 2
		case 'u':
			var hex string
			if i < len(body) && body[i] == '{' {
				j := i + 1
				for j < len(body) && body[j] != '}' {
					j++
				}
				if j >= len(body) {
					return "", ErrBadEscape
				}
				hex = string(body[i+1 : j])
				i = j + 1
			} else {
				if i+4 > len(body) {
					return "", ErrBadEscape
				}
				hex = string(body[i : i+4])
				i += 4
			}
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil || v > utf8.MaxRune {
				return "", ErrBadEscape
			}
			b.WriteRune(rune(v))
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
