package token

// number returns the length of the numeric literal at the start of d.
func number(d []byte) (int, error) {
	if len(d) > 1 && d[0] == '0' {
		switch d[1] {
		case 'x', 'X':
			return radix(d, isHexDigit)
		case 'o', 'O':
			return radix(d, func(c byte) bool { return c >= '0' && c <= '7' })
		case 'b', 'B':
			return radix(d, func(c byte) bool { return c == '0' || c == '1' })
		}
	}
	digits := asciiDigits(d)
	f := fract(d[digits:])
	if digits+f == 0 {
		return 0, ErrNumber
	}
	e := exp(d[digits+f:])
	i := digits + f + e
	if i < len(d) && d[i] == 'n' && f+e == 0 {
		i++
	}
	if i < len(d) && isIdentRune(rune(d[i]), true) {
		return 0, ErrNumber
	}
	return i, nil
}

func radix(d []byte, ok func(byte) bool) (int, error) {
	i := 2
	for i < len(d) && (ok(d[i]) || d[i] == '_') {
		i++
	}
	if i == 2 {
		return 0, ErrNumber
	}
	if i < len(d) && d[i] == 'n' {
		i++
	}
	return i, nil
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) && (d[i] != '_' || i == 0) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	default:
		return false
	}
}

func isHexDigit(c byte) bool {
	return asciiDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func fract(d []byte) int {
	if len(d) == 0 || d[0] != '.' {
		return 0
	}
	return 1 + asciiDigits(d[1:])
}

func exp(d []byte) int {
	if len(d) < 2 {
		return 0
	}
	switch d[0] {
	case 'e', 'E':
	default:
		return 0
	}
	i := 1
	switch d[1] {
	case '+', '-':
		i++
	default:
	}
	if i == len(d) {
		return 0
	}
	n := asciiDigits(d[i:])
	if n == 0 {
		return 0
	}
	return i + n
}
