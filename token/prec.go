package token

// Operator precedence of the code grammar, higher binds tighter.
const (
	PrecAssign = 2 + iota
	PrecCond
	PrecNullish
	PrecOr
	PrecAnd
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecEquality
	PrecRelational
	PrecShift
	PrecAdditive
	PrecMultiplicative
	PrecExp
	PrecUnary
	PrecUpdate
	PrecCall
	PrecPrimary
)

var binaryPrec = map[string]int{
	"??": PrecNullish,
	"||": PrecOr,
	"&&": PrecAnd,
	"|":  PrecBitOr,
	"^":  PrecBitXor,
	"&":  PrecBitAnd,
	"==": PrecEquality, "!=": PrecEquality, "===": PrecEquality, "!==": PrecEquality,
	"<": PrecRelational, ">": PrecRelational, "<=": PrecRelational, ">=": PrecRelational,
	"in": PrecRelational, "instanceof": PrecRelational,
	"<<": PrecShift, ">>": PrecShift, ">>>": PrecShift,
	"+": PrecAdditive, "-": PrecAdditive,
	"*": PrecMultiplicative, "/": PrecMultiplicative, "%": PrecMultiplicative,
	"**": PrecExp,
}

// BinaryPrec returns the precedence of a binary operator, 0 if op is not
// one.
func BinaryPrec(op string) int {
	return binaryPrec[op]
}

// IsAssignOp reports whether op is an assignment operator.
func IsAssignOp(op string) bool {
	switch op {
	case "=", "+=", "-=", "*=", "/=", "%=", "**=", "<<=", ">>=", ">>>=",
		"&=", "|=", "^=", "&&=", "||=", "??=":
		return true
	}
	return false
}
