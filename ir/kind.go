package ir

import "fmt"

type Kind int

const (
	// markup
	DocumentKind Kind = iota
	ElementKind
	StartTagKind
	EndTagKind
	AttributeKind
	DirectiveKind
	DirectiveKeyKind
	IdentifierKind
	LiteralKind
	TextKind
	CommentKind
	ExpressionContainerKind
	ForExpressionKind
	OnExpressionKind

	// code
	ProgramKind
	ImportKind
	ImportSpecifierKind
	VarDeclKind
	ExportDefaultKind
	ExprStmtKind
	StringKind
	NumberKind
	BoolKind
	NullKind
	ObjectKind
	PropertyKind
	ArrayKind
	MemberKind
	CallKind
	UnaryKind
	UpdateKind
	BinaryKind
	AssignKind
	ConditionalKind
)

var kindNames = map[Kind]string{
	DocumentKind:            "Document",
	ElementKind:             "Element",
	StartTagKind:            "StartTag",
	EndTagKind:              "EndTag",
	AttributeKind:           "Attribute",
	DirectiveKind:           "Directive",
	DirectiveKeyKind:        "DirectiveKey",
	IdentifierKind:          "Identifier",
	LiteralKind:             "Literal",
	TextKind:                "Text",
	CommentKind:             "Comment",
	ExpressionContainerKind: "ExpressionContainer",
	ForExpressionKind:       "ForExpression",
	OnExpressionKind:        "OnExpression",
	ProgramKind:             "Program",
	ImportKind:              "Import",
	ImportSpecifierKind:     "ImportSpecifier",
	VarDeclKind:             "VarDecl",
	ExportDefaultKind:       "ExportDefault",
	ExprStmtKind:            "ExprStmt",
	StringKind:              "String",
	NumberKind:              "Number",
	BoolKind:                "Bool",
	NullKind:                "Null",
	ObjectKind:              "Object",
	PropertyKind:            "Property",
	ArrayKind:               "Array",
	MemberKind:              "Member",
	CallKind:                "Call",
	UnaryKind:               "Unary",
	UpdateKind:              "Update",
	BinaryKind:              "Binary",
	AssignKind:              "Assign",
	ConditionalKind:         "Conditional",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for kk, name := range kindNames {
		if name == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized kind %q", d)
}

// Kinds returns all node kinds in declaration order.
func Kinds() []Kind {
	res := make([]Kind, 0, len(kindNames))
	for k := DocumentKind; k <= ConditionalKind; k++ {
		res = append(res, k)
	}
	return res
}

// IsMarkup reports whether k belongs to the markup layer.
func (k Kind) IsMarkup() bool {
	return k <= OnExpressionKind
}

// IsStatement reports whether k can appear in a Program body.
func (k Kind) IsStatement() bool {
	switch k {
	case ImportKind, VarDeclKind, ExportDefaultKind, ExprStmtKind:
		return true
	}
	return false
}

// IsExpression reports whether k is a code expression.
func (k Kind) IsExpression() bool {
	switch k {
	case IdentifierKind, StringKind, NumberKind, BoolKind, NullKind,
		ObjectKind, ArrayKind, MemberKind, CallKind, UnaryKind,
		UpdateKind, BinaryKind, AssignKind, ConditionalKind:
		return true
	}
	return false
}
