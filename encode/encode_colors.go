package encode

import (
	"strings"

	"github.com/signadot/splice/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind ir.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	CommentColor ColorAttr = iota
	TagColor
	FieldColor
	ValueColor
	SepColor
	KeywordColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range ir.Kinds() {
		able := Colorable{Kind: k, Attr: SepColor}
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = KeywordColor
		colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	}
	colors.Map[Colorable{Kind: ir.CommentKind, Attr: CommentColor}] = color.BlueString
	colors.Map[Colorable{Kind: ir.ElementKind, Attr: TagColor}] = color.RGB(74, 92, 138).SprintfFunc()
	colors.Map[Colorable{Kind: ir.AttributeKind, Attr: FieldColor}] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[Colorable{Kind: ir.DirectiveKeyKind, Attr: FieldColor}] = color.RGB(196, 168, 128).SprintfFunc()
	colors.Map[Colorable{Kind: ir.PropertyKind, Attr: FieldColor}] = color.RGB(128, 168, 196).SprintfFunc()

	able := Colorable{Attr: ValueColor}
	able.Kind = ir.LiteralKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Kind = ir.StringKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Kind = ir.NumberKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = ir.NullKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Kind = ir.BoolKind
	colors.Map[able] = color.CyanString
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k ir.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k ir.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
