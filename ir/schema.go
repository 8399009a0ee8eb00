package ir

// PropType says how a property is stored.
type PropType int

const (
	ScalarProp PropType = iota
	NodeProp
	ListProp
)

type slot int

const (
	sName slot = iota
	sValue
	sOp
	sFlag
	sStartTag
	sEndTag
	sKey
	sVal
	sArg
	sLeft
	sRight
	sTest
	sThen
	sElse
	sChildren
)

// Prop is one authored property of a node kind. Key is the name used in
// paths.
type Prop struct {
	Key  string
	Type PropType
	slot slot
}

type nodeSlot struct {
	s   slot
	get func(*Node) **Node
}

var nodeSlots = []nodeSlot{
	{sStartTag, func(n *Node) **Node { return &n.StartTag }},
	{sEndTag, func(n *Node) **Node { return &n.EndTag }},
	{sKey, func(n *Node) **Node { return &n.Key }},
	{sVal, func(n *Node) **Node { return &n.Val }},
	{sArg, func(n *Node) **Node { return &n.Arg }},
	{sLeft, func(n *Node) **Node { return &n.Left }},
	{sRight, func(n *Node) **Node { return &n.Right }},
	{sTest, func(n *Node) **Node { return &n.Test }},
	{sThen, func(n *Node) **Node { return &n.Then }},
	{sElse, func(n *Node) **Node { return &n.Else }},
}

func scalar(key string, s slot) Prop { return Prop{Key: key, Type: ScalarProp, slot: s} }
func child(key string, s slot) Prop  { return Prop{Key: key, Type: NodeProp, slot: s} }
func list(key string) Prop           { return Prop{Key: key, Type: ListProp, slot: sChildren} }

// schemas lists, per kind, the authored properties in document order.
// Range and Parent are bookkeeping and never appear here.
var schemas = map[Kind][]Prop{
	DocumentKind:            {list("children")},
	ElementKind:             {scalar("name", sName), child("startTag", sStartTag), list("children"), child("endTag", sEndTag)},
	StartTagKind:            {scalar("selfClosing", sFlag), list("attributes")},
	EndTagKind:              {},
	AttributeKind:           {child("key", sKey), child("value", sVal)},
	DirectiveKind:           {child("key", sKey), child("value", sVal)},
	DirectiveKeyKind:        {child("name", sKey), child("argument", sArg), list("modifiers")},
	IdentifierKind:          {scalar("name", sName)},
	LiteralKind:             {scalar("value", sValue)},
	TextKind:                {scalar("value", sValue)},
	CommentKind:             {scalar("value", sValue)},
	ExpressionContainerKind: {child("expression", sVal)},
	ForExpressionKind:       {list("left"), scalar("operator", sOp), child("right", sRight)},
	OnExpressionKind:        {list("body")},

	ProgramKind:         {list("body")},
	ImportKind:          {list("specifiers"), child("source", sVal), scalar("semicolon", sFlag)},
	ImportSpecifierKind: {scalar("form", sOp), child("imported", sKey), child("local", sVal)},
	VarDeclKind:         {scalar("keyword", sOp), child("id", sKey), child("init", sVal), scalar("semicolon", sFlag)},
	ExportDefaultKind:   {child("declaration", sVal), scalar("semicolon", sFlag)},
	ExprStmtKind:        {child("expression", sVal), scalar("semicolon", sFlag)},
	StringKind:          {scalar("value", sValue)},
	NumberKind:          {scalar("value", sValue)},
	BoolKind:            {scalar("value", sFlag)},
	NullKind:            {},
	ObjectKind:          {list("properties")},
	PropertyKind:        {child("key", sKey), child("value", sVal), scalar("shorthand", sFlag)},
	ArrayKind:           {list("elements")},
	MemberKind:          {child("object", sLeft), child("property", sRight), scalar("computed", sFlag)},
	CallKind:            {child("callee", sLeft), list("arguments")},
	UnaryKind:           {scalar("operator", sOp), child("argument", sArg)},
	UpdateKind:          {scalar("operator", sOp), child("argument", sArg), scalar("prefix", sFlag)},
	BinaryKind:          {scalar("operator", sOp), child("left", sLeft), child("right", sRight)},
	AssignKind:          {scalar("operator", sOp), child("left", sLeft), child("right", sRight)},
	ConditionalKind:     {child("test", sTest), child("consequent", sThen), child("alternate", sElse)},
}

// Schema returns the authored properties of kind k in document order.
func Schema(k Kind) []Prop {
	return schemas[k]
}

// SchemaProp looks up the property named key of kind k.
func SchemaProp(k Kind, key string) (Prop, bool) {
	for _, p := range schemas[k] {
		if p.Key == key {
			return p, true
		}
	}
	return Prop{}, false
}

// Scalar returns the value of a scalar property, a string or a bool.
func (y *Node) Scalar(p Prop) any {
	switch p.slot {
	case sName:
		return y.Name
	case sValue:
		return y.Value
	case sOp:
		return y.Op
	case sFlag:
		return y.Flag
	}
	return nil
}

// SetScalar sets a scalar property. v must be a string, or a bool for flag
// properties.
func (y *Node) SetScalar(p Prop, v any) bool {
	switch p.slot {
	case sName, sValue, sOp:
		s, ok := v.(string)
		if !ok {
			return false
		}
		switch p.slot {
		case sName:
			y.Name = s
		case sValue:
			y.Value = s
		default:
			y.Op = s
		}
		return true
	case sFlag:
		b, ok := v.(bool)
		if !ok {
			return false
		}
		y.Flag = b
		return true
	}
	return false
}

// Child returns the value of a node property.
func (y *Node) Child(p Prop) *Node {
	if p.Type != NodeProp {
		return nil
	}
	return *y.slotPtr(p.slot)
}

// SetChild sets a node property.
func (y *Node) SetChild(p Prop, c *Node) {
	if p.Type != NodeProp {
		return
	}
	*y.slotPtr(p.slot) = c
}

// List returns the value of a list property.
func (y *Node) List(p Prop) []*Node {
	if p.Type != ListProp {
		return nil
	}
	return y.Children
}

func (y *Node) slotPtr(s slot) **Node {
	for _, ns := range nodeSlots {
		if ns.s == s {
			return ns.get(y)
		}
	}
	panic("not a node slot")
}

// Each calls f on every direct child of y in document order, with the key
// of the property holding it and its list index (or -1).
func (y *Node) Each(f func(key string, index int, c *Node) bool) bool {
	for _, p := range schemas[y.Kind] {
		switch p.Type {
		case NodeProp:
			c := y.Child(p)
			if c == nil {
				continue
			}
			if !f(p.Key, -1, c) {
				return false
			}
		case ListProp:
			for i, c := range y.Children {
				if !f(p.Key, i, c) {
					return false
				}
			}
		}
	}
	return true
}
