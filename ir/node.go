package ir

import "strconv"

// Range is a half open byte range [Start, End) into the text a node was
// parsed from.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int { return r.End - r.Start }

func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

func (r Range) String() string {
	return "[" + strconv.Itoa(r.Start) + "," + strconv.Itoa(r.End) + ")"
}

// Node is a syntax tree node. Which fields are meaningful depends on Kind,
// see the schema in schema.go.
//
// Range and Parent are bookkeeping: Range is only meaningful for nodes
// produced by a parser, and Parent is a lookup reference recomputed by
// SetParents. Neither takes part in equality or diffing.
type Node struct {
	Kind   Kind
	Range  Range
	Parent *Node

	Name  string
	Value string
	Op    string
	Flag  bool

	StartTag *Node
	EndTag   *Node
	Key      *Node
	Val      *Node
	Arg      *Node
	Left     *Node
	Right    *Node
	Test     *Node
	Then     *Node
	Else     *Node

	Children []*Node
}

// Clone returns a deep copy of y. The copy shares no node with y, its
// parent links point within the copy and the root's Parent is nil.
func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{}
	y.CloneTo(res)
	res.Parent = nil
	return res
}

// CloneTo deep copies y into dst. dst keeps y's Parent.
func (y *Node) CloneTo(dst *Node) *Node {
	*dst = *y
	dst.Children = nil
	for _, s := range nodeSlots {
		c := *s.get(y)
		if c == nil {
			continue
		}
		cc := &Node{}
		c.CloneTo(cc)
		cc.Parent = dst
		*s.get(dst) = cc
	}
	if y.Children != nil {
		dst.Children = make([]*Node, len(y.Children))
		for i, c := range y.Children {
			cc := &Node{}
			c.CloneTo(cc)
			cc.Parent = dst
			dst.Children[i] = cc
		}
	}
	return dst
}

// Root follows parent links to the top of the tree.
func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Index returns the position of y in its parent's list property, or -1.
func (y *Node) Index() int {
	if y.Parent == nil {
		return -1
	}
	for i, c := range y.Parent.Children {
		if c == y {
			return i
		}
	}
	return -1
}

func NewIdentifier(name string) *Node {
	return &Node{Kind: IdentifierKind, Name: name}
}

func NewString(v string) *Node {
	return &Node{Kind: StringKind, Value: v}
}

func NewNumber(raw string) *Node {
	return &Node{Kind: NumberKind, Value: raw}
}

func NewInt(v int64) *Node {
	return NewNumber(strconv.FormatInt(v, 10))
}

func NewBool(v bool) *Node {
	return &Node{Kind: BoolKind, Flag: v}
}

func NewNull() *Node {
	return &Node{Kind: NullKind}
}

func NewText(v string) *Node {
	return &Node{Kind: TextKind, Value: v}
}

func NewArray(elts ...*Node) *Node {
	return &Node{Kind: ArrayKind, Children: elts}
}

func NewProperty(key string, val *Node) *Node {
	return &Node{Kind: PropertyKind, Key: NewIdentifier(key), Val: val}
}

func NewObject(props ...*Node) *Node {
	return &Node{Kind: ObjectKind, Children: props}
}

// NewAttribute returns a plain markup attribute. An empty value yields a
// valueless attribute.
func NewAttribute(name, value string) *Node {
	res := &Node{Kind: AttributeKind, Key: NewIdentifier(name)}
	if value != "" {
		res.Val = &Node{Kind: LiteralKind, Value: value}
	}
	return res
}

// NewElement returns an element with an explicit end tag.
func NewElement(name string, attrs []*Node, children ...*Node) *Node {
	return &Node{
		Kind:     ElementKind,
		Name:     name,
		StartTag: &Node{Kind: StartTagKind, Children: attrs},
		Children: children,
		EndTag:   &Node{Kind: EndTagKind},
	}
}
