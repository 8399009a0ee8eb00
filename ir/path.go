package ir

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Step is one step of a Path: either a property key, or, when Key is
// empty, an index into the list property named by the previous step.
type Step struct {
	Key   string
	Index int
}

func KeyStep(k string) Step { return Step{Key: k} }
func IndexStep(i int) Step  { return Step{Index: i} }

func (s Step) IsIndex() bool { return s.Key == "" }

// Path addresses a property or a node from a tree root.
//
// Examples:
//   - root node → ""
//   - first top level element → "children[0]"
//   - an element's first attribute → "children[0].startTag.attributes[0]"
type Path []Step

func (p Path) String() string {
	buf := bytes.NewBuffer(nil)
	for _, s := range p {
		if s.IsIndex() {
			fmt.Fprintf(buf, "[%d]", s.Index)
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(s.Key)
	}
	return buf.String()
}

// Append returns a fresh path extending p.
func (p Path) Append(steps ...Step) Path {
	res := make(Path, len(p), len(p)+len(steps))
	copy(res, p)
	return append(res, steps...)
}

func (p Path) Key(k string) Path { return p.Append(KeyStep(k)) }
func (p Path) Idx(i int) Path    { return p.Append(IndexStep(i)) }

// Equal reports whether p and o are the same path.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether o is a prefix of p.
func (p Path) HasPrefix(o Path) bool {
	if len(o) > len(p) {
		return false
	}
	return p[:len(o)].Equal(o)
}

// Trim drops the last step.
func (p Path) Trim() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

// ParentNode returns the path of the node containing the node at p. For a
// path ending in a list index this drops the index and the list key.
func (p Path) ParentNode() Path {
	if len(p) == 0 {
		return p
	}
	last := p[len(p)-1]
	if last.IsIndex() && len(p) >= 2 {
		return p[:len(p)-2]
	}
	return p[:len(p)-1]
}

// ParsePath parses the String form of a path.
func ParsePath(s string) (Path, error) {
	var res Path
	i := 0
	n := len(s)
	for i < n {
		switch s[i] {
		case '.':
			if i == 0 || i == n-1 {
				return nil, fmt.Errorf("%w: misplaced '.' in %q", ErrPath, s)
			}
			i++
		case '[':
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				return nil, fmt.Errorf("%w: unterminated index in %q", ErrPath, s)
			}
			idx, err := strconv.Atoi(s[i+1 : i+j])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("%w: bad index %q", ErrPath, s[i+1:i+j])
			}
			res = append(res, IndexStep(idx))
			i += j + 1
		default:
			j := i
			for j < n && s[j] != '.' && s[j] != '[' {
				j++
			}
			res = append(res, KeyStep(s[i:j]))
			i = j
		}
	}
	return res, nil
}

// At resolves p against y and returns the node it ends on.
func (y *Node) At(p Path) (*Node, error) {
	cur := y
	for i := 0; i < len(p); i++ {
		s := p[i]
		if s.IsIndex() {
			return nil, fmt.Errorf("%w: index without list at %s", ErrPath, p[:i+1])
		}
		prop, ok := SchemaProp(cur.Kind, s.Key)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no property %q at %s", ErrPath, cur.Kind, s.Key, p[:i+1])
		}
		switch prop.Type {
		case ScalarProp:
			return nil, fmt.Errorf("%w: %s is a scalar", ErrPath, p[:i+1])
		case NodeProp:
			c := cur.Child(prop)
			if c == nil {
				return nil, fmt.Errorf("%w: nothing at %s", ErrPath, p[:i+1])
			}
			cur = c
		case ListProp:
			if i+1 >= len(p) || !p[i+1].IsIndex() {
				return nil, fmt.Errorf("%w: %s is a list", ErrPath, p[:i+1])
			}
			i++
			idx := p[i].Index
			if idx < 0 || idx >= len(cur.Children) {
				return nil, fmt.Errorf("%w: index out of bounds %d (len %d) at %s", ErrPath, idx, len(cur.Children), p[:i+1])
			}
			cur = cur.Children[idx]
		}
	}
	return cur, nil
}

// PathOf computes the path of y from the root of its tree by following
// parent links. Parents must be up to date, see SetParents.
func (y *Node) PathOf() Path {
	var rev []Step
	cur := y
	for cur.Parent != nil {
		p := cur.Parent
		found := false
		p.Each(func(key string, index int, c *Node) bool {
			if c != cur {
				return true
			}
			if index >= 0 {
				rev = append(rev, IndexStep(index))
			}
			rev = append(rev, KeyStep(key))
			found = true
			return false
		})
		if !found {
			panic("parent does not contain node")
		}
		cur = p
	}
	res := make(Path, len(rev))
	for i, s := range rev {
		res[len(rev)-1-i] = s
	}
	return res
}
