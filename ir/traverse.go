package ir

// Visitor holds the callbacks of Traverse. Enter is called before a node's
// children and may return false to skip them; Leave is called after. Either
// may be nil.
type Visitor struct {
	Enter func(n, parent *Node) bool
	Leave func(n *Node)
}

// Traverse walks the tree at root depth first in document order.
func Traverse(root *Node, v Visitor) {
	traverse(root, nil, v)
}

func traverse(n, parent *Node, v Visitor) {
	dive := true
	if v.Enter != nil {
		dive = v.Enter(n, parent)
	}
	if dive {
		n.Each(func(_ string, _ int, c *Node) bool {
			traverse(c, n, v)
			return true
		})
	}
	if v.Leave != nil {
		v.Leave(n)
	}
}

// SetParents points every node's Parent at its structural container. The
// root's Parent is left as is.
func SetParents(root *Node) {
	Traverse(root, Visitor{
		Enter: func(n, parent *Node) bool {
			if parent != nil {
				n.Parent = parent
			}
			return true
		},
	})
}

// Find returns the first node in document order satisfying f.
func Find(root *Node, f func(*Node) bool) *Node {
	var res *Node
	Traverse(root, Visitor{
		Enter: func(n, _ *Node) bool {
			if res != nil {
				return false
			}
			if f(n) {
				res = n
				return false
			}
			return true
		},
	})
	return res
}

// FindAll returns every node in document order satisfying f.
func FindAll(root *Node, f func(*Node) bool) []*Node {
	var res []*Node
	Traverse(root, Visitor{
		Enter: func(n, _ *Node) bool {
			if f(n) {
				res = append(res, n)
			}
			return true
		},
	})
	return res
}

// OfKind returns a predicate matching nodes of kind k.
func OfKind(k Kind) func(*Node) bool {
	return func(n *Node) bool { return n.Kind == k }
}
