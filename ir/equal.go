package ir

// Equal reports whether a and b have the same authored content. Ranges and
// parent links are ignored.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	for _, p := range schemas[a.Kind] {
		switch p.Type {
		case ScalarProp:
			if a.Scalar(p) != b.Scalar(p) {
				return false
			}
		case NodeProp:
			if !Equal(a.Child(p), b.Child(p)) {
				return false
			}
		case ListProp:
			if len(a.Children) != len(b.Children) {
				return false
			}
			for i := range a.Children {
				if !Equal(a.Children[i], b.Children[i]) {
					return false
				}
			}
		}
	}
	return true
}
