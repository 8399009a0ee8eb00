// Package ir provides the syntax tree shared by the parsers, the renderer
// and the diff engine.
//
// # Overview
//
// Every parsed document, markup component or code, is a tree of *Node.
// Node is a tagged union: Kind selects which fields carry content. The
// mapping from kind to fields is the schema (see Schema), which names each
// authored property in document order:
//
//	Element: name, startTag, children[], endTag
//	Attribute: key, value
//	Member: object, property, computed
//
// The schema drives everything generic over nodes: Traverse and Each walk
// it, Clone and Equal follow it, Path steps are its keys, and the JSON form
// is keyed by it.
//
// # Bookkeeping
//
// Range holds the byte span a node had in the text it was parsed from.
// Parent points at the structural container and is for lookup only: the
// tree owns its children, and SetParents recomputes every Parent after
// mutation. Neither field is part of a node's content, so neither takes
// part in Equal, in diffs or in the JSON form.
//
// # Invariants
//
//   - every node except the root has exactly one parent
//   - no node appears twice in a tree; code wanting to duplicate a subtree
//     must Clone it
//   - only the Children slot holds a list, so each kind has at most one list
//     property
//
// # Paths
//
// A Path is a sequence of property keys and list indices from a root:
//
//	children[0].startTag.attributes[1].value
//
// (*Node).At resolves a path ending on a node, PathOf computes the path of a
// node from parent links.
package ir
