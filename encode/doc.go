// Package encode renders syntax trees to source text.
//
// Rendering is whole-subtree and side effect free: the text of a node
// depends only on the node's content and the options, never on the text it
// was parsed from. Formatting inside a rendered node is therefore the fixed
// style of this package.
//
// # Usage
//
//	s, err := encode.String(node)
//
//	// single quoted markup attributes, four space indent
//	err := encode.Encode(node, w, encode.AttrQuote('\''), encode.Indent(4))
//
// # Related Packages
//
//   - github.com/signadot/splice/ir - the tree model
//   - github.com/signadot/splice/parse - text to trees
package encode
