// Package libdiff computes structural differences between two trees.
//
// # Usage
//
//	snap := root.Clone()
//	// ... mutate root ...
//	changes := libdiff.Diff(snap, root)
//
// Comparison is positional. Lists are compared index by index, so an
// insertion in the middle of a list shows up as edits at every following
// position plus one New entry at the end. Bookkeeping fields (ranges and
// parent links) never take part.
//
// [JSONPatch] converts a change list into an RFC 6902 patch over the JSON
// form of the trees.
//
// # Related Packages
//
//   - github.com/signadot/splice/ir - tree representation
//   - github.com/signadot/splice/changeset - reduces changes to repaint regions
package libdiff
