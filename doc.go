// Package splice rewrites source documents surgically.
//
// A document is parsed into a tree, plugins mutate the tree in memory, and
// only the spans of original text belonging to nodes that changed are
// regenerated. Everything else, including whitespace and comments, is kept
// byte for byte.
//
// # Usage
//
//	res, err := splice.Transform(src, "App.vue", []plugin.Plugin{p}, nil)
//	if err != nil {
//		return err
//	}
//	os.Stdout.WriteString(res.Code)
//
// Components are handled in two layers. The code inside each script element
// is parsed as a tree of its own; after plugins run, each code tree that
// changed is patched against its own text and the result is written back
// into the script element, before the markup tree is diffed and patched.
//
// # Related Packages
//
//   - github.com/signadot/splice/libdiff - structural diff
//   - github.com/signadot/splice/changeset - reduction to repaint regions
//   - github.com/signadot/splice/patch - splicing into the original text
//   - github.com/signadot/splice/plugin - the plugin contract
//   - github.com/signadot/splice/plugins - built-in plugins
//   - github.com/signadot/splice/luaplugin - plugins written in Lua
//   - github.com/signadot/splice/config - run configuration files
package splice
