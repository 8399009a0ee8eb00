// Package luaplugin runs plugins written in Lua.
//
// A Lua plugin is a script defining a global function transform(ctx)
// returning the number of mutations it made, and optionally a global name.
// ctx has the fields scripts, document, filename and options. Nodes are
// userdata whose fields are the property keys of their kind, plus kind,
// parent and path. Scalar and node properties can be assigned; list
// properties read as fresh tables and are changed with the splice module:
//
//	function transform(ctx)
//	  local n = 0
//	  for _, id in ipairs(splice.find_all(ctx.scripts[1], "Identifier")) do
//	    if id.name == "foo" then
//	      id.name = "bar"
//	      n = n + 1
//	    end
//	  end
//	  return n
//	end
//
// Scripts run in a fresh sandboxed state for every document: only the base,
// table, string and math libraries are available and file loading is
// disabled.
package luaplugin
