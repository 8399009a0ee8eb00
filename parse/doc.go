// Package parse turns source text into syntax trees.
//
// Two grammars are supported. [Parse] reads code: imports, declarations,
// export default and expression statements over a conventional expression
// language. [ParseComponent] reads markup components, whose directive
// attribute values and {{ }} interpolations hold code expressions and whose
// top-level script elements ([Hosts]) hold whole programs.
//
// Every node carries the byte range it was parsed from. Ranges are absolute:
// code parsed out of a larger document with [Base] has ranges into that
// document.
//
// Errors wrap [ErrParse] and carry a line:col position.
package parse
