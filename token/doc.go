// Package token splits code into tokens for the code grammar parser.
//
// [Tokenize] drops whitespace and comments, recording only whether a line
// break preceded each token, which the parser needs to end statements
// without semicolons. Positions are absolute byte offsets: input that is a
// slice of a larger document is tokenized with [TokenBase] and, for line
// numbers relative to that document, [TokenDoc].
package token
