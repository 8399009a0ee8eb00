// Package plugin defines what a transformation plugin is and what it gets
// to work with.
//
// A plugin receives a [Context] holding the trees of one document and
// mutates them in place. Plugins run one after the other on the same trees,
// so each sees the changes of those before it. Parent links are refreshed
// before every plugin runs.
package plugin
