// Package plugins holds the built-in plugins.
//
// Each plugin is built by a [Factory] from an options mapping, as found in
// a run configuration file; [New] looks factories up by name.
package plugins
