package splice

import (
	"errors"

	"github.com/signadot/splice/changeset"
	"github.com/signadot/splice/encode"
	"github.com/signadot/splice/format"
	"github.com/signadot/splice/libdiff"
)

var ErrPlugin = errors.New("plugin failed")

// Options adjusts a transform pass. A nil *Options is valid.
type Options struct {
	// Format overrides dispatch by file name suffix.
	Format *format.Format
	// Config is the plugin configuration mapping, handed to every plugin.
	Config map[string]any
	// Encode styles the text generated for changed nodes.
	Encode []encode.EncodeOption
}

// Stat is the mutation count reported by one plugin.
type Stat struct {
	Plugin string `json:"plugin"`
	Count  int    `json:"count"`
}

type Result struct {
	Code  string `json:"code"`
	Stats []Stat `json:"stats"`
}

// Changed reports whether any plugin reported a mutation.
func (r *Result) Changed() bool {
	for _, s := range r.Stats {
		if s.Count > 0 {
			return true
		}
	}
	return false
}

// Layer is the outcome of diffing one tree of a document.
type Layer struct {
	// Name is "document" for a component's markup, "script[i]" for the
	// code of its i'th script element and "code" for flat code.
	Name    string
	Changes []libdiff.Change
	Set     *changeset.Set
}

// Inspection is a Result together with the intermediate changes.
type Inspection struct {
	Result
	Layers []Layer
}
