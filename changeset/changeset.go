package changeset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/signadot/splice/debug"
	"github.com/signadot/splice/ir"
	"github.com/signadot/splice/libdiff"
)

// RootDepth is the owner path depth at or above which a structural change
// invalidates the whole root.
const RootDepth = 3

var ErrDiffInconsistency = errors.New("diff inconsistency")

// Record maps the original span [Start, End) of a node to the node that
// now occupies its path.
type Record struct {
	Path  ir.Path
	Node  *ir.Node
	Start int
	End   int
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s [%d,%d)", r.Path, r.Node.Kind, r.Start, r.End)
}

// Set is the outcome of Reduce. When RootChanged is set, Root spans the
// whole original text and Records is empty. Otherwise Records are
// disjoint and sorted by Start.
type Set struct {
	RootChanged bool
	Root        Record
	Records     []Record
}

// Empty reports whether nothing needs repainting.
func (s *Set) Empty() bool {
	return !s.RootChanged && len(s.Records) == 0
}

// Reduce turns changes between snapshot and mutated into the set of
// regions to repaint.
func Reduce(changes []libdiff.Change, snapshot, mutated *ir.Node) (*Set, error) {
	res := &Set{Root: Record{Node: mutated, Start: snapshot.Range.Start, End: snapshot.Range.End}}
	var owners []ir.Path
	seen := map[string]bool{}
	for i := range changes {
		c := &changes[i]
		owner, err := ownerOf(c.Path, snapshot, mutated)
		if err != nil {
			return nil, err
		}
		if len(owner) <= RootDepth && c.Kind != libdiff.Edit {
			if debug.Reduce() {
				debug.Logf("reduce: %s at %q changes the root\n", c.Kind, owner)
			}
			res.RootChanged = true
		}
		k := owner.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		owners = append(owners, owner)
	}
	if res.RootChanged {
		return res, nil
	}
	for _, p := range collapse(owners) {
		from, err := snapshot.At(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDiffInconsistency, err)
		}
		to, err := mutated.At(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDiffInconsistency, err)
		}
		res.Records = append(res.Records, Record{Path: p, Node: to, Start: from.Range.Start, End: from.Range.End})
	}
	sort.Slice(res.Records, func(i, j int) bool {
		return res.Records[i].Start < res.Records[j].Start
	})
	if debug.Reduce() {
		debug.Logf("reduce: %d changes to %d records\n", len(changes), len(res.Records))
		for _, r := range res.Records {
			debug.Logf("  %s\n", r)
		}
	}
	return res, nil
}

// ownerOf returns the path of the node owning the property at p, promoted
// past nodes whose text cannot be repainted on its own.
func ownerOf(p ir.Path, snapshot, mutated *ir.Node) (ir.Path, error) {
	if len(p) == 0 || p[len(p)-1].IsIndex() {
		return nil, fmt.Errorf("%w: change path %q does not end with a key", ErrDiffInconsistency, p)
	}
	owner := p.Trim()
	for len(owner) > 0 {
		up := owner.ParentNode()
		key := owner[len(up)].Key
		from, err := snapshot.At(owner)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDiffInconsistency, err)
		}
		to, err := mutated.At(owner)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDiffInconsistency, err)
		}
		fromUp, _ := snapshot.At(up)
		toUp, _ := mutated.At(up)
		if !promotes(fromUp, key, from) && !promotes(toUp, key, to) {
			break
		}
		owner = up
	}
	return owner, nil
}

// promotes reports whether n, held by parent under key, must be repainted
// through its parent.
func promotes(parent *ir.Node, key string, n *ir.Node) bool {
	switch {
	case n.Kind == ir.StartTagKind:
		return true
	case parent.Kind == ir.DirectiveKeyKind:
		// the name's range covers the v-, :, @ or # prefix.
		return key == "name"
	case parent.Kind == ir.ImportSpecifierKind:
		return true
	case parent.Kind == ir.PropertyKind:
		return parent.Flag
	}
	return false
}

// collapse drops every path extending another one.
func collapse(paths []ir.Path) []ir.Path {
	var res []ir.Path
	for i, p := range paths {
		covered := false
		for j, o := range paths {
			if i != j && len(o) < len(p) && p.HasPrefix(o) {
				covered = true
				break
			}
		}
		if !covered {
			res = append(res, p)
		}
	}
	return res
}
