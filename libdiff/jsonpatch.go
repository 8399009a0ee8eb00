package libdiff

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/splice/ir"

	jsonpatch "github.com/evanphx/json-patch"
)

var ErrRootReplace = errors.New("cannot replace the root node")

type patchOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// JSONPatch converts changes, as returned by Diff, into an RFC 6902 patch
// which turns the JSON form of the first tree into that of the second.
func JSONPatch(changes []Change) (jsonpatch.Patch, error) {
	var (
		ops     []patchOp
		removes []patchOp
	)
	flush := func() {
		for i := len(removes) - 1; i >= 0; i-- {
			ops = append(ops, removes[i])
		}
		removes = removes[:0]
	}
	for i, c := range changes {
		if len(removes) > 0 && (c.Kind != Delete || c.Index < 0 || !c.Path.Equal(changes[i-1].Path)) {
			flush()
		}
		switch {
		case c.Kind == Edit && c.Path[len(c.Path)-1].Key == "kind":
			owner := c.Path.Trim()
			if len(owner) == 0 {
				return nil, ErrRootReplace
			}
			op, err := replaceOp(owner, c.New)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		case c.Kind == Edit, c.Index < 0:
			v := c.New
			if c.Kind == Delete {
				v = nil
			}
			op, err := replaceOp(c.Path, v)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		case c.Kind == New:
			d, err := json.Marshal(c.New)
			if err != nil {
				return nil, err
			}
			ops = append(ops, patchOp{Op: "add", Path: pointer(c.Path.Idx(c.Index)), Value: d})
		default:
			removes = append(removes, patchOp{Op: "remove", Path: pointer(c.Path.Idx(c.Index))})
		}
	}
	flush()
	d, err := json.Marshal(ops)
	if err != nil {
		return nil, err
	}
	res, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("decoding generated patch: %w", err)
	}
	return res, nil
}

func replaceOp(p ir.Path, v any) (patchOp, error) {
	d, err := json.Marshal(v)
	if err != nil {
		return patchOp{}, err
	}
	return patchOp{Op: "replace", Path: pointer(p), Value: d}, nil
}

// pointer renders p as an RFC 6901 JSON pointer.
func pointer(p ir.Path) string {
	buf := bytes.NewBuffer(nil)
	for _, s := range p {
		buf.WriteByte('/')
		if s.IsIndex() {
			buf.WriteString(strconv.Itoa(s.Index))
			continue
		}
		buf.WriteString(strings.NewReplacer("~", "~0", "/", "~1").Replace(s.Key))
	}
	return buf.String()
}
