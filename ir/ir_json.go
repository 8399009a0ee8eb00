package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes y as an object keyed by "kind" and then by the
// property keys of its schema. Node properties which are absent encode as
// null, so every schema key is always present.
func (y *Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := y.writeJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (y *Node) writeJSON(buf *bytes.Buffer) error {
	if y == nil {
		buf.WriteString("null")
		return nil
	}
	buf.WriteString(`{"kind":`)
	d, err := json.Marshal(y.Kind)
	if err != nil {
		return err
	}
	buf.Write(d)
	for _, p := range schemas[y.Kind] {
		buf.WriteByte(',')
		k, _ := json.Marshal(p.Key)
		buf.Write(k)
		buf.WriteByte(':')
		switch p.Type {
		case ScalarProp:
			d, err := json.Marshal(y.Scalar(p))
			if err != nil {
				return err
			}
			buf.Write(d)
		case NodeProp:
			if err := y.Child(p).writeJSON(buf); err != nil {
				return err
			}
		case ListProp:
			buf.WriteByte('[')
			for i, c := range y.Children {
				if i > 0 {
					buf.WriteByte(',')
				}
				if err := c.writeJSON(buf); err != nil {
					return err
				}
			}
			buf.WriteByte(']')
		}
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON decodes the form written by MarshalJSON. Parent links are
// set; ranges are left zero.
func (y *Node) UnmarshalJSON(d []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(d, &raw); err != nil {
		return err
	}
	kd, ok := raw["kind"]
	if !ok {
		return fmt.Errorf("node without kind")
	}
	*y = Node{}
	if err := json.Unmarshal(kd, &y.Kind); err != nil {
		return err
	}
	for _, p := range schemas[y.Kind] {
		pd, ok := raw[p.Key]
		if !ok {
			continue
		}
		switch p.Type {
		case ScalarProp:
			if p.slot == sFlag {
				var b bool
				if err := json.Unmarshal(pd, &b); err != nil {
					return fmt.Errorf("%s.%s: %w", y.Kind, p.Key, err)
				}
				y.Flag = b
				continue
			}
			var s string
			if err := json.Unmarshal(pd, &s); err != nil {
				return fmt.Errorf("%s.%s: %w", y.Kind, p.Key, err)
			}
			y.SetScalar(p, s)
		case NodeProp:
			if bytes.Equal(bytes.TrimSpace(pd), []byte("null")) {
				continue
			}
			c := &Node{}
			if err := json.Unmarshal(pd, c); err != nil {
				return err
			}
			c.Parent = y
			y.SetChild(p, c)
		case ListProp:
			var cs []*Node
			if err := json.Unmarshal(pd, &cs); err != nil {
				return err
			}
			for _, c := range cs {
				if c == nil {
					return fmt.Errorf("%s.%s: null list element", y.Kind, p.Key)
				}
				c.Parent = y
			}
			y.Children = cs
		}
	}
	return nil
}
