package libdiff

import "fmt"

// ChangeKind classifies a Change.
type ChangeKind int

const (
	Edit ChangeKind = iota
	New
	Delete
)

var changeKindNames = [...]string{
	Edit:   "edit",
	New:    "new",
	Delete: "delete",
}

func (k ChangeKind) String() string {
	if k < 0 || int(k) >= len(changeKindNames) {
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
	return changeKindNames[k]
}

func (k ChangeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ChangeKind) UnmarshalText(d []byte) error {
	for i, name := range changeKindNames {
		if name == string(d) {
			*k = ChangeKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown change kind %q", d)
}
