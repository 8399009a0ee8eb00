package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format says how a document is parsed: as flat code, or as a markup
// component which may embed code.
type Format int

const (
	CodeFormat Format = iota
	ComponentFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"c":         CodeFormat,
		"code":      CodeFormat,
		"js":        CodeFormat,
		"component": ComponentFormat,
		"vue":       ComponentFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromFilename dispatches on the file name suffix.
func FromFilename(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, f := range AllFormats() {
		for _, s := range f.Suffixes() {
			if s == ext {
				return f, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: no format for file %q", ErrBadFormat, name)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case CodeFormat:
		return []byte("code"), nil
	case ComponentFormat:
		return []byte("component"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsCode() bool      { return f == CodeFormat }
func (f Format) IsComponent() bool { return f == ComponentFormat }

// Suffixes returns the file extensions (including the dot) of this format.
func (f Format) Suffixes() []string {
	switch f {
	case CodeFormat:
		return []string{".js", ".mjs", ".cjs"}
	case ComponentFormat:
		return []string{".vue"}
	default:
		return nil
	}
}

// AllFormats returns all supported formats.
func AllFormats() []Format {
	return []Format{CodeFormat, ComponentFormat}
}
