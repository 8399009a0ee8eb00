package plugins

import (
	"errors"
	"fmt"
	"sort"

	"github.com/signadot/splice/plugin"
)

var (
	ErrUnknown = errors.New("unknown plugin")
	ErrOption  = errors.New("bad plugin option")
)

// Factory builds a plugin from its options.
type Factory func(opts map[string]any) (plugin.Plugin, error)

var registry = map[string]Factory{
	"rename-identifier": RenameIdentifier,
	"rename-tag":        RenameTag,
	"remove-attribute":  RemoveAttribute,
	"set-attribute":     SetAttribute,
	"query":             Query,
}

// New builds the built-in plugin called name.
func New(name string, opts map[string]any) (plugin.Plugin, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return f(opts)
}

// Names returns the names of the built-in plugins, sorted.
func Names() []string {
	res := make([]string, 0, len(registry))
	for name := range registry {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func optString(opts map[string]any, key string, required bool) (string, error) {
	v, ok := opts[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("%w: %q is required", ErrOption, key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrOption, key, v)
	}
	return s, nil
}

func errOption(key, v, msg string) error {
	return fmt.Errorf("%w: %s %q: %s", ErrOption, key, v, msg)
}

func optBool(opts map[string]any, key string) (bool, error) {
	v, ok := opts[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q must be a bool, got %T", ErrOption, key, v)
	}
	return b, nil
}
