package layout

import (
	"navfacade/internal/jsonutil"
)

// Root is the top-level wrapper passed to SetRoot.
type Root struct {
	Root Layout `json:"root"`
}

// RootOrLayout is either a complete Root or a ScreenOrLayout to be wrapped.
type RootOrLayout struct {
	root   *Root
	layout ScreenOrLayout
}

// AsRoot uses r verbatim.
func AsRoot(r Root) RootOrLayout {
	return RootOrLayout{root: &r}
}

// AsLayout wraps s under a root when built.
func AsLayout(s ScreenOrLayout) RootOrLayout {
	return RootOrLayout{layout: s}
}

// BuildRoot returns the root unchanged, or wraps Build(s, nil, nil) under a
// new root.
func BuildRoot(v RootOrLayout) Root {
	if v.root != nil {
		return *v.root
	}
	return Root{Root: Build(v.layout, nil, nil)}
}

// DecodeRoot classifies loosely typed data. A value that is not a string and
// has a truthy "root" field is a complete Root; anything else is treated as a
// screen or layout and wrapped.
//
// The check is structural: a layout document that happens to carry an
// unrelated truthy "root" key is classified as a Root.
func DecodeRoot(v any) (RootOrLayout, error) {
	switch val := v.(type) {
	case Root:
		return AsRoot(val), nil
	case RootOrLayout:
		return val, nil
	}
	if _, isString := v.(string); !isString {
		if r, ok := jsonutil.Lookup(v, "root"); ok && jsonutil.Truthy(r) {
			var root Root
			if err := jsonutil.Convert(v, &root, "root layout"); err != nil {
				return RootOrLayout{}, err
			}
			return AsRoot(root), nil
		}
	}
	s, err := FromAny(v)
	if err != nil {
		return RootOrLayout{}, err
	}
	return AsLayout(s), nil
}
