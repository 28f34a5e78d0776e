// Package screenid resolves the "self or identifier" argument accepted by
// navigation calls into the bare component id the engine expects.
package screenid

import (
	"fmt"
	"reflect"

	"navfacade/internal/jsonutil"
)

// Handle is a caller that knows its own mounted component id.
type Handle interface {
	ComponentID() string
}

// Props carries the component id of a mounted screen.
type Props struct {
	ComponentID string `json:"componentId"`
}

// Self is the plain props.componentId handle shape.
type Self struct {
	Props Props `json:"props"`
}

// ComponentID implements Handle.
func (s Self) ComponentID() string {
	return s.Props.ComponentID
}

// NewSelf returns a Self handle for id.
func NewSelf(id string) Self {
	return Self{Props: Props{ComponentID: id}}
}

// SelfOrID is either a bare component id or a Handle. The zero value is the
// empty id.
type SelfOrID struct {
	id     string
	handle Handle
}

// ID wraps a bare component id.
func ID(id string) SelfOrID {
	return SelfOrID{id: id}
}

// Of wraps a handle. A nil handle, including a typed nil pointer, resolves to
// the empty id.
func Of(h Handle) SelfOrID {
	return SelfOrID{handle: h}
}

func (s SelfOrID) String() string {
	return Resolve(s)
}

// Resolve returns the component id named by s.
func Resolve(s SelfOrID) string {
	switch {
	case isNil(s.handle):
		return s.id
	default:
		return s.handle.ComponentID()
	}
}

// isNil reports whether h is nil or wraps a nil pointer, map, slice, func,
// chan or interface.
func isNil(h Handle) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// ResolveAny resolves loosely typed data such as decoded YAML. Strings are
// returned as-is, values carrying props.componentId yield that value, and
// anything else is returned unchanged. It never fails: malformed input passes
// through and is only rejected later by the engine.
func ResolveAny(v any) any {
	if s, ok := v.(string); ok {
		return s
	}
	if h, ok := v.(Handle); ok {
		return Resolve(Of(h))
	}
	return jsonutil.GetOr(v, "props.componentId", v)
}

// FromAny converts loosely typed data into a SelfOrID. When ResolveAny falls
// back to a non-string value, its printed form becomes the id.
func FromAny(v any) SelfOrID {
	switch got := ResolveAny(v).(type) {
	case string:
		return ID(got)
	case nil:
		return ID("")
	default:
		return ID(fmt.Sprint(got))
	}
}
