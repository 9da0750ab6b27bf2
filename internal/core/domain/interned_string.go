package domain

import "unique"

// InternedString is a value object that wraps a unique.Handle[string].
// Task names and paths repeat heavily across the registry and the run state,
// so interning keeps one canonical copy of each.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s and returns the wrapping value object.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}
